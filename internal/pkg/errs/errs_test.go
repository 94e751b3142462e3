package errs_test

import (
	"errors"
	"testing"

	"distribops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	cause := errors.New("driver: bad connection")

	tests := []struct {
		name     string
		err      error
		message  string
		sentinel error
	}{
		{
			name:     "object not found",
			err:      errs.NewObjectNotFoundError("orderId", "7b6d"),
			message:  "object not found: 7b6d",
			sentinel: errs.ErrObjectNotFound,
		},
		{
			name:     "object not found with cause",
			err:      errs.NewObjectNotFoundErrorWithCause("orderId", "7b6d", cause),
			message:  "object not found: param is: orderId, ID is: 7b6d (cause: driver: bad connection)",
			sentinel: errs.ErrObjectNotFound,
		},
		{
			name:     "object not found with non-string id",
			err:      errs.NewObjectNotFoundError("lineNumber", 4),
			message:  "object not found: %!s(int=4)",
			sentinel: errs.ErrObjectNotFound,
		},
		{
			name:     "object already exists",
			err:      errs.NewObjectAlreadyExistsError("orderId", "7b6d"),
			message:  "object already exists: 7b6d",
			sentinel: errs.ErrObjectAlreadyExists,
		},
		{
			name:     "object already exists with cause",
			err:      errs.NewObjectAlreadyExistsErrorWithCause("orderId", "7b6d", cause),
			message:  "object already exists: param is: orderId, ID is: 7b6d (cause: driver: bad connection)",
			sentinel: errs.ErrObjectAlreadyExists,
		},
		{
			name:     "value is invalid",
			err:      errs.NewValueIsInvalidError("discountCode"),
			message:  "value is invalid: discountCode",
			sentinel: errs.ErrValueIsInvalid,
		},
		{
			name:     "value is invalid with cause",
			err:      errs.NewValueIsInvalidErrorWithCause("discountCode", cause),
			message:  "value is invalid: discountCode (cause: driver: bad connection)",
			sentinel: errs.ErrValueIsInvalid,
		},
		{
			name:     "value is out of range",
			err:      errs.NewValueIsOutOfRangeError("quantity", 0, 1, 1000),
			message:  "value is invalid: 0 is quantity, min value is 1, max value is 1000",
			sentinel: errs.ErrValueIsOutOfRange,
		},
		{
			name:     "value is out of range with cause",
			err:      errs.NewValueIsOutOfRangeErrorWithCause("quantity", -3, 1, 1000, cause),
			message:  "value is invalid: -3 is quantity, min value is 1, max value is 1000 (cause: driver: bad connection)",
			sentinel: errs.ErrValueIsOutOfRange,
		},
		{
			name:     "value is required",
			err:      errs.NewValueIsRequiredError("shopId"),
			message:  "value is required: shopId",
			sentinel: errs.ErrValueIsRequired,
		},
		{
			name:     "value is required with cause",
			err:      errs.NewValueIsRequiredErrorWithCause("shopId", cause),
			message:  "value is required: shopId (cause: driver: bad connection)",
			sentinel: errs.ErrValueIsRequired,
		},
		{
			name:     "version is invalid",
			err:      errs.NewVersionIsInvalidError("aggregateVersion", cause),
			message:  "version is invalid: aggregateVersion (cause: driver: bad connection)",
			sentinel: errs.ErrVersionIsInvalid,
		},
		{
			name:     "version is invalid without cause",
			err:      errs.NewVersionIsInvalidErrorWithCause("aggregateVersion"),
			message:  "version is invalid: aggregateVersion",
			sentinel: errs.ErrVersionIsInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.message, tt.err.Error())
			require.ErrorIs(t, tt.err, tt.sentinel)
		})
	}
}

func TestTypedErrorFields(t *testing.T) {
	t.Run("not found carries param and id", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("returnOrderId", "9f21")

		assert.Equal(t, "returnOrderId", err.ParamName)
		assert.Equal(t, "9f21", err.ID)
		require.NoError(t, err.Cause)
	})

	t.Run("out of range carries the bounds", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("quantity", 1001, 1, 1000)

		assert.Equal(t, "quantity", err.ParamName)
		assert.Equal(t, 1001, err.Value)
		assert.Equal(t, 1, err.Min)
		assert.Equal(t, 1000, err.Max)
	})

	t.Run("cause survives the wrap", func(t *testing.T) {
		cause := errors.New("tx aborted")
		err := errs.NewValueIsInvalidErrorWithCause("reason", cause)

		assert.Equal(t, cause, err.Cause)
	})
}

func TestMessagesAreSingleLine(t *testing.T) {
	err := errs.NewValueIsOutOfRangeError("notes", "line\nbreak", 0, 10)

	assert.Contains(t, err.Error(), "line break")
	assert.NotContains(t, err.Error(), "\n")
}

func TestSentinelMessages(t *testing.T) {
	assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
	assert.Equal(t, "object already exists", errs.ErrObjectAlreadyExists.Error())
	assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
	assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
	assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
	assert.Equal(t, "version is invalid", errs.ErrVersionIsInvalid.Error())
}
