package delivery

import (
	"time"

	"distribops/internal/core/domain/model/kernel"
	"distribops/internal/pkg/errs"
	"distribops/internal/pkg/guard"
)

// ErrCancellationReasonIsNotConstructed is returned when a CancellationReason
// was not created through the NewCancellationReason factory method.
var ErrCancellationReasonIsNotConstructed = errs.NewValueIsRequiredError(
	"CancellationReason must be created via NewCancellationReason constructor",
)

// CancellationReason records why a delivery was cancelled. It is set exactly
// once, at the transition into Cancelled, and never changed afterwards.
type CancellationReason struct {
	reason      string
	cancelledBy *kernel.UUID
	cancelledAt time.Time
	notes       string

	guard guard.ConstructorGuard
}

// NewCancellationReason creates a cancellation record. The reason text is
// required; cancelledBy and notes are optional.
func NewCancellationReason(
	reason string,
	cancelledBy *kernel.UUID,
	cancelledAt time.Time,
	notes string,
) (CancellationReason, error) {
	if reason == "" {
		return CancellationReason{}, errs.NewValueIsRequiredError("cancellation reason")
	}

	cr := CancellationReason{
		reason:      reason,
		cancelledAt: cancelledAt,
		notes:       notes,
		guard:       guard.NewConstructorGuard(),
	}
	if cancelledBy != nil {
		id := *cancelledBy
		cr.cancelledBy = &id
	}
	return cr, nil
}

// Validate ensures the record was created through NewCancellationReason.
func (c CancellationReason) Validate() error {
	return c.guard.Validate(ErrCancellationReasonIsNotConstructed)
}

// Reason returns the required cancellation text.
func (c CancellationReason) Reason() string {
	return c.reason
}

// CancelledBy returns the acting identity, or nil if none was captured.
func (c CancellationReason) CancelledBy() *kernel.UUID {
	return c.cancelledBy
}

// CancelledAt returns when the cancellation happened.
func (c CancellationReason) CancelledAt() time.Time {
	return c.cancelledAt
}

// Notes returns free-text notes. May be empty.
func (c CancellationReason) Notes() string {
	return c.notes
}
