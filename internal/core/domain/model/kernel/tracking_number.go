package kernel

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"

	"distribops/internal/pkg/errs"
)

// ErrTrackingNumberIsNotConstructed indicates that a TrackingNumber was not
// initialized through one of the constructor functions.
var ErrTrackingNumberIsNotConstructed = errs.NewValueIsRequiredError(
	"TrackingNumber must be created via NewRandomTrackingNumber or TrackingNumberFromString",
)

var trackingNumberPattern = regexp.MustCompile(`^TR-\d{6}$`)

const trackingNumberSpace = 1_000_000

// TrackingNumber is a value object for the code printed on delivery labels.
// The wire format is "TR-" followed by exactly six digits.
//
// The zero value is invalid; construct through NewRandomTrackingNumber or
// TrackingNumberFromString.
type TrackingNumber struct {
	value string
}

// NewRandomTrackingNumber generates a fresh tracking number with a random
// six-digit suffix. Uniqueness is probabilistic; the delivery store is the
// authority on collisions.
func NewRandomTrackingNumber() TrackingNumber {
	n, err := rand.Int(rand.Reader, big.NewInt(trackingNumberSpace))
	if err != nil {
		// crypto/rand only fails when the platform entropy source is broken.
		panic(fmt.Sprintf("tracking number generation: %v", err))
	}
	return TrackingNumber{value: fmt.Sprintf("TR-%06d", n.Int64())}
}

// TrackingNumberFromString parses a tracking number from its wire format.
// Returns an error if the string does not match TR-######.
func TrackingNumberFromString(s string) (TrackingNumber, error) {
	if !trackingNumberPattern.MatchString(s) {
		return TrackingNumber{}, errs.NewValueIsInvalidErrorWithCause(
			"trackingNumber",
			fmt.Errorf("%q does not match TR-######", s),
		)
	}
	return TrackingNumber{value: s}, nil
}

// String returns the wire format, e.g. "TR-042117".
func (t TrackingNumber) String() string {
	return t.value
}

// IsEqual reports whether two tracking numbers are the same code.
func (t TrackingNumber) IsEqual(other TrackingNumber) bool {
	return t.value == other.value
}

// Validate returns ErrTrackingNumberIsNotConstructed for the zero value.
func (t TrackingNumber) Validate() error {
	if t.value == "" {
		return ErrTrackingNumberIsNotConstructed
	}
	return nil
}
