package delivery

import (
	"errors"
	"fmt"

	"distribops/internal/pkg/errs"
)

// ErrInvalidTransition is returned when a status change does not follow the
// phase sequence, or when the delivery is already in a terminal state.
var ErrInvalidTransition = errors.New("invalid delivery status transition")

// Status represents the phase of a delivery's physical movement.
// It implements a state machine with a fixed linear sequence and a
// cancellation side-branch:
//
//	Packaging ──> Transit ──> ShipToOutlet ──> OutForDelivery ──> Delivered
//	    │            │             │                 │
//	    └────────────┴─────────────┴─────────────────┴──> Cancelled
//
// Delivered and Cancelled are terminal: no transition leaves them.
// Phases cannot be skipped; each forward step moves to the adjacent phase.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPackaging is the initial phase assigned at creation.
	StatusPackaging

	// StatusTransit means the shipment left the warehouse.
	StatusTransit

	// StatusShipToOutlet means the shipment is moving to the shop's outlet hub.
	StatusShipToOutlet

	// StatusOutForDelivery means the shipment is on its final leg.
	StatusOutForDelivery

	// StatusDelivered is the terminal success phase.
	StatusDelivered

	// StatusCancelled is the terminal side-branch, reachable from any
	// non-terminal phase.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:        "Unknown",
		StatusPackaging:      "Packaging",
		StatusTransit:        "Transit",
		StatusShipToOutlet:   "ShipToOutlet",
		StatusOutForDelivery: "OutForDelivery",
		StatusDelivered:      "Delivered",
		StatusCancelled:      "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPackaging:      "Packaging",
		StatusTransit:        "Transit",
		StatusShipToOutlet:   "ShipToOutlet",
		StatusOutForDelivery: "OutForDelivery",
		StatusDelivered:      "Delivered",
		StatusCancelled:      "Cancelled",
	}
}

// StatusFromString parses a status from its wire representation.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid delivery status", s),
	)
}

// Validate checks that the status is one of the enumerated values.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid delivery status", s),
		)
	}
	return nil
}

// String returns the wire name of the status.
// Implements fmt.Stringer; safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions may leave this status.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// next returns the adjacent forward phase, or StatusUnknown when there is none.
func (s Status) next() Status {
	switch s {
	case StatusPackaging:
		return StatusTransit
	case StatusTransit:
		return StatusShipToOutlet
	case StatusShipToOutlet:
		return StatusOutForDelivery
	case StatusOutForDelivery:
		return StatusDelivered
	default:
		return StatusUnknown
	}
}

// TransitionTo validates a transition from s to target.
//
// Rules:
//   - a terminal status rejects every transition
//   - Cancelled is reachable from any non-terminal status
//   - otherwise target must be the adjacent forward phase (no skipping)
//
// Returns the target on success, or an error wrapping ErrInvalidTransition.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return StatusUnknown, err
	}

	if s.IsTerminal() {
		return StatusUnknown, fmt.Errorf("%w: %s is terminal", ErrInvalidTransition, s)
	}

	if target == StatusCancelled {
		return StatusCancelled, nil
	}

	if target != s.next() {
		return StatusUnknown, fmt.Errorf("%w: %s cannot move to %s", ErrInvalidTransition, s, target)
	}

	return target, nil
}
