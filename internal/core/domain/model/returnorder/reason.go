package returnorder

import (
	"fmt"

	"distribops/internal/pkg/errs"
)

// Reason classifies why goods are coming back from a shop.
type Reason int

const (
	// ReasonUnknown represents an invalid or undefined reason.
	// This value (0) helps catch uninitialized Reason values.
	ReasonUnknown Reason = iota

	ReasonDamaged
	ReasonDefective
	ReasonWrongItem
	ReasonCustomerChangedMind
	ReasonExpired
	ReasonOther
)

func getReasonStrings() map[Reason]string {
	return map[Reason]string{
		ReasonUnknown:             "UNKNOWN",
		ReasonDamaged:             "DAMAGED",
		ReasonDefective:           "DEFECTIVE",
		ReasonWrongItem:           "WRONG_ITEM",
		ReasonCustomerChangedMind: "CUSTOMER_CHANGED_MIND",
		ReasonExpired:             "EXPIRED",
		ReasonOther:               "OTHER",
	}
}

func getValidReasonStrings() map[Reason]string {
	//nolint:exhaustive // ReasonUnknown is intentionally excluded as it's invalid
	return map[Reason]string{
		ReasonDamaged:             "DAMAGED",
		ReasonDefective:           "DEFECTIVE",
		ReasonWrongItem:           "WRONG_ITEM",
		ReasonCustomerChangedMind: "CUSTOMER_CHANGED_MIND",
		ReasonExpired:             "EXPIRED",
		ReasonOther:               "OTHER",
	}
}

// ReasonFromString parses a reason from its wire representation.
func ReasonFromString(s string) (Reason, error) {
	for reason, str := range getValidReasonStrings() {
		if str == s {
			return reason, nil
		}
	}
	return ReasonUnknown, errs.NewValueIsInvalidErrorWithCause(
		"reasonCode",
		fmt.Errorf("%q is not a valid return reason", s),
	)
}

// Validate checks that the reason is one of the enumerated values.
func (r Reason) Validate() error {
	if _, ok := getValidReasonStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"reasonCode",
			fmt.Errorf("%d is not a valid return reason", r),
		)
	}
	return nil
}

// String returns the wire name of the reason.
// Implements fmt.Stringer; safe on any value, including invalid ones.
func (r Reason) String() string {
	if str, ok := getReasonStrings()[r]; ok {
		return str
	}
	return "UNKNOWN"
}
