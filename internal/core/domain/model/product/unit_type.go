package product

import (
	"fmt"

	"distribops/internal/pkg/errs"
)

// UnitType selects which SKU price applies to an order line.
// Goods are sold either as individual packets or as whole boxes.
type UnitType int

const (
	// UnitTypeUnknown represents an invalid or undefined unit type.
	// This value (0) helps catch uninitialized UnitType values.
	UnitTypeUnknown UnitType = iota

	// UnitTypePacket prices a line by the SKU's per-packet price.
	UnitTypePacket

	// UnitTypeBox prices a line by the SKU's per-box price.
	UnitTypeBox
)

func getUnitTypeStrings() map[UnitType]string {
	return map[UnitType]string{
		UnitTypeUnknown: "unknown",
		UnitTypePacket:  "packet",
		UnitTypeBox:     "box",
	}
}

func getValidUnitTypeStrings() map[UnitType]string {
	//nolint:exhaustive // UnitTypeUnknown is intentionally excluded as it's invalid
	return map[UnitType]string{
		UnitTypePacket: "packet",
		UnitTypeBox:    "box",
	}
}

// UnitTypeFromString parses a unit type from its wire representation
// ("packet" or "box"). Returns an error for any other value.
func UnitTypeFromString(s string) (UnitType, error) {
	for unitType, str := range getValidUnitTypeStrings() {
		if str == s {
			return unitType, nil
		}
	}
	return UnitTypeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"unitType",
		fmt.Errorf("%q is not a valid unit type", s),
	)
}

// Validate checks that the unit type is one of the enumerated values.
func (u UnitType) Validate() error {
	if _, ok := getValidUnitTypeStrings()[u]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"unitType",
			fmt.Errorf("%d is not a valid unit type", u),
		)
	}
	return nil
}

// String returns the wire name of the unit type.
// Implements fmt.Stringer; safe on any value, including invalid ones.
func (u UnitType) String() string {
	if str, ok := getUnitTypeStrings()[u]; ok {
		return str
	}
	return "unknown"
}
