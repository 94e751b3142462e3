package product

import (
	"errors"

	"distribops/internal/core/domain/model/kernel"
	"distribops/internal/pkg/errs"
	"distribops/internal/pkg/guard"
)

// ErrSKUIsNotConstructed is returned when a SKU instance was not created
// through the NewSKU factory method.
var ErrSKUIsNotConstructed = errors.New("SKU must be created via NewSKU constructor")

// SKU is an immutable snapshot of a catalog product: its identity, display
// data, and the two prices it can be sold at. Order lines embed the snapshot
// rather than referencing the catalog, so later catalog price changes never
// retroactively change historical orders.
//
// SKU is a value object: all fields are private and set only at construction.
type SKU struct {
	id          kernel.UUID
	name        string
	description string

	// price is the per-packet price; boxPrice the per-box price.
	price    Money
	boxPrice Money

	guard guard.ConstructorGuard
}

// NewSKU creates a SKU snapshot with validation. The id must be valid, the
// name non-empty, and both prices non-negative.
func NewSKU(id kernel.UUID, name, description string, price, boxPrice Money) (SKU, error) {
	sku := SKU{
		description: description,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		sku.setID(id),
		sku.setName(name),
		sku.setPrices(price, boxPrice),
	); err != nil {
		return SKU{}, err
	}

	return sku, nil
}

// Validate ensures the SKU was created through NewSKU.
func (s SKU) Validate() error {
	return s.guard.Validate(ErrSKUIsNotConstructed)
}

// ID returns the catalog identifier of the product.
func (s SKU) ID() kernel.UUID {
	return s.id
}

// Name returns the product display name.
func (s SKU) Name() string {
	return s.name
}

// Description returns the product description. May be empty.
func (s SKU) Description() string {
	return s.description
}

// Price returns the per-packet price.
func (s SKU) Price() Money {
	return s.price
}

// BoxPrice returns the per-box price.
func (s SKU) BoxPrice() Money {
	return s.boxPrice
}

// UnitPrice returns the price selected by the given unit type.
func (s SKU) UnitPrice(unitType UnitType) (Money, error) {
	switch unitType {
	case UnitTypePacket:
		return s.price, nil
	case UnitTypeBox:
		return s.boxPrice, nil
	default:
		return Money{}, unitType.Validate()
	}
}

// IsEqual compares two SKUs by catalog identity.
func (s SKU) IsEqual(other SKU) bool {
	return s.id.IsEqual(other.id)
}

func (s *SKU) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *SKU) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("sku name")
	}
	s.name = name
	return nil
}

func (s *SKU) setPrices(price, boxPrice Money) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidError("sku price")
	}
	if boxPrice.IsNegative() {
		return errs.NewValueIsInvalidError("sku box price")
	}
	s.price = price
	s.boxPrice = boxPrice
	return nil
}
