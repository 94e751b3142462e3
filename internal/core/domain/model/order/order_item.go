package order

import (
	"errors"
	"fmt"

	"distribops/internal/core/domain/model/product"
	"distribops/internal/pkg/errs"
	"distribops/internal/pkg/guard"
)

// ErrOrderItemIsNotConstructed is returned when an OrderItem was not created
// through the NewOrderItem factory method.
var ErrOrderItemIsNotConstructed = errors.New("OrderItem must be created via NewOrderItem constructor")

// OrderItem is a single order line: a SKU snapshot, a positive quantity, and
// the unit type that selects which of the SKU's prices applies.
//
// The line amount is fixed at construction from the embedded snapshot, so it
// never drifts when the catalog changes.
type OrderItem struct {
	sku      product.SKU
	quantity int
	unitType product.UnitType
	amount   product.Money

	guard guard.ConstructorGuard
}

// NewOrderItem creates an order line with validation. The SKU must be a
// constructed snapshot, quantity must be positive, and unitType must be one of
// the enumerated values. The line amount is quantity times the selected unit
// price.
func NewOrderItem(sku product.SKU, quantity int, unitType product.UnitType) (OrderItem, error) {
	if err := sku.Validate(); err != nil {
		return OrderItem{}, err
	}
	if quantity <= 0 {
		return OrderItem{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	unitPrice, err := sku.UnitPrice(unitType)
	if err != nil {
		return OrderItem{}, err
	}

	return OrderItem{
		sku:      sku,
		quantity: quantity,
		unitType: unitType,
		amount:   unitPrice.MulInt(quantity),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the item was created through NewOrderItem.
func (i OrderItem) Validate() error {
	return i.guard.Validate(ErrOrderItemIsNotConstructed)
}

// SKU returns the embedded product snapshot.
func (i OrderItem) SKU() product.SKU {
	return i.sku
}

// Quantity returns the ordered quantity in the line's unit type.
func (i OrderItem) Quantity() int {
	return i.quantity
}

// UnitType returns whether the line is priced per packet or per box.
func (i OrderItem) UnitType() product.UnitType {
	return i.unitType
}

// Amount returns the line amount: quantity times the selected unit price.
func (i OrderItem) Amount() product.Money {
	return i.amount
}
