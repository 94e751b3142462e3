package returnorder

import (
	"errors"
	"fmt"
	"time"

	"distribops/internal/core/domain/model/kernel"
	"distribops/internal/core/domain/model/order"
	"distribops/internal/core/domain/model/product"
	"distribops/internal/pkg/errs"
)

// ErrReturnOrderIsNotConstructed is returned when a ReturnOrder instance was
// not created through the NewReturnOrder or RestoreReturnOrder factory methods.
var ErrReturnOrderIsNotConstructed = errors.New(
	"ReturnOrder must be created via NewReturnOrder constructor",
)

// ReturnOrder is the aggregate root for reversing part or all of a previously
// placed order. It reuses the ledger's line-item pricing for the returned
// goods and always references the order it reverses.
type ReturnOrder struct {
	id            kernel.UUID
	shopID        kernel.UUID
	linkedOrderID kernel.UUID
	items         []order.OrderItem
	reason        Reason
	notes         string
	employeeID    *kernel.UUID
	totalAmount   product.Money
	createdAt     time.Time

	isConstructed bool
}

// NewReturnOrder creates a ReturnOrder with validation. The total amount is
// the sum of the returned line amounts under the same unit-price rule orders
// use; no discount applies to returns.
func NewReturnOrder(
	id kernel.UUID,
	shopID kernel.UUID,
	linkedOrderID kernel.UUID,
	items []order.OrderItem,
	reason Reason,
	notes string,
	employeeID *kernel.UUID,
	createdAt time.Time,
) (*ReturnOrder, error) {
	r := &ReturnOrder{
		notes:         notes,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setShopID(shopID),
		r.setLinkedOrderID(linkedOrderID),
		r.setItems(items),
		r.setReason(reason),
		r.setEmployeeID(employeeID),
	); err != nil {
		return nil, err
	}

	total := product.Money{}
	for _, item := range r.items {
		total = total.Add(item.Amount())
	}
	r.totalAmount = total

	return r, nil
}

// RestoreReturnOrder reconstructs a ReturnOrder from persistence, trusting the
// stored total instead of recomputing it.
func RestoreReturnOrder(
	id kernel.UUID,
	shopID kernel.UUID,
	linkedOrderID kernel.UUID,
	items []order.OrderItem,
	reason Reason,
	notes string,
	employeeID *kernel.UUID,
	totalAmount product.Money,
	createdAt time.Time,
) (*ReturnOrder, error) {
	r, err := NewReturnOrder(id, shopID, linkedOrderID, items, reason, notes, employeeID, createdAt)
	if err != nil {
		return nil, err
	}
	r.totalAmount = totalAmount
	return r, nil
}

// Validate ensures the ReturnOrder instance was properly constructed.
func (r *ReturnOrder) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrReturnOrderIsNotConstructed
	}
	return nil
}

// ValidateAgainstOrder enforces the cross-entity invariants between a return
// and the order it reverses: the linked order must belong to the same shop,
// every returned SKU must appear in the order, and returned quantities must
// not exceed the ordered quantities.
func (r *ReturnOrder) ValidateAgainstOrder(linked *order.Order) error {
	if err := linked.Validate(); err != nil {
		return err
	}
	if !linked.ID().IsEqual(r.linkedOrderID) {
		return errs.NewValueIsInvalidErrorWithCause(
			"linkedOrderId",
			fmt.Errorf("order %s is not the linked order %s", linked.ID(), r.linkedOrderID),
		)
	}
	if !linked.ShopID().IsEqual(r.shopID) {
		return errs.NewValueIsInvalidErrorWithCause(
			"linkedOrderId",
			fmt.Errorf("order %s belongs to a different shop", linked.ID()),
		)
	}

	ordered := linked.QuantityBySKU()
	returned := make(map[kernel.UUID]int, len(r.items))
	for _, item := range r.items {
		returned[item.SKU().ID()] += item.Quantity()
	}

	for skuID, quantity := range returned {
		orderedQuantity, ok := ordered[skuID]
		if !ok {
			return errs.NewValueIsInvalidErrorWithCause(
				"returnItems",
				fmt.Errorf("sku %s is not part of order %s", skuID, linked.ID()),
			)
		}
		if quantity > orderedQuantity {
			return errs.NewValueIsOutOfRangeError("return quantity", quantity, 1, orderedQuantity)
		}
	}

	return nil
}

// IsEqual compares two return orders by their unique identifiers.
func (r *ReturnOrder) IsEqual(other *ReturnOrder) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the return order's unique identifier.
func (r *ReturnOrder) ID() kernel.UUID {
	return r.id
}

// ShopID returns the identifier of the shop returning the goods.
func (r *ReturnOrder) ShopID() kernel.UUID {
	return r.shopID
}

// LinkedOrderID returns the identifier of the order being reversed.
func (r *ReturnOrder) LinkedOrderID() kernel.UUID {
	return r.linkedOrderID
}

// Items returns the returned line items. The returned slice is a copy.
func (r *ReturnOrder) Items() []order.OrderItem {
	items := make([]order.OrderItem, len(r.items))
	copy(items, r.items)
	return items
}

// Reason returns the return reason code.
func (r *ReturnOrder) Reason() Reason {
	return r.reason
}

// Notes returns free-text notes. May be empty.
func (r *ReturnOrder) Notes() string {
	return r.notes
}

// EmployeeID returns the acting identity, or nil if none was captured.
func (r *ReturnOrder) EmployeeID() *kernel.UUID {
	return r.employeeID
}

// TotalAmount returns the value of the returned goods.
func (r *ReturnOrder) TotalAmount() product.Money {
	return r.totalAmount
}

// CreatedAt returns the return order creation time.
func (r *ReturnOrder) CreatedAt() time.Time {
	return r.createdAt
}

func (r *ReturnOrder) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *ReturnOrder) setShopID(shopID kernel.UUID) error {
	if err := shopID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shopId", err)
	}
	r.shopID = shopID
	return nil
}

func (r *ReturnOrder) setLinkedOrderID(linkedOrderID kernel.UUID) error {
	if err := linkedOrderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("linkedOrderId", err)
	}
	r.linkedOrderID = linkedOrderID
	return nil
}

func (r *ReturnOrder) setItems(items []order.OrderItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("returnItems")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	r.items = make([]order.OrderItem, len(items))
	copy(r.items, items)
	return nil
}

func (r *ReturnOrder) setReason(reason Reason) error {
	if err := reason.Validate(); err != nil {
		return err
	}
	r.reason = reason
	return nil
}

func (r *ReturnOrder) setEmployeeID(employeeID *kernel.UUID) error {
	if employeeID == nil {
		r.employeeID = nil
		return nil
	}
	if err := employeeID.Validate(); err != nil {
		return err
	}
	id := *employeeID
	r.employeeID = &id
	return nil
}
