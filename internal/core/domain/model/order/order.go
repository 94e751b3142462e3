package order

import (
	"errors"
	"time"

	"distribops/internal/core/domain/model/kernel"
	"distribops/internal/core/domain/model/product"
	"distribops/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder or RestoreOrder factory methods.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// discountRate is the flat discount applied when any discount code is present.
// Codes are not validated against a registry; any non-empty code earns the
// same rate. See the discount policy note in DESIGN.md.
var discountRate = decimal.RequireFromString("0.1")

// Order is the aggregate root for a shop's purchase request. It owns its
// line items and the derived amounts, and is immutable after creation except
// for the administrative full replace of its item set.
//
// Invariants:
//   - at least one line item
//   - finalAmount = totalAmount - discountAmount
//   - discountAmount is zero without a discount code, otherwise 10% of the
//     total rounded to whole currency units
type Order struct {
	id     kernel.UUID
	shopID kernel.UUID

	// employeeID identifies whoever placed the order; nil when the acting
	// identity is unknown.
	employeeID *kernel.UUID

	items          []OrderItem
	discountCode   string
	totalAmount    product.Money
	discountAmount product.Money
	finalAmount    product.Money
	createdAt      time.Time

	isConstructed bool
}

// NewOrder creates an Order with validation and computes its amounts from the
// line items and discount code.
func NewOrder(
	id kernel.UUID,
	shopID kernel.UUID,
	employeeID *kernel.UUID,
	items []OrderItem,
	discountCode string,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setShopID(shopID),
		o.setEmployeeID(employeeID),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	o.applyPricing(discountCode)
	return o, nil
}

// RestoreOrder reconstructs an Order from persistence, trusting the stored
// amounts instead of recomputing them.
func RestoreOrder(
	id kernel.UUID,
	shopID kernel.UUID,
	employeeID *kernel.UUID,
	items []OrderItem,
	discountCode string,
	totalAmount, discountAmount, finalAmount product.Money,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setShopID(shopID),
		o.setEmployeeID(employeeID),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	o.discountCode = discountCode
	o.totalAmount = totalAmount
	o.discountAmount = discountAmount
	o.finalAmount = finalAmount
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// ShopID returns the identifier of the shop that placed the order.
func (o *Order) ShopID() kernel.UUID {
	return o.shopID
}

// EmployeeID returns the acting identity, or nil if none was captured.
func (o *Order) EmployeeID() *kernel.UUID {
	return o.employeeID
}

// Items returns the ordered line items. The returned slice is a copy.
func (o *Order) Items() []OrderItem {
	items := make([]OrderItem, len(o.items))
	copy(items, o.items)
	return items
}

// DiscountCode returns the discount code supplied at creation. May be empty.
func (o *Order) DiscountCode() string {
	return o.discountCode
}

// TotalAmount returns the sum of all line amounts before discount.
func (o *Order) TotalAmount() product.Money {
	return o.totalAmount
}

// DiscountAmount returns the discount applied to the order.
func (o *Order) DiscountAmount() product.Money {
	return o.discountAmount
}

// FinalAmount returns totalAmount minus discountAmount.
func (o *Order) FinalAmount() product.Money {
	return o.finalAmount
}

// CreatedAt returns the order creation time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Replace swaps the order's item set and discount code and recomputes all
// amounts with the same pricing rule as creation. This is the administrative
// full-replace edit; it never touches the order's delivery.
func (o *Order) Replace(items []OrderItem, discountCode string) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := o.setItems(items); err != nil {
		return err
	}

	o.applyPricing(discountCode)
	return nil
}

// QuantityBySKU sums line quantities per SKU id. Used to bound return orders
// against what the order actually contained.
func (o *Order) QuantityBySKU() map[kernel.UUID]int {
	quantities := make(map[kernel.UUID]int, len(o.items))
	for _, item := range o.items {
		quantities[item.SKU().ID()] += item.Quantity()
	}
	return quantities
}

// applyPricing recomputes total, discount, and final amounts.
// Any non-empty discount code earns the flat rate; codes are never looked up.
func (o *Order) applyPricing(discountCode string) {
	total := product.Money{}
	for _, item := range o.items {
		total = total.Add(item.Amount())
	}

	discount := product.Money{}
	if discountCode != "" {
		discount = total.MulRateRounded(discountRate)
	}

	o.discountCode = discountCode
	o.totalAmount = total
	o.discountAmount = discount
	o.finalAmount = total.Sub(discount)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setShopID(shopID kernel.UUID) error {
	if err := shopID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shopId", err)
	}
	o.shopID = shopID
	return nil
}

func (o *Order) setEmployeeID(employeeID *kernel.UUID) error {
	if employeeID == nil {
		o.employeeID = nil
		return nil
	}
	if err := employeeID.Validate(); err != nil {
		return err
	}
	id := *employeeID
	o.employeeID = &id
	return nil
}

func (o *Order) setItems(items []OrderItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("orderItems")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = make([]OrderItem, len(items))
	copy(o.items, items)
	return nil
}
