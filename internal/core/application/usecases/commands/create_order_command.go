package commands

import (
	"errors"

	"distribops/internal/core/domain/model/kernel"
	"distribops/internal/core/domain/model/order"
	"distribops/internal/pkg/errs"
	"distribops/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to register a new order for a shop.
// Items are fully built domain line items carrying their SKU snapshots; the
// handler derives all amounts from them.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, shopID, &employeeID, items, "SAVE10")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	shopID       kernel.UUID
	employeeID   *kernel.UUID
	items        []order.OrderItem
	discountCode string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Requires valid order and shop identifiers and at least one constructed item.
// The employee identity and discount code are optional.
func NewCreateOrderCommand(
	orderID, shopID kernel.UUID,
	employeeID *kernel.UUID,
	items []order.OrderItem,
	discountCode string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		discountCode: discountCode,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setShopID(shopID),
		cmd.setEmployeeID(employeeID),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ShopID returns the identifier of the ordering shop.
func (c CreateOrderCommand) ShopID() kernel.UUID {
	return c.shopID
}

// EmployeeID returns the acting identity, or nil if none was captured.
func (c CreateOrderCommand) EmployeeID() *kernel.UUID {
	return c.employeeID
}

// Items returns the order line items.
func (c CreateOrderCommand) Items() []order.OrderItem {
	return c.items
}

// DiscountCode returns the discount code. May be empty.
func (c CreateOrderCommand) DiscountCode() string {
	return c.discountCode
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setShopID(shopID kernel.UUID) error {
	if err := shopID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shopId", err)
	}

	c.shopID = shopID
	return nil
}

func (c *CreateOrderCommand) setEmployeeID(employeeID *kernel.UUID) error {
	if employeeID == nil {
		return nil
	}
	if err := employeeID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("employeeId", err)
	}

	id := *employeeID
	c.employeeID = &id
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.OrderItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("orderItems")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	c.items = items
	return nil
}
