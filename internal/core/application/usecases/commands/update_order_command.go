package commands

import (
	"errors"

	"distribops/internal/core/domain/model/kernel"
	"distribops/internal/core/domain/model/order"
	"distribops/internal/pkg/errs"
	"distribops/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand represents a full replace of an order's item set and
// discount code. Amounts are recomputed with the same pricing rule as
// creation; the order's delivery is never touched.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	items        []order.OrderItem
	discountCode string

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand creates a command to replace an order's content.
func NewUpdateOrderCommand(
	orderID kernel.UUID,
	items []order.OrderItem,
	discountCode string,
) (UpdateOrderCommand, error) {
	cmd := UpdateOrderCommand{
		discountCode: discountCode,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItems(items),
	); err != nil {
		return UpdateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to update.
func (c UpdateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Items returns the replacement line items.
func (c UpdateOrderCommand) Items() []order.OrderItem {
	return c.items
}

// DiscountCode returns the replacement discount code. May be empty.
func (c UpdateOrderCommand) DiscountCode() string {
	return c.discountCode
}

func (c *UpdateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateOrderCommand) setItems(items []order.OrderItem) error {
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
