package commands

import (
	"errors"

	"distribops/internal/core/domain/model/kernel"
	"distribops/internal/pkg/errs"
	"distribops/internal/pkg/guard"
)

var ErrCreateDeliveryCommandIsNotConstructed = errors.New(
	"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
)

// CreateDeliveryCommand represents a request to materialize the delivery for
// an order. Normally issued by the fulfillment flow off the order-created
// event; safe to issue repeatedly for the same order.
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	shopID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateDeliveryCommand creates a command to materialize an order's delivery.
func NewCreateDeliveryCommand(orderID, shopID kernel.UUID) (CreateDeliveryCommand, error) {
	cmd := CreateDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setShopID(shopID),
	); err != nil {
		return CreateDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to fulfill.
func (c CreateDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ShopID returns the identifier of the destination shop.
func (c CreateDeliveryCommand) ShopID() kernel.UUID {
	return c.shopID
}

func (c *CreateDeliveryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}

	c.orderID = orderID
	return nil
}

func (c *CreateDeliveryCommand) setShopID(shopID kernel.UUID) error {
	if err := shopID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shopId", err)
	}

	c.shopID = shopID
	return nil
}
