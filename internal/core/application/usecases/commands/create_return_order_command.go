package commands

import (
	"errors"

	"distribops/internal/core/domain/model/kernel"
	"distribops/internal/core/domain/model/order"
	"distribops/internal/core/domain/model/returnorder"
	"distribops/internal/pkg/errs"
	"distribops/internal/pkg/guard"
)

var ErrCreateReturnOrderCommandIsNotConstructed = errors.New(
	"CreateReturnOrderCommand must be created via NewCreateReturnOrderCommand constructor",
)

// CreateReturnOrderCommand represents a request to reverse part or all of a
// previously placed order. The reason code is required; notes and the acting
// identity are optional.
type CreateReturnOrderCommand struct { //nolint:recvcheck //using for validation
	returnOrderID kernel.UUID
	shopID        kernel.UUID
	linkedOrderID kernel.UUID
	items         []order.OrderItem
	reason        returnorder.Reason
	notes         string
	employeeID    *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateReturnOrderCommand creates a command to register a return order.
func NewCreateReturnOrderCommand(
	returnOrderID, shopID, linkedOrderID kernel.UUID,
	items []order.OrderItem,
	reason returnorder.Reason,
	notes string,
	employeeID *kernel.UUID,
) (CreateReturnOrderCommand, error) {
	cmd := CreateReturnOrderCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setReturnOrderID(returnOrderID),
		cmd.setShopID(shopID),
		cmd.setLinkedOrderID(linkedOrderID),
		cmd.setItems(items),
		cmd.setReason(reason),
		cmd.setEmployeeID(employeeID),
	); err != nil {
		return CreateReturnOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateReturnOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateReturnOrderCommandIsNotConstructed)
}

// ReturnOrderID returns the unique identifier for the return order.
func (c CreateReturnOrderCommand) ReturnOrderID() kernel.UUID {
	return c.returnOrderID
}

// ShopID returns the identifier of the shop returning the goods.
func (c CreateReturnOrderCommand) ShopID() kernel.UUID {
	return c.shopID
}

// LinkedOrderID returns the identifier of the order being reversed.
func (c CreateReturnOrderCommand) LinkedOrderID() kernel.UUID {
	return c.linkedOrderID
}

// Items returns the returned line items.
func (c CreateReturnOrderCommand) Items() []order.OrderItem {
	return c.items
}

// Reason returns the return reason code.
func (c CreateReturnOrderCommand) Reason() returnorder.Reason {
	return c.reason
}

// Notes returns free-text notes. May be empty.
func (c CreateReturnOrderCommand) Notes() string {
	return c.notes
}

// EmployeeID returns the acting identity, or nil if none was captured.
func (c CreateReturnOrderCommand) EmployeeID() *kernel.UUID {
	return c.employeeID
}

func (c *CreateReturnOrderCommand) setReturnOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.returnOrderID = id
	return nil
}

func (c *CreateReturnOrderCommand) setShopID(shopID kernel.UUID) error {
	if err := shopID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shopId", err)
	}

	c.shopID = shopID
	return nil
}

func (c *CreateReturnOrderCommand) setLinkedOrderID(linkedOrderID kernel.UUID) error {
	if err := linkedOrderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("linkedOrderId", err)
	}

	c.linkedOrderID = linkedOrderID
	return nil
}

func (c *CreateReturnOrderCommand) setItems(items []order.OrderItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("returnItems")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	c.items = items
	return nil
}

func (c *CreateReturnOrderCommand) setReason(reason returnorder.Reason) error {
	if err := reason.Validate(); err != nil {
		return err
	}

	c.reason = reason
	return nil
}

func (c *CreateReturnOrderCommand) setEmployeeID(employeeID *kernel.UUID) error {
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
