package commands

import (
	"context"
	"time"

	"distribops/internal/core/domain/model/returnorder"
)

// CreateReturnOrderCommandHandler handles return order creation. The linked
// order is loaded inside the same transaction so the return is validated
// against what the order actually contained: same shop, known SKUs, and
// returned quantities bounded by the ordered quantities.
type CreateReturnOrderCommandHandler struct {
	uowFactory ReturnOrderUoWFactory
}

// NewCreateReturnOrderCommandHandler creates a handler for return order creation.
func NewCreateReturnOrderCommandHandler(uowFactory ReturnOrderUoWFactory) CreateReturnOrderCommandHandler {
	return CreateReturnOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the return order creation command and returns the created
// return order with its computed total.
func (h *CreateReturnOrderCommandHandler) Handle(
	ctx context.Context,
	cmd CreateReturnOrderCommand,
) (*returnorder.ReturnOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := returnorder.NewReturnOrder(
		cmd.ReturnOrderID(),
		cmd.ShopID(),
		cmd.LinkedOrderID(),
		cmd.Items(),
		cmd.Reason(),
		cmd.Notes(),
		cmd.EmployeeID(),
		time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	linked, err := uow.OrderRepository().Get(ctx, cmd.LinkedOrderID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.ValidateAgainstOrder(linked); err != nil {
		return nil, err
	}

	if err = uow.ReturnOrderRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
