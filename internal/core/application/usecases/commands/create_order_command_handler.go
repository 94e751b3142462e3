package commands

import (
	"context"
	"encoding/json"
	"time"

	"distribops/internal/core/domain/model/order"
	"distribops/internal/core/ports"
)

// OrderCreatedEvent is the outbox payload written when an order is created.
// The dispatcher hands it to the fulfillment flow that materializes the
// order's delivery.
type OrderCreatedEvent struct {
	OrderID string `json:"orderId"`
	ShopID  string `json:"shopId"`
}

// CreateOrderCommandHandler handles the business logic for order creation:
// pricing the item set, persisting the order, and enqueueing the
// order-created event in the same transaction.
//
// The event goes through the outbox rather than being published inline, so a
// broken fulfillment path can never fail order intake.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command and returns the created order
// with its computed amounts.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		cmd.ShopID(),
		cmd.EmployeeID(),
		cmd.Items(),
		cmd.DiscountCode(),
		time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(OrderCreatedEvent{
		OrderID: aggregate.ID().String(),
		ShopID:  aggregate.ShopID().String(),
	})
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

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.OutboxRepository().Enqueue(ctx, ports.EventOrderCreated, payload); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
