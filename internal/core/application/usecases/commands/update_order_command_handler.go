package commands

import (
	"context"

	"distribops/internal/core/domain/model/order"
	"distribops/internal/core/ports"
)

// UpdateOrderCommandHandler handles the administrative full replace of an
// order's item set and discount code.
type UpdateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	cache      ports.Cache
}

// NewUpdateOrderCommandHandler creates a handler for order update operations.
func NewUpdateOrderCommandHandler(uowFactory OrderUoWFactory, cache ports.Cache) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

// Handle loads the order, replaces its content, recomputes the amounts, and
// persists the result. Returns the updated order.
func (h *UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.Replace(cmd.Items(), cmd.DiscountCode()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	// Evict the cached read model so the next read sees the new amounts.
	// Best effort; the entry expires on its own if the delete fails.
	_ = h.cache.Delete(ctx, ports.OrderCacheKey(cmd.OrderID().String()))

	return aggregate, nil
}
