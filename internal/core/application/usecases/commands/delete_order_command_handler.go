package commands

import (
	"context"

	"distribops/internal/core/ports"
)

// DeleteOrderCommandHandler handles order deletion. The order must exist;
// deleting an unknown id reports not found.
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	cache      ports.Cache
}

// NewDeleteOrderCommandHandler creates a handler for order deletion operations.
func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory, cache ports.Cache) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

// Handle removes the order and its items from storage.
func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	if _, err := orderRepo.Get(ctx, cmd.OrderID()); err != nil {
		return err
	}

	if err := orderRepo.Delete(ctx, cmd.OrderID()); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	// Evict the cached read model so a deleted order cannot be served
	// from cache. Best effort; the entry expires on its own otherwise.
	_ = h.cache.Delete(ctx, ports.OrderCacheKey(cmd.OrderID().String()))

	return nil
}
