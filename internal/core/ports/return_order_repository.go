package ports

import (
	"context"

	"distribops/internal/core/domain/model/kernel"
	"distribops/internal/core/domain/model/returnorder"
)

// ReturnOrderRepository defines the persistence contract for return orders.
// Return orders are immutable after creation, so there is no Update.
type ReturnOrderRepository interface {
	// Add persists a new return order to storage.
	Add(ctx context.Context, aggregate *returnorder.ReturnOrder) error

	// Get retrieves a return order by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such return order exists.
	Get(ctx context.Context, id kernel.UUID) (*returnorder.ReturnOrder, error)
}
