// Package ports defines the persistence and infrastructure contracts of the
// core. These interfaces sit between the domain layer and the adapters,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"distribops/internal/core/domain/model/kernel"
	"distribops/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// Replaces the order's items wholesale with the aggregate's current set.
	Update(ctx context.Context, aggregate *order.Order) error

	// Delete removes an order and its items from storage.
	// Deliveries already materialized for the order are left untouched.
	Delete(ctx context.Context, id kernel.UUID) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
