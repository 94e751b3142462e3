package ports

import (
	"context"

	"distribops/internal/core/domain/model/delivery"
	"distribops/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery aggregates.
//
// Storage must enforce at most one delivery per order with a unique constraint
// on the order id. Add reports a violation as errs.ObjectAlreadyExistsError so
// callers can fall back to GetByOrderID.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate to storage.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery aggregate,
	// including newly appended status history entries.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such delivery exists.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetByOrderID retrieves the delivery fulfilling the given order.
	// Returns errs.ObjectNotFoundError when the order has no delivery.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error)
}
