package queries

import (
	"errors"
	"time"

	"distribops/internal/pkg/guard"
)

var ErrGetActiveDeliveriesQueryIsNotConstructed = errors.New(
	"GetActiveDeliveriesQuery must be created via NewGetActiveDeliveriesQuery constructor",
)

// GetActiveDeliveriesQuery retrieves all deliveries still in flight, i.e. not
// Delivered and not Cancelled. Used by the delay monitor.
type GetActiveDeliveriesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveDeliveriesQuery creates a query for all in-flight deliveries.
func NewGetActiveDeliveriesQuery() GetActiveDeliveriesQuery {
	return GetActiveDeliveriesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveDeliveriesQueryIsNotConstructed)
}

// ActiveDeliveryResponse is a summary row of an in-flight delivery.
type ActiveDeliveryResponse struct {
	ID                    string    `json:"id"`
	OrderID               string    `json:"orderId"`
	Status                string    `json:"status"`
	EstimatedDeliveryDate time.Time `json:"estimatedDeliveryDate"`
	Delayed               bool      `json:"delayed"`
}
