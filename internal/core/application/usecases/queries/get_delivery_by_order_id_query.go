package queries

import (
	"errors"

	"distribops/internal/core/domain/model/kernel"
	"distribops/internal/pkg/guard"
)

var ErrGetDeliveryByOrderIDQueryIsNotConstructed = errors.New(
	"GetDeliveryByOrderIDQuery must be created via NewGetDeliveryByOrderIDQuery constructor",
)

// GetDeliveryByOrderIDQuery retrieves the delivery fulfilling a given order.
// At most one exists per order.
type GetDeliveryByOrderIDQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDeliveryByOrderIDQuery creates a query for the given order's delivery.
func NewGetDeliveryByOrderIDQuery(orderID kernel.UUID) (GetDeliveryByOrderIDQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetDeliveryByOrderIDQuery{}, err
	}

	return GetDeliveryByOrderIDQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryByOrderIDQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryByOrderIDQueryIsNotConstructed)
}

// OrderID returns the identifier of the order whose delivery is requested.
func (q GetDeliveryByOrderIDQuery) OrderID() kernel.UUID {
	return q.orderID
}
