package queries

import (
	"errors"
	"time"

	"distribops/internal/core/domain/model/kernel"
	"distribops/internal/pkg/guard"
)

var ErrGetReturnOrderByIDQueryIsNotConstructed = errors.New(
	"GetReturnOrderByIDQuery must be created via NewGetReturnOrderByIDQuery constructor",
)

// GetReturnOrderByIDQuery retrieves a single return order with its items.
type GetReturnOrderByIDQuery struct {
	returnOrderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetReturnOrderByIDQuery creates a query for the given return order.
func NewGetReturnOrderByIDQuery(returnOrderID kernel.UUID) (GetReturnOrderByIDQuery, error) {
	if err := returnOrderID.Validate(); err != nil {
		return GetReturnOrderByIDQuery{}, err
	}

	return GetReturnOrderByIDQuery{
		returnOrderID: returnOrderID,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetReturnOrderByIDQuery) Validate() error {
	return q.guard.Validate(ErrGetReturnOrderByIDQueryIsNotConstructed)
}

// ReturnOrderID returns the identifier of the requested return order.
func (q GetReturnOrderByIDQuery) ReturnOrderID() kernel.UUID {
	return q.returnOrderID
}

// GetReturnOrderByIDQueryResponse is the flat read model of a return order.
type GetReturnOrderByIDQueryResponse struct {
	ID            string              `json:"id"`
	ShopID        string              `json:"shopId"`
	LinkedOrderID string              `json:"linkedOrderId"`
	Items         []OrderItemResponse `json:"items"`
	Reason        string              `json:"reason"`
	Notes         string              `json:"notes,omitempty"`
	EmployeeID    *string             `json:"employeeId,omitempty"`
	TotalAmount   string              `json:"totalAmount"`
	CreatedAt     time.Time           `json:"createdAt"`
}
