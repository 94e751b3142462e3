// Package queries contains read operations over the persisted state.
// Query handlers go straight to the database and return flat response
// models, bypassing the domain aggregates and the unit of work.
package queries

import (
	"errors"
	"time"

	"distribops/internal/core/domain/model/kernel"
	"distribops/internal/pkg/guard"
)

var ErrGetOrderByIDQueryIsNotConstructed = errors.New(
	"GetOrderByIDQuery must be created via NewGetOrderByIDQuery constructor",
)

// GetOrderByIDQuery retrieves a single order with its line items and amounts.
type GetOrderByIDQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderByIDQuery creates a query for the given order.
func NewGetOrderByIDQuery(orderID kernel.UUID) (GetOrderByIDQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderByIDQuery{}, err
	}

	return GetOrderByIDQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderByIDQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderByIDQueryIsNotConstructed)
}

// OrderID returns the identifier of the requested order.
func (q GetOrderByIDQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderItemResponse is a single line of an order or return order response.
// Money fields are decimal strings.
type OrderItemResponse struct {
	SKUID          string `json:"skuId"`
	SKUName        string `json:"skuName"`
	SKUDescription string `json:"skuDescription,omitempty"`
	Price          string `json:"price"`
	BoxPrice       string `json:"boxPrice"`
	Quantity       int    `json:"quantity"`
	UnitType       string `json:"unitType"`
	Amount         string `json:"amount"`
}

// GetOrderByIDQueryResponse is the flat read model of an order.
// The struct is JSON-serializable so it can be cached as-is.
type GetOrderByIDQueryResponse struct {
	ID             string              `json:"id"`
	ShopID         string              `json:"shopId"`
	EmployeeID     *string             `json:"employeeId,omitempty"`
	Items          []OrderItemResponse `json:"items"`
	DiscountCode   string              `json:"discountCode,omitempty"`
	TotalAmount    string              `json:"totalAmount"`
	DiscountAmount string              `json:"discountAmount"`
	FinalAmount    string              `json:"finalAmount"`
	CreatedAt      time.Time           `json:"createdAt"`
}
