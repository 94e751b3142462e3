package queries

import (
	"context"
	"database/sql"
	"errors"

	"distribops/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetDeliveryByOrderIDQueryHandler retrieves a delivery by the order it
// fulfills.
type GetDeliveryByOrderIDQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryByOrderIDQueryHandler creates a handler for order-keyed
// delivery reads.
func NewGetDeliveryByOrderIDQueryHandler(db *gorm.DB) GetDeliveryByOrderIDQueryHandler {
	return GetDeliveryByOrderIDQueryHandler{db: db}
}

// Handle returns the delivery read model for the order.
func (h GetDeliveryByOrderIDQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryByOrderIDQuery,
) (*DeliveryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	response, err := loadDelivery(ctx, h.db, "order_id", query.OrderID().String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("orderId", query.OrderID())
	}
	return response, err
}
