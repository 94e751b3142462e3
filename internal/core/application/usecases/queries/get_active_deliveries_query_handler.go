package queries

import (
	"context"
	"time"

	"distribops/internal/core/domain/model/delivery"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveDeliveriesQueryHandler retrieves all in-flight deliveries, sorted
// by id for stable output.
type GetActiveDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveDeliveriesQueryHandler creates a handler for in-flight delivery
// queries.
func NewGetActiveDeliveriesQueryHandler(db *gorm.DB) GetActiveDeliveriesQueryHandler {
	return GetActiveDeliveriesQueryHandler{db: db}
}

// Handle executes the query and derives each row's delayed flag against the
// current clock.
func (h GetActiveDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetActiveDeliveriesQuery,
) ([]ActiveDeliveryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			status,
			estimated_delivery_date
		FROM deliveries
		WHERE status NOT IN (?, ?)
		ORDER BY id
	`, delivery.StatusDelivered.String(), delivery.StatusCancelled.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	now := time.Now().UTC()
	deliveries := make([]ActiveDeliveryResponse, 0)
	for rows.Next() {
		var (
			id, orderID uuid.UUID
			status      string
			estimate    time.Time
		)

		if err = rows.Scan(&id, &orderID, &status, &estimate); err != nil {
			return nil, err
		}

		deliveries = append(deliveries, ActiveDeliveryResponse{
			ID:                    id.String(),
			OrderID:               orderID.String(),
			Status:                status,
			EstimatedDeliveryDate: estimate,
			Delayed:               isDelayed(status, estimate, now),
		})
	}

	return deliveries, rows.Err()
}
