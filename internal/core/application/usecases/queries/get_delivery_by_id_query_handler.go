package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"distribops/internal/core/domain/model/delivery"
	"distribops/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDeliveryByIDQueryHandler retrieves a single delivery from the database,
// deriving the delayed flag against the current clock.
type GetDeliveryByIDQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryByIDQueryHandler creates a handler for single delivery reads.
func NewGetDeliveryByIDQueryHandler(db *gorm.DB) GetDeliveryByIDQueryHandler {
	return GetDeliveryByIDQueryHandler{db: db}
}

// Handle returns the delivery read model.
func (h GetDeliveryByIDQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryByIDQuery,
) (*DeliveryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	response, err := loadDelivery(ctx, h.db, "id", query.DeliveryID().String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("deliveryId", query.DeliveryID())
	}
	return response, err
}

// loadDelivery reads one delivery row plus its history, selected by the given
// column. Returns sql.ErrNoRows when no row matches; callers translate that
// into their own not-found error.
func loadDelivery(
	ctx context.Context,
	db *gorm.DB,
	whereColumn, value string,
) (*DeliveryResponse, error) {
	var (
		id, orderID, shopID   uuid.UUID
		status                string
		currentLocation       string
		estimatedDeliveryDate time.Time
		actualDeliveryDate    sql.NullTime
		trackingNumber        string
		cancellationReason    sql.NullString
		cancelledBy           uuid.NullUUID
		cancelledAt           sql.NullTime
		cancellationNotes     sql.NullString
		createdAt, updatedAt  time.Time
	)

	row := db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			shop_id,
			status,
			current_location,
			estimated_delivery_date,
			actual_delivery_date,
			tracking_number,
			cancellation_reason,
			cancelled_by,
			cancelled_at,
			cancellation_notes,
			created_at,
			updated_at
		FROM deliveries
		WHERE `+whereColumn+` = ?
	`, value).Row()

	err := row.Scan(
		&id, &orderID, &shopID, &status, &currentLocation,
		&estimatedDeliveryDate, &actualDeliveryDate, &trackingNumber,
		&cancellationReason, &cancelledBy, &cancelledAt, &cancellationNotes,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	history, err := loadStatusHistory(ctx, db, id)
	if err != nil {
		return nil, err
	}

	response := DeliveryResponse{
		ID:                    id.String(),
		OrderID:               orderID.String(),
		ShopID:                shopID.String(),
		Status:                status,
		CurrentLocation:       currentLocation,
		EstimatedDeliveryDate: estimatedDeliveryDate,
		TrackingNumber:        trackingNumber,
		Delayed:               isDelayed(status, estimatedDeliveryDate, time.Now().UTC()),
		StatusHistory:         history,
		CreatedAt:             createdAt,
		UpdatedAt:             updatedAt,
	}
	if actualDeliveryDate.Valid {
		date := actualDeliveryDate.Time
		response.ActualDeliveryDate = &date
	}
	if cancellationReason.Valid {
		cancellation := CancellationResponse{
			Reason: cancellationReason.String,
			Notes:  cancellationNotes.String,
		}
		if cancelledAt.Valid {
			cancellation.CancelledAt = cancelledAt.Time
		}
		if cancelledBy.Valid {
			by := cancelledBy.UUID.String()
			cancellation.CancelledBy = &by
		}
		response.CancellationReason = &cancellation
	}

	return &response, nil
}

func loadStatusHistory(ctx context.Context, db *gorm.DB, deliveryID uuid.UUID) ([]StatusUpdateResponse, error) {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			status,
			timestamp,
			notes,
			location,
			updated_by
		FROM delivery_status_updates
		WHERE delivery_id = ?
		ORDER BY id
	`, deliveryID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]StatusUpdateResponse, 0)
	for rows.Next() {
		var (
			status    string
			timestamp time.Time
			notes     string
			location  string
			updatedBy uuid.NullUUID
		)

		if err = rows.Scan(&status, &timestamp, &notes, &location, &updatedBy); err != nil {
			return nil, err
		}

		entry := StatusUpdateResponse{
			Status:    status,
			Timestamp: timestamp,
			Notes:     notes,
			Location:  location,
		}
		if updatedBy.Valid {
			by := updatedBy.UUID.String()
			entry.UpdatedBy = &by
		}
		history = append(history, entry)
	}

	return history, rows.Err()
}

// isDelayed applies the domain's delay rule to a raw row: non-terminal phase
// and the current UTC calendar date strictly after the estimate's. Both
// operands are normalized to UTC so a zoned estimate cannot shift the
// comparison by a day.
func isDelayed(status string, estimate, now time.Time) bool {
	parsed, err := delivery.StatusFromString(status)
	if err != nil || parsed.IsTerminal() || estimate.IsZero() {
		return false
	}

	estimate = estimate.UTC()
	now = now.UTC()
	estimateDate := time.Date(estimate.Year(), estimate.Month(), estimate.Day(), 0, 0, 0, 0, time.UTC)
	nowDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return nowDate.After(estimateDate)
}
