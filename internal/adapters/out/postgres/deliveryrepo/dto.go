// Package deliveryrepo provides data transfer objects and mapping functions
// for delivery persistence. The unique index on order_id is what makes
// delivery creation race-safe: concurrent inserts for the same order collapse
// into one winner and one duplicate-key error.
package deliveryrepo

import (
	"time"

	"distribops/internal/core/domain/model/delivery"
	"distribops/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for persisting delivery
// aggregates.
type DeliveryDTO struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID               uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	ShopID                uuid.UUID `gorm:"type:uuid;index"`
	Status                string    `gorm:"index"`
	CurrentLocation       string
	EstimatedDeliveryDate time.Time
	ActualDeliveryDate    *time.Time
	TrackingNumber        string
	CancellationReason    *string
	CancelledBy           *uuid.UUID `gorm:"type:uuid"`
	CancelledAt           *time.Time
	CancellationNotes     *string
	CreatedAt             time.Time
	UpdatedAt             time.Time

	StatusHistory []StatusUpdateDTO `gorm:"foreignKey:DeliveryID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "deliveries".
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// StatusUpdateDTO represents one history entry. The serial primary key
// preserves transition order.
type StatusUpdateDTO struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	DeliveryID uuid.UUID `gorm:"type:uuid;index"`
	Status     string
	Timestamp  time.Time
	Notes      string
	Location   string
	UpdatedBy  *uuid.UUID `gorm:"type:uuid"`
}

// TableName overrides GORM's default naming to use "delivery_status_updates".
func (StatusUpdateDTO) TableName() string {
	return "delivery_status_updates"
}

func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	dto := DeliveryDTO{
		ID:                    aggregate.ID().Bytes(),
		OrderID:               aggregate.OrderID().Bytes(),
		ShopID:                aggregate.ShopID().Bytes(),
		Status:                aggregate.Status().String(),
		CurrentLocation:       aggregate.CurrentLocation(),
		EstimatedDeliveryDate: aggregate.EstimatedDeliveryDate(),
		ActualDeliveryDate:    aggregate.ActualDeliveryDate(),
		TrackingNumber:        aggregate.TrackingNumber().String(),
		CreatedAt:             aggregate.CreatedAt(),
		UpdatedAt:             aggregate.UpdatedAt(),
	}

	if cancellation := aggregate.CancellationReason(); cancellation != nil {
		reason := cancellation.Reason()
		cancelledAt := cancellation.CancelledAt()
		notes := cancellation.Notes()
		dto.CancellationReason = &reason
		dto.CancelledAt = &cancelledAt
		dto.CancellationNotes = &notes
		if by := cancellation.CancelledBy(); by != nil {
			raw := by.Bytes()
			dto.CancelledBy = &raw
		}
	}

	for _, update := range aggregate.StatusHistory() {
		var updatedBy *uuid.UUID
		if by := update.UpdatedBy(); by != nil {
			raw := by.Bytes()
			updatedBy = &raw
		}
		dto.StatusHistory = append(dto.StatusHistory, StatusUpdateDTO{
			DeliveryID: dto.ID,
			Status:     update.Status().String(),
			Timestamp:  update.Timestamp(),
			Notes:      update.Notes(),
			Location:   update.Location(),
			UpdatedBy:  updatedBy,
		})
	}

	return dto
}

func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	shopID, err := kernel.UUIDFromBytes(dto.ShopID[:])
	if err != nil {
		return nil, err
	}

	status, err := delivery.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	trackingNumber, err := kernel.TrackingNumberFromString(dto.TrackingNumber)
	if err != nil {
		return nil, err
	}

	var cancellation *delivery.CancellationReason
	if dto.CancellationReason != nil {
		var cancelledBy *kernel.UUID
		if dto.CancelledBy != nil {
			byID, byErr := kernel.UUIDFromBytes((*dto.CancelledBy)[:])
			if byErr != nil {
				return nil, byErr
			}
			cancelledBy = &byID
		}

		cancelledAt := time.Time{}
		if dto.CancelledAt != nil {
			cancelledAt = *dto.CancelledAt
		}
		notes := ""
		if dto.CancellationNotes != nil {
			notes = *dto.CancellationNotes
		}

		reason, reasonErr := delivery.NewCancellationReason(
			*dto.CancellationReason, cancelledBy, cancelledAt, notes,
		)
		if reasonErr != nil {
			return nil, reasonErr
		}
		cancellation = &reason
	}

	history := make([]delivery.StatusUpdate, 0, len(dto.StatusHistory))
	for _, updateDTO := range dto.StatusHistory {
		updateStatus, updateErr := delivery.StatusFromString(updateDTO.Status)
		if updateErr != nil {
			return nil, updateErr
		}

		var updatedBy *kernel.UUID
		if updateDTO.UpdatedBy != nil {
			byID, byErr := kernel.UUIDFromBytes((*updateDTO.UpdatedBy)[:])
			if byErr != nil {
				return nil, byErr
			}
			updatedBy = &byID
		}

		update, updateErr := delivery.NewStatusUpdate(
			updateStatus, updateDTO.Timestamp, updateDTO.Notes, updateDTO.Location, updatedBy,
		)
		if updateErr != nil {
			return nil, updateErr
		}
		history = append(history, update)
	}

	return delivery.RestoreDelivery(
		id, orderID, shopID,
		status,
		dto.CurrentLocation,
		dto.EstimatedDeliveryDate,
		dto.ActualDeliveryDate,
		trackingNumber,
		history,
		cancellation,
		dto.CreatedAt, dto.UpdatedAt,
	)
}
