package deliveryrepo

import (
	"context"
	"errors"

	"distribops/internal/core/domain/model/delivery"
	"distribops/internal/core/domain/model/kernel"
	"distribops/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDeliveryRepository implements ports.DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new delivery with its initial history entry. When another
// delivery already exists for the same order, the unique index on order_id
// fires and the error is reported as errs.ObjectAlreadyExistsError.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsErrorWithCause(
				"orderId", aggregate.OrderID().String(), err,
			)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing delivery, replacing its history wholesale. The
// history is append-only in the domain, so the rewrite only ever grows it.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	history := dto.StatusHistory
	dto.StatusHistory = nil

	result := r.db.WithContext(ctx).
		Model(&DeliveryDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("deliveryId", aggregate.ID().String())
	}

	if err := r.db.WithContext(ctx).
		Where("delivery_id = ?", dto.ID).
		Delete(&StatusUpdateDTO{}).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&history).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a delivery by ID with its history in transition order.
func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return r.getByColumn(ctx, "id", id.Bytes(), "deliveryId", id.String())
}

// GetByOrderID retrieves the delivery fulfilling the given order.
func (r *GormDeliveryRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	return r.getByColumn(ctx, "order_id", orderID.Bytes(), "orderId", orderID.String())
}

func (r *GormDeliveryRepository) getByColumn(
	ctx context.Context, column string, value any, paramName, paramValue string,
) (*delivery.Delivery, error) {
	var dto DeliveryDTO
	err := r.db.WithContext(ctx).
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&dto, column+" = ?", value).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(paramName, paramValue)
		}
		return nil, err
	}

	return toDomain(dto)
}
