package returnrepo

import (
	"context"
	"errors"

	"distribops/internal/core/domain/model/kernel"
	"distribops/internal/core/domain/model/returnorder"
	"distribops/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormReturnOrderRepository implements ports.ReturnOrderRepository using GORM.
type GormReturnOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormReturnOrderRepository creates a new GORM return order repository.
func NewGormReturnOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormReturnOrderRepository {
	return &GormReturnOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new return order and its items to the database.
func (r *GormReturnOrderRepository) Add(ctx context.Context, aggregate *returnorder.ReturnOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a return order by ID with its items in line order.
func (r *GormReturnOrderRepository) Get(ctx context.Context, id kernel.UUID) (*returnorder.ReturnOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ReturnOrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("returnOrderId", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
