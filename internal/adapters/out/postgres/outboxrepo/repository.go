// Package outboxrepo persists the transactional outbox. Messages are written
// inside the producing transaction and flipped to sent by the dispatch job.
// Messages that keep failing are parked as failed once they exhaust
// MaxDispatchAttempts, so a poison message cannot be retried forever.
package outboxrepo

import (
	"context"
	"time"

	"distribops/internal/core/domain/model/kernel"
	"distribops/internal/core/ports"
	"distribops/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	statusPending = "pending"
	statusSent    = "sent"
	statusFailed  = "failed"
)

// MaxDispatchAttempts bounds how often a message is retried. A message whose
// attempt counter reaches the cap is parked as failed and never pulled again.
const MaxDispatchAttempts = 10

// MessageDTO represents the database structure for outbox messages.
type MessageDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventType string
	Payload   []byte
	Status    string `gorm:"index"`
	Attempts  int
	CreatedAt time.Time
	SentAt    *time.Time
}

// TableName overrides GORM's default naming to use "outbox_messages".
func (MessageDTO) TableName() string {
	return "outbox_messages"
}

// GormOutboxRepository implements ports.OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a new GORM outbox repository.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Enqueue stores a new pending message.
func (r *GormOutboxRepository) Enqueue(ctx context.Context, eventType string, payload []byte) error {
	if eventType == "" {
		return errs.NewValueIsRequiredError("eventType")
	}
	if len(payload) == 0 {
		return errs.NewValueIsRequiredError("payload")
	}

	dto := MessageDTO{
		ID:        uuid.New(),
		EventType: eventType,
		Payload:   payload,
		Status:    statusPending,
		CreatedAt: time.Now().UTC(),
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// PullPending returns up to limit pending messages, oldest first.
func (r *GormOutboxRepository) PullPending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var dtos []MessageDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", statusPending).
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		id, idErr := kernel.UUIDFromBytes(dto.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		messages = append(messages, ports.OutboxMessage{
			ID:        id,
			EventType: dto.EventType,
			Payload:   dto.Payload,
			Attempts:  dto.Attempts,
			CreatedAt: dto.CreatedAt,
		})
	}
	return messages, nil
}

// MarkSent flips a message to sent and stamps the dispatch time.
func (r *GormOutboxRepository) MarkSent(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&MessageDTO{}).
		Where("id = ?", id.Bytes()).
		Updates(map[string]any{
			"status":  statusSent,
			"sent_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("messageId", id.String())
	}
	return nil
}

// MarkFailed increments the attempt counter. The message stays pending until
// the counter reaches MaxDispatchAttempts, at which point it is parked as
// failed and excluded from future pulls.
func (r *GormOutboxRepository) MarkFailed(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&MessageDTO{}).
		Where("id = ?", id.Bytes()).
		Updates(map[string]any{
			"attempts": gorm.Expr("attempts + 1"),
			"status": gorm.Expr(
				"CASE WHEN attempts + 1 >= ? THEN ? ELSE status END",
				MaxDispatchAttempts, statusFailed,
			),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("messageId", id.String())
	}
	return nil
}
