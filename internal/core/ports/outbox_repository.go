package ports

import (
	"context"
	"time"

	"distribops/internal/core/domain/model/kernel"
)

// Event types written to the outbox.
const (
	EventOrderCreated = "order.created"
)

// OutboxMessage is a pending integration event. Messages are written in the
// same transaction as the state change they describe and dispatched later by
// a background job, so publishing can never fail the originating command.
type OutboxMessage struct {
	ID        kernel.UUID
	EventType string
	Payload   []byte
	Attempts  int
	CreatedAt time.Time
}

// OutboxRepository defines the persistence contract for the transactional
// outbox.
type OutboxRepository interface {
	// Enqueue stores a new pending message. Must be called inside the
	// transaction that produced the event.
	Enqueue(ctx context.Context, eventType string, payload []byte) error

	// PullPending returns up to limit pending messages, oldest first.
	PullPending(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkSent marks a message as dispatched. Sent messages are never
	// pulled again.
	MarkSent(ctx context.Context, id kernel.UUID) error

	// MarkFailed records a failed dispatch attempt. The message is
	// retried on later pulls until the implementation's attempt cap is
	// reached, after which it is parked and no longer pulled.
	MarkFailed(ctx context.Context, id kernel.UUID) error
}
