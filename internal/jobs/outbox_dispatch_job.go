package jobs

import (
	"context"
	"log/slog"

	"distribops/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
)

// outboxBatchSize bounds how many messages one dispatch tick processes.
const outboxBatchSize = 20

// EventHandler consumes one outbox message payload.
type EventHandler interface {
	Handle(ctx context.Context, payload []byte) error
}

// OutboxDispatchJob drains the transactional outbox. Runs every second,
// pulling pending messages oldest first and routing each to the handler
// registered for its event type. Handlers must be idempotent: a message whose
// handler succeeds but whose MarkSent fails will be delivered again.
type OutboxDispatchJob struct {
	outbox   ports.OutboxRepository
	handlers map[string]EventHandler
	cron     *cron.Cron
	logger   *slog.Logger

	dispatched *prometheus.CounterVec
	failed     *prometheus.CounterVec
	pending    prometheus.Gauge
}

// NewOutboxDispatchJob creates the dispatch job and registers its metrics.
// handlers maps event types to their consumers; messages with no registered
// handler are counted as failures and retried.
func NewOutboxDispatchJob(
	outbox ports.OutboxRepository,
	handlers map[string]EventHandler,
	registerer prometheus.Registerer,
	logger *slog.Logger,
) *OutboxDispatchJob {
	job := &OutboxDispatchJob{
		outbox:   outbox,
		handlers: handlers,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "outbox_dispatch_job"),
		dispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "outbox_messages_dispatched_total",
			Help: "Outbox messages successfully dispatched, by event type.",
		}, []string{"event_type"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "outbox_dispatch_failures_total",
			Help: "Failed outbox dispatch attempts, by event type.",
		}, []string{"event_type"}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "outbox_messages_pending",
			Help: "Pending outbox messages seen on the last dispatch tick.",
		}),
	}
	registerer.MustRegister(job.dispatched, job.failed, job.pending)
	return job
}

// Start begins the dispatch job to run every second.
func (j *OutboxDispatchJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		j.dispatchBatch(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox dispatch job started (running every second)")
	return nil
}

// Stop stops the dispatch job.
func (j *OutboxDispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Outbox dispatch job stopped")
}

func (j *OutboxDispatchJob) dispatchBatch(ctx context.Context) {
	messages, err := j.outbox.PullPending(ctx, outboxBatchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Pulling pending outbox messages failed", "error", err)
		return
	}
	j.pending.Set(float64(len(messages)))

	for _, message := range messages {
		j.dispatch(ctx, message)
	}
}

func (j *OutboxDispatchJob) dispatch(ctx context.Context, message ports.OutboxMessage) {
	handler, ok := j.handlers[message.EventType]
	if !ok {
		j.failed.WithLabelValues(message.EventType).Inc()
		j.logger.ErrorContext(ctx, "No handler registered for event type",
			"eventType", message.EventType, "messageId", message.ID.String())
		j.markFailed(ctx, message)
		return
	}

	if err := handler.Handle(ctx, message.Payload); err != nil {
		j.failed.WithLabelValues(message.EventType).Inc()
		j.logger.ErrorContext(ctx, "Outbox message dispatch failed",
			"eventType", message.EventType,
			"messageId", message.ID.String(),
			"attempts", message.Attempts,
			"error", err)
		j.markFailed(ctx, message)
		return
	}

	if err := j.outbox.MarkSent(ctx, message.ID); err != nil {
		j.logger.ErrorContext(ctx, "Marking outbox message as sent failed",
			"messageId", message.ID.String(), "error", err)
		return
	}
	j.dispatched.WithLabelValues(message.EventType).Inc()
}

func (j *OutboxDispatchJob) markFailed(ctx context.Context, message ports.OutboxMessage) {
	if err := j.outbox.MarkFailed(ctx, message.ID); err != nil {
		j.logger.ErrorContext(ctx, "Recording failed dispatch attempt failed",
			"messageId", message.ID.String(), "error", err)
	}
}
