package jobs

import (
	"fmt"
	"log/slog"

	"distribops/internal/core/application/usecases/queries"
	"distribops/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	outboxDispatchJob *OutboxDispatchJob
	delayMonitorJob   *DelayMonitorJob
}

// NewJobManager creates a new job manager with all required jobs.
// eventHandlers maps outbox event types to their consumers.
func NewJobManager(
	outbox ports.OutboxRepository,
	eventHandlers map[string]EventHandler,
	activeDeliveriesHandler queries.GetActiveDeliveriesQueryHandler,
	registerer prometheus.Registerer,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		outboxDispatchJob: NewOutboxDispatchJob(outbox, eventHandlers, registerer, logger),
		delayMonitorJob:   NewDelayMonitorJob(activeDeliveriesHandler, registerer, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.outboxDispatchJob.Start(); err != nil {
		return fmt.Errorf("failed to start outbox dispatch job: %w", err)
	}

	if err := jm.delayMonitorJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.outboxDispatchJob.Stop()
		return fmt.Errorf("failed to start delay monitor job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.outboxDispatchJob.Stop()
	jm.delayMonitorJob.Stop()
}
