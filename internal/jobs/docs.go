// Package jobs provides scheduled background tasks for the operations
// console.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic work the request path deliberately avoids.
//
// # Available Jobs
//
// 1. OutboxDispatchJob - Runs every second to drain pending outbox messages
// and route them to their event handlers
// 2. DelayMonitorJob - Runs every minute to count in-flight deliveries past
// their estimated date and export the numbers as metrics
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(outbox, eventHandlers, activeDeliveriesHandler, registerer, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Dispatch failures are recorded on the message and retried on the next
// tick until the outbox's attempt cap parks the message; handlers must
// therefore be idempotent
// - Monitor scan failures are logged and skipped; the next tick retries
// - Failed job starts will stop any already running jobs
package jobs
