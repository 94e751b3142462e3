package jobs

import (
	"context"
	"log/slog"

	"distribops/internal/core/application/usecases/queries"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
)

// DelayMonitorJob watches in-flight deliveries and exports how many are past
// their estimated date. Runs every minute; the delayed flag itself is always
// derived at read time, so the job only feeds the metric and the log.
type DelayMonitorJob struct {
	handler queries.GetActiveDeliveriesQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger

	active  prometheus.Gauge
	delayed prometheus.Gauge
}

// NewDelayMonitorJob creates the delay monitor and registers its metrics.
func NewDelayMonitorJob(
	handler queries.GetActiveDeliveriesQueryHandler,
	registerer prometheus.Registerer,
	logger *slog.Logger,
) *DelayMonitorJob {
	job := &DelayMonitorJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "delay_monitor_job"),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "deliveries_active",
			Help: "Deliveries currently in flight.",
		}),
		delayed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "deliveries_delayed",
			Help: "In-flight deliveries past their estimated delivery date.",
		}),
	}
	registerer.MustRegister(job.active, job.delayed)
	return job
}

// Start begins the delay monitor to run every minute.
func (j *DelayMonitorJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		j.scan(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Delay monitor job started (running every minute)")
	return nil
}

// Stop stops the delay monitor.
func (j *DelayMonitorJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Delay monitor job stopped")
}

func (j *DelayMonitorJob) scan(ctx context.Context) {
	deliveries, err := j.handler.Handle(ctx, queries.NewGetActiveDeliveriesQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Delay monitor scan failed", "error", err)
		return
	}

	delayedCount := 0
	for _, d := range deliveries {
		if d.Delayed {
			delayedCount++
			j.logger.WarnContext(ctx, "Delivery is past its estimate",
				"deliveryId", d.ID,
				"orderId", d.OrderID,
				"status", d.Status,
				"estimatedDeliveryDate", d.EstimatedDeliveryDate)
		}
	}

	j.active.Set(float64(len(deliveries)))
	j.delayed.Set(float64(delayedCount))
}
