package commands

import (
	"context"
	"log/slog"
	"time"

	"dropoff/internal/core/ports"
	"dropoff/internal/metrics"
)

const (
	analyticsTimeout    = 2 * time.Second
	compensationTimeout = 10 * time.Second
)

// observers bundles the fire-and-forget side channels shared by the handlers.
type observers struct {
	analytics ports.DeliveryAnalytics
	metrics   metrics.Sink
	logger    *slog.Logger
}

func newObservers(analytics ports.DeliveryAnalytics, sink metrics.Sink, logger *slog.Logger, component string) observers {
	if sink == nil {
		sink = metrics.NewNoopSink()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return observers{
		analytics: analytics,
		metrics:   sink,
		logger:    logger.With("component", component),
	}
}

// record counts an outcome for the tower. Analytics failures never fail the
// operation that produced the outcome.
func (o observers) record(ctx context.Context, towerName, outcome string) {
	if o.analytics == nil || towerName == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), analyticsTimeout)
	defer cancel()
	if err := o.analytics.Record(ctx, towerName, outcome, time.Now().UTC()); err != nil {
		o.logger.Warn("delivery analytics unavailable", "tower", towerName, "outcome", outcome, "error", err)
	}
}

// detached keeps a cleanup running when the caller's context is cancelled,
// e.g. because the HTTP client went away mid-launch.
func detached(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), compensationTimeout)
}
