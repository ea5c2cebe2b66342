package ports

import (
	"context"
	"time"
)

// Delivery outcomes recorded by DeliveryAnalytics.
const (
	OutcomeLaunched    = "launched"
	OutcomeDelivered   = "delivered"
	OutcomeFailed      = "failed"
	OutcomeUnreachable = "unreachable"
	OutcomePickedUp    = "picked_up"
)

// DeliveryAnalytics counts delivery outcomes per tower for reporting.
// Implementations must not block the delivery flow; callers log and ignore
// returned errors.
type DeliveryAnalytics interface {
	Record(ctx context.Context, tower, outcome string, at time.Time) error
}
