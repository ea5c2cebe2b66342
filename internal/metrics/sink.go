package metrics

import (
	"context"
	"errors"
	"net"
	"time"
)

// Sink records delivery metrics.
// All methods are fire-and-forget: implementations must not block or return errors.
type Sink interface {
	// Launch flow
	LaunchCompleted(outcome string, duration time.Duration)
	CompensationFailed(step string)

	// Delivery monitor
	MonitorsActiveIncr()
	MonitorsActiveDecr()
	PollCompleted(status string)
	PollFailed(class string)
	DeliveryOutcome(outcome string)

	// Credentials and pickup
	CredentialIssued()
	CredentialIssueFailed(reason string)
	PickupCompleted(released bool)

	// Reconciliation
	ReconciledDeliveries(count int)
}

// Launch outcomes.
const (
	LaunchAccepted      = "accepted"
	LaunchRackOccupied  = "rack_occupied"
	LaunchNoEndpoint    = "no_endpoint"
	LaunchRemoteFailed  = "remote_failed"
	LaunchInvalid       = "invalid"
	LaunchInternalError = "internal_error"
)

// Delivery outcomes reported when a monitor terminates.
const (
	OutcomeDelivered   = "delivered"
	OutcomeFailed      = "failed"
	OutcomeUnreachable = "unreachable"
	OutcomeCancelled   = "cancelled"
)

// Error classes for PollFailed.
const (
	ErrorClassTimeout         = "timeout"
	ErrorClassConnectionError = "connection_error"
	ErrorClassOtherError      = "other_error"
)

// ClassifyError maps a transport error to an error class.
func ClassifyError(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorClassTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return ErrorClassTimeout
		}
		return ErrorClassConnectionError
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return ErrorClassConnectionError
	}
	return ErrorClassOtherError
}
