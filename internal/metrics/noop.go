package metrics

import "time"

// NoopSink is used when metrics are disabled to avoid nil checks.
type NoopSink struct{}

func NewNoopSink() *NoopSink {
	return &NoopSink{}
}

func (n *NoopSink) LaunchCompleted(outcome string, duration time.Duration) {}
func (n *NoopSink) CompensationFailed(step string)                         {}
func (n *NoopSink) MonitorsActiveIncr()                                    {}
func (n *NoopSink) MonitorsActiveDecr()                                    {}
func (n *NoopSink) PollCompleted(status string)                            {}
func (n *NoopSink) PollFailed(class string)                                {}
func (n *NoopSink) DeliveryOutcome(outcome string)                         {}
func (n *NoopSink) CredentialIssued()                                      {}
func (n *NoopSink) CredentialIssueFailed(reason string)                    {}
func (n *NoopSink) PickupCompleted(released bool)                          {}
func (n *NoopSink) ReconciledDeliveries(count int)                         {}
