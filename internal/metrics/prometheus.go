package metrics

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusSink implements Sink on top of the Prometheus client.
// Registration errors are logged but never propagated.
type PrometheusSink struct {
	logger *slog.Logger

	launchesTotal         *prometheus.CounterVec
	launchDuration        prometheus.Histogram
	compensationFailures  *prometheus.CounterVec
	monitorsActive        prometheus.Gauge
	pollsTotal            *prometheus.CounterVec
	pollErrorsTotal       *prometheus.CounterVec
	deliveryOutcomesTotal *prometheus.CounterVec
	credentialsTotal      prometheus.Counter
	credentialErrorsTotal *prometheus.CounterVec
	pickupsTotal          *prometheus.CounterVec
	reconciledTotal       prometheus.Counter
}

func NewPrometheusSink(reg prometheus.Registerer, logger *slog.Logger) *PrometheusSink {
	if logger == nil {
		logger = slog.Default()
	}
	s := &PrometheusSink{logger: logger.With("component", "metrics")}
	s.initLaunchMetrics(reg)
	s.initMonitorMetrics(reg)
	s.initCredentialMetrics(reg)
	return s
}

func (s *PrometheusSink) initLaunchMetrics(reg prometheus.Registerer) {
	s.launchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dropoff_launches_total",
		Help: "Total number of launch requests by outcome.",
	}, []string{"outcome"})
	s.launchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "dropoff_launch_duration_seconds",
		Help:    "Time spent handling a launch request, including the remote call.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	})
	s.compensationFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dropoff_compensation_failures_total",
		Help: "Total number of cleanup steps that failed after a partial launch or delivery.",
	}, []string{"step"})

	s.register(reg, s.launchesTotal, "dropoff_launches_total")
	s.register(reg, s.launchDuration, "dropoff_launch_duration_seconds")
	s.register(reg, s.compensationFailures, "dropoff_compensation_failures_total")
}

func (s *PrometheusSink) initMonitorMetrics(reg prometheus.Registerer) {
	s.monitorsActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "dropoff_monitors_active",
		Help: "Number of delivery monitors currently polling a tower.",
	})
	s.pollsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dropoff_monitor_polls_total",
		Help: "Total number of successful status polls by reported status.",
	}, []string{"status"})
	s.pollErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dropoff_monitor_poll_errors_total",
		Help: "Total number of status polls that failed at the transport level.",
	}, []string{"class"})
	s.deliveryOutcomesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dropoff_delivery_outcomes_total",
		Help: "Total number of terminal delivery outcomes.",
	}, []string{"outcome"})

	s.register(reg, s.monitorsActive, "dropoff_monitors_active")
	s.register(reg, s.pollsTotal, "dropoff_monitor_polls_total")
	s.register(reg, s.pollErrorsTotal, "dropoff_monitor_poll_errors_total")
	s.register(reg, s.deliveryOutcomesTotal, "dropoff_delivery_outcomes_total")
}

func (s *PrometheusSink) initCredentialMetrics(reg prometheus.Registerer) {
	s.credentialsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dropoff_credentials_issued_total",
		Help: "Total number of pickup credentials issued.",
	})
	s.credentialErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dropoff_credential_errors_total",
		Help: "Total number of credential issuance failures.",
	}, []string{"reason"})
	s.pickupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dropoff_pickups_total",
		Help: "Total number of pickup confirmations, by whether a rack was released.",
	}, []string{"released"})
	s.reconciledTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dropoff_reconciled_deliveries_total",
		Help: "Total number of delivered packages whose credential was issued by reconciliation.",
	})

	s.register(reg, s.credentialsTotal, "dropoff_credentials_issued_total")
	s.register(reg, s.credentialErrorsTotal, "dropoff_credential_errors_total")
	s.register(reg, s.pickupsTotal, "dropoff_pickups_total")
	s.register(reg, s.reconciledTotal, "dropoff_reconciled_deliveries_total")
}

func (s *PrometheusSink) register(reg prometheus.Registerer, c prometheus.Collector, name string) {
	if err := reg.Register(c); err != nil {
		s.logger.Warn("failed to register collector", "metric", name, "error", err)
	}
}

func (s *PrometheusSink) LaunchCompleted(outcome string, duration time.Duration) {
	s.launchesTotal.WithLabelValues(outcome).Inc()
	s.launchDuration.Observe(duration.Seconds())
}

func (s *PrometheusSink) CompensationFailed(step string) {
	s.compensationFailures.WithLabelValues(step).Inc()
}

func (s *PrometheusSink) MonitorsActiveIncr() {
	s.monitorsActive.Inc()
}

func (s *PrometheusSink) MonitorsActiveDecr() {
	s.monitorsActive.Dec()
}

func (s *PrometheusSink) PollCompleted(status string) {
	s.pollsTotal.WithLabelValues(status).Inc()
}

func (s *PrometheusSink) PollFailed(class string) {
	s.pollErrorsTotal.WithLabelValues(class).Inc()
}

func (s *PrometheusSink) DeliveryOutcome(outcome string) {
	s.deliveryOutcomesTotal.WithLabelValues(outcome).Inc()
}

func (s *PrometheusSink) CredentialIssued() {
	s.credentialsTotal.Inc()
}

func (s *PrometheusSink) CredentialIssueFailed(reason string) {
	s.credentialErrorsTotal.WithLabelValues(reason).Inc()
}

func (s *PrometheusSink) PickupCompleted(released bool) {
	s.pickupsTotal.WithLabelValues(strconv.FormatBool(released)).Inc()
}

func (s *PrometheusSink) ReconciledDeliveries(count int) {
	if count > 0 {
		s.reconciledTotal.Add(float64(count))
	}
}
