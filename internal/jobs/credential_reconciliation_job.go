package jobs

import (
	"context"
	"log/slog"
	"time"

	"dropoff/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

const (
	DefaultReconcileSchedule = "@every 1m"
	reconcileRunTimeout      = 45 * time.Second
)

type CredentialReconciler interface {
	Handle(ctx context.Context, cmd commands.ReconcileCredentialsCommand) (commands.ReconcileCredentialsResult, error)
}

// CredentialReconciliationJob periodically issues the pickup credentials that
// the delivery monitor could not issue, e.g. because the customer record was
// missing when the tower reported Delivered. A run still in progress when the
// next one is due makes the next one skip.
type CredentialReconciliationJob struct {
	handler  CredentialReconciler
	schedule string
	batch    int
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewCredentialReconciliationJob accepts any schedule robfig/cron parses with
// seconds, including descriptors such as "@every 30s". An empty schedule
// means DefaultReconcileSchedule.
func NewCredentialReconciliationJob(
	handler CredentialReconciler,
	schedule string,
	batch int,
	logger *slog.Logger,
) *CredentialReconciliationJob {
	if schedule == "" {
		schedule = DefaultReconcileSchedule
	}
	if batch < 1 {
		batch = commands.DefaultReconcileBatch
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CredentialReconciliationJob{
		handler:  handler,
		schedule: schedule,
		batch:    batch,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "credential_reconciliation_job"),
	}
}

func (j *CredentialReconciliationJob) Name() string {
	return "credential reconciliation"
}

func (j *CredentialReconciliationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), reconcileRunTimeout)
		defer cancel()
		j.RunOnce(ctx)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Credential reconciliation job started", "schedule", j.schedule)
	return nil
}

// RunOnce performs a single reconciliation pass.
func (j *CredentialReconciliationJob) RunOnce(ctx context.Context) commands.ReconcileCredentialsResult {
	cmd, err := commands.NewReconcileCredentialsCommand(j.batch)
	if err != nil {
		j.logger.ErrorContext(ctx, "Credential reconciliation job misconfigured", "error", err)
		return commands.ReconcileCredentialsResult{}
	}

	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Credential reconciliation job failed", "error", err)
	}
	if result.Scanned > 0 {
		j.logger.InfoContext(ctx, "Credential reconciliation pass finished",
			"scanned", result.Scanned,
			"issued", result.Issued,
			"pending", result.Pending,
		)
	}
	return result
}

// Stop waits for a running pass to finish.
func (j *CredentialReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Credential reconciliation job stopped")
}
