// Package jobs provides scheduled background tasks for the drop-off service.
//
// Jobs are built on github.com/robfig/cron/v3 with seconds-precision
// schedules.
//
// # Available Jobs
//
//  1. CredentialReconciliationJob - issues pickup credentials for parcels that
//     are Delivered but have none yet (runs "@every 1m" unless configured)
//
// # Usage
//
//	reconcile := jobs.NewCredentialReconciliationJob(handler, cfg.ReconcileSchedule, 0, logger)
//	jobManager := jobs.NewJobManager(reconcile)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
//   - Parcels that left Delivered meanwhile are skipped silently
//   - Parcels without a customer are counted as pending and retried next run
//   - Other failures are logged; the job keeps its schedule
//   - A failed job start stops the jobs already running
package jobs
