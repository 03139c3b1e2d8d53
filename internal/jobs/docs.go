// Package jobs provides scheduled background tasks for the order system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to run the timeout reconciliation sweeps.
//
// # Available Jobs
//
// 1. PaymentTimeoutJob - Runs every minute to cancel orders unpaid past the payment deadline
// 2. StalledDeliveryJob - Runs daily at 01:00 to force-complete deliveries never marked finished
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(cancelTimedOutHandler, completeStalledHandler, logger)
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
// - Per-order transition rejections are expected and handled inside the sweep handlers
// - Sweep-level errors (batch query failures) are logged, never fatal
// - Failed job starts will stop any already running jobs
package jobs
