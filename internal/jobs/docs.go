// Package jobs provides scheduled background tasks for the marketplace.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Cron specs include a seconds field.
//
// # Available Jobs
//
// 1. VoucherExpiryJob - Runs daily (DefaultVoucherExpirySpec, "0 5 0 * * *") and
// marks active vouchers whose validTo has passed as inactive
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(jobs.Config{VoucherExpirySpec: spec}, &expireVouchersHandler, logger)
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
// - A failed sweep is logged and retried on the next tick; the sweep is idempotent
// - An invalid cron spec fails StartAll
package jobs
