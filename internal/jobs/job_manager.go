package jobs

import (
	"fmt"

	"go.uber.org/zap"
)

// Config selects the schedules of the background jobs.
type Config struct {
	VoucherExpirySpec string
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	voucherExpiryJob *VoucherExpiryJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(cfg Config, expireVouchers BatchHandler, logger *zap.Logger) *JobManager {
	return &JobManager{
		voucherExpiryJob: NewVoucherExpiryJob(expireVouchers, cfg.VoucherExpirySpec, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.voucherExpiryJob.Start(); err != nil {
		return fmt.Errorf("failed to start voucher expiry job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.voucherExpiryJob.Stop()
}
