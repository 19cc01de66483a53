package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultVoucherExpirySpec runs the sweep daily at 00:05:00. Specs carry a
// seconds field.
const DefaultVoucherExpirySpec = "0 5 0 * * *"

const voucherExpiryTimeout = 5 * time.Minute

// BatchHandler runs one maintenance pass and reports how many rows changed.
type BatchHandler interface {
	Handle(ctx context.Context) (int64, error)
}

// VoucherExpiryJob deactivates vouchers whose validity window has ended.
type VoucherExpiryJob struct {
	handler BatchHandler
	spec    string
	cron    *cron.Cron
	logger  *zap.Logger
}

// NewVoucherExpiryJob schedules handler on spec. An empty spec means
// DefaultVoucherExpirySpec.
func NewVoucherExpiryJob(handler BatchHandler, spec string, logger *zap.Logger) *VoucherExpiryJob {
	if spec == "" {
		spec = DefaultVoucherExpirySpec
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VoucherExpiryJob{
		handler: handler,
		spec:    spec,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With(zap.String("component", "voucher_expiry_job")),
	}
}

// Start registers the sweep and starts the scheduler.
func (j *VoucherExpiryJob) Start() error {
	if _, err := j.cron.AddFunc(j.spec, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("voucher expiry job started", zap.String("spec", j.spec))
	return nil
}

// Stop stops scheduling and waits for a running sweep to finish.
func (j *VoucherExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("voucher expiry job stopped")
}

// RunOnce performs a single sweep outside the schedule.
func (j *VoucherExpiryJob) RunOnce(ctx context.Context) (int64, error) {
	expired, err := j.handler.Handle(ctx)
	if err != nil {
		j.logger.Error("voucher expiry sweep failed", zap.Error(err))
		return 0, err
	}
	if expired > 0 {
		j.logger.Info("vouchers expired", zap.Int64("count", expired))
	}
	return expired, nil
}

func (j *VoucherExpiryJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), voucherExpiryTimeout)
	defer cancel()

	_, _ = j.RunOnce(ctx)
}
