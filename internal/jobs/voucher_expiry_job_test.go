package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketplace/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type MockBatchHandler struct{ mock.Mock }

func (m *MockBatchHandler) Handle(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestVoucherExpiryJob_RunOnce_LogsExpiredCount(t *testing.T) {
	handler := &MockBatchHandler{}
	handler.On("Handle", mock.Anything).Return(int64(3), nil).Once()
	core, logs := observer.New(zapcore.InfoLevel)

	job := jobs.NewVoucherExpiryJob(handler, "", zap.New(core))
	expired, err := job.RunOnce(t.Context())

	require.NoError(t, err)
	assert.Equal(t, int64(3), expired)
	entries := logs.FilterMessage("vouchers expired").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(3), entries[0].ContextMap()["count"])
	assert.Equal(t, "voucher_expiry_job", entries[0].ContextMap()["component"])
	handler.AssertExpectations(t)
}

func TestVoucherExpiryJob_RunOnce_ReportsFailure(t *testing.T) {
	handler := &MockBatchHandler{}
	handler.On("Handle", mock.Anything).Return(int64(0), errors.New("database is down")).Once()
	core, logs := observer.New(zapcore.InfoLevel)

	job := jobs.NewVoucherExpiryJob(handler, "", zap.New(core))
	_, err := job.RunOnce(t.Context())

	require.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("voucher expiry sweep failed").Len())
}

func TestVoucherExpiryJob_Start_RejectsInvalidSpec(t *testing.T) {
	job := jobs.NewVoucherExpiryJob(&MockBatchHandler{}, "every day at noon", nil)

	assert.Error(t, job.Start())
}

func TestVoucherExpiryJob_RunsOnSchedule(t *testing.T) {
	ran := make(chan struct{}, 1)
	handler := &MockBatchHandler{}
	handler.On("Handle", mock.Anything).Return(int64(0), nil).Run(func(mock.Arguments) {
		select {
		case ran <- struct{}{}:
		default:
		}
	})

	job := jobs.NewVoucherExpiryJob(handler, "* * * * * *", nil)
	require.NoError(t, job.Start())
	defer job.Stop()

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("voucher expiry job did not run")
	}
}

func TestJobManager_StartAll_WrapsSpecError(t *testing.T) {
	manager := jobs.NewJobManager(jobs.Config{VoucherExpirySpec: "61 * * * * *"}, &MockBatchHandler{}, nil)

	err := manager.StartAll()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "voucher expiry job")
}

func TestJobManager_StartAndStop(t *testing.T) {
	manager := jobs.NewJobManager(jobs.Config{}, &MockBatchHandler{}, zap.NewNop())

	require.NoError(t, manager.StartAll())
	manager.StopAll()
}
