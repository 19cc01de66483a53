// Package payments talks to the payment collaborator. The gateway itself
// lives elsewhere; this service only records refund requests for it.
package payments

import (
	"context"

	"marketplace/internal/core/ports"

	"go.uber.org/zap"
)

// LoggingRefundRequester implements ports.RefundRequester by writing the
// request to the log, where the payment pipeline collects it.
type LoggingRefundRequester struct {
	logger *zap.Logger
}

func NewLoggingRefundRequester(logger *zap.Logger) *LoggingRefundRequester {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingRefundRequester{logger: logger}
}

func (r *LoggingRefundRequester) RequestRefund(_ context.Context, req ports.RefundRequest) error {
	r.logger.Info("refund requested",
		zap.Stringer("order_id", req.OrderID),
		zap.String("order_number", req.OrderNumber),
		zap.Stringer("customer_id", req.CustomerID),
		zap.Int64("amount", req.Amount),
		zap.String("reason", req.Reason),
	)
	return nil
}
