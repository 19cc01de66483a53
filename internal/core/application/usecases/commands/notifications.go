package commands

import (
	"context"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"

	"go.uber.org/zap"
)

// Notifications runs the side effects that follow a committed order change.
// Failures are logged and never reach the caller: the order write already
// succeeded.
type Notifications struct {
	publisher ports.OrderEventPublisher
	refunds   ports.RefundRequester
	logger    *zap.Logger
}

// NewNotifications accepts nil collaborators, which turns the matching side
// effect off.
func NewNotifications(publisher ports.OrderEventPublisher, refunds ports.RefundRequester, logger *zap.Logger) Notifications {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Notifications{publisher: publisher, refunds: refunds, logger: logger}
}

func (n Notifications) orderChanged(ctx context.Context, event ports.OrderEvent) {
	if n.publisher == nil {
		return
	}
	if err := n.publisher.Publish(ctx, event); err != nil {
		n.logger.Warn("order event not published",
			zap.String("event", string(event.Type)),
			zap.String("order_id", event.OrderID.String()),
			zap.Error(err))
	}
}

func (n Notifications) refundIfPaid(ctx context.Context, o *order.Order) {
	if n.refunds == nil || !o.RequiresRefund() {
		return
	}
	req := ports.RefundRequest{
		OrderID:     o.ID(),
		OrderNumber: o.OrderNumber(),
		CustomerID:  o.CustomerID(),
		Amount:      o.Total(),
		Reason:      o.CancelReason(),
	}
	if err := n.refunds.RequestRefund(ctx, req); err != nil {
		n.logger.Warn("refund request failed",
			zap.String("order_id", o.ID().String()),
			zap.Int64("amount", o.Total()),
			zap.Error(err))
	}
}
