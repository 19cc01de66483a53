package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

type OrderEventType string

const (
	OrderCreated   OrderEventType = "order.created"
	OrderConfirmed OrderEventType = "order.confirmed"
	OrderPreparing OrderEventType = "order.preparing"
	OrderReady     OrderEventType = "order.ready"
	OrderShipping  OrderEventType = "order.shipping"
	OrderDelivered OrderEventType = "order.delivered"
	OrderCancelled OrderEventType = "order.cancelled"
)

// OrderEvent describes a committed lifecycle change.
type OrderEvent struct {
	Type           OrderEventType `json:"type"`
	OrderID        kernel.UUID    `json:"orderId"`
	OrderNumber    string         `json:"orderNumber"`
	ShopID         kernel.UUID    `json:"shopId"`
	CustomerID     kernel.UUID    `json:"customerId"`
	ShipperID      *kernel.UUID   `json:"shipperId,omitempty"`
	PreviousStatus order.Status   `json:"previousStatus"`
	Status         order.Status   `json:"status"`
	OccurredAt     time.Time      `json:"occurredAt"`
}

// NewOrderEvent builds the event for o having moved from previous.
func NewOrderEvent(eventType OrderEventType, o *order.Order, previous order.Status, at time.Time) OrderEvent {
	return OrderEvent{
		Type:           eventType,
		OrderID:        o.ID(),
		OrderNumber:    o.OrderNumber(),
		ShopID:         o.ShopID(),
		CustomerID:     o.CustomerID(),
		ShipperID:      o.ShipperID(),
		PreviousStatus: previous,
		Status:         o.Status(),
		OccurredAt:     at,
	}
}

// OrderEventPublisher delivers events to interested parties. Delivery is best
// effort and happens after the transaction committed.
type OrderEventPublisher interface {
	Publish(ctx context.Context, event OrderEvent) error
}

type RefundRequest struct {
	OrderID     kernel.UUID
	OrderNumber string
	CustomerID  kernel.UUID
	Amount      int64
	Reason      string
}

// RefundRequester asks the payment collaborator to refund a paid order.
type RefundRequester interface {
	RequestRefund(ctx context.Context, req RefundRequest) error
}
