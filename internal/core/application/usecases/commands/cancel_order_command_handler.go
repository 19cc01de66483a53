package commands

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
)

// CancelOrderCommandHandler cancels orders for customers and shop owners.
// Customers may cancel PENDING, CONFIRMED and PREPARING orders; owners only
// CONFIRMED and PREPARING ones. A paid order is handed to the refund
// requester after the cancellation commits.
type CancelOrderCommandHandler struct {
	uowFactory    OrderUoWFactory
	shops         ports.ShopReader
	notifications Notifications
	clock         kernel.Clock
}

func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory, shops ports.ShopReader, notifications Notifications, clock kernel.Clock,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory:    uowFactory,
		shops:         shops,
		notifications: notifications,
		clock:         clockOrDefault(clock),
	}
}

func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.clock()
	m := orderMutation{name: "CancelOrder"}
	if cmd.ByOwner() {
		m.name = "OwnerCancelOrder"
		m.authorize = shopOwnedBy(h.shops, cmd.ActorID())
		m.apply = func(o *order.Order) error { return o.CancelByOwner(cmd.Reason(), now) }
	} else {
		m.authorize = placedBy(cmd.ActorID())
		m.apply = func(o *order.Order) error { return o.CancelByCustomer(cmd.Reason(), now) }
	}

	cancelled, previous, err := mutateOrder(ctx, h.uowFactory.Create(), cmd.OrderID(), m)
	if err != nil {
		return nil, err
	}

	h.notifications.orderChanged(ctx, ports.NewOrderEvent(ports.OrderCancelled, cancelled, previous, now))
	h.notifications.refundIfPaid(ctx, cancelled)

	return cancelled, nil
}
