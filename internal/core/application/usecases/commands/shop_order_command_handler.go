package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
)

// ShopOrderCommandHandler moves an order one step forward on behalf of the
// owner of its shop. One handler exists per step.
//
// Example:
//
//	confirm := NewConfirmOrderCommandHandler(uowFactory, shops, notifications, nil)
//	cmd, _ := NewShopOrderCommand(ownerID, orderID)
//	confirmed, err := confirm.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrConflict) {
//	    // wrong status, or an unpaid prepaid order
//	}
type ShopOrderCommandHandler struct {
	uowFactory    OrderUoWFactory
	shops         ports.ShopReader
	notifications Notifications
	clock         kernel.Clock

	operation string
	event     ports.OrderEventType
	step      func(o *order.Order, now time.Time) error
}

// NewConfirmOrderCommandHandler moves PENDING orders to CONFIRMED. Orders
// paid online must already be PAID.
func NewConfirmOrderCommandHandler(
	uowFactory OrderUoWFactory, shops ports.ShopReader, notifications Notifications, clock kernel.Clock,
) ShopOrderCommandHandler {
	return newShopOrderCommandHandler(uowFactory, shops, notifications, clock,
		"ConfirmOrder", ports.OrderConfirmed, (*order.Order).Confirm)
}

// NewMarkPreparingCommandHandler moves CONFIRMED orders to PREPARING.
func NewMarkPreparingCommandHandler(
	uowFactory OrderUoWFactory, shops ports.ShopReader, notifications Notifications, clock kernel.Clock,
) ShopOrderCommandHandler {
	return newShopOrderCommandHandler(uowFactory, shops, notifications, clock,
		"MarkPreparing", ports.OrderPreparing, (*order.Order).StartPreparing)
}

// NewMarkReadyCommandHandler moves PREPARING orders to READY, where shippers
// can pick them up.
func NewMarkReadyCommandHandler(
	uowFactory OrderUoWFactory, shops ports.ShopReader, notifications Notifications, clock kernel.Clock,
) ShopOrderCommandHandler {
	return newShopOrderCommandHandler(uowFactory, shops, notifications, clock,
		"MarkReady", ports.OrderReady, (*order.Order).MarkReady)
}

func newShopOrderCommandHandler(
	uowFactory OrderUoWFactory,
	shops ports.ShopReader,
	notifications Notifications,
	clock kernel.Clock,
	operation string,
	event ports.OrderEventType,
	step func(o *order.Order, now time.Time) error,
) ShopOrderCommandHandler {
	return ShopOrderCommandHandler{
		uowFactory:    uowFactory,
		shops:         shops,
		notifications: notifications,
		clock:         clockOrDefault(clock),
		operation:     operation,
		event:         event,
		step:          step,
	}
}

func (h *ShopOrderCommandHandler) Handle(ctx context.Context, cmd ShopOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.clock()
	updated, previous, err := mutateOrder(ctx, h.uowFactory.Create(), cmd.OrderID(), orderMutation{
		name:      h.operation,
		authorize: shopOwnedBy(h.shops, cmd.OwnerID()),
		apply:     func(o *order.Order) error { return h.step(o, now) },
	})
	if err != nil {
		return nil, err
	}

	h.notifications.orderChanged(ctx, ports.NewOrderEvent(h.event, updated, previous, now))
	return updated, nil
}
