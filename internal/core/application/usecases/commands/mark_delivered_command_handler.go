package commands

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
)

// MarkDeliveredCommandHandler completes a SHIPPING order for its assigned
// shipper. Cash orders become PAID in the same write, and the shipper is
// released back to AVAILABLE.
type MarkDeliveredCommandHandler struct {
	uowFactory    DispatchUoWFactory
	notifications Notifications
	clock         kernel.Clock
}

func NewMarkDeliveredCommandHandler(
	uowFactory DispatchUoWFactory, notifications Notifications, clock kernel.Clock,
) MarkDeliveredCommandHandler {
	return MarkDeliveredCommandHandler{
		uowFactory:    uowFactory,
		notifications: notifications,
		clock:         clockOrDefault(clock),
	}
}

func (h *MarkDeliveredCommandHandler) Handle(ctx context.Context, cmd ShipperOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.clock()
	shipperID := cmd.ShipperID()
	uow := h.uowFactory.Create()

	delivered, previous, err := mutateOrder(ctx, uow, cmd.OrderID(), orderMutation{
		name:  "MarkDelivered",
		apply: func(o *order.Order) error { return o.Deliver(shipperID, now) },
		inTx: func(ctx context.Context, _ *order.Order) error {
			directory := uow.ShipperDirectory()
			s, err := directory.GetForUpdate(ctx, shipperID)
			if err != nil {
				return shipperNotFound(err, shipperID)
			}
			s.MarkAvailable(now)
			return directory.UpdateStatus(ctx, s)
		},
	})
	if err != nil {
		return nil, err
	}

	h.notifications.orderChanged(ctx, ports.NewOrderEvent(ports.OrderDelivered, delivered, previous, now))
	return delivered, nil
}
