package commands

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/shipper"
	"marketplace/internal/core/ports"
)

// AcceptOrderCommandHandler assigns a READY order to the first shipper that
// asks for it.
//
// Several shippers may race for the same order. The order row is locked
// first, so the loser blocks until the winner commits and then observes the
// assigned shipper, failing with order.ErrOrderNotAvailableForPickup. The
// shipper row is locked second; every dispatch operation takes the locks in
// that order.
type AcceptOrderCommandHandler struct {
	uowFactory    DispatchUoWFactory
	notifications Notifications
	clock         kernel.Clock
}

func NewAcceptOrderCommandHandler(
	uowFactory DispatchUoWFactory, notifications Notifications, clock kernel.Clock,
) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory:    uowFactory,
		notifications: notifications,
		clock:         clockOrDefault(clock),
	}
}

func (h *AcceptOrderCommandHandler) Handle(ctx context.Context, cmd ShipperOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.clock()
	shipperID := cmd.ShipperID()
	uow := h.uowFactory.Create()

	accepted, previous, err := mutateOrder(ctx, uow, cmd.OrderID(), orderMutation{
		name: "AcceptOrder",
		authorize: func(ctx context.Context, _ *order.Order) error {
			s, err := uow.ShipperDirectory().Get(ctx, shipperID)
			if err != nil {
				return shipperNotFound(err, shipperID)
			}
			if !s.IsAvailable() {
				return shipper.ErrShipperNotAvailable.WithMessage("shipper %s is %s", shipperID, s.Status())
			}
			return nil
		},
		apply: func(o *order.Order) error { return o.AcceptBy(shipperID, now) },
		inTx: func(ctx context.Context, _ *order.Order) error {
			directory := uow.ShipperDirectory()
			s, err := directory.GetForUpdate(ctx, shipperID)
			if err != nil {
				return shipperNotFound(err, shipperID)
			}
			if err = s.MarkBusy(now); err != nil {
				return err
			}
			return directory.UpdateStatus(ctx, s)
		},
	})
	if err != nil {
		return nil, err
	}

	h.notifications.orderChanged(ctx, ports.NewOrderEvent(ports.OrderShipping, accepted, previous, now))
	return accepted, nil
}
