package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrShipperOrderCommandIsNotConstructed = errors.New(
	"ShipperOrderCommand must be created via NewShipperOrderCommand constructor",
)

// ShipperOrderCommand names a shipper acting on an order: accepting a ready
// order or delivering one it carries.
type ShipperOrderCommand struct { //nolint:recvcheck //using for validation
	shipperID kernel.UUID
	orderID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewShipperOrderCommand(shipperID, orderID kernel.UUID) (ShipperOrderCommand, error) {
	if err := errors.Join(
		requireID("shipperID", shipperID),
		requireID("orderID", orderID),
	); err != nil {
		return ShipperOrderCommand{}, err
	}

	return ShipperOrderCommand{
		shipperID: shipperID,
		orderID:   orderID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ShipperOrderCommand) Validate() error {
	return c.guard.Validate(ErrShipperOrderCommandIsNotConstructed)
}

func (c ShipperOrderCommand) ShipperID() kernel.UUID { return c.shipperID }
func (c ShipperOrderCommand) OrderID() kernel.UUID   { return c.orderID }
