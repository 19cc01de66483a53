package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrShopOrderCommandIsNotConstructed = errors.New(
	"ShopOrderCommand must be created via NewShopOrderCommand constructor",
)

// ShopOrderCommand carries the owner and order of the shop-side transitions:
// confirm, start preparing and mark ready.
type ShopOrderCommand struct { //nolint:recvcheck //using for validation
	ownerID kernel.UUID
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewShopOrderCommand(ownerID, orderID kernel.UUID) (ShopOrderCommand, error) {
	if err := errors.Join(
		requireID("ownerID", ownerID),
		requireID("orderID", orderID),
	); err != nil {
		return ShopOrderCommand{}, err
	}

	return ShopOrderCommand{
		ownerID: ownerID,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ShopOrderCommand) Validate() error {
	return c.guard.Validate(ErrShopOrderCommandIsNotConstructed)
}

func (c ShopOrderCommand) OwnerID() kernel.UUID { return c.ownerID }
func (c ShopOrderCommand) OrderID() kernel.UUID { return c.orderID }
