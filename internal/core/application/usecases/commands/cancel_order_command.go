package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand or NewOwnerCancelOrderCommand",
)

// CancelOrderCommand asks to cancel an order on behalf of its customer or of
// the owner of its shop. The actor decides which cancellation rule applies.
//
// Example:
//
//	cmd, err := NewCancelOrderCommand(customerID, orderID, "ordered twice")
//	if err != nil {
//	    return err
//	}
//	cancelled, err := handler.Handle(ctx, cmd)
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	actorID kernel.UUID
	orderID kernel.UUID
	reason  string
	byOwner bool

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand builds a customer cancellation. reason may be empty.
func NewCancelOrderCommand(customerID, orderID kernel.UUID, reason string) (CancelOrderCommand, error) {
	return newCancelOrderCommand(customerID, orderID, reason, false)
}

// NewOwnerCancelOrderCommand builds a cancellation by the shop owner.
func NewOwnerCancelOrderCommand(ownerID, orderID kernel.UUID, reason string) (CancelOrderCommand, error) {
	return newCancelOrderCommand(ownerID, orderID, reason, true)
}

func newCancelOrderCommand(actorID, orderID kernel.UUID, reason string, byOwner bool) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		guard:   guard.NewConstructorGuard(),
		actorID: actorID,
		orderID: orderID,
		byOwner: byOwner,
	}

	normalized, reasonErr := normalizeReason(reason)
	if err := errors.Join(
		requireID("actorID", actorID),
		requireID("orderID", orderID),
		reasonErr,
	); err != nil {
		return CancelOrderCommand{}, err
	}
	cmd.reason = normalized

	return cmd, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// ActorID is the customer or the shop owner, depending on ByOwner.
func (c CancelOrderCommand) ActorID() kernel.UUID { return c.actorID }
func (c CancelOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c CancelOrderCommand) Reason() string       { return c.reason }
func (c CancelOrderCommand) ByOwner() bool        { return c.byOwner }
