package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrReleaseVoucherUsageCommandIsNotConstructed = errors.New(
	"ReleaseVoucherUsageCommand must be created via NewReleaseVoucherUsageCommand constructor",
)

// ReleaseVoucherUsageCommand undoes a redemption whose order was never
// written.
type ReleaseVoucherUsageCommand struct { //nolint:recvcheck //using for validation
	voucherID kernel.UUID
	userID    kernel.UUID
	orderID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewReleaseVoucherUsageCommand(voucherID, userID, orderID kernel.UUID) (ReleaseVoucherUsageCommand, error) {
	if err := errors.Join(
		requireID("voucherID", voucherID),
		requireID("userID", userID),
		requireID("orderID", orderID),
	); err != nil {
		return ReleaseVoucherUsageCommand{}, err
	}

	return ReleaseVoucherUsageCommand{
		voucherID: voucherID,
		userID:    userID,
		orderID:   orderID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ReleaseVoucherUsageCommand) Validate() error {
	return c.guard.Validate(ErrReleaseVoucherUsageCommandIsNotConstructed)
}

func (c ReleaseVoucherUsageCommand) VoucherID() kernel.UUID { return c.voucherID }
func (c ReleaseVoucherUsageCommand) UserID() kernel.UUID    { return c.userID }
func (c ReleaseVoucherUsageCommand) OrderID() kernel.UUID   { return c.orderID }
