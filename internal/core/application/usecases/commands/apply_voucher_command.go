package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrApplyVoucherCommandIsNotConstructed = errors.New(
	"ApplyVoucherCommand must be created via NewApplyVoucherCommand constructor",
)

// ApplyVoucherCommand records one redemption of a voucher. The triple
// (voucher, user, order) is the idempotency key: sending the same command
// twice counts one usage.
type ApplyVoucherCommand struct { //nolint:recvcheck //using for validation
	voucherID      kernel.UUID
	userID         kernel.UUID
	orderID        kernel.UUID
	discountAmount int64

	guard guard.ConstructorGuard
}

func NewApplyVoucherCommand(voucherID, userID, orderID kernel.UUID, discountAmount int64) (ApplyVoucherCommand, error) {
	var amountErr error
	if discountAmount < 0 {
		amountErr = errs.NewValueIsOutOfRangeError("discountAmount", discountAmount, 0, "subtotal")
	}
	if err := errors.Join(
		requireID("voucherID", voucherID),
		requireID("userID", userID),
		requireID("orderID", orderID),
		amountErr,
	); err != nil {
		return ApplyVoucherCommand{}, err
	}

	return ApplyVoucherCommand{
		voucherID:      voucherID,
		userID:         userID,
		orderID:        orderID,
		discountAmount: discountAmount,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c ApplyVoucherCommand) Validate() error {
	return c.guard.Validate(ErrApplyVoucherCommandIsNotConstructed)
}

func (c ApplyVoucherCommand) VoucherID() kernel.UUID { return c.voucherID }
func (c ApplyVoucherCommand) UserID() kernel.UUID    { return c.userID }
func (c ApplyVoucherCommand) OrderID() kernel.UUID   { return c.orderID }
func (c ApplyVoucherCommand) DiscountAmount() int64  { return c.discountAmount }
