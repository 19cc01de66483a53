package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/voucher"
	"marketplace/internal/pkg/errs"
)

// Redemption is a voucher applied to an order that is about to be created.
type Redemption struct {
	VoucherID kernel.UUID
	Code      string
	Discount  int64
}

// VoucherRedeemer is what checkout needs from the voucher ledger.
type VoucherRedeemer interface {
	// Redeem resolves code within the shop, validates it against subtotal and
	// records the usage for (userID, orderID).
	Redeem(ctx context.Context, shopID, userID, orderID kernel.UUID, code string, subtotal int64) (Redemption, error)
	// Release gives back a redemption whose order could not be written.
	Release(ctx context.Context, r Redemption, userID, orderID kernel.UUID) error
}

// VoucherLedger implements VoucherRedeemer on top of the apply and release
// handlers.
type VoucherLedger struct {
	uowFactory VoucherUoWFactory
	apply      ApplyVoucherCommandHandler
	release    ReleaseVoucherUsageCommandHandler
	clock      kernel.Clock
}

func NewVoucherLedger(uowFactory VoucherUoWFactory, clock kernel.Clock) *VoucherLedger {
	return &VoucherLedger{
		uowFactory: uowFactory,
		apply:      NewApplyVoucherCommandHandler(uowFactory, clock),
		release:    NewReleaseVoucherUsageCommandHandler(uowFactory, clock),
		clock:      clockOrDefault(clock),
	}
}

func (l *VoucherLedger) Redeem(
	ctx context.Context, shopID, userID, orderID kernel.UUID, code string, subtotal int64,
) (Redemption, error) {
	normalized := voucher.NormalizeCode(code)
	if normalized == "" {
		return Redemption{}, errs.NewValueIsRequiredError("voucherCode")
	}

	v, err := l.uowFactory.Create().VoucherRepository().FindByCode(ctx, shopID, normalized)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return Redemption{}, voucher.ErrVoucherNotFound.WithMessage("voucher %s not found", normalized)
	}
	if err != nil {
		return Redemption{}, err
	}

	if err = v.CheckRedeemable(shopID, subtotal, l.clock()); err != nil {
		return Redemption{}, err
	}
	discount := v.DiscountFor(subtotal)

	cmd, err := NewApplyVoucherCommand(v.ID(), userID, orderID, discount)
	if err != nil {
		return Redemption{}, err
	}
	if _, err = l.apply.Handle(ctx, cmd); err != nil {
		return Redemption{}, err
	}

	return Redemption{VoucherID: v.ID(), Code: v.Code(), Discount: discount}, nil
}

func (l *VoucherLedger) Release(ctx context.Context, r Redemption, userID, orderID kernel.UUID) error {
	cmd, err := NewReleaseVoucherUsageCommand(r.VoucherID, userID, orderID)
	if err != nil {
		return err
	}
	_, err = l.release.Handle(ctx, cmd)
	return err
}
