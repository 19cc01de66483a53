package commands

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/voucher"
)

// ReleaseVoucherUsageCommandHandler deletes a usage record and gives its slot
// back in one transaction, keeping the voucher's counter equal to the number
// of usage rows. Releasing an unknown usage is a no-op.
type ReleaseVoucherUsageCommandHandler struct {
	uowFactory VoucherUoWFactory
	clock      kernel.Clock
}

func NewReleaseVoucherUsageCommandHandler(uowFactory VoucherUoWFactory, clock kernel.Clock) ReleaseVoucherUsageCommandHandler {
	return ReleaseVoucherUsageCommandHandler{
		uowFactory: uowFactory,
		clock:      clockOrDefault(clock),
	}
}

// Handle reports whether a usage was released.
func (h *ReleaseVoucherUsageCommandHandler) Handle(ctx context.Context, cmd ReleaseVoucherUsageCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	vouchers := uow.VoucherRepository()
	v, err := vouchers.GetForUpdate(ctx, cmd.VoucherID())
	if err != nil {
		return false, voucherNotFound(err, cmd.VoucherID())
	}

	deleted, err := uow.VoucherUsageRepository().Delete(ctx, voucher.UsageID(cmd.VoucherID(), cmd.UserID(), cmd.OrderID()))
	if err != nil {
		return false, translateStorageError(err)
	}
	if !deleted {
		return false, nil
	}

	v.ReleaseUsage(h.clock())
	if err = vouchers.Update(ctx, v); err != nil {
		return false, translateStorageError(err)
	}
	if err = uow.Commit(ctx); err != nil {
		return false, translateStorageError(err)
	}

	return true, nil
}
