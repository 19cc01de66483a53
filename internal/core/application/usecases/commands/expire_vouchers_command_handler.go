package commands

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/tracing"
)

// ExpireVouchersCommandHandler deactivates every active voucher whose
// validity ended before now. Running it twice changes nothing the second
// time.
type ExpireVouchersCommandHandler struct {
	uowFactory VoucherUoWFactory
	clock      kernel.Clock
}

func NewExpireVouchersCommandHandler(uowFactory VoucherUoWFactory, clock kernel.Clock) ExpireVouchersCommandHandler {
	return ExpireVouchersCommandHandler{
		uowFactory: uowFactory,
		clock:      clockOrDefault(clock),
	}
}

// Handle returns the number of vouchers deactivated.
func (h *ExpireVouchersCommandHandler) Handle(ctx context.Context) (expired int64, err error) {
	ctx, span := tracing.Start(ctx, "ExpireVouchers")
	defer func() { tracing.End(span, err) }()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	expired, err = uow.VoucherRepository().ExpireBefore(ctx, h.clock())
	if err != nil {
		return 0, err
	}
	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return expired, nil
}
