package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/voucher"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
)

func voucherNotFound(err error, id kernel.UUID) error {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return voucher.ErrVoucherNotFound.WithMessage("voucher %s not found", id)
	}
	return translateStorageError(err)
}

// ApplyVoucherCommandHandler redeems a voucher atomically.
//
// The voucher row is locked for the whole check-and-increment, so two
// redemptions racing for the last slot run one after the other and the
// second fails the cap check. A replay of an already recorded usage returns
// the voucher unchanged.
type ApplyVoucherCommandHandler struct {
	uowFactory VoucherUoWFactory
	clock      kernel.Clock
}

func NewApplyVoucherCommandHandler(uowFactory VoucherUoWFactory, clock kernel.Clock) ApplyVoucherCommandHandler {
	return ApplyVoucherCommandHandler{
		uowFactory: uowFactory,
		clock:      clockOrDefault(clock),
	}
}

func (h *ApplyVoucherCommandHandler) Handle(ctx context.Context, cmd ApplyVoucherCommand) (applied *voucher.Voucher, err error) {
	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, span := tracing.Start(ctx, "ApplyVoucher",
		attribute.String("voucher.id", cmd.VoucherID().String()),
		attribute.String("order.id", cmd.OrderID().String()))
	defer func() { tracing.End(span, err) }()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	vouchers := uow.VoucherRepository()
	usages := uow.VoucherUsageRepository()

	v, err := vouchers.GetForUpdate(ctx, cmd.VoucherID())
	if err != nil {
		return nil, voucherNotFound(err, cmd.VoucherID())
	}

	replay, err := usages.Exists(ctx, voucher.UsageID(cmd.VoucherID(), cmd.UserID(), cmd.OrderID()))
	if err != nil {
		return nil, translateStorageError(err)
	}
	if replay {
		return v, nil
	}

	userUsages, err := usages.CountByUser(ctx, cmd.VoucherID(), cmd.UserID())
	if err != nil {
		return nil, translateStorageError(err)
	}

	now := h.clock()
	if err = v.RecordUsage(userUsages, now); err != nil {
		return nil, err
	}
	usage, err := voucher.NewUsage(v, cmd.UserID(), cmd.OrderID(), cmd.DiscountAmount(), now)
	if err != nil {
		return nil, err
	}

	if err = usages.Add(ctx, usage); err != nil {
		if errors.Is(err, ports.ErrDuplicate) {
			return nil, order.ErrConcurrentModification.WithCause(err)
		}
		return nil, translateStorageError(err)
	}
	if err = vouchers.Update(ctx, v); err != nil {
		return nil, translateStorageError(err)
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, translateStorageError(err)
	}

	return v, nil
}
