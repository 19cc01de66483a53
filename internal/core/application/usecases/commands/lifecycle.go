package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/shipper"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
)

// translateStorageError turns storage level contention into the domain's
// retryable conflict and leaves every other error alone.
func translateStorageError(err error) error {
	if errors.Is(err, ports.ErrConcurrentUpdate) {
		return order.ErrConcurrentModification.WithCause(err)
	}
	return err
}

func orderNotFound(err error, id kernel.UUID) error {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return order.ErrOrderNotFound.WithMessage("order %s not found", id)
	}
	return translateStorageError(err)
}

func shipperNotFound(err error, id kernel.UUID) error {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return shipper.ErrShipperNotFound.WithMessage("shipper %s not found", id)
	}
	return translateStorageError(err)
}

func requireID(paramName string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(paramName, err)
	}
	return nil
}

func clockOrDefault(clock kernel.Clock) kernel.Clock {
	if clock == nil {
		return kernel.SystemClock
	}
	return clock
}

// orderMutation describes one status change of a single order.
type orderMutation struct {
	name string
	// authorize rejects callers that may not touch the order. It runs once,
	// on the unlocked read.
	authorize func(ctx context.Context, o *order.Order) error
	// apply performs the domain transition.
	apply func(o *order.Order) error
	// inTx, when set, runs inside the transaction after apply succeeded on
	// the locked order and before the order is written.
	inTx func(ctx context.Context, o *order.Order) error
}

// mutateOrder applies m twice: once against a plain read so business errors
// surface before any lock is taken, then against the row locked inside the
// transaction so a concurrent writer cannot slip in between check and write.
// It returns the committed order and the status it left.
func mutateOrder(
	ctx context.Context, uow OrderUoW, orderID kernel.UUID, m orderMutation,
) (result *order.Order, previous order.Status, err error) {
	ctx, span := tracing.Start(ctx, m.name, attribute.String("order.id", orderID.String()))
	defer func() { tracing.End(span, err) }()

	current, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return nil, order.Unknown, orderNotFound(err, orderID)
	}
	if m.authorize != nil {
		if err = m.authorize(ctx, current); err != nil {
			return nil, order.Unknown, err
		}
	}
	if err = m.apply(current); err != nil {
		return nil, order.Unknown, err
	}

	if err = uow.Begin(ctx); err != nil {
		return nil, order.Unknown, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	locked, err := repo.GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, order.Unknown, orderNotFound(err, orderID)
	}
	previous = locked.Status()
	if err = m.apply(locked); err != nil {
		return nil, order.Unknown, err
	}
	if m.inTx != nil {
		if err = m.inTx(ctx, locked); err != nil {
			return nil, order.Unknown, translateStorageError(err)
		}
	}
	if err = repo.Update(ctx, locked); err != nil {
		return nil, order.Unknown, translateStorageError(err)
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, order.Unknown, translateStorageError(err)
	}

	return locked, previous, nil
}
