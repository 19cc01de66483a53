package commands

import (
	"context"

	"marketplace/internal/pkg/tracing"
)

// BackfillShipperIDCommandHandler rewrites legacy orders that reference the
// nil UUID as their shipper so "no shipper" is always stored as NULL.
type BackfillShipperIDCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewBackfillShipperIDCommandHandler(uowFactory OrderUoWFactory) BackfillShipperIDCommandHandler {
	return BackfillShipperIDCommandHandler{uowFactory: uowFactory}
}

// Handle returns how many orders were rewritten. Zero on every run after the
// first.
func (h *BackfillShipperIDCommandHandler) Handle(ctx context.Context) (updated int64, err error) {
	ctx, span := tracing.Start(ctx, "BackfillShipperIDNull")
	defer func() { tracing.End(span, err) }()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	updated, err = uow.OrderRepository().BackfillShipperIDNull(ctx)
	if err != nil {
		return 0, err
	}
	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return updated, nil
}
