package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/review"
	"marketplace/internal/core/ports"
)

// CreateReviewCommandHandler lets a customer review one of their delivered
// orders, once. The existence check runs before the insert; the unique index
// on order_id catches the rare concurrent duplicate.
type CreateReviewCommandHandler struct {
	uowFactory ReviewUoWFactory
	clock      kernel.Clock
}

func NewCreateReviewCommandHandler(uowFactory ReviewUoWFactory, clock kernel.Clock) CreateReviewCommandHandler {
	return CreateReviewCommandHandler{
		uowFactory: uowFactory,
		clock:      clockOrDefault(clock),
	}
}

func (h *CreateReviewCommandHandler) Handle(ctx context.Context, cmd CreateReviewCommand) (*review.Review, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, orderNotFound(err, cmd.OrderID())
	}
	if !o.IsOwnedByCustomer(cmd.CustomerID()) {
		return nil, order.ErrNotOrderOwner
	}
	if o.Status() != order.Delivered {
		return nil, review.ErrOrderNotReviewable.WithMessage("order %s is %s", o.ID(), o.Status())
	}

	exists, err := uow.ReviewRepository().ExistsForOrder(ctx, o.ID())
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, review.ErrReviewExists
	}

	r, err := review.NewReview(kernel.NewUUID(), o.ID(), cmd.CustomerID(), o.ShopID(), cmd.Rating(), cmd.Comment(), h.clock())
	if err != nil {
		return nil, err
	}

	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ReviewRepository().Add(ctx, r); err != nil {
		if errors.Is(err, ports.ErrDuplicate) {
			return nil, review.ErrReviewExists.WithCause(err)
		}
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return r, nil
}
