package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/review"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// ReplyReviewCommandHandler stores the shop owner's answer to a review.
// Replying again replaces the previous answer.
type ReplyReviewCommandHandler struct {
	uowFactory ReviewUoWFactory
	shops      ports.ShopReader
	clock      kernel.Clock
}

func NewReplyReviewCommandHandler(uowFactory ReviewUoWFactory, shops ports.ShopReader, clock kernel.Clock) ReplyReviewCommandHandler {
	return ReplyReviewCommandHandler{
		uowFactory: uowFactory,
		shops:      shops,
		clock:      clockOrDefault(clock),
	}
}

func (h *ReplyReviewCommandHandler) Handle(ctx context.Context, cmd ReplyReviewCommand) (*review.Review, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()

	r, err := uow.ReviewRepository().Get(ctx, cmd.ReviewID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, review.ErrReviewNotFound.WithMessage("review %s not found", cmd.ReviewID())
	}
	if err != nil {
		return nil, err
	}

	shop, err := h.shops.GetByID(ctx, r.ShopID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, catalog.ErrShopNotFound.WithMessage("shop %s not found", r.ShopID())
	}
	if err != nil {
		return nil, err
	}
	if !shop.OwnerID.IsEqual(cmd.OwnerID()) {
		return nil, review.ErrNotReviewOwner
	}

	if err = r.Reply(cmd.Reply(), h.clock()); err != nil {
		return nil, err
	}

	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ReviewRepository().Update(ctx, r); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return r, nil
}
