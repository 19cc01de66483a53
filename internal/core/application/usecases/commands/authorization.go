package commands

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

const maxReasonLength = 500

// shopOwnedBy resolves the order's shop and rejects anyone but its owner.
func shopOwnedBy(shops ports.ShopReader, ownerID kernel.UUID) func(context.Context, *order.Order) error {
	return func(ctx context.Context, o *order.Order) error {
		shop, err := shops.GetByID(ctx, o.ShopID())
		if errors.Is(err, errs.ErrObjectNotFound) {
			return catalog.ErrShopNotFound.WithMessage("shop %s not found", o.ShopID())
		}
		if err != nil {
			return err
		}
		if !shop.OwnerID.IsEqual(ownerID) {
			return order.ErrNotOrderOwner.WithMessage("order %s belongs to another shop", o.ID())
		}
		return nil
	}
}

func placedBy(customerID kernel.UUID) func(context.Context, *order.Order) error {
	return func(_ context.Context, o *order.Order) error {
		if !o.IsOwnedByCustomer(customerID) {
			return order.ErrNotOrderOwner
		}
		return nil
	}
}

func normalizeReason(reason string) (string, error) {
	reason = strings.TrimSpace(reason)
	if n := utf8.RuneCountInString(reason); n > maxReasonLength {
		return "", errs.NewValueIsOutOfRangeError("reason length", n, 0, maxReasonLength)
	}
	return reason, nil
}
