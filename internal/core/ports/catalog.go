package ports

import (
	"context"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
)

// CartReader exposes the customer's cart. ClearGroup returns how many lines
// it deleted so checkout can detect a cart consumed by a concurrent request.
type CartReader interface {
	GetGroupedCart(ctx context.Context, customerID kernel.UUID) ([]catalog.CartGroup, error)
	ClearGroup(ctx context.Context, customerID, shopID kernel.UUID) (int64, error)
}

// ShopReader returns catalog.ErrShopNotFound for unknown shops.
type ShopReader interface {
	GetByID(ctx context.Context, id kernel.UUID) (catalog.Shop, error)
	GetByOwner(ctx context.Context, ownerID kernel.UUID) (catalog.Shop, error)
}

// ProductReader returns catalog.ErrProductNotFound for unknown products and
// soft deleted ones with IsDeleted set.
type ProductReader interface {
	GetByID(ctx context.Context, id kernel.UUID) (catalog.Product, error)
}
