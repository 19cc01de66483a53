package queries

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"

	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db    *gorm.DB
	shops ports.ShopReader
}

func NewGetOrderQueryHandler(db *gorm.DB, shops ports.ShopReader) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db, shops: shops}
}

// Handle fails with order.ErrOrderNotFound for unknown orders and
// order.ErrNotOrderOwner for callers unrelated to the order.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderDetails, error) {
	if err := query.Validate(); err != nil {
		return OrderDetails{}, err
	}

	var row detailsRow
	err := h.db.WithContext(ctx).Table("orders").
		Where("id = ?", query.OrderID().Bytes()).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return OrderDetails{}, order.ErrOrderNotFound.WithMessage("order %s not found", query.OrderID())
	}
	if err != nil {
		return OrderDetails{}, err
	}

	var items []itemRow
	err = h.db.WithContext(ctx).Table("order_items").
		Select("product_id", "product_name", "quantity", "price", "subtotal").
		Where("order_id = ?", query.OrderID().Bytes()).
		Order("position").
		Find(&items).Error
	if err != nil {
		return OrderDetails{}, err
	}

	details, err := row.toDetails(items)
	if err != nil {
		return OrderDetails{}, err
	}
	if err = h.authorize(ctx, query, details); err != nil {
		return OrderDetails{}, err
	}

	return details, nil
}

func (h GetOrderQueryHandler) authorize(ctx context.Context, query GetOrderQuery, details OrderDetails) error {
	actor := query.ActorID()
	if details.CustomerID.IsEqual(actor) {
		return nil
	}
	if details.ShipperID != nil && details.ShipperID.IsEqual(actor) {
		return nil
	}

	shop, err := h.shops.GetByID(ctx, details.ShopID)
	if err != nil && !errors.Is(err, catalog.ErrShopNotFound) {
		return err
	}
	if err == nil && shop.OwnerID.IsEqual(actor) {
		return nil
	}

	return order.ErrNotOrderOwner
}
