package queries

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler answers ListOrdersQuery with one COUNT and one
// page query over the (owner column, created_at) indexes.
type ListOrdersQueryHandler struct {
	db    *gorm.DB
	shops ports.ShopReader
}

// NewListOrdersQueryHandler needs shops to resolve an owner to their shop.
func NewListOrdersQueryHandler(db *gorm.DB, shops ports.ShopReader) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db, shops: shops}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (Page[OrderSummary], error) {
	if err := query.Validate(); err != nil {
		return Page[OrderSummary]{}, err
	}

	column, ownerID, err := h.ownerFilter(ctx, query)
	if err != nil {
		return Page[OrderSummary]{}, err
	}

	filtered := func() *gorm.DB {
		tx := h.db.WithContext(ctx).Table("orders").Where(column+" = ?", ownerID.Bytes())
		if query.Status() != order.Unknown {
			tx = tx.Where("status = ?", query.Status().String())
		}
		return tx
	}

	var total int64
	if err = filtered().Count(&total).Error; err != nil {
		return Page[OrderSummary]{}, err
	}

	items := make([]OrderSummary, 0, query.Limit())
	if total == 0 {
		return newPage(items, query.Page(), query.Limit(), total), nil
	}

	var rows []summaryRow
	err = filtered().
		Select(summaryColumns).
		Order("created_at DESC").
		Order("id DESC").
		Offset((query.Page() - 1) * query.Limit()).
		Limit(query.Limit()).
		Find(&rows).Error
	if err != nil {
		return Page[OrderSummary]{}, err
	}

	for _, row := range rows {
		summary, mapErr := row.toSummary()
		if mapErr != nil {
			return Page[OrderSummary]{}, fmt.Errorf("order %s: %w", row.ID, mapErr)
		}
		items = append(items, summary)
	}

	return newPage(items, query.Page(), query.Limit(), total), nil
}

func (h ListOrdersQueryHandler) ownerFilter(ctx context.Context, query ListOrdersQuery) (string, kernel.UUID, error) {
	switch query.Scope() {
	case ScopeCustomer:
		return "customer_id", query.ActorID(), nil
	case ScopeShipper:
		return "shipper_id", query.ActorID(), nil
	case ScopeShop:
		shop, err := h.shops.GetByOwner(ctx, query.ActorID())
		if errors.Is(err, errs.ErrObjectNotFound) {
			return "", kernel.UUID{}, catalog.ErrShopNotFound.WithMessage("user %s owns no shop", query.ActorID())
		}
		if err != nil {
			return "", kernel.UUID{}, err
		}
		return "shop_id", shop.ID, nil
	default:
		return "", kernel.UUID{}, fmt.Errorf("unsupported order scope %d", query.Scope())
	}
}
