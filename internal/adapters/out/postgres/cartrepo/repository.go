// Package cartrepo reads customer carts and clears the part of a cart that a
// checkout consumed.
package cartrepo

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartItemDTO is one cart line. Price is captured when the line is added.
type CartItemDTO struct {
	ID          uint      `gorm:"primaryKey"`
	CustomerID  uuid.UUID `gorm:"type:uuid;not null;index:idx_cart_items_customer_shop,priority:1"`
	ShopID      uuid.UUID `gorm:"type:uuid;not null;index:idx_cart_items_customer_shop,priority:2"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null"`
	ProductName string    `gorm:"type:varchar(255);not null"`
	Quantity    int
	Price       int64
	CreatedAt   time.Time
}

func (CartItemDTO) TableName() string {
	return "cart_items"
}

type GormCartRepository struct {
	db *gorm.DB
}

func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// AddLine appends a line to the customer's cart for shopID.
func (r *GormCartRepository) AddLine(ctx context.Context, customerID, shopID kernel.UUID, line catalog.CartLine) error {
	dto := CartItemDTO{
		CustomerID:  customerID.Bytes(),
		ShopID:      shopID.Bytes(),
		ProductID:   line.ProductID.Bytes(),
		ProductName: line.ProductName,
		Quantity:    line.Quantity,
		Price:       line.Price,
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetGroupedCart returns the cart split by shop, in the order lines were
// added.
func (r *GormCartRepository) GetGroupedCart(ctx context.Context, customerID kernel.UUID) ([]catalog.CartGroup, error) {
	var rows []CartItemDTO
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID.Bytes()).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	var groups []catalog.CartGroup
	index := make(map[uuid.UUID]int)
	for _, row := range rows {
		i, ok := index[row.ShopID]
		if !ok {
			i = len(groups)
			index[row.ShopID] = i
			groups = append(groups, catalog.CartGroup{ShopID: kernel.FromGoogle(row.ShopID)})
		}
		groups[i].Lines = append(groups[i].Lines, catalog.CartLine{
			ProductID:   kernel.FromGoogle(row.ProductID),
			ProductName: row.ProductName,
			Quantity:    row.Quantity,
			Price:       row.Price,
		})
	}

	return groups, nil
}

func (r *GormCartRepository) ClearGroup(ctx context.Context, customerID, shopID kernel.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("customer_id = ? AND shop_id = ?", customerID.Bytes(), shopID.Bytes()).
		Delete(&CartItemDTO{})
	return result.RowsAffected, result.Error
}
