package postgres

import (
	"marketplace/internal/adapters/out/postgres/cartrepo"
	"marketplace/internal/adapters/out/postgres/catalogrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/reviewrepo"
	"marketplace/internal/adapters/out/postgres/shipperrepo"
	"marketplace/internal/adapters/out/postgres/voucherrepo"

	"gorm.io/gorm"
)

// Migrate creates or extends every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&catalogrepo.ShopDTO{},
		&catalogrepo.ProductDTO{},
		&cartrepo.CartItemDTO{},
		&shipperrepo.ShipperDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&voucherrepo.VoucherDTO{},
		&voucherrepo.UsageDTO{},
		&reviewrepo.ReviewDTO{},
	)
}
