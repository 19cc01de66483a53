// Package catalogrepo reads shops and products. The order core only reads
// the catalog; the write methods exist for the catalog service seed path and
// tests.
package catalogrepo

import (
	"context"
	"errors"

	"marketplace/internal/adapters/out/postgres/pgerr"
	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormShopRepository struct {
	db *gorm.DB
}

func NewGormShopRepository(db *gorm.DB) *GormShopRepository {
	return &GormShopRepository{db: db}
}

func (r *GormShopRepository) Save(ctx context.Context, s catalog.Shop) error {
	dto := shopFromDomain(s)
	return pgerr.Classify(r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&dto).Error)
}

func (r *GormShopRepository) GetByID(ctx context.Context, id kernel.UUID) (catalog.Shop, error) {
	return r.take(ctx, "id = ?", id)
}

func (r *GormShopRepository) GetByOwner(ctx context.Context, ownerID kernel.UUID) (catalog.Shop, error) {
	return r.take(ctx, "owner_id = ?", ownerID)
}

func (r *GormShopRepository) take(ctx context.Context, query string, id kernel.UUID) (catalog.Shop, error) {
	var dto ShopDTO
	if err := r.db.WithContext(ctx).Where(query, id.Bytes()).Take(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return catalog.Shop{}, catalog.ErrShopNotFound.WithMessage("shop for %s not found", id)
		}
		return catalog.Shop{}, err
	}
	return shopToDomain(dto), nil
}

type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) Save(ctx context.Context, p catalog.Product) error {
	dto := productFromDomain(p)
	return pgerr.Classify(r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&dto).Error)
}

// SoftDelete hides the product from menus. GetByID still returns it with
// IsDeleted set.
func (r *GormProductRepository) SoftDelete(ctx context.Context, id kernel.UUID) error {
	return r.db.WithContext(ctx).Delete(&ProductDTO{}, "id = ?", id.Bytes()).Error
}

func (r *GormProductRepository) GetByID(ctx context.Context, id kernel.UUID) (catalog.Product, error) {
	var dto ProductDTO
	if err := r.db.WithContext(ctx).Unscoped().Take(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return catalog.Product{}, catalog.ErrProductNotFound.WithMessage("product %s not found", id)
		}
		return catalog.Product{}, err
	}
	return productToDomain(dto), nil
}
