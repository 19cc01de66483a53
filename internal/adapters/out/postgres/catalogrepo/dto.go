package catalogrepo

import (
	"time"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShopDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Name            string    `gorm:"type:varchar(255);not null"`
	IsOpen          bool
	ShipFeePerOrder int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (ShopDTO) TableName() string {
	return "shops"
}

// ProductDTO is soft deleted through DeletedAt so orders keep pointing at
// products that were removed from the menu.
type ProductDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShopID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Price       int64
	IsAvailable bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (ProductDTO) TableName() string {
	return "products"
}

func shopFromDomain(s catalog.Shop) ShopDTO {
	return ShopDTO{
		ID:              s.ID.Bytes(),
		OwnerID:         s.OwnerID.Bytes(),
		Name:            s.Name,
		IsOpen:          s.IsOpen,
		ShipFeePerOrder: s.ShipFeePerOrder,
	}
}

func shopToDomain(dto ShopDTO) catalog.Shop {
	return catalog.Shop{
		ID:              kernel.FromGoogle(dto.ID),
		OwnerID:         kernel.FromGoogle(dto.OwnerID),
		Name:            dto.Name,
		IsOpen:          dto.IsOpen,
		ShipFeePerOrder: dto.ShipFeePerOrder,
	}
}

func productFromDomain(p catalog.Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID.Bytes(),
		ShopID:      p.ShopID.Bytes(),
		Name:        p.Name,
		Price:       p.Price,
		IsAvailable: p.IsAvailable,
	}
}

func productToDomain(dto ProductDTO) catalog.Product {
	return catalog.Product{
		ID:          kernel.FromGoogle(dto.ID),
		ShopID:      kernel.FromGoogle(dto.ShopID),
		Name:        dto.Name,
		Price:       dto.Price,
		IsAvailable: dto.IsAvailable,
		IsDeleted:   dto.DeletedAt.Valid,
	}
}
