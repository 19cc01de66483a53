package shipperrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/shipper"

	"github.com/google/uuid"
)

type ShipperDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Status    string    `gorm:"type:varchar(16);not null"`
	UpdatedAt time.Time
}

func (ShipperDTO) TableName() string {
	return "shippers"
}

func fromDomain(s *shipper.Shipper) ShipperDTO {
	return ShipperDTO{
		ID:        s.ID().Bytes(),
		Name:      s.Name(),
		Status:    string(s.Status()),
		UpdatedAt: s.UpdatedAt(),
	}
}

func toDomain(dto ShipperDTO) (*shipper.Shipper, error) {
	return shipper.RestoreShipper(kernel.FromGoogle(dto.ID), dto.Name, shipper.Status(dto.Status), dto.UpdatedAt)
}
