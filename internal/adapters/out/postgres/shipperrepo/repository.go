// Package shipperrepo keeps shipper availability in the shippers table.
package shipperrepo

import (
	"context"
	"errors"

	"marketplace/internal/adapters/out/postgres/pgerr"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/shipper"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormShipperRepository struct {
	db *gorm.DB
}

func NewGormShipperRepository(db *gorm.DB) *GormShipperRepository {
	return &GormShipperRepository{db: db}
}

func (r *GormShipperRepository) Add(ctx context.Context, s *shipper.Shipper) error {
	if err := s.Validate(); err != nil {
		return err
	}

	dto := fromDomain(s)
	return pgerr.Classify(r.db.WithContext(ctx).Create(&dto).Error)
}

func (r *GormShipperRepository) Get(ctx context.Context, id kernel.UUID) (*shipper.Shipper, error) {
	return r.load(ctx, r.db, id)
}

func (r *GormShipperRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*shipper.Shipper, error) {
	return r.load(ctx, r.db.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), id)
}

func (r *GormShipperRepository) UpdateStatus(ctx context.Context, s *shipper.Shipper) error {
	if err := s.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&ShipperDTO{}).
		Where("id = ?", s.ID().Bytes()).
		Updates(map[string]any{
			"status":     string(s.Status()),
			"updated_at": s.UpdatedAt(),
		})
	if result.Error != nil {
		return pgerr.Classify(result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("shipper", s.ID().String())
	}

	return nil
}

func (r *GormShipperRepository) load(ctx context.Context, db *gorm.DB, id kernel.UUID) (*shipper.Shipper, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipperDTO
	if err := db.WithContext(ctx).Take(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipper", id.String())
		}
		return nil, pgerr.Classify(err)
	}

	return toDomain(dto)
}
