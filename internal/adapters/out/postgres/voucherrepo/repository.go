// Package voucherrepo stores vouchers and their redemptions.
package voucherrepo

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/adapters/out/postgres/pgerr"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/voucher"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormVoucherRepository struct {
	db *gorm.DB
}

func NewGormVoucherRepository(db *gorm.DB) *GormVoucherRepository {
	return &GormVoucherRepository{db: db}
}

func (r *GormVoucherRepository) Add(ctx context.Context, v *voucher.Voucher) error {
	if err := v.Validate(); err != nil {
		return err
	}

	dto := fromDomain(v)
	return pgerr.Classify(r.db.WithContext(ctx).Create(&dto).Error)
}

func (r *GormVoucherRepository) Update(ctx context.Context, v *voucher.Voucher) error {
	if err := v.Validate(); err != nil {
		return err
	}

	dto := fromDomain(v)
	result := r.db.WithContext(ctx).
		Model(&VoucherDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "shop_id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return pgerr.Classify(result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("voucher", v.ID().String())
	}

	return nil
}

func (r *GormVoucherRepository) Get(ctx context.Context, id kernel.UUID) (*voucher.Voucher, error) {
	return r.take(r.db.WithContext(ctx), id.String(), "id = ?", id.Bytes())
}

func (r *GormVoucherRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*voucher.Voucher, error) {
	db := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	return r.take(db, id.String(), "id = ?", id.Bytes())
}

func (r *GormVoucherRepository) FindByCode(ctx context.Context, shopID kernel.UUID, code string) (*voucher.Voucher, error) {
	return r.take(r.db.WithContext(ctx), code, "shop_id = ? AND code = ?", shopID.Bytes(), code)
}

func (r *GormVoucherRepository) ExpireBefore(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&VoucherDTO{}).
		Where("is_active AND valid_to IS NOT NULL AND valid_to < ?", now).
		Updates(map[string]any{
			"is_active":  false,
			"updated_at": now,
		})
	if result.Error != nil {
		return 0, pgerr.Classify(result.Error)
	}

	return result.RowsAffected, nil
}

func (r *GormVoucherRepository) take(db *gorm.DB, key string, query string, args ...any) (*voucher.Voucher, error) {
	var dto VoucherDTO
	if err := db.Where(query, args...).Take(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("voucher", key)
		}
		return nil, pgerr.Classify(err)
	}

	return toDomain(dto)
}

type GormVoucherUsageRepository struct {
	db *gorm.DB
}

func NewGormVoucherUsageRepository(db *gorm.DB) *GormVoucherUsageRepository {
	return &GormVoucherUsageRepository{db: db}
}

func (r *GormVoucherUsageRepository) Exists(ctx context.Context, usageID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&UsageDTO{}).Where("id = ?", usageID).Count(&count).Error
	return count > 0, err
}

func (r *GormVoucherUsageRepository) CountByUser(ctx context.Context, voucherID, userID kernel.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&UsageDTO{}).
		Where("voucher_id = ? AND user_id = ?", voucherID.Bytes(), userID.Bytes()).
		Count(&count).Error
	return int(count), err
}

func (r *GormVoucherUsageRepository) Add(ctx context.Context, usage voucher.Usage) error {
	dto := usageFromDomain(usage)
	return pgerr.Classify(r.db.WithContext(ctx).Create(&dto).Error)
}

func (r *GormVoucherUsageRepository) Delete(ctx context.Context, usageID string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", usageID).Delete(&UsageDTO{})
	if result.Error != nil {
		return false, pgerr.Classify(result.Error)
	}
	return result.RowsAffected > 0, nil
}
