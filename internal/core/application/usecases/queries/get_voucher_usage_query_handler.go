package queries

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/voucher"

	"gorm.io/gorm"
)

type GetVoucherUsageQueryHandler struct {
	db *gorm.DB
}

func NewGetVoucherUsageQueryHandler(db *gorm.DB) GetVoucherUsageQueryHandler {
	return GetVoucherUsageQueryHandler{db: db}
}

func (h GetVoucherUsageQueryHandler) Handle(ctx context.Context, query GetVoucherUsageQuery) (voucher.UsageSummary, error) {
	if err := query.Validate(); err != nil {
		return voucher.UsageSummary{}, err
	}

	var row struct {
		Code              string
		CurrentUsage      int
		UsageLimit        int
		UsageLimitPerUser int
	}
	err := h.db.WithContext(ctx).Table("vouchers").
		Select("code", "current_usage", "usage_limit", "usage_limit_per_user").
		Where("id = ?", query.VoucherID().Bytes()).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return voucher.UsageSummary{}, voucher.ErrVoucherNotFound.WithMessage("voucher %s not found", query.VoucherID())
	}
	if err != nil {
		return voucher.UsageSummary{}, err
	}

	var userUsage int64
	err = h.db.WithContext(ctx).Table("voucher_usages").
		Where("voucher_id = ? AND user_id = ?", query.VoucherID().Bytes(), query.UserID().Bytes()).
		Count(&userUsage).Error
	if err != nil {
		return voucher.UsageSummary{}, err
	}

	return voucher.UsageSummary{
		VoucherID:         query.VoucherID(),
		Code:              row.Code,
		CurrentUsage:      row.CurrentUsage,
		UsageLimit:        row.UsageLimit,
		UserUsage:         int(userUsage),
		UsageLimitPerUser: row.UsageLimitPerUser,
	}, nil
}
