package voucherrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/voucher"

	"github.com/google/uuid"
)

type VoucherDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShopID            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_vouchers_shop_code,priority:1"`
	Code              string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_vouchers_shop_code,priority:2"`
	Type              string    `gorm:"type:varchar(16);not null"`
	Value             int64
	MaxDiscount       int64
	MinOrderAmount    int64
	UsageLimit        int
	UsageLimitPerUser int
	CurrentUsage      int
	IsActive          bool `gorm:"index"`
	ValidFrom         *time.Time
	ValidTo           *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (VoucherDTO) TableName() string {
	return "vouchers"
}

// UsageDTO is one redemption. ID is the idempotency key built by
// voucher.UsageID, so replays collide on the primary key.
type UsageDTO struct {
	ID             string    `gorm:"type:varchar(160);primaryKey"`
	VoucherID      uuid.UUID `gorm:"type:uuid;not null;index:idx_voucher_usages_voucher_user,priority:1"`
	ShopID         uuid.UUID `gorm:"type:uuid;not null"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index:idx_voucher_usages_voucher_user,priority:2"`
	OrderID        uuid.UUID `gorm:"type:uuid;not null;index"`
	DiscountAmount int64
	CreatedAt      time.Time
}

func (UsageDTO) TableName() string {
	return "voucher_usages"
}

func fromDomain(v *voucher.Voucher) VoucherDTO {
	s := v.Snapshot()
	return VoucherDTO{
		ID:                s.ID.Bytes(),
		ShopID:            s.ShopID.Bytes(),
		Code:              s.Code,
		Type:              string(s.Type),
		Value:             s.Value,
		MaxDiscount:       s.MaxDiscount,
		MinOrderAmount:    s.MinOrderAmount,
		UsageLimit:        s.UsageLimit,
		UsageLimitPerUser: s.UsageLimitPerUser,
		CurrentUsage:      s.CurrentUsage,
		IsActive:          s.IsActive,
		ValidFrom:         s.ValidFrom,
		ValidTo:           s.ValidTo,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

func toDomain(dto VoucherDTO) (*voucher.Voucher, error) {
	return voucher.RestoreVoucher(voucher.Snapshot{
		ID:                kernel.FromGoogle(dto.ID),
		ShopID:            kernel.FromGoogle(dto.ShopID),
		Code:              dto.Code,
		Type:              voucher.Type(dto.Type),
		Value:             dto.Value,
		MaxDiscount:       dto.MaxDiscount,
		MinOrderAmount:    dto.MinOrderAmount,
		UsageLimit:        dto.UsageLimit,
		UsageLimitPerUser: dto.UsageLimitPerUser,
		CurrentUsage:      dto.CurrentUsage,
		IsActive:          dto.IsActive,
		ValidFrom:         dto.ValidFrom,
		ValidTo:           dto.ValidTo,
		CreatedAt:         dto.CreatedAt,
		UpdatedAt:         dto.UpdatedAt,
	})
}

func usageFromDomain(u voucher.Usage) UsageDTO {
	return UsageDTO{
		ID:             u.ID(),
		VoucherID:      u.VoucherID.Bytes(),
		ShopID:         u.ShopID.Bytes(),
		UserID:         u.UserID.Bytes(),
		OrderID:        u.OrderID.Bytes(),
		DiscountAmount: u.DiscountAmount,
		CreatedAt:      u.CreatedAt,
	}
}
