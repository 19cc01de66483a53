package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/voucher"
)

type VoucherRepository interface {
	Add(ctx context.Context, v *voucher.Voucher) error
	Update(ctx context.Context, v *voucher.Voucher) error
	Get(ctx context.Context, id kernel.UUID) (*voucher.Voucher, error)

	// GetForUpdate locks the voucher row, serializing every redemption of it.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*voucher.Voucher, error)

	// FindByCode looks a code up within one shop. code must already be
	// normalized with voucher.NormalizeCode.
	FindByCode(ctx context.Context, shopID kernel.UUID, code string) (*voucher.Voucher, error)

	// ExpireBefore deactivates every active voucher whose validTo is before
	// now and returns how many were changed.
	ExpireBefore(ctx context.Context, now time.Time) (int64, error)
}

type VoucherUsageRepository interface {
	Exists(ctx context.Context, usageID string) (bool, error)
	CountByUser(ctx context.Context, voucherID, userID kernel.UUID) (int, error)

	// Add fails with ErrDuplicate when the usage id already exists.
	Add(ctx context.Context, usage voucher.Usage) error

	// Delete removes the usage and reports whether it existed.
	Delete(ctx context.Context, usageID string) (bool, error)
}
