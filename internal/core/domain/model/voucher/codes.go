package voucher

import "marketplace/internal/pkg/errs"

var (
	ErrVoucherNotFound   = errs.NewNotFound("VOUCHER_NOT_FOUND", "voucher not found")
	ErrVoucherInactive   = errs.NewConflict("VOUCHER_INACTIVE", "voucher is not active")
	ErrVoucherNotStarted = errs.NewConflict("VOUCHER_NOT_STARTED", "voucher is not valid yet")
	ErrVoucherExpired    = errs.NewConflict("VOUCHER_EXPIRED", "voucher has expired")
	ErrMinOrderNotMet    = errs.NewConflict("VOUCHER_MIN_ORDER_NOT_MET", "order subtotal is below the voucher minimum")
	ErrShopMismatch      = errs.NewConflict("VOUCHER_SHOP_MISMATCH", "voucher belongs to another shop")
	ErrTotalLimitReached = errs.NewConflict("VOUCHER_TOTAL_LIMIT_REACHED", "voucher usage limit reached")
	ErrUserLimitReached  = errs.NewConflict("VOUCHER_USER_LIMIT_REACHED", "voucher usage limit per user reached")
)
