package voucher

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// Usage records one redemption of a voucher by a user for an order.
type Usage struct {
	VoucherID      kernel.UUID
	ShopID         kernel.UUID
	UserID         kernel.UUID
	OrderID        kernel.UUID
	DiscountAmount int64
	CreatedAt      time.Time
}

// UsageID is the idempotency key of a redemption.
func UsageID(voucherID, userID, orderID kernel.UUID) string {
	return voucherID.String() + "_" + userID.String() + "_" + orderID.String()
}

func NewUsage(v *Voucher, userID, orderID kernel.UUID, discountAmount int64, now time.Time) (Usage, error) {
	var problems []error
	if err := v.Validate(); err != nil {
		problems = append(problems, err)
	}
	if err := userID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("userID", err))
	}
	if err := orderID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("orderID", err))
	}
	if discountAmount < 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("discountAmount", discountAmount, 0, "subtotal"))
	}
	if err := errors.Join(problems...); err != nil {
		return Usage{}, err
	}

	return Usage{
		VoucherID:      v.ID(),
		ShopID:         v.ShopID(),
		UserID:         userID,
		OrderID:        orderID,
		DiscountAmount: discountAmount,
		CreatedAt:      now,
	}, nil
}

func (u Usage) ID() string {
	return UsageID(u.VoucherID, u.UserID, u.OrderID)
}

// UsageSummary answers "how much of this voucher is left for this user".
type UsageSummary struct {
	VoucherID         kernel.UUID `json:"voucherId"`
	Code              string      `json:"code"`
	CurrentUsage      int         `json:"currentUsage"`
	UsageLimit        int         `json:"usageLimit"`
	UserUsage         int         `json:"userUsage"`
	UsageLimitPerUser int         `json:"usageLimitPerUser"`
}
