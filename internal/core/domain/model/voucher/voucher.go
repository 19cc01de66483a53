package voucher

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrVoucherIsNotConstructed = errors.New("Voucher must be created via NewVoucher or RestoreVoucher")

type Type string

const (
	Percentage Type = "PERCENTAGE"
	Fixed      Type = "FIXED"
)

func (t Type) Validate() error {
	switch t {
	case Percentage, Fixed:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%q is not a voucher type", string(t)))
	}
}

// NormalizeCode makes code lookups case and whitespace insensitive.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Voucher is a discount code owned by one shop. A usage limit of zero means
// unlimited.
type Voucher struct {
	guard guard.ConstructorGuard

	id                kernel.UUID
	shopID            kernel.UUID
	code              string
	vtype             Type
	value             int64
	maxDiscount       int64
	minOrderAmount    int64
	usageLimit        int
	usageLimitPerUser int
	currentUsage      int
	isActive          bool
	validFrom         *time.Time
	validTo           *time.Time
	createdAt         time.Time
	updatedAt         time.Time
}

// Snapshot is the flat form repositories persist.
type Snapshot struct {
	ID                kernel.UUID
	ShopID            kernel.UUID
	Code              string
	Type              Type
	Value             int64
	MaxDiscount       int64
	MinOrderAmount    int64
	UsageLimit        int
	UsageLimitPerUser int
	CurrentUsage      int
	IsActive          bool
	ValidFrom         *time.Time
	ValidTo           *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewVoucher creates an active voucher with no usages.
func NewVoucher(s Snapshot) (*Voucher, error) {
	s.CurrentUsage = 0
	s.IsActive = true
	s.UpdatedAt = s.CreatedAt
	return RestoreVoucher(s)
}

func RestoreVoucher(s Snapshot) (*Voucher, error) {
	v := &Voucher{
		guard:             guard.NewConstructorGuard(),
		id:                s.ID,
		shopID:            s.ShopID,
		code:              NormalizeCode(s.Code),
		vtype:             s.Type,
		value:             s.Value,
		maxDiscount:       s.MaxDiscount,
		minOrderAmount:    s.MinOrderAmount,
		usageLimit:        s.UsageLimit,
		usageLimitPerUser: s.UsageLimitPerUser,
		currentUsage:      s.CurrentUsage,
		isActive:          s.IsActive,
		validFrom:         s.ValidFrom,
		validTo:           s.ValidTo,
		createdAt:         s.CreatedAt,
		updatedAt:         s.UpdatedAt,
	}
	if err := v.validate(); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Voucher) validate() error {
	var problems []error
	if err := v.id.Validate(); err != nil {
		problems = append(problems, err)
	}
	if err := v.shopID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("shopID", err))
	}
	if v.code == "" {
		problems = append(problems, errs.NewValueIsRequiredError("code"))
	}
	if err := v.vtype.Validate(); err != nil {
		problems = append(problems, err)
	}
	if v.vtype == Percentage && (v.value <= 0 || v.value > 100) {
		problems = append(problems, errs.NewValueIsOutOfRangeError("value", v.value, 1, 100))
	}
	if v.vtype == Fixed && v.value <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("value",
			fmt.Errorf("%d is not greater than 0", v.value)))
	}
	if v.maxDiscount < 0 || v.minOrderAmount < 0 || v.usageLimit < 0 || v.usageLimitPerUser < 0 || v.currentUsage < 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("limits",
			errors.New("amounts and limits cannot be negative")))
	}
	if v.validFrom != nil && v.validTo != nil && v.validTo.Before(*v.validFrom) {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("validTo",
			errors.New("validTo is before validFrom")))
	}
	return errors.Join(problems...)
}

func (v *Voucher) Snapshot() Snapshot {
	return Snapshot{
		ID:                v.id,
		ShopID:            v.shopID,
		Code:              v.code,
		Type:              v.vtype,
		Value:             v.value,
		MaxDiscount:       v.maxDiscount,
		MinOrderAmount:    v.minOrderAmount,
		UsageLimit:        v.usageLimit,
		UsageLimitPerUser: v.usageLimitPerUser,
		CurrentUsage:      v.currentUsage,
		IsActive:          v.isActive,
		ValidFrom:         v.validFrom,
		ValidTo:           v.validTo,
		CreatedAt:         v.createdAt,
		UpdatedAt:         v.updatedAt,
	}
}

func (v *Voucher) Validate() error {
	if v == nil {
		return ErrVoucherIsNotConstructed
	}
	return v.guard.Validate(ErrVoucherIsNotConstructed)
}

func (v *Voucher) ID() kernel.UUID        { return v.id }
func (v *Voucher) ShopID() kernel.UUID    { return v.shopID }
func (v *Voucher) Code() string           { return v.code }
func (v *Voucher) Type() Type             { return v.vtype }
func (v *Voucher) UsageLimit() int        { return v.usageLimit }
func (v *Voucher) UsageLimitPerUser() int { return v.usageLimitPerUser }
func (v *Voucher) CurrentUsage() int      { return v.currentUsage }
func (v *Voucher) IsActive() bool         { return v.isActive }

// CheckRedeemable verifies everything about the voucher that does not depend on
// usage counters: shop, activity window and minimum order.
func (v *Voucher) CheckRedeemable(shopID kernel.UUID, subtotal int64, now time.Time) error {
	switch {
	case !v.shopID.IsEqual(shopID):
		return ErrShopMismatch
	case !v.isActive:
		return ErrVoucherInactive
	case v.validFrom != nil && now.Before(*v.validFrom):
		return ErrVoucherNotStarted
	case v.validTo != nil && now.After(*v.validTo):
		return ErrVoucherExpired
	case subtotal < v.minOrderAmount:
		return ErrMinOrderNotMet.WithMessage("order subtotal %d is below the voucher minimum %d", subtotal, v.minOrderAmount)
	}
	return nil
}

// DiscountFor returns the discount on subtotal. Percentages round down and
// respect maxDiscount; the result never exceeds subtotal.
func (v *Voucher) DiscountFor(subtotal int64) int64 {
	if subtotal <= 0 {
		return 0
	}

	var discount int64
	switch v.vtype {
	case Percentage:
		discount = decimal.NewFromInt(subtotal).
			Mul(decimal.NewFromInt(v.value)).
			Div(decimal.NewFromInt(100)).
			Floor().
			IntPart()
		if v.maxDiscount > 0 && discount > v.maxDiscount {
			discount = v.maxDiscount
		}
	case Fixed:
		discount = v.value
	}

	return min(discount, subtotal)
}

// CheckUsageCaps fails when one more redemption would exceed the global cap
// or the user's cap, given the user's prior usage count. A cap of zero is
// not enforced.
func (v *Voucher) CheckUsageCaps(userUsages int) error {
	if v.usageLimit > 0 && v.currentUsage+1 > v.usageLimit {
		return ErrTotalLimitReached
	}
	if v.usageLimitPerUser > 0 && userUsages >= v.usageLimitPerUser {
		return ErrUserLimitReached
	}
	return nil
}

// RecordUsage counts one redemption after re-checking the caps.
func (v *Voucher) RecordUsage(userUsages int, now time.Time) error {
	if err := v.CheckUsageCaps(userUsages); err != nil {
		return err
	}
	v.currentUsage++
	v.updatedAt = now
	return nil
}

// ReleaseUsage undoes RecordUsage for a compensated checkout.
func (v *Voucher) ReleaseUsage(now time.Time) {
	if v.currentUsage > 0 {
		v.currentUsage--
		v.updatedAt = now
	}
}

// ExpireIfPast deactivates the voucher when validTo is before now and
// reports whether anything changed.
func (v *Voucher) ExpireIfPast(now time.Time) bool {
	if !v.isActive || v.validTo == nil || !v.validTo.Before(now) {
		return false
	}
	v.isActive = false
	v.updatedAt = now
	return true
}
