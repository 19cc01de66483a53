package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrGetVoucherUsageQueryIsNotConstructed = errors.New(
	"GetVoucherUsageQuery must be created via NewGetVoucherUsageQuery constructor",
)

// GetVoucherUsageQuery asks how much of a voucher is used overall and by one
// user.
type GetVoucherUsageQuery struct {
	voucherID kernel.UUID
	userID    kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetVoucherUsageQuery(voucherID, userID kernel.UUID) (GetVoucherUsageQuery, error) {
	var problems []error
	if err := voucherID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("voucherID", err))
	}
	if err := userID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("userID", err))
	}
	if err := errors.Join(problems...); err != nil {
		return GetVoucherUsageQuery{}, err
	}

	return GetVoucherUsageQuery{voucherID: voucherID, userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetVoucherUsageQuery) Validate() error {
	return q.guard.Validate(ErrGetVoucherUsageQueryIsNotConstructed)
}

func (q GetVoucherUsageQuery) VoucherID() kernel.UUID { return q.voucherID }
func (q GetVoucherUsageQuery) UserID() kernel.UUID    { return q.userID }
