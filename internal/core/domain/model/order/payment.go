package order

import (
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"
)

type PaymentMethod string

const (
	PaymentCOD     PaymentMethod = "COD"
	PaymentZaloPay PaymentMethod = "ZALOPAY"
	PaymentMoMo    PaymentMethod = "MOMO"
	PaymentSePay   PaymentMethod = "SEPAY"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(strings.ToUpper(strings.TrimSpace(s)))
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

func (m PaymentMethod) Validate() error {
	switch m {
	case PaymentCOD, PaymentZaloPay, PaymentMoMo, PaymentSePay:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod", fmt.Errorf("%q is not supported", string(m)))
	}
}

type PaymentStatus string

const (
	PaymentUnpaid     PaymentStatus = "UNPAID"
	PaymentProcessing PaymentStatus = "PROCESSING"
	PaymentPaid       PaymentStatus = "PAID"
	PaymentRefunded   PaymentStatus = "REFUNDED"
)

func (s PaymentStatus) Validate() error {
	switch s {
	case PaymentUnpaid, PaymentProcessing, PaymentPaid, PaymentRefunded:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus", fmt.Errorf("%q is not supported", string(s)))
	}
}

// CancelledBy records which party cancelled the order.
type CancelledBy string

const (
	CancelledByNone     CancelledBy = ""
	CancelledByCustomer CancelledBy = "CUSTOMER"
	CancelledByOwner    CancelledBy = "OWNER"
	CancelledBySystem   CancelledBy = "SYSTEM"
)
