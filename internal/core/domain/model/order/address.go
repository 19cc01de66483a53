package order

import (
	"errors"
	"strings"

	"marketplace/internal/pkg/errs"
)

// Address is where the order is delivered. It is copied onto the order at
// checkout so later profile edits do not move existing orders.
type Address struct {
	RecipientName string `json:"recipientName"`
	Phone         string `json:"phone"`
	Street        string `json:"street"`
	Ward          string `json:"ward,omitempty"`
	City          string `json:"city"`
}

func (a Address) Validate() error {
	var problems []error
	if strings.TrimSpace(a.RecipientName) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("deliveryAddress.recipientName"))
	}
	if strings.TrimSpace(a.Phone) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("deliveryAddress.phone"))
	}
	if strings.TrimSpace(a.Street) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("deliveryAddress.street"))
	}
	if strings.TrimSpace(a.City) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("deliveryAddress.city"))
	}
	return errors.Join(problems...)
}
