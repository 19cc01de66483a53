package order

import (
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// Item is one order line. Price is the unit price frozen from the cart at
// checkout; Subtotal is always Price * Quantity.
type Item struct {
	productID   kernel.UUID
	productName string
	quantity    int
	price       int64
	subtotal    int64
}

func NewItem(productID kernel.UUID, productName string, quantity int, price int64) (Item, error) {
	var problems []error
	if err := productID.Validate(); err != nil {
		problems = append(problems, err)
	}
	if strings.TrimSpace(productName) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("productName"))
	}
	if quantity <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity)))
	}
	if price < 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("%d is negative", price)))
	}
	if err := errors.Join(problems...); err != nil {
		return Item{}, err
	}

	return Item{
		productID:   productID,
		productName: productName,
		quantity:    quantity,
		price:       price,
		subtotal:    price * int64(quantity),
	}, nil
}

func (i Item) ProductID() kernel.UUID { return i.productID }
func (i Item) ProductName() string    { return i.productName }
func (i Item) Quantity() int          { return i.quantity }
func (i Item) Price() int64           { return i.price }
func (i Item) Subtotal() int64        { return i.subtotal }
