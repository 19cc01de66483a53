package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand checks out the customer's cart group for one shop.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(customerID, shopID, order.Address{
//	    RecipientName: "Lan", Phone: "0900000000", Street: "1 Le Loi", City: "Hue",
//	}, "leave at the door", order.PaymentCOD, "WELCOME10")
//	if err != nil {
//	    return fmt.Errorf("invalid checkout: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("checkout failed: %w", err)
//	}
//	fmt.Printf("order %s total %d", created.OrderNumber(), created.Total())
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerID      kernel.UUID
	shopID          kernel.UUID
	deliveryAddress order.Address
	deliveryNote    string
	paymentMethod   order.PaymentMethod
	voucherCode     string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates identifiers, the delivery address and the
// payment method. voucherCode is optional.
func NewCreateOrderCommand(
	customerID, shopID kernel.UUID,
	deliveryAddress order.Address,
	deliveryNote string,
	paymentMethod order.PaymentMethod,
	voucherCode string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setShopID(shopID),
		cmd.setDeliveryAddress(deliveryAddress),
		cmd.setPaymentMethod(paymentMethod),
	); err != nil {
		return CreateOrderCommand{}, err
	}
	cmd.deliveryNote = strings.TrimSpace(deliveryNote)
	cmd.voucherCode = strings.TrimSpace(voucherCode)

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) CustomerID() kernel.UUID            { return c.customerID }
func (c CreateOrderCommand) ShopID() kernel.UUID                { return c.shopID }
func (c CreateOrderCommand) DeliveryAddress() order.Address     { return c.deliveryAddress }
func (c CreateOrderCommand) DeliveryNote() string               { return c.deliveryNote }
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod { return c.paymentMethod }

// VoucherCode is empty when the customer did not enter one.
func (c CreateOrderCommand) VoucherCode() string { return c.voucherCode }

func (c *CreateOrderCommand) setCustomerID(id kernel.UUID) error {
	if err := requireID("customerID", id); err != nil {
		return err
	}
	c.customerID = id
	return nil
}

func (c *CreateOrderCommand) setShopID(id kernel.UUID) error {
	if err := requireID("shopID", id); err != nil {
		return err
	}
	c.shopID = id
	return nil
}

func (c *CreateOrderCommand) setDeliveryAddress(address order.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	c.deliveryAddress = address
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(method order.PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	c.paymentMethod = method
	return nil
}
