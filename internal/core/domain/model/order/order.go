package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrOrderIsNotConstructed is returned by Validate when an Order was declared
// directly instead of being built by NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root for one checkout against one shop.
//
// Invariants:
//   - total = subtotal + shipFee - discount, fixed at creation
//   - discount never exceeds subtotal
//   - shipperID is set exactly when the order reached SHIPPING or later
//   - DELIVERED and CANCELLED orders never change again
//
// Fields are private; every state change goes through a method that checks
// the transition table first.
type Order struct {
	guard guard.ConstructorGuard

	// identity and ownership; shipperID is nil until a shipper accepts
	id          kernel.UUID
	orderNumber string
	customerID  kernel.UUID
	shopID      kernel.UUID
	shopName    string
	shipperID   *kernel.UUID

	// line items carry the cart price, never the live catalog price
	items    []Item
	subtotal int64
	shipFee  int64
	discount int64
	total    int64

	// set only when checkout redeemed a voucher
	voucherID   *kernel.UUID
	voucherCode string

	status          Status
	paymentMethod   PaymentMethod
	paymentStatus   PaymentStatus
	deliveryAddress Address
	deliveryNote    string

	cancelReason string
	cancelledBy  CancelledBy

	// one timestamp per lifecycle step, nil until the step happens
	createdAt   time.Time
	updatedAt   time.Time
	confirmedAt *time.Time
	preparedAt  *time.Time
	readyAt     *time.Time
	pickedUpAt  *time.Time
	deliveredAt *time.Time
	cancelledAt *time.Time
}

// NewOrderParams is everything checkout knows when it creates an order.
type NewOrderParams struct {
	ID              kernel.UUID
	OrderNumber     string
	CustomerID      kernel.UUID
	ShopID          kernel.UUID
	ShopName        string
	Items           []Item
	ShipFee         int64
	Discount        int64
	VoucherID       *kernel.UUID
	VoucherCode     string
	PaymentMethod   PaymentMethod
	DeliveryAddress Address
	DeliveryNote    string
	Now             time.Time
}

// NewOrder creates a PENDING, UNPAID order and computes its totals from the
// given items.
//
// Parameters:
//   - p.Items: at least one line; their subtotals make up the order subtotal
//   - p.ShipFee: the shop's per-order fee, not negative
//   - p.Discount: voucher discount, between 0 and the subtotal
//   - p.OrderNumber: see NewOrderNumber
//
// Returns:
//   - *Order: the order with total = subtotal + shipFee - discount
//   - error: every validation problem joined together
//
// Example:
//
//	o, err := NewOrder(NewOrderParams{
//	    ID:              kernel.NewUUID(),
//	    OrderNumber:     NewOrderNumber(now),
//	    CustomerID:      customerID,
//	    ShopID:          shopID,
//	    Items:           items,
//	    ShipFee:         5000,
//	    PaymentMethod:   PaymentCOD,
//	    DeliveryAddress: address,
//	    Now:             now,
//	})
func NewOrder(p NewOrderParams) (*Order, error) {
	var subtotal int64
	for _, item := range p.Items {
		subtotal += item.Subtotal()
	}

	o := &Order{
		guard:           guard.NewConstructorGuard(),
		orderNumber:     p.OrderNumber,
		shopName:        p.ShopName,
		items:           append([]Item(nil), p.Items...),
		subtotal:        subtotal,
		shipFee:         p.ShipFee,
		discount:        p.Discount,
		voucherID:       p.VoucherID,
		voucherCode:     p.VoucherCode,
		status:          Pending,
		paymentMethod:   p.PaymentMethod,
		paymentStatus:   PaymentUnpaid,
		deliveryAddress: p.DeliveryAddress,
		deliveryNote:    strings.TrimSpace(p.DeliveryNote),
		createdAt:       p.Now,
		updatedAt:       p.Now,
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setCustomerID(p.CustomerID),
		o.setShopID(p.ShopID),
		o.validateOrderNumber(),
		o.validateItems(),
		o.validateAmounts(),
		o.paymentMethod.Validate(),
		o.deliveryAddress.Validate(),
	); err != nil {
		return nil, err
	}
	o.total = o.subtotal + o.shipFee - o.discount

	return o, nil
}

// Snapshot is the flat, persistence friendly view of an Order. Repositories
// and read models exchange orders through it.
type Snapshot struct {
	ID              kernel.UUID
	OrderNumber     string
	CustomerID      kernel.UUID
	ShopID          kernel.UUID
	ShopName        string
	ShipperID       *kernel.UUID
	Items           []ItemSnapshot
	Subtotal        int64
	ShipFee         int64
	Discount        int64
	Total           int64
	VoucherID       *kernel.UUID
	VoucherCode     string
	Status          Status
	PaymentMethod   PaymentMethod
	PaymentStatus   PaymentStatus
	DeliveryAddress Address
	DeliveryNote    string
	CancelReason    string
	CancelledBy     CancelledBy
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ConfirmedAt     *time.Time
	PreparedAt      *time.Time
	ReadyAt         *time.Time
	PickedUpAt      *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
}

type ItemSnapshot struct {
	ProductID   kernel.UUID
	ProductName string
	Quantity    int
	Price       int64
	Subtotal    int64
}

// RestoreOrder rebuilds an order from storage. It trusts the stored totals but
// still rejects data that breaks the aggregate invariants.
func RestoreOrder(s Snapshot) (*Order, error) {
	items := make([]Item, 0, len(s.Items))
	for _, is := range s.Items {
		item, err := NewItem(is.ProductID, is.ProductName, is.Quantity, is.Price)
		if err != nil {
			return nil, fmt.Errorf("restore order %s item: %w", s.ID, err)
		}
		items = append(items, item)
	}

	o := &Order{
		guard:           guard.NewConstructorGuard(),
		orderNumber:     s.OrderNumber,
		shopName:        s.ShopName,
		shipperID:       s.ShipperID,
		items:           items,
		subtotal:        s.Subtotal,
		shipFee:         s.ShipFee,
		discount:        s.Discount,
		total:           s.Total,
		voucherID:       s.VoucherID,
		voucherCode:     s.VoucherCode,
		status:          s.Status,
		paymentMethod:   s.PaymentMethod,
		paymentStatus:   s.PaymentStatus,
		deliveryAddress: s.DeliveryAddress,
		deliveryNote:    s.DeliveryNote,
		cancelReason:    s.CancelReason,
		cancelledBy:     s.CancelledBy,
		createdAt:       s.CreatedAt,
		updatedAt:       s.UpdatedAt,
		confirmedAt:     s.ConfirmedAt,
		preparedAt:      s.PreparedAt,
		readyAt:         s.ReadyAt,
		pickedUpAt:      s.PickedUpAt,
		deliveredAt:     s.DeliveredAt,
		cancelledAt:     s.CancelledAt,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setCustomerID(s.CustomerID),
		o.setShopID(s.ShopID),
		o.status.Validate(),
		o.paymentStatus.Validate(),
		o.validateAmounts(),
		o.validateShipper(),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot copies the order into its flat form. Item slices are copied too,
// so callers may keep the result after the order changes.
func (o *Order) Snapshot() Snapshot {
	items := make([]ItemSnapshot, 0, len(o.items))
	for _, i := range o.items {
		items = append(items, ItemSnapshot{
			ProductID:   i.productID,
			ProductName: i.productName,
			Quantity:    i.quantity,
			Price:       i.price,
			Subtotal:    i.subtotal,
		})
	}

	return Snapshot{
		ID:              o.id,
		OrderNumber:     o.orderNumber,
		CustomerID:      o.customerID,
		ShopID:          o.shopID,
		ShopName:        o.shopName,
		ShipperID:       o.shipperID,
		Items:           items,
		Subtotal:        o.subtotal,
		ShipFee:         o.shipFee,
		Discount:        o.discount,
		Total:           o.total,
		VoucherID:       o.voucherID,
		VoucherCode:     o.voucherCode,
		Status:          o.status,
		PaymentMethod:   o.paymentMethod,
		PaymentStatus:   o.paymentStatus,
		DeliveryAddress: o.deliveryAddress,
		DeliveryNote:    o.deliveryNote,
		CancelReason:    o.cancelReason,
		CancelledBy:     o.cancelledBy,
		CreatedAt:       o.createdAt,
		UpdatedAt:       o.updatedAt,
		ConfirmedAt:     o.confirmedAt,
		PreparedAt:      o.preparedAt,
		ReadyAt:         o.readyAt,
		PickedUpAt:      o.pickedUpAt,
		DeliveredAt:     o.deliveredAt,
		CancelledAt:     o.cancelledAt,
	}
}

// Validate ensures the order was built by NewOrder or RestoreOrder.
// Repositories call it before writing.
//
// Returns:
//   - nil if the order is valid
//   - ErrOrderIsNotConstructed otherwise
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identifier. A nil other is never equal.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// Accessors. Items returns a copy.

func (o *Order) ID() kernel.UUID                       { return o.id }
func (o *Order) OrderNumber() string                   { return o.orderNumber }
func (o *Order) CustomerID() kernel.UUID               { return o.customerID }
func (o *Order) ShopID() kernel.UUID                   { return o.shopID }
func (o *Order) ShopName() string                      { return o.shopName }
func (o *Order) ShipperID() *kernel.UUID               { return o.shipperID }
func (o *Order) Items() []Item                         { return append([]Item(nil), o.items...) }
func (o *Order) Subtotal() int64                       { return o.subtotal }
func (o *Order) ShipFee() int64                        { return o.shipFee }
func (o *Order) Discount() int64                       { return o.discount }
func (o *Order) Total() int64                          { return o.total }
func (o *Order) VoucherID() *kernel.UUID               { return o.voucherID }
func (o *Order) VoucherCode() string                   { return o.voucherCode }
func (o *Order) Status() Status                        { return o.status }
func (o *Order) PaymentMethod() PaymentMethod          { return o.paymentMethod }
func (o *Order) PaymentStatus() PaymentStatus          { return o.paymentStatus }
func (o *Order) DeliveryAddress() Address              { return o.deliveryAddress }
func (o *Order) DeliveryNote() string                  { return o.deliveryNote }
func (o *Order) CancelReason() string                  { return o.cancelReason }
func (o *Order) CancelledBy() CancelledBy              { return o.cancelledBy }
func (o *Order) CreatedAt() time.Time                  { return o.createdAt }
func (o *Order) UpdatedAt() time.Time                  { return o.updatedAt }
func (o *Order) DeliveredAt() *time.Time               { return o.deliveredAt }
func (o *Order) CancelledAt() *time.Time               { return o.cancelledAt }
func (o *Order) IsOwnedByCustomer(id kernel.UUID) bool { return o.customerID.IsEqual(id) }
func (o *Order) BelongsToShop(id kernel.UUID) bool     { return o.shopID.IsEqual(id) }

// IsAssignedTo reports whether shipperID is the shipper carrying the order.
func (o *Order) IsAssignedTo(shipperID kernel.UUID) bool {
	return o.shipperID != nil && o.shipperID.IsEqual(shipperID)
}

// Confirm accepts a PENDING order on behalf of the shop. Prepaid methods must
// already be PAID; cash on delivery is settled at delivery.
func (o *Order) Confirm(now time.Time) error {
	if err := ValidateTransition(o.status, Confirmed); err != nil {
		return err
	}
	if o.paymentMethod != PaymentCOD && o.paymentStatus != PaymentPaid {
		return ErrPaymentRequired
	}
	o.moveTo(Confirmed, now)
	o.confirmedAt = &now
	return nil
}

// StartPreparing moves a CONFIRMED order to PREPARING and stamps preparedAt.
// Any other status fails with ErrInvalidTransition.
func (o *Order) StartPreparing(now time.Time) error {
	if err := ValidateTransition(o.status, Preparing); err != nil {
		return err
	}
	o.moveTo(Preparing, now)
	o.preparedAt = &now
	return nil
}

// MarkReady moves a PREPARING order to READY, which makes it visible to
// shippers looking for pickups.
func (o *Order) MarkReady(now time.Time) error {
	if err := ValidateTransition(o.status, Ready); err != nil {
		return err
	}
	o.moveTo(Ready, now)
	o.readyAt = &now
	return nil
}

// AcceptBy assigns the order to a shipper and moves it to SHIPPING. Only a
// READY order nobody has picked up yet is available.
func (o *Order) AcceptBy(shipperID kernel.UUID, now time.Time) error {
	if err := shipperID.Validate(); err != nil {
		return err
	}
	if o.status != Ready || o.shipperID != nil {
		return ErrOrderNotAvailableForPickup
	}
	if err := ValidateTransition(o.status, Shipping); err != nil {
		return err
	}
	id := shipperID
	o.shipperID = &id
	o.moveTo(Shipping, now)
	o.pickedUpAt = &now
	return nil
}

// Deliver completes the order. Cash on delivery orders become PAID here.
func (o *Order) Deliver(shipperID kernel.UUID, now time.Time) error {
	if !o.IsAssignedTo(shipperID) {
		return ErrShipperNotAssigned
	}
	if err := ValidateTransition(o.status, Delivered); err != nil {
		return err
	}
	o.moveTo(Delivered, now)
	o.deliveredAt = &now
	if o.paymentMethod == PaymentCOD && o.paymentStatus == PaymentUnpaid {
		o.paymentStatus = PaymentPaid
	}
	return nil
}

// CancelByCustomer cancels from PENDING, CONFIRMED or PREPARING.
func (o *Order) CancelByCustomer(reason string, now time.Time) error {
	if !CanCustomerCancel(o.status) {
		return ErrCancellationNotAllowed.WithMessage("customer cannot cancel an order in %s", o.status)
	}
	return o.cancel(CancelledByCustomer, reason, now)
}

// CancelByOwner cancels from CONFIRMED or PREPARING. Owners reject PENDING
// orders by not confirming them.
func (o *Order) CancelByOwner(reason string, now time.Time) error {
	if !CanOwnerCancel(o.status) {
		return ErrCancellationNotAllowed.WithMessage("shop cannot cancel an order in %s", o.status)
	}
	return o.cancel(CancelledByOwner, reason, now)
}

// RequiresRefund reports whether a cancelled order had already been paid.
func (o *Order) RequiresRefund() bool {
	return o.status == Cancelled && o.paymentStatus == PaymentPaid
}

// MarkPaid records a settled prepayment. It is only meaningful before the
// order reaches a terminal status.
func (o *Order) MarkPaid(now time.Time) error {
	if o.status.IsTerminal() {
		return ErrInvalidTransition.WithMessage("cannot mark a %s order as paid", o.status)
	}
	o.paymentStatus = PaymentPaid
	o.updatedAt = now
	return nil
}

// cancel applies the general transition check on top of the actor specific
// eligibility the callers already checked.
func (o *Order) cancel(by CancelledBy, reason string, now time.Time) error {
	if err := ValidateTransition(o.status, Cancelled); err != nil {
		return err
	}
	o.moveTo(Cancelled, now)
	o.cancelledBy = by
	o.cancelReason = strings.TrimSpace(reason)
	o.cancelledAt = &now
	return nil
}

func (o *Order) moveTo(status Status, now time.Time) {
	o.status = status
	o.updatedAt = now
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerID", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setShopID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shopID", err)
	}
	o.shopID = id
	return nil
}

func (o *Order) validateOrderNumber() error {
	if strings.TrimSpace(o.orderNumber) == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	return nil
}

func (o *Order) validateItems() error {
	if len(o.items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	return nil
}

func (o *Order) validateAmounts() error {
	if o.shipFee < 0 {
		return errs.NewValueIsInvalidErrorWithCause("shipFee", fmt.Errorf("%d is negative", o.shipFee))
	}
	if o.discount < 0 || o.discount > o.subtotal {
		return errs.NewValueIsOutOfRangeError("discount", o.discount, 0, o.subtotal)
	}
	return nil
}

// validateShipper normalizes a nil UUID shipper to nil and checks that the
// shipper reference agrees with the status.
func (o *Order) validateShipper() error {
	hasShipper := o.shipperID != nil && !o.shipperID.IsZero()
	if !hasShipper {
		o.shipperID = nil
	}
	switch o.status {
	case Shipping, Delivered:
		if !hasShipper {
			return errs.NewValueIsInvalidErrorWithCause("shipperID",
				fmt.Errorf("%s order has no shipper", o.status))
		}
	case Pending, Confirmed, Preparing, Ready:
		if hasShipper {
			return errs.NewValueIsInvalidErrorWithCause("shipperID",
				fmt.Errorf("%s order already has a shipper", o.status))
		}
	}
	return nil
}
