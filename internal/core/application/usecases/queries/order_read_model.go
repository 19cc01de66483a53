package queries

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderSummary is an order as shown in a list.
type OrderSummary struct {
	ID            kernel.UUID         `json:"id"`
	OrderNumber   string              `json:"orderNumber"`
	CustomerID    kernel.UUID         `json:"customerId"`
	ShopID        kernel.UUID         `json:"shopId"`
	ShopName      string              `json:"shopName"`
	ShipperID     *kernel.UUID        `json:"shipperId"`
	Status        order.Status        `json:"status"`
	PaymentMethod order.PaymentMethod `json:"paymentMethod"`
	PaymentStatus order.PaymentStatus `json:"paymentStatus"`
	Subtotal      int64               `json:"subtotal"`
	ShipFee       int64               `json:"shipFee"`
	Discount      int64               `json:"discount"`
	Total         int64               `json:"total"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

type OrderItemView struct {
	ProductID   kernel.UUID `json:"productId"`
	ProductName string      `json:"productName"`
	Quantity    int         `json:"quantity"`
	Price       int64       `json:"price"`
	Subtotal    int64       `json:"subtotal"`
}

// OrderDetails is a single order with its items and history timestamps.
type OrderDetails struct {
	OrderSummary

	Items           []OrderItemView   `json:"items"`
	VoucherID       *kernel.UUID      `json:"voucherId,omitempty"`
	VoucherCode     string            `json:"voucherCode,omitempty"`
	DeliveryAddress order.Address     `json:"deliveryAddress"`
	DeliveryNote    string            `json:"deliveryNote,omitempty"`
	CancelReason    string            `json:"cancelReason,omitempty"`
	CancelledBy     order.CancelledBy `json:"cancelledBy,omitempty"`
	ConfirmedAt     *time.Time        `json:"confirmedAt,omitempty"`
	PreparedAt      *time.Time        `json:"preparedAt,omitempty"`
	ReadyAt         *time.Time        `json:"readyAt,omitempty"`
	PickedUpAt      *time.Time        `json:"pickedUpAt,omitempty"`
	DeliveredAt     *time.Time        `json:"deliveredAt,omitempty"`
	CancelledAt     *time.Time        `json:"cancelledAt,omitempty"`
}

// summaryColumns are the orders columns a list needs.
var summaryColumns = []string{
	"id", "order_number", "customer_id", "shop_id", "shop_name", "shipper_id",
	"status", "payment_method", "payment_status",
	"subtotal", "ship_fee", "discount", "total", "created_at", "updated_at",
}

type summaryRow struct {
	ID            uuid.UUID
	OrderNumber   string
	CustomerID    uuid.UUID
	ShopID        uuid.UUID
	ShopName      string
	ShipperID     *uuid.UUID
	Status        string
	PaymentMethod string
	PaymentStatus string
	Subtotal      int64
	ShipFee       int64
	Discount      int64
	Total         int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type addressRow struct {
	RecipientName string
	Phone         string
	Street        string
	Ward          string
	City          string
}

type detailsRow struct {
	Summary         summaryRow `gorm:"embedded"`
	VoucherID       *uuid.UUID
	VoucherCode     string
	DeliveryAddress addressRow `gorm:"embedded;embeddedPrefix:delivery_"`
	DeliveryNote    string
	CancelReason    string
	CancelledBy     string
	ConfirmedAt     *time.Time
	PreparedAt      *time.Time
	ReadyAt         *time.Time
	PickedUpAt      *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
}

type itemRow struct {
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	Price       int64
	Subtotal    int64
}

func optionalID(id *uuid.UUID) *kernel.UUID {
	if id == nil || *id == uuid.Nil {
		return nil
	}
	k := kernel.FromGoogle(*id)
	return &k
}

func (r summaryRow) toSummary() (OrderSummary, error) {
	status, err := order.ParseStatus(r.Status)
	if err != nil {
		return OrderSummary{}, err
	}
	return OrderSummary{
		ID:            kernel.FromGoogle(r.ID),
		OrderNumber:   r.OrderNumber,
		CustomerID:    kernel.FromGoogle(r.CustomerID),
		ShopID:        kernel.FromGoogle(r.ShopID),
		ShopName:      r.ShopName,
		ShipperID:     optionalID(r.ShipperID),
		Status:        status,
		PaymentMethod: order.PaymentMethod(r.PaymentMethod),
		PaymentStatus: order.PaymentStatus(r.PaymentStatus),
		Subtotal:      r.Subtotal,
		ShipFee:       r.ShipFee,
		Discount:      r.Discount,
		Total:         r.Total,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}, nil
}

func (r detailsRow) toDetails(items []itemRow) (OrderDetails, error) {
	summary, err := r.Summary.toSummary()
	if err != nil {
		return OrderDetails{}, err
	}

	views := make([]OrderItemView, 0, len(items))
	for _, i := range items {
		views = append(views, OrderItemView{
			ProductID:   kernel.FromGoogle(i.ProductID),
			ProductName: i.ProductName,
			Quantity:    i.Quantity,
			Price:       i.Price,
			Subtotal:    i.Subtotal,
		})
	}

	return OrderDetails{
		OrderSummary: summary,
		Items:        views,
		VoucherID:    optionalID(r.VoucherID),
		VoucherCode:  r.VoucherCode,
		DeliveryAddress: order.Address{
			RecipientName: r.DeliveryAddress.RecipientName,
			Phone:         r.DeliveryAddress.Phone,
			Street:        r.DeliveryAddress.Street,
			Ward:          r.DeliveryAddress.Ward,
			City:          r.DeliveryAddress.City,
		},
		DeliveryNote: r.DeliveryNote,
		CancelReason: r.CancelReason,
		CancelledBy:  order.CancelledBy(r.CancelledBy),
		ConfirmedAt:  r.ConfirmedAt,
		PreparedAt:   r.PreparedAt,
		ReadyAt:      r.ReadyAt,
		PickedUpAt:   r.PickedUpAt,
		DeliveredAt:  r.DeliveredAt,
		CancelledAt:  r.CancelledAt,
	}, nil
}
