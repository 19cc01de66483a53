package http

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/review"
)

type AddressRequest struct {
	RecipientName string `json:"recipientName" validate:"required,max=100"`
	Phone         string `json:"phone" validate:"required,max=20"`
	Street        string `json:"street" validate:"required,max=255"`
	Ward          string `json:"ward" validate:"max=100"`
	City          string `json:"city" validate:"required,max=100"`
}

func (a AddressRequest) toDomain() order.Address {
	return order.Address{
		RecipientName: a.RecipientName,
		Phone:         a.Phone,
		Street:        a.Street,
		Ward:          a.Ward,
		City:          a.City,
	}
}

type CreateOrderRequest struct {
	ShopID          string         `json:"shopId" validate:"required,uuid"`
	DeliveryAddress AddressRequest `json:"deliveryAddress" validate:"required"`
	DeliveryNote    string         `json:"deliveryNote" validate:"max=500"`
	PaymentMethod   string         `json:"paymentMethod" validate:"required,oneof=COD ZALOPAY MOMO SEPAY"`
	VoucherCode     string         `json:"voucherCode" validate:"max=50"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

type ReplyReviewRequest struct {
	Reply string `json:"reply" validate:"required,max=1000"`
}

// ListOrdersParams are the optional query parameters of the order lists.
type ListOrdersParams struct {
	Page   *int
	Limit  *int
	Status *string
}

type OrderItemResponse struct {
	ProductID   kernel.UUID `json:"productId"`
	ProductName string      `json:"productName"`
	Quantity    int         `json:"quantity"`
	Price       int64       `json:"price"`
	Subtotal    int64       `json:"subtotal"`
}

type OrderResponse struct {
	ID              kernel.UUID         `json:"id"`
	OrderNumber     string              `json:"orderNumber"`
	CustomerID      kernel.UUID         `json:"customerId"`
	ShopID          kernel.UUID         `json:"shopId"`
	ShopName        string              `json:"shopName"`
	ShipperID       *kernel.UUID        `json:"shipperId"`
	Status          order.Status        `json:"status"`
	PaymentMethod   order.PaymentMethod `json:"paymentMethod"`
	PaymentStatus   order.PaymentStatus `json:"paymentStatus"`
	Subtotal        int64               `json:"subtotal"`
	ShipFee         int64               `json:"shipFee"`
	Discount        int64               `json:"discount"`
	Total           int64               `json:"total"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
	Items           []OrderItemResponse `json:"items"`
	VoucherID       *kernel.UUID        `json:"voucherId,omitempty"`
	VoucherCode     string              `json:"voucherCode,omitempty"`
	DeliveryAddress order.Address       `json:"deliveryAddress"`
	DeliveryNote    string              `json:"deliveryNote,omitempty"`
	CancelReason    string              `json:"cancelReason,omitempty"`
	CancelledBy     order.CancelledBy   `json:"cancelledBy,omitempty"`
	ConfirmedAt     *time.Time          `json:"confirmedAt,omitempty"`
	PreparedAt      *time.Time          `json:"preparedAt,omitempty"`
	ReadyAt         *time.Time          `json:"readyAt,omitempty"`
	PickedUpAt      *time.Time          `json:"pickedUpAt,omitempty"`
	DeliveredAt     *time.Time          `json:"deliveredAt,omitempty"`
	CancelledAt     *time.Time          `json:"cancelledAt,omitempty"`
}

func newOrderResponse(o *order.Order) OrderResponse {
	s := o.Snapshot()
	items := make([]OrderItemResponse, len(s.Items))
	for i, item := range s.Items {
		items[i] = OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Subtotal:    item.Subtotal,
		}
	}

	return OrderResponse{
		ID:              s.ID,
		OrderNumber:     s.OrderNumber,
		CustomerID:      s.CustomerID,
		ShopID:          s.ShopID,
		ShopName:        s.ShopName,
		ShipperID:       s.ShipperID,
		Status:          s.Status,
		PaymentMethod:   s.PaymentMethod,
		PaymentStatus:   s.PaymentStatus,
		Subtotal:        s.Subtotal,
		ShipFee:         s.ShipFee,
		Discount:        s.Discount,
		Total:           s.Total,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
		Items:           items,
		VoucherID:       s.VoucherID,
		VoucherCode:     s.VoucherCode,
		DeliveryAddress: s.DeliveryAddress,
		DeliveryNote:    s.DeliveryNote,
		CancelReason:    s.CancelReason,
		CancelledBy:     s.CancelledBy,
		ConfirmedAt:     s.ConfirmedAt,
		PreparedAt:      s.PreparedAt,
		ReadyAt:         s.ReadyAt,
		PickedUpAt:      s.PickedUpAt,
		DeliveredAt:     s.DeliveredAt,
		CancelledAt:     s.CancelledAt,
	}
}

type ReviewResponse struct {
	ID         kernel.UUID `json:"id"`
	OrderID    kernel.UUID `json:"orderId"`
	CustomerID kernel.UUID `json:"customerId"`
	ShopID     kernel.UUID `json:"shopId"`
	Rating     int         `json:"rating"`
	Comment    string      `json:"comment"`
	OwnerReply string      `json:"ownerReply,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
	RepliedAt  *time.Time  `json:"repliedAt,omitempty"`
}

func newReviewResponse(r *review.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID(),
		OrderID:    r.OrderID(),
		CustomerID: r.CustomerID(),
		ShopID:     r.ShopID(),
		Rating:     r.Rating(),
		Comment:    r.Comment(),
		OwnerReply: r.OwnerReply(),
		CreatedAt:  r.CreatedAt(),
		RepliedAt:  r.RepliedAt(),
	}
}

type MaintenanceResponse struct {
	Affected int64 `json:"affected"`
}
