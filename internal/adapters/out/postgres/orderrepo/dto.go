package orderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
)

type OrderDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber     string    `gorm:"size:32;uniqueIndex"`
	CustomerID      uuid.UUID `gorm:"type:uuid;index:idx_orders_customer_created,priority:1"`
	ShopID          uuid.UUID `gorm:"type:uuid;index:idx_orders_shop_created,priority:1"`
	ShopName        string
	ShipperID       *uuid.UUID `gorm:"type:uuid;index:idx_orders_shipper_created,priority:1"`
	Subtotal        int64
	ShipFee         int64
	Discount        int64
	Total           int64
	VoucherID       *uuid.UUID `gorm:"type:uuid"`
	VoucherCode     string
	Status          string     `gorm:"size:16;index"`
	PaymentMethod   string     `gorm:"size:16"`
	PaymentStatus   string     `gorm:"size:16"`
	DeliveryAddress AddressDTO `gorm:"embedded;embeddedPrefix:delivery_"`
	DeliveryNote    string
	CancelReason    string
	CancelledBy     string    `gorm:"size:16"`
	CreatedAt       time.Time `gorm:"index:idx_orders_customer_created,priority:2;index:idx_orders_shop_created,priority:2;index:idx_orders_shipper_created,priority:2"`
	UpdatedAt       time.Time
	ConfirmedAt     *time.Time
	PreparedAt      *time.Time
	ReadyAt         *time.Time
	PickedUpAt      *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time

	Items []ItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type AddressDTO struct {
	RecipientName string
	Phone         string
	Street        string
	Ward          string
	City          string
}

type ItemDTO struct {
	ID          uint      `gorm:"primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	Position    int
	ProductID   uuid.UUID `gorm:"type:uuid"`
	ProductName string
	Quantity    int
	Price       int64
	Subtotal    int64
}

func (ItemDTO) TableName() string {
	return "order_items"
}

func optionalBytes(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

// optionalID treats the nil UUID written by older releases as no reference.
func optionalID(id *uuid.UUID) *kernel.UUID {
	if id == nil || *id == uuid.Nil {
		return nil
	}
	k := kernel.FromGoogle(*id)
	return &k
}

func fromDomain(o *order.Order) OrderDTO {
	s := o.Snapshot()

	items := make([]ItemDTO, 0, len(s.Items))
	for i, item := range s.Items {
		items = append(items, ItemDTO{
			OrderID:     s.ID.Bytes(),
			Position:    i,
			ProductID:   item.ProductID.Bytes(),
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Subtotal:    item.Subtotal,
		})
	}

	return OrderDTO{
		ID:            s.ID.Bytes(),
		OrderNumber:   s.OrderNumber,
		CustomerID:    s.CustomerID.Bytes(),
		ShopID:        s.ShopID.Bytes(),
		ShopName:      s.ShopName,
		ShipperID:     optionalBytes(s.ShipperID),
		Subtotal:      s.Subtotal,
		ShipFee:       s.ShipFee,
		Discount:      s.Discount,
		Total:         s.Total,
		VoucherID:     optionalBytes(s.VoucherID),
		VoucherCode:   s.VoucherCode,
		Status:        s.Status.String(),
		PaymentMethod: string(s.PaymentMethod),
		PaymentStatus: string(s.PaymentStatus),
		DeliveryAddress: AddressDTO{
			RecipientName: s.DeliveryAddress.RecipientName,
			Phone:         s.DeliveryAddress.Phone,
			Street:        s.DeliveryAddress.Street,
			Ward:          s.DeliveryAddress.Ward,
			City:          s.DeliveryAddress.City,
		},
		DeliveryNote: s.DeliveryNote,
		CancelReason: s.CancelReason,
		CancelledBy:  string(s.CancelledBy),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
		ConfirmedAt:  s.ConfirmedAt,
		PreparedAt:   s.PreparedAt,
		ReadyAt:      s.ReadyAt,
		PickedUpAt:   s.PickedUpAt,
		DeliveredAt:  s.DeliveredAt,
		CancelledAt:  s.CancelledAt,
		Items:        items,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.ItemSnapshot, 0, len(dto.Items))
	for _, i := range dto.Items {
		items = append(items, order.ItemSnapshot{
			ProductID:   kernel.FromGoogle(i.ProductID),
			ProductName: i.ProductName,
			Quantity:    i.Quantity,
			Price:       i.Price,
			Subtotal:    i.Subtotal,
		})
	}

	return order.RestoreOrder(order.Snapshot{
		ID:            kernel.FromGoogle(dto.ID),
		OrderNumber:   dto.OrderNumber,
		CustomerID:    kernel.FromGoogle(dto.CustomerID),
		ShopID:        kernel.FromGoogle(dto.ShopID),
		ShopName:      dto.ShopName,
		ShipperID:     optionalID(dto.ShipperID),
		Items:         items,
		Subtotal:      dto.Subtotal,
		ShipFee:       dto.ShipFee,
		Discount:      dto.Discount,
		Total:         dto.Total,
		VoucherID:     optionalID(dto.VoucherID),
		VoucherCode:   dto.VoucherCode,
		Status:        status,
		PaymentMethod: order.PaymentMethod(dto.PaymentMethod),
		PaymentStatus: order.PaymentStatus(dto.PaymentStatus),
		DeliveryAddress: order.Address{
			RecipientName: dto.DeliveryAddress.RecipientName,
			Phone:         dto.DeliveryAddress.Phone,
			Street:        dto.DeliveryAddress.Street,
			Ward:          dto.DeliveryAddress.Ward,
			City:          dto.DeliveryAddress.City,
		},
		DeliveryNote: dto.DeliveryNote,
		CancelReason: dto.CancelReason,
		CancelledBy:  order.CancelledBy(dto.CancelledBy),
		CreatedAt:    dto.CreatedAt,
		UpdatedAt:    dto.UpdatedAt,
		ConfirmedAt:  dto.ConfirmedAt,
		PreparedAt:   dto.PreparedAt,
		ReadyAt:      dto.ReadyAt,
		PickedUpAt:   dto.PickedUpAt,
		DeliveredAt:  dto.DeliveredAt,
		CancelledAt:  dto.CancelledAt,
	})
}
