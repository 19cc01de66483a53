package catalog

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	ErrShopNotFound       = errs.NewNotFound("ORDER_003", "shop not found")
	ErrShopClosed         = errs.NewConflict("ORDER_004", "shop is not accepting orders")
	ErrProductUnavailable = errs.NewConflict("ORDER_005", "product is no longer available")
	ErrProductNotFound    = errs.NewNotFound("ORDER_016", "product not found")
)

type Shop struct {
	ID              kernel.UUID `json:"id"`
	OwnerID         kernel.UUID `json:"ownerId"`
	Name            string      `json:"name"`
	IsOpen          bool        `json:"isOpen"`
	ShipFeePerOrder int64       `json:"shipFeePerOrder"`
}

// CheckAcceptsOrders fails with ErrShopClosed when the shop is not open.
func (s Shop) CheckAcceptsOrders() error {
	if !s.IsOpen {
		return ErrShopClosed.WithMessage("shop %q is not accepting orders", s.Name)
	}
	return nil
}

type Product struct {
	ID          kernel.UUID `json:"id"`
	ShopID      kernel.UUID `json:"shopId"`
	Name        string      `json:"name"`
	Price       int64       `json:"price"`
	IsAvailable bool        `json:"isAvailable"`
	IsDeleted   bool        `json:"isDeleted"`
}

// CheckOrderable fails with ErrProductUnavailable for products that are
// switched off, soft deleted or belong to another shop.
func (p Product) CheckOrderable(shopID kernel.UUID) error {
	if p.IsDeleted || !p.IsAvailable || !p.ShopID.IsEqual(shopID) {
		return ErrProductUnavailable.WithMessage("product %q is no longer available", p.Name)
	}
	return nil
}

// CartLine is one product in a customer's cart. Price is the price captured
// when the line was added, which is the price the customer pays.
type CartLine struct {
	ProductID   kernel.UUID
	ProductName string
	Quantity    int
	Price       int64
}

func (l CartLine) Subtotal() int64 {
	return l.Price * int64(l.Quantity)
}

// CartGroup is the part of a cart that belongs to one shop.
type CartGroup struct {
	ShopID kernel.UUID
	Lines  []CartLine
}

func (g CartGroup) IsEmpty() bool {
	return len(g.Lines) == 0
}

func (g CartGroup) Subtotal() int64 {
	var total int64
	for _, l := range g.Lines {
		total += l.Subtotal()
	}
	return total
}

// FindGroup returns the group for shopID.
func FindGroup(groups []CartGroup, shopID kernel.UUID) (CartGroup, bool) {
	for _, g := range groups {
		if g.ShopID.IsEqual(shopID) {
			return g, true
		}
	}
	return CartGroup{}, false
}
