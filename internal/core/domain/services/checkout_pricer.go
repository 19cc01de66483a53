package services

import (
	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// Quote is the priced result of a cart group.
type Quote struct {
	Items    []order.Item
	Subtotal int64
	ShipFee  int64
}

// CheckoutPricer applies the pricing lock: line prices come from the cart
// snapshot, while the catalog is only consulted for availability.
//
// Business rules:
//   - the cart group must not be empty
//   - the shop must be open
//   - every product must still exist, belong to the shop and be orderable
//   - the shipping fee is the shop's flat per order fee
type CheckoutPricer struct{}

func NewCheckoutPricer() CheckoutPricer {
	return CheckoutPricer{}
}

// Quote prices group for shop. products must hold the current catalog entry for
// every line; a line without one fails with catalog.ErrProductNotFound.
func (CheckoutPricer) Quote(shop catalog.Shop, group catalog.CartGroup, products []catalog.Product) (Quote, error) {
	if group.IsEmpty() {
		return Quote{}, order.ErrCartEmpty
	}
	if err := shop.CheckAcceptsOrders(); err != nil {
		return Quote{}, err
	}

	byID := make(map[kernel.UUID]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]order.Item, 0, len(group.Lines))
	var subtotal int64
	for _, line := range group.Lines {
		product, ok := byID[line.ProductID]
		if !ok {
			return Quote{}, catalog.ErrProductNotFound.WithMessage("product %s not found", line.ProductID)
		}
		if err := product.CheckOrderable(shop.ID); err != nil {
			return Quote{}, err
		}

		item, err := order.NewItem(line.ProductID, line.ProductName, line.Quantity, line.Price)
		if err != nil {
			return Quote{}, err
		}
		items = append(items, item)
		subtotal += item.Subtotal()
	}

	return Quote{
		Items:    items,
		Subtotal: subtotal,
		ShipFee:  shop.ShipFeePerOrder,
	}, nil
}
