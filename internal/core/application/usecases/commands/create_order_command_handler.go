package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// CreateOrderCommandHandler turns one shop's cart group into a PENDING order.
//
// Catalog and cart reads happen before the transaction and only check
// availability; line prices come from the cart. A voucher that cannot be
// applied is logged and the order is created without a discount. The order
// insert and the cart group delete commit together; a cart group consumed
// by a concurrent checkout fails with order.ErrCartChanged.
type CreateOrderCommandHandler struct {
	uowFactory    CheckoutUoWFactory
	shops         ports.ShopReader
	products      ports.ProductReader
	vouchers      VoucherRedeemer
	pricer        services.CheckoutPricer
	notifications Notifications
	logger        *zap.Logger
	clock         kernel.Clock
}

// NewCreateOrderCommandHandler wires checkout. vouchers may be nil, in which
// case voucher codes are ignored.
func NewCreateOrderCommandHandler(
	uowFactory CheckoutUoWFactory,
	shops ports.ShopReader,
	products ports.ProductReader,
	vouchers VoucherRedeemer,
	notifications Notifications,
	logger *zap.Logger,
	clock kernel.Clock,
) CreateOrderCommandHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return CreateOrderCommandHandler{
		uowFactory:    uowFactory,
		shops:         shops,
		products:      products,
		vouchers:      vouchers,
		pricer:        services.NewCheckoutPricer(),
		notifications: notifications,
		logger:        logger,
		clock:         clockOrDefault(clock),
	}
}

// Handle returns the created order.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (created *order.Order, err error) {
	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, span := tracing.Start(ctx, "CreateOrder",
		attribute.String("customer.id", cmd.CustomerID().String()),
		attribute.String("shop.id", cmd.ShopID().String()))
	defer func() { tracing.End(span, err) }()

	uow := h.uowFactory.Create()

	groups, err := uow.CartRepository().GetGroupedCart(ctx, cmd.CustomerID())
	if err != nil {
		return nil, err
	}
	group, ok := catalog.FindGroup(groups, cmd.ShopID())
	if !ok || group.IsEmpty() {
		return nil, order.ErrCartEmpty.WithMessage("cart has no items from shop %s", cmd.ShopID())
	}

	shop, err := h.shops.GetByID(ctx, cmd.ShopID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, catalog.ErrShopNotFound.WithMessage("shop %s not found", cmd.ShopID())
	}
	if err != nil {
		return nil, err
	}

	products, err := h.loadProducts(ctx, group)
	if err != nil {
		return nil, err
	}

	quote, err := h.pricer.Quote(shop, group, products)
	if err != nil {
		return nil, err
	}

	now := h.clock()
	orderID := kernel.NewUUID()
	redemption, redeemed := h.redeemVoucher(ctx, cmd, orderID, quote.Subtotal)

	params := order.NewOrderParams{
		ID:              orderID,
		OrderNumber:     order.NewOrderNumber(now),
		CustomerID:      cmd.CustomerID(),
		ShopID:          shop.ID,
		ShopName:        shop.Name,
		Items:           quote.Items,
		ShipFee:         quote.ShipFee,
		PaymentMethod:   cmd.PaymentMethod(),
		DeliveryAddress: cmd.DeliveryAddress(),
		DeliveryNote:    cmd.DeliveryNote(),
		Now:             now,
	}
	if redeemed {
		voucherID := redemption.VoucherID
		params.VoucherID = &voucherID
		params.VoucherCode = redemption.Code
		params.Discount = redemption.Discount
	}

	created, err = order.NewOrder(params)
	if err == nil {
		err = h.createOrderAndClearCartGroup(ctx, uow, created)
	}
	if err != nil {
		if redeemed {
			h.releaseVoucher(ctx, redemption, cmd.CustomerID(), orderID)
		}
		return nil, err
	}

	h.notifications.orderChanged(ctx, ports.NewOrderEvent(ports.OrderCreated, created, order.Unknown, now))
	return created, nil
}

func (h *CreateOrderCommandHandler) loadProducts(ctx context.Context, group catalog.CartGroup) ([]catalog.Product, error) {
	products := make([]catalog.Product, 0, len(group.Lines))
	for _, line := range group.Lines {
		p, err := h.products.GetByID(ctx, line.ProductID)
		if errors.Is(err, errs.ErrObjectNotFound) {
			// the pricer reports the missing product
			continue
		}
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

func (h *CreateOrderCommandHandler) redeemVoucher(
	ctx context.Context, cmd CreateOrderCommand, orderID kernel.UUID, subtotal int64,
) (Redemption, bool) {
	if cmd.VoucherCode() == "" || h.vouchers == nil {
		return Redemption{}, false
	}

	r, err := h.vouchers.Redeem(ctx, cmd.ShopID(), cmd.CustomerID(), orderID, cmd.VoucherCode(), subtotal)
	if err != nil {
		h.logger.Warn("voucher not applied, creating order without discount",
			zap.String("voucher_code", cmd.VoucherCode()),
			zap.String("order_id", orderID.String()),
			zap.String("code", errs.CodeOf(err)),
			zap.Error(err))
		return Redemption{}, false
	}
	return r, true
}

func (h *CreateOrderCommandHandler) releaseVoucher(ctx context.Context, r Redemption, customerID, orderID kernel.UUID) {
	if err := h.vouchers.Release(ctx, r, customerID, orderID); err != nil {
		h.logger.Warn("voucher usage not released after failed checkout",
			zap.String("voucher_id", r.VoucherID.String()),
			zap.String("order_id", orderID.String()),
			zap.Error(err))
	}
}

// createOrderAndClearCartGroup inserts the order and deletes the matching
// cart group in one transaction. Other shops' groups stay in the cart.
func (h *CreateOrderCommandHandler) createOrderAndClearCartGroup(ctx context.Context, uow CheckoutUoW, o *order.Order) error {
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Add(ctx, o); err != nil {
		return translateStorageError(err)
	}

	cleared, err := uow.CartRepository().ClearGroup(ctx, o.CustomerID(), o.ShopID())
	if err != nil {
		return translateStorageError(err)
	}
	if cleared == 0 {
		return order.ErrCartChanged
	}

	if err = uow.Commit(ctx); err != nil {
		return translateStorageError(err)
	}
	return nil
}
