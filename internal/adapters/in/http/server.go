package http

import (
	"context"
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/review"
	"marketplace/internal/core/domain/model/voucher"

	"github.com/labstack/echo/v4"
)

// Handler is the shape shared by every command and query handler.
type Handler[In, Out any] interface {
	Handle(ctx context.Context, in In) (Out, error)
}

// MaintenanceHandler runs a batch operation and reports how many rows it touched.
type MaintenanceHandler interface {
	Handle(ctx context.Context) (int64, error)
}

// Handlers groups the use cases the API exposes.
type Handlers struct {
	// Command handlers
	CreateOrder       Handler[commands.CreateOrderCommand, *order.Order]
	CancelOrder       Handler[commands.CancelOrderCommand, *order.Order]
	ConfirmOrder      Handler[commands.ShopOrderCommand, *order.Order]
	MarkPreparing     Handler[commands.ShopOrderCommand, *order.Order]
	MarkReady         Handler[commands.ShopOrderCommand, *order.Order]
	AcceptOrder       Handler[commands.ShipperOrderCommand, *order.Order]
	MarkDelivered     Handler[commands.ShipperOrderCommand, *order.Order]
	CreateReview      Handler[commands.CreateReviewCommand, *review.Review]
	ReplyReview       Handler[commands.ReplyReviewCommand, *review.Review]
	BackfillShipperID MaintenanceHandler
	ExpireVouchers    MaintenanceHandler

	// Query handlers
	ListOrders      Handler[queries.ListOrdersQuery, queries.Page[queries.OrderSummary]]
	GetOrder        Handler[queries.GetOrderQuery, queries.OrderDetails]
	GetVoucherUsage Handler[queries.GetVoucherUsageQuery, voucher.UsageSummary]
}

// Server implements ServerInterface on top of the application use cases.
type Server struct {
	handlers Handlers
}

func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// CreateOrder handles POST /orders - checks out one shop's cart group.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body CreateOrderRequest
	if err := bindBody(ctx, &body); err != nil {
		return err
	}

	shopID, err := kernel.UUIDFromString(body.ShopID)
	if err != nil {
		return ErrRequestInvalid.WithMessage("shopId must be a UUID").WithCause(err)
	}
	method, err := order.ParsePaymentMethod(body.PaymentMethod)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrderCommand(
		currentUser(ctx), shopID, body.DeliveryAddress.toDomain(), body.DeliveryNote, method, body.VoucherCode,
	)
	if err != nil {
		return err
	}

	created, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, newOrderResponse(created))
}

// ListMyOrders handles GET /orders.
func (s *Server) ListMyOrders(ctx echo.Context, params ListOrdersParams) error {
	return s.listOrders(ctx, params, queries.NewListCustomerOrdersQuery)
}

// GetOrder handles GET /orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderID kernel.UUID) error {
	query, err := queries.NewGetOrderQuery(currentUser(ctx), orderID)
	if err != nil {
		return err
	}

	details, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, details)
}

// CancelOrder handles POST /orders/{orderId}/cancel on behalf of the customer.
func (s *Server) CancelOrder(ctx echo.Context, orderID kernel.UUID) error {
	return s.cancel(ctx, orderID, commands.NewCancelOrderCommand)
}

// CreateReview handles POST /orders/{orderId}/review.
func (s *Server) CreateReview(ctx echo.Context, orderID kernel.UUID) error {
	var body CreateReviewRequest
	if err := bindBody(ctx, &body); err != nil {
		return err
	}

	cmd, err := commands.NewCreateReviewCommand(currentUser(ctx), orderID, body.Rating, body.Comment)
	if err != nil {
		return err
	}

	created, err := s.handlers.CreateReview.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, newReviewResponse(created))
}

// ListShopOrders handles GET /shop/orders.
func (s *Server) ListShopOrders(ctx echo.Context, params ListOrdersParams) error {
	return s.listOrders(ctx, params, queries.NewListShopOrdersQuery)
}

// ConfirmOrder handles POST /shop/orders/{orderId}/confirm.
func (s *Server) ConfirmOrder(ctx echo.Context, orderID kernel.UUID) error {
	return s.shopTransition(ctx, orderID, s.handlers.ConfirmOrder)
}

// MarkPreparing handles POST /shop/orders/{orderId}/prepare.
func (s *Server) MarkPreparing(ctx echo.Context, orderID kernel.UUID) error {
	return s.shopTransition(ctx, orderID, s.handlers.MarkPreparing)
}

// MarkReady handles POST /shop/orders/{orderId}/ready.
func (s *Server) MarkReady(ctx echo.Context, orderID kernel.UUID) error {
	return s.shopTransition(ctx, orderID, s.handlers.MarkReady)
}

// OwnerCancelOrder handles POST /shop/orders/{orderId}/cancel.
func (s *Server) OwnerCancelOrder(ctx echo.Context, orderID kernel.UUID) error {
	return s.cancel(ctx, orderID, commands.NewOwnerCancelOrderCommand)
}

// ReplyReview handles POST /shop/reviews/{reviewId}/reply.
func (s *Server) ReplyReview(ctx echo.Context, reviewID kernel.UUID) error {
	var body ReplyReviewRequest
	if err := bindBody(ctx, &body); err != nil {
		return err
	}

	cmd, err := commands.NewReplyReviewCommand(currentUser(ctx), reviewID, body.Reply)
	if err != nil {
		return err
	}

	replied, err := s.handlers.ReplyReview.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, newReviewResponse(replied))
}

// ListShipperOrders handles GET /shipper/orders.
func (s *Server) ListShipperOrders(ctx echo.Context, params ListOrdersParams) error {
	return s.listOrders(ctx, params, queries.NewListShipperOrdersQuery)
}

// AcceptOrder handles POST /shipper/orders/{orderId}/accept.
func (s *Server) AcceptOrder(ctx echo.Context, orderID kernel.UUID) error {
	return s.shipperTransition(ctx, orderID, s.handlers.AcceptOrder)
}

// MarkDelivered handles POST /shipper/orders/{orderId}/deliver.
func (s *Server) MarkDelivered(ctx echo.Context, orderID kernel.UUID) error {
	return s.shipperTransition(ctx, orderID, s.handlers.MarkDelivered)
}

// GetVoucherUsage handles GET /vouchers/{voucherId}/usage for the caller.
func (s *Server) GetVoucherUsage(ctx echo.Context, voucherID kernel.UUID) error {
	query, err := queries.NewGetVoucherUsageQuery(voucherID, currentUser(ctx))
	if err != nil {
		return err
	}

	summary, err := s.handlers.GetVoucherUsage.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, summary)
}

// BackfillShipperID handles POST /admin/orders/backfill-shipper-id.
func (s *Server) BackfillShipperID(ctx echo.Context) error {
	return s.maintenance(ctx, s.handlers.BackfillShipperID)
}

// ExpireVouchers handles POST /admin/vouchers/expire.
func (s *Server) ExpireVouchers(ctx echo.Context) error {
	return s.maintenance(ctx, s.handlers.ExpireVouchers)
}

type listQueryConstructor func(actorID kernel.UUID, page, limit int, status order.Status) (queries.ListOrdersQuery, error)

func (s *Server) listOrders(ctx echo.Context, params ListOrdersParams, newQuery listQueryConstructor) error {
	var page, limit int
	if params.Page != nil {
		page = *params.Page
	}
	if params.Limit != nil {
		limit = *params.Limit
	}
	status := order.Unknown
	if params.Status != nil && *params.Status != "" {
		parsed, err := order.ParseStatus(*params.Status)
		if err != nil {
			return err
		}
		status = parsed
	}

	query, err := newQuery(currentUser(ctx), page, limit, status)
	if err != nil {
		return err
	}

	result, err := s.handlers.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, result)
}

type cancelCommandConstructor func(actorID, orderID kernel.UUID, reason string) (commands.CancelOrderCommand, error)

func (s *Server) cancel(ctx echo.Context, orderID kernel.UUID, newCommand cancelCommandConstructor) error {
	var body CancelOrderRequest
	if err := bindBody(ctx, &body); err != nil {
		return err
	}

	cmd, err := newCommand(currentUser(ctx), orderID, body.Reason)
	if err != nil {
		return err
	}

	cancelled, err := s.handlers.CancelOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, newOrderResponse(cancelled))
}

func (s *Server) shopTransition(
	ctx echo.Context, orderID kernel.UUID, handler Handler[commands.ShopOrderCommand, *order.Order],
) error {
	cmd, err := commands.NewShopOrderCommand(currentUser(ctx), orderID)
	if err != nil {
		return err
	}

	updated, err := handler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, newOrderResponse(updated))
}

func (s *Server) shipperTransition(
	ctx echo.Context, orderID kernel.UUID, handler Handler[commands.ShipperOrderCommand, *order.Order],
) error {
	cmd, err := commands.NewShipperOrderCommand(currentUser(ctx), orderID)
	if err != nil {
		return err
	}

	updated, err := handler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, newOrderResponse(updated))
}

func (s *Server) maintenance(ctx echo.Context, handler MaintenanceHandler) error {
	affected, err := handler.Handle(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, MaintenanceResponse{Affected: affected})
}

// bindBody decodes the JSON body into dst and validates it. An empty body
// leaves dst at its zero value.
func bindBody(ctx echo.Context, dst any) error {
	if err := ctx.Bind(dst); err != nil {
		return ErrRequestInvalid.WithMessage("malformed request body").WithCause(err)
	}
	return ctx.Validate(dst)
}
