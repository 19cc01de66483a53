package http

import (
	"marketplace/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface lists the operations of apidocs/openapi.yaml.
type ServerInterface interface {
	CreateOrder(ctx echo.Context) error
	ListMyOrders(ctx echo.Context, params ListOrdersParams) error
	GetOrder(ctx echo.Context, orderID kernel.UUID) error
	CancelOrder(ctx echo.Context, orderID kernel.UUID) error
	CreateReview(ctx echo.Context, orderID kernel.UUID) error
	ListShopOrders(ctx echo.Context, params ListOrdersParams) error
	ConfirmOrder(ctx echo.Context, orderID kernel.UUID) error
	MarkPreparing(ctx echo.Context, orderID kernel.UUID) error
	MarkReady(ctx echo.Context, orderID kernel.UUID) error
	OwnerCancelOrder(ctx echo.Context, orderID kernel.UUID) error
	ReplyReview(ctx echo.Context, reviewID kernel.UUID) error
	ListShipperOrders(ctx echo.Context, params ListOrdersParams) error
	AcceptOrder(ctx echo.Context, orderID kernel.UUID) error
	MarkDelivered(ctx echo.Context, orderID kernel.UUID) error
	GetVoucherUsage(ctx echo.Context, voucherID kernel.UUID) error
	BackfillShipperID(ctx echo.Context) error
	ExpireVouchers(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to typed parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers mounts every operation on router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	w := &ServerInterfaceWrapper{Handler: si}

	router.POST("/orders", w.Handler.CreateOrder)
	router.GET("/orders", w.ListMyOrders)
	router.GET("/orders/:orderId", w.withID("orderId", si.GetOrder))
	router.POST("/orders/:orderId/cancel", w.withID("orderId", si.CancelOrder))
	router.POST("/orders/:orderId/review", w.withID("orderId", si.CreateReview))

	router.GET("/shop/orders", w.ListShopOrders)
	router.POST("/shop/orders/:orderId/confirm", w.withID("orderId", si.ConfirmOrder))
	router.POST("/shop/orders/:orderId/prepare", w.withID("orderId", si.MarkPreparing))
	router.POST("/shop/orders/:orderId/ready", w.withID("orderId", si.MarkReady))
	router.POST("/shop/orders/:orderId/cancel", w.withID("orderId", si.OwnerCancelOrder))
	router.POST("/shop/reviews/:reviewId/reply", w.withID("reviewId", si.ReplyReview))

	router.GET("/shipper/orders", w.ListShipperOrders)
	router.POST("/shipper/orders/:orderId/accept", w.withID("orderId", si.AcceptOrder))
	router.POST("/shipper/orders/:orderId/deliver", w.withID("orderId", si.MarkDelivered))

	router.GET("/vouchers/:voucherId/usage", w.withID("voucherId", si.GetVoucherUsage))

	// The gateway only forwards /admin paths for operator accounts; here they
	// need nothing beyond an identified caller.
	router.POST("/admin/orders/backfill-shipper-id", w.Handler.BackfillShipperID)
	router.POST("/admin/vouchers/expire", w.Handler.ExpireVouchers)
}

func (w *ServerInterfaceWrapper) ListMyOrders(ctx echo.Context) error {
	params, err := bindListOrdersParams(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ListMyOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) ListShopOrders(ctx echo.Context) error {
	params, err := bindListOrdersParams(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ListShopOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) ListShipperOrders(ctx echo.Context) error {
	params, err := bindListOrdersParams(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ListShipperOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) withID(
	paramName string, next func(ctx echo.Context, id kernel.UUID) error,
) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var id openapi_types.UUID
		err := runtime.BindStyledParameterWithOptions("simple", paramName, ctx.Param(paramName), &id,
			runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
		if err != nil {
			return ErrRequestInvalid.WithMessage("invalid format for parameter %s", paramName).WithCause(err)
		}
		return next(ctx, kernel.FromGoogle(id))
	}
}

func bindListOrdersParams(ctx echo.Context) (ListOrdersParams, error) {
	var params ListOrdersParams

	if err := runtime.BindQueryParameter("form", true, false, "page", ctx.QueryParams(), &params.Page); err != nil {
		return params, ErrRequestInvalid.WithMessage("invalid format for parameter page").WithCause(err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit); err != nil {
		return params, ErrRequestInvalid.WithMessage("invalid format for parameter limit").WithCause(err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status); err != nil {
		return params, ErrRequestInvalid.WithMessage("invalid format for parameter status").WithCause(err)
	}
	return params, nil
}
