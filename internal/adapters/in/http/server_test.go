package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/in/http/apidocs"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/review"
	"marketplace/internal/core/domain/model/voucher"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 14, 11, 30, 0, 0, time.UTC)

type mockHandler[In, Out any] struct{ mock.Mock }

func (m *mockHandler[In, Out]) Handle(ctx context.Context, in In) (Out, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(Out)
	return out, args.Error(1)
}

type mockMaintenanceHandler struct{ mock.Mock }

func (m *mockMaintenanceHandler) Handle(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type apiScene struct {
	e      *echo.Echo
	userID kernel.UUID

	createOrder   *mockHandler[commands.CreateOrderCommand, *order.Order]
	cancelOrder   *mockHandler[commands.CancelOrderCommand, *order.Order]
	confirmOrder  *mockHandler[commands.ShopOrderCommand, *order.Order]
	markPreparing *mockHandler[commands.ShopOrderCommand, *order.Order]
	markReady     *mockHandler[commands.ShopOrderCommand, *order.Order]
	acceptOrder   *mockHandler[commands.ShipperOrderCommand, *order.Order]
	markDelivered *mockHandler[commands.ShipperOrderCommand, *order.Order]
	createReview  *mockHandler[commands.CreateReviewCommand, *review.Review]
	replyReview   *mockHandler[commands.ReplyReviewCommand, *review.Review]
	listOrders    *mockHandler[queries.ListOrdersQuery, queries.Page[queries.OrderSummary]]
	getOrder      *mockHandler[queries.GetOrderQuery, queries.OrderDetails]
	voucherUsage  *mockHandler[queries.GetVoucherUsageQuery, voucher.UsageSummary]
	backfill      *mockMaintenanceHandler
	expire        *mockMaintenanceHandler
}

func newAPIScene(t *testing.T) *apiScene {
	t.Helper()

	s := &apiScene{
		userID:        kernel.NewUUID(),
		createOrder:   &mockHandler[commands.CreateOrderCommand, *order.Order]{},
		cancelOrder:   &mockHandler[commands.CancelOrderCommand, *order.Order]{},
		confirmOrder:  &mockHandler[commands.ShopOrderCommand, *order.Order]{},
		markPreparing: &mockHandler[commands.ShopOrderCommand, *order.Order]{},
		markReady:     &mockHandler[commands.ShopOrderCommand, *order.Order]{},
		acceptOrder:   &mockHandler[commands.ShipperOrderCommand, *order.Order]{},
		markDelivered: &mockHandler[commands.ShipperOrderCommand, *order.Order]{},
		createReview:  &mockHandler[commands.CreateReviewCommand, *review.Review]{},
		replyReview:   &mockHandler[commands.ReplyReviewCommand, *review.Review]{},
		listOrders:    &mockHandler[queries.ListOrdersQuery, queries.Page[queries.OrderSummary]]{},
		getOrder:      &mockHandler[queries.GetOrderQuery, queries.OrderDetails]{},
		voucherUsage:  &mockHandler[queries.GetVoucherUsageQuery, voucher.UsageSummary]{},
		backfill:      &mockMaintenanceHandler{},
		expire:        &mockMaintenanceHandler{},
	}

	server := httpadapter.NewServer(httpadapter.Handlers{
		CreateOrder:       s.createOrder,
		CancelOrder:       s.cancelOrder,
		ConfirmOrder:      s.confirmOrder,
		MarkPreparing:     s.markPreparing,
		MarkReady:         s.markReady,
		AcceptOrder:       s.acceptOrder,
		MarkDelivered:     s.markDelivered,
		CreateReview:      s.createReview,
		ReplyReview:       s.replyReview,
		BackfillShipperID: s.backfill,
		ExpireVouchers:    s.expire,
		ListOrders:        s.listOrders,
		GetOrder:          s.getOrder,
		GetVoucherUsage:   s.voucherUsage,
	})

	docs, err := apidocs.Load(t.Context())
	require.NoError(t, err)
	s.e = httpadapter.NewEcho(server, docs, nil)

	t.Cleanup(func() {
		for _, m := range []interface{ AssertExpectations(mock.TestingT) bool }{
			s.createOrder, s.cancelOrder, s.confirmOrder, s.markPreparing, s.markReady,
			s.acceptOrder, s.markDelivered, s.createReview, s.replyReview,
			s.listOrders, s.getOrder, s.voucherUsage, s.backfill, s.expire,
		} {
			m.AssertExpectations(t)
		}
	})
	return s
}

func (s *apiScene) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	req.Header.Set(httpadapter.HeaderUserID, s.userID.String())

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httpadapter.ErrorResponse {
	t.Helper()
	var body httpadapter.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func storedOrder(t *testing.T, status order.Status, customerID kernel.UUID) *order.Order {
	t.Helper()

	s := order.Snapshot{
		ID:          kernel.NewUUID(),
		OrderNumber: order.NewOrderNumber(fixedNow),
		CustomerID:  customerID,
		ShopID:      kernel.NewUUID(),
		ShopName:    "Quan Hue",
		Items: []order.ItemSnapshot{{
			ProductID:   kernel.NewUUID(),
			ProductName: "Bun bo Hue",
			Quantity:    2,
			Price:       25000,
			Subtotal:    50000,
		}},
		Subtotal:      50000,
		ShipFee:       5000,
		Total:         55000,
		Status:        status,
		PaymentMethod: order.PaymentCOD,
		PaymentStatus: order.PaymentUnpaid,
		DeliveryAddress: order.Address{
			RecipientName: "Lan", Phone: "0900000000", Street: "1 Le Loi", City: "Hue",
		},
		CreatedAt: fixedNow,
		UpdatedAt: fixedNow,
	}
	if status == order.Shipping || status == order.Delivered {
		shipperID := kernel.NewUUID()
		s.ShipperID = &shipperID
	}

	o, err := order.RestoreOrder(s)
	require.NoError(t, err)
	return o
}

func TestHealth(t *testing.T) {
	s := newAPIScene(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestAPI_RequiresUserHeader(t *testing.T) {
	s := newAPIScene(t)

	for _, header := range []string{"", "not-a-uuid"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
		if header != "" {
			req.Header.Set(httpadapter.HeaderUserID, header)
		}
		rec := httptest.NewRecorder()
		s.e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
		assert.Equal(t, "UNAUTHENTICATED", decodeError(t, rec).Code)
	}
}

func TestCreateOrder_Created(t *testing.T) {
	s := newAPIScene(t)
	shopID := kernel.NewUUID()
	created := storedOrder(t, order.Pending, s.userID)

	s.createOrder.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateOrderCommand) bool {
		return cmd.CustomerID().IsEqual(s.userID) &&
			cmd.ShopID().IsEqual(shopID) &&
			cmd.PaymentMethod() == order.PaymentZaloPay &&
			cmd.VoucherCode() == "GIAM10" &&
			cmd.DeliveryAddress().City == "Hue"
	})).Return(created, nil).Once()

	rec := s.do(http.MethodPost, "/api/v1/orders", `{
		"shopId": "`+shopID.String()+`",
		"deliveryAddress": {"recipientName": "Lan", "phone": "0900000000", "street": "1 Le Loi", "city": "Hue"},
		"paymentMethod": "ZALOPAY",
		"voucherCode": "GIAM10"
	}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var body httpadapter.OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.ID.IsEqual(created.ID()))
	assert.Equal(t, order.Pending, body.Status)
	assert.Equal(t, int64(55000), body.Total)
	require.Len(t, body.Items, 1)
	assert.Equal(t, int64(25000), body.Items[0].Price)
}

func TestCreateOrder_InvalidBody(t *testing.T) {
	s := newAPIScene(t)

	rec := s.do(http.MethodPost, "/api/v1/orders", `{
		"shopId": "nope",
		"deliveryAddress": {"recipientName": "Lan", "phone": "0900000000", "street": "1 Le Loi"},
		"paymentMethod": "BITCOIN"
	}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "REQUEST_INVALID", body.Code)
	assert.Contains(t, body.Message, "shopId must be a UUID")
	assert.Contains(t, body.Message, "deliveryAddress.city is required")
	assert.Contains(t, body.Message, "paymentMethod must be one of")
	s.createOrder.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestCreateOrder_MalformedJSON(t *testing.T) {
	s := newAPIScene(t)

	rec := s.do(http.MethodPost, "/api/v1/orders", `{"shopId":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "REQUEST_INVALID", decodeError(t, rec).Code)
}

func TestCreateOrder_BusinessErrorKeepsItsCode(t *testing.T) {
	s := newAPIScene(t)

	s.createOrder.On("Handle", mock.Anything, mock.Anything).Return(nil, order.ErrCartEmpty).Once()

	rec := s.do(http.MethodPost, "/api/v1/orders", `{
		"shopId": "`+kernel.NewUUID().String()+`",
		"deliveryAddress": {"recipientName": "Lan", "phone": "0900000000", "street": "1 Le Loi", "city": "Hue"},
		"paymentMethod": "COD"
	}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "ORDER_002", body.Code)
	assert.Equal(t, order.ErrCartEmpty.Message, body.Message)
}

func TestListMyOrders_PassesPagingAndStatus(t *testing.T) {
	s := newAPIScene(t)
	page := queries.Page[queries.OrderSummary]{
		Items: []queries.OrderSummary{{ID: kernel.NewUUID(), Status: order.Pending}},
		Page:  2, Limit: 5, Total: 6, TotalPages: 2,
	}

	s.listOrders.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListOrdersQuery) bool {
		return q.Scope() == queries.ScopeCustomer &&
			q.ActorID().IsEqual(s.userID) &&
			q.Page() == 2 && q.Limit() == 5 &&
			q.Status() == order.Pending
	})).Return(page, nil).Once()

	rec := s.do(http.MethodGet, "/api/v1/orders?page=2&limit=5&status=pending", "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `2`, string(mustField(t, rec, "totalPages")))
	assert.JSONEq(t, `6`, string(mustField(t, rec, "total")))
}

func TestListShopOrders_ClampsLimit(t *testing.T) {
	s := newAPIScene(t)

	s.listOrders.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListOrdersQuery) bool {
		return q.Scope() == queries.ScopeShop && q.Page() == 1 && q.Limit() == queries.MaxPageLimit
	})).Return(queries.Page[queries.OrderSummary]{Page: 1, Limit: queries.MaxPageLimit}, nil).Once()

	rec := s.do(http.MethodGet, "/api/v1/shop/orders?limit=500", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListShipperOrders_BadParameters(t *testing.T) {
	s := newAPIScene(t)

	for _, target := range []string{
		"/api/v1/shipper/orders?page=first",
		"/api/v1/shipper/orders?status=LOST",
	} {
		rec := s.do(http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Equal(t, "REQUEST_INVALID", decodeError(t, rec).Code, target)
	}
}

func TestGetOrder_ForbiddenForStrangers(t *testing.T) {
	s := newAPIScene(t)
	orderID := kernel.NewUUID()

	s.getOrder.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetOrderQuery) bool {
		return q.OrderID().IsEqual(orderID) && q.ActorID().IsEqual(s.userID)
	})).Return(queries.OrderDetails{}, order.ErrNotOrderOwner).Once()

	rec := s.do(http.MethodGet, "/api/v1/orders/"+orderID.String(), "")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "ORDER_006", decodeError(t, rec).Code)
}

func TestGetOrder_MalformedID(t *testing.T) {
	s := newAPIScene(t)

	rec := s.do(http.MethodGet, "/api/v1/orders/42", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "orderId")
}

func TestCancelOrder_CustomerAndOwnerRoutes(t *testing.T) {
	s := newAPIScene(t)
	customerOrder := storedOrder(t, order.Pending, s.userID)
	ownerOrder := storedOrder(t, order.Confirmed, kernel.NewUUID())

	s.cancelOrder.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CancelOrderCommand) bool {
		return !cmd.ByOwner() && cmd.OrderID().IsEqual(customerOrder.ID()) && cmd.Reason() == "changed my mind"
	})).Return(customerOrder, nil).Once()
	s.cancelOrder.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CancelOrderCommand) bool {
		return cmd.ByOwner() && cmd.OrderID().IsEqual(ownerOrder.ID()) && cmd.ActorID().IsEqual(s.userID)
	})).Return(ownerOrder, nil).Once()

	rec := s.do(http.MethodPost, "/api/v1/orders/"+customerOrder.ID().String()+"/cancel", `{"reason":"changed my mind"}`)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/v1/shop/orders/"+ownerOrder.ID().String()+"/cancel", "")
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestShopTransitions_RouteToTheirHandlers(t *testing.T) {
	s := newAPIScene(t)

	cases := []struct {
		path    string
		handler *mockHandler[commands.ShopOrderCommand, *order.Order]
		result  order.Status
	}{
		{"confirm", s.confirmOrder, order.Confirmed},
		{"prepare", s.markPreparing, order.Preparing},
		{"ready", s.markReady, order.Ready},
	}
	for _, tc := range cases {
		updated := storedOrder(t, tc.result, kernel.NewUUID())
		tc.handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ShopOrderCommand) bool {
			return cmd.OwnerID().IsEqual(s.userID) && cmd.OrderID().IsEqual(updated.ID())
		})).Return(updated, nil).Once()

		rec := s.do(http.MethodPost, "/api/v1/shop/orders/"+updated.ID().String()+"/"+tc.path, "")

		require.Equal(t, http.StatusOK, rec.Code, tc.path)
		var body httpadapter.OrderResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, tc.result, body.Status, tc.path)
	}
}

func TestAcceptOrder_LosingShipperGetsConflict(t *testing.T) {
	s := newAPIScene(t)
	orderID := kernel.NewUUID()

	s.acceptOrder.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ShipperOrderCommand) bool {
		return cmd.ShipperID().IsEqual(s.userID) && cmd.OrderID().IsEqual(orderID)
	})).Return(nil, order.ErrOrderNotAvailableForPickup).Once()

	rec := s.do(http.MethodPost, "/api/v1/shipper/orders/"+orderID.String()+"/accept", "")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "ORDER_009", decodeError(t, rec).Code)
}

func TestMarkDelivered_UnexpectedErrorIsHidden(t *testing.T) {
	s := newAPIScene(t)

	s.markDelivered.On("Handle", mock.Anything, mock.Anything).
		Return(nil, errors.New("pq: connection reset by peer")).Once()

	rec := s.do(http.MethodPost, "/api/v1/shipper/orders/"+kernel.NewUUID().String()+"/deliver", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "INTERNAL", body.Code)
	assert.NotContains(t, body.Message, "pq")
}

func TestCreateReview_ValidatesRating(t *testing.T) {
	s := newAPIScene(t)

	rec := s.do(http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/review", `{"rating":7}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "rating")
}

func TestCreateReview_Created(t *testing.T) {
	s := newAPIScene(t)
	orderID := kernel.NewUUID()
	stored, err := review.NewReview(kernel.NewUUID(), orderID, s.userID, kernel.NewUUID(), 5, "ngon", fixedNow)
	require.NoError(t, err)

	s.createReview.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateReviewCommand) bool {
		return cmd.OrderID().IsEqual(orderID) && cmd.Rating() == 5 && cmd.Comment() == "ngon"
	})).Return(stored, nil).Once()

	rec := s.do(http.MethodPost, "/api/v1/orders/"+orderID.String()+"/review", `{"rating":5,"comment":"ngon"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var body httpadapter.ReviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 5, body.Rating)
	assert.True(t, body.OrderID.IsEqual(orderID))
}

func TestReplyReview_RequiresReply(t *testing.T) {
	s := newAPIScene(t)

	rec := s.do(http.MethodPost, "/api/v1/shop/reviews/"+kernel.NewUUID().String()+"/reply", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "reply is required")
}

func TestGetVoucherUsage_ScopedToCaller(t *testing.T) {
	s := newAPIScene(t)
	voucherID := kernel.NewUUID()
	summary := voucher.UsageSummary{
		VoucherID: voucherID, Code: "GIAM10", CurrentUsage: 3, UsageLimit: 10, UserUsage: 1, UsageLimitPerUser: 2,
	}

	s.voucherUsage.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetVoucherUsageQuery) bool {
		return q.VoucherID().IsEqual(voucherID) && q.UserID().IsEqual(s.userID)
	})).Return(summary, nil).Once()

	rec := s.do(http.MethodGet, "/api/v1/vouchers/"+voucherID.String()+"/usage", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body voucher.UsageSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, summary, body)
}

func TestMaintenanceEndpoints(t *testing.T) {
	s := newAPIScene(t)

	s.backfill.On("Handle", mock.Anything).Return(int64(4), nil).Once()
	s.expire.On("Handle", mock.Anything).Return(int64(2), nil).Once()

	rec := s.do(http.MethodPost, "/api/v1/admin/orders/backfill-shipper-id", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"affected":4}`, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/v1/admin/vouchers/expire", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"affected":2}`, rec.Body.String())
}

func TestMaintenanceEndpoints_RequireIdentifiedCaller(t *testing.T) {
	s := newAPIScene(t)

	for _, path := range []string{"/api/v1/admin/orders/backfill-shipper-id", "/api/v1/admin/vouchers/expire"} {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		rec := httptest.NewRecorder()
		s.e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
	s.backfill.AssertNotCalled(t, "Handle", mock.Anything)
	s.expire.AssertNotCalled(t, "Handle", mock.Anything)
}

func TestRoutes_AreDocumented(t *testing.T) {
	s := newAPIScene(t)
	docs, err := apidocs.Load(t.Context())
	require.NoError(t, err)

	documented := 0
	for _, route := range s.e.Routes() {
		if !strings.HasPrefix(route.Path, httpadapter.BaseURL+"/") || strings.HasSuffix(route.Path, "*") {
			continue
		}
		path := strings.TrimPrefix(route.Path, httpadapter.BaseURL)
		path = openAPIPath(path)

		item := docs.Document().Paths.Find(path)
		require.NotNil(t, item, "undocumented route %s %s", route.Method, route.Path)
		assert.NotNil(t, item.GetOperation(route.Method), "undocumented route %s %s", route.Method, route.Path)
		documented++
	}
	assert.Equal(t, 17, documented)
}

// openAPIPath rewrites echo's ":name" segments as "{name}".
func openAPIPath(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		if name, ok := strings.CutPrefix(segment, ":"); ok {
			segments[i] = "{" + name + "}"
		}
	}
	return strings.Join(segments, "/")
}

func mustField(t *testing.T, rec *httptest.ResponseRecorder, name string) json.RawMessage {
	t.Helper()
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	field, ok := body[name]
	require.True(t, ok, name)
	return field
}
