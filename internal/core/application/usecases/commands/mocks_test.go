package commands_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/review"
	"marketplace/internal/core/domain/model/shipper"
	"marketplace/internal/core/domain/model/voucher"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}
func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}
func (m *MockOrderRepository) BackfillShipperIDNull(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockShipperDirectory struct{ mock.Mock }

func (m *MockShipperDirectory) Add(ctx context.Context, s *shipper.Shipper) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockShipperDirectory) Get(ctx context.Context, id kernel.UUID) (*shipper.Shipper, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*shipper.Shipper)
	return s, args.Error(1)
}
func (m *MockShipperDirectory) GetForUpdate(ctx context.Context, id kernel.UUID) (*shipper.Shipper, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*shipper.Shipper)
	return s, args.Error(1)
}
func (m *MockShipperDirectory) UpdateStatus(ctx context.Context, s *shipper.Shipper) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

type MockVoucherRepository struct{ mock.Mock }

func (m *MockVoucherRepository) Add(ctx context.Context, v *voucher.Voucher) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *MockVoucherRepository) Update(ctx context.Context, v *voucher.Voucher) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *MockVoucherRepository) Get(ctx context.Context, id kernel.UUID) (*voucher.Voucher, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*voucher.Voucher)
	return v, args.Error(1)
}
func (m *MockVoucherRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*voucher.Voucher, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*voucher.Voucher)
	return v, args.Error(1)
}
func (m *MockVoucherRepository) FindByCode(ctx context.Context, shopID kernel.UUID, code string) (*voucher.Voucher, error) {
	args := m.Called(ctx, shopID, code)
	v, _ := args.Get(0).(*voucher.Voucher)
	return v, args.Error(1)
}
func (m *MockVoucherRepository) ExpireBefore(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockVoucherUsageRepository struct{ mock.Mock }

func (m *MockVoucherUsageRepository) Exists(ctx context.Context, usageID string) (bool, error) {
	args := m.Called(ctx, usageID)
	return args.Bool(0), args.Error(1)
}
func (m *MockVoucherUsageRepository) CountByUser(ctx context.Context, voucherID, userID kernel.UUID) (int, error) {
	args := m.Called(ctx, voucherID, userID)
	return args.Int(0), args.Error(1)
}
func (m *MockVoucherUsageRepository) Add(ctx context.Context, u voucher.Usage) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}
func (m *MockVoucherUsageRepository) Delete(ctx context.Context, usageID string) (bool, error) {
	args := m.Called(ctx, usageID)
	return args.Bool(0), args.Error(1)
}

type MockReviewRepository struct{ mock.Mock }

func (m *MockReviewRepository) Add(ctx context.Context, r *review.Review) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockReviewRepository) Update(ctx context.Context, r *review.Review) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockReviewRepository) Get(ctx context.Context, id kernel.UUID) (*review.Review, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*review.Review)
	return r, args.Error(1)
}
func (m *MockReviewRepository) ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

type MockCartReader struct{ mock.Mock }

func (m *MockCartReader) GetGroupedCart(ctx context.Context, customerID kernel.UUID) ([]catalog.CartGroup, error) {
	args := m.Called(ctx, customerID)
	groups, _ := args.Get(0).([]catalog.CartGroup)
	return groups, args.Error(1)
}
func (m *MockCartReader) ClearGroup(ctx context.Context, customerID, shopID kernel.UUID) (int64, error) {
	args := m.Called(ctx, customerID, shopID)
	return args.Get(0).(int64), args.Error(1)
}

type MockShopReader struct{ mock.Mock }

func (m *MockShopReader) GetByID(ctx context.Context, id kernel.UUID) (catalog.Shop, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(catalog.Shop), args.Error(1)
}
func (m *MockShopReader) GetByOwner(ctx context.Context, ownerID kernel.UUID) (catalog.Shop, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(catalog.Shop), args.Error(1)
}

type MockProductReader struct{ mock.Mock }

func (m *MockProductReader) GetByID(ctx context.Context, id kernel.UUID) (catalog.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(catalog.Product), args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, event ports.OrderEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockRefundRequester struct{ mock.Mock }

func (m *MockRefundRequester) RequestRefund(ctx context.Context, req ports.RefundRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

// MockUoW satisfies every unit of work view the handlers ask for.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}
func (m *MockUoW) ShipperDirectory() ports.ShipperDirectory {
	args := m.Called()
	return args.Get(0).(ports.ShipperDirectory)
}
func (m *MockUoW) CartRepository() ports.CartReader {
	args := m.Called()
	return args.Get(0).(ports.CartReader)
}
func (m *MockUoW) VoucherRepository() ports.VoucherRepository {
	args := m.Called()
	return args.Get(0).(ports.VoucherRepository)
}
func (m *MockUoW) VoucherUsageRepository() ports.VoucherUsageRepository {
	args := m.Called()
	return args.Get(0).(ports.VoucherUsageRepository)
}
func (m *MockUoW) ReviewRepository() ports.ReviewRepository {
	args := m.Called()
	return args.Get(0).(ports.ReviewRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCheckoutUoWFactory struct{ mock.Mock }

func (m *MockCheckoutUoWFactory) Create() commands.CheckoutUoW {
	args := m.Called()
	return args.Get(0).(commands.CheckoutUoW)
}

type MockDispatchUoWFactory struct{ mock.Mock }

func (m *MockDispatchUoWFactory) Create() commands.DispatchUoW {
	args := m.Called()
	return args.Get(0).(commands.DispatchUoW)
}

type MockVoucherUoWFactory struct{ mock.Mock }

func (m *MockVoucherUoWFactory) Create() commands.VoucherUoW {
	args := m.Called()
	return args.Get(0).(commands.VoucherUoW)
}

type MockReviewUoWFactory struct{ mock.Mock }

func (m *MockReviewUoWFactory) Create() commands.ReviewUoW {
	args := m.Called()
	return args.Get(0).(commands.ReviewUoW)
}

// orderFixture holds one stored order and hands out independent copies, the
// way two reads from storage would.
type orderFixture struct {
	snapshot order.Snapshot
}

func newOrderFixture(t *testing.T, status order.Status, mutate ...func(*order.Snapshot)) orderFixture {
	t.Helper()

	item, err := order.NewItem(kernel.NewUUID(), "Bun bo Hue", 2, 25000)
	require.NoError(t, err)

	s := order.Snapshot{
		ID:          kernel.NewUUID(),
		OrderNumber: order.NewOrderNumber(fixedNow),
		CustomerID:  kernel.NewUUID(),
		ShopID:      kernel.NewUUID(),
		ShopName:    "Quan Hue",
		Items: []order.ItemSnapshot{{
			ProductID:   item.ProductID(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			Price:       item.Price(),
			Subtotal:    item.Subtotal(),
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
		CreatedAt: fixedNow.Add(-time.Hour),
		UpdatedAt: fixedNow.Add(-time.Hour),
	}
	if status == order.Shipping || status == order.Delivered {
		shipperID := kernel.NewUUID()
		s.ShipperID = &shipperID
	}
	for _, fn := range mutate {
		fn(&s)
	}

	_, err = order.RestoreOrder(s)
	require.NoError(t, err)
	return orderFixture{snapshot: s}
}

func (f orderFixture) load() *order.Order {
	o, err := order.RestoreOrder(f.snapshot)
	if err != nil {
		panic(err)
	}
	return o
}

func (f orderFixture) id() kernel.UUID { return f.snapshot.ID }

func newShipper(t *testing.T, id kernel.UUID, status shipper.Status) *shipper.Shipper {
	t.Helper()
	s, err := shipper.RestoreShipper(id, "Minh", status, fixedNow.Add(-time.Hour))
	require.NoError(t, err)
	return s
}
