package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/cartrepo"
	"marketplace/internal/adapters/out/postgres/catalogrepo"
	"marketplace/internal/adapters/out/postgres/pgtest"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/shipper"
	"marketplace/internal/core/domain/model/voucher"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

var now = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func clock() time.Time { return now }

type (
	orderUoWs    func() commands.OrderUoW
	checkoutUoWs func() commands.CheckoutUoW
	dispatchUoWs func() commands.DispatchUoW
	voucherUoWs  func() commands.VoucherUoW
)

func (f orderUoWs) Create() commands.OrderUoW       { return f() }
func (f checkoutUoWs) Create() commands.CheckoutUoW { return f() }
func (f dispatchUoWs) Create() commands.DispatchUoW { return f() }
func (f voucherUoWs) Create() commands.VoucherUoW   { return f() }

type recordingPublisher struct {
	mu     sync.Mutex
	events []ports.OrderEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event ports.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []ports.OrderEventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]ports.OrderEventType, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.Type)
	}
	return types
}

// UnitOfWorkIntegrationTestSuite drives the command handlers against a real
// database to check transaction boundaries and row locking.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	database  *pgtest.Database
	factory   *postgres.GormUnitOfWorkFactory
	shops     *catalogrepo.GormShopRepository
	products  *catalogrepo.GormProductRepository
	carts     *cartrepo.GormCartRepository
	publisher *recordingPublisher
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.factory = postgres.NewGormUnitOfWorkFactory(database.DB)
	suite.shops = catalogrepo.NewGormShopRepository(database.DB)
	suite.products = catalogrepo.NewGormProductRepository(database.DB)
	suite.carts = cartrepo.NewGormCartRepository(database.DB)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.publisher = &recordingPublisher{}
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := suite.T().Context()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Commit(ctx))

	suite.ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsWrites() {
	ctx := suite.T().Context()
	s, err := shipper.NewShipper(kernel.NewUUID(), "Minh", now)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ShipperDirectory().Add(ctx, s))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err = suite.factory.Create().ShipperDirectory().Get(ctx, s.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_UncommittedWritesAreIsolated() {
	ctx := suite.T().Context()
	s, err := shipper.NewShipper(kernel.NewUUID(), "Minh", now)
	suite.Require().NoError(err)

	writer := suite.factory.Create()
	suite.Require().NoError(writer.Begin(ctx))
	defer writer.Rollback(ctx)
	suite.Require().NoError(writer.ShipperDirectory().Add(ctx, s))

	_, err = writer.ShipperDirectory().Get(ctx, s.ID())
	suite.Require().NoError(err)

	_, err = suite.factory.Create().ShipperDirectory().Get(ctx, s.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderLifecycle_EndToEnd() {
	ctx := suite.T().Context()
	owner, customer := kernel.NewUUID(), kernel.NewUUID()
	shop := suite.seedShop(owner, 5000)
	product := suite.seedProduct(shop.ID, "Bun cha", 25000)
	suite.addToCart(customer, shop.ID, product, 2, 25000)

	shipperA := suite.seedShipper("A")
	shipperB := suite.seedShipper("B")

	create := suite.createOrderHandler()
	created, err := create.Handle(ctx, suite.createOrderCommand(customer, shop.ID, ""))
	suite.Require().NoError(err)
	suite.Equal(int64(50000), created.Subtotal())
	suite.Equal(int64(55000), created.Total())
	suite.Equal(order.Pending, created.Status())

	for _, step := range []struct {
		handler commands.ShopOrderCommandHandler
		status  order.Status
	}{
		{commands.NewConfirmOrderCommandHandler(suite.orderUoWs(), suite.shops, suite.notifications(), clock), order.Confirmed},
		{commands.NewMarkPreparingCommandHandler(suite.orderUoWs(), suite.shops, suite.notifications(), clock), order.Preparing},
		{commands.NewMarkReadyCommandHandler(suite.orderUoWs(), suite.shops, suite.notifications(), clock), order.Ready},
	} {
		cmd, err := commands.NewShopOrderCommand(owner, created.ID())
		suite.Require().NoError(err)
		updated, err := step.handler.Handle(ctx, cmd)
		suite.Require().NoError(err)
		suite.Equal(step.status, updated.Status())
	}

	accept := commands.NewAcceptOrderCommandHandler(suite.dispatchUoWs(), suite.notifications(), clock)
	acceptByA, err := commands.NewShipperOrderCommand(shipperA.ID(), created.ID())
	suite.Require().NoError(err)
	shipping, err := accept.Handle(ctx, acceptByA)
	suite.Require().NoError(err)
	suite.Equal(order.Shipping, shipping.Status())
	suite.Equal(shipperA.ID(), *shipping.ShipperID())

	acceptByB, err := commands.NewShipperOrderCommand(shipperB.ID(), created.ID())
	suite.Require().NoError(err)
	_, err = accept.Handle(ctx, acceptByB)
	suite.Equal(errs.KindConflict, errs.KindOf(err))

	deliver := commands.NewMarkDeliveredCommandHandler(suite.dispatchUoWs(), suite.notifications(), clock)
	delivered, err := deliver.Handle(ctx, acceptByA)
	suite.Require().NoError(err)
	suite.Equal(order.Delivered, delivered.Status())
	suite.Equal(order.PaymentPaid, delivered.PaymentStatus())

	stored, err := suite.factory.Create().OrderRepository().Get(ctx, created.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Delivered, stored.Status())
	suite.Equal(order.PaymentPaid, stored.PaymentStatus())

	a, err := suite.factory.Create().ShipperDirectory().Get(ctx, shipperA.ID())
	suite.Require().NoError(err)
	suite.Equal(shipper.Available, a.Status())

	suite.Equal([]ports.OrderEventType{
		ports.OrderCreated, ports.OrderConfirmed, ports.OrderPreparing, ports.OrderReady,
		ports.OrderShipping, ports.OrderDelivered,
	}, suite.publisher.types())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCreateOrder_LocksCartPriceAndKeepsOtherShops() {
	ctx := suite.T().Context()
	customer := kernel.NewUUID()
	shop := suite.seedShop(kernel.NewUUID(), 5000)
	other := suite.seedShop(kernel.NewUUID(), 8000)
	product := suite.seedProduct(shop.ID, "Bun bo", 30000)
	otherProduct := suite.seedProduct(other.ID, "Banh xeo", 40000)
	suite.addToCart(customer, shop.ID, product, 1, 25000)
	suite.addToCart(customer, other.ID, otherProduct, 1, 40000)

	handler := suite.createOrderHandler()
	created, err := handler.Handle(ctx, suite.createOrderCommand(customer, shop.ID, ""))
	suite.Require().NoError(err)
	suite.Equal(int64(25000), created.Items()[0].Price())

	groups, err := suite.carts.GetGroupedCart(ctx, customer)
	suite.Require().NoError(err)
	suite.Require().Len(groups, 1)
	suite.Equal(other.ID, groups[0].ShopID)

	_, err = handler.Handle(ctx, suite.createOrderCommand(customer, shop.ID, ""))
	suite.ErrorIs(err, order.ErrCartEmpty)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCreateOrder_WithVoucher_RecordsUsage() {
	ctx := suite.T().Context()
	customer := kernel.NewUUID()
	shop := suite.seedShop(kernel.NewUUID(), 5000)
	product := suite.seedProduct(shop.ID, "Com ga", 50000)
	suite.addToCart(customer, shop.ID, product, 2, 50000)
	v := suite.seedVoucher(shop.ID, "GIAM10", 10, 5)

	create := suite.createOrderHandler()
	created, err := create.Handle(ctx, suite.createOrderCommand(customer, shop.ID, "giam10"))
	suite.Require().NoError(err)
	suite.Equal(int64(10000), created.Discount())
	suite.Equal(int64(95000), created.Total())
	suite.Equal("GIAM10", created.VoucherCode())

	stored, err := suite.factory.Create().VoucherRepository().Get(ctx, v.ID())
	suite.Require().NoError(err)
	suite.Equal(1, stored.CurrentUsage())

	count, err := suite.factory.Create().VoucherUsageRepository().CountByUser(ctx, v.ID(), customer)
	suite.Require().NoError(err)
	suite.Equal(1, count)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAcceptOrder_ConcurrentShippers_OneWins() {
	ctx := suite.T().Context()
	o := suite.seedReadyOrder()

	const contenders = 8
	shippers := make([]*shipper.Shipper, contenders)
	for i := range shippers {
		shippers[i] = suite.seedShipper("S")
	}

	accept := commands.NewAcceptOrderCommandHandler(suite.dispatchUoWs(), suite.notifications(), clock)
	results := make([]error, contenders)
	var wg sync.WaitGroup
	for i, s := range shippers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd, err := commands.NewShipperOrderCommand(s.ID(), o.ID())
			if err != nil {
				results[i] = err
				return
			}
			_, results[i] = accept.Handle(ctx, cmd)
		}()
	}
	wg.Wait()

	winners := 0
	var winner kernel.UUID
	for i, err := range results {
		if err == nil {
			winners++
			winner = shippers[i].ID()
			continue
		}
		suite.Equal(errs.KindConflict, errs.KindOf(err), err.Error())
	}
	suite.Require().Equal(1, winners)

	stored, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Shipping, stored.Status())
	suite.Equal(winner, *stored.ShipperID())

	busy := 0
	for _, s := range shippers {
		current, err := suite.factory.Create().ShipperDirectory().Get(ctx, s.ID())
		suite.Require().NoError(err)
		if current.Status() == shipper.Busy {
			busy++
		}
	}
	suite.Equal(1, busy)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestApplyVoucher_ConcurrentRedemptions_RespectTotalCap() {
	ctx := suite.T().Context()
	shopID := kernel.NewUUID()
	v := suite.seedVoucher(shopID, "FLASH", 10, 3)

	const users = 10
	apply := commands.NewApplyVoucherCommandHandler(suite.voucherUoWs(), clock)
	results := make([]error, users)
	var wg sync.WaitGroup
	for i := range users {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd, err := commands.NewApplyVoucherCommand(v.ID(), kernel.NewUUID(), kernel.NewUUID(), 1000)
			if err != nil {
				results[i] = err
				return
			}
			_, results[i] = apply.Handle(ctx, cmd)
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		suite.ErrorIs(err, voucher.ErrTotalLimitReached)
	}
	suite.Equal(3, succeeded)

	stored, err := suite.factory.Create().VoucherRepository().Get(ctx, v.ID())
	suite.Require().NoError(err)
	suite.Equal(3, stored.CurrentUsage())

	var usages int64
	suite.Require().NoError(suite.database.DB.Table("voucher_usages").Where("voucher_id = ?", v.ID().Bytes()).Count(&usages).Error)
	suite.Equal(int64(3), usages)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestApplyVoucher_ReplayIsIdempotent() {
	ctx := suite.T().Context()
	v := suite.seedVoucher(kernel.NewUUID(), "ONCE", 10, 0)
	cmd, err := commands.NewApplyVoucherCommand(v.ID(), kernel.NewUUID(), kernel.NewUUID(), 1000)
	suite.Require().NoError(err)

	apply := commands.NewApplyVoucherCommandHandler(suite.voucherUoWs(), clock)
	_, err = apply.Handle(ctx, cmd)
	suite.Require().NoError(err)
	replayed, err := apply.Handle(ctx, cmd)
	suite.Require().NoError(err)
	suite.Equal(1, replayed.CurrentUsage())

	release := commands.NewReleaseVoucherUsageCommandHandler(suite.voucherUoWs(), clock)
	releaseCmd, err := commands.NewReleaseVoucherUsageCommand(cmd.VoucherID(), cmd.UserID(), cmd.OrderID())
	suite.Require().NoError(err)
	released, err := release.Handle(ctx, releaseCmd)
	suite.Require().NoError(err)
	suite.True(released)

	stored, err := suite.factory.Create().VoucherRepository().Get(ctx, v.ID())
	suite.Require().NoError(err)
	suite.Zero(stored.CurrentUsage())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestBackfillShipperID_ThroughHandler() {
	ctx := suite.T().Context()
	o := suite.seedReadyOrder()
	suite.Require().NoError(suite.database.DB.Exec(
		"UPDATE orders SET shipper_id = '00000000-0000-0000-0000-000000000000' WHERE id = ?", o.ID().Bytes(),
	).Error)

	backfill := commands.NewBackfillShipperIDCommandHandler(suite.orderUoWs())
	changed, err := backfill.Handle(ctx)
	suite.Require().NoError(err)
	suite.Equal(int64(1), changed)

	changed, err = backfill.Handle(ctx)
	suite.Require().NoError(err)
	suite.Zero(changed)
}

func (suite *UnitOfWorkIntegrationTestSuite) orderUoWs() commands.OrderUoWFactory {
	return orderUoWs(func() commands.OrderUoW { return suite.factory.CreateGorm() })
}

func (suite *UnitOfWorkIntegrationTestSuite) checkoutUoWs() commands.CheckoutUoWFactory {
	return checkoutUoWs(func() commands.CheckoutUoW { return suite.factory.CreateGorm() })
}

func (suite *UnitOfWorkIntegrationTestSuite) dispatchUoWs() commands.DispatchUoWFactory {
	return dispatchUoWs(func() commands.DispatchUoW { return suite.factory.CreateGorm() })
}

func (suite *UnitOfWorkIntegrationTestSuite) voucherUoWs() commands.VoucherUoWFactory {
	return voucherUoWs(func() commands.VoucherUoW { return suite.factory.CreateGorm() })
}

func (suite *UnitOfWorkIntegrationTestSuite) notifications() commands.Notifications {
	return commands.NewNotifications(suite.publisher, nil, nil)
}

func (suite *UnitOfWorkIntegrationTestSuite) createOrderHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		suite.checkoutUoWs(),
		suite.shops,
		suite.products,
		commands.NewVoucherLedger(suite.voucherUoWs(), clock),
		suite.notifications(),
		nil,
		clock,
	)
}

func (suite *UnitOfWorkIntegrationTestSuite) createOrderCommand(customer, shopID kernel.UUID, code string) commands.CreateOrderCommand {
	cmd, err := commands.NewCreateOrderCommand(customer, shopID, order.Address{
		RecipientName: "Lan",
		Phone:         "0900000000",
		Street:        "5 Hang Bai",
		City:          "Ha Noi",
	}, "", order.PaymentCOD, code)
	suite.Require().NoError(err)
	return cmd
}

func (suite *UnitOfWorkIntegrationTestSuite) seedShop(owner kernel.UUID, shipFee int64) catalog.Shop {
	shop := catalog.Shop{ID: kernel.NewUUID(), OwnerID: owner, Name: "Quan Ngon", IsOpen: true, ShipFeePerOrder: shipFee}
	suite.Require().NoError(suite.shops.Save(suite.T().Context(), shop))
	return shop
}

func (suite *UnitOfWorkIntegrationTestSuite) seedProduct(shopID kernel.UUID, name string, price int64) catalog.Product {
	product := catalog.Product{ID: kernel.NewUUID(), ShopID: shopID, Name: name, Price: price, IsAvailable: true}
	suite.Require().NoError(suite.products.Save(suite.T().Context(), product))
	return product
}

func (suite *UnitOfWorkIntegrationTestSuite) addToCart(customer, shopID kernel.UUID, p catalog.Product, qty int, price int64) {
	suite.Require().NoError(suite.carts.AddLine(suite.T().Context(), customer, shopID, catalog.CartLine{
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    qty,
		Price:       price,
	}))
}

func (suite *UnitOfWorkIntegrationTestSuite) seedShipper(name string) *shipper.Shipper {
	s, err := shipper.NewShipper(kernel.NewUUID(), name, now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().ShipperDirectory().Add(suite.T().Context(), s))
	return s
}

func (suite *UnitOfWorkIntegrationTestSuite) seedVoucher(shopID kernel.UUID, code string, percent int64, limit int) *voucher.Voucher {
	v, err := voucher.NewVoucher(voucher.Snapshot{
		ID:         kernel.NewUUID(),
		ShopID:     shopID,
		Code:       code,
		Type:       voucher.Percentage,
		Value:      percent,
		UsageLimit: limit,
		CreatedAt:  now.Add(-time.Hour),
	})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().VoucherRepository().Add(suite.T().Context(), v))
	return v
}

func (suite *UnitOfWorkIntegrationTestSuite) seedReadyOrder() *order.Order {
	item, err := order.NewItem(kernel.NewUUID(), "Bun cha", 2, 25000)
	suite.Require().NoError(err)
	o, err := order.NewOrder(order.NewOrderParams{
		ID:            kernel.NewUUID(),
		OrderNumber:   order.NewOrderNumber(now),
		CustomerID:    kernel.NewUUID(),
		ShopID:        kernel.NewUUID(),
		ShopName:      "Quan Ngon",
		Items:         []order.Item{item},
		ShipFee:       5000,
		PaymentMethod: order.PaymentCOD,
		DeliveryAddress: order.Address{
			RecipientName: "Lan", Phone: "0900000000", Street: "5 Hang Bai", City: "Ha Noi",
		},
		Now: now,
	})
	suite.Require().NoError(err)
	suite.Require().NoError(o.Confirm(now))
	suite.Require().NoError(o.StartPreparing(now))
	suite.Require().NoError(o.MarkReady(now))
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(suite.T().Context(), o))
	return o
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
