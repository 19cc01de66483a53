package cmd

import (
	httpadapter "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/payments"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/catalogrepo"
	"marketplace/internal/adapters/out/redis/catalogcache"
	"marketplace/internal/adapters/out/redis/notifier"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/jobs"
	"marketplace/internal/pkg/logging"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *zap.Logger
	clock      kernel.Clock

	shops         *catalogcache.ShopCache
	products      *catalogcache.ProductCache
	notifications commands.Notifications
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, redisClient *redis.Client, logger *zap.Logger) CompositionRoot {
	if logger == nil {
		logger = zap.NewNop()
	}
	cacheLogger := logging.Component(logger, "catalog_cache")

	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		clock:      kernel.SystemClock,

		shops: catalogcache.NewShopCache(catalogrepo.NewGormShopRepository(gormDB),
			redisClient, configs.NotifyPrefix, configs.CatalogCacheTTL, cacheLogger),
		products: catalogcache.NewProductCache(catalogrepo.NewGormProductRepository(gormDB),
			redisClient, configs.NotifyPrefix, configs.CatalogCacheTTL, cacheLogger),
		notifications: commands.NewNotifications(
			notifier.NewRedisPublisher(redisClient, configs.NotifyPrefix),
			payments.NewLoggingRefundRequester(logging.Component(logger, "refunds")),
			logging.Component(logger, "notifications"),
		),
	}
}

func (c *CompositionRoot) orderUoWs() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) checkoutUoWs() commands.CheckoutUoWFactory {
	return FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) dispatchUoWs() commands.DispatchUoWFactory {
	return FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) voucherUoWs() commands.VoucherUoWFactory {
	return FuncVoucherUoWFactory(func() commands.VoucherUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) reviewUoWs() commands.ReviewUoWFactory {
	return FuncReviewUoWFactory(func() commands.ReviewUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		c.checkoutUoWs(),
		c.shops,
		c.products,
		commands.NewVoucherLedger(c.voucherUoWs(), c.clock),
		c.notifications,
		logging.Component(c.logger, "checkout"),
		c.clock,
	)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWs(), c.shops, c.notifications, c.clock)
}

func (c *CompositionRoot) CreateConfirmOrderCommandHandler() commands.ShopOrderCommandHandler {
	return commands.NewConfirmOrderCommandHandler(c.orderUoWs(), c.shops, c.notifications, c.clock)
}

func (c *CompositionRoot) CreateMarkPreparingCommandHandler() commands.ShopOrderCommandHandler {
	return commands.NewMarkPreparingCommandHandler(c.orderUoWs(), c.shops, c.notifications, c.clock)
}

func (c *CompositionRoot) CreateMarkReadyCommandHandler() commands.ShopOrderCommandHandler {
	return commands.NewMarkReadyCommandHandler(c.orderUoWs(), c.shops, c.notifications, c.clock)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	return commands.NewAcceptOrderCommandHandler(c.dispatchUoWs(), c.notifications, c.clock)
}

func (c *CompositionRoot) CreateMarkDeliveredCommandHandler() commands.MarkDeliveredCommandHandler {
	return commands.NewMarkDeliveredCommandHandler(c.dispatchUoWs(), c.notifications, c.clock)
}

func (c *CompositionRoot) CreateCreateReviewCommandHandler() commands.CreateReviewCommandHandler {
	return commands.NewCreateReviewCommandHandler(c.reviewUoWs(), c.clock)
}

func (c *CompositionRoot) CreateReplyReviewCommandHandler() commands.ReplyReviewCommandHandler {
	return commands.NewReplyReviewCommandHandler(c.reviewUoWs(), c.shops, c.clock)
}

func (c *CompositionRoot) CreateBackfillShipperIDCommandHandler() commands.BackfillShipperIDCommandHandler {
	return commands.NewBackfillShipperIDCommandHandler(c.orderUoWs())
}

func (c *CompositionRoot) CreateExpireVouchersCommandHandler() commands.ExpireVouchersCommandHandler {
	return commands.NewExpireVouchersCommandHandler(c.voucherUoWs(), c.clock)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB, c.shops)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB, c.shops)
}

func (c *CompositionRoot) CreateGetVoucherUsageQueryHandler() queries.GetVoucherUsageQueryHandler {
	return queries.NewGetVoucherUsageQueryHandler(c.gormDB)
}

// HTTPHandlers collects every use case the HTTP server exposes.
func (c *CompositionRoot) HTTPHandlers() httpadapter.Handlers {
	createOrder := c.CreateCreateOrderCommandHandler()
	cancelOrder := c.CreateCancelOrderCommandHandler()
	confirmOrder := c.CreateConfirmOrderCommandHandler()
	markPreparing := c.CreateMarkPreparingCommandHandler()
	markReady := c.CreateMarkReadyCommandHandler()
	acceptOrder := c.CreateAcceptOrderCommandHandler()
	markDelivered := c.CreateMarkDeliveredCommandHandler()
	createReview := c.CreateCreateReviewCommandHandler()
	replyReview := c.CreateReplyReviewCommandHandler()
	backfill := c.CreateBackfillShipperIDCommandHandler()
	expire := c.CreateExpireVouchersCommandHandler()

	return httpadapter.Handlers{
		CreateOrder:       &createOrder,
		CancelOrder:       &cancelOrder,
		ConfirmOrder:      &confirmOrder,
		MarkPreparing:     &markPreparing,
		MarkReady:         &markReady,
		AcceptOrder:       &acceptOrder,
		MarkDelivered:     &markDelivered,
		CreateReview:      &createReview,
		ReplyReview:       &replyReview,
		BackfillShipperID: &backfill,
		ExpireVouchers:    &expire,

		ListOrders:      c.CreateListOrdersQueryHandler(),
		GetOrder:        c.CreateGetOrderQueryHandler(),
		GetVoucherUsage: c.CreateGetVoucherUsageQueryHandler(),
	}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	expire := c.CreateExpireVouchersCommandHandler()
	return jobs.NewJobManager(jobs.Config{VoucherExpirySpec: c.configs.VoucherExpiryCron}, &expire, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncDispatchUoWFactory func() commands.DispatchUoW

func (f FuncDispatchUoWFactory) Create() commands.DispatchUoW {
	return f()
}

type FuncVoucherUoWFactory func() commands.VoucherUoW

func (f FuncVoucherUoWFactory) Create() commands.VoucherUoW {
	return f()
}

type FuncReviewUoWFactory func() commands.ReviewUoW

func (f FuncReviewUoWFactory) Create() commands.ReviewUoW {
	return f()
}
