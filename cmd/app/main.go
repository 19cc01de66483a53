package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"marketplace/cmd"
	httpadapter "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/in/http/apidocs"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/redis/catalogcache"
	"marketplace/internal/jobs"
	"marketplace/internal/pkg/logging"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := getConfigs()
	if err := configs.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := logging.NewLogger(configs.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB := mustOpenDatabase(configs, logger)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     configs.RedisAddr,
		Password: configs.RedisPassword,
		DB:       configs.RedisDB,
	})
	defer func() { _ = redisClient.Close() }()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, catalog reads and notifications will degrade", zap.Error(err))
	}

	app := cmd.NewCompositionRoot(configs, gormDB, redisClient, logger)

	if configs.RunBackfillOnStart {
		backfill := app.CreateBackfillShipperIDCommandHandler()
		updated, err := backfill.Handle(ctx)
		if err != nil {
			logger.Error("shipper id backfill failed", zap.Error(err))
		} else {
			logger.Info("shipper id backfill finished", zap.Int64("updated", updated))
		}
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		logger.Fatal("failed to start jobs", zap.Error(err))
	}
	defer jobManager.StopAll()

	startWebServer(ctx, &app, configs, logger)
}

func mustOpenDatabase(configs cmd.Config, logger *zap.Logger) *gorm.DB {
	gormDB, err := gorm.Open(pgdriver.Open(configs.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	if configs.RunMigrations {
		if err := postgres.Migrate(gormDB); err != nil {
			logger.Fatal("failed to migrate database", zap.Error(err))
		}
		logger.Info("database schema migrated")
	}
	return gormDB
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, configs cmd.Config, logger *zap.Logger) {
	docs, err := apidocs.Load(ctx)
	if err != nil {
		logger.Fatal("failed to load api docs", zap.Error(err))
	}

	server := httpadapter.NewServer(app.HTTPHandlers())
	e := httpadapter.NewEcho(server, docs, logging.Component(logger, "http"))

	go func() {
		if err := e.Start(configs.HTTPAddr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server stopped", zap.Error(err))
		}
	}()
	logger.Info("http server started", zap.String("addr", configs.HTTPAddr()))

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", zap.Error(err))
	}
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config := cmd.Config{
		HTTPPort:           goDotEnvVariable("HTTP_PORT"),
		DBHost:             goDotEnvVariable("DB_HOST"),
		DBPort:             goDotEnvVariable("DB_PORT"),
		DBUser:             goDotEnvVariable("DB_USER"),
		DBPassword:         goDotEnvVariable("DB_PASSWORD"),
		DBName:             goDotEnvVariable("DB_NAME"),
		DBSslMode:          goDotEnvVariable("DB_SSLMODE"),
		RedisAddr:          goDotEnvVariable("REDIS_ADDR"),
		RedisPassword:      goDotEnvVariable("REDIS_PASSWORD"),
		RedisDB:            intVariable("REDIS_DB", 0),
		CatalogCacheTTL:    durationVariable("CATALOG_CACHE_TTL", catalogcache.DefaultTTL),
		NotifyPrefix:       stringVariable("NOTIFY_CHANNEL_PREFIX", "marketplace"),
		VoucherExpiryCron:  stringVariable("VOUCHER_EXPIRY_CRON", jobs.DefaultVoucherExpirySpec),
		LogLevel:           stringVariable("LOG_LEVEL", "info"),
		RunMigrations:      boolVariable("RUN_MIGRATIONS", false),
		RunBackfillOnStart: boolVariable("RUN_BACKFILL_ON_START", false),
	}
	return config
}

func goDotEnvVariable(key string) string {
	return os.Getenv(key)
}

func stringVariable(key, fallback string) string {
	if v := goDotEnvVariable(key); v != "" {
		return v
	}
	return fallback
}

func intVariable(key string, fallback int) int {
	v := goDotEnvVariable(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("%s must be an integer: %v", key, err)
	}
	return parsed
}

func durationVariable(key string, fallback time.Duration) time.Duration {
	v := goDotEnvVariable(key)
	if v == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("%s must be a duration such as 60s: %v", key, err)
	}
	return parsed
}

func boolVariable(key string, fallback bool) bool {
	v := goDotEnvVariable(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		log.Fatalf("%s must be true or false: %v", key, err)
	}
	return parsed
}
