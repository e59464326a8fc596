// Package main is the entry point for the API server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aegis/internal/config"
	"aegis/internal/handlers"
	"aegis/internal/logger"
	"aegis/internal/models"
	"aegis/internal/repositories"
	"aegis/internal/repositories/cache"
	"aegis/internal/routes"
	"aegis/internal/services/auth"
	"aegis/internal/services/devfund"
	"aegis/internal/services/fee"
	"aegis/internal/services/stats"
	"aegis/internal/services/transfer"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.Init(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx := context.Background()

	store, err := repositories.OpenStore(cfg, zl)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			zl.Warn("failed to close database connection", zap.Error(err))
		}
	}()

	health := map[string]handlers.HealthCheck{}
	if store.DB != nil {
		stop := make(chan struct{})
		defer close(stop)
		go repositories.LogPoolStats(store.DB, zl, time.Minute, stop)

		health["database"] = func(ctx context.Context) error {
			sqlDB, err := store.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}

	var policyCache repositories.PolicyCache = repositories.NoopPolicyCache{}
	if cfg.Redis.Enabled {
		cacheService := cache.NewCacheService(cache.NewRedisClient(&cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}), cfg.Redis.TTL)
		defer func() {
			if err := cacheService.Close(); err != nil {
				zl.Warn("failed to close redis connection", zap.Error(err))
			}
		}()

		if err := cacheService.Ping(ctx); err != nil {
			zl.Warn("redis unavailable, fee policy reads go to the store", zap.Error(err))
		} else {
			// Drop a policy cached by a previous run; the store is authoritative.
			if err := cacheService.InvalidateFeePolicy(ctx); err != nil {
				zl.Warn("failed to clear cached fee policy", zap.Error(err))
			}
			zl.Info("redis connected", zap.String("host", cfg.Redis.Host))
		}
		policyCache = cacheService
		health["redis"] = cacheService.Ping
	}

	feeService := fee.NewService(store.FeePolicies, policyCache, zl)
	if err := feeService.Initialize(ctx, models.FeePolicy{
		Enabled:        cfg.Fees.Enabled,
		Percentage:     cfg.Fees.Percentage,
		MinFee:         cfg.Fees.MinFee,
		MaxFee:         cfg.Fees.MaxFee,
		DevFundAddress: cfg.Fees.DevFundAddress,
	}); err != nil {
		return err
	}

	ledger := devfund.NewService(store.DevFund, devfund.Config{
		MaxAttempts:     cfg.Retry.MaxAttempts,
		InitialInterval: cfg.Retry.InitialInterval,
	}, zl)
	if err := ledger.Initialize(ctx, models.DevFundLedger{
		Balance:           cfg.DevFund.Balance,
		TotalCollected:    cfg.DevFund.TotalCollected,
		WithdrawalAddress: cfg.DevFund.WithdrawalAddress,
	}); err != nil {
		return err
	}

	authService := auth.NewService(store.Users, auth.Config{JWTSecret: cfg.JWTSecret}, zl)
	if cfg.StoreDriver == config.StoreDriverMemory && cfg.Admin.Email != "" {
		if _, err := authService.EnsureUser(ctx, cfg.Admin.Email, cfg.Admin.Password, models.RoleAdmin); err != nil {
			return err
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      "aegis",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorHandler: routes.ErrorHandler(zl),
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,HEAD,OPTIONS",
		AllowCredentials: true,
	}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.SetupRoutes(app, routes.Dependencies{
		Auth:              authService,
		Fees:              feeService,
		DevFund:           ledger,
		Transfers:         transfer.NewService(feeService, ledger, store.Transactions, zl),
		Stats:             stats.NewService(store.Transactions, ledger),
		Health:            health,
		Logger:            zl,
		LoginRateLimit:    cfg.LoginRateLimit,
		WithdrawRateLimit: cfg.WithdrawRateLimit,
	})

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server listening", zap.String("port", cfg.Port), zap.String("store", cfg.StoreDriver))
		errCh <- app.Listen(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		zl.Info("shutting down", zap.String("signal", sig.String()))
	}

	return app.ShutdownWithTimeout(10 * time.Second)
}
