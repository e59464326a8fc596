// Command admin_seed creates the admin account and seeds the fee policy and
// dev-fund ledger rows in PostgreSQL.
package main

import (
	"context"
	"log"

	"aegis/internal/config"
	"aegis/internal/logger"
	"aegis/internal/models"
	"aegis/internal/repositories"
	"aegis/internal/services/auth"
	"aegis/internal/services/devfund"
	"aegis/internal/services/fee"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set in environment")
	}
	if cfg.StoreDriver != config.StoreDriverPostgres {
		log.Fatalf("admin_seed requires STORE_DRIVER=%s", config.StoreDriverPostgres)
	}

	zl, err := logger.Init(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	store, err := repositories.OpenStore(cfg, zl)
	if err != nil {
		zl.Fatal("failed to open store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			zl.Warn("failed to close database connection", zap.Error(err))
		}
	}()

	ctx := context.Background()

	authService := auth.NewService(store.Users, auth.Config{JWTSecret: cfg.JWTSecret}, zl)
	created, err := authService.EnsureUser(ctx, cfg.Admin.Email, cfg.Admin.Password, models.RoleAdmin)
	if err != nil {
		zl.Fatal("failed to create admin user", zap.Error(err))
	}
	if created {
		zl.Info("admin account created", zap.String("email", cfg.Admin.Email))
	} else {
		zl.Info("admin user already exists", zap.String("email", cfg.Admin.Email))
	}

	// The cache is left untouched: the server clears the cached policy on start.
	feeService := fee.NewService(store.FeePolicies, repositories.NoopPolicyCache{}, zl)
	if err := feeService.Initialize(ctx, models.FeePolicy{
		Enabled:        cfg.Fees.Enabled,
		Percentage:     cfg.Fees.Percentage,
		MinFee:         cfg.Fees.MinFee,
		MaxFee:         cfg.Fees.MaxFee,
		DevFundAddress: cfg.Fees.DevFundAddress,
	}); err != nil {
		zl.Fatal("failed to seed fee policy", zap.Error(err))
	}

	ledger := devfund.NewService(store.DevFund, devfund.DefaultConfig(), zl)
	if err := ledger.Initialize(ctx, models.DevFundLedger{
		Balance:           cfg.DevFund.Balance,
		TotalCollected:    cfg.DevFund.TotalCollected,
		WithdrawalAddress: cfg.DevFund.WithdrawalAddress,
	}); err != nil {
		zl.Fatal("failed to seed dev fund ledger", zap.Error(err))
	}
}
