// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"errors"
	"time"

	"aegis/internal/handlers"
	"aegis/internal/logger"
	"aegis/internal/middleware"
	"aegis/internal/models"
	"aegis/internal/services/auth"
	"aegis/internal/services/devfund"
	"aegis/internal/services/fee"
	"aegis/internal/services/stats"
	"aegis/internal/services/transfer"
	"aegis/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"go.uber.org/zap"
)

// Dependencies are the services the routes are wired to.
type Dependencies struct {
	Auth      auth.Service
	Fees      fee.Service
	DevFund   devfund.Service
	Transfers transfer.Service
	Stats     stats.Service
	Health    map[string]handlers.HealthCheck
	Logger    *zap.Logger

	// Requests per minute per client IP. Zero disables the limiter.
	LoginRateLimit    int
	WithdrawRateLimit int
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, d Dependencies) {
	authHandler := handlers.NewAuthHandler(d.Auth, d.Logger)
	feeHandler := handlers.NewFeeHandler(d.Fees, d.Logger)
	transferHandler := handlers.NewTransferHandler(d.Transfers, d.Logger)
	devFundHandler := handlers.NewDevFundHandler(d.DevFund, d.Logger)
	adminHandler := handlers.NewAdminHandler(d.Stats, d.Logger)
	healthHandler := handlers.NewHealthHandler(d.Health)

	app.Get("/health", healthHandler.Check)

	api := app.Group("/api")

	api.Post("/auth/login", rateLimit(d.LoginRateLimit), authHandler.Login)

	api.Post("/fee/calculate", feeHandler.Calculate)

	transfers := api.Group("/transfer")
	transfers.Post("/send", transferHandler.Send)
	transfers.Get("/:txId", transferHandler.Get)

	setupAdminRoutes(api, d, feeHandler, devFundHandler, adminHandler)
}

func setupAdminRoutes(api fiber.Router, d Dependencies, feeHandler *handlers.FeeHandler, devFundHandler *handlers.DevFundHandler, adminHandler *handlers.AdminHandler) {
	authMiddleware := middleware.NewAuthMiddleware(d.Auth, d.Logger)
	admin := api.Group("/admin", authMiddleware.Handler, middleware.AdminAuthMiddleware)

	read := middleware.HasPermission(models.PermissionReadAdmin)

	admin.Get("/stats", read, adminHandler.GetStats)

	admin.Get("/fees", read, feeHandler.GetSettings)
	admin.Post("/fees", middleware.HasPermission(models.PermissionFeesWrite), feeHandler.UpdateSettings)

	admin.Get("/dev-fund", read, devFundHandler.Get)
	admin.Get("/dev-fund/withdrawals", read, devFundHandler.Withdrawals)
	admin.Post("/dev-fund/withdraw",
		middleware.HasPermission(models.PermissionDevFundWrite),
		rateLimit(d.WithdrawRateLimit),
		devFundHandler.Withdraw,
	)
}

func rateLimit(perMinute int) fiber.Handler {
	if perMinute <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        perMinute,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return response.Error(c, fiber.StatusTooManyRequests,
				"Too many requests. Please try again later.", "RATE_LIMITED")
		},
	})
}

// ErrorHandler renders errors escaping the handlers, such as unknown routes
// or recovered panics, in the shared response envelope.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	log = logger.Named(log, "http")
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return response.Error(c, fe.Code, fe.Message, "HTTP_ERROR")
		}
		return response.DomainError(c, err, log)
	}
}
