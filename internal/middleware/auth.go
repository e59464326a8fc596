// Package middleware provides HTTP middleware components for the application.
package middleware

import (
	"errors"
	"strings"

	"aegis/internal/logger"
	"aegis/internal/models"
	"aegis/internal/services/auth"
	"aegis/internal/utils"
	"aegis/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthMiddleware validates bearer tokens and stores the user claims in the
// request context under "claims".
type AuthMiddleware struct {
	authService auth.Service
	log         *zap.Logger
}

func NewAuthMiddleware(authService auth.Service, log *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		log:         logger.Named(log, "auth_middleware"),
	}
}

// Handler checks for:
// - Presence of Authorization header with Bearer token
// - Valid JWT signature and expiry
// - Token version matches current user version
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return response.Unauthorized(c, "missing authorization header")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return response.Unauthorized(c, "invalid authorization format")
	}
	tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

	claims, err := m.authService.ValidateToken(c.UserContext(), tokenString)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrSessionExpired):
			return response.Unauthorized(c, "session expired")
		case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrAccountDisabled):
			return response.Unauthorized(c, "invalid token")
		default:
			m.log.Error("token validation failed", zap.Error(err))
			return response.ServerError(c)
		}
	}

	c.Locals("claims", claims)
	c.Locals("userID", claims.UserID)
	return c.Next()
}

// AdminAuthMiddleware verifies that the request has valid admin claims.
func AdminAuthMiddleware(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return response.Unauthorized(c, "invalid claims")
	}
	if claims.Role != models.RoleAdmin {
		logger.L().Info("admin access denied", zap.Uint("user_id", claims.UserID), zap.String("role", claims.Role))
		return response.Forbidden(c, "Insufficient permissions")
	}
	return c.Next()
}

// HasPermission returns a middleware that checks for a specific permission.
func HasPermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := utils.GetUserClaims(c)
		if err != nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		if !claims.HasPermission(permission) {
			return response.Forbidden(c, "Insufficient permissions")
		}
		return c.Next()
	}
}
