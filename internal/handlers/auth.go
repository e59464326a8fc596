package handlers

import (
	"strings"

	"aegis/internal/logger"
	"aegis/internal/services/auth"
	"aegis/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService auth.Service
	log         *zap.Logger
}

func NewAuthHandler(authService auth.Service, log *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: logger.Named(log, "auth_handler")}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return response.BadRequest(c, "Email and password are required")
	}

	result, err := h.authService.Login(c.UserContext(), input.Email, input.Password)
	if err != nil {
		return response.DomainError(c, err, h.log)
	}

	return response.Success(c, fiber.Map{
		"accessToken": result.AccessToken,
		"expiresAt":   result.ExpiresAt,
		"user": fiber.Map{
			"id":    result.User.ID,
			"email": result.User.Email,
			"role":  result.User.Role,
		},
	})
}
