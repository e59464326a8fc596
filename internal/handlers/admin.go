package handlers

import (
	"aegis/internal/logger"
	"aegis/internal/services/stats"
	"aegis/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AdminHandler struct {
	stats stats.Service
	log   *zap.Logger
}

func NewAdminHandler(stats stats.Service, log *zap.Logger) *AdminHandler {
	return &AdminHandler{stats: stats, log: logger.Named(log, "admin_handler")}
}

// GetStats handles GET /api/admin/stats.
func (h *AdminHandler) GetStats(c *fiber.Ctx) error {
	overview, err := h.stats.Overview(c.UserContext())
	if err != nil {
		return response.DomainError(c, err, h.log)
	}
	return response.Success(c, fiber.Map{"stats": overview})
}
