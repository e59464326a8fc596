package handlers

import (
	"encoding/json"
	"fmt"
	"strconv"

	"aegis/internal/logger"
	"aegis/internal/services/devfund"
	"aegis/internal/utils/pagination"
	"aegis/internal/utils/response"
	"aegis/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DevFundHandler exposes the dev-fund ledger to operators.
type DevFundHandler struct {
	ledger devfund.Service
	log    *zap.Logger
}

func NewDevFundHandler(ledger devfund.Service, log *zap.Logger) *DevFundHandler {
	return &DevFundHandler{ledger: ledger, log: logger.Named(log, "devfund_handler")}
}

// Get handles GET /api/admin/dev-fund.
func (h *DevFundHandler) Get(c *fiber.Ctx) error {
	ledger, err := h.ledger.Snapshot(c.UserContext())
	if err != nil {
		return response.DomainError(c, err, h.log)
	}
	return response.Success(c, fiber.Map{"data": ledger})
}

// Withdraw handles POST /api/admin/dev-fund/withdraw.
func (h *DevFundHandler) Withdraw(c *fiber.Ctx) error {
	var req struct {
		Amount  json.RawMessage `json:"amount"`
		Address string          `json:"address"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	amount, err := validation.ParseAmount(req.Amount)
	if err != nil {
		return response.DomainError(c, err, h.log)
	}

	result, err := h.ledger.Withdraw(c.UserContext(), amount, req.Address)
	if err != nil {
		return response.DomainError(c, err, h.log)
	}

	return response.Success(c, fiber.Map{
		"message": fmt.Sprintf("Successfully withdrew %s AEG to %s",
			strconv.FormatFloat(amount, 'f', -1, 64), result.Withdrawal.Address),
		"data":      result.Ledger,
		"reference": result.Withdrawal.Reference,
	})
}

// Withdrawals handles GET /api/admin/dev-fund/withdrawals.
func (h *DevFundHandler) Withdrawals(c *fiber.Ctx) error {
	limit := pagination.ParseLimit(c, pagination.DefaultLimit)

	list, err := h.ledger.Withdrawals(c.UserContext(), limit)
	if err != nil {
		return response.DomainError(c, err, h.log)
	}
	return response.Success(c, fiber.Map{"withdrawals": list})
}
