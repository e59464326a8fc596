package handlers

import (
	"encoding/json"

	apperrors "aegis/internal/errors"
	"aegis/internal/logger"
	"aegis/internal/models"
	"aegis/internal/services/fee"
	"aegis/internal/utils/response"
	"aegis/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// FeeHandler exposes fee preview and fee policy administration.
type FeeHandler struct {
	fees fee.Service
	log  *zap.Logger
}

func NewFeeHandler(fees fee.Service, log *zap.Logger) *FeeHandler {
	return &FeeHandler{fees: fees, log: logger.Named(log, "fee_handler")}
}

// Calculate handles POST /api/fee/calculate.
func (h *FeeHandler) Calculate(c *fiber.Ctx) error {
	var req struct {
		Amount json.RawMessage `json:"amount"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.DomainError(c, apperrors.ErrInvalidAmount, h.log)
	}

	amount, err := validation.ParseAmount(req.Amount)
	if err != nil {
		return response.DomainError(c, err, h.log)
	}

	breakdown, err := h.fees.Preview(c.UserContext(), amount)
	if err != nil {
		return response.DomainError(c, err, h.log)
	}
	return response.Success(c, breakdownFields(breakdown))
}

// GetSettings handles GET /api/admin/fees.
func (h *FeeHandler) GetSettings(c *fiber.Ctx) error {
	policy, err := h.fees.Get(c.UserContext())
	if err != nil {
		return response.DomainError(c, err, h.log)
	}
	return response.Success(c, fiber.Map{"feeSettings": policy})
}

type feeSettingsRequest struct {
	Enabled        *bool    `json:"enabled"`
	Percentage     *float64 `json:"percentage"`
	MinFee         *float64 `json:"minFee"`
	MaxFee         *float64 `json:"maxFee"`
	DevFundAddress *string  `json:"devFundAddress"`
}

// toPolicy requires every field to be present; the update replaces the
// whole policy.
func (r feeSettingsRequest) toPolicy() (models.FeePolicy, error) {
	v := validation.New()
	v.Check(r.Enabled != nil, "enabled", "is required")
	v.Check(r.Percentage != nil, "percentage", "is required")
	v.Check(r.MinFee != nil, "minFee", "is required")
	v.Check(r.MaxFee != nil, "maxFee", "is required")
	v.Check(r.DevFundAddress != nil, "devFundAddress", "is required")
	if !v.Valid() {
		return models.FeePolicy{}, apperrors.InvalidFeePolicy(v.FirstError())
	}
	return models.FeePolicy{
		Enabled:        *r.Enabled,
		Percentage:     *r.Percentage,
		MinFee:         *r.MinFee,
		MaxFee:         *r.MaxFee,
		DevFundAddress: *r.DevFundAddress,
	}, nil
}

// UpdateSettings handles POST /api/admin/fees.
func (h *FeeHandler) UpdateSettings(c *fiber.Ctx) error {
	var req feeSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.DomainError(c, apperrors.InvalidFeePolicy("invalid request body"), h.log)
	}

	policy, err := req.toPolicy()
	if err != nil {
		return response.DomainError(c, err, h.log)
	}

	updated, err := h.fees.Update(c.UserContext(), policy)
	if err != nil {
		return response.DomainError(c, err, h.log)
	}
	return response.Success(c, fiber.Map{
		"message":     "Fee settings updated successfully",
		"feeSettings": updated,
	})
}

func breakdownFields(b models.FeeBreakdown) fiber.Map {
	return fiber.Map{
		"amount":      b.Amount,
		"fee":         b.Fee,
		"networkFee":  b.NetworkFee,
		"devFundFee":  b.DevFundFee,
		"finalAmount": b.FinalAmount,
	}
}
