package handlers

import (
	"encoding/json"

	apperrors "aegis/internal/errors"
	"aegis/internal/logger"
	"aegis/internal/services/transfer"
	"aegis/internal/utils/response"
	"aegis/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TransferHandler exposes the send endpoint.
type TransferHandler struct {
	service transfer.Service
	log     *zap.Logger
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(s transfer.Service, log *zap.Logger) *TransferHandler {
	return &TransferHandler{service: s, log: logger.Named(log, "transfer_handler")}
}

// Send handles POST /api/transfer/send.
func (h *TransferHandler) Send(c *fiber.Ctx) error {
	var req struct {
		Recipient string          `json:"recipient"`
		Amount    json.RawMessage `json:"amount"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Recipient is checked first so a request missing both reports the recipient.
	if _, err := validation.ValidateRecipient(req.Recipient); err != nil {
		return response.DomainError(c, err, h.log)
	}
	amount, err := validation.ParseAmount(req.Amount)
	if err != nil {
		return response.DomainError(c, err, h.log)
	}

	result, err := h.service.Send(c.UserContext(), transfer.SendRequest{
		Recipient: req.Recipient,
		Amount:    amount,
	})
	if err != nil {
		return response.DomainError(c, err, h.log)
	}

	return response.Success(c, fiber.Map{
		"txId":        result.TxID,
		"amount":      result.Amount,
		"fee":         result.Fee,
		"networkFee":  result.NetworkFee,
		"devFundFee":  result.DevFundFee,
		"finalAmount": result.FinalAmount,
		"recipient":   result.Recipient,
	})
}

// Get handles GET /api/transfer/:txId.
func (h *TransferHandler) Get(c *fiber.Ctx) error {
	txID := c.Params("txId")
	if txID == "" {
		return response.DomainError(c, apperrors.ErrTransactionNotFound, h.log)
	}

	tx, err := h.service.Get(c.UserContext(), txID)
	if err != nil {
		return response.DomainError(c, err, h.log)
	}
	return response.Success(c, fiber.Map{"transaction": tx})
}
