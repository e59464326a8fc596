package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	apperrors "aegis/internal/errors"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func call(t *testing.T, h fiber.Handler) (int, map[string]interface{}) {
	t.Helper()
	app := fiber.New()
	app.Get("/", h)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestSuccess(t *testing.T) {
	status, body := call(t, func(c *fiber.Ctx) error {
		return Success(c, fiber.Map{"fee": 1.5})
	})

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, 1.5, body["fee"])
}

func TestDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"invalid amount", apperrors.ErrInvalidAmount, 400, apperrors.CodeInvalidAmount, "Valid amount is required"},
		{"wrapped insufficient funds", fmt.Errorf("withdraw: %w", apperrors.ErrInsufficientFunds), 400, apperrors.CodeInsufficientFunds, "Withdrawal amount exceeds dev fund balance"},
		{"not found", apperrors.ErrTransactionNotFound, 404, apperrors.CodeTransactionNotFound, "transaction not found"},
		{"credentials", apperrors.ErrInvalidCredentials, 401, apperrors.CodeInvalidCredentials, "invalid credentials"},
		{"unknown", errors.New("pq: connection refused"), 500, apperrors.CodeInternal, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := call(t, func(c *fiber.Ctx) error {
				return DomainError(c, tt.err, zap.NewNop())
			})

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.wantCode, body["code"])
			assert.Equal(t, tt.wantMsg, body["error"])
		})
	}
}
