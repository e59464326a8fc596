// Package response writes the JSON envelope shared by every endpoint:
// {"success": true, ...} on success and
// {"success": false, "error": "...", "code": "..."} on failure.
package response

import (
	"errors"

	apperrors "aegis/internal/errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const internalErrorMessage = "Internal server error"

// Success writes a 200 envelope with fields merged into the top level.
func Success(c *fiber.Ctx, fields fiber.Map) error {
	return Respond(c, fiber.StatusOK, fields)
}

// Respond writes a success envelope with the given status.
func Respond(c *fiber.Ctx, status int, fields fiber.Map) error {
	body := fiber.Map{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	return c.Status(status).JSON(body)
}

func Error(c *fiber.Ctx, status int, message, code string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
		"code":    code,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message, "BAD_REQUEST")
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message, "UNAUTHORIZED")
}

func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message, "FORBIDDEN")
}

func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message, "NOT_FOUND")
}

func ServerError(c *fiber.Ctx) error {
	return Error(c, fiber.StatusInternalServerError, internalErrorMessage, apperrors.CodeInternal)
}

// DomainError writes err with the status its code maps to. Errors that are
// not domain errors are logged and reported as a generic 500.
func DomainError(c *fiber.Ctx, err error, log *zap.Logger) error {
	var de *apperrors.DomainError
	if !errors.As(err, &de) {
		if log != nil {
			log.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err))
		}
		return ServerError(c)
	}
	return Error(c, StatusFor(de), de.Message, de.Code)
}

// StatusFor maps a domain error code to an HTTP status.
func StatusFor(de *apperrors.DomainError) int {
	switch de.Code {
	case apperrors.CodeTransactionNotFound:
		return fiber.StatusNotFound
	case apperrors.CodeInvalidCredentials:
		return fiber.StatusUnauthorized
	case apperrors.CodeInternal:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusBadRequest
	}
}
