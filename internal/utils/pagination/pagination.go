package pagination

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// ParseLimit reads the "limit" query parameter, falling back to def when it
// is missing or not a positive integer, and capping it at MaxLimit.
func ParseLimit(c *fiber.Ctx, def int) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit <= 0 {
		return def
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
