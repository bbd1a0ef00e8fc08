package pagination

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ParseLimit reads the "limit" query parameter, falling back to DefaultLimit
// for missing or non-positive values and capping at MaxLimit.
func ParseLimit(c *fiber.Ctx) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Response wraps a page of items.
func Response(data interface{}, limit int) fiber.Map {
	return fiber.Map{
		"data": data,
		"meta": fiber.Map{
			"per_page": limit,
		},
	}
}
