package handlers

import (
	"github.com/gofiber/fiber/v2"

	"quickpay/internal/utils"
	"quickpay/internal/utils/response"
)

// callerID returns the authenticated user's id, writing a 401 when absent.
func callerID(c *fiber.Ctx) (string, bool, error) {
	claims, err := utils.GetUserClaims(c)
	if err != nil || claims.UserID == "" {
		return "", false, response.Unauthorized(c)
	}
	return claims.UserID, true, nil
}
