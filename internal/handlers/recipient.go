package handlers

import (
	"github.com/gofiber/fiber/v2"

	"quickpay/internal/services/recipient"
	"quickpay/internal/utils/response"
)

// RecipientHandler exposes recipient search.
type RecipientHandler struct {
	service recipient.Service
}

func NewRecipientHandler(s recipient.Service) *RecipientHandler {
	return &RecipientHandler{service: s}
}

// Search handles GET /api/recipients/search?q=.
func (h *RecipientHandler) Search(c *fiber.Ctx) error {
	userID, ok, err := callerID(c)
	if !ok {
		return err
	}

	results, err := h.service.Search(c.UserContext(), c.Query("q"), userID)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "ok", results)
}
