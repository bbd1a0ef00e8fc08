package handlers

import (
	"github.com/gofiber/fiber/v2"

	"quickpay/internal/services/scan"
	"quickpay/internal/utils/response"
	"quickpay/internal/utils/validation"
)

const maxPayloadLength = 2048

// ScanHandler turns scanned codes into send intents.
type ScanHandler struct {
	service scan.Service
}

func NewScanHandler(s scan.Service) *ScanHandler {
	return &ScanHandler{service: s}
}

// Scan handles POST /api/scan.
func (h *ScanHandler) Scan(c *fiber.Ctx) error {
	userID, ok, err := callerID(c)
	if !ok {
		return err
	}

	var req struct {
		Payload string `json:"payload"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}

	v := validation.New()
	v.Check(validation.Required(req.Payload), "payload", "is required")
	v.Check(validation.MaxLen(req.Payload, maxPayloadLength), "payload", "is too long")
	if !v.Valid() {
		return response.ValidationError(c, v.Error())
	}

	result, err := h.service.Scan(c.UserContext(), req.Payload, userID)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "ok", result)
}
