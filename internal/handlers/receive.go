package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"quickpay/internal/domain/address"
	"quickpay/internal/repositories"
	"quickpay/internal/services/receive"
	"quickpay/internal/services/wallet"
	"quickpay/internal/utils/response"
)

// ReceiveHandler serves the caller's own payment codes.
type ReceiveHandler struct {
	views wallet.Service
	codes receive.Service
}

func NewReceiveHandler(views wallet.Service, codes receive.Service) *ReceiveHandler {
	return &ReceiveHandler{views: views, codes: codes}
}

// GetCodes handles GET /api/receive.
func (h *ReceiveHandler) GetCodes(c *fiber.Ctx) error {
	userID, ok, err := callerID(c)
	if !ok {
		return err
	}

	profile, err := h.views.GetProfile(c.UserContext(), userID)
	if err != nil {
		return profileError(c, err)
	}
	return response.Success(c, "ok", h.codes.Codes(profile))
}

// GetCode handles GET /api/receive/:scheme.
func (h *ReceiveHandler) GetCode(c *fiber.Ctx) error {
	userID, ok, err := callerID(c)
	if !ok {
		return err
	}

	profile, err := h.views.GetProfile(c.UserContext(), userID)
	if err != nil {
		return profileError(c, err)
	}

	code, err := h.codes.Code(profile, address.Scheme(c.Params("scheme")))
	switch {
	case errors.Is(err, receive.ErrUnknownScheme):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, receive.ErrSchemeNotConfigured):
		return response.NotFound(c, err.Error())
	case errors.Is(err, receive.ErrInvalidBitcoinAddress):
		return response.Error(c, fiber.StatusUnprocessableEntity, err.Error())
	case err != nil:
		return response.ServerError(c, "internal server error")
	}
	return response.Success(c, "ok", code)
}

func profileError(c *fiber.Ctx, err error) error {
	if errors.Is(err, repositories.ErrProfileNotFound) {
		return response.NotFound(c, "profile not found")
	}
	return response.ServerError(c, "internal server error")
}
