package handlers

import (
	"github.com/gofiber/fiber/v2"

	"quickpay/internal/services/wallet"
	"quickpay/internal/utils/pagination"
	"quickpay/internal/utils/response"
)

type WalletHandler struct {
	views wallet.Service
}

func NewWalletHandler(views wallet.Service) *WalletHandler {
	return &WalletHandler{views: views}
}

// GetWallet handles GET /api/wallet.
func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	userID, ok, err := callerID(c)
	if !ok {
		return err
	}

	profile, err := h.views.GetProfile(c.UserContext(), userID)
	if err != nil {
		return profileError(c, err)
	}
	return response.Success(c, "ok", profile)
}

// GetTransactions handles GET /api/transactions?limit=.
func (h *WalletHandler) GetTransactions(c *fiber.Ctx) error {
	userID, ok, err := callerID(c)
	if !ok {
		return err
	}

	limit := pagination.ParseLimit(c)
	txs, err := h.views.GetTransactions(c.UserContext(), userID, limit)
	if err != nil {
		return response.ServerError(c, "failed to load transactions")
	}
	return c.JSON(pagination.Response(txs, limit))
}
