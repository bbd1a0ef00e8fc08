package handlers

import (
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"quickpay/internal/services/recipient"
	"quickpay/internal/services/transfer"
	"quickpay/internal/services/wallet"
	"quickpay/internal/utils/response"
	"quickpay/internal/utils/validation"
)

const (
	IdempotencyHeader    = "Idempotency-Key"
	maxIdempotencyKeyLen = 128
)

// TransferHandler exposes P2P transfer endpoints.
type TransferHandler struct {
	recipients recipient.Service
	transfers  transfer.Service
	views      wallet.Service
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(recipients recipient.Service, transfers transfer.Service, views wallet.Service) *TransferHandler {
	return &TransferHandler{recipients: recipients, transfers: transfers, views: views}
}

// Transfer handles POST /api/transfers. Clients retrying an unknown outcome
// must resend the Idempotency-Key echoed on the first response.
func (h *TransferHandler) Transfer(c *fiber.Ctx) error {
	senderID, ok, err := callerID(c)
	if !ok {
		return err
	}

	var req struct {
		RecipientUserID string `json:"recipient_user_id"`
		Amount          string `json:"amount"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}

	key := c.Get(IdempotencyHeader)
	v := validation.New()
	v.Check(validation.IsUUID(req.RecipientUserID), "recipient_user_id", "must be a user id")
	v.Check(validation.Required(req.Amount), "amount", "is required")
	v.Check(validation.MaxLen(key, maxIdempotencyKeyLen), "Idempotency-Key", "is too long")
	if !v.Valid() {
		return response.ValidationError(c, v.Error())
	}

	ctx := c.UserContext()
	candidate, err := h.recipients.Candidate(ctx, req.RecipientUserID, senderID)
	if err != nil {
		return response.DomainError(c, err)
	}

	transferReq, err := h.transfers.BuildRequest(senderID, *candidate, req.Amount, key)
	if err != nil {
		return response.DomainError(c, err)
	}
	c.Set(IdempotencyHeader, transferReq.IdempotencyKey)

	result := h.transfers.Execute(ctx, transferReq)
	if result.ShouldRefresh {
		recipientID := result.RecipientUserID
		if recipientID == "" {
			recipientID = candidate.UserID
		}
		h.views.Invalidate(ctx, senderID, recipientID)
	}

	if !result.Succeeded() {
		log.WithFields(log.Fields{
			"sender_id":       senderID,
			"idempotency_key": result.IdempotencyKey,
			"kind":            result.Kind,
		}).Info("transfer failed")
		return c.Status(response.StatusFor(result.Kind)).JSON(result)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}
