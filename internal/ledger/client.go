// Package ledger talks to a remote ledger service over HTTP.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"quickpay/internal/domain/payment"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	transferPath      = "/transfer"
	amountPlaces      = 2
)

var ErrNoStructuredResponse = errors.New("ledger returned no structured response")

// Client calls POST <baseURL>/transfer once per request. It never retries;
// a failed call means the outcome is unknown.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *fiber.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	httpClient := &fiber.Client{
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		http:    httpClient,
	}
}

type transferPayload struct {
	SenderID          string  `json:"sender_id"`
	RecipientWalletID *string `json:"recipient_wallet_id"`
	RecipientEmail    *string `json:"recipient_email"`
	RecipientUPI      *string `json:"recipient_upi"`
	Amount            string  `json:"amount"`
	Method            string  `json:"method"`
}

type transferReply struct {
	Success         *bool            `json:"success"`
	RecipientName   string           `json:"recipient_name"`
	RecipientUserID string           `json:"recipient_user_id"`
	NewBalance      *decimal.Decimal `json:"new_balance"`
	Error           string           `json:"error"`
}

func (c *Client) Transfer(ctx context.Context, req payment.TransferRequest) (*payment.LedgerResponse, error) {
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout || timeout <= 0 {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return nil, context.DeadlineExceeded
	}

	agent := c.http.Post(c.baseURL + transferPath).
		Set(IdempotencyHeader, req.IdempotencyKey).
		JSON(transferPayload{
			SenderID:          req.SenderID,
			RecipientWalletID: req.RecipientWalletID,
			RecipientEmail:    req.RecipientEmail,
			RecipientUPI:      req.RecipientUPI,
			Amount:            req.Amount.StringFixed(amountPlaces),
			Method:            string(req.Method),
		}).
		Timeout(timeout)

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("calling ledger: %w", errors.Join(errs...))
	}

	resp, err := decodeReply(code, body)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"status":          code,
			"idempotency_key": req.IdempotencyKey,
		}).Warn("unusable ledger reply")
		return nil, err
	}
	return resp, nil
}

// decodeReply accepts 2xx and 4xx bodies that carry a success flag. Anything
// else leaves the outcome unknown.
func decodeReply(code int, body []byte) (*payment.LedgerResponse, error) {
	if code < 200 || (code >= 300 && code < 400) || code >= 500 {
		return nil, fmt.Errorf("%w: status %d", ErrNoStructuredResponse, code)
	}

	var reply transferReply
	if err := json.Unmarshal(body, &reply); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoStructuredResponse, err)
	}
	if reply.Success == nil {
		return nil, fmt.Errorf("%w: missing success flag", ErrNoStructuredResponse)
	}

	return &payment.LedgerResponse{
		Success:         *reply.Success,
		RecipientName:   reply.RecipientName,
		RecipientUserID: reply.RecipientUserID,
		NewBalance:      reply.NewBalance,
		Error:           reply.Error,
	}, nil
}
