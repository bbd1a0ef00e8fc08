package transfer

import (
	"time"

	"github.com/shopspring/decimal"

	domainErrors "quickpay/internal/errors"
)

// Status is the outcome tag of a Result.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

const (
	DefaultLedgerTimeout = 15 * time.Second

	// AmountPlaces is the currency's minor unit.
	AmountPlaces = 2

	declinedFallbackReason = "Transfer failed"
)

// Config holds orchestrator settings.
type Config struct {
	LedgerTimeout time.Duration
}

// Result is produced once per request and is not persisted. On success the
// caller must drop any cached balance and history views (ShouldRefresh). On a
// transport failure the outcome is unknown and the caller should re-read
// account state instead of retrying with a new key (Reconcile).
type Result struct {
	Status               Status            `json:"status"`
	RecipientDisplayName string            `json:"recipient_display_name,omitempty"`
	RecipientUserID      string            `json:"-"`
	NewBalance           *decimal.Decimal  `json:"new_balance,omitempty"`
	Reason               string            `json:"reason,omitempty"`
	Kind                 domainErrors.Kind `json:"kind,omitempty"`
	ShouldRefresh        bool              `json:"should_refresh"`
	Reconcile            bool              `json:"reconcile"`
	IdempotencyKey       string            `json:"idempotency_key"`
}

func (r Result) Succeeded() bool { return r.Status == StatusSuccess }
