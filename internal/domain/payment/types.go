// Package payment holds the types shared by the recipient resolver, the
// transfer orchestrator and the stores behind them.
package payment

import (
	"github.com/shopspring/decimal"

	"quickpay/internal/models"
)

// Method is the settlement rail of a transfer.
type Method string

const (
	MethodBank    Method = "bank"
	MethodBitcoin Method = "bitcoin"
)

// AddressField names the single directory column a transfer addresses.
type AddressField string

const (
	FieldWalletID       AddressField = "wallet_id"
	FieldEmail          AddressField = "email"
	FieldUPIID          AddressField = "upi_id"
	FieldBitcoinAddress AddressField = "bitcoin_address"

	// FieldUserID is the directory key of a profile. It is used to fetch a
	// candidate the caller picked, never as a transfer selector.
	FieldUserID AddressField = "user_id"
)

// RecipientCandidate is a read-only directory entry.
type RecipientCandidate struct {
	UserID      string  `json:"user_id"`
	DisplayName string  `json:"display_name"`
	Email       *string `json:"email,omitempty"`
	UPIID       *string `json:"upi_id,omitempty"`
	WalletID    string  `json:"wallet_id"`
	CreatedRank uint    `json:"-"`
}

// CandidateFromProfile projects a directory profile.
func CandidateFromProfile(p *models.Profile) RecipientCandidate {
	return RecipientCandidate{
		UserID:      p.UserID,
		DisplayName: p.DisplayName,
		Email:       nonEmpty(p.Email),
		UPIID:       nonEmpty(p.UPIID),
		WalletID:    p.WalletID,
		CreatedRank: p.ID,
	}
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// ResolvedRecipient is a candidate plus the one field used to address it.
type ResolvedRecipient struct {
	Candidate RecipientCandidate
	Field     AddressField
	Value     string
}

// Resolve picks the addressing field by precedence wallet id, then email,
// then UPI handle. ok is false when the candidate carries none of them.
func Resolve(c RecipientCandidate) (ResolvedRecipient, bool) {
	switch {
	case c.WalletID != "":
		return ResolvedRecipient{Candidate: c, Field: FieldWalletID, Value: c.WalletID}, true
	case c.Email != nil && *c.Email != "":
		return ResolvedRecipient{Candidate: c, Field: FieldEmail, Value: *c.Email}, true
	case c.UPIID != nil && *c.UPIID != "":
		return ResolvedRecipient{Candidate: c, Field: FieldUPIID, Value: *c.UPIID}, true
	}
	return ResolvedRecipient{Candidate: c}, false
}

// TransferRequest is the single lookup key plus amount sent to the ledger.
// At most one of the Recipient* fields is non-nil.
type TransferRequest struct {
	SenderID          string          `json:"sender_id"`
	RecipientWalletID *string         `json:"recipient_wallet_id"`
	RecipientEmail    *string         `json:"recipient_email"`
	RecipientUPI      *string         `json:"recipient_upi"`
	Amount            decimal.Decimal `json:"amount"`
	Method            Method          `json:"method"`
	IdempotencyKey    string          `json:"idempotency_key"`
}

// Recipient returns the populated lookup field and its value.
func (r TransferRequest) Recipient() (AddressField, string, bool) {
	switch {
	case r.RecipientWalletID != nil:
		return FieldWalletID, *r.RecipientWalletID, true
	case r.RecipientEmail != nil:
		return FieldEmail, *r.RecipientEmail, true
	case r.RecipientUPI != nil:
		return FieldUPIID, *r.RecipientUPI, true
	}
	return "", "", false
}

// RecipientFieldCount reports how many lookup fields are set.
func (r TransferRequest) RecipientFieldCount() int {
	n := 0
	for _, f := range []*string{r.RecipientWalletID, r.RecipientEmail, r.RecipientUPI} {
		if f != nil {
			n++
		}
	}
	return n
}

// LedgerResponse is the structured payload of a ledger transfer call. A
// transport failure is reported as an error instead.
type LedgerResponse struct {
	Success         bool             `json:"success"`
	RecipientName   string           `json:"recipient_name,omitempty"`
	RecipientUserID string           `json:"recipient_user_id,omitempty"`
	NewBalance      *decimal.Decimal `json:"new_balance,omitempty"`
	Error           string           `json:"error,omitempty"`
}
