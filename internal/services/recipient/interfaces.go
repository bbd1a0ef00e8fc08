package recipient

import (
	"context"

	"quickpay/internal/domain/address"
	"quickpay/internal/domain/payment"
)

// AccountDirectory is the external store of payable accounts.
type AccountDirectory interface {
	// Search runs a case-insensitive LIKE pattern over email, UPI handle and
	// wallet id, skipping excludeUserID, returning at most limit rows.
	Search(ctx context.Context, pattern, excludeUserID string, limit int) ([]payment.RecipientCandidate, error)

	// Lookup is an exact match on one field. It returns nil, nil when no
	// account matches.
	Lookup(ctx context.Context, field payment.AddressField, value string) (*payment.RecipientCandidate, error)
}

// Service finds the account a payment should go to.
type Service interface {
	Search(ctx context.Context, query, excludeUserID string) ([]payment.RecipientCandidate, error)
	ResolveTarget(ctx context.Context, target address.PaymentTarget, excludeUserID string) (*Resolution, error)
	Candidate(ctx context.Context, userID, excludeUserID string) (*payment.RecipientCandidate, error)
}

// Resolution is the outcome of resolving a decoded target. Bank and
// unclassified targets come back Unresolved with the raw address for display.
type Resolution struct {
	Target     address.PaymentTarget
	Candidate  *payment.RecipientCandidate
	Unresolved bool
	RawAddress string
}
