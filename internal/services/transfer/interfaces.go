package transfer

import (
	"context"

	"quickpay/internal/domain/payment"
)

// LedgerService is the sole mutator of balances. Transfer must debit and
// credit atomically and be idempotent on the request's IdempotencyKey. A
// non-nil error means no structured response arrived and the outcome is
// unknown.
type LedgerService interface {
	Transfer(ctx context.Context, req payment.TransferRequest) (*payment.LedgerResponse, error)
}

// Service turns a chosen recipient and an amount into exactly one ledger
// call per user action.
type Service interface {
	BuildRequest(senderID string, recipient payment.RecipientCandidate, amount, idempotencyKey string) (payment.TransferRequest, error)
	Execute(ctx context.Context, req payment.TransferRequest) Result
}
