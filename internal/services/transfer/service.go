package transfer

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"quickpay/internal/domain/payment"
	domainErrors "quickpay/internal/errors"
)

type service struct {
	ledger LedgerService
	config Config

	// inflight holds one entry per sender and idempotency key with a ledger
	// call in progress. singleflight drops the entry when the call returns.
	inflight singleflight.Group

	newKey func() string
}

// NewService creates a transfer orchestrator.
func NewService(ledger LedgerService, config Config) Service {
	if ledger == nil {
		panic("ledger is required")
	}
	if config.LedgerTimeout <= 0 {
		config.LedgerTimeout = DefaultLedgerTimeout
	}
	return &service{
		ledger: ledger,
		config: config,
		newKey: uuid.NewString,
	}
}

// NewIdempotencyKey mints a key for one user-initiated send action.
func NewIdempotencyKey() string { return uuid.NewString() }

func (s *service) BuildRequest(senderID string, recipient payment.RecipientCandidate, amount, idempotencyKey string) (payment.TransferRequest, error) {
	amt, err := ParseAmount(amount)
	if err != nil {
		return payment.TransferRequest{}, err
	}

	resolved, ok := payment.Resolve(recipient)
	if !ok {
		return payment.TransferRequest{}, domainErrors.ErrRecipientNotFound.WithMessage("recipient has no payable identifier")
	}

	if idempotencyKey == "" {
		idempotencyKey = s.newKey()
	}

	req := payment.TransferRequest{
		SenderID:       senderID,
		Amount:         amt,
		Method:         payment.MethodBank,
		IdempotencyKey: idempotencyKey,
	}
	value := resolved.Value
	switch resolved.Field {
	case payment.FieldWalletID:
		req.RecipientWalletID = &value
	case payment.FieldEmail:
		req.RecipientEmail = &value
	case payment.FieldUPIID:
		req.RecipientUPI = &value
	}
	return req, nil
}

func (s *service) Execute(ctx context.Context, req payment.TransferRequest) Result {
	if err := validateRequest(req); err != nil {
		return failure(err, req.IdempotencyKey)
	}

	led := false
	v, _, _ := s.inflight.Do(flightKey(req), func() (interface{}, error) {
		led = true
		return flight{req: req, result: s.callLedger(ctx, req)}, nil
	})
	f := v.(flight)
	if led {
		return f.result
	}

	logger := log.WithFields(log.Fields{
		"idempotency_key": req.IdempotencyKey,
		"sender_id":       req.SenderID,
	})
	if !sameTransfer(f.req, req) {
		logger.Warn("idempotency key reused for a different transfer")
		return failure(domainErrors.ErrInvalidRequest.WithMessage("idempotency key already used for a different transfer"), req.IdempotencyKey)
	}
	logger.Info("transfer joined an in-flight call")
	return f.result
}

// flight is what the leader of an in-flight call hands to its joiners.
type flight struct {
	req    payment.TransferRequest
	result Result
}

func flightKey(req payment.TransferRequest) string {
	return req.SenderID + "\x00" + req.IdempotencyKey
}

// sameTransfer reports whether a and b move the same amount to the same
// recipient over the same rail.
func sameTransfer(a, b payment.TransferRequest) bool {
	af, av, _ := a.Recipient()
	bf, bv, _ := b.Recipient()
	return af == bf && av == bv && a.Method == b.Method && a.Amount.Equal(b.Amount)
}

func (s *service) callLedger(ctx context.Context, req payment.TransferRequest) Result {
	logger := log.WithFields(log.Fields{
		"idempotency_key": req.IdempotencyKey,
		"sender_id":       req.SenderID,
		"amount":          req.Amount.StringFixed(AmountPlaces),
		"method":          req.Method,
	})

	// The ledger call outlives the caller's context so a departing client
	// cannot abort a debit half way.
	ledgerCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.LedgerTimeout)
	defer cancel()

	start := time.Now()
	resp, err := s.ledger.Transfer(ledgerCtx, req)
	logger = logger.WithField("duration", time.Since(start))

	if err != nil || resp == nil {
		if err == nil {
			err = errors.New("ledger returned no response")
		}
		logger.WithError(err).Error("ledger transfer outcome unknown")
		return Result{
			Status:         StatusFailure,
			Reason:         domainErrors.ErrTransportFailure.Message,
			Kind:           domainErrors.KindTransportFailure,
			Reconcile:      true,
			IdempotencyKey: req.IdempotencyKey,
		}
	}

	if !resp.Success {
		reason := resp.Error
		if reason == "" {
			reason = declinedFallbackReason
		}
		logger.WithField("reason", reason).Info("ledger declined transfer")
		return Result{
			Status:         StatusFailure,
			Reason:         reason,
			Kind:           domainErrors.KindLedgerDeclined,
			IdempotencyKey: req.IdempotencyKey,
		}
	}

	logger.WithField("recipient", resp.RecipientName).Info("transfer settled")
	return Result{
		Status:               StatusSuccess,
		RecipientDisplayName: resp.RecipientName,
		RecipientUserID:      resp.RecipientUserID,
		NewBalance:           resp.NewBalance,
		ShouldRefresh:        true,
		IdempotencyKey:       req.IdempotencyKey,
	}
}

func validateRequest(req payment.TransferRequest) error {
	if req.IdempotencyKey == "" {
		return domainErrors.ErrInvalidRequest.WithMessage("idempotency key is required")
	}
	if req.RecipientFieldCount() != 1 {
		return domainErrors.ErrInvalidRequest.WithMessage("exactly one recipient identifier is required")
	}
	if !req.Amount.IsPositive() || !req.Amount.Equal(req.Amount.Round(AmountPlaces)) {
		return domainErrors.ErrInvalidAmount
	}
	if req.Method != payment.MethodBank {
		return domainErrors.ErrInvalidRequest.WithMessage("unsupported transfer method")
	}
	return nil
}

func failure(err error, key string) Result {
	var de *domainErrors.DomainError
	if domainErrors.As(err, &de) {
		return Result{Status: StatusFailure, Reason: de.Message, Kind: de.Kind, IdempotencyKey: key}
	}
	return Result{Status: StatusFailure, Reason: err.Error(), Kind: domainErrors.KindInvalidRequest, IdempotencyKey: key}
}
