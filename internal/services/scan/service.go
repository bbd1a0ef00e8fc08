package scan

import (
	"context"

	log "github.com/sirupsen/logrus"

	"quickpay/internal/domain/address"
	domainErrors "quickpay/internal/errors"
	"quickpay/internal/services/recipient"
)

// Service decodes a scanned payload and looks up who it pays.
type Service interface {
	Scan(ctx context.Context, payload, callerID string) (*Result, error)
}

type service struct {
	recipients recipient.Service
}

func NewService(recipients recipient.Service) Service {
	if recipients == nil {
		panic("recipient service is required")
	}
	return &service{recipients: recipients}
}

// Scan never fails on unrecognized text; it returns an intent that needs a
// method. Addresses with no directory account keep their intent unresolved.
// Only lookup transport failures are returned as errors.
func (s *service) Scan(ctx context.Context, payload, callerID string) (*Result, error) {
	target := address.Decode(payload)
	intent := Route(target)
	result := &Result{Intent: intent}

	if !target.Classified() {
		log.WithField("length", len(payload)).Debug("scanned payload is unclassified")
		return result, nil
	}

	res, err := s.recipients.ResolveTarget(ctx, target, callerID)
	if domainErrors.Is(err, domainErrors.ErrRecipientNotFound) {
		// Codes from other wallets still pre-fill the send flow.
		log.WithField("scheme", target.Scheme()).Debug("scanned address has no directory account")
		return result, nil
	}
	if err != nil {
		return nil, err
	}
	if !res.Unresolved {
		result.Recipient = res.Candidate
		result.Resolved = true
	}
	return result, nil
}
