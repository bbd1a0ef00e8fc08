package recipient

import (
	"context"
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"

	"quickpay/internal/domain/address"
	"quickpay/internal/domain/payment"
	domainErrors "quickpay/internal/errors"
)

const (
	MinQueryLength = 3
	MaxResults     = 5
)

type service struct {
	directory AccountDirectory
}

// NewService creates a recipient resolver over directory.
func NewService(directory AccountDirectory) Service {
	if directory == nil {
		panic("directory is required")
	}
	return &service{directory: directory}
}

func (s *service) Search(ctx context.Context, query, excludeUserID string) ([]payment.RecipientCandidate, error) {
	q := strings.TrimSpace(query)
	if utf8.RuneCountInString(q) < MinQueryLength {
		return nil, domainErrors.ErrQueryTooShort
	}

	found, err := s.directory.Search(ctx, likePattern(q), excludeUserID, MaxResults)
	if err != nil {
		log.WithError(err).WithField("exclude_user_id", excludeUserID).Warn("recipient search failed")
		return nil, domainErrors.ErrTransportFailure.WithMessage("search failed").Wrap(err)
	}

	results := make([]payment.RecipientCandidate, 0, len(found))
	for _, c := range found {
		if c.UserID == excludeUserID {
			continue
		}
		results = append(results, c)
		if len(results) == MaxResults {
			break
		}
	}
	return results, nil
}

func (s *service) ResolveTarget(ctx context.Context, target address.PaymentTarget, excludeUserID string) (*Resolution, error) {
	field, ok := lookupField(target.Scheme())
	if !ok {
		return &Resolution{
			Target:     target,
			Unresolved: true,
			RawAddress: rawAddress(target),
		}, nil
	}

	return s.lookup(ctx, target, field, target.Identifier(), excludeUserID)
}

func (s *service) Candidate(ctx context.Context, userID, excludeUserID string) (*payment.RecipientCandidate, error) {
	if userID == "" {
		return nil, domainErrors.ErrRecipientNotFound
	}
	res, err := s.lookup(ctx, address.PaymentTarget{}, payment.FieldUserID, userID, excludeUserID)
	if err != nil {
		return nil, err
	}
	return res.Candidate, nil
}

func (s *service) lookup(ctx context.Context, target address.PaymentTarget, field payment.AddressField, value, excludeUserID string) (*Resolution, error) {
	c, err := s.directory.Lookup(ctx, field, value)
	if err != nil {
		log.WithError(err).WithField("field", field).Warn("recipient lookup failed")
		return nil, domainErrors.ErrTransportFailure.WithMessage("recipient lookup failed").Wrap(err)
	}
	if c == nil || c.UserID == excludeUserID {
		return nil, domainErrors.ErrRecipientNotFound
	}
	return &Resolution{Target: target, Candidate: c}, nil
}

func lookupField(scheme address.Scheme) (payment.AddressField, bool) {
	switch scheme {
	case address.SchemeWallet:
		return payment.FieldWalletID, true
	case address.SchemeEmail:
		return payment.FieldEmail, true
	case address.SchemeUPI:
		return payment.FieldUPIID, true
	case address.SchemeBitcoin:
		return payment.FieldBitcoinAddress, true
	}
	return "", false
}

func rawAddress(t address.PaymentTarget) string {
	if t.Scheme() == address.SchemeBank {
		return address.Encode(t)
	}
	return t.Identifier()
}

// likePattern wraps q for a substring ILIKE, escaping LIKE metacharacters so
// user input matches literally.
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}
