// Package receive builds the codes a user shows to get paid.
package receive

import (
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	log "github.com/sirupsen/logrus"

	"quickpay/internal/domain/address"
	"quickpay/internal/models"
)

type Service interface {
	Codes(profile *models.Profile) []ReceiveCode
	Code(profile *models.Profile, scheme address.Scheme) (ReceiveCode, error)
}

type service struct {
	network *chaincfg.Params
}

// NewService builds receive codes, validating bitcoin addresses against
// network.
func NewService(network *chaincfg.Params) Service {
	if network == nil {
		network = &chaincfg.MainNetParams
	}
	return &service{network: network}
}

func (s *service) Codes(profile *models.Profile) []ReceiveCode {
	codes := make([]ReceiveCode, 0, len(address.Schemes))
	for _, scheme := range address.Schemes {
		code, err := s.Code(profile, scheme)
		if err != nil && !errors.Is(err, ErrSchemeNotConfigured) {
			code.Error = err.Error()
		}
		codes = append(codes, code)
	}
	return codes
}

func (s *service) Code(profile *models.Profile, scheme address.Scheme) (ReceiveCode, error) {
	code := ReceiveCode{Scheme: scheme, ShareText: NotSet}
	if !scheme.Valid() {
		return code, fmt.Errorf("%w: %s", ErrUnknownScheme, scheme)
	}

	target, share, ok := targetFor(profile, scheme)
	if !ok {
		return code, ErrSchemeNotConfigured
	}

	if scheme == address.SchemeBitcoin {
		if err := address.ValidateBitcoinAddress(target.Identifier(), s.network); err != nil {
			log.WithError(err).WithField("user_id", profile.UserID).Warn("profile bitcoin address rejected")
			return code, ErrInvalidBitcoinAddress
		}
	}

	code.Configured = true
	code.Payload = address.Encode(target)
	code.ShareText = share
	return code, nil
}

// targetFor returns the profile's target for scheme and the plain text to
// share for it.
func targetFor(p *models.Profile, scheme address.Scheme) (address.PaymentTarget, string, bool) {
	if p == nil {
		return address.PaymentTarget{}, "", false
	}

	switch scheme {
	case address.SchemeWallet:
		id := strings.TrimSpace(p.WalletID)
		return address.NewWallet(id), id, id != ""
	case address.SchemeEmail:
		email := strings.TrimSpace(models.StringValue(p.Email))
		return address.NewEmail(email), email, email != ""
	case address.SchemeUPI:
		handle := strings.TrimSpace(models.StringValue(p.UPIID))
		return address.NewUPI(handle, p.DisplayName), handle, handle != ""
	case address.SchemeBank:
		account := strings.TrimSpace(p.BankAccount)
		ifsc := strings.TrimSpace(p.BankIFSC)
		if account == "" || ifsc == "" {
			return address.PaymentTarget{}, "", false
		}
		share := orNotSet(p.DisplayName) + " | " + account + " | " + ifsc
		return address.NewBank(account, ifsc), share, true
	case address.SchemeBitcoin:
		addr := strings.TrimSpace(models.StringValue(p.BitcoinAddress))
		return address.NewBitcoin(addr), addr, addr != ""
	}
	return address.PaymentTarget{}, "", false
}

func orNotSet(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotSet
	}
	return s
}
