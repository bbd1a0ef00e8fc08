package receive

import "errors"

var (
	ErrSchemeNotConfigured   = errors.New("payment method not set up")
	ErrInvalidBitcoinAddress = errors.New("stored bitcoin address is not valid for this network")
	ErrUnknownScheme         = errors.New("unknown payment scheme")
)
