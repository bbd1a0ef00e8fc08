package address

import (
	"net/url"
	"strings"
)

const (
	prefixWallet  = "wallet:"
	prefixEmail   = "pay:"
	prefixUPI     = "upi://"
	prefixBank    = "bank://"
	prefixBitcoin = "bitcoin:"
)

// Encode renders t in its scannable text form. It never fails; an
// unclassified target encodes to its raw text.
func Encode(t PaymentTarget) string {
	switch t.scheme {
	case SchemeWallet:
		return prefixWallet + t.id
	case SchemeEmail:
		return prefixEmail + t.id
	case SchemeUPI:
		return prefixUPI + "pay?pa=" + escapeQueryValue(t.id) + "&pn=" + escapeQueryValue(t.displayName)
	case SchemeBank:
		return prefixBank + t.id + "/" + t.ifsc
	case SchemeBitcoin:
		return prefixBitcoin + t.id
	default:
		return t.id
	}
}

// Decode classifies scanned text. Recognized forms are checked in order:
// upi://, bitcoin:, wallet:. Anything else, including malformed instances of
// those forms, comes back as an unclassified target carrying the original
// text. Decode never fails.
func Decode(text string) PaymentTarget {
	s := strings.TrimSpace(text)

	switch {
	case hasPrefixFold(s, prefixUPI):
		if t, ok := decodeUPI(s); ok {
			return t
		}
	case hasPrefixFold(s, prefixBitcoin):
		addr := s[len(prefixBitcoin):]
		if i := strings.IndexByte(addr, '?'); i >= 0 {
			addr = addr[:i]
		}
		if addr != "" {
			return NewBitcoin(addr)
		}
	case hasPrefixFold(s, prefixWallet):
		if id := s[len(prefixWallet):]; id != "" {
			return NewWallet(id)
		}
	}

	return unclassified(text)
}

func decodeUPI(s string) (PaymentTarget, bool) {
	i := strings.IndexByte(s, '?')
	if i < 0 {
		return PaymentTarget{}, false
	}
	params, err := url.ParseQuery(s[i+1:])
	if err != nil {
		return PaymentTarget{}, false
	}
	pa := params.Get("pa")
	if pa == "" {
		return PaymentTarget{}, false
	}
	return NewUPI(pa, params.Get("pn")), true
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// escapeQueryValue percent-encodes every byte outside the RFC 3986
// unreserved set, except '@' which UPI handles carry verbatim.
func escapeQueryValue(v string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(v))
	for i := 0; i < len(v); i++ {
		c := v[i]
		if isUnreserved(c) || c == '@' {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	}
	return false
}
