// Package scan turns scanned payment codes into send-flow intents.
package scan

import (
	"quickpay/internal/domain/address"
	"quickpay/internal/domain/payment"
)

// Route maps a decoded target to a transfer intent. It is pure.
func Route(t address.PaymentTarget) TransferIntent {
	intent := TransferIntent{Scheme: t.Scheme(), Address: t.Identifier()}

	switch t.Scheme() {
	case address.SchemeUPI:
		intent.Method = payment.MethodBank
		intent.DisplayName = t.DisplayName()
	case address.SchemeBitcoin:
		intent.Method = payment.MethodBitcoin
	case address.SchemeWallet:
		intent.Method = payment.MethodBank
	default:
		// Receive-only and unrecognized codes carry the text as is.
		intent.Scheme = address.SchemeUnclassified
		intent.Address = address.Encode(t)
		intent.NeedsMethod = true
	}
	return intent
}
