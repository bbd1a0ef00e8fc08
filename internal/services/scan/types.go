package scan

import (
	"quickpay/internal/domain/address"
	"quickpay/internal/domain/payment"
)

// TransferIntent pre-fills the send flow from a scanned code. Method is empty
// when the code did not say how to pay, in which case NeedsMethod is set and
// the user must choose.
type TransferIntent struct {
	Scheme      address.Scheme `json:"scheme"`
	Method      payment.Method `json:"method,omitempty"`
	Address     string         `json:"address"`
	DisplayName string         `json:"display_name,omitempty"`
	NeedsMethod bool           `json:"needs_method"`
}

// Result is what a scan resolves to. Recipient is set when the address
// matched a directory account.
type Result struct {
	Intent    TransferIntent              `json:"intent"`
	Recipient *payment.RecipientCandidate `json:"recipient,omitempty"`
	Resolved  bool                        `json:"resolved"`
}
