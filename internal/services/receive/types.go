package receive

import "quickpay/internal/domain/address"

// NotSet is shown in place of an unconfigured identifier.
const NotSet = "Not set"

// ReceiveCode is one tab of the receive screen: the text to render as a QR
// code and the text to share. Payload is empty when the scheme is not
// configured on the profile.
type ReceiveCode struct {
	Scheme     address.Scheme `json:"scheme"`
	Configured bool           `json:"configured"`
	Payload    string         `json:"payload,omitempty"`
	ShareText  string         `json:"share_text"`
	Error      string         `json:"error,omitempty"`
}
