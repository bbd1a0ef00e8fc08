// Package address models the payment targets a user can be paid through and
// converts them to and from their scannable text form.
package address

// Scheme identifies which identifier space a PaymentTarget lives in.
type Scheme string

const (
	SchemeWallet  Scheme = "wallet"
	SchemeEmail   Scheme = "email"
	SchemeUPI     Scheme = "upi"
	SchemeBank    Scheme = "bank"
	SchemeBitcoin Scheme = "bitcoin"

	// SchemeUnclassified is only produced by Decode, for text that matched
	// no recognized prefix.
	SchemeUnclassified Scheme = "unclassified"
)

// Schemes lists the five addressable schemes in display order.
var Schemes = []Scheme{SchemeWallet, SchemeEmail, SchemeUPI, SchemeBank, SchemeBitcoin}

func (s Scheme) String() string { return string(s) }

// Valid reports whether s is one of the five addressable schemes.
func (s Scheme) Valid() bool {
	switch s {
	case SchemeWallet, SchemeEmail, SchemeUPI, SchemeBank, SchemeBitcoin:
		return true
	}
	return false
}

// PaymentTarget is a closed variant over the payment schemes. The zero value
// is not a valid target; build one with the New* constructors or Decode.
// Fields belonging to other variants are always empty.
type PaymentTarget struct {
	scheme Scheme

	// id holds the primary identifier: wallet id, email, UPI handle, bank
	// account, bitcoin address, or the raw text for unclassified targets.
	id string

	// ifsc is set for Bank only.
	ifsc string

	// displayName is set for UPI only, and is optional there.
	displayName string
}

func NewWallet(id string) PaymentTarget {
	return PaymentTarget{scheme: SchemeWallet, id: id}
}

func NewEmail(email string) PaymentTarget {
	return PaymentTarget{scheme: SchemeEmail, id: email}
}

// NewUPI builds a UPI target. displayName may be empty.
func NewUPI(handle, displayName string) PaymentTarget {
	return PaymentTarget{scheme: SchemeUPI, id: handle, displayName: displayName}
}

func NewBank(account, ifsc string) PaymentTarget {
	return PaymentTarget{scheme: SchemeBank, id: account, ifsc: ifsc}
}

func NewBitcoin(addr string) PaymentTarget {
	return PaymentTarget{scheme: SchemeBitcoin, id: addr}
}

func unclassified(raw string) PaymentTarget {
	return PaymentTarget{scheme: SchemeUnclassified, id: raw}
}

func (t PaymentTarget) Scheme() Scheme { return t.scheme }

// Identifier returns the scheme's primary identifier. For unclassified
// targets it is the raw decoded text.
func (t PaymentTarget) Identifier() string { return t.id }

// IFSC returns the routing code of a Bank target.
func (t PaymentTarget) IFSC() string { return t.ifsc }

// DisplayName returns the payee name carried by a UPI target.
func (t PaymentTarget) DisplayName() string { return t.displayName }

// Classified reports whether decoding recognized the text.
func (t PaymentTarget) Classified() bool {
	return t.scheme != SchemeUnclassified && t.scheme != ""
}

// Equivalent reports whether t and other share scheme and primary identifier.
// Bank targets also compare their IFSC.
func (t PaymentTarget) Equivalent(other PaymentTarget) bool {
	if t.scheme != other.scheme || t.id != other.id {
		return false
	}
	if t.scheme == SchemeBank {
		return t.ifsc == other.ifsc
	}
	return true
}
