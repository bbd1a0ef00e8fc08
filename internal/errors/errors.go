// Package errors defines the typed failures surfaced by the payment core.
package errors

import "fmt"

// Kind classifies a failure so callers can decide how to surface it.
type Kind string

const (
	KindQueryTooShort      Kind = "QUERY_TOO_SHORT"
	KindInvalidAmount      Kind = "INVALID_AMOUNT"
	KindRecipientNotFound  Kind = "RECIPIENT_NOT_FOUND"
	KindDecodeUnclassified Kind = "DECODE_UNCLASSIFIED"
	KindLedgerDeclined     Kind = "LEDGER_DECLINED"
	KindTransportFailure   Kind = "TRANSPORT_FAILURE"
	KindInvalidRequest     Kind = "INVALID_REQUEST"
)

// DomainError is a user-facing failure with a stable code.
type DomainError struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error { return e.Err }

// Is matches any DomainError of the same kind, so wrapped copies still
// compare equal to the sentinels below.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Wrap returns a copy of e carrying cause.
func (e *DomainError) Wrap(cause error) *DomainError {
	return &DomainError{Kind: e.Kind, Code: e.Code, Message: e.Message, Err: cause}
}

// WithMessage returns a copy of e with a different message.
func (e *DomainError) WithMessage(msg string) *DomainError {
	return &DomainError{Kind: e.Kind, Code: e.Code, Message: msg, Err: e.Err}
}

// KindOf reports the Kind of err, or "" when err is not a DomainError.
func KindOf(err error) Kind {
	var de *DomainError
	if As(err, &de) {
		return de.Kind
	}
	return ""
}
