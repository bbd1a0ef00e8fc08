package errors

import stderrors "errors"

var (
	ErrQueryTooShort = &DomainError{
		Kind:    KindQueryTooShort,
		Code:    "QUERY_TOO_SHORT",
		Message: "enter at least 3 characters to search",
	}
	ErrInvalidAmount = &DomainError{
		Kind:    KindInvalidAmount,
		Code:    "INVALID_AMOUNT",
		Message: "enter a valid amount",
	}
	ErrRecipientNotFound = &DomainError{
		Kind:    KindRecipientNotFound,
		Code:    "RECIPIENT_NOT_FOUND",
		Message: "recipient not found",
	}
	ErrDecodeUnclassified = &DomainError{
		Kind:    KindDecodeUnclassified,
		Code:    "DECODE_UNCLASSIFIED",
		Message: "unrecognized payment code",
	}
	ErrLedgerDeclined = &DomainError{
		Kind:    KindLedgerDeclined,
		Code:    "LEDGER_DECLINED",
		Message: "transfer declined",
	}
	ErrTransportFailure = &DomainError{
		Kind:    KindTransportFailure,
		Code:    "TRANSPORT_FAILURE",
		Message: "transfer status unknown, check your transaction history before retrying",
	}
	ErrInvalidRequest = &DomainError{
		Kind:    KindInvalidRequest,
		Code:    "INVALID_REQUEST",
		Message: "invalid request",
	}
)

// As is errors.As, re-exported so callers importing this package under the
// name "errors" keep access to it.
func As(err error, target any) bool { return stderrors.As(err, target) }

// Is is errors.Is, re-exported for the same reason as As.
func Is(err, target error) bool { return stderrors.Is(err, target) }
