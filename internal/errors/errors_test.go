package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_IsMatchesKind(t *testing.T) {
	wrapped := fmt.Errorf("search: %w", ErrTransportFailure.Wrap(fmt.Errorf("dial tcp: refused")))

	assert.True(t, Is(wrapped, ErrTransportFailure))
	assert.False(t, Is(wrapped, ErrRecipientNotFound))
	assert.Equal(t, KindTransportFailure, KindOf(wrapped))
	assert.Contains(t, wrapped.Error(), "dial tcp: refused")
}

func TestDomainError_WithMessage(t *testing.T) {
	declined := ErrLedgerDeclined.WithMessage("Insufficient balance")

	assert.Equal(t, "Insufficient balance", declined.Error())
	assert.True(t, Is(declined, ErrLedgerDeclined))
	assert.Equal(t, "transfer declined", ErrLedgerDeclined.Message)
}

func TestKindOf_PlainError(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(fmt.Errorf("boom")))
}
