package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"quickpay/internal/domain/address"
	"quickpay/internal/domain/payment"
)

func TestRoute(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    TransferIntent
	}{
		{
			name:    "upi with name",
			payload: "upi://pay?pa=alice@bank&pn=Alice",
			want:    TransferIntent{Scheme: address.SchemeUPI, Method: payment.MethodBank, Address: "alice@bank", DisplayName: "Alice"},
		},
		{
			name:    "bitcoin with amount",
			payload: "bitcoin:bc1qxyz?amount=0.01",
			want:    TransferIntent{Scheme: address.SchemeBitcoin, Method: payment.MethodBitcoin, Address: "bc1qxyz"},
		},
		{
			name:    "wallet",
			payload: "wallet:QP7F3K9A",
			want:    TransferIntent{Scheme: address.SchemeWallet, Method: payment.MethodBank, Address: "QP7F3K9A"},
		},
		{
			name:    "foreign code",
			payload: "0xdeadbeef",
			want:    TransferIntent{Scheme: address.SchemeUnclassified, Address: "0xdeadbeef", NeedsMethod: true},
		},
		{
			name:    "email code is receive only",
			payload: "pay:alice@example.com",
			want:    TransferIntent{Scheme: address.SchemeUnclassified, Address: "pay:alice@example.com", NeedsMethod: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Route(address.Decode(tt.payload)))
		})
	}
}

func TestRoute_ConstructedReceiveOnlyTargets(t *testing.T) {
	got := Route(address.NewBank("001234567890", "HDFC0001234"))
	assert.True(t, got.NeedsMethod)
	assert.Empty(t, got.Method)
	assert.Equal(t, "bank://001234567890/HDFC0001234", got.Address)

	got = Route(address.NewEmail("bob@example.com"))
	assert.True(t, got.NeedsMethod)
	assert.Equal(t, "pay:bob@example.com", got.Address)
}
