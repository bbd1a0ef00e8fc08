package transfer

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"quickpay/internal/domain/payment"
	domainErrors "quickpay/internal/errors"
)

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Transfer(ctx context.Context, req payment.TransferRequest) (*payment.LedgerResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.LedgerResponse), args.Error(1)
}

// blockingLedger holds every call until release is closed.
type blockingLedger struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func newBlockingLedger() *blockingLedger {
	return &blockingLedger{started: make(chan struct{}), release: make(chan struct{})}
}

func (b *blockingLedger) Transfer(ctx context.Context, req payment.TransferRequest) (*payment.LedgerResponse, error) {
	b.calls.Add(1)
	b.once.Do(func() { close(b.started) })
	<-b.release
	bal := decimal.RequireFromString("90.00")
	return &payment.LedgerResponse{Success: true, RecipientName: "Bob", NewBalance: &bal}, nil
}

const senderID = "00000000-0000-0000-0000-0000000000aa"

func strPtr(s string) *string { return &s }

func walletRequest(key string) payment.TransferRequest {
	return payment.TransferRequest{
		SenderID:          senderID,
		RecipientWalletID: strPtr("QPBOB"),
		Amount:            decimal.RequireFromString("10"),
		Method:            payment.MethodBank,
		IdempotencyKey:    key,
	}
}

func TestParseAmount(t *testing.T) {
	valid := map[string]string{
		"10":     "10.00",
		"0.01":   "0.01",
		" 12.5 ": "12.50",
		"1.500":  "1.50",
	}
	for in, want := range valid {
		t.Run(in, func(t *testing.T) {
			got, err := ParseAmount(in)
			require.NoError(t, err)
			assert.Equal(t, want, got.StringFixed(AmountPlaces))
		})
	}

	for _, in := range []string{"0", "-5", "abc", "", "0.001", "1.234", "NaN"} {
		t.Run("invalid "+in, func(t *testing.T) {
			_, err := ParseAmount(in)
			assert.ErrorIs(t, err, domainErrors.ErrInvalidAmount)
		})
	}
}

func TestService_BuildRequest_Precedence(t *testing.T) {
	s := NewService(new(MockLedger), Config{})

	tests := []struct {
		name      string
		candidate payment.RecipientCandidate
		field     payment.AddressField
		value     string
	}{
		{
			name:      "wallet wins over email and upi",
			candidate: payment.RecipientCandidate{UserID: "u1", WalletID: "QP1", Email: strPtr("a@x.io"), UPIID: strPtr("a@upi")},
			field:     payment.FieldWalletID,
			value:     "QP1",
		},
		{
			name:      "email wins over upi",
			candidate: payment.RecipientCandidate{UserID: "u1", Email: strPtr("a@x.io"), UPIID: strPtr("a@upi")},
			field:     payment.FieldEmail,
			value:     "a@x.io",
		},
		{
			name:      "upi only",
			candidate: payment.RecipientCandidate{UserID: "u1", UPIID: strPtr("a@upi")},
			field:     payment.FieldUPIID,
			value:     "a@upi",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := s.BuildRequest(senderID, tt.candidate, "25.50", "key-1")
			require.NoError(t, err)

			assert.Equal(t, 1, req.RecipientFieldCount())
			field, value, ok := req.Recipient()
			require.True(t, ok)
			assert.Equal(t, tt.field, field)
			assert.Equal(t, tt.value, value)
			assert.Equal(t, payment.MethodBank, req.Method)
			assert.Equal(t, "key-1", req.IdempotencyKey)
			assert.Equal(t, "25.50", req.Amount.StringFixed(AmountPlaces))
		})
	}
}

func TestService_BuildRequest_MintsKey(t *testing.T) {
	s := NewService(new(MockLedger), Config{})
	c := payment.RecipientCandidate{UserID: "u1", WalletID: "QP1"}

	a, err := s.BuildRequest(senderID, c, "1", "")
	require.NoError(t, err)
	b, err := s.BuildRequest(senderID, c, "1", "")
	require.NoError(t, err)

	assert.NotEmpty(t, a.IdempotencyKey)
	assert.NotEqual(t, a.IdempotencyKey, b.IdempotencyKey)
}

func TestService_BuildRequest_Rejections(t *testing.T) {
	ledger := new(MockLedger)
	s := NewService(ledger, Config{})
	c := payment.RecipientCandidate{UserID: "u1", WalletID: "QP1"}

	for _, amount := range []string{"0", "-5", "abc"} {
		_, err := s.BuildRequest(senderID, c, amount, "k")
		assert.ErrorIs(t, err, domainErrors.ErrInvalidAmount, amount)
	}

	_, err := s.BuildRequest(senderID, payment.RecipientCandidate{UserID: "u1"}, "5", "k")
	assert.ErrorIs(t, err, domainErrors.ErrRecipientNotFound)

	ledger.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything)
}

func TestService_Execute_InvalidRequestSkipsLedger(t *testing.T) {
	tests := []struct {
		name string
		req  payment.TransferRequest
		kind domainErrors.Kind
	}{
		{"zero amount", func() payment.TransferRequest { r := walletRequest("k"); r.Amount = decimal.Zero; return r }(), domainErrors.KindInvalidAmount},
		{"negative amount", func() payment.TransferRequest { r := walletRequest("k"); r.Amount = decimal.NewFromInt(-5); return r }(), domainErrors.KindInvalidAmount},
		{"sub-cent amount", func() payment.TransferRequest { r := walletRequest("k"); r.Amount = decimal.RequireFromString("0.001"); return r }(), domainErrors.KindInvalidAmount},
		{"two recipient fields", func() payment.TransferRequest { r := walletRequest("k"); r.RecipientEmail = strPtr("b@x.io"); return r }(), domainErrors.KindInvalidRequest},
		{"no recipient field", func() payment.TransferRequest { r := walletRequest("k"); r.RecipientWalletID = nil; return r }(), domainErrors.KindInvalidRequest},
		{"missing key", walletRequest(""), domainErrors.KindInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := new(MockLedger)
			res := NewService(ledger, Config{}).Execute(context.Background(), tt.req)

			assert.Equal(t, StatusFailure, res.Status)
			assert.Equal(t, tt.kind, res.Kind)
			assert.False(t, res.ShouldRefresh)
			ledger.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything)
		})
	}
}

func TestService_Execute_Success(t *testing.T) {
	ledger := new(MockLedger)
	bal := decimal.RequireFromString("90.00")
	req := walletRequest("key-ok")
	ledger.On("Transfer", mock.Anything, req).
		Return(&payment.LedgerResponse{Success: true, RecipientName: "Bob", RecipientUserID: "u2", NewBalance: &bal}, nil).Once()

	res := NewService(ledger, Config{}).Execute(context.Background(), req)

	assert.True(t, res.Succeeded())
	assert.Equal(t, "Bob", res.RecipientDisplayName)
	assert.Equal(t, "u2", res.RecipientUserID)
	assert.True(t, res.ShouldRefresh)
	assert.False(t, res.Reconcile)
	require.NotNil(t, res.NewBalance)
	assert.True(t, bal.Equal(*res.NewBalance))
	ledger.AssertExpectations(t)
}

func TestService_Execute_DeclineReasonVerbatim(t *testing.T) {
	for _, reason := range []string{"Insufficient balance", "Recipient not found", "Cannot send money to yourself"} {
		t.Run(reason, func(t *testing.T) {
			ledger := new(MockLedger)
			ledger.On("Transfer", mock.Anything, mock.Anything).
				Return(&payment.LedgerResponse{Success: false, Error: reason}, nil).Once()

			res := NewService(ledger, Config{}).Execute(context.Background(), walletRequest("k-"+reason))

			assert.Equal(t, StatusFailure, res.Status)
			assert.Equal(t, domainErrors.KindLedgerDeclined, res.Kind)
			assert.Equal(t, reason, res.Reason)
			assert.False(t, res.ShouldRefresh)
			assert.False(t, res.Reconcile)
		})
	}
}

func TestService_Execute_DeclineWithoutReason(t *testing.T) {
	ledger := new(MockLedger)
	ledger.On("Transfer", mock.Anything, mock.Anything).Return(&payment.LedgerResponse{Success: false}, nil)

	res := NewService(ledger, Config{}).Execute(context.Background(), walletRequest("k"))
	assert.Equal(t, declinedFallbackReason, res.Reason)
}

func TestService_Execute_TransportFailureReleasesGuard(t *testing.T) {
	ledger := new(MockLedger)
	req := walletRequest("key-flaky")
	ledger.On("Transfer", mock.Anything, req).Return(nil, errors.New("connection reset")).Once()
	ledger.On("Transfer", mock.Anything, req).Return(&payment.LedgerResponse{Success: true, RecipientName: "Bob"}, nil).Once()

	s := NewService(ledger, Config{})

	first := s.Execute(context.Background(), req)
	assert.Equal(t, StatusFailure, first.Status)
	assert.Equal(t, domainErrors.KindTransportFailure, first.Kind)
	assert.True(t, first.Reconcile)
	assert.False(t, first.ShouldRefresh)
	ledger.AssertNumberOfCalls(t, "Transfer", 1)

	second := s.Execute(context.Background(), req)
	assert.True(t, second.Succeeded())
	ledger.AssertNumberOfCalls(t, "Transfer", 2)
}

func TestService_Execute_NilResponseIsTransportFailure(t *testing.T) {
	ledger := new(MockLedger)
	ledger.On("Transfer", mock.Anything, mock.Anything).Return(nil, nil)

	res := NewService(ledger, Config{}).Execute(context.Background(), walletRequest("k"))
	assert.Equal(t, domainErrors.KindTransportFailure, res.Kind)
	assert.True(t, res.Reconcile)
}

func TestService_Execute_ConcurrentSameKeyCallsLedgerOnce(t *testing.T) {
	ledger := newBlockingLedger()
	s := NewService(ledger, Config{})
	req := walletRequest("key-double-tap")

	const callers = 5
	results := make([]Result, callers)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0] = s.Execute(context.Background(), req)
	}()
	<-ledger.started

	for i := 1; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = s.Execute(context.Background(), req)
		}(i)
	}
	time.Sleep(100 * time.Millisecond)
	close(ledger.release)
	wg.Wait()

	assert.Equal(t, int32(1), ledger.calls.Load())
	for _, r := range results {
		assert.True(t, r.Succeeded())
		assert.Equal(t, "Bob", r.RecipientDisplayName)
	}
}

func TestService_Execute_SameKeyFromDifferentSendersIsNotShared(t *testing.T) {
	ledger := newBlockingLedger()
	s := NewService(ledger, Config{})

	first := walletRequest("1")
	second := walletRequest("1")
	second.SenderID = "00000000-0000-0000-0000-0000000000bb"
	second.RecipientWalletID = strPtr("QPCAROL")

	var wg sync.WaitGroup
	results := make([]Result, 2)
	for i, req := range []payment.TransferRequest{first, second} {
		wg.Add(1)
		go func(i int, req payment.TransferRequest) {
			defer wg.Done()
			results[i] = s.Execute(context.Background(), req)
		}(i, req)
	}

	assert.Eventually(t, func() bool { return ledger.calls.Load() == 2 }, time.Second, 10*time.Millisecond)
	close(ledger.release)
	wg.Wait()

	assert.Equal(t, int32(2), ledger.calls.Load())
	assert.True(t, results[0].Succeeded())
	assert.True(t, results[1].Succeeded())
}

func TestService_Execute_SameKeyDifferentTransferIsRejected(t *testing.T) {
	ledger := newBlockingLedger()
	s := NewService(ledger, Config{})

	original := walletRequest("key-reused")
	changed := walletRequest("key-reused")
	changed.Amount = decimal.RequireFromString("500")

	var first Result
	done := make(chan struct{})
	go func() {
		defer close(done)
		first = s.Execute(context.Background(), original)
	}()
	<-ledger.started

	var second Result
	joined := make(chan struct{})
	go func() {
		defer close(joined)
		second = s.Execute(context.Background(), changed)
	}()
	time.Sleep(100 * time.Millisecond)
	close(ledger.release)
	<-done
	<-joined

	assert.Equal(t, int32(1), ledger.calls.Load())
	assert.True(t, first.Succeeded())
	assert.False(t, second.Succeeded())
	assert.Equal(t, domainErrors.KindInvalidRequest, second.Kind)
	assert.Nil(t, second.NewBalance)
	assert.Empty(t, second.RecipientDisplayName)
}

func TestSameTransfer(t *testing.T) {
	base := walletRequest("k")

	otherRecipient := walletRequest("k")
	otherRecipient.RecipientWalletID = nil
	otherRecipient.RecipientEmail = strPtr("QPBOB")

	sameAmount := walletRequest("k")
	sameAmount.Amount = decimal.RequireFromString("10.00")

	assert.True(t, sameTransfer(base, sameAmount))
	assert.False(t, sameTransfer(base, otherRecipient))
}

func TestService_Execute_DistinctKeysAreIndependent(t *testing.T) {
	ledger := new(MockLedger)
	ledger.On("Transfer", mock.Anything, mock.Anything).Return(&payment.LedgerResponse{Success: true}, nil)
	s := NewService(ledger, Config{})

	s.Execute(context.Background(), walletRequest("a"))
	s.Execute(context.Background(), walletRequest("b"))

	ledger.AssertNumberOfCalls(t, "Transfer", 2)
}

func TestService_Execute_CallerCancellationDoesNotAbortLedger(t *testing.T) {
	ledger := new(MockLedger)
	ledger.On("Transfer", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			assert.NoError(t, ctx.Err())
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
		}).
		Return(&payment.LedgerResponse{Success: true}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := NewService(ledger, Config{LedgerTimeout: time.Second}).Execute(ctx, walletRequest("k"))
	assert.True(t, res.Succeeded())
}
