package wallet

import (
	"context"

	"quickpay/internal/models"
)

// Service defines the wallet view operations.
type Service interface {
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	GetTransactions(ctx context.Context, userID string, limit int) ([]models.Transaction, error)

	// Invalidate drops every cached view of the given users.
	Invalidate(ctx context.Context, userIDs ...string)
}

type ProfileStore interface {
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
}

type TransactionStore interface {
	ListByUser(ctx context.Context, userID string, limit int) ([]models.Transaction, error)
}

// MetricsCollector receives cache statistics per view.
type MetricsCollector interface {
	RecordCacheHit(view string)
	RecordCacheMiss(view string)
	RecordError(view, reason string)
}
