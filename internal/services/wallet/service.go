package wallet

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"quickpay/internal/models"
	"quickpay/internal/repositories"
	"quickpay/internal/utils/cache"
)

const (
	viewProfile      = "profile"
	viewTransactions = "transactions"
)

// Config holds view settings.
type Config struct {
	TTL time.Duration
}

type service struct {
	profiles     ProfileStore
	transactions TransactionStore
	cache        repositories.CacheRepository
	config       Config
	metrics      MetricsCollector
}

func NewService(profiles ProfileStore, transactions TransactionStore, cacheRepo repositories.CacheRepository, config Config, metrics MetricsCollector) Service {
	if profiles == nil {
		panic("profile store is required")
	}
	if transactions == nil {
		panic("transaction store is required")
	}
	if cacheRepo == nil {
		panic("cache is required")
	}
	if config.TTL <= 0 {
		config.TTL = repositories.DefaultExpiration
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	return &service{
		profiles:     profiles,
		transactions: transactions,
		cache:        cacheRepo,
		config:       config,
		metrics:      metrics,
	}
}

func (s *service) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	key := cache.ProfileKey(userID)

	var cached models.Profile
	if s.readCache(ctx, viewProfile, key, &cached) {
		return &cached, nil
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repositories.ErrProfileNotFound) {
			s.metrics.RecordError(viewProfile, "store")
		}
		return nil, err
	}

	s.writeCache(ctx, viewProfile, key, profile)
	return profile, nil
}

func (s *service) GetTransactions(ctx context.Context, userID string, limit int) ([]models.Transaction, error) {
	key := cache.TransactionsKey(userID, limit)

	var cached []models.Transaction
	if s.readCache(ctx, viewTransactions, key, &cached) {
		return cached, nil
	}

	txs, err := s.transactions.ListByUser(ctx, userID, limit)
	if err != nil {
		s.metrics.RecordError(viewTransactions, "store")
		return nil, err
	}
	if txs == nil {
		txs = []models.Transaction{}
	}

	s.writeCache(ctx, viewTransactions, key, txs)
	return txs, nil
}

func (s *service) Invalidate(ctx context.Context, userIDs ...string) {
	for _, id := range userIDs {
		if id == "" {
			continue
		}
		logger := log.WithField("user_id", id)
		if err := s.cache.Delete(ctx, cache.ProfileKey(id)); err != nil {
			logger.WithError(err).Warn("failed to invalidate profile view")
		}
		if err := s.cache.DeleteMany(ctx, cache.TransactionsPattern(id)); err != nil {
			logger.WithError(err).Warn("failed to invalidate transaction views")
		}
	}
}

// readCache reports whether key was found and decoded into dest. Cache
// failures are treated as misses.
func (s *service) readCache(ctx context.Context, view, key string, dest interface{}) bool {
	err := s.cache.Get(ctx, key, dest)
	if err == nil {
		s.metrics.RecordCacheHit(view)
		return true
	}
	if !errors.Is(err, repositories.ErrCacheMiss) {
		log.WithError(err).WithField("key", key).Warn("cache read failed")
		s.metrics.RecordError(view, "cache_read")
	}
	s.metrics.RecordCacheMiss(view)
	return false
}

func (s *service) writeCache(ctx context.Context, view, key string, value interface{}) {
	if err := s.cache.Set(ctx, key, value, s.config.TTL); err != nil {
		log.WithError(err).WithField("key", key).Warn("cache write failed")
		s.metrics.RecordError(view, "cache_write")
	}
}
