//go:build integration_test

package repositories

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"quickpay/internal/models"
)

var (
	pgOnce     sync.Once
	pgAdminDSN string
)

// adminDSN starts one postgres container for the whole test binary.
func adminDSN(t testing.TB) string {
	t.Helper()

	pgOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		container, err := postgres.Run(ctx, "postgres:16-alpine",
			postgres.WithDatabase("quickpay"),
			postgres.WithUsername("postgres"),
			postgres.WithPassword("postgres"),
			postgres.BasicWaitStrategies(),
		)
		require.NoError(t, err, "failed to start Postgres container")

		pgAdminDSN, err = container.ConnectionString(ctx, "sslmode=disable")
		require.NoError(t, err, "failed to get Postgres admin DSN")
	})

	require.NotEmpty(t, pgAdminDSN, "postgres container did not start")
	return pgAdminDSN
}

// newTestDB creates a migrated database of its own for t and drops it when
// the test ends.
func newTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := adminDSN(t)
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}

	admin, err := gorm.Open(pgdriver.Open(dsn), gormCfg)
	require.NoError(t, err)

	name := "quickpay_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	require.NoError(t, admin.Exec(fmt.Sprintf("CREATE DATABASE %s", name)).Error)

	u, err := url.Parse(dsn)
	require.NoError(t, err)
	u.Path = "/" + name

	db, err := gorm.Open(pgdriver.Open(u.String()), gormCfg)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		_ = admin.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS %s WITH (FORCE)", name)).Error
		if sqlDB, err := admin.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func strPtr(s string) *string { return &s }

// seedProfile inserts a profile with balance and returns it.
func seedProfile(t testing.TB, db *gorm.DB, name, walletID string, balance string, opts ...func(*models.Profile)) *models.Profile {
	t.Helper()

	p := &models.Profile{
		UserID:      uuid.NewString(),
		DisplayName: name,
		WalletID:    walletID,
		Balance:     decimal.RequireFromString(balance),
	}
	for _, opt := range opts {
		opt(p)
	}
	require.NoError(t, NewProfileRepository(db).Create(context.Background(), p))
	return p
}

func withEmail(email string) func(*models.Profile) {
	return func(p *models.Profile) { p.Email = strPtr(email) }
}

func withUPI(handle string) func(*models.Profile) {
	return func(p *models.Profile) { p.UPIID = strPtr(handle) }
}
