// Package integration runs the session store against real PostgreSQL and MySQL servers.
package integration

import (
	"context"
	"crypto/rand"
	"database/sql"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sessionDomain "github.com/allisson/storefront/internal/session/domain"
	sessionRepository "github.com/allisson/storefront/internal/session/repository"
	sessionService "github.com/allisson/storefront/internal/session/service"
	sessionUseCase "github.com/allisson/storefront/internal/session/usecase"
	"github.com/allisson/storefront/internal/testutil"
)

type kvFactory func(db *sql.DB, profile string) sessionUseCase.KVStore

func TestIntegration_SessionStore_PostgreSQL(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	runSessionStoreFlow(t, db, func(db *sql.DB, profile string) sessionUseCase.KVStore {
		return sessionRepository.NewPostgreSQLKVStore(db, profile)
	})
}

func TestIntegration_SessionStore_MySQL(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	testutil.SkipIfNoMySQL(t)

	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)

	runSessionStoreFlow(t, db, func(db *sql.DB, profile string) sessionUseCase.KVStore {
		return sessionRepository.NewMySQLKVStore(db, profile)
	})
}

func runSessionStoreFlow(t *testing.T, db *sql.DB, newKV kvFactory) {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	sealer, err := sessionService.NewChaCha20Sealer(key)
	require.NoError(t, err)

	store := sessionUseCase.NewSessionStore(newKV(db, "default"), sealer, logger)
	other := sessionUseCase.NewSessionStore(newKV(db, "other"), sealer, logger)

	t.Run("login persists the session", func(t *testing.T) {
		require.NoError(t, store.Handle(ctx, sessionDomain.LoginEvent(&sessionDomain.Session{
			AccessToken:  "A1",
			RefreshToken: "R1",
		})))

		session, err := store.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, "A1", session.AccessToken)
		assert.Equal(t, "R1", session.RefreshToken)
	})

	t.Run("profiles are isolated", func(t *testing.T) {
		session, err := other.Get(ctx)
		require.NoError(t, err)
		assert.True(t, session.IsEmpty())
	})

	t.Run("values are sealed at rest", func(t *testing.T) {
		var count int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM session_kv").Scan(&count))
		assert.GreaterOrEqual(t, count, 2)

		rows, err := db.Query("SELECT kv_value FROM session_kv")
		require.NoError(t, err)
		defer func() { _ = rows.Close() }()
		for rows.Next() {
			var value []byte
			require.NoError(t, rows.Scan(&value))
			assert.NotEqual(t, "A1", string(value))
			assert.NotEqual(t, "R1", string(value))
		}
		require.NoError(t, rows.Err())
	})

	t.Run("access update requires the same refresh credential", func(t *testing.T) {
		updated, err := store.UpdateAccessToken(ctx, "R-stale", "A9")
		require.NoError(t, err)
		assert.False(t, updated)

		updated, err = store.UpdateAccessToken(ctx, "R1", "A2")
		require.NoError(t, err)
		assert.True(t, updated)

		session, err := store.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, "A2", session.AccessToken)
		assert.Equal(t, "R1", session.RefreshToken)
	})

	t.Run("logout clears the session", func(t *testing.T) {
		require.NoError(t, store.Handle(ctx, sessionDomain.LogoutEvent()))

		session, err := store.Get(ctx)
		require.NoError(t, err)
		assert.True(t, session.IsEmpty())
	})
}
