package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/allisson/storefront/internal/database"
	apperrors "github.com/allisson/storefront/internal/errors"
	sessionDomain "github.com/allisson/storefront/internal/session/domain"
)

// MySQLKVStore stores session values in the session_kv table of a MySQL database.
type MySQLKVStore struct {
	db        *sql.DB
	txManager database.TxManager
	profile   string
}

// Get retrieves the values stored for keys under the store profile.
func (m *MySQLKVStore) Get(ctx context.Context, keys ...string) (map[string][]byte, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT kv_key, kv_value FROM session_kv WHERE profile = ?`

	rows, err := querier.QueryContext(ctx, query, m.profile)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get session values")
	}
	defer func() { _ = rows.Close() }()

	values := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan session value")
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate session values")
	}

	return filterKeys(values, keys), nil
}

// Apply writes batch inside one transaction.
func (m *MySQLKVStore) Apply(ctx context.Context, batch sessionDomain.Batch) error {
	if batch.IsEmpty() {
		return nil
	}

	return m.txManager.WithTx(ctx, func(ctx context.Context) error {
		querier := database.GetTx(ctx, m.db)
		now := time.Now().UTC()

		for _, key := range batch.Deletes {
			query := `DELETE FROM session_kv WHERE profile = ? AND kv_key = ?`
			if _, err := querier.ExecContext(ctx, query, m.profile, key); err != nil {
				return apperrors.Wrap(err, "failed to delete session value")
			}
		}

		for _, key := range sortedPuts(batch) {
			query := `INSERT INTO session_kv (profile, kv_key, kv_value, updated_at)
					  VALUES (?, ?, ?, ?)
					  ON DUPLICATE KEY UPDATE kv_value = VALUES(kv_value), updated_at = VALUES(updated_at)`
			if _, err := querier.ExecContext(ctx, query, m.profile, key, batch.Puts[key], now); err != nil {
				return apperrors.Wrap(err, "failed to put session value")
			}
		}
		return nil
	})
}

// Close is a no-op; the connection pool is owned by the caller.
func (m *MySQLKVStore) Close() error {
	return nil
}

// NewMySQLKVStore creates a new MySQL session KV store.
func NewMySQLKVStore(db *sql.DB, profile string) *MySQLKVStore {
	return &MySQLKVStore{
		db:        db,
		txManager: database.NewTxManager(db, database.WithIsolation(sql.LevelReadCommitted)),
		profile:   profile,
	}
}
