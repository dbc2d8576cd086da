package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/allisson/storefront/internal/database"
	apperrors "github.com/allisson/storefront/internal/errors"
	sessionDomain "github.com/allisson/storefront/internal/session/domain"
)

// PostgreSQLKVStore stores session values in the session_kv table of a PostgreSQL database.
type PostgreSQLKVStore struct {
	db        *sql.DB
	txManager database.TxManager
	profile   string
}

// Get retrieves the values stored for keys under the store profile.
func (p *PostgreSQLKVStore) Get(ctx context.Context, keys ...string) (map[string][]byte, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT kv_key, kv_value FROM session_kv WHERE profile = $1`

	rows, err := querier.QueryContext(ctx, query, p.profile)
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
func (p *PostgreSQLKVStore) Apply(ctx context.Context, batch sessionDomain.Batch) error {
	if batch.IsEmpty() {
		return nil
	}

	return p.txManager.WithTx(ctx, func(ctx context.Context) error {
		querier := database.GetTx(ctx, p.db)
		now := time.Now().UTC()

		for _, key := range batch.Deletes {
			query := `DELETE FROM session_kv WHERE profile = $1 AND kv_key = $2`
			if _, err := querier.ExecContext(ctx, query, p.profile, key); err != nil {
				return apperrors.Wrap(err, "failed to delete session value")
			}
		}

		for _, key := range sortedPuts(batch) {
			query := `INSERT INTO session_kv (profile, kv_key, kv_value, updated_at)
					  VALUES ($1, $2, $3, $4)
					  ON CONFLICT (profile, kv_key)
					  DO UPDATE SET kv_value = EXCLUDED.kv_value, updated_at = EXCLUDED.updated_at`
			if _, err := querier.ExecContext(ctx, query, p.profile, key, batch.Puts[key], now); err != nil {
				return apperrors.Wrap(err, "failed to put session value")
			}
		}
		return nil
	})
}

// Close is a no-op; the connection pool is owned by the caller.
func (p *PostgreSQLKVStore) Close() error {
	return nil
}

// NewPostgreSQLKVStore creates a new PostgreSQL session KV store.
func NewPostgreSQLKVStore(db *sql.DB, profile string) *PostgreSQLKVStore {
	return &PostgreSQLKVStore{
		db:        db,
		txManager: database.NewTxManager(db, database.WithIsolation(sql.LevelReadCommitted)),
		profile:   profile,
	}
}
