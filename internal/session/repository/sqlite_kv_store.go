package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/allisson/storefront/internal/database"
	apperrors "github.com/allisson/storefront/internal/errors"
	sessionDomain "github.com/allisson/storefront/internal/session/domain"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS session_kv (
	profile    TEXT NOT NULL,
	kv_key     TEXT NOT NULL,
	kv_value   BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL,
	PRIMARY KEY (profile, kv_key)
)`

// SQLiteKVStore stores session values in a local sqlite database file. It owns the database.
type SQLiteKVStore struct {
	db        *sql.DB
	txManager database.TxManager
	profile   string
}

// OpenSQLiteKVStore opens (or creates) the sqlite database at path and ensures the schema.
func OpenSQLiteKVStore(ctx context.Context, path, profile string) (*SQLiteKVStore, error) {
	db, err := database.OpenSQLite(path)
	if err != nil {
		return nil, err
	}

	store, err := NewSQLiteKVStore(ctx, db, profile)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// NewSQLiteKVStore wraps an open sqlite database and ensures the schema.
func NewSQLiteKVStore(ctx context.Context, db *sql.DB, profile string) (*SQLiteKVStore, error) {
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return nil, apperrors.Wrap(err, "failed to create session_kv table")
	}
	return &SQLiteKVStore{db: db, txManager: database.NewTxManager(db), profile: profile}, nil
}

func (s *SQLiteKVStore) Get(ctx context.Context, keys ...string) (map[string][]byte, error) {
	querier := database.GetTx(ctx, s.db)

	rows, err := querier.QueryContext(ctx, `SELECT kv_key, kv_value FROM session_kv WHERE profile = ?`, s.profile)
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

func (s *SQLiteKVStore) Apply(ctx context.Context, batch sessionDomain.Batch) error {
	if batch.IsEmpty() {
		return nil
	}

	return s.txManager.WithTx(ctx, func(ctx context.Context) error {
		querier := database.GetTx(ctx, s.db)
		now := time.Now().UTC()

		for _, key := range batch.Deletes {
			query := `DELETE FROM session_kv WHERE profile = ? AND kv_key = ?`
			if _, err := querier.ExecContext(ctx, query, s.profile, key); err != nil {
				return apperrors.Wrap(err, "failed to delete session value")
			}
		}

		for _, key := range sortedPuts(batch) {
			query := `INSERT INTO session_kv (profile, kv_key, kv_value, updated_at)
					  VALUES (?, ?, ?, ?)
					  ON CONFLICT(profile, kv_key)
					  DO UPDATE SET kv_value = excluded.kv_value, updated_at = excluded.updated_at`
			if _, err := querier.ExecContext(ctx, query, s.profile, key, batch.Puts[key], now); err != nil {
				return apperrors.Wrap(err, "failed to put session value")
			}
		}
		return nil
	})
}

// Close closes the sqlite database.
func (s *SQLiteKVStore) Close() error {
	return s.db.Close()
}
