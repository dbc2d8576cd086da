package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type txKey struct{}

// Querier is satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxManager runs a function inside a transaction carried by the context.
type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// TxOption configures a TxManager.
type TxOption func(*sql.TxOptions)

// WithIsolation sets the isolation level of every transaction the manager begins.
func WithIsolation(level sql.IsolationLevel) TxOption {
	return func(o *sql.TxOptions) {
		o.Isolation = level
	}
}

type sqlTxManager struct {
	db   *sql.DB
	opts *sql.TxOptions
}

// NewTxManager creates a TxManager for db.
func NewTxManager(db *sql.DB, opts ...TxOption) TxManager {
	txOpts := &sql.TxOptions{}
	for _, opt := range opts {
		opt(txOpts)
	}
	return &sqlTxManager{db: db, opts: txOpts}
}

// WithTx begins a transaction, runs fn and commits. When ctx already carries a transaction,
// fn joins it and the outermost call decides commit or rollback. A failed rollback is
// reported together with the error of fn.
func (m *sqlTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, m.opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("failed to rollback transaction: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetTx returns the transaction carried by ctx, or db when there is none.
func GetTx(ctx context.Context, db *sql.DB) Querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}
