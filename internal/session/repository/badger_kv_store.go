package repository

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"

	apperrors "github.com/allisson/storefront/internal/errors"
	sessionDomain "github.com/allisson/storefront/internal/session/domain"
)

// BadgerKVStore keeps session values in an embedded badger database under "session/<profile>/<key>".
type BadgerKVStore struct {
	db      *badger.DB
	profile string
	owned   bool
}

// OpenBadgerKVStore opens the badger database directory at path.
func OpenBadgerKVStore(path, profile string) (*BadgerKVStore, error) {
	return openBadger(badger.DefaultOptions(path).WithLogger(nil), profile)
}

// OpenInMemoryBadgerKVStore opens a badger database that lives only in memory.
func OpenInMemoryBadgerKVStore(profile string) (*BadgerKVStore, error) {
	return openBadger(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil), profile)
}

func openBadger(opts badger.Options, profile string) (*BadgerKVStore, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open badger database")
	}
	store := NewBadgerKVStore(db, profile)
	store.owned = true
	return store, nil
}

// NewBadgerKVStore wraps an open badger database. The database is not closed by Close.
func NewBadgerKVStore(db *badger.DB, profile string) *BadgerKVStore {
	return &BadgerKVStore{db: db, profile: profile}
}

func (b *BadgerKVStore) key(name string) []byte {
	return []byte("session/" + b.profile + "/" + name)
}

func (b *BadgerKVStore) Get(ctx context.Context, keys ...string) (map[string][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make(map[string][]byte, len(keys))
	err := b.db.View(func(txn *badger.Txn) error {
		for _, key := range keys {
			item, err := txn.Get(b.key(key))
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			out[key] = value
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get session values")
	}
	return out, nil
}

// Apply writes batch in one badger update transaction.
func (b *BadgerKVStore) Apply(ctx context.Context, batch sessionDomain.Batch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if batch.IsEmpty() {
		return nil
	}

	err := b.db.Update(func(txn *badger.Txn) error {
		for _, key := range batch.Deletes {
			if err := txn.Delete(b.key(key)); err != nil {
				return err
			}
		}
		for _, key := range sortedPuts(batch) {
			if err := txn.Set(b.key(key), batch.Puts[key]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.Wrap(err, "failed to apply session batch")
	}
	return nil
}

// Close closes the database when the store opened it.
func (b *BadgerKVStore) Close() error {
	if !b.owned {
		return nil
	}
	return b.db.Close()
}
