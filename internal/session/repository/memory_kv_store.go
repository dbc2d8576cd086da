// Package repository implements the durable key-value backends behind the session store.
package repository

import (
	"context"
	"sync"

	sessionDomain "github.com/allisson/storefront/internal/session/domain"
)

// MemoryKVStore keeps values in process memory. Sessions do not survive a restart.
type MemoryKVStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryKVStore creates an empty in-memory store.
func NewMemoryKVStore() *MemoryKVStore {
	return &MemoryKVStore{values: make(map[string][]byte)}
}

// Get returns copies of the stored values for keys.
func (m *MemoryKVStore) Get(ctx context.Context, keys ...string) (map[string][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string][]byte, len(keys))
	for _, key := range keys {
		if value, ok := m.values[key]; ok {
			out[key] = append([]byte(nil), value...)
		}
	}
	return out, nil
}

// Apply writes batch under a single lock.
func (m *MemoryKVStore) Apply(ctx context.Context, batch sessionDomain.Batch) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range batch.Deletes {
		delete(m.values, key)
	}
	for key, value := range batch.Puts {
		m.values[key] = append([]byte(nil), value...)
	}
	return nil
}

// Close is a no-op.
func (m *MemoryKVStore) Close() error {
	return nil
}
