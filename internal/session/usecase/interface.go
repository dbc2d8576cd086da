// Package usecase defines the session store and the storage contracts it depends on.
package usecase

import (
	"context"

	sessionDomain "github.com/allisson/storefront/internal/session/domain"
)

// KVStore is durable client-side key-value storage scoped to one profile.
// Implementations must apply a Batch atomically.
type KVStore interface {
	// Get returns the values present for keys. Missing keys are absent from the map.
	Get(ctx context.Context, keys ...string) (map[string][]byte, error)

	// Apply writes every put and delete of batch in a single atomic step.
	Apply(ctx context.Context, batch sessionDomain.Batch) error

	// Close releases the underlying resources.
	Close() error
}

// Sealer protects values at rest. Open must reverse Seal.
type Sealer interface {
	Seal(ctx context.Context, plaintext []byte) ([]byte, error)
	Open(ctx context.Context, ciphertext []byte) ([]byte, error)
}

// SessionStore holds the current credential pair and user blob.
type SessionStore interface {
	// Get returns a copy of the stored session. An absent or half session is returned empty.
	Get(ctx context.Context) (*sessionDomain.Session, error)

	// Set replaces the stored session. A half session is rejected with ErrInvalidSession and
	// an empty session behaves like Clear.
	Set(ctx context.Context, session *sessionDomain.Session) error

	// Clear removes every session key.
	Clear(ctx context.Context) error

	// UpdateAccessToken overwrites the access credential only while the stored refresh
	// credential equals refreshToken. It reports whether the write happened.
	UpdateAccessToken(ctx context.Context, refreshToken, accessToken string) (bool, error)

	// Handle applies a login or logout event.
	Handle(ctx context.Context, event sessionDomain.Event) error
}
