// Package service provides at-rest sealing of persisted session values.
package service

import (
	"context"
	"strings"

	apperrors "github.com/allisson/storefront/internal/errors"
)

// ErrInvalidSealKey indicates a malformed SESSION_SEAL_KEY_URI.
var ErrInvalidSealKey = apperrors.Wrap(apperrors.ErrInvalidInput, "invalid session seal key")

// ErrUnseal indicates a value that could not be authenticated or decrypted.
var ErrUnseal = apperrors.New("failed to unseal session value")

const chachaScheme = "chacha20://"

// Sealer encrypts values before they reach the KV backend.
type Sealer interface {
	Seal(ctx context.Context, plaintext []byte) ([]byte, error)
	Open(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// OpenSealer selects a Sealer from keyURI:
//
//	""                     no sealing
//	chacha20://<base64>    local 256-bit ChaCha20-Poly1305 key
//	anything else          gocloud.dev/secrets keeper URI (base64key://, hashivault://, awskms://, ...)
func OpenSealer(ctx context.Context, keyURI string) (Sealer, error) {
	keyURI = strings.TrimSpace(keyURI)
	switch {
	case keyURI == "":
		return NoopSealer{}, nil
	case strings.HasPrefix(keyURI, chachaScheme):
		return NewChaCha20SealerFromURI(keyURI)
	default:
		return OpenKeeperSealer(ctx, keyURI)
	}
}

// NoopSealer stores values unchanged.
type NoopSealer struct{}

func (NoopSealer) Seal(_ context.Context, plaintext []byte) ([]byte, error) {
	return plaintext, nil
}

func (NoopSealer) Open(_ context.Context, ciphertext []byte) ([]byte, error) {
	return ciphertext, nil
}

func (NoopSealer) Close() error {
	return nil
}
