package service

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
)

// sealAAD binds sealed values to this application.
var sealAAD = []byte("storefront-session")

// ChaCha20Sealer seals values with ChaCha20-Poly1305. The output layout is nonce || ciphertext.
type ChaCha20Sealer struct {
	aead cipher.AEAD
}

// NewChaCha20Sealer creates a sealer from a 32-byte key.
func NewChaCha20Sealer(key []byte) (*ChaCha20Sealer, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSealKey, err)
	}
	return &ChaCha20Sealer{aead: aead}, nil
}

// NewChaCha20SealerFromURI parses "chacha20://<base64 key>". Standard and URL-safe base64 are accepted.
func NewChaCha20SealerFromURI(keyURI string) (*ChaCha20Sealer, error) {
	encoded := strings.TrimPrefix(keyURI, chachaScheme)

	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		key, err = base64.URLEncoding.DecodeString(encoded)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: key is not base64", ErrInvalidSealKey)
	}
	return NewChaCha20Sealer(key)
}

func (c *ChaCha20Sealer) Seal(_ context.Context, plaintext []byte) ([]byte, error) {
	nonce := make([]byte, c.aead.NonceSize(), c.aead.NonceSize()+len(plaintext)+c.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return c.aead.Seal(nonce, nonce, plaintext, sealAAD), nil
}

func (c *ChaCha20Sealer) Open(_ context.Context, sealed []byte) ([]byte, error) {
	if len(sealed) < c.aead.NonceSize()+c.aead.Overhead() {
		return nil, ErrUnseal
	}
	nonce, ciphertext := sealed[:c.aead.NonceSize()], sealed[c.aead.NonceSize():]

	plaintext, err := c.aead.Open(nil, nonce, ciphertext, sealAAD)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnseal, err)
	}
	return plaintext, nil
}

func (c *ChaCha20Sealer) Close() error {
	return nil
}
