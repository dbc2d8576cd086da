package service

import (
	"context"
	"fmt"

	"gocloud.dev/secrets"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// KeeperSealer delegates sealing to a gocloud.dev/secrets keeper.
type KeeperSealer struct {
	keeper *secrets.Keeper
}

// OpenKeeperSealer opens the keeper for keyURI.
// Supports: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://
func OpenKeeperSealer(ctx context.Context, keyURI string) (*KeeperSealer, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return &KeeperSealer{keeper: keeper}, nil
}

func (k *KeeperSealer) Seal(ctx context.Context, plaintext []byte) ([]byte, error) {
	ciphertext, err := k.keeper.Encrypt(ctx, plaintext)
	if err != nil {
		return nil, fmt.Errorf("failed to seal with keeper: %w", err)
	}
	return ciphertext, nil
}

func (k *KeeperSealer) Open(ctx context.Context, ciphertext []byte) ([]byte, error) {
	plaintext, err := k.keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnseal, err)
	}
	return plaintext, nil
}

func (k *KeeperSealer) Close() error {
	return k.keeper.Close()
}
