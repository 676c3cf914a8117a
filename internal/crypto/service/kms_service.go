package service

import (
	"context"
	"fmt"

	"gocloud.dev/secrets"

	cryptoDomain "github.com/allisson/gymbuddy/internal/crypto/domain"

	// KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// kmsService implements KMSService using gocloud.dev/secrets.
type kmsService struct{}

// NewKMSService creates a new KMS service instance.
func NewKMSService() KMSService {
	return &kmsService{}
}

// OpenKeeper opens a secrets.Keeper for keyURI.
func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return keeper, nil
}

// Wrap encrypts plaintext with a short-lived keeper for keyURI.
func (k *kmsService) Wrap(ctx context.Context, keyURI string, plaintext []byte) (ciphertext []byte, err error) {
	keeper, err := k.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close KMS keeper: %w", closeErr)
		}
	}()

	ciphertext, err = keeper.Encrypt(ctx, plaintext)
	if err != nil {
		return nil, fmt.Errorf("failed to wrap key material: %w", err)
	}
	return ciphertext, nil
}

// Unwrap decrypts ciphertext with a short-lived keeper for keyURI.
func (k *kmsService) Unwrap(ctx context.Context, keyURI string, ciphertext []byte) (plaintext []byte, err error) {
	keeper, err := k.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close KMS keeper: %w", closeErr)
		}
	}()

	plaintext, err = keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to unwrap key material: %w", err)
	}
	return plaintext, nil
}
