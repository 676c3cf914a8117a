package domain

import "context"

// KMSKeeper is the subset of *gocloud.dev/secrets.Keeper used to protect the
// transport private key at rest.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}
