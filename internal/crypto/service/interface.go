// Package service implements RSA password transport: loading the key pair,
// encrypting and decrypting credentials, and unwrapping KMS protected keys.
package service

import (
	"context"
	"crypto/rsa"

	cryptoDomain "github.com/allisson/gymbuddy/internal/crypto/domain"
)

// TransportCipher protects passwords between client and server.
type TransportCipher interface {
	// Encrypt encrypts plaintext for publicKey with the configured padding.
	// Returns ErrPlaintextTooLong when the message does not fit the key.
	Encrypt(plaintext []byte, publicKey *rsa.PublicKey) ([]byte, error)

	// Decrypt recovers a plaintext encrypted for the server's public key.
	// Every failure is reported as ErrDecryptionFailed. Callers own the
	// returned slice and should Zero it when done.
	Decrypt(ciphertext []byte) ([]byte, error)

	// Padding reports the scheme in use.
	Padding() cryptoDomain.Padding
}

// KMSService wraps and unwraps key material with an external KMS.
type KMSService interface {
	// OpenKeeper opens a keeper for keyURI.
	// Supports gcpkms://, awskms://, azurekeyvault://, hashivault:// and base64key://.
	OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error)

	// Wrap encrypts plaintext key material with the key at keyURI.
	Wrap(ctx context.Context, keyURI string, plaintext []byte) ([]byte, error)

	// Unwrap decrypts key material previously produced by Wrap.
	Unwrap(ctx context.Context, keyURI string, ciphertext []byte) ([]byte, error)
}
