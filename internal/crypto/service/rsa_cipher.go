package service

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"

	cryptoDomain "github.com/allisson/gymbuddy/internal/crypto/domain"
	"github.com/allisson/gymbuddy/internal/errors"
)

// rsaCipher implements TransportCipher with the provider's private key.
// It holds no mutable state and is safe for concurrent use.
type rsaCipher struct {
	privateKey *rsa.PrivateKey
	padding    cryptoDomain.Padding
}

// NewTransportCipher creates a TransportCipher bound to the provider's key pair.
func NewTransportCipher(provider *KeyProvider, padding cryptoDomain.Padding) (TransportCipher, error) {
	if provider == nil || provider.keyPair == nil {
		return nil, errors.Wrap(cryptoDomain.ErrKeyMaterialUnavailable, "key provider is not loaded")
	}
	parsed, err := cryptoDomain.ParsePadding(string(padding))
	if err != nil {
		return nil, err
	}

	return &rsaCipher{
		privateKey: provider.keyPair.PrivateKey,
		padding:    parsed,
	}, nil
}

// Padding reports the scheme in use.
func (c *rsaCipher) Padding() cryptoDomain.Padding {
	return c.padding
}

// Encrypt encrypts plaintext for publicKey.
func (c *rsaCipher) Encrypt(plaintext []byte, publicKey *rsa.PublicKey) ([]byte, error) {
	return EncryptWithPublicKey(plaintext, publicKey, c.padding)
}

// Decrypt decrypts ciphertext with the server private key.
func (c *rsaCipher) Decrypt(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) == 0 || len(ciphertext) != c.privateKey.Size() {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	var (
		plaintext []byte
		err       error
	)
	switch c.padding {
	case cryptoDomain.PaddingPKCS1v15:
		plaintext, err = rsa.DecryptPKCS1v15(nil, c.privateKey, ciphertext)
	default:
		plaintext, err = rsa.DecryptOAEP(sha256.New(), nil, c.privateKey, ciphertext, nil)
	}
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	return plaintext, nil
}

// EncryptWithPublicKey encrypts plaintext the way a client would before
// sending it to the login endpoint. It needs no private key, so tooling
// that only holds the public key can use it.
func EncryptWithPublicKey(plaintext []byte, publicKey *rsa.PublicKey, padding cryptoDomain.Padding) ([]byte, error) {
	if publicKey == nil {
		return nil, errors.Wrap(cryptoDomain.ErrKeyMaterialUnavailable, "public key is required")
	}
	if len(plaintext) > padding.MaxPlaintextSize(publicKey.Size()) {
		return nil, cryptoDomain.ErrPlaintextTooLong
	}

	var (
		ciphertext []byte
		err        error
	)
	switch padding {
	case cryptoDomain.PaddingPKCS1v15:
		ciphertext, err = rsa.EncryptPKCS1v15(rand.Reader, publicKey, plaintext)
	case cryptoDomain.PaddingOAEP:
		ciphertext, err = rsa.EncryptOAEP(sha256.New(), rand.Reader, publicKey, plaintext, nil)
	default:
		return nil, errors.Wrapf(cryptoDomain.ErrUnsupportedPadding, "padding %q", padding)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to encrypt with public key")
	}
	return ciphertext, nil
}
