package service

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"os"
	"strings"

	cryptoDomain "github.com/allisson/gymbuddy/internal/crypto/domain"
	"github.com/allisson/gymbuddy/internal/errors"
)

// KeySource describes where the transport key pair comes from.
type KeySource struct {
	// PrivateKey holds inline key material and takes precedence over PrivateKeyPath.
	PrivateKey string
	// PrivateKeyPath is read when PrivateKey is empty.
	PrivateKeyPath string
	// PublicKeyPath optionally points at a public key that must match the private key.
	PublicKeyPath string
	// KMSKeyURI, when set, means the private key material is base64 encoded KMS
	// ciphertext that is unwrapped before parsing.
	KMSKeyURI string
	// MinKeyBits is the smallest modulus accepted. Zero means DefaultKeyBits.
	MinKeyBits int
}

// KeyProvider owns the process-wide RSA key pair.
// It is immutable after construction and safe for concurrent use.
type KeyProvider struct {
	keyPair      *cryptoDomain.KeyPair
	publicKeyPEM []byte
}

// NewKeyProvider wraps an already validated key pair.
func NewKeyProvider(keyPair *cryptoDomain.KeyPair) (*KeyProvider, error) {
	if keyPair == nil {
		return nil, errors.Wrap(cryptoDomain.ErrKeyMaterialUnavailable, "key pair is required")
	}
	publicKeyPEM, err := keyPair.PublicKeyPEM()
	if err != nil {
		return nil, err
	}
	return &KeyProvider{keyPair: keyPair, publicKeyPEM: publicKeyPEM}, nil
}

// LoadKeyProvider reads, unwraps and validates the key pair described by source.
// Any failure wraps ErrKeyMaterialUnavailable and should stop start-up.
func LoadKeyProvider(ctx context.Context, source KeySource, kmsService KMSService) (*KeyProvider, error) {
	minBits := source.MinKeyBits
	if minBits == 0 {
		minBits = cryptoDomain.DefaultKeyBits
	}

	material, err := readPrivateKeyMaterial(source)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(material)

	if source.KMSKeyURI != "" {
		material, err = unwrapPrivateKeyMaterial(ctx, source.KMSKeyURI, material, kmsService)
		if err != nil {
			return nil, err
		}
		defer cryptoDomain.Zero(material)
	}

	privateKey, err := cryptoDomain.ParsePrivateKey(material)
	if err != nil {
		return nil, err
	}

	var publicKey *rsa.PublicKey
	if source.PublicKeyPath != "" {
		data, err := os.ReadFile(source.PublicKeyPath)
		if err != nil {
			return nil, errors.Wrapf(cryptoDomain.ErrKeyMaterialUnavailable, "read public key %s: %v", source.PublicKeyPath, err)
		}
		publicKey, err = cryptoDomain.ParsePublicKey(data)
		if err != nil {
			return nil, err
		}
	}

	keyPair, err := cryptoDomain.NewKeyPair(privateKey, publicKey, minBits)
	if err != nil {
		return nil, err
	}
	return NewKeyProvider(keyPair)
}

// PublicKey returns the public half of the key pair.
func (p *KeyProvider) PublicKey() *rsa.PublicKey {
	if p == nil || p.keyPair == nil {
		return nil
	}
	return p.keyPair.PublicKey
}

// PublicKeyPEM returns a copy of the PKIX PEM encoding of the public key.
func (p *KeyProvider) PublicKeyPEM() ([]byte, error) {
	if p == nil || len(p.publicKeyPEM) == 0 {
		return nil, errors.Wrap(cryptoDomain.ErrKeyMaterialUnavailable, "public key is not loaded")
	}
	out := make([]byte, len(p.publicKeyPEM))
	copy(out, p.publicKeyPEM)
	return out, nil
}

// Bits returns the modulus size of the loaded key.
func (p *KeyProvider) Bits() int {
	if p == nil || p.keyPair == nil {
		return 0
	}
	return p.keyPair.Bits()
}

func readPrivateKeyMaterial(source KeySource) ([]byte, error) {
	if strings.TrimSpace(source.PrivateKey) != "" {
		return []byte(source.PrivateKey), nil
	}
	if source.PrivateKeyPath == "" {
		return nil, errors.Wrap(cryptoDomain.ErrKeyMaterialUnavailable, "no private key configured")
	}

	data, err := os.ReadFile(source.PrivateKeyPath)
	if err != nil {
		return nil, errors.Wrapf(cryptoDomain.ErrKeyMaterialUnavailable, "read private key %s: %v", source.PrivateKeyPath, err)
	}
	return data, nil
}

func unwrapPrivateKeyMaterial(ctx context.Context, keyURI string, material []byte, kmsService KMSService) ([]byte, error) {
	if kmsService == nil {
		return nil, errors.Wrap(cryptoDomain.ErrKeyMaterialUnavailable, "kms service is required to unwrap the private key")
	}

	ciphertext, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(string(material)), ""))
	if err != nil {
		return nil, errors.Wrap(cryptoDomain.ErrInvalidKeyMaterial, "wrapped private key is not base64")
	}

	plaintext, err := kmsService.Unwrap(ctx, keyURI, ciphertext)
	if err != nil {
		return nil, errors.Wrap(cryptoDomain.ErrKeyMaterialUnavailable, err.Error())
	}
	return plaintext, nil
}
