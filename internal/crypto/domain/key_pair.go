// Package domain defines the RSA key material used to protect passwords in transit.
package domain

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"strings"

	"github.com/allisson/gymbuddy/internal/errors"
)

// PEM block types understood by the parsers.
const (
	pemTypePrivateKey    = "PRIVATE KEY"
	pemTypeRSAPrivateKey = "RSA PRIVATE KEY"
	pemTypePublicKey     = "PUBLIC KEY"
	pemTypeRSAPublicKey  = "RSA PUBLIC KEY"
)

// DefaultKeyBits is the modulus size used when generating a new transport key pair.
const DefaultKeyBits = 2048

// KeyPair is the RSA key pair used for password transport.
//
// A KeyPair is built once at start-up and never mutated afterwards, so it is
// safe to share between goroutines. The private key must not leave the
// process: only the transport cipher reads it.
type KeyPair struct {
	PrivateKey *rsa.PrivateKey
	PublicKey  *rsa.PublicKey
}

// NewKeyPair validates privateKey and pairs it with publicKey.
//
// When publicKey is nil it is derived from the private key. Otherwise it must
// match the private key or ErrKeyPairMismatch is returned. Moduli smaller
// than minBits are rejected with ErrKeyTooSmall.
func NewKeyPair(privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey, minBits int) (*KeyPair, error) {
	if privateKey == nil {
		return nil, errors.Wrap(ErrInvalidKeyMaterial, "private key is required")
	}
	if err := privateKey.Validate(); err != nil {
		return nil, errors.Wrap(ErrInvalidKeyMaterial, err.Error())
	}

	if bits := privateKey.N.BitLen(); bits < minBits {
		return nil, errors.Wrapf(ErrKeyTooSmall, "got %d bits, need at least %d", bits, minBits)
	}

	if publicKey == nil {
		publicKey = &privateKey.PublicKey
	} else if !privateKey.PublicKey.Equal(publicKey) {
		return nil, ErrKeyPairMismatch
	}

	return &KeyPair{PrivateKey: privateKey, PublicKey: publicKey}, nil
}

// GenerateKeyPair creates a fresh key pair with the given modulus size.
func GenerateKeyPair(bits int) (*KeyPair, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate rsa key")
	}
	return NewKeyPair(privateKey, nil, bits)
}

// Bits returns the modulus size in bits.
func (k *KeyPair) Bits() int {
	return k.PublicKey.N.BitLen()
}

// PublicKeyPEM encodes the public key as a PKIX "PUBLIC KEY" PEM block.
func (k *KeyPair) PublicKeyPEM() ([]byte, error) {
	return EncodePublicKeyPEM(k.PublicKey)
}

// PrivateKeyDER returns the PKCS#8 DER encoding of the private key.
// Callers must Zero the result once written.
func (k *KeyPair) PrivateKeyDER() ([]byte, error) {
	der, err := x509.MarshalPKCS8PrivateKey(k.PrivateKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal private key")
	}
	return der, nil
}

// PrivateKeyPEM encodes the private key as a PKCS#8 "PRIVATE KEY" PEM block.
// Callers must Zero the result once written.
func (k *KeyPair) PrivateKeyPEM() ([]byte, error) {
	der, err := k.PrivateKeyDER()
	if err != nil {
		return nil, err
	}
	defer Zero(der)

	return pem.EncodeToMemory(&pem.Block{Type: pemTypePrivateKey, Bytes: der}), nil
}

// EncodePublicKeyPEM encodes publicKey as a PKIX "PUBLIC KEY" PEM block.
func EncodePublicKeyPEM(publicKey *rsa.PublicKey) ([]byte, error) {
	if publicKey == nil {
		return nil, errors.Wrap(ErrKeyMaterialUnavailable, "public key is not loaded")
	}
	der, err := x509.MarshalPKIXPublicKey(publicKey)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidKeyMaterial, err.Error())
	}
	return pem.EncodeToMemory(&pem.Block{Type: pemTypePublicKey, Bytes: der}), nil
}

// ParsePrivateKey decodes an RSA private key.
//
// Accepted forms:
//   - PEM "PRIVATE KEY" (PKCS#8)
//   - PEM "RSA PRIVATE KEY" (PKCS#1)
//   - bare base64 of a PKCS#8 or PKCS#1 DER encoding, whitespace ignored
func ParsePrivateKey(data []byte) (*rsa.PrivateKey, error) {
	der, err := decodeKeyBlock(data, pemTypePrivateKey, pemTypeRSAPrivateKey)
	if err != nil {
		return nil, err
	}
	defer Zero(der)

	if key, err := x509.ParsePKCS8PrivateKey(der); err == nil {
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, errors.Wrap(ErrInvalidKeyMaterial, "private key is not an rsa key")
		}
		return rsaKey, nil
	}

	key, err := x509.ParsePKCS1PrivateKey(der)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidKeyMaterial, "unable to parse private key")
	}
	return key, nil
}

// ParsePublicKey decodes an RSA public key.
//
// Accepted forms:
//   - PEM "PUBLIC KEY" (PKIX / X.509 SubjectPublicKeyInfo)
//   - PEM "RSA PUBLIC KEY" (PKCS#1)
//   - bare base64 of either DER encoding, whitespace ignored
func ParsePublicKey(data []byte) (*rsa.PublicKey, error) {
	der, err := decodeKeyBlock(data, pemTypePublicKey, pemTypeRSAPublicKey)
	if err != nil {
		return nil, err
	}

	if key, err := x509.ParsePKIXPublicKey(der); err == nil {
		rsaKey, ok := key.(*rsa.PublicKey)
		if !ok {
			return nil, errors.Wrap(ErrInvalidKeyMaterial, "public key is not an rsa key")
		}
		return rsaKey, nil
	}

	key, err := x509.ParsePKCS1PublicKey(der)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidKeyMaterial, "unable to parse public key")
	}
	return key, nil
}

// decodeKeyBlock returns the DER bytes of a PEM block of one of the allowed
// types, or of a bare base64 payload.
func decodeKeyBlock(data []byte, allowedTypes ...string) ([]byte, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.Wrap(ErrInvalidKeyMaterial, "key material is empty")
	}

	if bytes.HasPrefix(trimmed, []byte("-----BEGIN")) {
		block, _ := pem.Decode(trimmed)
		if block == nil {
			return nil, errors.Wrap(ErrInvalidKeyMaterial, "malformed pem block")
		}
		for _, allowed := range allowedTypes {
			if block.Type == allowed {
				return block.Bytes, nil
			}
		}
		return nil, errors.Wrapf(ErrInvalidKeyMaterial, "unexpected pem block %q", block.Type)
	}

	compact := strings.Join(strings.Fields(string(trimmed)), "")
	der, err := base64.StdEncoding.DecodeString(compact)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidKeyMaterial, "key material is neither pem nor base64")
	}
	return der, nil
}
