package domain

import (
	"strings"

	"github.com/allisson/gymbuddy/internal/errors"
)

// Padding names the RSA encryption scheme used for password transport.
//
// Client and server must agree on it out of band; the public-key endpoint
// only serves the key itself.
type Padding string

const (
	// PaddingOAEP is RSAES-OAEP with SHA-256 as both the label hash and the
	// MGF1 hash, and an empty label. It is the default.
	PaddingOAEP Padding = "oaep"

	// PaddingPKCS1v15 is RSAES-PKCS1-v1_5, kept for clients that can only
	// produce the legacy scheme (for example Node's RSA_PKCS1_PADDING or the
	// JCE "RSA" transformation).
	PaddingPKCS1v15 Padding = "pkcs1v15"
)

// ParsePadding maps a configuration value to a Padding.
// Matching is case-insensitive and an empty value selects PaddingOAEP.
func ParsePadding(value string) (Padding, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(PaddingOAEP):
		return PaddingOAEP, nil
	case string(PaddingPKCS1v15):
		return PaddingPKCS1v15, nil
	default:
		return "", errors.Wrapf(ErrUnsupportedPadding, "padding %q", value)
	}
}

// MaxPlaintextSize returns how many bytes a key of keySize bytes can encrypt with p.
func (p Padding) MaxPlaintextSize(keySize int) int {
	var overhead int
	switch p {
	case PaddingPKCS1v15:
		overhead = 11
	default:
		// 2*SHA-256 size + 2
		overhead = 66
	}
	if keySize <= overhead {
		return 0
	}
	return keySize - overhead
}
