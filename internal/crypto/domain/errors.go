package domain

import (
	"github.com/allisson/gymbuddy/internal/errors"
)

// Key material and transport cipher errors.
//
// Key material errors all wrap ErrKeyMaterialUnavailable. They are start-up
// fatal: the server refuses to run without a usable RSA key pair, so none of
// them maps to a 4xx status.
//
// ErrDecryptionFailed wraps no sentinel. The authentication use case folds it
// into an invalid-credentials failure, so a client sees the same response for
// an undecryptable password as for a wrong one.
var (
	// ErrKeyMaterialUnavailable indicates the RSA key pair could not be loaded.
	ErrKeyMaterialUnavailable = errors.New("key material unavailable")

	// ErrInvalidKeyMaterial indicates the key bytes are not a parsable RSA key.
	ErrInvalidKeyMaterial = errors.Wrap(ErrKeyMaterialUnavailable, "invalid key material")

	// ErrKeyTooSmall indicates the RSA modulus is below the configured minimum.
	ErrKeyTooSmall = errors.Wrap(ErrKeyMaterialUnavailable, "rsa key too small")

	// ErrKeyPairMismatch indicates the configured public key does not belong to the private key.
	ErrKeyPairMismatch = errors.Wrap(ErrKeyMaterialUnavailable, "public key does not match private key")

	// ErrDecryptionFailed indicates an RSA ciphertext could not be decrypted.
	//
	// Causes include the wrong key, a corrupted or truncated ciphertext and
	// mismatched padding. The cause is never reported to the caller.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrPlaintextTooLong indicates the message exceeds what the key and padding can carry.
	//
	// HTTP Status: 400 Bad Request
	ErrPlaintextTooLong = errors.Wrap(errors.ErrInvalidInput, "plaintext too long for rsa key")

	// ErrUnsupportedPadding indicates an unknown padding name.
	//
	// HTTP Status: 400 Bad Request
	ErrUnsupportedPadding = errors.Wrap(errors.ErrInvalidInput, "unsupported rsa padding")
)
