package service

import (
	"strings"

	"github.com/allisson/go-pwdhash"
	"golang.org/x/crypto/bcrypt"

	authDomain "github.com/allisson/gymbuddy/internal/auth/domain"
	apperrors "github.com/allisson/gymbuddy/internal/errors"
)

// Supported values for the hashing policy.
const (
	PolicyInteractive = "interactive"
	PolicyModerate    = "moderate"
)

var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// passwordHasher implements PasswordHasher with Argon2id.
// Hashes produced by older deployments with bcrypt still verify.
type passwordHasher struct {
	hasher *pwdhash.PasswordHasher
}

// NewPasswordHasher creates an Argon2id PasswordHasher for the named policy.
// An empty policy selects interactive.
func NewPasswordHasher(policy string) (PasswordHasher, error) {
	var (
		hasher *pwdhash.PasswordHasher
		err    error
	)
	switch strings.ToLower(strings.TrimSpace(policy)) {
	case "", PolicyInteractive:
		hasher, err = pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	case PolicyModerate:
		hasher, err = pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyModerate))
	default:
		return nil, apperrors.Wrapf(apperrors.ErrInvalidInput, "unknown password hash policy %q", policy)
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}
	return &passwordHasher{hasher: hasher}, nil
}

// Hash hashes password with Argon2id.
func (h *passwordHasher) Hash(password authDomain.PlainPassword) (string, error) {
	if password.IsBlank() {
		return "", authDomain.ErrEmptyPassword
	}
	hash, err := h.hasher.Hash(password.Bytes())
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return hash, nil
}

// Verify compares password against storedHash in constant time.
func (h *passwordHasher) Verify(password authDomain.PlainPassword, storedHash string) bool {
	if password.IsBlank() || storedHash == "" {
		return false
	}

	if isBcryptHash(storedHash) {
		return bcrypt.CompareHashAndPassword([]byte(storedHash), password.Bytes()) == nil
	}

	ok, err := h.hasher.Verify(password.Bytes(), storedHash)
	if err != nil {
		return false
	}
	return ok
}

func isBcryptHash(hash string) bool {
	for _, prefix := range bcryptPrefixes {
		if strings.HasPrefix(hash, prefix) {
			return true
		}
	}
	return false
}
