// Package service provides the technical services behind login: password
// hashing and stateless session token signing.
package service

import (
	"github.com/google/uuid"

	authDomain "github.com/allisson/gymbuddy/internal/auth/domain"
)

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	// Hash returns a PHC encoded hash with an embedded random salt.
	// Returns ErrEmptyPassword for an empty password.
	Hash(password authDomain.PlainPassword) (string, error)

	// Verify reports whether password matches storedHash.
	// Malformed or unsupported hashes never match.
	Verify(password authDomain.PlainPassword, storedHash string) bool
}

// SessionTokenService issues and validates stateless session tokens.
type SessionTokenService interface {
	// Issue signs a new token for subject. userID may be uuid.Nil.
	Issue(subject string, userID uuid.UUID) (*authDomain.SessionToken, error)

	// Validate verifies signature, issuer and lifetime.
	// Every failure is reported as ErrInvalidSessionToken.
	Validate(token string) (*authDomain.SessionClaims, error)
}
