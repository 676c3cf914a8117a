package domain

import (
	"github.com/allisson/gymbuddy/internal/errors"
)

// Authentication errors.
var (
	// ErrInvalidCredentials indicates a login attempt failed.
	//
	// Decryption, lookup and verification failures all collapse into this
	// error so a client cannot tell which step rejected it.
	//
	// HTTP Status: 401 Unauthorized
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid username or password")

	// ErrInvalidSessionToken indicates a session token is malformed, tampered, expired or foreign.
	ErrInvalidSessionToken = errors.Wrap(errors.ErrUnauthorized, "invalid session token")

	// ErrInvalidLoginInput indicates a login request without a username or ciphertext.
	//
	// HTTP Status: 400 Bad Request
	ErrInvalidLoginInput = errors.Wrap(errors.ErrInvalidInput, "username and password are required")

	// ErrCredentialNotFound indicates no credential source knows the identifier.
	ErrCredentialNotFound = errors.Wrap(errors.ErrNotFound, "credential not found")

	// ErrEmptyPassword indicates an attempt to hash an empty password.
	ErrEmptyPassword = errors.Wrap(errors.ErrInvalidInput, "password must not be empty")

	// ErrWeakSessionSecret indicates the session signing secret is missing or too short.
	ErrWeakSessionSecret = errors.Wrap(errors.ErrInvalidInput, "session token secret must be at least 32 bytes")

	// ErrInvalidFallbackAccount indicates a malformed FALLBACK_ACCOUNTS entry.
	ErrInvalidFallbackAccount = errors.Wrap(errors.ErrInvalidInput, "invalid fallback account")
)
