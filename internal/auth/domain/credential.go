// Package domain defines the credential and session types used by the
// login handshake and the request authentication gate.
package domain

import (
	"log/slog"

	"github.com/google/uuid"
)

// Credential sources recorded on an Identity.
const (
	SourceUserStore = "user_store"
	SourceFallback  = "fallback"
)

const redacted = "[REDACTED]"

// PlainPassword is a decrypted password. It only lives for the duration of a
// single authentication and renders as [REDACTED] in every format and log line.
type PlainPassword string

// String implements fmt.Stringer.
func (p PlainPassword) String() string { return redacted }

// GoString implements fmt.GoStringer so %#v is redacted too.
func (p PlainPassword) GoString() string { return redacted }

// LogValue implements slog.LogValuer.
func (p PlainPassword) LogValue() slog.Value { return slog.StringValue(redacted) }

// MarshalJSON keeps the password out of any JSON encoding.
func (p PlainPassword) MarshalJSON() ([]byte, error) { return []byte(`"` + redacted + `"`), nil }

// Bytes returns the raw password. Callers must not log or store the result.
func (p PlainPassword) Bytes() []byte { return []byte(p) }

// IsBlank reports whether the password is empty.
func (p PlainPassword) IsBlank() bool { return len(p) == 0 }

// EncryptedCredential is a login attempt as it arrives from the network.
type EncryptedCredential struct {
	UsernameOrEmail   string
	EncryptedPassword []byte
}

// CredentialRecord is what a credential source knows about an account.
type CredentialRecord struct {
	UserID       uuid.UUID
	Username     string
	PasswordHash string
	Source       string
}

// Identity is the authenticated subject attached to a request.
// UserID is the zero UUID for accounts that do not come from the user store.
type Identity struct {
	Subject string
	UserID  uuid.UUID
	Source  string
}

// HasUserID reports whether the identity maps to a stored user.
func (i *Identity) HasUserID() bool {
	return i != nil && i.UserID != uuid.Nil
}
