package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionToken is a freshly issued stateless session token.
type SessionToken struct {
	Token     string
	Subject   string
	UserID    uuid.UUID
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// SessionClaims are the verified claims of a presented session token.
type SessionClaims struct {
	ID        string
	Subject   string
	UserID    uuid.UUID
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Identity converts verified claims into a request identity.
func (c *SessionClaims) Identity() *Identity {
	source := SourceFallback
	if c.UserID != uuid.Nil {
		source = SourceUserStore
	}
	return &Identity{Subject: c.Subject, UserID: c.UserID, Source: source}
}

// LoginOutput is returned by a successful login.
type LoginOutput struct {
	Identity *Identity
	Token    *SessionToken
}
