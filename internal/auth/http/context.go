// Package http provides the login endpoint and the middleware that binds
// session identities to requests.
package http

import (
	"context"

	authDomain "github.com/allisson/gymbuddy/internal/auth/domain"
)

// identityKey is a context key type for storing the authenticated identity.
type identityKey struct{}

// WithIdentity stores an authenticated identity in the context.
// This is called by SessionMiddleware after a session token validates.
func WithIdentity(ctx context.Context, identity *authDomain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentity retrieves the authenticated identity from the context.
// Returns (identity, true) if present, or (nil, false) for anonymous requests.
func GetIdentity(ctx context.Context) (*authDomain.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(*authDomain.Identity)
	return identity, ok && identity != nil
}
