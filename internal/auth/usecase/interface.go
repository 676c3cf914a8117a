// Package usecase implements the login handshake: decrypt the transported
// password, look the account up, verify the hash and mint a session token.
package usecase

import (
	"context"

	authDomain "github.com/allisson/gymbuddy/internal/auth/domain"
	userDomain "github.com/allisson/gymbuddy/internal/user/domain"
)

// CredentialSource resolves an identifier to a stored credential.
// Implementations return ErrCredentialNotFound when they do not know the account.
type CredentialSource interface {
	// FindByUsername looks an account up by exact username.
	FindByUsername(ctx context.Context, username string) (*authDomain.CredentialRecord, error)

	// FindByEmail looks an account up by lower-cased email.
	FindByEmail(ctx context.Context, email string) (*authDomain.CredentialRecord, error)
}

// UserLookup is the slice of the user repository the primary credential source needs.
type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (*userDomain.User, error)
	GetByEmail(ctx context.Context, email string) (*userDomain.User, error)
}

// AuthUseCase authenticates encrypted credentials and issues sessions.
type AuthUseCase interface {
	// Authenticate decrypts and verifies a credential.
	//
	// Returns ErrInvalidLoginInput when the identifier or ciphertext is empty,
	// and ErrInvalidCredentials for any decryption, lookup or verification
	// failure. Other store errors are returned wrapped.
	Authenticate(ctx context.Context, credential *authDomain.EncryptedCredential) (*authDomain.Identity, error)

	// Login authenticates and issues a session token for the identity.
	Login(ctx context.Context, credential *authDomain.EncryptedCredential) (*authDomain.LoginOutput, error)
}
