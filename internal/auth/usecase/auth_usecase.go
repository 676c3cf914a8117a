package usecase

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	authDomain "github.com/allisson/gymbuddy/internal/auth/domain"
	authService "github.com/allisson/gymbuddy/internal/auth/service"
	cryptoDomain "github.com/allisson/gymbuddy/internal/crypto/domain"
	cryptoService "github.com/allisson/gymbuddy/internal/crypto/service"
	apperrors "github.com/allisson/gymbuddy/internal/errors"
)

// Reasons recorded in the log when a login is rejected. Clients never see them.
const (
	reasonDecrypt       = "decrypt_failed"
	reasonBlankPassword = "blank_password"
	reasonUnknownUser   = "unknown_user"
	reasonHashMismatch  = "password_mismatch"
)

// unknownAccountPassword seeds the hash verified when no account matches, so
// an unknown identifier costs as much as a wrong password.
const unknownAccountPassword = authDomain.PlainPassword("gymbuddy-unknown-account")

// authUseCase implements AuthUseCase.
type authUseCase struct {
	cipher        cryptoService.TransportCipher
	credentials   CredentialSource
	hasher        authService.PasswordHasher
	sessionTokens authService.SessionTokenService
	logger        *slog.Logger

	dummyHashOnce sync.Once
	dummyHash     string
}

// NewAuthUseCase creates an AuthUseCase.
// credentials is usually a chain of the user store followed by the fallback source.
func NewAuthUseCase(
	cipher cryptoService.TransportCipher,
	credentials CredentialSource,
	hasher authService.PasswordHasher,
	sessionTokens authService.SessionTokenService,
	logger *slog.Logger,
) AuthUseCase {
	return &authUseCase{
		cipher:        cipher,
		credentials:   credentials,
		hasher:        hasher,
		sessionTokens: sessionTokens,
		logger:        logger,
	}
}

// Authenticate runs decrypt, lookup and verify in that order.
func (a *authUseCase) Authenticate(
	ctx context.Context,
	credential *authDomain.EncryptedCredential,
) (*authDomain.Identity, error) {
	if credential == nil {
		return nil, authDomain.ErrInvalidLoginInput
	}
	identifier := strings.TrimSpace(credential.UsernameOrEmail)
	if identifier == "" || len(credential.EncryptedPassword) == 0 {
		return nil, authDomain.ErrInvalidLoginInput
	}

	plaintext, err := a.cipher.Decrypt(credential.EncryptedPassword)
	if err != nil {
		return nil, a.reject(ctx, identifier, reasonDecrypt)
	}
	password := authDomain.PlainPassword(plaintext)
	cryptoDomain.Zero(plaintext)

	if password.IsBlank() {
		return nil, a.reject(ctx, identifier, reasonBlankPassword)
	}

	record, err := a.lookup(ctx, identifier)
	if err != nil {
		if apperrors.Is(err, authDomain.ErrCredentialNotFound) {
			a.verifyDummy(ctx, password)
			return nil, a.reject(ctx, identifier, reasonUnknownUser)
		}
		return nil, err
	}

	if !a.hasher.Verify(password, record.PasswordHash) {
		return nil, a.reject(ctx, identifier, reasonHashMismatch)
	}

	return &authDomain.Identity{
		Subject: record.Username,
		UserID:  record.UserID,
		Source:  record.Source,
	}, nil
}

// Login authenticates the credential and issues a session token.
func (a *authUseCase) Login(
	ctx context.Context,
	credential *authDomain.EncryptedCredential,
) (*authDomain.LoginOutput, error) {
	identity, err := a.Authenticate(ctx, credential)
	if err != nil {
		return nil, err
	}

	token, err := a.sessionTokens.Issue(identity.Subject, identity.UserID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to issue session token")
	}

	if a.logger != nil {
		a.logger.InfoContext(ctx, "login succeeded",
			slog.String("username", identity.Subject),
			slog.String("source", identity.Source),
		)
	}

	return &authDomain.LoginOutput{Identity: identity, Token: token}, nil
}

// lookup resolves identifier by username first and, when it looks like an
// email, by lower-cased email second.
func (a *authUseCase) lookup(ctx context.Context, identifier string) (*authDomain.CredentialRecord, error) {
	record, err := a.credentials.FindByUsername(ctx, identifier)
	if err == nil || !apperrors.Is(err, authDomain.ErrCredentialNotFound) {
		return record, err
	}
	if !strings.Contains(identifier, "@") {
		return nil, err
	}
	return a.credentials.FindByEmail(ctx, strings.ToLower(identifier))
}

// verifyDummy runs a verification that always fails against a hash produced
// with the configured policy. The hash is computed on first use.
func (a *authUseCase) verifyDummy(ctx context.Context, password authDomain.PlainPassword) {
	a.dummyHashOnce.Do(func() {
		hash, err := a.hasher.Hash(unknownAccountPassword)
		if err != nil {
			if a.logger != nil {
				a.logger.ErrorContext(ctx, "failed to compute placeholder password hash", slog.Any("error", err))
			}
			return
		}
		a.dummyHash = hash
	})
	if a.dummyHash == "" {
		return
	}
	_ = a.hasher.Verify(password, a.dummyHash)
}

func (a *authUseCase) reject(ctx context.Context, identifier, reason string) error {
	if a.logger != nil {
		a.logger.InfoContext(ctx, "login rejected",
			slog.String("username", identifier),
			slog.String("reason", reason),
		)
	}
	return authDomain.ErrInvalidCredentials
}
