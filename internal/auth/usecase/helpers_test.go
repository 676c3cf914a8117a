package usecase

import (
	"context"
	"crypto/rsa"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/gymbuddy/internal/auth/domain"
	cryptoDomain "github.com/allisson/gymbuddy/internal/crypto/domain"
	userDomain "github.com/allisson/gymbuddy/internal/user/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockTransportCipher is a mock implementation of TransportCipher.
type mockTransportCipher struct {
	mock.Mock
}

func (m *mockTransportCipher) Encrypt(plaintext []byte, publicKey *rsa.PublicKey) ([]byte, error) {
	args := m.Called(plaintext, publicKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockTransportCipher) Decrypt(ciphertext []byte) ([]byte, error) {
	args := m.Called(ciphertext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	// Hand out a copy: the use case zeroes what it receives.
	plaintext := append([]byte(nil), args.Get(0).([]byte)...)
	return plaintext, args.Error(1)
}

func (m *mockTransportCipher) Padding() cryptoDomain.Padding {
	return cryptoDomain.PaddingOAEP
}

// mockPasswordHasher is a mock implementation of PasswordHasher.
type mockPasswordHasher struct {
	mock.Mock
}

func (m *mockPasswordHasher) Hash(password authDomain.PlainPassword) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordHasher) Verify(password authDomain.PlainPassword, storedHash string) bool {
	args := m.Called(password, storedHash)
	return args.Bool(0)
}

// mockSessionTokenService is a mock implementation of SessionTokenService.
type mockSessionTokenService struct {
	mock.Mock
}

func (m *mockSessionTokenService) Issue(subject string, userID uuid.UUID) (*authDomain.SessionToken, error) {
	args := m.Called(subject, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.SessionToken), args.Error(1)
}

func (m *mockSessionTokenService) Validate(token string) (*authDomain.SessionClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.SessionClaims), args.Error(1)
}

// mockUserLookup is a mock implementation of UserLookup.
type mockUserLookup struct {
	mock.Mock
}

func (m *mockUserLookup) GetByUsername(ctx context.Context, username string) (*userDomain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

func (m *mockUserLookup) GetByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}
