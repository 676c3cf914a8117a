// Package mocks provides testify mocks for the auth use case layer.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/gymbuddy/internal/auth/domain"
)

// MockAuthUseCase is a mock implementation of AuthUseCase.
type MockAuthUseCase struct {
	mock.Mock
}

// Authenticate mocks the Authenticate method of AuthUseCase.
func (m *MockAuthUseCase) Authenticate(
	ctx context.Context,
	credential *authDomain.EncryptedCredential,
) (*authDomain.Identity, error) {
	args := m.Called(ctx, credential)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Identity), args.Error(1)
}

// Login mocks the Login method of AuthUseCase.
func (m *MockAuthUseCase) Login(
	ctx context.Context,
	credential *authDomain.EncryptedCredential,
) (*authDomain.LoginOutput, error) {
	args := m.Called(ctx, credential)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.LoginOutput), args.Error(1)
}

// MockCredentialSource is a mock implementation of CredentialSource.
type MockCredentialSource struct {
	mock.Mock
}

// FindByUsername mocks the FindByUsername method of CredentialSource.
func (m *MockCredentialSource) FindByUsername(
	ctx context.Context,
	username string,
) (*authDomain.CredentialRecord, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.CredentialRecord), args.Error(1)
}

// FindByEmail mocks the FindByEmail method of CredentialSource.
func (m *MockCredentialSource) FindByEmail(
	ctx context.Context,
	email string,
) (*authDomain.CredentialRecord, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.CredentialRecord), args.Error(1)
}
