// Package mocks provides testify mocks for the user use case layer.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/gymbuddy/internal/user/domain"
	"github.com/allisson/gymbuddy/internal/user/usecase"
)

// MockUseCase is a mock implementation of usecase.UseCase.
type MockUseCase struct {
	mock.Mock
}

func userResult(args mock.Arguments) (*domain.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// RegisterUser mocks the RegisterUser method.
func (m *MockUseCase) RegisterUser(ctx context.Context, input usecase.RegisterUserInput) (*domain.User, error) {
	return userResult(m.Called(ctx, input))
}

// ListUsers mocks the ListUsers method.
func (m *MockUseCase) ListUsers(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

// GetUserByID mocks the GetUserByID method.
func (m *MockUseCase) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return userResult(m.Called(ctx, id))
}

// GetUserByEmail mocks the GetUserByEmail method.
func (m *MockUseCase) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return userResult(m.Called(ctx, email))
}

// GetUserByUsername mocks the GetUserByUsername method.
func (m *MockUseCase) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return userResult(m.Called(ctx, username))
}

// UpdateUser mocks the UpdateUser method.
func (m *MockUseCase) UpdateUser(ctx context.Context, input usecase.UpdateUserInput) (*domain.User, error) {
	return userResult(m.Called(ctx, input))
}

// UpdatePassword mocks the UpdatePassword method.
func (m *MockUseCase) UpdatePassword(ctx context.Context, input usecase.UpdatePasswordInput) error {
	return m.Called(ctx, input).Error(0)
}

// DeleteUser mocks the DeleteUser method.
func (m *MockUseCase) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
