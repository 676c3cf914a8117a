package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/gymbuddy/internal/user/domain"
	"github.com/allisson/gymbuddy/internal/user/usecase"
	usecaseMocks "github.com/allisson/gymbuddy/internal/user/usecase/mocks"
)

// mockBusinessMetrics is a local mock for metrics.BusinessMetrics.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func (m *mockBusinessMetrics) expect(ctx context.Context, operation, status string) {
	m.On("RecordOperation", ctx, "users", operation, status).Once()
	m.On("RecordDuration", ctx, "users", operation, mock.AnythingOfType("time.Duration"), status).Once()
}

func TestUserUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()
	id := uuid.Must(uuid.NewV7())
	user := &domain.User{ID: id, Username: "alice"}
	failure := errors.New("db down")

	tests := []struct {
		operation string
		status    string
		setup     func(next *usecaseMocks.MockUseCase)
		call      func(uc usecase.UseCase) error
	}{
		{
			"register", "success",
			func(next *usecaseMocks.MockUseCase) {
				next.On("RegisterUser", ctx, usecase.RegisterUserInput{Username: "alice"}).Return(user, nil)
			},
			func(uc usecase.UseCase) error {
				_, err := uc.RegisterUser(ctx, usecase.RegisterUserInput{Username: "alice"})
				return err
			},
		},
		{
			"list", "error",
			func(next *usecaseMocks.MockUseCase) { next.On("ListUsers", ctx, 0, 10).Return(nil, failure) },
			func(uc usecase.UseCase) error {
				_, err := uc.ListUsers(ctx, 0, 10)
				return err
			},
		},
		{
			"get_by_id", "success",
			func(next *usecaseMocks.MockUseCase) { next.On("GetUserByID", ctx, id).Return(user, nil) },
			func(uc usecase.UseCase) error {
				_, err := uc.GetUserByID(ctx, id)
				return err
			},
		},
		{
			"get_by_email", "error",
			func(next *usecaseMocks.MockUseCase) {
				next.On("GetUserByEmail", ctx, "a@b.co").Return(nil, domain.ErrUserNotFound)
			},
			func(uc usecase.UseCase) error {
				_, err := uc.GetUserByEmail(ctx, "a@b.co")
				return err
			},
		},
		{
			"get_by_username", "success",
			func(next *usecaseMocks.MockUseCase) { next.On("GetUserByUsername", ctx, "alice").Return(user, nil) },
			func(uc usecase.UseCase) error {
				_, err := uc.GetUserByUsername(ctx, "alice")
				return err
			},
		},
		{
			"update", "success",
			func(next *usecaseMocks.MockUseCase) {
				next.On("UpdateUser", ctx, usecase.UpdateUserInput{ID: id}).Return(user, nil)
			},
			func(uc usecase.UseCase) error {
				_, err := uc.UpdateUser(ctx, usecase.UpdateUserInput{ID: id})
				return err
			},
		},
		{
			"update_password", "error",
			func(next *usecaseMocks.MockUseCase) {
				next.On("UpdatePassword", ctx, usecase.UpdatePasswordInput{UserID: id}).
					Return(domain.ErrInvalidCurrentPassword)
			},
			func(uc usecase.UseCase) error {
				return uc.UpdatePassword(ctx, usecase.UpdatePasswordInput{UserID: id})
			},
		},
		{
			"delete", "success",
			func(next *usecaseMocks.MockUseCase) { next.On("DeleteUser", ctx, id).Return(nil) },
			func(uc usecase.UseCase) error { return uc.DeleteUser(ctx, id) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.operation, func(t *testing.T) {
			next := &usecaseMocks.MockUseCase{}
			metrics := &mockBusinessMetrics{}
			tt.setup(next)
			metrics.expect(ctx, tt.operation, tt.status)

			err := tt.call(usecase.NewUserUseCaseWithMetrics(next, metrics))
			if tt.status == "success" {
				require.NoError(t, err)
			} else {
				assert.Error(t, err)
			}

			next.AssertExpectations(t)
			metrics.AssertExpectations(t)
		})
	}
}
