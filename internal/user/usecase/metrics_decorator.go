package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/gymbuddy/internal/metrics"
	"github.com/allisson/gymbuddy/internal/user/domain"
)

// userUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type userUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewUserUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewUserUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &userUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (u *userUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.StatusOf(err)
	u.metrics.RecordOperation(ctx, "users", operation, status)
	u.metrics.RecordDuration(ctx, "users", operation, time.Since(start), status)
}

// RegisterUser records metrics for registrations.
func (u *userUseCaseWithMetrics) RegisterUser(ctx context.Context, input RegisterUserInput) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.RegisterUser(ctx, input)
	u.record(ctx, "register", start, err)
	return user, err
}

// ListUsers records metrics for listing.
func (u *userUseCaseWithMetrics) ListUsers(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	start := time.Now()
	users, err := u.next.ListUsers(ctx, offset, limit)
	u.record(ctx, "list", start, err)
	return users, err
}

// GetUserByID records metrics for lookups by id.
func (u *userUseCaseWithMetrics) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.GetUserByID(ctx, id)
	u.record(ctx, "get_by_id", start, err)
	return user, err
}

// GetUserByEmail records metrics for lookups by email.
func (u *userUseCaseWithMetrics) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.GetUserByEmail(ctx, email)
	u.record(ctx, "get_by_email", start, err)
	return user, err
}

// GetUserByUsername records metrics for lookups by username.
func (u *userUseCaseWithMetrics) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.GetUserByUsername(ctx, username)
	u.record(ctx, "get_by_username", start, err)
	return user, err
}

// UpdateUser records metrics for profile updates.
func (u *userUseCaseWithMetrics) UpdateUser(ctx context.Context, input UpdateUserInput) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.UpdateUser(ctx, input)
	u.record(ctx, "update", start, err)
	return user, err
}

// UpdatePassword records metrics for password changes.
func (u *userUseCaseWithMetrics) UpdatePassword(ctx context.Context, input UpdatePasswordInput) error {
	start := time.Now()
	err := u.next.UpdatePassword(ctx, input)
	u.record(ctx, "update_password", start, err)
	return err
}

// DeleteUser records metrics for deletions.
func (u *userUseCaseWithMetrics) DeleteUser(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	err := u.next.DeleteUser(ctx, id)
	u.record(ctx, "delete", start, err)
	return err
}
