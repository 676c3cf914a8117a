// Package usecase implements account management on top of the user store.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/allisson/gymbuddy/internal/auth/domain"
	outboxDomain "github.com/allisson/gymbuddy/internal/outbox/domain"
	"github.com/allisson/gymbuddy/internal/user/domain"
)

// ReservedUsernames reports usernames owned by accounts outside the user store,
// such as the operator fallback accounts.
type ReservedUsernames interface {
	Has(username string) bool
}

// RegisterUserInput contains the input data for user registration
type RegisterUserInput struct {
	Username     string
	Email        string
	Password     authDomain.PlainPassword
	FirstName    string
	LastName     string
	Phone        string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	ZipCode      string
	Country      string
}

// UpdateUserInput is a partial profile update. Nil fields keep their stored value.
type UpdateUserInput struct {
	ID           uuid.UUID
	Username     *string
	Email        *string
	FirstName    *string
	LastName     *string
	Phone        *string
	AddressLine1 *string
	AddressLine2 *string
	City         *string
	State        *string
	ZipCode      *string
	Country      *string
}

// UpdatePasswordInput changes a password after verifying the current one.
type UpdatePasswordInput struct {
	UserID          uuid.UUID
	CurrentPassword authDomain.PlainPassword
	NewPassword     authDomain.PlainPassword
}

// UseCase defines the interface for user business logic operations
type UseCase interface {
	RegisterUser(ctx context.Context, input RegisterUserInput) (*domain.User, error)
	ListUsers(ctx context.Context, offset, limit int) ([]*domain.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateUser(ctx context.Context, input UpdateUserInput) (*domain.User, error)
	UpdatePassword(ctx context.Context, input UpdatePasswordInput) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// UserRepository interface defines user repository operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AccountEventWriter appends account events to the outbox inside the caller's transaction.
type AccountEventWriter interface {
	Create(ctx context.Context, event *outboxDomain.OutboxEvent) error
}
