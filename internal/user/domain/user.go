// Package domain defines the user account entity and its errors.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/gymbuddy/internal/errors"
)

// User is a registered account.
//
// PasswordHash holds a PHC encoded hash and is only written at registration
// and on password change. It is never serialised to clients.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	ZipCode      string
	Country      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName joins first and last name.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a unique constraint on username or email was violated.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")

	// ErrUsernameTaken indicates another account already uses the username.
	ErrUsernameTaken = errors.Wrap(ErrUserAlreadyExists, "username already taken")

	// ErrEmailTaken indicates another account already uses the email.
	ErrEmailTaken = errors.Wrap(ErrUserAlreadyExists, "email already registered")

	// ErrInvalidCurrentPassword indicates a password change with the wrong current password.
	ErrInvalidCurrentPassword = errors.Wrap(errors.ErrInvalidInput, "current password is incorrect")

	// ErrNotAccountOwner indicates an authenticated user acting on another account.
	ErrNotAccountOwner = errors.Wrap(errors.ErrForbidden, "operation allowed only on your own account")
)
