// Package repository provides user persistence for PostgreSQL, MySQL and SQLite.
//
// Every implementation maps a missing row to domain.ErrUserNotFound and a
// unique constraint violation to domain.ErrUsernameTaken or
// domain.ErrEmailTaken, both of which wrap domain.ErrUserAlreadyExists.
package repository

import (
	"database/sql"
	"strings"
	"time"

	"github.com/allisson/gymbuddy/internal/errors"
	"github.com/allisson/gymbuddy/internal/user/domain"
)

const userColumns = `id, username, email, password_hash, first_name, last_name, phone, address_line1,
	address_line2, city, state, zip_code, country, created_at, updated_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser reads userColumns into a User. id receives the raw id column so
// drivers can decode their own UUID representation.
func scanUser(row rowScanner, id any) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		id, &user.Username, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName, &user.Phone,
		&user.AddressLine1, &user.AddressLine2, &user.City, &user.State, &user.ZipCode, &user.Country,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// profileArgs returns the mutable columns in userColumns order, after id.
func profileArgs(user *domain.User) []any {
	return []any{
		user.Username, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Phone,
		user.AddressLine1, user.AddressLine2, user.City, user.State, user.ZipCode, user.Country,
	}
}

// stampCreate fills missing creation timestamps.
func stampCreate(user *domain.User) {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	user.UpdatedAt = user.CreatedAt
}

// classifyConflict maps the name of the violated key or column to a domain error.
func classifyConflict(key string) error {
	key = strings.ToLower(key)
	switch {
	case strings.Contains(key, "username"):
		return domain.ErrUsernameTaken
	case strings.Contains(key, "email"):
		return domain.ErrEmailTaken
	default:
		return domain.ErrUserAlreadyExists
	}
}

// notFound maps sql.ErrNoRows to ErrUserNotFound and wraps anything else.
func notFound(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrUserNotFound
	}
	return errors.Wrap(err, msg)
}

// requireAffected returns ErrUserNotFound when the statement touched no row.
func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
