package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/gymbuddy/internal/database"
	"github.com/allisson/gymbuddy/internal/errors"
	"github.com/allisson/gymbuddy/internal/user/domain"
)

// sqliteUniqueViolation prefixes SQLite unique constraint errors, followed by
// the offending table.column.
const sqliteUniqueViolation = "UNIQUE constraint failed:"

// SQLiteUserRepository handles user persistence for SQLite. UUIDs are stored as text.
type SQLiteUserRepository struct {
	db *sql.DB
}

// NewSQLiteUserRepository creates a new SQLiteUserRepository
func NewSQLiteUserRepository(db *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}

// Create inserts a new user
func (r *SQLiteUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)
	stampCreate(user)

	query := `INSERT INTO users (` + userColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	args := append([]any{user.ID.String()}, profileArgs(user)...)
	args = append(args, user.CreatedAt.UTC(), user.UpdatedAt.UTC())

	if _, err := querier.ExecContext(ctx, query, args...); err != nil {
		return mapSQLiteError(err, "failed to create user")
	}
	return nil
}

// Update overwrites every mutable column of an existing user
func (r *SQLiteUserRepository) Update(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)
	user.UpdatedAt = time.Now().UTC()

	query := `UPDATE users
			  SET username = ?, email = ?, password_hash = ?, first_name = ?, last_name = ?, phone = ?,
			      address_line1 = ?, address_line2 = ?, city = ?, state = ?, zip_code = ?, country = ?,
			      updated_at = ?
			  WHERE id = ?`

	args := append(profileArgs(user), user.UpdatedAt, user.ID.String())

	result, err := querier.ExecContext(ctx, query, args...)
	if err != nil {
		return mapSQLiteError(err, "failed to update user")
	}
	return requireAffected(result)
}

// GetByID retrieves a user by ID
func (r *SQLiteUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getBy(ctx, "id", id.String())
}

// GetByUsername retrieves a user by exact username
func (r *SQLiteUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getBy(ctx, "username", username)
}

// GetByEmail retrieves a user by email
func (r *SQLiteUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *SQLiteUserRepository) getBy(ctx context.Context, column string, value any) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = ?` //nolint:gosec // fixed column names

	var id uuid.UUID
	user, err := scanUser(querier.QueryRowContext(ctx, query, value), &id)
	if err != nil {
		return nil, notFound(err, "failed to get user by "+column)
	}
	user.ID = id
	return user, nil
}

// List returns users ordered by creation time
func (r *SQLiteUserRepository) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at ASC, id ASC LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}
	defer rows.Close() //nolint:errcheck

	users := make([]*domain.User, 0)
	for rows.Next() {
		var id uuid.UUID
		user, err := scanUser(rows, &id)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan user")
		}
		user.ID = id
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}
	return users, nil
}

// Delete removes a user
func (r *SQLiteUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id.String())
	if err != nil {
		return errors.Wrap(err, "failed to delete user")
	}
	return requireAffected(result)
}

// mapSQLiteError turns "UNIQUE constraint failed: users.email" into a conflict.
func mapSQLiteError(err error, msg string) error {
	if _, column, ok := strings.Cut(err.Error(), sqliteUniqueViolation); ok {
		return classifyConflict(column)
	}
	return errors.Wrap(err, msg)
}
