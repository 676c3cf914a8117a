package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/allisson/gymbuddy/internal/database"
	"github.com/allisson/gymbuddy/internal/errors"
	"github.com/allisson/gymbuddy/internal/user/domain"
)

// postgresUniqueViolation is the SQLSTATE of a unique constraint violation.
const postgresUniqueViolation = "23505"

// PostgreSQLUserRepository handles user persistence for PostgreSQL
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// NewPostgreSQLUserRepository creates a new PostgreSQLUserRepository
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{
		db: db,
	}
}

// Create inserts a new user
func (r *PostgreSQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)
	stampCreate(user)

	query := `INSERT INTO users (` + userColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	args := append([]any{user.ID}, profileArgs(user)...)
	args = append(args, user.CreatedAt, user.UpdatedAt)

	if _, err := querier.ExecContext(ctx, query, args...); err != nil {
		return mapPostgreSQLError(err, "failed to create user")
	}
	return nil
}

// Update overwrites every mutable column of an existing user
func (r *PostgreSQLUserRepository) Update(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)
	user.UpdatedAt = time.Now().UTC()

	query := `UPDATE users
			  SET username = $1, email = $2, password_hash = $3, first_name = $4, last_name = $5, phone = $6,
			      address_line1 = $7, address_line2 = $8, city = $9, state = $10, zip_code = $11, country = $12,
			      updated_at = $13
			  WHERE id = $14`

	args := append(profileArgs(user), user.UpdatedAt, user.ID)

	result, err := querier.ExecContext(ctx, query, args...)
	if err != nil {
		return mapPostgreSQLError(err, "failed to update user")
	}
	return requireAffected(result)
}

// GetByID retrieves a user by ID
func (r *PostgreSQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getBy(ctx, "id", id)
}

// GetByUsername retrieves a user by exact username
func (r *PostgreSQLUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getBy(ctx, "username", username)
}

// GetByEmail retrieves a user by email
func (r *PostgreSQLUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *PostgreSQLUserRepository) getBy(ctx context.Context, column string, value any) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = $1` //nolint:gosec // fixed column names

	var id uuid.UUID
	user, err := scanUser(querier.QueryRowContext(ctx, query, value), &id)
	if err != nil {
		return nil, notFound(err, "failed to get user by "+column)
	}
	user.ID = id
	return user, nil
}

// List returns users ordered by creation time
func (r *PostgreSQLUserRepository) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at ASC, id ASC LIMIT $1 OFFSET $2`

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
func (r *PostgreSQLUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete user")
	}
	return requireAffected(result)
}

// mapPostgreSQLError turns SQLSTATE 23505 into a conflict on the violated constraint.
func mapPostgreSQLError(err error, msg string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == postgresUniqueViolation {
		return classifyConflict(pqErr.Constraint)
	}
	return errors.Wrap(err, msg)
}
