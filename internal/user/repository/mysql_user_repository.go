package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/allisson/gymbuddy/internal/database"
	"github.com/allisson/gymbuddy/internal/errors"
	"github.com/allisson/gymbuddy/internal/user/domain"
)

// mysqlDuplicateEntry is the MySQL error number for a duplicate unique key.
const mysqlDuplicateEntry = 1062

// MySQLUserRepository handles user persistence for MySQL.
// UUIDs are stored as BINARY(16) and the DSN must set parseTime=true.
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQLUserRepository
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{
		db: db,
	}
}

// Create inserts a new user
func (r *MySQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)
	stampCreate(user)

	idBytes, err := user.ID.MarshalBinary()
	if err != nil {
		return err
	}

	query := `INSERT INTO users (` + userColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	args := append([]any{idBytes}, profileArgs(user)...)
	args = append(args, user.CreatedAt, user.UpdatedAt)

	if _, err := querier.ExecContext(ctx, query, args...); err != nil {
		return mapMySQLError(err, "failed to create user")
	}
	return nil
}

// Update overwrites every mutable column of an existing user
func (r *MySQLUserRepository) Update(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)
	user.UpdatedAt = time.Now().UTC()

	idBytes, err := user.ID.MarshalBinary()
	if err != nil {
		return err
	}

	query := `UPDATE users
			  SET username = ?, email = ?, password_hash = ?, first_name = ?, last_name = ?, phone = ?,
			      address_line1 = ?, address_line2 = ?, city = ?, state = ?, zip_code = ?, country = ?,
			      updated_at = ?
			  WHERE id = ?`

	args := append(profileArgs(user), user.UpdatedAt, idBytes)

	result, err := querier.ExecContext(ctx, query, args...)
	if err != nil {
		return mapMySQLError(err, "failed to update user")
	}
	return requireAffected(result)
}

// GetByID retrieves a user by ID
func (r *MySQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return r.getBy(ctx, "id", idBytes)
}

// GetByUsername retrieves a user by exact username
func (r *MySQLUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getBy(ctx, "username", username)
}

// GetByEmail retrieves a user by email
func (r *MySQLUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *MySQLUserRepository) getBy(ctx context.Context, column string, value any) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = ?` //nolint:gosec // fixed column names

	var idBytes []byte
	user, err := scanUser(querier.QueryRowContext(ctx, query, value), &idBytes)
	if err != nil {
		return nil, notFound(err, "failed to get user by "+column)
	}
	if err := user.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, errors.Wrap(err, "failed to decode user id")
	}
	return user, nil
}

// List returns users ordered by creation time
func (r *MySQLUserRepository) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at ASC, id ASC LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}
	defer rows.Close() //nolint:errcheck

	users := make([]*domain.User, 0)
	for rows.Next() {
		var idBytes []byte
		user, err := scanUser(rows, &idBytes)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan user")
		}
		if err := user.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, errors.Wrap(err, "failed to decode user id")
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}
	return users, nil
}

// Delete removes a user
func (r *MySQLUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return err
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, idBytes)
	if err != nil {
		return errors.Wrap(err, "failed to delete user")
	}
	return requireAffected(result)
}

// mapMySQLError turns error 1062 into a conflict on the violated key.
// The message reads "Duplicate entry 'x' for key 'users.users_email_key'".
func mapMySQLError(err error, msg string) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
		key := mysqlErr.Message
		if idx := strings.LastIndex(key, "for key"); idx >= 0 {
			key = key[idx:]
		}
		return classifyConflict(key)
	}
	return errors.Wrap(err, msg)
}
