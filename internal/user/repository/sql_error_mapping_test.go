package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/gymbuddy/internal/errors"
	"github.com/allisson/gymbuddy/internal/user/domain"
)

func TestMapPostgreSQLError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{"username constraint", &pq.Error{Code: "23505", Constraint: "users_username_key"}, domain.ErrUsernameTaken},
		{"email constraint", &pq.Error{Code: "23505", Constraint: "users_email_key"}, domain.ErrEmailTaken},
		{"unknown constraint", &pq.Error{Code: "23505", Constraint: "users_pkey"}, domain.ErrUserAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapPostgreSQLError(tt.err, "ctx"), tt.expected)
		})
	}

	t.Run("other errors are wrapped", func(t *testing.T) {
		err := mapPostgreSQLError(&pq.Error{Code: "23503"}, "failed to create user")
		assert.False(t, errors.Is(err, errors.ErrConflict))
		assert.Contains(t, err.Error(), "failed to create user")
	})
}

func TestMapMySQLError(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected error
	}{
		{"username key", "Duplicate entry 'alice' for key 'users.users_username_key'", domain.ErrUsernameTaken},
		{"email key", "Duplicate entry 'username@example.com' for key 'users.users_email_key'", domain.ErrEmailTaken},
		{"primary key", "Duplicate entry 'x' for key 'users.PRIMARY'", domain.ErrUserAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapMySQLError(&mysql.MySQLError{Number: 1062, Message: tt.message}, "ctx")
			assert.ErrorIs(t, err, tt.expected)
		})
	}

	err := mapMySQLError(&mysql.MySQLError{Number: 1452, Message: "fk"}, "failed to update user")
	assert.False(t, errors.Is(err, errors.ErrConflict))
}

func TestMapSQLiteError(t *testing.T) {
	assert.ErrorIs(t,
		mapSQLiteError(errors.New("constraint failed: UNIQUE constraint failed: users.username (2067)"), "ctx"),
		domain.ErrUsernameTaken,
	)
	assert.ErrorIs(t,
		mapSQLiteError(errors.New("UNIQUE constraint failed: users.email"), "ctx"),
		domain.ErrEmailTaken,
	)
	assert.False(t, errors.Is(mapSQLiteError(errors.New("disk I/O error"), "ctx"), errors.ErrConflict))
}

func TestPostgreSQLUserRepository_CreateConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users`)).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	err = NewPostgreSQLUserRepository(db).Create(context.Background(), newUser("alice"))
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
	assert.True(t, errors.Is(err, errors.ErrConflict))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLUserRepository_GetByUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	user := newUser("alice")
	rows := sqlmock.NewRows([]string{
		"id", "username", "email", "password_hash", "first_name", "last_name", "phone", "address_line1",
		"address_line2", "city", "state", "zip_code", "country", "created_at", "updated_at",
	}).AddRow(
		user.ID.String(), user.Username, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Phone,
		user.AddressLine1, "", user.City, "", "", user.Country, user.CreatedAt, user.UpdatedAt,
	)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE username = $1`)).
		WithArgs("alice").
		WillReturnRows(rows)

	found, err := NewPostgreSQLUserRepository(db).GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, user.Email, found.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLUserRepository_DeleteError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users`)).WillReturnError(assert.AnError)

	err = NewPostgreSQLUserRepository(db).Delete(context.Background(), newUser("alice").ID)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLUserRepository_CreateConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	user := newUser("alice")
	idBytes, _ := user.ID.MarshalBinary()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs(idBytes, "alice", "alice@example.com", user.PasswordHash, "Alice", "Liddell", "+1 555 0100",
			"1 Rabbit Hole", "", "Oxford", "", "", "UK", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(&mysql.MySQLError{
			Number:  1062,
			Message: "Duplicate entry 'alice' for key 'users.users_username_key'",
		})

	err = NewMySQLUserRepository(db).Create(context.Background(), user)
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLUserRepository_UpdateNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users`)).WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewMySQLUserRepository(db).Update(context.Background(), newUser("alice"))
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLUserRepository_GetByID_BadID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	user := newUser("alice")
	rows := sqlmock.NewRows([]string{
		"id", "username", "email", "password_hash", "first_name", "last_name", "phone", "address_line1",
		"address_line2", "city", "state", "zip_code", "country", "created_at", "updated_at",
	}).AddRow(
		[]byte{1, 2}, user.Username, user.Email, user.PasswordHash, "", "", "", "", "", "", "", "", "",
		user.CreatedAt, user.UpdatedAt,
	)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id = ?`)).WillReturnRows(rows)

	_, err = NewMySQLUserRepository(db).GetByID(context.Background(), user.ID)
	assert.Error(t, err)
}
