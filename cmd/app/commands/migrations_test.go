package commands

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/gymbuddy/internal/database"
)

func TestRunMigrations(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := database.Connect(database.Config{
		Driver:             database.DriverSQLite,
		ConnectionString:   "file:" + filepath.Join(t.TempDir(), "migrate.db"),
		MaxOpenConnections: 1,
		MaxIdleConnections: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	t.Run("up", func(t *testing.T) {
		require.NoError(t, RunMigrations(logger, db, database.DriverSQLite, false))

		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("up-is-idempotent", func(t *testing.T) {
		require.NoError(t, RunMigrations(logger, db, database.DriverSQLite, false))
	})

	t.Run("down", func(t *testing.T) {
		require.NoError(t, RunMigrations(logger, db, database.DriverSQLite, true))

		_, err := db.Exec("SELECT COUNT(*) FROM users")
		assert.Error(t, err)
	})

	t.Run("invalid-driver", func(t *testing.T) {
		err := RunMigrations(logger, db, "oracle", false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to apply migrations")
	})
}
