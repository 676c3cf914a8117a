package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var migrationsFS embed.FS

// migrationDirs maps a driver to its directory under migrations/.
var migrationDirs = map[string]string{
	DriverPostgres: "migrations/postgresql",
	DriverMySQL:    "migrations/mysql",
	DriverSQLite:   "migrations/sqlite",
}

// Migrate applies every pending migration embedded in the binary for driver.
// Already applied migrations are skipped, so it is safe to call on each start.
// The caller keeps ownership of db.
func Migrate(db *sql.DB, driver string) error {
	m, err := newMigrator(db, driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// MigrateDown reverts every applied migration. Used by tests and the CLI.
func MigrateDown(db *sql.DB, driver string) error {
	m, err := newMigrator(db, driver)
	if err != nil {
		return err
	}

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to revert migrations: %w", err)
	}
	return nil
}

func newMigrator(db *sql.DB, driver string) (*migrate.Migrate, error) {
	dir, ok := migrationDirs[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	source, err := iofs.New(migrationsFS, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open migration source: %w", err)
	}

	var instance migratedb.Driver
	switch driver {
	case DriverPostgres:
		instance, err = postgres.WithInstance(db, &postgres.Config{})
	case DriverMySQL:
		instance, err = mysql.WithInstance(db, &mysql.Config{})
	case DriverSQLite:
		instance, err = migratesqlite.WithInstance(db, &migratesqlite.Config{})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, driver, instance)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}
