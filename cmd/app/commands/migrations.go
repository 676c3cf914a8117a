package commands

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/allisson/gymbuddy/internal/database"
)

// RunMigrations applies the migrations embedded for driver, or reverts all of
// them when down is set. Already applied migrations are skipped.
func RunMigrations(logger *slog.Logger, db *sql.DB, driver string, down bool) error {
	logger.Info("running database migrations",
		slog.String("driver", driver),
		slog.Bool("down", down),
	)

	if down {
		if err := database.MigrateDown(db, driver); err != nil {
			return fmt.Errorf("failed to revert migrations: %w", err)
		}
		logger.Info("migrations reverted successfully")
		return nil
	}

	if err := database.Migrate(db, driver); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}
