package commands

import (
	"fmt"
	"log/slog"

	"github.com/allisson/storefront/internal/database"
)

// RunMigrations applies the embedded session_kv schema to a postgres or mysql database.
func RunMigrations(logger *slog.Logger, driver, connectionString string) error {
	if _, err := database.MigrationDir(driver); err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	logger.Info("running database migrations", slog.String("driver", driver))

	db, err := database.Connect(database.Config{
		Driver:             driver,
		ConnectionString:   connectionString,
		MaxOpenConnections: 1,
		MaxIdleConnections: 1,
	})
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	if _, err := database.Migrate(db, driver, logger); err != nil {
		return err
	}

	logger.Info("migrations completed successfully")
	return nil
}
