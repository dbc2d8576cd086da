package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	migrateDatabase "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/allisson/storefront/migrations"
)

// MigrationDir returns the embedded migration directory of driver.
func MigrationDir(driver string) (string, error) {
	switch driver {
	case "postgres", "postgresql":
		return "postgresql", nil
	case "mysql":
		return "mysql", nil
	default:
		return "", fmt.Errorf("no migrations for driver %q", driver)
	}
}

// Migrate applies every pending embedded migration to db. The caller keeps ownership of db.
// It returns the schema version reached.
func Migrate(db *sql.DB, driver string, logger *slog.Logger) (uint, error) {
	dir, err := MigrationDir(driver)
	if err != nil {
		return 0, err
	}

	source, err := iofs.New(migrations.FS, dir)
	if err != nil {
		return 0, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	var instance migrateDatabase.Driver
	switch dir {
	case "postgresql":
		instance, err = postgres.WithInstance(db, &postgres.Config{})
	default:
		instance, err = mysql.WithInstance(db, &mysql.Config{})
	}
	if err != nil {
		return 0, fmt.Errorf("failed to create migrate driver: %w", err)
	}

	// Closing m would close db, which belongs to the caller.
	m, err := migrate.NewWithInstance("iofs", source, dir, instance)
	if err != nil {
		return 0, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return 0, fmt.Errorf("failed to read migration version: %w", err)
	}
	if logger != nil {
		logger.Info("migrations applied",
			slog.String("driver", dir),
			slog.Uint64("version", uint64(version)),
			slog.Bool("dirty", dirty),
		)
	}
	return version, nil
}
