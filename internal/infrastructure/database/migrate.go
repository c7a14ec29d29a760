package database

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations applies the pending osm_feature migrations from
// migrationsPath and returns the resulting schema version.
func RunMigrations(dsn string, migrationsPath string, logger *slog.Logger) (uint, error) {
	if info, err := os.Stat(migrationsPath); err != nil || !info.IsDir() {
		return 0, fmt.Errorf("migrations directory %q not found (set MIGRATIONS_PATH)", migrationsPath)
	}

	m, err := migrate.New(
		fmt.Sprintf("file://%s", migrationsPath),
		dsn,
	)
	if err != nil {
		return 0, fmt.Errorf("migration init: %w", err)
	}
	defer m.Close()

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("migration up: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return 0, fmt.Errorf("migration version: %w", err)
	}
	if dirty {
		return version, fmt.Errorf("schema version %d is dirty; fix it and force the version", version)
	}
	logger.Info("migrations applied", "version", version)
	return version, nil
}
