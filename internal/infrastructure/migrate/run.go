package migrate

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"gorm.io/gorm"

	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

// RunMigrations applies pending SQL migrations from dir over the
// gorm-managed connection. An already current schema is not an error.
func RunMigrations(db *gorm.DB, dir string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("unwrapping sql.DB: %w", err)
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("postgres migrate driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+dir, "postgres", driver)
	if err != nil {
		return fmt.Errorf("migrate instance: %w", err)
	}

	switch err := m.Up(); {
	case err == nil:
		slog.Info("schema migrations applied", "dir", dir)
	case errors.Is(err, migrate.ErrNoChange):
		slog.Info("schema already up to date", "dir", dir)
	default:
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}
