package storage

import (
	"embed"
	"errors"
	"fmt"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/kahvecikaan/salona-bot/internal/config"
)

//go:embed migrations
var migrations embed.FS

// migrate applies pending migrations for the configured driver.
// Callers hold c.mutex.
func (c *Catalog) migrate() error {
	var (
		dir    string
		name   string
		driver database.Driver
		err    error
	)

	switch c.cfg.Driver {
	case config.DriverSQLite:
		dir, name = "migrations/sqlite", "sqlite3"
		driver, err = sqlitemigrate.WithInstance(c.db, &sqlitemigrate.Config{})
	case config.DriverPostgres:
		dir, name = "migrations/postgres", "pgx5"
		driver, err = pgxmigrate.WithInstance(c.db, &pgxmigrate.Config{})
	default:
		return fmt.Errorf("no migrations for driver %q", c.cfg.Driver)
	}
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	source, err := iofs.New(migrations, dir)
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, name, driver)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return fmt.Errorf("migrate up: %w", err)
	}

	c.logger.Info("Migrations applied successfully", "driver", c.cfg.Driver)
	return nil
}
