// Package storage manages the catalog database: connections, schema
// migrations and seeding.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/hashicorp/go-hclog"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/kahvecikaan/salona-bot/internal/config"
	"github.com/kahvecikaan/salona-bot/internal/domain"
	_ "github.com/mattn/go-sqlite3"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Catalog owns the connection pool of the product catalog
type Catalog struct {
	cfg    config.Catalog
	logger hclog.Logger
	mutex  sync.Mutex
	db     *sql.DB
}

func NewCatalog(cfg config.Catalog, logger hclog.Logger) *Catalog {
	return &Catalog{cfg: cfg, logger: logger}
}

// Driver returns the database/sql driver name
func (c *Catalog) Driver() string {
	return c.cfg.Driver
}

// Location describes where the catalog lives without leaking credentials
func (c *Catalog) Location() string {
	if c.cfg.Driver == config.DriverSQLite {
		if abs, err := filepath.Abs(c.cfg.DSN); err == nil {
			return abs
		}
		return c.cfg.DSN
	}

	u, err := url.Parse(c.cfg.DSN)
	if err != nil || u.Host == "" {
		return "postgres"
	}
	return u.Host + u.Path
}

// DB returns the connection pool, opening it on first use. A SQLite catalog
// whose file does not exist yet is reported as domain.ErrCatalogUnavailable
// and is never created here.
func (c *Catalog) DB(ctx context.Context) (*sql.DB, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.db != nil {
		return c.db, nil
	}

	if c.cfg.Driver == config.DriverSQLite {
		if _, err := os.Stat(c.cfg.DSN); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%w: database not found at %s", domain.ErrCatalogUnavailable, c.Location())
			}
			return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
		}
	}

	db, err := c.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	c.db = db
	return db, nil
}

// Prepare opens the catalog, creating the SQLite file if needed, and applies
// the schema migrations.
func (c *Catalog) Prepare(ctx context.Context) (*sql.DB, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.db == nil {
		if c.cfg.Driver == config.DriverSQLite {
			if err := os.MkdirAll(filepath.Dir(c.cfg.DSN), 0o755); err != nil {
				return nil, fmt.Errorf("create catalog directory: %w", err)
			}
		}

		db, err := c.open(ctx)
		if err != nil {
			return nil, err
		}
		c.db = db
	}

	if err := c.migrate(); err != nil {
		return nil, err
	}
	return c.db, nil
}

// Reset removes a SQLite catalog file. It is a no-op for PostgreSQL.
func (c *Catalog) Reset() error {
	if c.cfg.Driver != config.DriverSQLite {
		return nil
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.db != nil {
		c.db.Close()
		c.db = nil
	}

	if err := os.Remove(c.cfg.DSN); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove catalog: %w", err)
	}
	c.logger.Info("Removed existing catalog", "path", c.Location())
	return nil
}

// Close closes the connection pool if it was opened
func (c *Catalog) Close() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}

func (c *Catalog) open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open(c.cfg.Driver, c.cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping catalog: %w", err)
	}

	c.logger.Debug("Opened catalog", "driver", c.cfg.Driver, "location", c.Location())
	return db, nil
}
