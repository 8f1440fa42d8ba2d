package storage

import (
	"context"
	"errors"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/salona-bot/internal/config"
	"github.com/kahvecikaan/salona-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

func newTestCatalog(t *testing.T) *Catalog {
	path := filepath.Join(t.TempDir(), "db", "app_data.sqlite")
	c := NewCatalog(config.Catalog{Driver: config.DriverSQLite, DSN: path, SearchLimit: 5}, hclog.NewNullLogger())
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCatalogMissingFileIsUnavailable(t *testing.T) {
	c := newTestCatalog(t)

	_, err := c.DB(context.Background())

	assert.True(t, errors.Is(err, domain.ErrCatalogUnavailable))
	assert.Contains(t, err.Error(), c.Location())
	// the request path never creates the file
	_, statErr := os.Stat(c.cfg.DSN)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestCatalogPrepareAndSeed(t *testing.T) {
	c := newTestCatalog(t)
	ctx := context.Background()

	db, err := c.Prepare(ctx)
	require.NoError(t, err)

	products := RandomProducts(20, rand.New(rand.NewSource(1)))
	require.NoError(t, Seed(ctx, db, c.Driver(), products))

	var count int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&count))
	assert.Equal(t, 20, count)
	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, int64(20), products[19].ID)

	// a second Prepare is a no-op migration
	_, err = c.Prepare(ctx)
	require.NoError(t, err)

	same, err := c.DB(ctx)
	require.NoError(t, err)
	assert.Same(t, db, same)
}

func TestCatalogReset(t *testing.T) {
	c := newTestCatalog(t)
	ctx := context.Background()

	_, err := c.Prepare(ctx)
	require.NoError(t, err)

	require.NoError(t, c.Reset())

	_, err = c.DB(ctx)
	assert.True(t, errors.Is(err, domain.ErrCatalogUnavailable))
}

func TestRandomProducts(t *testing.T) {
	products := RandomProducts(100, rand.New(rand.NewSource(42)))

	require.Len(t, products, 100)
	for _, p := range products {
		assert.NotEmpty(t, p.Name)
		assert.Contains(t, p.Name, " مدل ")
		assert.NotEmpty(t, p.Description)
		assert.GreaterOrEqual(t, p.Price, int64(minSeedPrice))
		assert.LessOrEqual(t, p.Price, int64(maxSeedPrice))
	}
}

func TestLocationHidesCredentials(t *testing.T) {
	c := NewCatalog(config.Catalog{Driver: config.DriverPostgres, DSN: "postgres://bot:secret@db:5432/salona?sslmode=disable"}, hclog.NewNullLogger())

	assert.Equal(t, "db:5432/salona", c.Location())
}
