package main

import (
	"context"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/salona-bot/internal/config"
	"github.com/kahvecikaan/salona-bot/internal/storage"
	"math/rand"
	"os"
	"time"
)

func main() {
	cfg, _, err := config.Load()
	if err != nil {
		hclog.Default().Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "salona-seed",
		Level: hclog.LevelFromString(cfg.LogLevel),
	})

	catalog := storage.NewCatalog(cfg.Catalog, logger.Named("catalog"))
	defer catalog.Close()

	if cfg.Seed.Reset {
		if err := catalog.Reset(); err != nil {
			logger.Error("Unable to reset catalog", "error", err)
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := catalog.Prepare(ctx)
	if err != nil {
		logger.Error("Unable to prepare catalog", "error", err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	products := storage.RandomProducts(cfg.Seed.Count, rng)
	if err := storage.Seed(ctx, db, catalog.Driver(), products); err != nil {
		logger.Error("Unable to seed catalog", "error", err)
		os.Exit(1)
	}

	logger.Info("Seeded catalog", "products", len(products), "location", catalog.Location())
}
