// Package config turns process environment into an explicit Config value.
package config

import (
	"fmt"
	"github.com/joho/godotenv"
	"github.com/kahvecikaan/salona-bot/internal/domain"
	"github.com/nicholasjackson/env"
	"strings"
	"time"
)

// Supported catalog drivers
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// ProviderGemini is the only supported LLM provider
const ProviderGemini = "gemini"

// Environment variables
var (
	bindAddress = env.String("BIND_ADDRESS", false,
		":8000", "Bind address for the server")
	logLevel = env.String("LOG_LEVEL", false,
		"info", "Log output level for the server [trace, debug, info, warn, error]")
	corsOrigins = env.String("CORS_ORIGINS", false,
		"*", "Comma separated list of allowed CORS origins")

	catalogDriver = env.String("CATALOG_DRIVER", false,
		DriverSQLite, "Catalog database driver [sqlite3, pgx]")
	catalogDSN = env.String("CATALOG_DSN", false,
		"db/app_data.sqlite", "SQLite file path or PostgreSQL connection string")
	searchLimit = env.Int("SEARCH_LIMIT", false,
		5, "Maximum number of products retrieved per message")

	redisAddr = env.String("REDIS_ADDR", false,
		"", "Redis address for the search cache, empty disables caching")
	redisPassword = env.String("REDIS_PASSWORD", false,
		"", "Redis password")
	redisDB = env.Int("REDIS_DB", false,
		0, "Redis database number")
	cacheTTL = env.String("SEARCH_CACHE_TTL", false,
		"3m", "How long search results stay cached")

	llmProvider = env.String("LLM_PROVIDER", false,
		ProviderGemini, "LLM provider [gemini]")
	geminiAPIKey = env.String("GEMINI_API_KEY", false,
		"", "Gemini API key")
	geminiModel = env.String("GEMINI_MODEL", false,
		"gemini-2.0-flash", "Gemini model name")
	geminiBaseURL = env.String("GEMINI_BASE_URL", false,
		"https://generativelanguage.googleapis.com/v1beta/openai/", "Gemini OpenAI-compatible endpoint")
	llmMaxRetries = env.Int("LLM_MAX_RETRIES", false,
		3, "Maximum number of generation attempts per message")
	llmBackoffUnit = env.String("LLM_BACKOFF_UNIT", false,
		"1s", "Backoff unit, the wait after the n-th failure is min(2^n, 8) units")
	llmRateLimit = env.Int("LLM_RATE_LIMIT", false,
		0, "Maximum generation requests per second, 0 means unlimited")

	seedCount = env.Int("SEED_COUNT", false,
		100, "Number of products inserted by the seeder")
	seedReset = env.Bool("SEED_RESET", false,
		true, "Drop the existing SQLite catalog before seeding")
)

type Config struct {
	BindAddress string
	LogLevel    string
	CORSOrigins []string
	Catalog     Catalog
	Cache       Cache
	LLM         LLM
	Seed        Seed
}

type Catalog struct {
	Driver      string
	DSN         string
	SearchLimit int
}

type Cache struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Enabled reports whether a Redis address was configured
func (c Cache) Enabled() bool {
	return c.Addr != ""
}

type LLM struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	MaxRetries  int
	BackoffUnit time.Duration
	RateLimit   int
}

// Validate checks the provider. It is kept apart from Config.Validate because
// an unusable provider degrades replies instead of stopping the server.
func (l LLM) Validate() error {
	if l.Provider != ProviderGemini {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedProvider, l.Provider)
	}
	return nil
}

type Seed struct {
	Count int
	Reset bool
}

// Load reads an optional .env file and the process environment.
// It returns whether a .env file was found.
func Load() (*Config, bool, error) {
	dotenv := godotenv.Load() == nil

	if err := env.Parse(); err != nil {
		return nil, dotenv, err
	}

	ttl, err := time.ParseDuration(*cacheTTL)
	if err != nil {
		return nil, dotenv, fmt.Errorf("invalid SEARCH_CACHE_TTL: %w", err)
	}

	unit, err := time.ParseDuration(*llmBackoffUnit)
	if err != nil {
		return nil, dotenv, fmt.Errorf("invalid LLM_BACKOFF_UNIT: %w", err)
	}

	cfg := &Config{
		BindAddress: *bindAddress,
		LogLevel:    *logLevel,
		CORSOrigins: splitList(*corsOrigins),
		Catalog: Catalog{
			Driver:      *catalogDriver,
			DSN:         *catalogDSN,
			SearchLimit: *searchLimit,
		},
		Cache: Cache{
			Addr:     *redisAddr,
			Password: *redisPassword,
			DB:       *redisDB,
			TTL:      ttl,
		},
		LLM: LLM{
			Provider:    strings.ToLower(strings.TrimSpace(*llmProvider)),
			APIKey:      *geminiAPIKey,
			Model:       *geminiModel,
			BaseURL:     *geminiBaseURL,
			MaxRetries:  *llmMaxRetries,
			BackoffUnit: unit,
			RateLimit:   *llmRateLimit,
		},
		Seed: Seed{
			Count: *seedCount,
			Reset: *seedReset,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, dotenv, err
	}

	return cfg, dotenv, nil
}

func (c *Config) Validate() error {
	if c.BindAddress == "" {
		return fmt.Errorf("BIND_ADDRESS is required")
	}

	switch c.Catalog.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("CATALOG_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.Catalog.Driver)
	}

	if c.Catalog.DSN == "" {
		return fmt.Errorf("CATALOG_DSN is required")
	}

	if c.Catalog.SearchLimit <= 0 {
		return fmt.Errorf("SEARCH_LIMIT must be positive")
	}

	if c.LLM.MaxRetries <= 0 {
		return fmt.Errorf("LLM_MAX_RETRIES must be positive")
	}

	if c.LLM.BackoffUnit < 0 || c.LLM.RateLimit < 0 {
		return fmt.Errorf("LLM_BACKOFF_UNIT and LLM_RATE_LIMIT must not be negative")
	}

	if c.Seed.Count < 0 {
		return fmt.Errorf("SEED_COUNT must not be negative")
	}

	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
