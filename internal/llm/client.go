// Package llm sends prompts to the hosted language model with bounded retries.
package llm

import (
	"context"
	"errors"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/salona-bot/internal/config"
	"golang.org/x/time/rate"
	"time"
)

// MaxBackoffUnits caps the wait between attempts
const MaxBackoffUnits = 8

// SleepFunc waits for d or until ctx is done
type SleepFunc func(ctx context.Context, d time.Duration) error

// Client wraps a Generator with the retry policy
type Client struct {
	generator   Generator
	logger      hclog.Logger
	maxRetries  int
	backoffUnit time.Duration
	limiter     *rate.Limiter
	sleep       SleepFunc
	configErr   error
}

// Option customizes a Client
type Option func(*Client)

// WithSleep replaces the wait between attempts
func WithSleep(sleep SleepFunc) Option {
	return func(c *Client) {
		c.sleep = sleep
	}
}

// NewClient creates a Client. The provider is checked once here, a client
// built from an unsupported provider fails every call without retrying.
func NewClient(cfg config.LLM, generator Generator, logger hclog.Logger, opts ...Option) *Client {
	c := &Client{
		generator:   generator,
		logger:      logger,
		maxRetries:  cfg.MaxRetries,
		backoffUnit: cfg.BackoffUnit,
		limiter:     rate.NewLimiter(rate.Inf, 1),
		sleep:       sleepContext,
		configErr:   cfg.Validate(),
	}

	if c.maxRetries <= 0 {
		c.maxRetries = 3
	}
	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimit)
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.configErr != nil {
		logger.Error("LLM client is misconfigured, replies will fall back to product listings", "error", c.configErr)
	}

	return c
}

// Generate returns the model's text for prompt. Errors are always *GenerationError.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.configErr != nil {
		return "", &GenerationError{Kind: KindConfig, Err: c.configErr}
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", &GenerationError{Kind: KindExhausted, Attempts: attempt - 1, Err: err}
		}

		text, err := c.generator.Generate(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err

		c.logger.Warn("Generation attempt failed", "attempt", attempt, "max_retries", c.maxRetries, "error", err)

		if attempt == c.maxRetries {
			break
		}

		if err := c.sleep(ctx, Backoff(attempt, c.backoffUnit)); err != nil {
			return "", &GenerationError{Kind: KindExhausted, Attempts: attempt, Err: errors.Join(lastErr, err)}
		}
	}

	return "", &GenerationError{Kind: KindExhausted, Attempts: c.maxRetries, Err: lastErr}
}

// Backoff returns the wait after the given failed attempt: min(2^attempt, 8) units
func Backoff(attempt int, unit time.Duration) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	units := MaxBackoffUnits
	if attempt < 3 {
		units = 1 << attempt
	}
	return time.Duration(units) * unit
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
