package llm

import (
	"context"
	"errors"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/salona-bot/internal/config"
	"github.com/kahvecikaan/salona-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

// scriptedGenerator fails the first failures calls and then answers
type scriptedGenerator struct {
	failures int
	calls    int
	text     string
}

func (g *scriptedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.calls++
	if g.calls <= g.failures {
		return "", errors.New("upstream unavailable")
	}
	return g.text, nil
}

type sleepRecorder struct {
	waits []time.Duration
}

func (s *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	s.waits = append(s.waits, d)
	return nil
}

func testConfig() config.LLM {
	return config.LLM{
		Provider:    config.ProviderGemini,
		MaxRetries:  3,
		BackoffUnit: time.Second,
	}
}

func TestGenerateSucceedsAfterTwoFailures(t *testing.T) {
	gen := &scriptedGenerator{failures: 2, text: "پاسخ"}
	rec := &sleepRecorder{}
	c := NewClient(testConfig(), gen, hclog.NewNullLogger(), WithSleep(rec.sleep))

	text, err := c.Generate(context.Background(), "prompt")

	require.NoError(t, err)
	assert.Equal(t, "پاسخ", text)
	assert.Equal(t, 3, gen.calls)
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, rec.waits)
}

func TestGenerateExhaustsRetries(t *testing.T) {
	gen := &scriptedGenerator{failures: 100}
	rec := &sleepRecorder{}
	c := NewClient(testConfig(), gen, hclog.NewNullLogger(), WithSleep(rec.sleep))

	text, err := c.Generate(context.Background(), "prompt")

	assert.Empty(t, text)
	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, KindExhausted, genErr.Kind)
	assert.Equal(t, 3, genErr.Attempts)
	assert.Contains(t, genErr.Error(), "upstream unavailable")
	assert.Equal(t, 3, gen.calls)
	// no wait after the last attempt
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, rec.waits)
}

func TestGenerateUnsupportedProvider(t *testing.T) {
	cfg := testConfig()
	cfg.Provider = "openai"
	gen := &scriptedGenerator{text: "never"}
	rec := &sleepRecorder{}
	c := NewClient(cfg, gen, hclog.NewNullLogger(), WithSleep(rec.sleep))

	_, err := c.Generate(context.Background(), "prompt")

	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, KindConfig, genErr.Kind)
	assert.True(t, errors.Is(err, domain.ErrUnsupportedProvider))
	assert.Zero(t, gen.calls)
	assert.Empty(t, rec.waits)
}

func TestGenerateStopsWhenContextEnds(t *testing.T) {
	gen := &scriptedGenerator{failures: 100}
	c := NewClient(testConfig(), gen, hclog.NewNullLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Generate(ctx, "prompt")

	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestBackoff(t *testing.T) {
	testCases := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 2 * time.Millisecond},
		{2, 4 * time.Millisecond},
		{3, 8 * time.Millisecond},
		{4, 8 * time.Millisecond},
		{10, 8 * time.Millisecond},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, Backoff(tc.attempt, time.Millisecond), "attempt %d", tc.attempt)
	}
}
