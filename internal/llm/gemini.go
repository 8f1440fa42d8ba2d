package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/kahvecikaan/salona-bot/internal/config"
	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/shared"
	"net/http"
	"time"
)

// Generator produces text for a prompt in a single attempt
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// geminiGenerator talks to Gemini through its OpenAI-compatible endpoint
type geminiGenerator struct {
	client openai.Client
	model  string
}

// NewGeminiGenerator creates a Generator for the configured Gemini model.
// The SDK's own retries are disabled, Client handles retrying.
func NewGeminiGenerator(cfg config.LLM, httpClient *http.Client) Generator {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}

	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	)

	return &geminiGenerator{client: client, model: cfg.Model}
}

func (g *geminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	completion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model: shared.ChatModel(g.model),
	})
	if err != nil {
		return "", fmt.Errorf("gemini completion: %w", err)
	}

	if len(completion.Choices) > 0 && completion.Choices[0].Message.Content != "" {
		return completion.Choices[0].Message.Content, nil
	}

	// no text in the response, hand back the whole thing
	if raw := completion.RawJSON(); raw != "" {
		return raw, nil
	}
	b, err := json.Marshal(completion)
	if err != nil {
		return "", fmt.Errorf("gemini response: %w", err)
	}
	return string(b), nil
}
