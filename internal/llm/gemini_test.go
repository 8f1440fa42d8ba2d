package llm

import (
	"context"
	"encoding/json"
	"github.com/kahvecikaan/salona-bot/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newGeminiServer(t *testing.T, status int, body string) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/openai/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected authorization header: %s", r.Header.Get("Authorization"))
		}

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("unable to decode request: %v", err)
		}
		if req.Model != "gemini-2.0-flash" || len(req.Messages) != 1 || req.Messages[0].Content != "سلام" {
			t.Errorf("unexpected request: %+v", req)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func geminiConfig(baseURL string) config.LLM {
	return config.LLM{
		Provider: config.ProviderGemini,
		APIKey:   "test-key",
		Model:    "gemini-2.0-flash",
		BaseURL:  baseURL + "/v1beta/openai/",
	}
}

func TestGeminiGenerate(t *testing.T) {
	server := newGeminiServer(t, http.StatusOK, `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"created": 1,
		"model": "gemini-2.0-flash",
		"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "  بله، موجود است.  "}}]
	}`)

	g := NewGeminiGenerator(geminiConfig(server.URL), server.Client())
	text, err := g.Generate(context.Background(), "سلام")

	require.NoError(t, err)
	assert.Equal(t, "  بله، موجود است.  ", text)
}

func TestGeminiGenerateWithoutChoices(t *testing.T) {
	body := `{"id":"chatcmpl-2","object":"chat.completion","created":1,"model":"gemini-2.0-flash","choices":[]}`
	server := newGeminiServer(t, http.StatusOK, body)

	g := NewGeminiGenerator(geminiConfig(server.URL), server.Client())
	text, err := g.Generate(context.Background(), "سلام")

	require.NoError(t, err)
	assert.JSONEq(t, body, text)
}

func TestGeminiGenerateError(t *testing.T) {
	server := newGeminiServer(t, http.StatusUnauthorized, `{"error": {"message": "API key not valid", "code": 401}}`)

	g := NewGeminiGenerator(geminiConfig(server.URL), server.Client())
	_, err := g.Generate(context.Background(), "سلام")

	assert.Error(t, err)
}
