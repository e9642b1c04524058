package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatServer(t *testing.T, h http.HandlerFunc) string {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv.URL + "/v1"
}

func chatReply(content, finish string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1700000000,
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": finish,
			}},
			"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
		})
	}
}

func TestOpenAIGenerate(t *testing.T) {
	var body map[string]any
	url := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		chatReply(`{"name":"Ada","age":4}`, "stop")(w, r)
	})
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-4o-mini", BaseURL: url})
	require.NoError(t, err)

	resp, err := p.Generate(context.Background(), Request{
		System: "sys",
		Prompt: "draft",
		Schema: testSchema(),
	})
	require.NoError(t, err)
	assert.Equal(t, 40, resp.Usage.InputTokens)
	assert.Equal(t, 25, resp.Usage.OutputTokens)

	msgs := body["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "draft", msgs[1].(map[string]any)["content"])
	format := body["response_format"].(map[string]any)
	assert.Equal(t, "json_schema", format["type"])
}

func TestOpenAISchemaMismatch(t *testing.T) {
	url := chatServer(t, chatReply(`{"name":"Ada"}`, "stop"))
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", BaseURL: url})
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), Request{Prompt: "x", Schema: testSchema()})
	var inv *InvalidResponseError
	require.ErrorAs(t, err, &inv)
	assert.JSONEq(t, `{"name":"Ada"}`, string(inv.Content))
}

func TestOpenAITruncated(t *testing.T) {
	url := chatServer(t, chatReply(`{"na`, "length"))
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", BaseURL: url})
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), Request{Prompt: "x"})
	var tr *TruncatedError
	assert.ErrorAs(t, err, &tr)
}

func TestOpenAIRateLimit(t *testing.T) {
	url := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"slow down","type":"rate_limit_error"}}`))
	})
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", BaseURL: url})
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), Request{Prompt: "x"})
	var rl *RateLimitError
	assert.ErrorAs(t, err, &rl)
}

func TestOpenRouterProvider(t *testing.T) {
	var path, model string
	url := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		model, _ = body["model"].(string)
		chatReply(`{}`, "stop")(w, r)
	})

	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "k", Model: "anthropic/claude-3-haiku", BaseURL: url})
	require.NoError(t, err)
	assert.Equal(t, "anthropic/claude-3-haiku", p.ModelID())

	_, err = p.Generate(context.Background(), Request{Prompt: "x"})
	require.NoError(t, err)
	assert.Equal(t, "/v1/chat/completions", path)
	assert.Equal(t, "anthropic/claude-3-haiku", model)

	_, err = NewOpenRouterProvider(OpenRouterConfig{Model: "x"})
	assert.Error(t, err)
}
