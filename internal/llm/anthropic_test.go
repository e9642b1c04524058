package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnthropic(t *testing.T, h http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "test-key", Model: "claude-haiku"},
		option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	require.NoError(t, err)
	return p
}

func anthropicReply(text, stop string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":          "msg_1",
			"type":        "message",
			"role":        "assistant",
			"model":       "claude-haiku-4-5",
			"content":     []map[string]any{{"type": "text", "text": text}},
			"stop_reason": stop,
			"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
		})
	}
}

func TestAnthropicGenerate(t *testing.T) {
	var body map[string]any
	p := newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		anthropicReply(`{"name":"Ada","age":3}`, "end_turn")(w, r)
	})
	assert.Equal(t, "claude-haiku-4-5", p.ModelID())

	resp, err := p.Generate(context.Background(), Request{
		System:    "You write skin quizzes.",
		Prompt:    "Draft one question.",
		Schema:    testSchema(),
		MaxTokens: 256,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ada","age":3}`, string(resp.Content))
	assert.Equal(t, 80, resp.Usage.Total())
	assert.Equal(t, "claude-haiku-4-5", resp.Model)
	assert.Equal(t, "claude-haiku-4-5", body["model"])
	assert.EqualValues(t, 256, body["max_tokens"])
}

func TestAnthropicTruncated(t *testing.T) {
	p := newTestAnthropic(t, anthropicReply(`{"name":`, "max_tokens"))
	_, err := p.Generate(context.Background(), Request{Prompt: "x", MaxTokens: 5})
	var tr *TruncatedError
	require.ErrorAs(t, err, &tr)
}

func TestAnthropicErrorStatuses(t *testing.T) {
	tests := []struct {
		status int
		check  func(t *testing.T, err error)
	}{
		{http.StatusTooManyRequests, func(t *testing.T, err error) {
			var rl *RateLimitError
			assert.ErrorAs(t, err, &rl)
		}},
		{http.StatusInternalServerError, func(t *testing.T, err error) {
			var un *UnavailableError
			assert.ErrorAs(t, err, &un)
		}},
		{http.StatusBadRequest, func(t *testing.T, err error) {
			var re *RequestError
			require.ErrorAs(t, err, &re)
			assert.Equal(t, http.StatusBadRequest, re.Status)
		}},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			p := newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"type":"error","error":{"type":"api_error","message":"nope"}}`))
			})
			_, err := p.Generate(context.Background(), Request{Prompt: "x", MaxTokens: 10})
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestAnthropicRequiresKey(t *testing.T) {
	_, err := NewAnthropicProvider(AnthropicConfig{})
	assert.Error(t, err)
}
