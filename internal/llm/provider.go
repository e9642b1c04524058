// Package llm sends single-turn prompts to hosted language models and
// returns JSON validated against a caller-supplied schema.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates structured output from a prompt.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	ModelID() string
}

// Request is one prompt. When Schema is set the provider asks the model
// for JSON in that shape and validates what comes back.
type Request struct {
	System      string
	Prompt      string
	Schema      *Schema
	MaxTokens   int
	Temperature float64
}

// Schema names a JSON Schema document. Name doubles as the cache key for
// the compiled form, so two schemas must not share a name.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string
}

type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total is input plus output tokens.
func (u Usage) Total() int { return u.InputTokens + u.OutputTokens }

// Purposes label logged requests.
const (
	PurposeQuestionDraft = "question-draft"
	PurposeUnknown       = "unknown"
)

type purposeKey struct{}

// WithPurpose tags ctx so the event log can tell requests apart.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return PurposeUnknown
}

// finish validates raw output against the request schema and assembles
// the response. Every provider ends here.
func finish(req Request, raw string, usage Usage, model string, truncated bool) (*Response, error) {
	content := json.RawMessage(raw)
	if truncated {
		return nil, &TruncatedError{Content: content}
	}
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	return &Response{Content: content, Usage: usage, Model: model}, nil
}
