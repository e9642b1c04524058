package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/dermaquiz/internal/store"
)

// EventSink is the slice of store.EventRepo the logger needs.
type EventSink interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

// LoggingProvider records every call, successful or not, as an llm event.
type LoggingProvider struct {
	inner    Provider
	provider string
	sink     EventSink
	log      *zap.Logger
}

// WithLogging wraps p. provider is the configured provider name; it is
// stored alongside the model so events from gateways stay distinguishable.
func WithLogging(p Provider, provider string, sink EventSink, log *zap.Logger) Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &LoggingProvider{inner: p, provider: provider, sink: sink, log: log}
}

func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	ev := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}

	l.log.Debug("llm request",
		zap.String("provider", ev.Provider),
		zap.String("model", ev.Model),
		zap.String("purpose", ev.Purpose),
		zap.Int64("latency_ms", ev.LatencyMs),
		zap.Bool("success", ev.Success))

	// The caller may have cancelled ctx; the event is still worth keeping.
	if lerr := l.sink.AppendLLMRequest(context.WithoutCancel(ctx), ev); lerr != nil {
		l.log.Warn("record llm event", zap.Error(lerr))
	}
	return resp, err
}

// transcript renders the request the way `dermaquiz llm view` shows it.
func transcript(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	fmt.Fprintf(&b, "[user]\n%s\n", req.Prompt)
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "\n[schema %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
