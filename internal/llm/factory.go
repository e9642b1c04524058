package llm

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// NewProvider builds the configured provider and wraps it as
// timeout → retry → event log → provider. A nil sink skips event logging.
func NewProvider(ctx context.Context, cfg Config, sink EventSink, log *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		p   Provider
		err error
	)
	switch cfg.Provider {
	case ProviderAnthropic:
		p, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		p, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		p, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		p, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		p = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("init %s provider: %w", cfg.Provider, err)
	}

	if sink != nil {
		p = WithLogging(p, cfg.Provider, sink, log)
	}
	p = WithRetry(p, cfg.Retry)
	if cfg.Timeout > 0 {
		p = &timeoutProvider{inner: p, d: cfg.Timeout}
	}
	return p, nil
}

type timeoutProvider struct {
	inner Provider
	d     time.Duration
}

func (t *timeoutProvider) ModelID() string { return t.inner.ModelID() }

func (t *timeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.inner.Generate(ctx, req)
}
