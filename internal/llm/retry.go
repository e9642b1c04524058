package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryProvider retries transient failures with capped exponential
// backoff. A schema mismatch is retried once since models often get it
// right on a second try.
type RetryProvider struct {
	inner Provider
	cfg   RetryConfig
}

func WithRetry(p Provider, cfg RetryConfig) Provider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryProvider{inner: p, cfg: cfg}
}

func (r *RetryProvider) ModelID() string { return r.inner.ModelID() }

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var (
		err         error
		invalidSeen bool
	)
	for attempt := 0; attempt < r.cfg.MaxAttempts; attempt++ {
		if attempt > 0 {
			t := time.NewTimer(r.wait(attempt-1, err))
			select {
			case <-ctx.Done():
				t.Stop()
				return nil, ctx.Err()
			case <-t.C:
			}
		}

		var resp *Response
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		var invalid *InvalidResponseError
		if errors.As(err, &invalid) {
			if invalidSeen {
				return nil, err
			}
			invalidSeen = true
			continue
		}
		if !retryable(err) {
			return nil, err
		}
	}
	return nil, err
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var (
		truncated *TruncatedError
		rejected  *RequestError
	)
	return !errors.As(err, &truncated) && !errors.As(err, &rejected)
}

// wait is InitialWait * Multiplier^n capped at MaxWait, with ±20% jitter.
// A provider supplied Retry-After wins.
func (r *RetryProvider) wait(n int, err error) time.Duration {
	var rl *RateLimitError
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	d := float64(r.cfg.InitialWait) * math.Pow(r.cfg.Multiplier, float64(n))
	if limit := float64(r.cfg.MaxWait); limit > 0 && d > limit {
		d = limit
	}
	d *= 0.8 + 0.4*rand.Float64()
	return time.Duration(d)
}
