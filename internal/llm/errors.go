package llm

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// RateLimitError is a 429 from the provider.
type RateLimitError struct {
	RetryAfter time.Duration
	Err        error
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *RateLimitError) Unwrap() error { return e.Err }

// UnavailableError covers 5xx responses and transport failures.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	if e.Err == nil {
		return "llm provider unavailable"
	}
	return fmt.Sprintf("llm provider unavailable: %v", e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// RequestError is a 4xx other than 429. Retrying will not help.
type RequestError struct {
	Status int
	Err    error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("llm request rejected (%d): %v", e.Status, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// InvalidResponseError means the model answered with something that is
// not JSON or does not match the schema.
type InvalidResponseError struct {
	Content json.RawMessage
	Err     error
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("invalid llm response: %v", e.Err)
}

func (e *InvalidResponseError) Unwrap() error { return e.Err }

// TruncatedError means generation stopped at MaxTokens.
type TruncatedError struct {
	Content json.RawMessage
}

func (e *TruncatedError) Error() string {
	return "llm response truncated at max tokens"
}

// classifyStatus turns an SDK error carrying an HTTP status into one of
// the typed errors above.
func classifyStatus(status int, err error) error {
	switch {
	case status == http.StatusTooManyRequests:
		return &RateLimitError{Err: err}
	case status >= 400 && status < 500:
		return &RequestError{Status: status, Err: err}
	default:
		return &UnavailableError{Err: err}
	}
}
