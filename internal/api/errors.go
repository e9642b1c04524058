package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrUnauthorized matches any *Error with status 401.
var ErrUnauthorized = errors.New("unauthorized")

// ErrNotFound matches any *Error with status 404.
var ErrNotFound = errors.New("not found")

// Error is a non-2xx response from the backend.
type Error struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, msg)
}

// Unwrap exposes the sentinel for statuses callers branch on.
func (e *Error) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}

// errorBody covers the shapes backends commonly use for error payloads.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func newError(method, path string, resp *http.Response) *Error {
	e := &Error{Method: method, Path: path, StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(raw) == 0 {
		return e
	}
	var body errorBody
	if json.Unmarshal(raw, &body) == nil {
		switch {
		case body.Error != "":
			e.Message = body.Error
		case body.Message != "":
			e.Message = body.Message
		}
		if e.Message != "" {
			return e
		}
	}
	e.Message = strings.TrimSpace(string(raw))
	return e
}
