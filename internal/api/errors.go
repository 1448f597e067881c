package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNotFound matches any *Error carrying a 404.
var ErrNotFound = errors.New("not found")

// Error is a non-2xx reply from the backend.
type Error struct {
	Method     string
	Path       string
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode), e.Detail)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Temporary reports whether the backend failed on its side.
func (e *Error) Temporary() bool { return e.StatusCode >= 500 }

// detailFrom pulls the FastAPI-style {"detail": ...} message out of an error
// body. Validation errors carry a list there; those are returned as raw JSON.
func detailFrom(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
		Error  string          `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return snippet(body)
	}
	if len(payload.Detail) > 0 {
		var s string
		if err := json.Unmarshal(payload.Detail, &s); err == nil {
			return s
		}
		return string(payload.Detail)
	}
	if payload.Error != "" {
		return payload.Error
	}
	return snippet(body)
}

func snippet(body []byte) string {
	const max = 512
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		s = s[:max] + "..."
	}
	return s
}
