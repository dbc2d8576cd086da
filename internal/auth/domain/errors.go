package domain

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	apperrors "github.com/allisson/storefront/internal/errors"
)

// Authentication pipeline errors.
var (
	// ErrUnauthenticated indicates an operation that needs a session while none is stored.
	ErrUnauthenticated = apperrors.Wrap(apperrors.ErrUnauthorized, "not authenticated")

	// ErrRefreshFailed marks a 401 whose credential refresh did not succeed.
	ErrRefreshFailed = apperrors.Wrap(apperrors.ErrUnauthorized, "credential refresh failed")

	// ErrMissingAccessToken indicates a refresh or login response without an access credential.
	ErrMissingAccessToken = apperrors.New("response carried no access token")
)

// StatusError is a non-2xx answer from the remote API.
type StatusError struct {
	StatusCode int
	Method     string
	Path       string
	Message    string
	Body       []byte
}

// NewStatusError builds a StatusError, extracting a human message from common JSON error shapes.
func NewStatusError(method, path string, statusCode int, body []byte) *StatusError {
	return &StatusError{
		StatusCode: statusCode,
		Method:     method,
		Path:       path,
		Message:    extractMessage(statusCode, body),
		Body:       append([]byte(nil), body...),
	}
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// Is maps the status code onto the shared sentinel errors.
func (e *StatusError) Is(target error) bool {
	switch target {
	case apperrors.ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case apperrors.ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case apperrors.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case apperrors.ErrConflict:
		return e.StatusCode == http.StatusConflict
	case apperrors.ErrInvalidInput:
		return e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity
	case apperrors.ErrUnavailable:
		return e.StatusCode >= http.StatusInternalServerError
	}
	return false
}

// IsClientError reports a 4xx status.
func (e *StatusError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

func extractMessage(statusCode int, body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Data    struct {
			Message string `json:"message"`
		} `json:"data"`
	}
	if json.Unmarshal(body, &payload) == nil {
		for _, candidate := range []string{payload.Message, payload.Error, payload.Data.Message} {
			if candidate != "" {
				return candidate
			}
		}
	}

	text := strings.TrimSpace(string(body))
	if text != "" && len(text) <= 200 && !strings.HasPrefix(text, "{") && !strings.HasPrefix(text, "<") {
		return text
	}
	if status := http.StatusText(statusCode); status != "" {
		return strings.ToLower(status)
	}
	return "unexpected status"
}

// RefreshFailedError is delivered when a 401 triggered a refresh that did not succeed.
// It reads as the original 401 and unwraps to it, so callers see the failure they would
// have seen without the refresh. Cause holds the refresh failure.
type RefreshFailedError struct {
	Original *StatusError
	Cause    error
}

func (e *RefreshFailedError) Error() string {
	return e.Original.Error()
}

func (e *RefreshFailedError) Unwrap() []error {
	return []error{e.Original, ErrRefreshFailed}
}
