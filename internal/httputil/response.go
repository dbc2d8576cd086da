// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/storefront/internal/errors"
)

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// errorMapping ties a sentinel to the status and body the gateway answers with.
// The first matching entry wins.
type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

var errorMappings = []errorMapping{
	{apperrors.ErrNotFound, http.StatusNotFound, "not_found", "The requested resource was not found"},
	{apperrors.ErrConflict, http.StatusConflict, "conflict", "The resource was changed by someone else"},
	// message left empty: the wrapped validation error is shown as-is
	{apperrors.ErrInvalidInput, http.StatusUnprocessableEntity, "invalid_input", ""},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, "unauthorized", "Authentication is required"},
	{apperrors.ErrForbidden, http.StatusForbidden, "forbidden", "You don't have permission to access this resource"},
	{apperrors.ErrUnavailable, http.StatusBadGateway, "upstream_unavailable", "The storefront API could not be reached"},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, "upstream_timeout", "The storefront API did not answer in time"},
}

// HandleErrorGin maps domain errors to HTTP status codes and returns a JSON response using Gin.
// Errors matching no sentinel become a 500 without details.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		body := ErrorResponse{Error: m.code, Message: m.message}
		if body.Message == "" {
			body.Message = err.Error()
		}
		WriteErrorGin(c, m.status, body, err, logger)
		return
	}

	WriteErrorGin(c, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	}, err, logger)
}

// WriteErrorGin logs err and writes body with statusCode. Handlers with domain-specific
// error bodies use it directly.
func WriteErrorGin(c *gin.Context, statusCode int, body ErrorResponse, err error, logger *slog.Logger) {
	if logger != nil {
		logger.ErrorContext(c.Request.Context(), "request failed",
			slog.Int("status_code", statusCode),
			slog.String("error_code", body.Error),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, body)
}

// HandleBadRequestGin writes a 400 Bad Request response for malformed JSON or parameters using Gin.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	errorResponse := ErrorResponse{
		Error:   "bad_request",
		Message: err.Error(),
	}

	c.JSON(http.StatusBadRequest, errorResponse)
}

// HandleValidationErrorGin writes a 422 Unprocessable Entity response for validation errors using Gin.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	errorResponse := ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
	}

	c.JSON(http.StatusUnprocessableEntity, errorResponse)
}
