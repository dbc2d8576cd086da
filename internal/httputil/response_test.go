package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/storefront/internal/errors"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestHandleErrorGin(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"not found", apperrors.Wrap(apperrors.ErrNotFound, "order"), http.StatusNotFound, "not_found"},
		{"conflict", apperrors.ErrConflict, http.StatusConflict, "conflict"},
		{"invalid input", apperrors.Wrap(apperrors.ErrInvalidInput, "bad"), http.StatusUnprocessableEntity, "invalid_input"},
		{"unauthorized", apperrors.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"forbidden", apperrors.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"unavailable", apperrors.ErrUnavailable, http.StatusBadGateway, "upstream_unavailable"},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, "upstream_timeout"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext()

			HandleErrorGin(c, tt.err, nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), `"error":"`+tt.expectedCode+`"`)
		})
	}
}

func TestHandleErrorGin_InvalidInputMessage(t *testing.T) {
	c, w := newTestContext()

	HandleErrorGin(c, apperrors.Wrap(apperrors.ErrInvalidInput, "limit too large"), nil)

	assert.JSONEq(t, `{"error":"invalid_input","message":"limit too large: invalid input"}`, w.Body.String())
}

func TestHandleErrorGin_Nil(t *testing.T) {
	c, w := newTestContext()

	HandleErrorGin(c, nil, nil)

	assert.Empty(t, w.Body.String())
}

func TestWriteErrorGin_Details(t *testing.T) {
	c, w := newTestContext()

	WriteErrorGin(c, http.StatusConflict, ErrorResponse{
		Error:   "transition_rejected",
		Message: "payment not settled",
		Details: map[string]string{"orderId": "ord-1"},
	}, errors.New("rejected"), nil)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(
		t,
		`{"error":"transition_rejected","message":"payment not settled","details":{"orderId":"ord-1"}}`,
		w.Body.String(),
	)
}

func TestHandleBadRequestGin(t *testing.T) {
	c, w := newTestContext()

	HandleBadRequestGin(c, errors.New("malformed json"), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"bad_request","message":"malformed json"}`, w.Body.String())
}

func TestHandleValidationErrorGin(t *testing.T) {
	c, w := newTestContext()

	HandleValidationErrorGin(c, errors.New("email: must be a valid email address."), nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "validation_error")
}
