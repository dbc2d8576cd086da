package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/storefront/internal/auth/domain"
	usecaseMocks "github.com/allisson/storefront/internal/auth/usecase/mocks"
	sessionDomain "github.com/allisson/storefront/internal/session/domain"
)

func setupSessionHandler(t *testing.T) (*usecaseMocks.MockAuthUseCase, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	uc := &usecaseMocks.MockAuthUseCase{}
	handler := NewSessionHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))

	router := gin.New()
	router.GET("/v1/session", handler.GetHandler)
	router.POST("/v1/session/login", handler.LoginHandler)
	router.POST("/v1/session/register", handler.RegisterHandler)
	router.POST("/v1/session/logout", handler.LogoutHandler)
	return uc, router
}

func sendJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func authenticatedSession() *sessionDomain.Session {
	return &sessionDomain.Session{
		AccessToken:  "A1",
		RefreshToken: "R1",
		User:         json.RawMessage(`{"email":"ada@example.com"}`),
	}
}

func TestSessionHandler_GetHandler(t *testing.T) {
	t.Run("Authenticated", func(t *testing.T) {
		uc, router := setupSessionHandler(t)
		uc.On("Current", mock.Anything).Return(authenticatedSession(), nil).Once()

		w := sendJSON(router, http.MethodGet, "/v1/session", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"authenticated":true,"user":{"email":"ada@example.com"}}`, w.Body.String())
	})

	t.Run("Anonymous", func(t *testing.T) {
		uc, router := setupSessionHandler(t)
		uc.On("Current", mock.Anything).Return(nil, authDomain.ErrUnauthenticated).Once()

		w := sendJSON(router, http.MethodGet, "/v1/session", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())
	})

	t.Run("Store failure", func(t *testing.T) {
		uc, router := setupSessionHandler(t)
		uc.On("Current", mock.Anything).Return(nil, errors.New("disk gone")).Once()

		w := sendJSON(router, http.MethodGet, "/v1/session", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestSessionHandler_LoginHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		uc, router := setupSessionHandler(t)
		uc.On("Login", mock.Anything, &authDomain.LoginInput{Email: "ada@example.com", Password: "secret"}).
			Return(authenticatedSession(), nil).
			Once()

		w := sendJSON(router, http.MethodPost, "/v1/session/login", `{"email":"ada@example.com","password":"secret"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "A1")
		uc.AssertExpectations(t)
	})

	t.Run("Wrong credentials", func(t *testing.T) {
		uc, router := setupSessionHandler(t)
		uc.On("Login", mock.Anything, mock.Anything).
			Return(nil, authDomain.NewStatusError(http.MethodPost, "/auth/login", http.StatusUnauthorized, nil)).
			Once()

		w := sendJSON(router, http.MethodPost, "/v1/session/login", `{"email":"ada@example.com","password":"nope"}`)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Validation error", func(t *testing.T) {
		uc, router := setupSessionHandler(t)

		w := sendJSON(router, http.MethodPost, "/v1/session/login", `{"email":"ada"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		uc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
	})

	t.Run("Malformed json", func(t *testing.T) {
		_, router := setupSessionHandler(t)

		w := sendJSON(router, http.MethodPost, "/v1/session/login", `{`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSessionHandler_RegisterHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		uc, router := setupSessionHandler(t)
		uc.On("Register", mock.Anything, mock.AnythingOfType("*domain.RegisterInput")).
			Return(authenticatedSession(), nil).
			Once()

		w := sendJSON(router, http.MethodPost, "/v1/session/register",
			`{"name":"Ada","email":"ada@example.com","password":"secret"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Email taken", func(t *testing.T) {
		uc, router := setupSessionHandler(t)
		uc.On("Register", mock.Anything, mock.Anything).
			Return(nil, authDomain.NewStatusError(http.MethodPost, "/auth/register", http.StatusConflict, nil)).
			Once()

		w := sendJSON(router, http.MethodPost, "/v1/session/register",
			`{"name":"Ada","email":"ada@example.com","password":"secret"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestSessionHandler_LogoutHandler(t *testing.T) {
	uc, router := setupSessionHandler(t)
	uc.On("Logout", mock.Anything).Return(nil).Once()

	w := sendJSON(router, http.MethodPost, "/v1/session/logout", "")

	assert.Equal(t, http.StatusNoContent, w.Code)
	uc.AssertExpectations(t)
}
