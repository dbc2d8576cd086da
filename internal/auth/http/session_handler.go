// Package http provides HTTP handlers and middleware for the client session lifecycle.
package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/storefront/internal/auth/domain"
	"github.com/allisson/storefront/internal/auth/http/dto"
	authUseCase "github.com/allisson/storefront/internal/auth/usecase"
	"github.com/allisson/storefront/internal/httputil"
	customValidation "github.com/allisson/storefront/internal/validation"
)

// SessionHandler handles HTTP requests for login, registration and logout.
type SessionHandler struct {
	authUseCase authUseCase.AuthUseCase
	logger      *slog.Logger
}

// NewSessionHandler creates a new session handler with required dependencies.
func NewSessionHandler(authUseCase authUseCase.AuthUseCase, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		authUseCase: authUseCase,
		logger:      logger,
	}
}

// GetHandler describes the stored session.
// GET /v1/session - Returns 200 OK with authenticated=false when no session is stored.
func (h *SessionHandler) GetHandler(c *gin.Context) {
	session, err := h.authUseCase.Current(c.Request.Context())
	if err != nil {
		if errors.Is(err, authDomain.ErrUnauthenticated) {
			c.JSON(http.StatusOK, dto.SessionResponse{})
			return
		}
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSessionToResponse(session))
}

// LoginHandler exchanges credentials for a session.
// POST /v1/session/login - Returns 200 OK with the session description.
func (h *SessionHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	session, err := h.authUseCase.Login(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSessionToResponse(session))
}

// RegisterHandler creates an account and stores the returned session.
// POST /v1/session/register - Returns 201 Created with the session description.
func (h *SessionHandler) RegisterHandler(c *gin.Context) {
	var req dto.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	session, err := h.authUseCase.Register(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapSessionToResponse(session))
}

// LogoutHandler forgets the stored session.
// POST /v1/session/logout - Returns 204 No Content.
func (h *SessionHandler) LogoutHandler(c *gin.Context) {
	if err := h.authUseCase.Logout(c.Request.Context()); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
