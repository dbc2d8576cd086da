// Package http provides the admin gateway HTTP server: the boundary the storefront UI
// talks to for session and order operations.
package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/storefront/internal/auth/http"
	"github.com/allisson/storefront/internal/metrics"
	orderHTTP "github.com/allisson/storefront/internal/order/http"
)

// readinessTimeout bounds each readiness check.
const readinessTimeout = 2 * time.Second

// ReadinessCheck reports whether a dependency can serve requests.
type ReadinessCheck func(ctx context.Context) error

// Server represents the admin gateway HTTP server.
type Server struct {
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
	checks map[string]ReadinessCheck
}

// RouterConfig carries the handlers and middleware settings of the gateway.
type RouterConfig struct {
	SessionHandler *authHTTP.SessionHandler
	OrderHandler   *orderHTTP.OrderHandler

	LoginRateLimitEnabled        bool
	LoginRateLimitRequestsPerSec float64
	LoginRateLimitBurst          int

	CORSEnabled      bool
	CORSAllowOrigins string

	MetricsProvider  *metrics.Provider
	MetricsNamespace string
}

// NewServer creates a new HTTP server. checks feed the /ready endpoint, keyed by component name.
func NewServer(
	checks map[string]ReadinessCheck,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		logger: logger,
		checks: checks,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter builds the gin engine. ctx bounds background work owned by middlewares.
func (s *Server) SetupRouter(ctx context.Context, cfg RouterConfig) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if cfg.MetricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(cfg.MetricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	if cfg.SessionHandler != nil {
		session := v1.Group("/session")
		session.GET("", cfg.SessionHandler.GetHandler)

		credentials := session.Group("")
		if cfg.LoginRateLimitEnabled {
			credentials.Use(authHTTP.LoginRateLimitMiddleware(
				ctx,
				cfg.LoginRateLimitRequestsPerSec,
				cfg.LoginRateLimitBurst,
				s.logger,
			))
		}
		credentials.POST("/login", cfg.SessionHandler.LoginHandler)
		credentials.POST("/register", cfg.SessionHandler.RegisterHandler)

		session.POST("/logout", cfg.SessionHandler.LogoutHandler)
	}

	if cfg.OrderHandler != nil {
		orders := v1.Group("/orders")
		orders.GET("", cfg.OrderHandler.ListHandler)
		orders.GET("/:id", cfg.OrderHandler.GetHandler)
		orders.GET("/:id/transitions", cfg.OrderHandler.TransitionsHandler)
		orders.PUT("/:id/status", cfg.OrderHandler.UpdateStatusHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		s.SetupRouter(ctx, RouterConfig{})
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) readinessHandler(c *gin.Context) {
	components := make(map[string]string, len(s.checks))
	ready := true

	for name, check := range s.checks {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		err := check(ctx)
		cancel()

		if err != nil {
			ready = false
			components[name] = "error"
			s.logger.WarnContext(c.Request.Context(), "readiness check failed",
				slog.String("component", name),
				slog.Any("error", err),
			)
			continue
		}
		components[name] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "components": components})
}
