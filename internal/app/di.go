// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	authHTTP "github.com/allisson/storefront/internal/auth/http"
	authService "github.com/allisson/storefront/internal/auth/service"
	"github.com/allisson/storefront/internal/auth/transport"
	authUseCase "github.com/allisson/storefront/internal/auth/usecase"
	"github.com/allisson/storefront/internal/config"
	"github.com/allisson/storefront/internal/http"
	"github.com/allisson/storefront/internal/metrics"
	orderHTTP "github.com/allisson/storefront/internal/order/http"
	orderUseCase "github.com/allisson/storefront/internal/order/usecase"
	"github.com/allisson/storefront/internal/restclient"
	sessionDomain "github.com/allisson/storefront/internal/session/domain"
	sessionRepository "github.com/allisson/storefront/internal/session/repository"
	sessionService "github.com/allisson/storefront/internal/session/service"
	sessionUseCase "github.com/allisson/storefront/internal/session/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Session
	kvStore      sessionRepository.Store
	sealer       sessionService.Sealer
	sessionStore sessionUseCase.SessionStore

	// Remote API
	refresher          authService.Refresher
	refreshCoordinator *authService.RefreshCoordinator
	apiTransport       *transport.Transport
	apiClient          *restclient.Client

	// Use Cases
	authUseCase     authUseCase.AuthUseCase
	orderRepository orderUseCase.OrderRepository
	orderUseCase    orderUseCase.OrderUseCase

	// Handlers
	sessionHandler *authHTTP.SessionHandler
	orderHandler   *orderHTTP.OrderHandler

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// backgroundCancel stops goroutines owned by middlewares.
	backgroundCancel context.CancelFunc

	// Initialization flags and mutex for thread-safety
	mu                     sync.Mutex
	loggerInit             sync.Once
	metricsProviderInit    sync.Once
	businessMetricsInit    sync.Once
	kvStoreInit            sync.Once
	sealerInit             sync.Once
	sessionStoreInit       sync.Once
	refresherInit          sync.Once
	refreshCoordinatorInit sync.Once
	apiTransportInit       sync.Once
	apiClientInit          sync.Once
	authUseCaseInit        sync.Once
	orderRepositoryInit    sync.Once
	orderUseCaseInit       sync.Once
	sessionHandlerInit     sync.Once
	orderHandlerInit       sync.Once
	httpServerInit         sync.Once
	metricsServerInit      sync.Once
	initErrors             map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		c.metricsProvider, err = c.initMetricsProvider()
		if err != nil {
			c.setInitError("metricsProvider", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("metricsProvider"); storedErr != nil {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. It is a no-op when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.setInitError("businessMetrics", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("businessMetrics"); storedErr != nil {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// HTTPServer returns the admin gateway server.
func (c *Container) HTTPServer() (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer()
		if err != nil {
			c.setInitError("httpServer", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("httpServer"); storedErr != nil {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the Prometheus metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.setInitError("metricsServer", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("metricsServer"); storedErr != nil {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.backgroundCancel != nil {
		c.backgroundCancel()
	}

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.kvStore != nil {
		if err := c.kvStore.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("session store close: %w", err))
		}
	}

	if c.sealer != nil {
		if err := c.sealer.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("sealer close: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %w", errors.Join(shutdownErrors...))
	}

	return nil
}

func (c *Container) setInitError(name string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.initErrors[name] = err
}

func (c *Container) initError(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initErrors[name]
}

// initLogger creates a JSON logger on stderr so command output on stdout stays parseable.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

func (c *Container) initMetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}
	provider, err := metrics.NewProvider(c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}
	return provider, nil
}

func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
	}
	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}

	businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}
	return businessMetrics, nil
}

// initHTTPServer creates the admin gateway with all its handlers.
func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	sessionHandler, err := c.SessionHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get session handler for http server: %w", err)
	}

	orderHandler, err := c.OrderHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get order handler for http server: %w", err)
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	kvStore, err := c.KVStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get session store for http server: %w", err)
	}

	checks := map[string]http.ReadinessCheck{
		"session_store": func(ctx context.Context) error {
			_, err := kvStore.Get(ctx, sessionDomain.Keys()...)
			return err
		},
	}

	backgroundCtx, cancel := context.WithCancel(context.Background())
	c.mu.Lock()
	c.backgroundCancel = cancel
	c.mu.Unlock()

	server := http.NewServer(checks, c.config.ServerHost, c.config.ServerPort, logger)
	server.SetupRouter(backgroundCtx, http.RouterConfig{
		SessionHandler:               sessionHandler,
		OrderHandler:                 orderHandler,
		LoginRateLimitEnabled:        c.config.RateLimitLoginEnabled,
		LoginRateLimitRequestsPerSec: c.config.RateLimitLoginRequestsPerSec,
		LoginRateLimitBurst:          c.config.RateLimitLoginBurst,
		CORSEnabled:                  c.config.CORSEnabled,
		CORSAllowOrigins:             c.config.CORSAllowOrigins,
		MetricsProvider:              provider,
		MetricsNamespace:             c.config.MetricsNamespace,
	})

	return server, nil
}

func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}
	if provider == nil {
		return nil, nil
	}
	return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider), nil
}
