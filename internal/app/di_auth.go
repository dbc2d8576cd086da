package app

import (
	"fmt"
	"net/http"

	"golang.org/x/time/rate"

	authHTTP "github.com/allisson/storefront/internal/auth/http"
	authService "github.com/allisson/storefront/internal/auth/service"
	"github.com/allisson/storefront/internal/auth/transport"
	authUseCase "github.com/allisson/storefront/internal/auth/usecase"
	"github.com/allisson/storefront/internal/metrics"
	"github.com/allisson/storefront/internal/restclient"
)

// Refresher returns the refresh endpoint client. It bypasses the authenticated transport.
func (c *Container) Refresher() (authService.Refresher, error) {
	var err error
	c.refresherInit.Do(func() {
		c.refresher, err = c.initRefresher()
		if err != nil {
			c.setInitError("refresher", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("refresher"); storedErr != nil {
		return nil, storedErr
	}
	return c.refresher, nil
}

// RefreshCoordinator returns the 401 handler shared by every outgoing request.
func (c *Container) RefreshCoordinator() (*authService.RefreshCoordinator, error) {
	var err error
	c.refreshCoordinatorInit.Do(func() {
		c.refreshCoordinator, err = c.initRefreshCoordinator()
		if err != nil {
			c.setInitError("refreshCoordinator", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("refreshCoordinator"); storedErr != nil {
		return nil, storedErr
	}
	return c.refreshCoordinator, nil
}

// APITransport returns the authenticated round tripper.
func (c *Container) APITransport() (*transport.Transport, error) {
	var err error
	c.apiTransportInit.Do(func() {
		c.apiTransport, err = c.initAPITransport()
		if err != nil {
			c.setInitError("apiTransport", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("apiTransport"); storedErr != nil {
		return nil, storedErr
	}
	return c.apiTransport, nil
}

// APIClient returns the REST client whose requests go through the authenticated transport.
func (c *Container) APIClient() (*restclient.Client, error) {
	var err error
	c.apiClientInit.Do(func() {
		c.apiClient, err = c.initAPIClient()
		if err != nil {
			c.setInitError("apiClient", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("apiClient"); storedErr != nil {
		return nil, storedErr
	}
	return c.apiClient, nil
}

// AuthUseCase returns the session lifecycle use case.
func (c *Container) AuthUseCase() (authUseCase.AuthUseCase, error) {
	var err error
	c.authUseCaseInit.Do(func() {
		c.authUseCase, err = c.initAuthUseCase()
		if err != nil {
			c.setInitError("authUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("authUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.authUseCase, nil
}

// SessionHandler returns the session HTTP handler.
func (c *Container) SessionHandler() (*authHTTP.SessionHandler, error) {
	var err error
	c.sessionHandlerInit.Do(func() {
		c.sessionHandler, err = c.initSessionHandler()
		if err != nil {
			c.setInitError("sessionHandler", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("sessionHandler"); storedErr != nil {
		return nil, storedErr
	}
	return c.sessionHandler, nil
}

// upstreamRoundTripper is the bottom of every transport chain: it counts and times
// calls to the storefront API when metrics are enabled.
func (c *Container) upstreamRoundTripper() (http.RoundTripper, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, err
	}
	base := http.DefaultTransport
	if provider == nil {
		return base, nil
	}
	return metrics.NewUpstreamTransport(base, provider.MeterProvider(), c.config.MetricsNamespace), nil
}

func (c *Container) initRefresher() (authService.Refresher, error) {
	base, err := c.upstreamRoundTripper()
	if err != nil {
		return nil, fmt.Errorf("failed to get upstream transport for refresher: %w", err)
	}

	client, err := restclient.New(c.config.APIBaseURL, &http.Client{
		Transport: base,
		Timeout:   c.config.APITimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh client: %w", err)
	}
	return authService.NewHTTPRefresher(client), nil
}

func (c *Container) initRefreshCoordinator() (*authService.RefreshCoordinator, error) {
	refresher, err := c.Refresher()
	if err != nil {
		return nil, fmt.Errorf("failed to get refresher for refresh coordinator: %w", err)
	}

	sessionStore, err := c.SessionStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get session store for refresh coordinator: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for refresh coordinator: %w", err)
	}

	return authService.NewRefreshCoordinator(
		refresher,
		sessionStore,
		businessMetrics,
		c.Logger(),
		authService.CoordinatorConfig{
			SingleFlight:   c.config.RefreshSingleFlight,
			RefreshTimeout: c.config.APITimeout,
		},
	), nil
}

func (c *Container) initAPITransport() (*transport.Transport, error) {
	sessionStore, err := c.SessionStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get session store for api transport: %w", err)
	}

	coordinator, err := c.RefreshCoordinator()
	if err != nil {
		return nil, fmt.Errorf("failed to get refresh coordinator for api transport: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for api transport: %w", err)
	}

	base, err := c.upstreamRoundTripper()
	if err != nil {
		return nil, fmt.Errorf("failed to get upstream transport for api transport: %w", err)
	}

	var limiter *rate.Limiter
	if c.config.APIRateLimitEnabled {
		limiter = rate.NewLimiter(rate.Limit(c.config.APIRateLimitRequestsPerSec), c.config.APIRateLimitBurst)
	}

	return transport.New(
		sessionStore,
		authService.NewAuthenticator(),
		coordinator,
		c.Logger(),
		transport.Config{
			Base:    base,
			Limiter: limiter,
			Metrics: businessMetrics,
		},
	), nil
}

func (c *Container) initAPIClient() (*restclient.Client, error) {
	apiTransport, err := c.APITransport()
	if err != nil {
		return nil, fmt.Errorf("failed to get api transport for api client: %w", err)
	}

	client, err := restclient.New(c.config.APIBaseURL, &http.Client{
		Transport: apiTransport,
		Timeout:   c.config.APITimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create api client: %w", err)
	}
	return client, nil
}

func (c *Container) initAuthUseCase() (authUseCase.AuthUseCase, error) {
	apiClient, err := c.APIClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get api client for auth use case: %w", err)
	}

	sessionStore, err := c.SessionStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get session store for auth use case: %w", err)
	}

	baseUseCase := authUseCase.NewAuthUseCase(apiClient, sessionStore, c.Logger())

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for auth use case: %w", err)
		}
		return authUseCase.NewAuthUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initSessionHandler() (*authHTTP.SessionHandler, error) {
	useCase, err := c.AuthUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get auth use case for session handler: %w", err)
	}
	return authHTTP.NewSessionHandler(useCase, c.Logger()), nil
}
