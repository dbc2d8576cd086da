package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	authDomain "github.com/allisson/storefront/internal/auth/domain"
	"github.com/allisson/storefront/internal/metrics"
	sessionDomain "github.com/allisson/storefront/internal/session/domain"
)

const maxErrorBodySize = 64 << 10

// CoordinatorConfig tunes the RefreshCoordinator.
type CoordinatorConfig struct {
	// SingleFlight makes concurrent 401s carrying the same refresh credential share one refresh.
	SingleFlight bool
	// RefreshTimeout bounds one refresh call. Zero means 30 seconds.
	RefreshTimeout time.Duration
}

// RefreshCoordinator decides what happens to each response: pass it through, replay the
// request once with a refreshed credential, or fail with the original 401.
type RefreshCoordinator struct {
	refresher Refresher
	store     AccessTokenStore
	metrics   metrics.BusinessMetrics
	logger    *slog.Logger
	cfg       CoordinatorConfig
	group     singleflight.Group
}

// NewRefreshCoordinator creates a RefreshCoordinator.
func NewRefreshCoordinator(
	refresher Refresher,
	store AccessTokenStore,
	businessMetrics metrics.BusinessMetrics,
	logger *slog.Logger,
	cfg CoordinatorConfig,
) *RefreshCoordinator {
	if cfg.RefreshTimeout <= 0 {
		cfg.RefreshTimeout = 30 * time.Second
	}
	if businessMetrics == nil {
		businessMetrics = metrics.NewNoOpBusinessMetrics()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RefreshCoordinator{
		refresher: refresher,
		store:     store,
		metrics:   businessMetrics,
		logger:    logger,
		cfg:       cfg,
	}
}

// ShouldRefresh reports whether resp triggers a refresh for req.
func ShouldRefresh(req authDomain.OutgoingRequest, statusCode int, session sessionDomain.Session) bool {
	return statusCode == http.StatusUnauthorized &&
		session.RefreshToken != "" &&
		!req.IsCredentialExempt &&
		!req.RetryMarker
}

// HandleResponse inspects resp for req. On Retry and Fail the response body has been
// consumed and closed; on Pass it is untouched.
func (c *RefreshCoordinator) HandleResponse(
	ctx context.Context,
	req authDomain.OutgoingRequest,
	resp *http.Response,
	session sessionDomain.Session,
) authDomain.Outcome {
	if !ShouldRefresh(req, resp.StatusCode, session) {
		return authDomain.Pass(resp)
	}

	original := drainStatusError(req, resp)

	accessToken, err := c.refresh(ctx, session.RefreshToken)
	if err != nil {
		c.logger.WarnContext(ctx, "credential refresh failed",
			slog.String("method", req.Method),
			slog.String("path", req.EndpointPath),
			slog.Any("error", err),
		)
		return authDomain.Fail(&authDomain.RefreshFailedError{Original: original, Cause: err})
	}

	c.logger.DebugContext(ctx, "replaying request with refreshed credential",
		slog.String("method", req.Method),
		slog.String("path", req.EndpointPath),
	)
	return authDomain.Retry(req.WithRetryMarker().WithBearer(accessToken))
}

// refresh runs one refresh for refreshToken, shared with concurrent callers when enabled.
// The refresh outlives a canceled caller so the other waiters still get its result.
func (c *RefreshCoordinator) refresh(ctx context.Context, refreshToken string) (string, error) {
	if !c.cfg.SingleFlight {
		return c.doRefresh(ctx, refreshToken)
	}

	ch := c.group.DoChan(refreshToken, func() (any, error) {
		refreshCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.cfg.RefreshTimeout)
		defer cancel()
		return c.doRefresh(refreshCtx, refreshToken)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case result := <-ch:
		if result.Err != nil {
			return "", result.Err
		}
		if result.Shared {
			c.logger.DebugContext(ctx, "joined in-flight credential refresh")
		}
		return result.Val.(string), nil
	}
}

func (c *RefreshCoordinator) doRefresh(ctx context.Context, refreshToken string) (string, error) {
	start := time.Now()
	accessToken, err := c.refresher.Refresh(ctx, refreshToken)
	metrics.Observe(ctx, c.metrics, "auth", "token_refresh", start, err)

	if err != nil {
		return "", err
	}

	updated, err := c.store.UpdateAccessToken(ctx, refreshToken, accessToken)
	switch {
	case err != nil:
		c.logger.ErrorContext(ctx, "failed to persist refreshed access token", slog.Any("error", err))
	case !updated:
		c.logger.InfoContext(ctx, "session changed during refresh, refreshed access token not persisted")
	}
	return accessToken, nil
}

// drainStatusError turns the 401 response into the error delivered if the refresh fails.
func drainStatusError(req authDomain.OutgoingRequest, resp *http.Response) *authDomain.StatusError {
	var body []byte
	if resp.Body != nil {
		body, _ = io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		_ = resp.Body.Close()
	}
	path := req.EndpointPath
	if resp.Request != nil && resp.Request.URL != nil {
		path = resp.Request.URL.Path
	}
	return authDomain.NewStatusError(req.Method, path, resp.StatusCode, body)
}
