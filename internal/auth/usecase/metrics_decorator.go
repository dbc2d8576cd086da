package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/storefront/internal/auth/domain"
	"github.com/allisson/storefront/internal/metrics"
	sessionDomain "github.com/allisson/storefront/internal/session/domain"
)

// authUseCaseWithMetrics decorates AuthUseCase with metrics instrumentation.
type authUseCaseWithMetrics struct {
	next    AuthUseCase
	metrics metrics.BusinessMetrics
}

// NewAuthUseCaseWithMetrics wraps an AuthUseCase with metrics recording.
func NewAuthUseCaseWithMetrics(useCase AuthUseCase, m metrics.BusinessMetrics) AuthUseCase {
	return &authUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (a *authUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, a.metrics, "auth", operation, start, err)
}

// Login records metrics for login operations.
func (a *authUseCaseWithMetrics) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*sessionDomain.Session, error) {
	start := time.Now()
	session, err := a.next.Login(ctx, input)
	a.record(ctx, "login", start, err)
	return session, err
}

// Register records metrics for registration operations.
func (a *authUseCaseWithMetrics) Register(
	ctx context.Context,
	input *authDomain.RegisterInput,
) (*sessionDomain.Session, error) {
	start := time.Now()
	session, err := a.next.Register(ctx, input)
	a.record(ctx, "register", start, err)
	return session, err
}

// Logout records metrics for logout operations.
func (a *authUseCaseWithMetrics) Logout(ctx context.Context) error {
	start := time.Now()
	err := a.next.Logout(ctx)
	a.record(ctx, "logout", start, err)
	return err
}

// Current is not instrumented; it is a local read.
func (a *authUseCaseWithMetrics) Current(ctx context.Context) (*sessionDomain.Session, error) {
	return a.next.Current(ctx)
}
