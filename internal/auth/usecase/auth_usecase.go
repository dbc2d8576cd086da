package usecase

import (
	"context"
	"log/slog"

	authDomain "github.com/allisson/storefront/internal/auth/domain"
	apperrors "github.com/allisson/storefront/internal/errors"
	sessionDomain "github.com/allisson/storefront/internal/session/domain"
)

// Remote endpoints used by the auth flows.
const (
	LoginPath    = "/auth/login"
	RegisterPath = "/auth/register"
)

type authUseCase struct {
	client   APIClient
	sessions SessionEvents
	logger   *slog.Logger
}

// NewAuthUseCase creates an AuthUseCase.
func NewAuthUseCase(client APIClient, sessions SessionEvents, logger *slog.Logger) AuthUseCase {
	return &authUseCase{client: client, sessions: sessions, logger: logger}
}

// Login exchanges email and password for a credential pair and stores it as the current
// session. A rejected login leaves the previous session untouched.
func (a *authUseCase) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*sessionDomain.Session, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return a.authenticate(ctx, LoginPath, input)
}

// Register creates an account and starts a session with the credentials it returns.
func (a *authUseCase) Register(
	ctx context.Context,
	input *authDomain.RegisterInput,
) (*sessionDomain.Session, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return a.authenticate(ctx, RegisterPath, input)
}

// authenticate posts input to path and persists the answer through a login event.
func (a *authUseCase) authenticate(ctx context.Context, path string, input any) (*sessionDomain.Session, error) {
	var result authDomain.AuthResult
	if err := a.client.Post(ctx, path, input, &result); err != nil {
		return nil, err
	}
	// Both credentials are required; a half session is never stored
	if err := result.Validate(); err != nil {
		return nil, apperrors.Wrapf(err, "invalid response from %s", path)
	}

	session := result.Session()
	if err := a.sessions.Handle(ctx, sessionDomain.LoginEvent(session)); err != nil {
		return nil, err
	}

	a.logger.InfoContext(ctx, "session started", slog.String("endpoint", path))
	return session.Clone(), nil
}

// Logout forgets the current session locally. The remote API keeps no server-side session.
func (a *authUseCase) Logout(ctx context.Context) error {
	if err := a.sessions.Handle(ctx, sessionDomain.LogoutEvent()); err != nil {
		return err
	}
	a.logger.InfoContext(ctx, "session cleared")
	return nil
}

// Current returns the stored session, or ErrUnauthenticated when there is none.
func (a *authUseCase) Current(ctx context.Context) (*sessionDomain.Session, error) {
	session, err := a.sessions.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !session.IsAuthenticated() {
		return nil, authDomain.ErrUnauthenticated
	}
	return session, nil
}
