// Package usecase implements the session lifecycle operations of the client: login,
// registration, logout and reading the current session.
package usecase

import (
	"context"

	authDomain "github.com/allisson/storefront/internal/auth/domain"
	sessionDomain "github.com/allisson/storefront/internal/session/domain"
)

// APIClient sends JSON requests to the remote API.
type APIClient interface {
	Post(ctx context.Context, path string, in, out any) error
}

// SessionEvents is the session store seen from the auth flows: it consumes login and
// logout events and exposes the current session.
type SessionEvents interface {
	Handle(ctx context.Context, event sessionDomain.Event) error
	Get(ctx context.Context) (*sessionDomain.Session, error)
}

// AuthUseCase defines the session lifecycle operations.
type AuthUseCase interface {
	// Login exchanges credentials for a session and stores it.
	Login(ctx context.Context, input *authDomain.LoginInput) (*sessionDomain.Session, error)

	// Register creates an account, then stores the returned session.
	Register(ctx context.Context, input *authDomain.RegisterInput) (*sessionDomain.Session, error)

	// Logout forgets the stored session.
	Logout(ctx context.Context) error

	// Current returns the stored session or ErrUnauthenticated.
	Current(ctx context.Context) (*sessionDomain.Session, error)
}
