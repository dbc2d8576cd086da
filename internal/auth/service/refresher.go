package service

import (
	"context"

	authDomain "github.com/allisson/storefront/internal/auth/domain"
	apperrors "github.com/allisson/storefront/internal/errors"
)

// RefreshPath is the credential refresh endpoint.
const RefreshPath = "/auth/refresh"

// Poster sends a JSON POST and decodes the (unwrapped) answer.
type Poster interface {
	Post(ctx context.Context, path string, in, out any) error
}

type httpRefresher struct {
	client Poster
}

// NewHTTPRefresher creates a Refresher calling POST /auth/refresh through client. client must
// not route through the refresh coordinator.
func NewHTTPRefresher(client Poster) Refresher {
	return &httpRefresher{client: client}
}

// Refresh reads the new access credential from data.accessToken or a top-level accessToken.
func (h *httpRefresher) Refresh(ctx context.Context, refreshToken string) (string, error) {
	var result authDomain.RefreshResult
	if err := h.client.Post(ctx, RefreshPath, authDomain.RefreshInput{RefreshToken: refreshToken}, &result); err != nil {
		return "", apperrors.Wrap(err, "refresh request failed")
	}
	if result.AccessToken == "" {
		return "", authDomain.ErrMissingAccessToken
	}
	return result.AccessToken, nil
}
