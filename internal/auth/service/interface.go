// Package service implements the request pipeline: credential attachment, credential refresh
// and the decision taken on each response.
package service

import (
	"context"
)

// Refresher exchanges a refresh credential for a new access credential.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// AccessTokenStore is the part of the session store the coordinator writes through.
type AccessTokenStore interface {
	UpdateAccessToken(ctx context.Context, refreshToken, accessToken string) (bool, error)
}
