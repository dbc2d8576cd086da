package service

import (
	authDomain "github.com/allisson/storefront/internal/auth/domain"
	sessionDomain "github.com/allisson/storefront/internal/session/domain"
)

// Authenticator attaches the access credential to outgoing requests.
type Authenticator struct{}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator() *Authenticator {
	return &Authenticator{}
}

// Prepare returns req with "Authorization: Bearer <access>" attached. Exempt requests and
// requests made without an access credential are returned unmodified.
func (a *Authenticator) Prepare(
	req authDomain.OutgoingRequest,
	session sessionDomain.Session,
) authDomain.OutgoingRequest {
	if req.IsCredentialExempt || session.AccessToken == "" {
		return req
	}
	return req.WithBearer(session.AccessToken)
}
