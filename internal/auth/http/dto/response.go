package dto

import (
	"encoding/json"

	sessionDomain "github.com/allisson/storefront/internal/session/domain"
)

// SessionResponse describes the stored session. Credentials are never exposed.
type SessionResponse struct {
	Authenticated bool            `json:"authenticated"`
	User          json.RawMessage `json:"user,omitempty"`
}

// MapSessionToResponse converts a session to an API response.
func MapSessionToResponse(session *sessionDomain.Session) SessionResponse {
	if !session.IsAuthenticated() {
		return SessionResponse{}
	}
	return SessionResponse{
		Authenticated: true,
		User:          session.User,
	}
}
