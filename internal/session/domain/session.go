// Package domain defines the client session: the access/refresh credential pair and the
// opaque user profile blob persisted between runs.
package domain

import (
	"encoding/json"

	apperrors "github.com/allisson/storefront/internal/errors"
)

// Persisted key names. They are shared by every KV backend.
const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
	KeyUser         = "user"
)

// Keys lists every key owned by the session store.
func Keys() []string {
	return []string{KeyAccessToken, KeyRefreshToken, KeyUser}
}

// ErrInvalidSession indicates a session with exactly one of the two credentials.
var ErrInvalidSession = apperrors.Wrap(
	apperrors.ErrInvalidInput,
	"session must carry both access and refresh tokens or neither",
)

// Session holds the current credentials. An empty string means the credential is absent.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         json.RawMessage
}

// IsAuthenticated reports whether both credentials are present.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.AccessToken != "" && s.RefreshToken != ""
}

// IsEmpty reports whether both credentials are absent.
func (s *Session) IsEmpty() bool {
	return s == nil || (s.AccessToken == "" && s.RefreshToken == "")
}

// Validate enforces the both-or-neither invariant.
func (s *Session) Validate() error {
	if s.IsAuthenticated() || s.IsEmpty() {
		return nil
	}
	return ErrInvalidSession
}

// Clone returns a deep copy so callers cannot mutate stored state.
func (s *Session) Clone() *Session {
	if s == nil {
		return &Session{}
	}
	out := &Session{AccessToken: s.AccessToken, RefreshToken: s.RefreshToken}
	if len(s.User) > 0 {
		out.User = append(json.RawMessage(nil), s.User...)
	}
	return out
}
