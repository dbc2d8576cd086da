package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/storefront/internal/errors"
)

func TestSession_Validate(t *testing.T) {
	tests := []struct {
		name    string
		session *Session
		wantErr bool
	}{
		{"both present", &Session{AccessToken: "A1", RefreshToken: "R1"}, false},
		{"both absent", &Session{}, false},
		{"nil", nil, false},
		{"only access", &Session{AccessToken: "A1"}, true},
		{"only refresh", &Session{RefreshToken: "R1"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.session.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSession)
				assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSession_Clone(t *testing.T) {
	original := &Session{AccessToken: "A1", RefreshToken: "R1", User: json.RawMessage(`{"id":"u1"}`)}

	clone := original.Clone()
	clone.User[2] = 'X'
	clone.AccessToken = "A2"

	assert.Equal(t, "A1", original.AccessToken)
	assert.JSONEq(t, `{"id":"u1"}`, string(original.User))
	assert.True(t, (*Session)(nil).Clone().IsEmpty())
}

func TestEvents(t *testing.T) {
	s := &Session{AccessToken: "A1", RefreshToken: "R1"}

	login := LoginEvent(s)
	assert.Equal(t, EventLogin, login.Kind)
	assert.Same(t, s, login.Session)

	logout := LogoutEvent()
	assert.Equal(t, EventLogout, logout.Kind)
	assert.Nil(t, logout.Session)
}
