package domain

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsExemptPath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/auth/login", true},
		{"/api/auth/register", true},
		{"/api/auth/refresh", true},
		{"/order/42", false},
		{"/order/status", false},
		{"/auth/me", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsExemptPath(tt.path))
		})
	}
}

func TestNewOutgoingRequest(t *testing.T) {
	header := http.Header{"Accept": []string{"application/json"}}
	body := []byte(`{"a":1}`)

	req := NewOutgoingRequest(http.MethodPost, "/api/auth/login", header, body)
	assert.True(t, req.IsCredentialExempt)
	assert.False(t, req.RetryMarker)

	header.Set("Accept", "text/plain")
	body[0] = 'x'
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Equal(t, `{"a":1}`, string(req.Body))

	assert.False(t, NewOutgoingRequest(http.MethodGet, "/order/1", nil, nil).IsCredentialExempt)
}

func TestOutgoingRequest_WithBearerIsImmutable(t *testing.T) {
	original := NewOutgoingRequest(http.MethodGet, "/order/42", nil, nil)

	withToken := original.WithBearer("A1")
	assert.Equal(t, "Bearer A1", withToken.Header.Get(HeaderAuthorization))
	assert.Equal(t, "A1", withToken.BearerToken())
	assert.Empty(t, original.Header.Get(HeaderAuthorization))

	replaced := withToken.WithBearer("A2")
	assert.Equal(t, "A2", replaced.BearerToken())
	assert.Equal(t, "A1", withToken.BearerToken())
}

func TestOutgoingRequest_WithRetryMarker(t *testing.T) {
	original := NewOutgoingRequest(http.MethodGet, "/order/42", nil, []byte("body"))

	marked := original.WithRetryMarker()
	assert.True(t, marked.RetryMarker)
	assert.False(t, original.RetryMarker)
	assert.Equal(t, original.Body, marked.Body)
}

func TestOutgoingRequest_BearerToken(t *testing.T) {
	req := NewOutgoingRequest(http.MethodGet, "/order", http.Header{HeaderAuthorization: []string{"Basic abc"}}, nil)
	assert.Empty(t, req.BearerToken())
}
