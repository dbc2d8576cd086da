package restclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/storefront/internal/auth/domain"
	apperrors "github.com/allisson/storefront/internal/errors"
)

type item struct {
	ID string `json:"id"`
}

func TestNew(t *testing.T) {
	client, err := New("http://localhost:3000/api/", nil)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/api", client.BaseURL())

	_, err = New("/relative", nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = New("http://[::1", nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/order", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"data":[{"id":"ord-1"},{"id":"ord-2"}]}`))
	}))
	defer server.Close()

	client, err := New(server.URL+"/api", server.Client())
	require.NoError(t, err)

	var items []item
	err = client.Get(context.Background(), "/order", url.Values{"limit": []string{"10"}}, &items)
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: "ord-1"}, {ID: "ord-2"}}, items)
}

func TestClient_PutSendsJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"orderId":"ord-2","status":"COMPLETED"}`, string(body))
		_, _ = w.Write([]byte(`{"id":"ord-2"}`))
	}))
	defer server.Close()

	client, err := New(server.URL, server.Client())
	require.NoError(t, err)

	var out item
	in := map[string]string{"orderId": "ord-2", "status": "COMPLETED"}
	require.NoError(t, client.Put(context.Background(), "/order/status", in, &out))
	assert.Equal(t, "ord-2", out.ID)
}

func TestClient_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"order already shipped"}`))
	}))
	defer server.Close()

	client, err := New(server.URL, server.Client())
	require.NoError(t, err)

	err = client.Post(context.Background(), "/order/status", map[string]string{}, nil)

	var statusErr *authDomain.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusConflict, statusErr.StatusCode)
	assert.Equal(t, "order already shipped", statusErr.Message)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestClient_EmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client, err := New(server.URL, server.Client())
	require.NoError(t, err)

	var out item
	assert.NoError(t, client.Post(context.Background(), "/auth/logout", nil, &out))
}

func TestClient_DecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client, err := New(server.URL, server.Client())
	require.NoError(t, err)

	var out item
	err = client.Get(context.Background(), "/order/1", nil, &out)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	client, err := New(addr, nil)
	require.NoError(t, err)

	err = client.Get(context.Background(), "/order/1", nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrUnavailable)
}

type failingTransport struct {
	err error
}

func (f failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, f.err
}

func TestClient_TransportErrorsSurfaceUnwrapped(t *testing.T) {
	original := authDomain.NewStatusError(http.MethodGet, "/order/1", http.StatusUnauthorized, nil)
	refreshErr := &authDomain.RefreshFailedError{Original: original, Cause: assert.AnError}

	client, err := New("http://api.test", &http.Client{Transport: failingTransport{err: refreshErr}})
	require.NoError(t, err)

	err = client.Get(context.Background(), "/order/1", nil, nil)
	assert.Same(t, refreshErr, err)
	assert.ErrorIs(t, err, authDomain.ErrRefreshFailed)
}

func TestUnwrap(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"envelope", `{"data":{"accessToken":"A2"}}`, `{"accessToken":"A2"}`},
		{"top level", `{"accessToken":"A2"}`, `{"accessToken":"A2"}`},
		{"null data", `{"data":null,"accessToken":"A2"}`, `{"data":null,"accessToken":"A2"}`},
		{"array", `[1,2]`, `[1,2]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Unwrap([]byte(tt.body))
			assert.True(t, json.Valid(got))
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

// fullBody records the exact bytes it was decoded from.
type fullBody struct {
	raw string
}

func (f *fullBody) UnmarshalJSON(b []byte) error {
	f.raw = string(b)
	return nil
}

func TestClient_DecodeTargets(t *testing.T) {
	const body = `{"accessToken":"A2","data":{"user":{"id":"u1"}}}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	client, err := New(server.URL, server.Client())
	require.NoError(t, err)
	ctx := context.Background()

	var custom fullBody
	require.NoError(t, client.Post(ctx, "/auth/refresh", nil, &custom))
	assert.JSONEq(t, body, custom.raw)

	var raw json.RawMessage
	require.NoError(t, client.Post(ctx, "/auth/refresh", nil, &raw))
	assert.JSONEq(t, `{"user":{"id":"u1"}}`, string(raw))

	var refreshed authDomain.RefreshResult
	require.NoError(t, client.Post(ctx, "/auth/refresh", nil, &refreshed))
	assert.Equal(t, "A2", refreshed.AccessToken)
}
