// Package restclient is a small JSON client for the remote storefront API.
package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	authDomain "github.com/allisson/storefront/internal/auth/domain"
	apperrors "github.com/allisson/storefront/internal/errors"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 4 << 20

// Client sends JSON requests relative to a base URL.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// New creates a client for baseURL. httpClient carries the transport chain (auth, throttling).
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidInput, "invalid api base url %q", baseURL)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidInput, "api base url %q must be absolute", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: parsed, httpClient: httpClient}, nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Get sends a GET request and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

// Post sends a POST request with in as JSON body.
func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, in, out)
}

// Put sends a PUT request with in as JSON body.
func (c *Client) Put(ctx context.Context, path string, in, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, in, out)
}

// Do sends one request. A non-2xx answer becomes a *authDomain.StatusError. A 2xx body is
// decoded into out when out is not nil: types implementing json.Unmarshaler receive the whole
// body and read the "data" envelope themselves, anything else (json.RawMessage included)
// receives the body unwrapped from its optional envelope.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	endpoint := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %w", apperrors.ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return authDomain.NewStatusError(method, endpoint.Path, resp.StatusCode, respBody)
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	payload := Unwrap(respBody)
	if _, raw := out.(*json.RawMessage); !raw {
		if _, ok := out.(json.Unmarshaler); ok {
			payload = respBody
		}
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("failed to decode response from %s %s: %w", method, endpoint.Path, err)
	}
	return nil
}

// Unwrap returns the "data" member of an enveloped JSON object, or body itself.
func Unwrap(body []byte) []byte {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return body
	}
	data, ok := envelope["data"]
	if !ok || len(data) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return body
	}
	return data
}

// transportError strips the *url.Error layer so pipeline errors surface as themselves.
func transportError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}

	var statusErr *authDomain.StatusError
	switch {
	case errors.As(err, &statusErr),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%w: %w", apperrors.ErrUnavailable, err)
	}
}
