// Package domain defines the authenticated request pipeline: outgoing request values, the
// outcomes of response handling and the errors surfaced to callers.
package domain

import (
	"net/http"
	"strings"
)

// HeaderAuthorization is the header carrying the bearer credential.
const HeaderAuthorization = "Authorization"

const bearerPrefix = "Bearer "

// exemptPathFragments identifies endpoints that must never carry or refresh a credential.
var exemptPathFragments = []string{"/auth/login", "/auth/register", "/auth/refresh"}

// IsExemptPath reports whether path belongs to a credential-exempt endpoint.
func IsExemptPath(path string) bool {
	for _, fragment := range exemptPathFragments {
		if strings.Contains(path, fragment) {
			return true
		}
	}
	return false
}

// OutgoingRequest is an immutable description of a request about to be sent.
// The With* methods return modified copies and never touch the receiver.
type OutgoingRequest struct {
	Method             string
	EndpointPath       string
	Header             http.Header
	Body               []byte
	IsCredentialExempt bool
	RetryMarker        bool
}

// NewOutgoingRequest builds a request, deriving IsCredentialExempt from the endpoint path.
func NewOutgoingRequest(method, endpointPath string, header http.Header, body []byte) OutgoingRequest {
	return OutgoingRequest{
		Method:             method,
		EndpointPath:       endpointPath,
		Header:             cloneHeader(header),
		Body:               cloneBody(body),
		IsCredentialExempt: IsExemptPath(endpointPath),
	}
}

// WithBearer returns a copy carrying "Authorization: Bearer <token>".
func (r OutgoingRequest) WithBearer(token string) OutgoingRequest {
	out := r.clone()
	out.Header.Set(HeaderAuthorization, bearerPrefix+token)
	return out
}

// WithRetryMarker returns a copy flagged as an already-refreshed replay.
func (r OutgoingRequest) WithRetryMarker() OutgoingRequest {
	out := r.clone()
	out.RetryMarker = true
	return out
}

// BearerToken returns the credential currently attached, or "".
func (r OutgoingRequest) BearerToken() string {
	value := r.Header.Get(HeaderAuthorization)
	if !strings.HasPrefix(value, bearerPrefix) {
		return ""
	}
	return strings.TrimPrefix(value, bearerPrefix)
}

func (r OutgoingRequest) clone() OutgoingRequest {
	out := r
	out.Header = cloneHeader(r.Header)
	out.Body = cloneBody(r.Body)
	return out
}

func cloneHeader(h http.Header) http.Header {
	if h == nil {
		return http.Header{}
	}
	return h.Clone()
}

func cloneBody(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
