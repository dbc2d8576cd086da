// Package transport wires the request pipeline into net/http as a RoundTripper.
package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	authDomain "github.com/allisson/storefront/internal/auth/domain"
	"github.com/allisson/storefront/internal/metrics"
	sessionDomain "github.com/allisson/storefront/internal/session/domain"
)

var errReplayedTwice = errors.New("request was already replayed once")

// HeaderRequestID correlates a request and its replay in logs.
const HeaderRequestID = "X-Request-Id"

// SessionReader loads the current session.
type SessionReader interface {
	Get(ctx context.Context) (*sessionDomain.Session, error)
}

// Preparer attaches credentials to an outgoing request.
type Preparer interface {
	Prepare(req authDomain.OutgoingRequest, session sessionDomain.Session) authDomain.OutgoingRequest
}

// ResponseHandler decides what happens to a response.
type ResponseHandler interface {
	HandleResponse(
		ctx context.Context,
		req authDomain.OutgoingRequest,
		resp *http.Response,
		session sessionDomain.Session,
	) authDomain.Outcome
}

// Config holds optional transport settings.
type Config struct {
	// Base sends the prepared requests. Nil means http.DefaultTransport.
	Base http.RoundTripper
	// Limiter throttles every outgoing request, replays included. Nil disables throttling.
	Limiter *rate.Limiter
	// Metrics records replays and failures. Nil disables recording.
	Metrics metrics.BusinessMetrics
}

// Transport runs attach -> send -> (maybe) refresh -> replay once for each request.
type Transport struct {
	base     http.RoundTripper
	sessions SessionReader
	preparer Preparer
	handler  ResponseHandler
	limiter  *rate.Limiter
	metrics  metrics.BusinessMetrics
	logger   *slog.Logger
}

// New creates a Transport.
func New(
	sessions SessionReader,
	preparer Preparer,
	handler ResponseHandler,
	logger *slog.Logger,
	cfg Config,
) *Transport {
	base := cfg.Base
	if base == nil {
		base = http.DefaultTransport
	}
	businessMetrics := cfg.Metrics
	if businessMetrics == nil {
		businessMetrics = metrics.NewNoOpBusinessMetrics()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Transport{
		base:     base,
		sessions: sessions,
		preparer: preparer,
		handler:  handler,
		limiter:  cfg.Limiter,
		metrics:  businessMetrics,
		logger:   logger,
	}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(r *http.Request) (*http.Response, error) {
	ctx := r.Context()

	body, err := readBody(r)
	if err != nil {
		return nil, err
	}

	// Exempt endpoints never carry a credential, so an unreadable session must not block
	// the login that replaces it.
	session := &sessionDomain.Session{}
	if !authDomain.IsExemptPath(r.URL.Path) {
		session, err = t.sessions.Get(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load session: %w", err)
		}
	}

	header := r.Header.Clone()
	if header == nil {
		header = http.Header{}
	}
	if header.Get(HeaderRequestID) == "" {
		header.Set(HeaderRequestID, uuid.NewString())
	}

	req := t.preparer.Prepare(authDomain.NewOutgoingRequest(r.Method, r.URL.Path, header, body), *session)

	for replayed := false; ; replayed = true {
		resp, err := t.send(r, req)
		if err != nil {
			return nil, err
		}

		outcome := t.handler.HandleResponse(ctx, req, resp, *session)
		switch outcome.Kind {
		case authDomain.OutcomeRetry:
			if replayed {
				return nil, errReplayedTwice
			}
			t.metrics.RecordOperation(ctx, "api", "replay", metrics.StatusSuccess)
			t.logger.DebugContext(ctx, "replaying request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Bool("bearer_attached", outcome.Request.BearerToken() != ""),
				slog.String("request_id", req.Header.Get(HeaderRequestID)),
			)
			req = outcome.Request
		case authDomain.OutcomeFail:
			t.metrics.RecordOperation(ctx, "api", "replay", metrics.OperationStatus(outcome.Err))
			return nil, outcome.Err
		default:
			return outcome.Response, nil
		}
	}
}

// send issues req using r as the template for everything the pipeline does not own.
func (t *Transport) send(r *http.Request, req authDomain.OutgoingRequest) (*http.Response, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(r.Context()); err != nil {
			return nil, err
		}
	}

	out := r.Clone(r.Context())
	out.Header = req.Header.Clone()
	if req.Body != nil {
		out.Body = io.NopCloser(bytes.NewReader(req.Body))
		out.ContentLength = int64(len(req.Body))
		payload := req.Body
		out.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(payload)), nil
		}
	} else {
		out.Body = nil
		out.ContentLength = 0
		out.GetBody = nil
	}

	return t.base.RoundTrip(out)
}

func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}
	defer func() { _ = r.Body.Close() }()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to buffer request body: %w", err)
	}
	return body, nil
}
