package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// upstreamTransport records calls made to the remote storefront API.
type upstreamTransport struct {
	base           http.RoundTripper
	requestCounter metric.Int64Counter
	durationHisto  metric.Float64Histogram
}

// NewUpstreamTransport wraps base so every outgoing request is counted and timed with
// method, path and status_code labels. Transport failures use status_code "error".
// When the instruments cannot be created, base is returned unchanged.
func NewUpstreamTransport(
	base http.RoundTripper,
	meterProvider metric.MeterProvider,
	namespace string,
) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	meter := meterProvider.Meter(namespace)

	requestCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_upstream_requests_total", namespace),
		metric.WithDescription("Total number of requests sent to the storefront API"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return base
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_upstream_request_duration_seconds", namespace),
		metric.WithDescription("Storefront API request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return base
	}

	return &upstreamTransport{
		base:           base,
		requestCounter: requestCounter,
		durationHisto:  durationHisto,
	}
}

func (t *upstreamTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base.RoundTrip(req)

	statusCode := "error"
	if err == nil {
		statusCode = strconv.Itoa(resp.StatusCode)
	}

	attrs := metric.WithAttributes(
		attribute.String("method", req.Method),
		attribute.String("path", sanitizeUpstreamPath(req.URL.Path)),
		attribute.String("status_code", statusCode),
	)
	t.requestCounter.Add(req.Context(), 1, attrs)
	t.durationHisto.Record(req.Context(), time.Since(start).Seconds(), attrs)

	return resp, err
}

// sanitizeUpstreamPath replaces identifier-like segments (any segment holding a digit)
// with ":id" to keep label cardinality bounded.
func sanitizeUpstreamPath(path string) string {
	if path == "" {
		return "/"
	}
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		if strings.IndexFunc(segment, unicode.IsDigit) >= 0 {
			segments[i] = ":id"
		}
	}
	return strings.Join(segments, "/")
}
