package httpstate

import (
	"log/slog"
	"net/http"
)

const defaultMediaType = "application/json"

// Option configures a Tracker.
type Option func(*options)

type options struct {
	client           *http.Client
	logger           *slog.Logger
	contentType      string
	accept           string
	generationGuard  bool
	maxResponseBytes int64
	metrics          *Metrics
}

func defaultOptions() *options {
	return &options{
		// No Timeout: the tracker relies on the transport and the caller's context.
		client:      &http.Client{},
		contentType: defaultMediaType,
		accept:      defaultMediaType,
	}
}

// WithHTTPClient sets the client used for requests. Nil is ignored.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		if c != nil {
			o.client = c
		}
	}
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithContentType sets the Content-Type sent with request bodies.
// An empty value sends no Content-Type unless the Request sets one.
func WithContentType(ct string) Option {
	return func(o *options) { o.contentType = ct }
}

// WithAccept sets the Accept header. An empty value sends none.
func WithAccept(accept string) Option {
	return func(o *options) { o.accept = accept }
}

// WithGenerationGuard makes a call discard its commits once a newer call on
// the same Tracker has started.
func WithGenerationGuard(enabled bool) Option {
	return func(o *options) { o.generationGuard = enabled }
}

// WithMaxResponseBytes limits the size of a success body. Larger bodies end
// in the error phase. Zero or negative means no limit.
func WithMaxResponseBytes(n int64) Option {
	return func(o *options) { o.maxResponseBytes = n }
}

// WithMetrics records request counts, durations and in-flight calls.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}
