package playground

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/reactkit/pkg/httpserver"
	"github.com/dmitrymomot/reactkit/pkg/httpstate"
	"github.com/dmitrymomot/reactkit/pkg/logger"
	"github.com/dmitrymomot/reactkit/pkg/signals"
)

// Handlers serves the playground endpoints.
type Handlers struct {
	log          *slog.Logger
	hosts        []string
	gatherer     prometheus.Gatherer
	trackerOpts  []httpstate.Option
	fetchTimeout time.Duration
}

// NewHandlers registers tracker metrics on reg and returns the handlers.
func NewHandlers(cfg Config, log *slog.Logger, reg *prometheus.Registry) (*Handlers, error) {
	metrics := httpstate.NewMetrics("playground")
	if err := metrics.Register(reg); err != nil {
		return nil, err
	}

	hosts := make([]string, 0, len(cfg.FetchHosts))
	for _, host := range cfg.FetchHosts {
		if host = strings.ToLower(strings.TrimSpace(host)); host != "" {
			hosts = append(hosts, host)
		}
	}

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return ErrTooManyRedirects
			}
			return checkTarget(req.URL, hosts)
		},
	}

	opts := append(cfg.Tracker.Options(),
		httpstate.WithHTTPClient(client),
		httpstate.WithLogger(log),
		httpstate.WithMetrics(metrics),
	)
	return &Handlers{
		log:          log.With(logger.Component("playground")),
		hosts:        hosts,
		gatherer:     reg,
		trackerOpts:  opts,
		fetchTimeout: cfg.FetchTimeout,
	}, nil
}

// Router mounts every endpoint on a chi router.
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(h.log))

	r.Get("/healthz", httpserver.Health(h.log, time.Second))
	r.Handle("/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))

	r.Post("/signup/validate", h.validateSignup)
	r.Post("/signup/validate/{field}", h.validateSignupField)
	r.Get("/fetch", h.fetch)

	return r
}

func (h *Handlers) validateSignup(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{}
	if err := signals.Read(r, &data); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	engine := NewSignupEngine(h.log)
	engine.ValidateForm(data)

	sse := datastar.NewSSE(w, r)
	if err := signals.Patch(sse, signals.FormSignals(engine.Snapshot())); err != nil {
		h.log.ErrorContext(r.Context(), "patch form signals", logger.Error(err))
	}
}

func (h *Handlers) validateSignupField(w http.ResponseWriter, r *http.Request) {
	field := chi.URLParam(r, "field")
	engine := NewSignupEngine(h.log)
	if !slices.Contains(engine.Fields(), field) {
		http.Error(w, "unknown field", http.StatusNotFound)
		return
	}

	data := map[string]any{}
	if err := signals.Read(r, &data); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	engine.ValidateField(field, data[field])

	fs, _ := engine.Snapshot().Field(field)
	sse := datastar.NewSSE(w, r)
	patch := map[string]any{
		"form": map[string]any{
			"fields": map[string]any{
				field: map[string]any{"isValid": fs.IsValid, "errors": nonNil(fs.Errors)},
			},
		},
	}
	if err := signals.Patch(sse, patch); err != nil {
		h.log.ErrorContext(r.Context(), "patch field signals", logger.Error(err))
	}
}

// fetch streams the request state of a GET to ?url= until the call ends.
func (h *Handlers) fetch(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("url")
	if raw == "" {
		http.Error(w, "url is required", http.StatusBadRequest)
		return
	}
	target, err := url.Parse(raw)
	if err != nil {
		http.Error(w, "invalid url", http.StatusBadRequest)
		return
	}
	if err := checkTarget(target, h.hosts); err != nil {
		status := http.StatusForbidden
		if errors.Is(err, ErrUnsupportedScheme) {
			status = http.StatusBadRequest
		}
		h.log.WarnContext(r.Context(), "fetch refused", logger.URL(raw), logger.Error(err))
		http.Error(w, err.Error(), status)
		return
	}

	ctx := r.Context()
	if h.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.fetchTimeout)
		defer cancel()
	}

	tracker := httpstate.New[json.RawMessage](h.trackerOpts...)
	defer tracker.Close()

	pending := tracker.ExecuteAsync(ctx, httpstate.Request{URL: target.String()})
	go func() {
		<-pending.Done()
		_ = tracker.Close()
	}()

	sse := datastar.NewSSE(w, r)
	if err := signals.Stream(r.Context(), sse, tracker.State(), signals.RequestSignals[json.RawMessage]); err != nil {
		h.log.ErrorContext(r.Context(), "stream request signals", logger.Error(err))
	}
	pending.Await()
}

// checkTarget accepts http and https URLs whose host is in hosts.
func checkTarget(u *url.URL, hosts []string) error {
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
	if !slices.Contains(hosts, strings.ToLower(u.Hostname())) {
		return fmt.Errorf("%w: %q", ErrHostNotAllowed, u.Hostname())
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
