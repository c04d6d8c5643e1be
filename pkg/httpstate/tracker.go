package httpstate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/reactkit/pkg/logger"
	"github.com/dmitrymomot/reactkit/pkg/reactive"
)

// Tracker runs requests and tracks the state of the latest one.
// The zero value is not usable; use New.
type Tracker[T any] struct {
	opts  *options
	state *reactive.Ref[State[T]]

	generation atomic.Uint64
}

// New creates an idle Tracker decoding success bodies into T.
func New[T any](opts ...Option) *Tracker[T] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Tracker[T]{
		opts:  o,
		state: reactive.NewRef(State[T]{}),
	}
}

// State returns a read-only observable view of the request state.
func (t *Tracker[T]) State() reactive.Value[State[T]] {
	return reactive.ReadOnly(t.state)
}

// Snapshot returns the current state.
func (t *Tracker[T]) Snapshot() State[T] {
	return t.state.Get()
}

// Data returns the decoded body of the last successful request.
func (t *Tracker[T]) Data() (T, bool) {
	s := t.state.Get()
	if s.Data == nil {
		var zero T
		return zero, false
	}
	return *s.Data, true
}

// Status returns the recorded HTTP status.
func (t *Tracker[T]) Status() (int, bool) {
	s := t.state.Get()
	if s.Status == nil {
		return 0, false
	}
	return *s.Status, true
}

func (t *Tracker[T]) IsLoading() bool { return t.state.Get().IsLoading }
func (t *Tracker[T]) IsSuccess() bool { return t.state.Get().IsSuccess }
func (t *Tracker[T]) IsError() bool   { return t.state.Get().IsError }

// Error returns the failure message of the last request.
func (t *Tracker[T]) Error() (string, bool) {
	s := t.state.Get()
	if s.Error == nil {
		return "", false
	}
	return *s.Error, true
}

// Close ends all subscriptions to the tracker state.
func (t *Tracker[T]) Close() error {
	return t.state.Close()
}

// Execute performs req and blocks until it has finished. It does not return
// an error: every outcome is recorded in the tracker state.
func (t *Tracker[T]) Execute(ctx context.Context, req Request) {
	t.run(ctx, req)
}

// run performs one call and returns the terminal state it produced, whether
// or not that state was committed.
func (t *Tracker[T]) run(ctx context.Context, req Request) State[T] {
	if ctx == nil {
		ctx = context.Background()
	}

	gen := t.generation.Add(1)
	start := time.Now()

	method := string(req.Method)
	if m, err := req.method(); err == nil {
		method = string(m)
	}
	log := t.opts.logger.With(
		logger.Component("httpstate"),
		logger.StateID(t.state.ID()),
		logger.CallID(uuid.NewString()),
		logger.Method(method),
		logger.URL(req.URL),
	)

	current := loadingState[T]()
	t.commit(gen, current)
	t.opts.metrics.started()
	log.DebugContext(ctx, "request started")

	data, status, fail := t.do(ctx, req, func(code int) {
		current = current.withStatus(code)
		t.commit(gen, current)
	})

	if fail != nil {
		current = current.failed(fail.message)
		log.WarnContext(ctx, "request failed",
			logger.Error(fail.err),
			logger.Duration(time.Since(start)),
		)
	} else {
		current = current.succeeded(data)
		log.DebugContext(ctx, "request succeeded",
			logger.Status(status),
			logger.Duration(time.Since(start)),
		)
	}

	if !t.commit(gen, current) {
		log.DebugContext(ctx, "discarded result of superseded request", logger.Phase(current.Phase().String()))
	}
	t.opts.metrics.finished(method, current.Phase(), time.Since(start))

	return current
}

// commit stores s unless the generation guard is on and a newer call started.
// Observers run after the check, outside any tracker lock, so they may start
// a new call.
func (t *Tracker[T]) commit(gen uint64, s State[T]) bool {
	return t.state.UpdateIf(func(State[T]) (State[T], bool) {
		if t.opts.generationGuard && gen != t.generation.Load() {
			return State[T]{}, false
		}
		return s, true
	})
}

// do sends the request and decodes a success body. onStatus is called once
// the status code is known.
func (t *Tracker[T]) do(ctx context.Context, req Request, onStatus func(int)) (T, int, *failure) {
	var zero T

	method, err := req.method()
	if err != nil {
		return zero, 0, newFailure(nil, err)
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return zero, 0, newFailure(ErrEncodeBody, err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, string(method), req.URL, body)
	if err != nil {
		return zero, 0, newFailure(ErrBuildRequest, err)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if body != nil && t.opts.contentType != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", t.opts.contentType)
	}
	if t.opts.accept != "" && httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", t.opts.accept)
	}

	resp, err := t.opts.client.Do(httpReq)
	if err != nil {
		return zero, 0, newFailure(ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	onStatus(resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a bounded amount so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
		return zero, resp.StatusCode, newFailure(nil, &StatusError{Code: resp.StatusCode})
	}

	raw, err := t.readBody(resp.Body)
	if err != nil {
		return zero, resp.StatusCode, newFailure(ErrDecodeBody, err)
	}

	var data T
	if err := json.Unmarshal(raw, &data); err != nil {
		return zero, resp.StatusCode, newFailure(ErrDecodeBody, err)
	}
	return data, resp.StatusCode, nil
}

func (t *Tracker[T]) readBody(r io.Reader) ([]byte, error) {
	limit := t.opts.maxResponseBytes
	if limit <= 0 {
		return io.ReadAll(r)
	}

	raw, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(raw)) > limit {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrResponseTooLarge, limit)
	}
	return raw, nil
}
