package signals

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/reactkit/pkg/httpstate"
	"github.com/dmitrymomot/reactkit/pkg/reactive"
	"github.com/dmitrymomot/reactkit/pkg/validation"
)

// ErrNilGenerator is returned when no SSE generator is supplied.
var ErrNilGenerator = errors.New("signals: nil SSE generator")

// Patch marshals v and sends it as a signal patch.
func Patch(sse *datastar.ServerSentEventGenerator, v any) error {
	if sse == nil {
		return ErrNilGenerator
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("signals: marshal: %w", err)
	}
	return sse.PatchSignals(data)
}

// Stream sends the current value of v through encode and then every change,
// until ctx is done or the subscription ends. It returns nil in both cases and
// the first patch error otherwise.
func Stream[T any](ctx context.Context, sse *datastar.ServerSentEventGenerator, v reactive.Value[T], encode func(T) any) error {
	if sse == nil {
		return ErrNilGenerator
	}

	sub := v.Subscribe(ctx)
	defer func() { _ = sub.Close() }()

	if err := Patch(sse, encode(v.Get())); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case next, ok := <-sub.Receive():
			if !ok {
				return nil
			}
			if err := Patch(sse, encode(next)); err != nil {
				return err
			}
		}
	}
}

// Read decodes the signals sent with a datastar request into dst.
func Read(r *http.Request, dst any) error {
	if err := datastar.ReadSignals(r, dst); err != nil {
		return fmt.Errorf("signals: read: %w", err)
	}
	return nil
}

// FormSignals maps a form state to
// {"form": {"isValid": ..., "fields": {"<name>": {"isValid": ..., "errors": [...]}}}}.
func FormSignals(s validation.FormState) any {
	fields := make(map[string]any, len(s.Fields))
	for name, fs := range s.Fields {
		errs := fs.Errors
		if errs == nil {
			errs = []string{}
		}
		fields[name] = map[string]any{
			"isValid": fs.IsValid,
			"errors":  errs,
		}
	}
	return map[string]any{
		"form": map[string]any{
			"isValid": s.IsValid,
			"fields":  fields,
		},
	}
}

// RequestSignals maps a request state to {"request": {...}} with the phase
// added; absent values are sent as null.
func RequestSignals[T any](s httpstate.State[T]) any {
	return map[string]any{
		"request": map[string]any{
			"phase":     s.Phase().String(),
			"data":      s.Data,
			"status":    s.Status,
			"isLoading": s.IsLoading,
			"isSuccess": s.IsSuccess,
			"isError":   s.IsError,
			"error":     s.Error,
		},
	}
}
