package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor pulls an attribute out of a context.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// contextHandler adds attributes from context extractors to each record. An
// extracted attribute is skipped when the record, or a WithAttrs call made
// before any group was opened, already carries its key.
type contextHandler struct {
	next       slog.Handler
	extractors []ContextExtractor
	keys       map[string]struct{}
	grouped    bool
}

// NewContextHandler wraps next. Nil extractors are dropped; with none left,
// next is returned as is.
func NewContextHandler(next slog.Handler, extractors ...ContextExtractor) slog.Handler {
	clean := make([]ContextExtractor, 0, len(extractors))
	for _, ex := range extractors {
		if ex != nil {
			clean = append(clean, ex)
		}
	}
	if len(clean) == 0 {
		return next
	}
	return &contextHandler{next: next, extractors: clean}
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	var present map[string]struct{}
	if !h.grouped {
		present = make(map[string]struct{}, len(h.keys)+rec.NumAttrs())
		for k := range h.keys {
			present[k] = struct{}{}
		}
		rec.Attrs(func(a slog.Attr) bool {
			present[a.Key] = struct{}{}
			return true
		})
	}

	for _, ex := range h.extractors {
		attr, ok := ex(ctx)
		if !ok {
			continue
		}
		if _, dup := present[attr.Key]; dup {
			continue
		}
		rec.AddAttrs(attr)
	}
	return h.next.Handle(ctx, rec)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.next = h.next.WithAttrs(attrs)
	if !h.grouped {
		clone.keys = make(map[string]struct{}, len(h.keys)+len(attrs))
		for k := range h.keys {
			clone.keys[k] = struct{}{}
		}
		for _, a := range attrs {
			clone.keys[a.Key] = struct{}{}
		}
	}
	return &clone
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.next = h.next.WithGroup(name)
	clone.grouped = true
	return &clone
}
