package validation

import "log/slog"

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for debug output of validation runs.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}
