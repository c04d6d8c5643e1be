package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/reactkit/pkg/logger"
)

// Check is a named readiness probe.
type Check struct {
	Name string
	Fn   func(context.Context) error
}

type healthReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Health reports {"status":"ok"} with 200 when every check passes and
// {"status":"unavailable"} with 503 otherwise. Each check gets timeout.
func Health(log *slog.Logger, timeout time.Duration, checks ...Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report := healthReport{Status: "ok"}
		code := http.StatusOK

		for _, c := range checks {
			if report.Checks == nil {
				report.Checks = make(map[string]string, len(checks))
			}
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			err := c.Fn(ctx)
			cancel()
			if err != nil {
				if log != nil {
					log.WarnContext(r.Context(), "health check failed", slog.String("check", c.Name), logger.Error(err))
				}
				report.Checks[c.Name] = err.Error()
				report.Status = "unavailable"
				code = http.StatusServiceUnavailable
				continue
			}
			report.Checks[c.Name] = "ok"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(report)
	}
}
