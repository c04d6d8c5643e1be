package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error records err under "error". A nil err yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups the non-nil errs under "errors", keyed by position.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Field records a form field name.
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

func Method(method string) slog.Attr {
	return slog.String("method", method)
}

func URL(u string) slog.Attr {
	return slog.String("url", u)
}

// Status records an HTTP status code.
func Status(code int) slog.Attr {
	return slog.Int("status", code)
}

// Phase records a request lifecycle phase (idle, loading, success, error).
func Phase(phase string) slog.Attr {
	return slog.String("phase", phase)
}

// StateID records the identifier of an observable state cell.
func StateID(id string) slog.Attr {
	return slog.String("state_id", id)
}

// CallID records the identifier of one tracked request execution.
func CallID(id string) slog.Attr {
	return slog.String("call_id", id)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
