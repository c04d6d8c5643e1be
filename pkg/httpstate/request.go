package httpstate

import (
	"fmt"
	"net/http"
	"strings"
)

// Method is an HTTP method accepted by a Tracker.
type Method string

const (
	MethodGet    Method = http.MethodGet
	MethodPost   Method = http.MethodPost
	MethodPut    Method = http.MethodPut
	MethodDelete Method = http.MethodDelete
	MethodPatch  Method = http.MethodPatch
)

// Request describes one call. Method defaults to GET and Headers to none.
// A non-nil Body is JSON-encoded; a nil Body sends no body.
type Request struct {
	URL     string
	Method  Method
	Headers map[string]string
	Body    any
}

// method returns the normalized method or an error for unsupported ones.
func (r Request) method() (Method, error) {
	if r.Method == "" {
		return MethodGet, nil
	}
	m := Method(strings.ToUpper(string(r.Method)))
	switch m {
	case MethodGet, MethodPost, MethodPut, MethodDelete, MethodPatch:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMethod, string(r.Method))
}
