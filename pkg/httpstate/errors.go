package httpstate

import (
	"errors"
	"fmt"
)

// Sentinels used to classify failures in logs. The message stored in State is
// the underlying cause without the prefix.
var (
	ErrInvalidMethod    = errors.New("httpstate: invalid HTTP method")
	ErrEncodeBody       = errors.New("httpstate: failed to encode request body")
	ErrBuildRequest     = errors.New("httpstate: failed to build request")
	ErrTransport        = errors.New("httpstate: transport failure")
	ErrDecodeBody       = errors.New("httpstate: failed to decode response body")
	ErrResponseTooLarge = errors.New("httpstate: response body too large")

	// ErrTimeout is returned by Pending.AwaitTimeout.
	ErrTimeout = errors.New("httpstate: timed out waiting for request")
)

// UnknownErrorMessage is stored when a failure carries no message.
const UnknownErrorMessage = "Unknown error"

// StatusError reports a response with a non-2xx status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error! Status: %d", e.Code)
}

// failure pairs the message shown to observers with the classified error
// used for logging.
type failure struct {
	message string
	err     error
}

func newFailure(kind, cause error) *failure {
	msg := cause.Error()
	if msg == "" {
		msg = UnknownErrorMessage
	}
	if kind == nil {
		return &failure{message: msg, err: cause}
	}
	return &failure{message: msg, err: fmt.Errorf("%w: %w", kind, cause)}
}
