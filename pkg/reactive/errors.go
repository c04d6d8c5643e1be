package reactive

import "errors"

// ErrClosed is reported by subscriptions created after the Ref was closed.
var ErrClosed = errors.New("reactive: ref is closed")
