package httpstate

import (
	"context"
	"time"
)

// Pending is the eventual outcome of an ExecuteAsync call.
type Pending[T any] struct {
	done  chan struct{}
	state State[T]
}

// ExecuteAsync starts Execute on its own goroutine and returns immediately.
// The Pending resolves to the terminal state produced by this call, even if a
// newer call has since overwritten the tracker state.
func (t *Tracker[T]) ExecuteAsync(ctx context.Context, req Request) *Pending[T] {
	p := &Pending[T]{done: make(chan struct{})}

	go func() {
		defer close(p.done)
		p.state = t.run(ctx, req)
	}()

	return p
}

// Await blocks until the call has finished.
func (p *Pending[T]) Await() State[T] {
	<-p.done
	return p.state
}

// AwaitTimeout is like Await but gives up after d with ErrTimeout. The call
// itself keeps running.
func (p *Pending[T]) AwaitTimeout(d time.Duration) (State[T], error) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-p.done:
		return p.state, nil
	case <-timer.C:
		return State[T]{}, ErrTimeout
	}
}

// Done is closed when the call has finished.
func (p *Pending[T]) Done() <-chan struct{} {
	return p.done
}

func (p *Pending[T]) IsComplete() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}
