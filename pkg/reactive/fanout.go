package reactive

import (
	"context"
	"sync"
)

// Subscription receives committed values from a Ref over a channel.
// Implementations are safe for concurrent use.
type Subscription[T any] interface {
	// Receive returns the channel values are delivered on. The channel is
	// closed when the subscription ends: on Close, on context cancellation,
	// when the Ref is closed, or when the subscriber falls behind.
	Receive() <-chan T

	// Err reports why the subscription was closed before it was used,
	// currently only ErrClosed. It returns nil for live subscriptions.
	Err() error

	// Close ends the subscription. It is idempotent.
	Close() error
}

type subscription[T any] struct {
	ch     chan T
	done   chan struct{}
	err    error
	closed bool
	mu     sync.RWMutex

	// detach removes the subscription from its fanout. Nil once closed or
	// when the subscription was never registered.
	detach func()
}

func newSubscription[T any](bufferSize int) *subscription[T] {
	return &subscription[T]{
		ch:   make(chan T, bufferSize),
		done: make(chan struct{}),
	}
}

func (s *subscription[T]) Receive() <-chan T { return s.ch }

func (s *subscription[T]) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Close ends the subscription and removes it from the fanout.
func (s *subscription[T]) Close() error {
	s.mu.Lock()
	detach := s.detach
	s.detach = nil
	s.mu.Unlock()

	if detach != nil {
		detach()
	}
	s.close()
	return nil
}

// close shuts the channel without touching the fanout. The fanout calls it
// with its own lock held.
func (s *subscription[T]) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		close(s.ch)
		close(s.done)
		s.closed = true
		s.detach = nil
	}
}

// send delivers v without blocking. It reports false when the subscription is
// closed or its buffer is full.
func (s *subscription[T]) send(v T) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false
	}

	select {
	case s.ch <- v:
		return true
	default:
		return false
	}
}

// fanout delivers values to channel subscribers, dropping any that cannot keep up.
type fanout[T any] struct {
	subscribers map[*subscription[T]]struct{}
	bufferSize  int
	closed      bool
	done        chan struct{}
	mu          sync.RWMutex
	cleanupWg   sync.WaitGroup
}

func newFanout[T any](bufferSize int) *fanout[T] {
	return &fanout[T]{
		subscribers: make(map[*subscription[T]]struct{}),
		bufferSize:  max(bufferSize, 1),
		done:        make(chan struct{}),
	}
}

func (f *fanout[T]) subscribe(ctx context.Context) *subscription[T] {
	f.mu.Lock()
	defer f.mu.Unlock()

	sub := newSubscription[T](f.bufferSize)
	if f.closed {
		sub.err = ErrClosed
		sub.close()
		return sub
	}
	f.subscribers[sub] = struct{}{}
	sub.detach = func() { f.remove(sub) }

	if ctx.Done() != nil {
		f.cleanupWg.Add(1)
		go func() {
			defer f.cleanupWg.Done()
			select {
			case <-ctx.Done():
				f.unsubscribe(sub)
			case <-sub.done:
			case <-f.done:
			}
		}()
	}

	return sub
}

func (f *fanout[T]) publish(v T) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.closed {
		return
	}

	for sub := range f.subscribers {
		if !sub.send(v) {
			// Removal needs the write lock; do it off the publish path.
			go f.unsubscribe(sub)
		}
	}
}

func (f *fanout[T]) size() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subscribers)
}

func (f *fanout[T]) close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	for sub := range f.subscribers {
		sub.close()
	}
	clear(f.subscribers)
	close(f.done)
	f.mu.Unlock()

	f.cleanupWg.Wait()
}

func (f *fanout[T]) unsubscribe(sub *subscription[T]) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.subscribers, sub)
	sub.close()
}

func (f *fanout[T]) remove(sub *subscription[T]) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.subscribers, sub)
}
