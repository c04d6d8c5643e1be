package reactive

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// Value is a read-only view of an observable cell.
type Value[T any] interface {
	// Get returns the most recently committed value.
	Get() T

	// Watch registers fn to run synchronously after every commit and returns
	// a function that removes it. fn is not called with the current value.
	Watch(fn func(T)) (stop func())

	// Subscribe returns a channel subscription that lives until ctx is done,
	// the subscription is closed, or the cell is closed.
	Subscribe(ctx context.Context) Subscription[T]
}

// Ref is a mutable observable cell. The zero value is not usable; use NewRef.
type Ref[T any] struct {
	id    string
	equal func(a, b T) bool

	// writeMu serializes Set and Update. It is released before observers run.
	writeMu sync.Mutex

	mu       sync.RWMutex
	value    T
	watchers []watcher[T]
	nextSeq  uint64
	closed   bool

	// pending holds committed values not yet delivered to observers, in
	// commit order. Only the goroutine that set draining delivers them.
	pending  []T
	draining bool

	fanout *fanout[T]
}

type watcher[T any] struct {
	seq uint64
	fn  func(T)
}

// NewRef creates a Ref holding initial.
func NewRef[T any](initial T, opts ...Option[T]) *Ref[T] {
	cfg := defaultRefConfig[T]()
	for _, opt := range opts {
		opt(cfg)
	}

	return &Ref[T]{
		id:     uuid.NewString(),
		equal:  cfg.equal,
		value:  initial,
		fanout: newFanout[T](cfg.bufferSize),
	}
}

// ID returns the identifier assigned at creation.
func (r *Ref[T]) ID() string { return r.id }

func (r *Ref[T]) Get() T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.value
}

// Set commits v and notifies observers.
func (r *Ref[T]) Set(v T) {
	r.UpdateIf(func(T) (T, bool) { return v, true })
}

// Update commits the result of fn applied to the current value. Concurrent
// Updates do not lose writes.
func (r *Ref[T]) Update(fn func(T) T) {
	r.UpdateIf(func(cur T) (T, bool) { return fn(cur), true })
}

// UpdateIf is like Update but commits nothing when fn returns false. fn runs
// while other writers are excluded and must not write to r itself. It reports
// whether a value was committed.
func (r *Ref[T]) UpdateIf(fn func(T) (T, bool)) bool {
	r.writeMu.Lock()
	next, ok := fn(r.Get())
	if !ok {
		r.writeMu.Unlock()
		return false
	}
	deliver := r.commit(next)
	r.writeMu.Unlock()

	if deliver {
		r.drain()
	}
	return true
}

// commit stores v and queues it for delivery. It reports whether the caller
// became responsible for draining the queue.
func (r *Ref[T]) commit(v T) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.equal != nil && r.equal(r.value, v) {
		return false
	}
	r.value = v
	if r.closed {
		return false
	}
	r.pending = append(r.pending, v)
	if r.draining {
		return false
	}
	r.draining = true
	return true
}

// drain delivers queued values until the queue is empty. Observers run
// without any lock held, so they may write to r; such writes are queued and
// delivered after the current value has reached every observer.
func (r *Ref[T]) drain() {
	for {
		r.mu.Lock()
		if len(r.pending) == 0 || r.closed {
			r.pending = nil
			r.draining = false
			r.mu.Unlock()
			return
		}
		v := r.pending[0]
		var zero T
		r.pending[0] = zero
		r.pending = r.pending[1:]
		watchers := slices.Clone(r.watchers)
		r.mu.Unlock()

		for _, w := range watchers {
			w.fn(v)
		}
		r.fanout.publish(v)
	}
}

func (r *Ref[T]) Watch(fn func(T)) (stop func()) {
	if fn == nil {
		return func() {}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return func() {}
	}

	r.nextSeq++
	seq := r.nextSeq
	r.watchers = append(r.watchers, watcher[T]{seq: seq, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { r.unwatch(seq) })
	}
}

func (r *Ref[T]) unwatch(seq uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, w := range r.watchers {
		if w.seq == seq {
			r.watchers = append(r.watchers[:i], r.watchers[i+1:]...)
			return
		}
	}
}

func (r *Ref[T]) Subscribe(ctx context.Context) Subscription[T] {
	if ctx == nil {
		ctx = context.Background()
	}
	return r.fanout.subscribe(ctx)
}

// Watchers reports the number of registered watchers.
func (r *Ref[T]) Watchers() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.watchers)
}

// Subscribers reports the number of live channel subscriptions.
func (r *Ref[T]) Subscribers() int {
	return r.fanout.size()
}

// Close drops all watchers and closes every subscription. Later commits still
// update the value but notify nobody. Close is idempotent.
func (r *Ref[T]) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.watchers = nil
	r.pending = nil
	r.mu.Unlock()

	r.fanout.close()
	return nil
}

// ReadOnly hides the mutating methods of r.
func ReadOnly[T any](r *Ref[T]) Value[T] {
	return readOnly[T]{ref: r}
}

type readOnly[T any] struct {
	ref *Ref[T]
}

func (v readOnly[T]) Get() T                                        { return v.ref.Get() }
func (v readOnly[T]) Watch(fn func(T)) func()                       { return v.ref.Watch(fn) }
func (v readOnly[T]) Subscribe(ctx context.Context) Subscription[T] { return v.ref.Subscribe(ctx) }
