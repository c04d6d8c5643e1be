package reactive

// Option configures a Ref.
type Option[T any] func(*refConfig[T])

type refConfig[T any] struct {
	equal      func(a, b T) bool
	bufferSize int
}

func defaultRefConfig[T any]() *refConfig[T] {
	return &refConfig[T]{
		bufferSize: 16,
	}
}

// WithEqual suppresses notifications when the committed value equals the
// current one according to eq.
func WithEqual[T any](eq func(a, b T) bool) Option[T] {
	return func(c *refConfig[T]) {
		if eq != nil {
			c.equal = eq
		}
	}
}

// WithBufferSize sets the channel buffer of each subscription.
// Values below 1 are raised to 1.
func WithBufferSize[T any](n int) Option[T] {
	return func(c *refConfig[T]) {
		c.bufferSize = max(n, 1)
	}
}
