package session

import "context"

// future is a value that settles exactly once.
type future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func newFuture[T any]() *future[T] {
	return &future[T]{done: make(chan struct{})}
}

// resolve settles the future. It must be called once.
func (f *future[T]) resolve(val T, err error) {
	f.val, f.err = val, err
	close(f.done)
}

// wait blocks until the future settles or ctx is done.
func (f *future[T]) wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// peek returns the settled value without blocking; ok is false while pending.
func (f *future[T]) peek() (val T, ok bool, err error) {
	select {
	case <-f.done:
		return f.val, true, f.err
	default:
		var zero T
		return zero, false, nil
	}
}
