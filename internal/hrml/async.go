package hrml

import "context"

// Result carries the outcome of an asynchronous call.
type Result[T any] struct {
	Value T
	Err   error
}

// Go runs fn on its own goroutine and delivers exactly one Result on the
// returned channel. The channel is buffered, so a caller that stops waiting
// (navigated away, cancelled ctx) never blocks the worker and the late
// result is simply dropped with the channel.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) <-chan Result[T] {
	ch := make(chan Result[T], 1)
	go func() {
		v, err := fn(ctx)
		ch <- Result[T]{Value: v, Err: err}
		close(ch)
	}()
	return ch
}

// Await waits for a result from ch or for ctx to end, whichever comes first.
func Await[T any](ctx context.Context, ch <-chan Result[T]) (T, error) {
	select {
	case r := <-ch:
		return r.Value, r.Err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
