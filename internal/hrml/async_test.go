package hrml_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrml/recruiter-service/internal/hrml"
)

func TestGo_DeliversResult(t *testing.T) {
	ch := hrml.Go(context.Background(), func(context.Context) (int, error) { return 42, nil })
	v, err := hrml.Await(context.Background(), ch)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestGo_DeliversError(t *testing.T) {
	boom := errors.New("boom")
	ch := hrml.Go(context.Background(), func(context.Context) (string, error) { return "", boom })
	_, err := hrml.Await(context.Background(), ch)
	assert.ErrorIs(t, err, boom)
}

// The worker delivers into a buffer and closes the channel without waiting
// for a reader, so an abandoned result costs nothing.
func TestGo_ResultIsBuffered(t *testing.T) {
	ch := hrml.Go(context.Background(), func(context.Context) (int, error) { return 1, nil })
	assert.Equal(t, 1, cap(ch))

	// The channel closes only after the send completed.
	deadline := time.After(time.Second)
	for len(ch) == 0 {
		select {
		case <-deadline:
			t.Fatal("result was never buffered")
		case <-time.After(time.Millisecond):
		}
	}
	r, ok := <-ch
	require.True(t, ok)
	assert.Equal(t, 1, r.Value)
	_, ok = <-ch
	assert.False(t, ok, "channel is closed after the single result")
}

func TestAwait_ContextCancelled(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	ch := hrml.Go(context.Background(), func(context.Context) (int, error) {
		<-release
		return 1, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := hrml.Await(ctx, ch)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// Cancelling the context passed to Go reaches the worker.
func TestGo_PropagatesCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := hrml.Go(ctx, func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})
	cancel()
	_, err := hrml.Await(context.Background(), ch)
	assert.ErrorIs(t, err, context.Canceled)
}
