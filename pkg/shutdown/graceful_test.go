package shutdown_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmorate/pkg/shutdown"
)

var errHook = errors.New("hook failed")

func TestRun(t *testing.T) {
	t.Run("all hooks are executed", func(t *testing.T) {
		var calls atomic.Int32
		hook := func(context.Context) error {
			calls.Add(1)
			return nil
		}

		err := shutdown.Run(context.Background(), time.Second, hook, hook, hook)
		require.NoError(t, err)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("hook errors are joined", func(t *testing.T) {
		err := shutdown.Run(context.Background(), time.Second,
			func(context.Context) error { return errHook },
			func(context.Context) error { return nil },
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, errHook)
	})

	t.Run("slow hook hits timeout", func(t *testing.T) {
		err := shutdown.Run(context.Background(), 20*time.Millisecond,
			func(ctx context.Context) error {
				<-ctx.Done()
				time.Sleep(50 * time.Millisecond)
				return nil
			},
		)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestWaitReturnsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var called atomic.Bool
	hookErr := errors.New("close failed")
	done := make(chan error, 1)
	go func() {
		done <- shutdown.Wait(ctx, time.Second, func(context.Context) error {
			called.Store(true)
			return hookErr
		})
	}()

	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, hookErr)
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after context cancellation")
	}
	assert.True(t, called.Load())
}
