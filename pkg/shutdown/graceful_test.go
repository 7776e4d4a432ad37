package shutdown_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gonotepad/pkg/shutdown"
)

func TestWaitRunsHooksOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	hook1Called := make(chan struct{})
	hook2Called := make(chan struct{})

	waitDone := make(chan struct{})
	go func() {
		defer close(waitDone)
		shutdown.Wait(ctx, time.Second,
			func(context.Context) error {
				close(hook1Called)
				return nil
			},
			func(context.Context) error {
				close(hook2Called)
				return errors.New("close failed")
			},
		)
	}()

	cancel()

	for i, ch := range []chan struct{}{hook1Called, hook2Called, waitDone} {
		select {
		case <-ch:
		case <-time.After(2 * time.Second):
			t.Fatalf("step %d did not complete", i)
		}
	}
}

func TestRunRespectsTimeout(t *testing.T) {
	var finished atomic.Bool

	start := time.Now()
	shutdown.Run(context.Background(), 50*time.Millisecond, func(ctx context.Context) error {
		select {
		case <-time.After(time.Second):
			finished.Store(true)
		case <-ctx.Done():
		}
		return nil
	})

	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.False(t, finished.Load())
}
