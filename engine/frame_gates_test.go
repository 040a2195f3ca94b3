package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameGatesCredits(t *testing.T) {
	g := newFrameGates(2)
	ctx := context.Background()

	assert.False(t, g.renderReady.TryAcquire(1), "render starts with no filled slots")

	require.NoError(t, g.waitUpdate(ctx))
	require.NoError(t, g.waitUpdate(ctx))
	assert.False(t, g.updateReady.TryAcquire(1), "update may run at most N slots ahead")

	g.signalRender()
	require.NoError(t, g.waitRender(ctx))
	g.signalUpdate()
	assert.True(t, g.updateReady.TryAcquire(1))
}

func TestFrameGatesWaitHonorsCancel(t *testing.T) {
	g := newFrameGates(1)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- g.waitRender(ctx) }()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("parked render wait did not return after cancel")
	}
}
