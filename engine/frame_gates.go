package engine

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// frameGates pairs the Update and Render stages over N frame slots.
// updateReady holds one credit per slot the Update stage may fill; renderReady holds one
// credit per slot filled and not yet rendered. Each stage releases the other's credit
// exactly once per iteration, which also publishes the slot's contents to the other stage.
type frameGates struct {
	updateReady *semaphore.Weighted
	renderReady *semaphore.Weighted
}

func newFrameGates(n int) *frameGates {
	g := &frameGates{
		updateReady: semaphore.NewWeighted(int64(n)),
		renderReady: semaphore.NewWeighted(int64(n)),
	}
	// Render starts with no filled slots.
	if !g.renderReady.TryAcquire(int64(n)) {
		panic("engine: fresh render gate could not be drained")
	}
	return g
}

// waitUpdate blocks until a slot is free for the Update stage or ctx is done.
func (g *frameGates) waitUpdate(ctx context.Context) error {
	return g.updateReady.Acquire(ctx, 1)
}

// signalRender hands one filled slot to the Render stage.
func (g *frameGates) signalRender() {
	g.renderReady.Release(1)
}

// waitRender blocks until a filled slot is available or ctx is done.
func (g *frameGates) waitRender(ctx context.Context) error {
	return g.renderReady.Acquire(ctx, 1)
}

// signalUpdate returns one rendered slot to the Update stage.
func (g *frameGates) signalUpdate() {
	g.updateReady.Release(1)
}
