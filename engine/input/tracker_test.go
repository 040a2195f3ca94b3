package input

import (
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-frames/common"
	"github.com/stretchr/testify/assert"
)

func TestTrackerEdgesReportedOnce(t *testing.T) {
	tr := NewTracker()
	tr.KeyDown(common.KeyC)
	tr.KeyDown(common.KeyC) // repeat

	s1 := tr.Snapshot()
	assert.True(t, s1.IsKeyDown(common.KeyC))
	assert.True(t, s1.IsKeyTriggered(common.KeyC))

	s2 := tr.Snapshot()
	assert.True(t, s2.IsKeyDown(common.KeyC))
	assert.False(t, s2.IsKeyTriggered(common.KeyC), "triggered only once per press")

	tr.KeyUp(common.KeyC)
	s3 := tr.Snapshot()
	assert.False(t, s3.IsKeyDown(common.KeyC))
	assert.True(t, s3.IsKeyReleased(common.KeyC))

	assert.True(t, s1.IsKeyDown(common.KeyC), "earlier snapshots are not mutated")
}

func TestTrackerTapBetweenSnapshots(t *testing.T) {
	tr := NewTracker()
	tr.KeyDown(common.KeyL)
	tr.KeyUp(common.KeyL)

	s := tr.Snapshot()
	assert.True(t, s.IsKeyTriggered(common.KeyL), "a quick tap is not lost")
	assert.False(t, s.IsKeyDown(common.KeyL))
}

func TestStateModifiers(t *testing.T) {
	s := NewState([]uint32{common.KeyRightShift, common.KeyLeftControl}, nil)
	assert.True(t, s.IsShiftDown())
	assert.True(t, s.IsCtrlDown())
	assert.False(t, s.IsAltDown())

	var zero State
	assert.False(t, zero.IsKeyDown(common.KeyW))
}

func TestTrackerConcurrentFeed(t *testing.T) {
	tr := NewTracker()
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(k uint32) {
			defer wg.Done()
			for range 100 {
				tr.KeyDown(k)
				tr.KeyUp(k)
			}
		}(uint32(common.Key0 + i))
	}
	for range 50 {
		tr.Snapshot()
	}
	wg.Wait()

	tr.Reset()
	assert.False(t, tr.Snapshot().IsKeyTriggered(common.Key0))
}
