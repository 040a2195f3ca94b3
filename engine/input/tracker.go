package input

import (
	"sync"
)

// Tracker accumulates key events from the window thread and hands the Update
// stage one consistent snapshot per iteration.
type Tracker interface {
	// KeyDown records a press (or repeat) of key.
	//
	// Parameters:
	//   - key: the key code
	KeyDown(key uint32)

	// KeyUp records a release of key.
	//
	// Parameters:
	//   - key: the key code
	KeyUp(key uint32)

	// Snapshot returns the current state and clears the triggered/released edges,
	// so each press is reported to exactly one snapshot.
	//
	// Returns:
	//   - State: the immutable snapshot
	Snapshot() State

	// Reset releases every key, for example when the window loses focus.
	Reset()
}

type tracker struct {
	mu    sync.Mutex
	state State
}

var _ Tracker = &tracker{}

// NewTracker creates an empty Tracker.
//
// Returns:
//   - Tracker: the new tracker
func NewTracker() Tracker {
	return &tracker{state: NewState(nil, nil)}
}

func (t *tracker) KeyDown(key uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.state.down[key] {
		t.state.triggered[key] = true
	}
	t.state.down[key] = true
}

func (t *tracker) KeyUp(key uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.released == nil {
		t.state.released = make(map[uint32]bool)
	}
	delete(t.state.down, key)
	t.state.released[key] = true
}

func (t *tracker) Snapshot() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	snap := t.state.clone()
	clear(t.state.triggered)
	clear(t.state.released)
	return snap
}

func (t *tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = NewState(nil, nil)
}
