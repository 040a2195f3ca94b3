// Package input provides the per-iteration key query consumed by the Update stage
// and a thread-safe tracker that the window's key callbacks feed.
package input

import (
	"maps"

	"github.com/Carmen-Shannon/oxy-frames/common"
)

// Query is a read-only view of the keyboard for one Update iteration.
// The engine does not own device state; it only asks questions.
type Query interface {
	// IsKeyDown reports whether the key is currently held.
	//
	// Parameters:
	//   - key: the key code (see common.Key*)
	//
	// Returns:
	//   - bool: true while the key is held
	IsKeyDown(key uint32) bool

	// IsKeyTriggered reports whether the key was pressed since the previous snapshot.
	// Repeat events do not re-trigger.
	//
	// Parameters:
	//   - key: the key code
	//
	// Returns:
	//   - bool: true on the first iteration after the press
	IsKeyTriggered(key uint32) bool

	// IsKeyReleased reports whether the key was released since the previous snapshot.
	//
	// Parameters:
	//   - key: the key code
	//
	// Returns:
	//   - bool: true on the first iteration after the release
	IsKeyReleased(key uint32) bool

	// IsShiftDown reports whether either shift key is held.
	IsShiftDown() bool

	// IsCtrlDown reports whether either control key is held.
	IsCtrlDown() bool

	// IsAltDown reports whether either alt key is held.
	IsAltDown() bool
}

// State is an immutable snapshot of the keyboard. The zero State has no keys down.
type State struct {
	down      map[uint32]bool
	triggered map[uint32]bool
	released  map[uint32]bool
}

var _ Query = State{}

// NewState builds a snapshot directly. Intended for tests and scripted input.
//
// Parameters:
//   - down: keys currently held
//   - triggered: keys pressed since the previous snapshot
//
// Returns:
//   - State: the snapshot
func NewState(down []uint32, triggered []uint32) State {
	s := State{
		down:      make(map[uint32]bool, len(down)),
		triggered: make(map[uint32]bool, len(triggered)),
	}
	for _, k := range down {
		s.down[k] = true
	}
	for _, k := range triggered {
		s.triggered[k] = true
	}
	return s
}

func (s State) IsKeyDown(key uint32) bool {
	return s.down[key]
}

func (s State) IsKeyTriggered(key uint32) bool {
	return s.triggered[key]
}

func (s State) IsKeyReleased(key uint32) bool {
	return s.released[key]
}

func (s State) IsShiftDown() bool {
	return s.down[common.KeyLeftShift] || s.down[common.KeyRightShift]
}

func (s State) IsCtrlDown() bool {
	return s.down[common.KeyLeftControl] || s.down[common.KeyRightControl]
}

func (s State) IsAltDown() bool {
	return s.down[common.KeyLeftAlt] || s.down[common.KeyRightAlt]
}

// clone returns a deep copy so the snapshot does not alias tracker maps.
func (s State) clone() State {
	return State{
		down:      maps.Clone(s.down),
		triggered: maps.Clone(s.triggered),
		released:  maps.Clone(s.released),
	}
}
