package common

// Handle is a stable reference into an Arena. The zero Handle is never issued.
// A Handle carries a generation so that a released and reacquired slot does not
// resolve for holders of the old Handle.
type Handle struct {
	index      uint32
	generation uint32
}

// InvalidHandle is the zero Handle; it never resolves.
var InvalidHandle = Handle{}

// Index returns the slot index of the handle.
func (h Handle) Index() int {
	return int(h.index)
}

// Valid reports whether the handle was issued by an Arena (it may still be stale).
func (h Handle) Valid() bool {
	return h.generation != 0
}

type arenaSlot[T any] struct {
	value      T
	generation uint32
	alive      bool
}

// Arena stores values contiguously and hands out Handles instead of pointers.
// Released slots are recycled; growing the arena never invalidates live handles.
// Arena is not safe for concurrent mutation.
type Arena[T any] struct {
	slots []arenaSlot[T]
	free  []uint32
	live  int
}

// NewArena creates an Arena with capacity reserved for the given number of values.
//
// Parameters:
//   - capacity: the initial capacity hint
//
// Returns:
//   - *Arena[T]: the new arena
func NewArena[T any](capacity int) *Arena[T] {
	return &Arena[T]{
		slots: make([]arenaSlot[T], 0, capacity),
	}
}

// Acquire stores a value and returns its handle.
//
// Parameters:
//   - value: the value to store
//
// Returns:
//   - Handle: the handle that resolves to the stored value
func (a *Arena[T]) Acquire(value T) Handle {
	a.live++
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[idx]
		s.value = value
		s.generation++
		s.alive = true
		return Handle{index: idx, generation: s.generation}
	}
	a.slots = append(a.slots, arenaSlot[T]{value: value, generation: 1, alive: true})
	return Handle{index: uint32(len(a.slots) - 1), generation: 1}
}

// Release frees the slot referenced by h. Releasing a stale handle is a no-op.
//
// Parameters:
//   - h: the handle to release
//
// Returns:
//   - bool: true if a live value was released
func (a *Arena[T]) Release(h Handle) bool {
	s := a.slot(h)
	if s == nil {
		return false
	}
	var zero T
	s.value = zero
	s.alive = false
	a.free = append(a.free, h.index)
	a.live--
	return true
}

// Get resolves a handle to a pointer into the arena.
// The pointer is only valid until the next Acquire.
//
// Parameters:
//   - h: the handle to resolve
//
// Returns:
//   - *T: the stored value, or nil if the handle is stale
//   - bool: true if the handle resolved
func (a *Arena[T]) Get(h Handle) (*T, bool) {
	s := a.slot(h)
	if s == nil {
		return nil, false
	}
	return &s.value, true
}

// Len returns the number of live values.
func (a *Arena[T]) Len() int {
	return a.live
}

// Each calls fn for every live value in slot order.
func (a *Arena[T]) Each(fn func(h Handle, v *T)) {
	for i := range a.slots {
		s := &a.slots[i]
		if s.alive {
			fn(Handle{index: uint32(i), generation: s.generation}, &s.value)
		}
	}
}

func (a *Arena[T]) slot(h Handle) *arenaSlot[T] {
	if !h.Valid() || int(h.index) >= len(a.slots) {
		return nil
	}
	s := &a.slots[h.index]
	if !s.alive || s.generation != h.generation {
		return nil
	}
	return s
}
