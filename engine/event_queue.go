package engine

import "sync"

// EventQueue is a double-buffered multi-producer, single-consumer event queue.
// Producers append to the front buffer; the consumer swaps buffers and processes the
// back buffer without holding the lock, so producers never wait on event handling.
type EventQueue struct {
	mu    sync.Mutex
	front []Event
	back  []Event
}

// NewEventQueue creates an empty EventQueue.
func NewEventQueue() *EventQueue {
	return &EventQueue{
		front: make([]Event, 0, 16),
		back:  make([]Event, 0, 16),
	}
}

// Push appends an event. Safe to call from any goroutine.
//
// Parameters:
//   - e: the event to enqueue
func (q *EventQueue) Push(e Event) {
	q.mu.Lock()
	q.front = append(q.front, e)
	q.mu.Unlock()
}

// Len returns the number of events waiting in the front buffer.
func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.front)
}

// Drain swaps the buffers and calls fn for every event that should be acted upon.
// Events other than WindowResizeEvent are delivered in arrival order; only the last
// WindowResizeEvent of a batch is delivered, after all of them, so the surface is
// sized for whatever state the other events left behind. Drain must only be called
// by the queue's single consumer.
//
// Parameters:
//   - fn: called once per delivered event
//
// Returns:
//   - int: the number of events delivered
func (q *EventQueue) Drain(fn func(Event)) int {
	q.mu.Lock()
	q.front, q.back = q.back[:0], q.front
	q.mu.Unlock()

	n := 0
	var resize Event
	for _, e := range q.back {
		if e.Type() == EventTypeWindowResize {
			resize = e
			continue
		}
		fn(e)
		n++
	}
	if resize != nil {
		fn(resize)
		n++
	}

	clear(q.back)
	q.back = q.back[:0]
	return n
}
