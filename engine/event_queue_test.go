package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func drainAll(q *EventQueue) []Event {
	var out []Event
	q.Drain(func(e Event) { out = append(out, e) })
	return out
}

func TestEventQueueCoalescesResizes(t *testing.T) {
	q := NewEventQueue()
	q.Push(WindowResizeEvent{Width: 100, Height: 100})
	q.Push(WindowResizeEvent{Width: 200, Height: 200})
	q.Push(ToggleFullscreenEvent{})
	q.Push(WindowResizeEvent{Width: 300, Height: 150})

	got := drainAll(q)
	assert.Equal(t, []Event{ToggleFullscreenEvent{}, WindowResizeEvent{Width: 300, Height: 150}}, got)
	assert.Empty(t, drainAll(q), "drained events are not delivered twice")
}

func TestEventQueueDeliversLastResizeAfterOtherEvents(t *testing.T) {
	q := NewEventQueue()
	q.Push(WindowResizeEvent{Width: 1, Height: 1})
	q.Push(WindowResizeEvent{Width: 2, Height: 2})
	q.Push(SetFullscreenEvent{Enabled: true})
	q.Push(ToggleFullscreenEvent{})
	q.Push(WindowCloseEvent{})

	got := drainAll(q)
	assert.Equal(t, []Event{
		SetFullscreenEvent{Enabled: true},
		ToggleFullscreenEvent{},
		WindowCloseEvent{},
		WindowResizeEvent{Width: 2, Height: 2},
	}, got)
}

func TestEventQueueResizeBeforeToggleIsAppliedLast(t *testing.T) {
	q := NewEventQueue()
	q.Push(WindowResizeEvent{Width: 1920, Height: 1080})
	q.Push(ToggleFullscreenEvent{})

	got := make([]Event, 0, 2)
	n := q.Drain(func(e Event) { got = append(got, e) })
	assert.Equal(t, 2, n)
	assert.Equal(t, []Event{ToggleFullscreenEvent{}, WindowResizeEvent{Width: 1920, Height: 1080}}, got)
}

func TestEventQueueTogglesAreNeverCoalesced(t *testing.T) {
	q := NewEventQueue()
	for i := 0; i < 3; i++ {
		q.Push(ToggleFullscreenEvent{})
	}
	assert.Equal(t, 3, q.Len())
	assert.Len(t, drainAll(q), 3)
	assert.Zero(t, q.Len())
}

func TestEventQueuePushDuringDrainGoesToNextBatch(t *testing.T) {
	q := NewEventQueue()
	q.Push(WindowCloseEvent{})

	n := q.Drain(func(Event) {
		q.Push(ToggleFullscreenEvent{})
	})
	assert.Equal(t, 1, n)
	assert.Equal(t, []Event{ToggleFullscreenEvent{}}, drainAll(q))
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "WindowResize", WindowResizeEvent{}.Type().String())
	assert.Equal(t, "ToggleFullscreen", ToggleFullscreenEvent{}.Type().String())
	assert.Equal(t, "SetFullscreen", SetFullscreenEvent{}.Type().String())
	assert.Equal(t, "WindowClose", WindowCloseEvent{}.Type().String())
	assert.Equal(t, "EventType(42)", EventType(42).String())
}
