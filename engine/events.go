package engine

import "fmt"

// EventType discriminates the Event variants.
type EventType int

const (
	EventTypeWindowResize EventType = iota
	EventTypeToggleFullscreen
	EventTypeSetFullscreen
	EventTypeWindowClose
)

func (t EventType) String() string {
	switch t {
	case EventTypeWindowResize:
		return "WindowResize"
	case EventTypeToggleFullscreen:
		return "ToggleFullscreen"
	case EventTypeSetFullscreen:
		return "SetFullscreen"
	case EventTypeWindowClose:
		return "WindowClose"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// Event is a window event handed from the window thread to the Update and Render stages.
// The set of implementations is closed.
type Event interface {
	Type() EventType
}

// WindowResizeEvent reports a new framebuffer size in pixels.
type WindowResizeEvent struct {
	Width, Height int
}

// ToggleFullscreenEvent flips the window between windowed and fullscreen.
type ToggleFullscreenEvent struct{}

// SetFullscreenEvent forces the window into or out of fullscreen.
type SetFullscreenEvent struct {
	Enabled bool
}

// WindowCloseEvent asks the engine to shut down.
type WindowCloseEvent struct{}

var (
	_ Event = WindowResizeEvent{}
	_ Event = ToggleFullscreenEvent{}
	_ Event = SetFullscreenEvent{}
	_ Event = WindowCloseEvent{}
)

func (WindowResizeEvent) Type() EventType     { return EventTypeWindowResize }
func (ToggleFullscreenEvent) Type() EventType { return EventTypeToggleFullscreen }
func (SetFullscreenEvent) Type() EventType    { return EventTypeSetFullscreen }
func (WindowCloseEvent) Type() EventType      { return EventTypeWindowClose }
