package renderer

import (
	"context"
	"sync"

	"github.com/Carmen-Shannon/oxy-frames/engine/scene"
)

// RecordedFrame is what a RecordingRenderer captured for one RenderFrame call.
type RecordedFrame struct {
	Slot   int
	Frame  uint64
	Stats  scene.FrameStats
	Status FrameStatus

	MeshCommandCount int
	ShadowViewCount  int
}

// Size is a recorded surface size.
type Size struct {
	Width, Height int
}

// RecordingRenderer is a Renderer that never touches a GPU. It records every frame
// it is handed, replays scripted statuses, and is used for headless runs and tests.
// All methods are safe for concurrent use.
type RecordingRenderer struct {
	mu sync.Mutex

	frames   []RecordedFrame
	scripted []FrameStatus
	resizes  []Size
	closed   bool

	onFrame func(RecordedFrame)
}

var _ Renderer = &RecordingRenderer{}

// RecordingRendererOption configures a RecordingRenderer.
type RecordingRendererOption func(*RecordingRenderer)

// WithFrameHook registers a function called synchronously from RenderFrame with each recorded frame.
func WithFrameHook(hook func(RecordedFrame)) RecordingRendererOption {
	return func(r *RecordingRenderer) {
		r.onFrame = hook
	}
}

// WithScriptedStatuses queues statuses returned by the next RenderFrame calls, in order.
// Once exhausted, RenderFrame returns FrameStatusOK.
func WithScriptedStatuses(statuses ...FrameStatus) RecordingRendererOption {
	return func(r *RecordingRenderer) {
		r.scripted = append(r.scripted, statuses...)
	}
}

// NewRecordingRenderer creates a RecordingRenderer.
func NewRecordingRenderer(options ...RecordingRendererOption) *RecordingRenderer {
	r := &RecordingRenderer{}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *RecordingRenderer) RenderFrame(_ context.Context, frame *scene.FrameData) FrameStatus {
	r.mu.Lock()
	status := FrameStatusOK
	if len(r.scripted) > 0 {
		status = r.scripted[0]
		r.scripted = r.scripted[1:]
	}

	rec := RecordedFrame{Status: status}
	if frame != nil {
		rec.Slot = frame.Slot
		rec.Frame = frame.Frame
		if frame.View != nil {
			rec.Stats = frame.View.Stats
			rec.MeshCommandCount = len(frame.View.MeshRenderCommands)
		}
		if frame.Shadows != nil {
			rec.ShadowViewCount = frame.Shadows.ViewCount()
		}
	}
	r.frames = append(r.frames, rec)
	hook := r.onFrame
	r.mu.Unlock()

	if hook != nil {
		hook(rec)
	}
	return status
}

func (r *RecordingRenderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resizes = append(r.resizes, Size{Width: width, Height: height})
}

func (r *RecordingRenderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
}

// Frames returns a copy of every recorded frame in submission order.
func (r *RecordingRenderer) Frames() []RecordedFrame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RecordedFrame(nil), r.frames...)
}

// FrameCount returns the number of RenderFrame calls so far.
func (r *RecordingRenderer) FrameCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

// Resizes returns a copy of every Resize call in order.
func (r *RecordingRenderer) Resizes() []Size {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Size(nil), r.resizes...)
}

// Closed reports whether Close has been called.
func (r *RecordingRenderer) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}
