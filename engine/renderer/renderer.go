package renderer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-frames/engine/logging"
	"github.com/Carmen-Shannon/oxy-frames/engine/scene"
	"github.com/Carmen-Shannon/oxy-frames/engine/window"
)

// FrameStatus is the outcome of submitting one frame slot to the GPU.
type FrameStatus int

const (
	// FrameStatusOK means the frame was submitted and presented.
	FrameStatusOK FrameStatus = iota

	// FrameStatusOccluded means no surface image was available, usually because the
	// window is minimized, zero-sized or covered by another fullscreen surface.
	FrameStatusOccluded

	// FrameStatusDeviceLost means command recording or submission failed.
	FrameStatusDeviceLost
)

func (s FrameStatus) String() string {
	switch s {
	case FrameStatusOK:
		return "ok"
	case FrameStatusOccluded:
		return "occluded"
	case FrameStatusDeviceLost:
		return "device lost"
	default:
		return fmt.Sprintf("FrameStatus(%d)", int(s))
	}
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend
	logger      logging.Logger

	width, height int
	lastStatus    FrameStatus
	closed        bool

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
}

// Renderer consumes prepared frame slots and hands them to the GPU.
//
// RenderFrame is called from the Render stage only, after the Update stage has released
// the slot. It never blocks on the Update stage and never terminates the frame loop:
// degraded conditions are reported through FrameStatus.
type Renderer interface {
	// RenderFrame submits one prepared frame slot and presents it.
	//
	// Parameters:
	//   - ctx: cancelled when the engine is shutting down
	//   - frame: the frame slot prepared by the Update stage
	//
	// Returns:
	//   - FrameStatus: the outcome of the submission
	RenderFrame(ctx context.Context, frame *scene.FrameData) FrameStatus

	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// Close releases every GPU resource. Further RenderFrame calls are no-ops.
	Close()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer for the given window using the selected backend.
// Options are applied before the backend requests a GPU adapter.
//
// Parameters:
//   - backendType: the GPU backend to use
//   - window: the window whose surface is rendered to
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the configured renderer
//   - error: an error if no adapter or device could be acquired
func NewRenderer(backendType RendererBackendType, window window.Window, options ...RendererBuilderOption) (Renderer, error) {
	if window == nil {
		panic("renderer: NewRenderer requires a non-nil Window")
	}

	r := newRenderer(backendType, options...)

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		backend, err := newWGPURendererBackend(window.SurfaceDescriptor(), r.forceFallbackAdapter)
		if err != nil {
			return nil, fmt.Errorf("failed to create wgpu backend: %w", err)
		}
		r.backend = backend
	}

	r.configure(window.Width(), window.Height())
	return r, nil
}

func newRenderer(backendType RendererBackendType, options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		logger:      logging.NewDefaultLogger("renderer"),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// configure applies the pending present mode and the initial surface size.
func (r *renderer) configure(width, height int) {
	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	r.width, r.height = width, height
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) RenderFrame(ctx context.Context, frame *scene.FrameData) FrameStatus {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || ctx.Err() != nil {
		return FrameStatusOK
	}
	if r.width <= 0 || r.height <= 0 {
		return r.report(FrameStatusOccluded, nil)
	}

	color := ClearColor{A: 1}
	if frame != nil && frame.View != nil {
		ambient := frame.View.Scene.AmbientColor
		color.R, color.G, color.B = float64(ambient.X()), float64(ambient.Y()), float64(ambient.Z())
	}

	if err := r.backend.BeginFrame(color); err != nil {
		return r.report(statusFor(err), err)
	}
	if err := r.backend.EndFrame(); err != nil {
		return r.report(statusFor(err), err)
	}
	r.backend.Present()
	return r.report(FrameStatusOK, nil)
}

// report logs status transitions and remembers the last status.
func (r *renderer) report(status FrameStatus, err error) FrameStatus {
	if status != r.lastStatus {
		if err != nil {
			r.logger.Debugf("frame status %s -> %s: %v", r.lastStatus, status, err)
		} else {
			r.logger.Debugf("frame status %s -> %s", r.lastStatus, status)
		}
	}
	r.lastStatus = status
	return status
}

func statusFor(err error) FrameStatus {
	if errors.Is(err, errSurfaceUnavailable) {
		return FrameStatusOccluded
	}
	return FrameStatusDeviceLost
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.width, r.height = width, height
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true
	r.backend.Release()
}
