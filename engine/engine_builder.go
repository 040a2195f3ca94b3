package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-frames/engine/input"
	"github.com/Carmen-Shannon/oxy-frames/engine/logging"
	"github.com/Carmen-Shannon/oxy-frames/engine/profiler"
	"github.com/Carmen-Shannon/oxy-frames/engine/renderer"
	"github.com/Carmen-Shannon/oxy-frames/engine/scene"
	"github.com/Carmen-Shannon/oxy-frames/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithScene sets the scene the Update stage fills frame slots from. Required.
//
// Parameters:
//   - s: the Scene to run
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scene = s
	}
}

// WithFramesInFlight states the expected number of frame slots. The scene owns the
// slots, so a value that differs from the scene's is logged and the scene's count is used.
//
// Parameters:
//   - n: the expected slot count
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFramesInFlight(n int) EngineBuilderOption {
	return func(e *engine) {
		e.requestedFramesInFlight = n
	}
}

// WithRenderer sets the renderer the Render stage submits frame slots to.
//
// Parameters:
//   - r: the Renderer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithWindow attaches a window. Run then pumps its messages on the calling goroutine.
// Without a window the engine runs headless.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithInputTracker sets the tracker fed by window key callbacks and snapshotted by the Update stage.
//
// Parameters:
//   - t: the input Tracker
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithInputTracker(t input.Tracker) EngineBuilderOption {
	return func(e *engine) {
		e.tracker = t
	}
}

// WithProfiling enables or disables the render scope timing and periodic FPS output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler shares a profiler with the engine, typically the one given to the scene.
//
// Parameters:
//   - p: the Profiler
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithUpdateCallback registers a function called after each Scene.Update.
//
// Parameters:
//   - callback: the function to call
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithUpdateCallback(callback StageCallback) EngineBuilderOption {
	return func(e *engine) {
		e.updateCallback = callback
	}
}

// WithRenderCallback registers a function called after each RenderFrame.
//
// Parameters:
//   - callback: the function to call
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderCallback(callback StageCallback) EngineBuilderOption {
	return func(e *engine) {
		e.renderCallback = callback
	}
}

// WithExitHook registers a function run once after both stages have returned.
// Hooks run in registration order, before the renderer and scene are closed.
//
// Parameters:
//   - hook: the function to call
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithExitHook(hook func()) EngineBuilderOption {
	return func(e *engine) {
		if hook != nil {
			e.exitHooks = append(e.exitHooks, hook)
		}
	}
}

// WithLogger sets the engine logger.
//
// Parameters:
//   - logger: the logger (nil keeps the default)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger logging.Logger) EngineBuilderOption {
	return func(e *engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.renderFrameLimit = 0
			return
		}
		e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
	}
}
