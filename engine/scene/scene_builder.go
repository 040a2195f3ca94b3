package scene

import (
	"github.com/Carmen-Shannon/oxy-frames/engine/logging"
	"github.com/Carmen-Shannon/oxy-frames/engine/profiler"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithCullWorkers sets the number of workers used by multi-threaded culling.
// Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of cull workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCullWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		s.computeWorkers = max(n, 1)
	}
}

// WithMultiThreadedCulling selects the multi-threaded culling path (the default).
// Both paths produce identical results. Work is split per work item, so only the
// shadow passes, which hold one item per shadow view, reach the worker pool; the
// single-item main view passes always run on the Update goroutine.
//
// Parameters:
//   - enabled: false to cull on the Update goroutine
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithMultiThreadedCulling(enabled bool) SceneBuilderOption {
	return func(s *scene) {
		s.multiThreadedCulling = enabled
	}
}

// WithLightViewCulling drops shadow-casting spot and point lights whose range does
// not reach the main view before their shadow views are assembled. Off by default.
//
// Parameters:
//   - enabled: true to pre-cull lights against the main view
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLightViewCulling(enabled bool) SceneBuilderOption {
	return func(s *scene) {
		s.lightViewCulling = enabled
	}
}

// WithFramesInFlight sets the number of frame slots (1 to MaxFramesInFlight).
// Out-of-range values are clamped with a warning.
//
// Parameters:
//   - n: the slot count
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithFramesInFlight(n int) SceneBuilderOption {
	return func(s *scene) {
		s.framesInFlight = n
	}
}

// WithShadowHalfExtent overrides the half-size of every directional shadow box.
//
// Parameters:
//   - halfExtent: half-size in world units (0 keeps each light's own value)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithShadowHalfExtent(halfExtent float32) SceneBuilderOption {
	return func(s *scene) {
		s.shadowHalfExtent = max(halfExtent, 0)
	}
}

// WithLogger sets the logger used by the scene and its culling contexts.
func WithLogger(l logging.Logger) SceneBuilderOption {
	return func(s *scene) {
		s.logger = l
	}
}

// WithProfiler records the update, bbh and cull scopes and the frame counters.
func WithProfiler(p *profiler.Profiler) SceneBuilderOption {
	return func(s *scene) {
		s.prof = p
	}
}

// WithUpdateCallback registers a function run once per Update.
//
// Parameters:
//   - fn: the callback
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithUpdateCallback(fn UpdateCallback) SceneBuilderOption {
	return func(s *scene) {
		s.updateCallback = fn
	}
}
