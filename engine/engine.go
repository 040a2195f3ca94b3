package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-frames/engine/input"
	"github.com/Carmen-Shannon/oxy-frames/engine/logging"
	"github.com/Carmen-Shannon/oxy-frames/engine/profiler"
	"github.com/Carmen-Shannon/oxy-frames/engine/renderer"
	"github.com/Carmen-Shannon/oxy-frames/engine/scene"
	"github.com/Carmen-Shannon/oxy-frames/engine/window"
	"golang.org/x/sync/errgroup"
)

// StageCallback is called once per Update or Render iteration with the slot the stage
// just worked on and the seconds elapsed since the stage's previous iteration.
type StageCallback func(slot int, dt float32)

// engine implements the Engine interface.
// Coordinates the Update and Render stages and the window message pump.
type engine struct {
	logger logging.Logger

	framesInFlight          int
	requestedFramesInFlight int

	scene    scene.Scene
	renderer renderer.Renderer
	window   window.Window
	tracker  input.Tracker

	profiler         *profiler.Profiler
	profilingEnabled bool

	updateCallback StageCallback
	renderCallback StageCallback
	exitHooks      []func()

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	updateEvents *EventQueue
	renderEvents *EventQueue
	gates        *frameGates

	// counters are owned by their stage; atomics only for observers
	updateCount atomic.Uint64
	renderCount atomic.Uint64

	running  atomic.Bool
	shutdown atomic.Bool
	quit     atomic.Bool

	cancelMu sync.Mutex
	cancel   context.CancelFunc

	lastStatus renderer.FrameStatus
}

// Engine is the main entry point for the engine.
// It runs the Update stage, which fills frame slots from the scene, and the Render
// stage, which submits them, on two goroutines paired by semaphores over N slots.
type Engine interface {
	// Run starts both stages and, when a window is attached, runs its message pump on
	// the calling goroutine, which must be the main OS thread. It returns after both
	// stages have observed shutdown and every exit hook has run.
	//
	// Parameters:
	//   - ctx: cancelling ctx shuts the engine down
	//
	// Returns:
	//   - error: a stage failure, ctx's error if ctx ended the run, or nil after Quit or window close
	Run(ctx context.Context) error

	// Quit signals both stages to stop and wakes any stage parked on a gate.
	// Safe to call multiple times and from any goroutine.
	Quit()

	// PushEvent routes an event the way window callbacks do: resize and close go to both
	// stages, fullscreen events to the Render stage only. Safe to call from any goroutine.
	//
	// Parameters:
	//   - e: the event
	PushEvent(e Event)

	// Window returns the attached window, or nil for a headless engine.
	Window() window.Window

	// Scene returns the scene the Update stage fills slots from.
	Scene() scene.Scene

	// Renderer returns the renderer the Render stage submits slots to.
	Renderer() renderer.Renderer

	// InputTracker returns the tracker fed by window key callbacks.
	InputTracker() input.Tracker

	// FramesInFlight returns the number of frame slots N.
	FramesInFlight() int

	// FrameCounts returns how many Update and Render iterations have completed.
	//
	// Returns:
	//   - updates: completed Update iterations
	//   - renders: completed Render iterations
	FrameCounts() (updates, renders uint64)
}

var _ Engine = &engine{}

// NewEngine creates a new Engine with the provided options.
// A scene is required (WithScene) and NewEngine panics without one. When a window is
// attached and no renderer is given, a WebGPU renderer is created for the window; a
// headless engine without a renderer records frames with renderer.NewRecordingRenderer.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
//   - error: an error if the default renderer could not be created
func NewEngine(options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		logger:       logging.NewDefaultLogger("engine"),
		updateEvents: NewEventQueue(),
		renderEvents: NewEventQueue(),
	}

	for _, opt := range options {
		opt(e)
	}

	if e.scene == nil {
		panic("engine: NewEngine requires a non-nil Scene")
	}

	e.framesInFlight = e.scene.FramesInFlight()
	if e.requestedFramesInFlight != 0 && e.requestedFramesInFlight != e.framesInFlight {
		e.logger.Warnf("frames in flight %d does not match scene %q (%d); using %d",
			e.requestedFramesInFlight, e.scene.Name(), e.framesInFlight, e.framesInFlight)
	}
	e.gates = newFrameGates(e.framesInFlight)

	if e.tracker == nil {
		e.tracker = input.NewTracker()
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))
	}

	if e.renderer == nil {
		if e.window != nil {
			r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, e.window, renderer.WithLogger(e.logger))
			if err != nil {
				return nil, fmt.Errorf("failed to create renderer: %w", err)
			}
			e.renderer = r
		} else {
			e.renderer = renderer.NewRecordingRenderer()
		}
	}

	if e.window != nil {
		e.installWindowCallbacks()
	}

	return e, nil
}

// installWindowCallbacks routes window events into the stage queues and key
// transitions into the input tracker.
func (e *engine) installWindowCallbacks() {
	e.window.SetResizeCallback(func(width, height int) {
		e.PushEvent(WindowResizeEvent{Width: width, Height: height})
	})
	e.window.SetFullscreenToggleCallback(func() {
		e.PushEvent(ToggleFullscreenEvent{})
	})
	e.window.SetCloseCallback(func() {
		e.PushEvent(WindowCloseEvent{})
	})
	e.window.SetKeyDownCallback(e.tracker.KeyDown)
	e.window.SetKeyUpCallback(e.tracker.KeyUp)
}

func (e *engine) Window() window.Window         { return e.window }
func (e *engine) Scene() scene.Scene            { return e.scene }
func (e *engine) Renderer() renderer.Renderer   { return e.renderer }
func (e *engine) InputTracker() input.Tracker   { return e.tracker }
func (e *engine) FramesInFlight() int           { return e.framesInFlight }
func (e *engine) FrameCounts() (uint64, uint64) { return e.updateCount.Load(), e.renderCount.Load() }

func (e *engine) PushEvent(ev Event) {
	switch ev.Type() {
	case EventTypeWindowResize, EventTypeWindowClose:
		e.updateEvents.Push(ev)
		e.renderEvents.Push(ev)
	case EventTypeToggleFullscreen, EventTypeSetFullscreen:
		e.renderEvents.Push(ev)
	default:
		e.logger.Warnf("dropping unknown event %s", ev.Type())
	}
}

func (e *engine) Run(ctx context.Context) error {
	if !e.running.CompareAndSwap(false, true) {
		return errors.New("engine: Run called more than once")
	}

	runCtx, cancel := context.WithCancel(ctx)
	e.cancelMu.Lock()
	e.cancel = cancel
	e.cancelMu.Unlock()
	defer cancel()

	// A Quit issued before Run still stops the stages immediately.
	if e.shutdown.Load() {
		cancel()
	}

	e.logger.Infof("running scene %q with %d frames in flight (headless=%t)",
		e.scene.Name(), e.framesInFlight, e.window == nil)

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error { return e.runStage(gctx, "update", e.updateLoop) })
	g.Go(func() error { return e.runStage(gctx, "render", e.renderLoop) })

	if e.window != nil {
		stopPump := context.AfterFunc(runCtx, e.window.RequestClose)
		e.window.ProcessMessages()
		stopPump()
		e.stop()
	}

	err := g.Wait()
	e.exit()

	if err == nil && !e.quit.Load() {
		err = ctx.Err()
	}
	return err
}

// runStage runs one stage loop, converting a panic into an error and stopping the
// other stage whenever this one returns.
func (e *engine) runStage(ctx context.Context, name string, loop func(context.Context) error) (err error) {
	defer e.stop()
	defer func() {
		if r := recover(); r != nil {
			e.logger.Errorf("%s stage recovered from panic: %v", name, r)
			err = fmt.Errorf("%s stage panicked: %v", name, r)
		}
	}()
	return loop(ctx)
}

// exit runs after both stages have returned.
func (e *engine) exit() {
	for _, hook := range e.exitHooks {
		hook()
	}
	e.renderer.Close()
	e.scene.Close()
	if e.window != nil {
		if err := e.window.Close(); err != nil {
			e.logger.Warnf("failed to close window: %v", err)
		}
	}

	updates, renders := e.FrameCounts()
	e.logger.Infof("stopped after %d updates and %d renders", updates, renders)
}

func (e *engine) Quit() {
	e.quit.Store(true)
	e.stop()
	if e.window != nil {
		e.window.RequestClose()
	}
}

// stop raises the shutdown flag and cancels the stage context so parked gate waits return.
func (e *engine) stop() {
	e.shutdown.Store(true)
	e.cancelMu.Lock()
	cancel := e.cancel
	e.cancelMu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// slots returns the slot for the given iteration and the slot of the iteration before it.
func (e *engine) slots(counter uint64) (slot, prevSlot int) {
	n := uint64(e.framesInFlight)
	return int(counter % n), int((counter + n - 1) % n)
}

func (e *engine) updateLoop(ctx context.Context) error {
	lastUpdate := time.Now()
	var counter uint64

	for {
		e.updateEvents.Drain(e.handleUpdateEvent)
		if e.shutdown.Load() || ctx.Err() != nil {
			return nil
		}

		if err := e.gates.waitUpdate(ctx); err != nil {
			return nil
		}

		now := time.Now()
		dt := float32(now.Sub(lastUpdate).Seconds())
		lastUpdate = now

		slot, prevSlot := e.slots(counter)
		e.scene.Update(slot, prevSlot, dt, e.tracker.Snapshot())
		if e.updateCallback != nil {
			e.updateCallback(slot, dt)
		}

		counter++
		e.updateCount.Store(counter)
		e.gates.signalRender()

		e.updateEvents.Drain(e.handleUpdateEvent)
	}
}

func (e *engine) handleUpdateEvent(ev Event) {
	switch ev := ev.(type) {
	case WindowResizeEvent:
		e.scene.Resize(ev.Width, ev.Height)
	case WindowCloseEvent:
		e.shutdown.Store(true)
		e.quit.Store(true)
	}
}

func (e *engine) renderLoop(ctx context.Context) error {
	lastRender := time.Now()
	var counter uint64

	for {
		e.renderEvents.Drain(e.handleRenderEvent)
		if e.shutdown.Load() || ctx.Err() != nil {
			return nil
		}

		if err := e.gates.waitRender(ctx); err != nil {
			return nil
		}

		now := time.Now()
		dt := float32(now.Sub(lastRender).Seconds())
		lastRender = now

		slot, _ := e.slots(counter)
		if e.profilingEnabled {
			e.profiler.BeginScope("render")
		}
		status := e.renderer.RenderFrame(ctx, e.scene.FrameData(slot))
		if e.profilingEnabled {
			e.profiler.EndScope("render")
		}
		e.handleFrameStatus(counter, status)

		if e.renderCallback != nil {
			e.renderCallback(slot, dt)
		}
		if e.profilingEnabled {
			e.profiler.Tick()
		}

		counter++
		e.renderCount.Store(counter)
		e.gates.signalUpdate()

		e.renderEvents.Drain(e.handleRenderEvent)

		// Frame rate limiting
		if e.renderFrameLimit > 0 {
			if remaining := e.renderFrameLimit - time.Since(now); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	}
}

// handleFrameStatus reacts to a degraded frame. Nothing here ends the loop.
func (e *engine) handleFrameStatus(frame uint64, status renderer.FrameStatus) {
	switch status {
	case renderer.FrameStatusOccluded:
		if e.window != nil && e.window.Fullscreen() {
			e.window.SetFullscreen(false)
			e.window.Show()
		}
		if e.lastStatus != status {
			e.logger.Warnf("frame %d: surface occluded", frame)
		}
	case renderer.FrameStatusDeviceLost:
		e.logger.Errorf("frame %d: device lost, retrying", frame)
	default:
		if e.lastStatus != renderer.FrameStatusOK {
			e.logger.Infof("frame %d: presenting again after %s", frame, e.lastStatus)
		}
	}
	e.lastStatus = status
}

func (e *engine) handleRenderEvent(ev Event) {
	switch ev := ev.(type) {
	case WindowResizeEvent:
		e.logger.Debugf("resize to %dx%d", ev.Width, ev.Height)
		e.renderer.Resize(ev.Width, ev.Height)
	case ToggleFullscreenEvent:
		if e.window != nil {
			e.window.ToggleFullscreen()
		}
	case SetFullscreenEvent:
		if e.window != nil {
			e.window.SetFullscreen(ev.Enabled)
		}
	case WindowCloseEvent:
		e.shutdown.Store(true)
		e.quit.Store(true)
	}
}
