package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-frames/common"
	"github.com/Carmen-Shannon/oxy-frames/engine/camera"
	"github.com/Carmen-Shannon/oxy-frames/engine/logging"
	"github.com/Carmen-Shannon/oxy-frames/engine/renderer"
	"github.com/Carmen-Shannon/oxy-frames/engine/scene"
	"github.com/Carmen-Shannon/oxy-frames/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const runTimeout = 10 * time.Second

type fakeWindow struct {
	mu              sync.Mutex
	width, height   int
	fullscreen      bool
	pending         *bool
	fullscreenCalls []bool
	toggleCalls     int
	showCalls       int
	closed          bool

	onResize   func(width, height int)
	onToggle   func()
	onClose    func()
	onKeyDown  func(keyCode uint32)
	onKeyUp    func(keyCode uint32)
	stop       chan struct{}
	stopOnce   sync.Once
	pumpCalled atomic.Bool
}

var _ window.Window = &fakeWindow{}

func newFakeWindow(fullscreen bool) *fakeWindow {
	return &fakeWindow{width: 640, height: 480, fullscreen: fullscreen, stop: make(chan struct{})}
}

func (f *fakeWindow) SetUpdateCallback(func())                     {}
func (f *fakeWindow) SetResizeCallback(cb func(width, height int)) { f.onResize = cb }
func (f *fakeWindow) SetFullscreenToggleCallback(cb func())        { f.onToggle = cb }
func (f *fakeWindow) SetCloseCallback(cb func())                   { f.onClose = cb }
func (f *fakeWindow) SetKeyDownCallback(cb func(keyCode uint32))   { f.onKeyDown = cb }
func (f *fakeWindow) SetKeyUpCallback(cb func(keyCode uint32))     { f.onKeyUp = cb }
func (f *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor   { return nil }
func (f *fakeWindow) Width() int                                   { return f.width }
func (f *fakeWindow) Height() int                                  { return f.height }

// The fake never applies requests, like a message loop that has not run yet.
func (f *fakeWindow) SetFullscreen(enabled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fullscreenCalls = append(f.fullscreenCalls, enabled)
	f.pending = &enabled
}

func (f *fakeWindow) ToggleFullscreen() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toggleCalls++
	target := !f.fullscreen
	if f.pending != nil {
		target = !*f.pending
	}
	f.pending = &target
}

// target returns the fullscreen state the window would end in once requests apply.
func (f *fakeWindow) target() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pending != nil {
		return *f.pending
	}
	return f.fullscreen
}

func (f *fakeWindow) Fullscreen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fullscreen
}

func (f *fakeWindow) Show() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.showCalls++
}

func (f *fakeWindow) RequestClose() {
	f.stopOnce.Do(func() { close(f.stop) })
}

func (f *fakeWindow) IsRunning() bool {
	select {
	case <-f.stop:
		return false
	default:
		return true
	}
}

func (f *fakeWindow) ProcessMessages() {
	f.pumpCalled.Store(true)
	<-f.stop
}

func (f *fakeWindow) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeWindow) snapshot() (calls []bool, shows int, closed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]bool(nil), f.fullscreenCalls...), f.showCalls, f.closed
}

func newTestScene(t *testing.T, framesInFlight int) scene.Scene {
	t.Helper()
	w := scene.NewWorld()
	w.AddCamera(camera.NewCamera(camera.WithName("main"), camera.WithAspect(1)))
	s := scene.NewScene("engine-test", w,
		scene.WithLogger(logging.NewNopLogger()),
		scene.WithMultiThreadedCulling(false),
		scene.WithFramesInFlight(framesInFlight),
	)
	t.Cleanup(s.Close)
	return s
}

func runEngine(t *testing.T, e Engine) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()
	return e.Run(ctx)
}

type stageEntry struct {
	stage byte
	slot  int
	frame uint64
}

func TestSlotAlternationHappensBefore(t *testing.T) {
	for _, n := range []int{1, 2, 3} {
		t.Run(fmt.Sprintf("frames_in_flight_%d", n), func(t *testing.T) {
			const frames = 50
			s := newTestScene(t, n)

			var (
				mu  sync.Mutex
				log []stageEntry
				eng Engine
			)
			rec := renderer.NewRecordingRenderer(renderer.WithFrameHook(func(f renderer.RecordedFrame) {
				mu.Lock()
				log = append(log, stageEntry{stage: 'R', slot: f.Slot, frame: f.Frame})
				mu.Unlock()
			}))

			eng, err := NewEngine(
				WithScene(s),
				WithRenderer(rec),
				WithLogger(logging.NewNopLogger()),
				WithUpdateCallback(func(slot int, _ float32) {
					mu.Lock()
					log = append(log, stageEntry{stage: 'U', slot: slot, frame: s.FrameData(slot).Frame})
					mu.Unlock()
				}),
				WithRenderCallback(func(int, float32) {
					if _, renders := eng.FrameCounts(); renders+1 >= frames {
						eng.Quit()
					}
				}),
			)
			require.NoError(t, err)
			require.NoError(t, runEngine(t, eng))

			mu.Lock()
			defer mu.Unlock()

			var updates, renders []int
			for i, entry := range log {
				if entry.stage == 'U' {
					updates = append(updates, i)
				} else {
					renders = append(renders, i)
				}
			}
			require.GreaterOrEqual(t, len(renders), frames)
			require.GreaterOrEqual(t, len(updates), len(renders))

			for k, ri := range renders {
				u, r := log[updates[k]], log[ri]
				assert.Equal(t, k%n, u.slot, "update %d slot", k)
				assert.Equal(t, k%n, r.slot, "render %d slot", k)
				assert.Equal(t, u.frame, r.frame, "render %d sees the frame update %d wrote", k, k)
				assert.Less(t, updates[k], ri, "update %d happens before render %d", k, k)
				if k > 0 {
					assert.Equal(t, log[updates[k-1]].frame+1, u.frame)
				}
				if k+n < len(updates) {
					assert.Less(t, ri, updates[k+n], "render %d happens before update %d reuses its slot", k, k+n)
				}
			}
			assert.True(t, rec.Closed())
		})
	}
}

func TestOccludedFrameLeavesFullscreen(t *testing.T) {
	win := newFakeWindow(true)
	logger := logging.NewRecordingLogger()

	var eng Engine
	rec := renderer.NewRecordingRenderer(
		renderer.WithScriptedStatuses(renderer.FrameStatusOccluded, renderer.FrameStatusOccluded, renderer.FrameStatusDeviceLost),
		renderer.WithFrameHook(func(renderer.RecordedFrame) {
			if _, renders := eng.FrameCounts(); renders+1 >= 5 {
				eng.Quit()
			}
		}),
	)

	eng, err := NewEngine(
		WithScene(newTestScene(t, 2)),
		WithRenderer(rec),
		WithWindow(win),
		WithLogger(logger),
	)
	require.NoError(t, err)
	require.NoError(t, runEngine(t, eng))

	calls, shows, closed := win.snapshot()
	assert.Equal(t, []bool{false, false}, calls, "each occluded frame leaves fullscreen until the switch applies")
	assert.Equal(t, 2, shows)
	assert.False(t, win.target())
	assert.True(t, closed)
	assert.True(t, win.pumpCalled.Load())

	assert.Len(t, logger.Entries("WARN"), 1, "occlusion is warned once per transition")
	assert.Len(t, logger.Entries("ERROR"), 1)

	frames := rec.Frames()
	require.GreaterOrEqual(t, len(frames), 5, "degraded frames never stop the loop")
	assert.Equal(t, renderer.FrameStatusDeviceLost, frames[2].Status)
	assert.Equal(t, renderer.FrameStatusOK, frames[3].Status)
}

func TestWindowEventsAreRoutedAndCoalesced(t *testing.T) {
	win := newFakeWindow(false)
	s := newTestScene(t, 2)

	var eng Engine
	rec := renderer.NewRecordingRenderer(renderer.WithFrameHook(func(renderer.RecordedFrame) {
		if _, renders := eng.FrameCounts(); renders+1 >= 3 {
			eng.Quit()
		}
	}))
	eng, err := NewEngine(WithScene(s), WithRenderer(rec), WithWindow(win), WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)

	require.NotNil(t, win.onResize)
	win.onResize(640, 480)
	win.onResize(800, 400)
	win.onToggle()
	win.onKeyDown(common.KeyW)

	assert.True(t, eng.InputTracker().Snapshot().IsKeyDown(common.KeyW))

	require.NoError(t, runEngine(t, eng))

	assert.Equal(t, []renderer.Size{{Width: 800, Height: 400}}, rec.Resizes(), "only the last resize reaches the renderer")
	assert.InDelta(t, 2.0, s.ActiveCamera().Aspect(), 1e-6, "update side resizes the scene")

	calls, _, _ := win.snapshot()
	assert.Empty(t, calls)
	assert.Equal(t, 1, win.toggleCalls)
	assert.True(t, win.target(), "toggle enters fullscreen from windowed")
}

func TestOccludedWindowedFrameLeavesWindowAlone(t *testing.T) {
	win := newFakeWindow(false)
	logger := logging.NewRecordingLogger()

	var eng Engine
	rec := renderer.NewRecordingRenderer(
		renderer.WithScriptedStatuses(renderer.FrameStatusOccluded, renderer.FrameStatusOccluded),
		renderer.WithFrameHook(func(renderer.RecordedFrame) {
			if _, renders := eng.FrameCounts(); renders+1 >= 3 {
				eng.Quit()
			}
		}),
	)
	eng, err := NewEngine(WithScene(newTestScene(t, 2)), WithRenderer(rec), WithWindow(win), WithLogger(logger))
	require.NoError(t, err)
	require.NoError(t, runEngine(t, eng))

	calls, shows, _ := win.snapshot()
	assert.Empty(t, calls, "a minimized windowed surface is not touched")
	assert.Zero(t, shows)
	assert.Len(t, logger.Entries("WARN"), 1)
}

func TestTogglesInOneBatchAreAllApplied(t *testing.T) {
	for _, tc := range []struct {
		name    string
		toggles int
		want    bool
	}{
		{name: "pair cancels", toggles: 2, want: false},
		{name: "three toggles", toggles: 3, want: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			win := newFakeWindow(false)

			var eng Engine
			rec := renderer.NewRecordingRenderer(renderer.WithFrameHook(func(renderer.RecordedFrame) {
				if _, renders := eng.FrameCounts(); renders+1 >= 2 {
					eng.Quit()
				}
			}))
			eng, err := NewEngine(WithScene(newTestScene(t, 2)), WithRenderer(rec), WithWindow(win), WithLogger(logging.NewNopLogger()))
			require.NoError(t, err)

			for i := 0; i < tc.toggles; i++ {
				win.onToggle()
			}
			require.NoError(t, runEngine(t, eng))

			assert.Equal(t, tc.toggles, win.toggleCalls)
			assert.Equal(t, tc.want, win.target())
		})
	}
}

func TestWindowCloseShutsDown(t *testing.T) {
	win := newFakeWindow(false)
	hooks := 0
	eng, err := NewEngine(
		WithScene(newTestScene(t, 2)),
		WithRenderer(renderer.NewRecordingRenderer()),
		WithWindow(win),
		WithLogger(logging.NewNopLogger()),
		WithExitHook(func() { hooks++ }),
	)
	require.NoError(t, err)

	win.onClose()
	require.NoError(t, runEngine(t, eng))
	assert.Equal(t, 1, hooks)
}

func TestQuitReleasesParkedStage(t *testing.T) {
	const n = 2
	release := make(chan struct{})
	var once sync.Once
	rec := renderer.NewRecordingRenderer(renderer.WithFrameHook(func(renderer.RecordedFrame) {
		once.Do(func() { <-release })
	}))

	var order []string
	var orderMu sync.Mutex
	eng, err := NewEngine(
		WithScene(newTestScene(t, n)),
		WithRenderer(rec),
		WithLogger(logging.NewNopLogger()),
		WithExitHook(func() {
			orderMu.Lock()
			order = append(order, "hook")
			orderMu.Unlock()
		}),
	)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- runEngine(t, eng) }()

	require.Eventually(t, func() bool {
		updates, _ := eng.FrameCounts()
		return updates == n
	}, runTimeout, time.Millisecond)

	// Render is stuck on slot 0, so Update must stay parked with every slot filled.
	time.Sleep(20 * time.Millisecond)
	updates, renders := eng.FrameCounts()
	assert.Equal(t, uint64(n), updates)
	assert.Zero(t, renders)
	assert.False(t, rec.Closed(), "nothing is torn down while a stage is running")

	eng.Quit()
	eng.Quit()
	close(release)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(runTimeout):
		t.Fatal("Run did not return after Quit")
	}

	orderMu.Lock()
	assert.Equal(t, []string{"hook"}, order)
	orderMu.Unlock()
	assert.True(t, rec.Closed())

	updates, _ = eng.FrameCounts()
	assert.LessOrEqual(t, updates, uint64(n+1))
}

func TestRunReturnsContextError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eng, err := NewEngine(
		WithScene(newTestScene(t, 2)),
		WithLogger(logging.NewNopLogger()),
		WithRenderCallback(func(int, float32) { cancel() }),
	)
	require.NoError(t, err)

	err = eng.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Error(t, eng.Run(context.Background()), "Run is single-use")
}

func TestStagePanicIsReturned(t *testing.T) {
	logger := logging.NewRecordingLogger()
	eng, err := NewEngine(
		WithScene(newTestScene(t, 2)),
		WithLogger(logger),
		WithUpdateCallback(func(int, float32) { panic("boom") }),
	)
	require.NoError(t, err)

	err = runEngine(t, eng)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "update stage panicked: boom")
	assert.False(t, errors.Is(err, context.Canceled))
	assert.NotEmpty(t, logger.Entries("ERROR"))
}

func TestNewEngineDefaults(t *testing.T) {
	assert.Panics(t, func() { _, _ = NewEngine() })

	logger := logging.NewRecordingLogger()
	eng, err := NewEngine(WithScene(newTestScene(t, 3)), WithFramesInFlight(2), WithLogger(logger))
	require.NoError(t, err)

	assert.Equal(t, 3, eng.FramesInFlight(), "the scene owns the slots")
	assert.Len(t, logger.Entries("WARN"), 1)
	assert.IsType(t, &renderer.RecordingRenderer{}, eng.Renderer(), "headless default")
	assert.NotNil(t, eng.InputTracker())
	assert.Nil(t, eng.Window())
}

func TestPushEventRouting(t *testing.T) {
	eng, err := NewEngine(WithScene(newTestScene(t, 2)), WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)
	e := eng.(*engine)

	e.PushEvent(WindowResizeEvent{Width: 1, Height: 1})
	e.PushEvent(ToggleFullscreenEvent{})
	e.PushEvent(SetFullscreenEvent{Enabled: true})
	e.PushEvent(WindowCloseEvent{})

	assert.Equal(t, 2, e.updateEvents.Len(), "update sees resize and close")
	assert.Equal(t, 4, e.renderEvents.Len(), "render sees everything")
}
