package window

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing and input event handling.
// Wraps platform-specific window implementations with a common interface.
//
// The window is the engine's OS event producer: it reports resizes, fullscreen
// toggles (F11 or Alt+Enter), close requests and key transitions through callbacks.
// Callbacks run on the thread that calls ProcessMessages, which must be the main
// OS thread.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetFullscreenToggleCallback sets the function called when the user asks to
	// toggle fullscreen (F11 or Alt+Enter).
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetFullscreenToggleCallback(callback func())

	// SetCloseCallback sets the function called when the user closes the window
	// (close button or Escape).
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetCloseCallback(callback func())

	// SetKeyDownCallback sets the callback for key press events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyUpCallback(callback func(keyCode uint32))

	// SetFullscreen requests switching to or from fullscreen on the primary monitor.
	// Safe to call from any goroutine; the switch happens on the next message loop iteration.
	//
	// Parameters:
	//   - enabled: true for fullscreen, false for windowed
	SetFullscreen(enabled bool)

	// ToggleFullscreen requests the opposite of the most recent fullscreen target: the
	// pending request if one is queued, otherwise the current state. Toggles made before
	// the message loop runs are never lost. Safe to call from any goroutine.
	ToggleFullscreen()

	// Fullscreen reports whether the window is currently fullscreen. Pending requests are
	// not reflected until the message loop applies them.
	//
	// Returns:
	//   - bool: true when fullscreen
	Fullscreen() bool

	// Show requests that the window be made visible. Safe to call from any goroutine.
	Show()

	// RequestClose asks the message loop to stop. Safe to call from any goroutine.
	RequestClose()

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls OnUpdate callback each iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels. Safe to call from any goroutine.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels. Safe to call from any goroutine.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// size limits applied to the GLFW window.
	maxWidth, maxHeight int
	minWidth, minHeight int

	// width and height are the framebuffer size, written on the main thread and
	// read by the render stage.
	width  atomic.Int64
	height atomic.Int64

	startFullscreen bool
	fullscreen      atomic.Bool

	// requests from other goroutines, applied by the message loop
	requests *pendingRequests

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onUpdate           func()
	onResize           func(width, height int)
	onFullscreenToggle func()
	onClose            func()
	onKeyDown          func(keyCode uint32)
	onKeyUp            func(keyCode uint32)
}

var _ Window = &engineWindow{}

// NewWindow creates a new Window with the specified options.
// Applies default values first, then each option in order.
// Must be called on the main OS thread.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window
//   - error: an error if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:     "Default Window Title",
		maxWidth:  3840,
		maxHeight: 2160,
		minWidth:  320,
		minHeight: 200,
		requests:  &pendingRequests{},
	}
	w.width.Store(1280)
	w.height.Store(720)
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	if w.startFullscreen {
		w.SetFullscreen(true)
	}
	return w, nil
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetFullscreenToggleCallback(callback func()) {
	w.onFullscreenToggle = callback
}

func (w *engineWindow) SetCloseCallback(callback func()) {
	w.onClose = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SetFullscreen(enabled bool) {
	w.requests.requestFullscreen(enabled)
}

func (w *engineWindow) ToggleFullscreen() {
	w.requests.toggleFullscreen(w.fullscreen.Load())
}

func (w *engineWindow) Fullscreen() bool {
	return w.fullscreen.Load()
}

func (w *engineWindow) Show() {
	w.requests.requestShow()
}

func (w *engineWindow) RequestClose() {
	platformRequestClose(w)
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return int(w.width.Load())
}

func (w *engineWindow) Height() int {
	return int(w.height.Load())
}

func (w *engineWindow) setSize(width, height int) {
	w.width.Store(int64(width))
	w.height.Store(int64(height))
}

// pendingRequests collects fullscreen and show requests made off the main thread.
// Only the latest fullscreen request is kept.
type pendingRequests struct {
	mu         sync.Mutex
	fullscreen *bool
	show       bool
}

func (p *pendingRequests) requestFullscreen(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fullscreen = &enabled
}

// toggleFullscreen flips the pending target, or current when nothing is pending.
func (p *pendingRequests) toggleFullscreen(current bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	target := !current
	if p.fullscreen != nil {
		target = !*p.fullscreen
	}
	p.fullscreen = &target
}

func (p *pendingRequests) requestShow() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.show = true
}

// take returns and clears the pending requests.
func (p *pendingRequests) take() (fullscreen *bool, show bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fullscreen, show = p.fullscreen, p.show
	p.fullscreen, p.show = nil, false
	return fullscreen, show
}
