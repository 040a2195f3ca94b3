package window

import (
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwWindow is the GLFW backing of an engineWindow.
type glfwWindow struct {
	parent  *engineWindow
	window  *glfw.Window
	running atomic.Bool

	// windowed placement restored when leaving fullscreen
	windowedX, windowedY          int
	windowedWidth, windowedHeight int
}

// newPlatformWindow opens the GLFW window on the calling thread and installs the
// key, close and framebuffer callbacks. The calling thread becomes the pump thread.
func newPlatformWindow(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}

	// no GL context; the surface is created by wgpu
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(w.Width(), w.Height(), w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("glfw create window: %w", err)
	}
	win.SetSizeLimits(w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)

	gw := &glfwWindow{
		parent: w,
		window: win,
	}
	gw.running.Store(true)
	w.internalWindow = gw

	// Escape closes, F11 and Alt+Enter toggle fullscreen, everything else feeds input.
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Press {
			switch {
			case key == glfw.KeyEscape:
				gw.running.Store(false)
				win.SetShouldClose(true)
				if w.onClose != nil {
					w.onClose()
				}
				return
			case key == glfw.KeyF11, key == glfw.KeyEnter && mods&glfw.ModAlt != 0:
				if w.onFullscreenToggle != nil {
					w.onFullscreenToggle()
				}
				return
			}
		}
		switch action {
		case glfw.Press, glfw.Repeat:
			if w.onKeyDown != nil {
				w.onKeyDown(uint32(key))
			}
		case glfw.Release:
			if w.onKeyUp != nil {
				w.onKeyUp(uint32(key))
			}
		}
	})

	win.SetCloseCallback(func(_ *glfw.Window) {
		gw.running.Store(false)
		if w.onClose != nil {
			w.onClose()
		}
	})

	// Sizes are framebuffer pixels. A minimized window reports 0x0.
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.setSize(width, height)
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})

	w.setSize(win.GetFramebufferSize())

	return nil
}

// platformGetSurfaceDescriptor returns nil until the window exists.
func platformGetSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	if w.internalWindow == nil {
		return nil
	}
	gw := w.internalWindow.(*glfwWindow)
	return wgpuglfw.GetSurfaceDescriptor(gw.window)
}

// platformIsRunningCheck reads the running flag only; ShouldClose is polled by
// platformProcessMessages on the pump thread.
func platformIsRunningCheck(w *engineWindow) bool {
	if w.internalWindow == nil {
		return false
	}
	return w.internalWindow.(*glfwWindow).running.Load()
}

// platformRequestClose clears the running flag so the message loop exits on its next iteration.
func platformRequestClose(w *engineWindow) {
	if w.internalWindow == nil {
		return
	}
	w.internalWindow.(*glfwWindow).running.Store(false)
}

// platformCloseWindow destroys the window and terminates GLFW. Must run on the pump thread.
func platformCloseWindow(w *engineWindow) error {
	if w.internalWindow == nil {
		return errors.New("window: not initialized")
	}
	gw := w.internalWindow.(*glfwWindow)
	gw.running.Store(false)
	gw.window.SetShouldClose(true)
	gw.window.Destroy()
	glfw.Terminate()
	w.internalWindow = nil
	return nil
}

// platformProcessMessages applies pending fullscreen and show requests, then
// polls GLFW for pending events without blocking.
func platformProcessMessages(w *engineWindow) bool {
	if w.internalWindow == nil {
		return false
	}
	gw := w.internalWindow.(*glfwWindow)

	if fullscreen, show := w.requests.take(); fullscreen != nil || show {
		if fullscreen != nil {
			gw.applyFullscreen(*fullscreen)
		}
		if show {
			gw.window.Show()
		}
	}

	glfw.PollEvents()
	if gw.window.ShouldClose() {
		gw.running.Store(false)
	}
	return platformIsRunningCheck(w)
}

// applyFullscreen moves the window onto the primary monitor at its current video
// mode, or back to the remembered windowed placement.
func (gw *glfwWindow) applyFullscreen(enabled bool) {
	current := gw.window.GetMonitor() != nil
	if enabled == current {
		gw.parent.fullscreen.Store(current)
		return
	}

	if enabled {
		monitor := glfw.GetPrimaryMonitor()
		if monitor == nil {
			return
		}
		gw.windowedX, gw.windowedY = gw.window.GetPos()
		gw.windowedWidth, gw.windowedHeight = gw.window.GetSize()
		mode := monitor.GetVideoMode()
		gw.window.SetMonitor(monitor, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
	} else {
		width := max(gw.windowedWidth, gw.parent.minWidth)
		height := max(gw.windowedHeight, gw.parent.minHeight)
		gw.window.SetMonitor(nil, gw.windowedX, gw.windowedY, width, height, glfw.DontCare)
	}
	gw.parent.fullscreen.Store(enabled)
}
