package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-draw/engine/event"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing and input event handling.
// Wraps platform-specific window implementations with a common interface.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetWindowEventCallback sets the callback for window events: resize,
	// close, move, cursor enter and leave, cursor position, mouse buttons and keys.
	//
	// Parameters:
	//   - callback: function receiving each event
	SetWindowEventCallback(callback func(ev event.WindowEvent))

	// SetMouseCallback sets the callback for device mouse events: motion
	// deltas and the scroll wheel.
	//
	// Parameters:
	//   - callback: function receiving each event
	SetMouseCallback(callback func(ev event.MouseEvent))

	// SetCursorVisible shows the cursor, or hides and captures it so that
	// motion deltas are unbounded.
	//
	// Parameters:
	//   - visible: false to hide and capture the cursor
	SetCursorVisible(visible bool)

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

	// RequestClose stops the message loop after the current iteration.
	RequestClose()

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls OnUpdate callback each iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
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

	// maxWidth is the maximum allowed window width during resize.
	maxWidth int

	// maxHeight is the maximum allowed window height during resize.
	maxHeight int

	// minWidth is the minimum allowed window width during resize.
	minWidth int

	// minHeight is the minimum allowed window height during resize.
	minHeight int

	// width is the current framebuffer width in pixels.
	width int

	// height is the current framebuffer height in pixels.
	height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// cursor converts absolute cursor positions into motion deltas.
	cursor cursorTracker

	// onUpdate is called each iteration of the message loop (if set).
	onUpdate func()

	// onWindowEvent is called for every window event.
	onWindowEvent func(ev event.WindowEvent)

	// onMouse is called for device mouse motion and wheel events.
	onMouse func(ev event.MouseEvent)
}

var _ Window = &engineWindow{}

// NewWindow creates a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the spawned window
//   - error: error if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:     "Default Window Title",
		maxWidth:  3840,
		maxHeight: 2160,
		minWidth:  200,
		minHeight: 150,
		width:     1280,
		height:    720,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	return w, nil
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetWindowEventCallback(callback func(ev event.WindowEvent)) {
	w.onWindowEvent = callback
}

func (w *engineWindow) SetMouseCallback(callback func(ev event.MouseEvent)) {
	w.onMouse = callback
}

func (w *engineWindow) SetCursorVisible(visible bool) {
	platformSetCursorVisible(w, visible)
	// the captured cursor jumps, so the next position must not yield a delta
	w.cursor.Reset()
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) RequestClose() {
	platformRequestClose(w)
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
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

func (w *engineWindow) emitWindow(ev event.WindowEvent) {
	if w.onWindowEvent != nil {
		w.onWindowEvent(ev)
	}
}

func (w *engineWindow) emitMouse(ev event.MouseEvent) {
	if w.onMouse != nil {
		w.onMouse(ev)
	}
}
