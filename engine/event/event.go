// Package event defines the input and window events the render loop dispatches
// to plugins and scenarios.
package event

import "github.com/Carmen-Shannon/oxy-draw/common"

// State reports whether a handler consumed an event.
type State int

const (
	// Ignored lets the event continue to the next handler.
	Ignored State = iota
	// Processed stops further propagation of the event.
	Processed
)

// MouseEventKind identifies the payload of a MouseEvent.
type MouseEventKind int

const (
	MouseMotion MouseEventKind = iota
	MouseWheel
	MouseButton
)

// MouseButtonID identifies a mouse button.
type MouseButtonID int

const (
	MouseButtonLeft MouseButtonID = iota
	MouseButtonRight
	MouseButtonMiddle
)

// MouseEvent is a raw device mouse event.
type MouseEvent struct {
	Kind MouseEventKind
	// DX, DY hold the motion delta for MouseMotion.
	DX, DY float32
	// Wheel holds the vertical scroll amount for MouseWheel.
	Wheel float32
	// Button and Pressed describe a MouseButton event.
	Button  MouseButtonID
	Pressed bool
	// X, Y hold the cursor position in window pixels.
	X, Y float32
}

// KeyboardEvent is a key press or release.
type KeyboardEvent struct {
	Key     common.Key
	Pressed bool
}

// WindowEventKind identifies the payload of a WindowEvent.
type WindowEventKind int

const (
	Resized WindowEventKind = iota
	CloseRequested
	Moved
	CursorEntered
	CursorLeft
	CursorMoved
	MouseInput
	KeyboardInput
	RedrawRequested
)

func (k WindowEventKind) String() string {
	switch k {
	case Resized:
		return "Resized"
	case CloseRequested:
		return "CloseRequested"
	case Moved:
		return "Moved"
	case CursorEntered:
		return "CursorEntered"
	case CursorLeft:
		return "CursorLeft"
	case CursorMoved:
		return "CursorMoved"
	case MouseInput:
		return "MouseInput"
	case KeyboardInput:
		return "KeyboardInput"
	case RedrawRequested:
		return "RedrawRequested"
	}
	return "Unknown"
}

// WindowEvent is an event addressed to the window.
type WindowEvent struct {
	Kind WindowEventKind
	// Width, Height hold the new framebuffer size for Resized.
	Width, Height uint32
	// X, Y hold the position for Moved and CursorMoved.
	X, Y float32
	// Mouse is set for MouseInput.
	Mouse MouseEvent
	// Keyboard is set for KeyboardInput.
	Keyboard KeyboardEvent
}
