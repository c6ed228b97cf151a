package window

import (
	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/Carmen-Shannon/oxy-draw/engine/event"
)

// cursorTracker turns absolute cursor positions into deltas. The first
// position after a reset only records the origin.
type cursorTracker struct {
	x, y  float64
	valid bool
}

// Move records (x, y) and returns the motion since the previous position.
func (c *cursorTracker) Move(x, y float64) (dx, dy float32, ok bool) {
	if c.valid {
		dx, dy, ok = float32(x-c.x), float32(y-c.y), true
	}
	c.x, c.y, c.valid = x, y, true
	return dx, dy, ok
}

// Reset forgets the last position.
func (c *cursorTracker) Reset() {
	c.valid = false
}

// keyEvent builds the window event for a raw key action. GLFW key codes are
// used as is; repeats count as presses.
func keyEvent(code int, pressed bool) event.WindowEvent {
	return event.WindowEvent{
		Kind:     event.KeyboardInput,
		Keyboard: event.KeyboardEvent{Key: common.Key(code), Pressed: pressed},
	}
}

// buttonEvent builds the window event for a raw mouse button action at the
// cursor position. ok is false for buttons beyond the middle one.
func buttonEvent(button int, pressed bool, x, y float64) (event.WindowEvent, bool) {
	var id event.MouseButtonID
	switch button {
	case 0:
		id = event.MouseButtonLeft
	case 1:
		id = event.MouseButtonRight
	case 2:
		id = event.MouseButtonMiddle
	default:
		return event.WindowEvent{}, false
	}
	return event.WindowEvent{
		Kind: event.MouseInput,
		Mouse: event.MouseEvent{
			Kind:    event.MouseButton,
			Button:  id,
			Pressed: pressed,
			X:       float32(x),
			Y:       float32(y),
		},
	}, true
}
