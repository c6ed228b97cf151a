package camera

import (
	"github.com/Carmen-Shannon/oxy-draw/engine/event"
	"github.com/go-gl/mathgl/mgl32"
)

// InteractiveCamera drives a Camera from keyboard and mouse input. Keys are
// tracked while held and applied once per Update; mouse motion is applied
// immediately.
//
// Arrow up and down move forward and back, arrow left and right strafe,
// page up and down move along the up vector, and home and end roll. Holding
// shift multiplies the key speed.
type InteractiveCamera interface {
	// Camera returns the controlled camera.
	Camera() Camera

	// Matrix returns the controlled camera's matrix.
	Matrix() mgl32.Mat4

	// Resize forwards a framebuffer resize to the camera's projection.
	Resize(width, height uint32)

	// OnMouseEvent pans and tilts on mouse motion. Other mouse events are ignored.
	//
	// Parameters:
	//   - ev: the mouse event
	//
	// Returns:
	//   - event.State: Processed for mouse motion
	OnMouseEvent(ev event.MouseEvent) event.State

	// OnKeyboardEvent records a key as held or released.
	//
	// Parameters:
	//   - ev: the keyboard event
	OnKeyboardEvent(ev event.KeyboardEvent)

	// Update applies every held key once.
	Update()

	// KeySpeed returns the distance moved per Update for a held key.
	KeySpeed() float32

	// RotationSpeed returns the angle per pixel of mouse motion.
	RotationSpeed() float32
}
