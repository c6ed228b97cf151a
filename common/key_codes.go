package common

// Key is a virtual key code. Values match GLFW key codes, which use ASCII
// values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
type Key int

const (
	KeyW         Key = 87  // W key (ASCII)
	KeyA         Key = 65  // A key (ASCII)
	KeyS         Key = 83  // S key (ASCII)
	KeyD         Key = 68  // D key (ASCII)
	KeyQ         Key = 81  // Q key (ASCII)
	KeyE         Key = 69  // E key (ASCII)
	KeySpace     Key = 32  // Spacebar (ASCII)
	KeyEsc       Key = 256 // Escape key (GLFW)
	KeyEnter     Key = 257 // Enter key (GLFW)
	KeyTab       Key = 258 // Tab key (GLFW)
	KeyBackspace Key = 259 // Backspace key (GLFW)
)

// Navigation keys
const (
	KeyRight    Key = 262
	KeyLeft     Key = 263
	KeyDown     Key = 264
	KeyUp       Key = 265
	KeyPageUp   Key = 266
	KeyPageDown Key = 267
	KeyHome     Key = 268
	KeyEnd      Key = 269
)

// Modifier keys
const (
	KeyLeftShift    Key = 340
	KeyLeftControl  Key = 341
	KeyRightShift   Key = 344
	KeyRightControl Key = 345
)

// IsShift reports whether k is either shift key.
func (k Key) IsShift() bool {
	return k == KeyLeftShift || k == KeyRightShift
}
