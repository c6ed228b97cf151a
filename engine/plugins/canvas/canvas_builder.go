package canvas

import "github.com/Carmen-Shannon/oxy-draw/engine/drawable"

// CanvasBuilderOption is a functional option for configuring a canvas plugin.
type CanvasBuilderOption func(c *canvasConfig)

type canvasConfig struct {
	label string
	slots []drawable.BindingSlot
}

// WithLabel sets the debug label of the canvas drawable.
func WithLabel(label string) CanvasBuilderOption {
	return func(c *canvasConfig) {
		c.label = label
	}
}

// WithBindingSlots binds extra resources for the fragment shader. Group 0
// bindings 0 to 5 are taken by the canvas uniforms.
//
// Parameters:
//   - slots: the extra slots
//
// Returns:
//   - CanvasBuilderOption: option function to apply
func WithBindingSlots(slots ...drawable.BindingSlot) CanvasBuilderOption {
	return func(c *canvasConfig) {
		c.slots = append(c.slots, slots...)
	}
}
