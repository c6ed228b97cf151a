package overlay

import "image/color"

// Corner is the viewport corner the overlay panel is anchored to.
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
)

// OverlayBuilderOption is a functional option for configuring an overlay plugin.
// Use the With* functions to create options.
type OverlayBuilderOption func(c *overlayConfig)

type overlayConfig struct {
	corner     Corner
	width      int
	height     int
	padding    int
	foreground color.RGBA
	background color.RGBA
	showFPS    bool
}

func defaultOverlayConfig() overlayConfig {
	return overlayConfig{
		corner:     TopLeft,
		width:      220,
		height:     90,
		padding:    6,
		foreground: color.RGBA{R: 255, G: 255, B: 255, A: 255},
		background: color.RGBA{A: 160},
		showFPS:    true,
	}
}

// WithCorner anchors the panel to a viewport corner. The default is TopLeft.
//
// Parameters:
//   - corner: the corner
//
// Returns:
//   - OverlayBuilderOption: option function to apply
func WithCorner(corner Corner) OverlayBuilderOption {
	return func(c *overlayConfig) {
		c.corner = corner
	}
}

// WithPanelSize sets the panel size in pixels.
//
// Parameters:
//   - width: panel width
//   - height: panel height
//
// Returns:
//   - OverlayBuilderOption: option function to apply
func WithPanelSize(width, height int) OverlayBuilderOption {
	return func(c *overlayConfig) {
		c.width, c.height = width, height
	}
}

// WithColors sets the text and background colors. Colors are not premultiplied.
func WithColors(foreground, background color.RGBA) OverlayBuilderOption {
	return func(c *overlayConfig) {
		c.foreground, c.background = foreground, background
	}
}

// WithoutFPS hides the frame rate line.
func WithoutFPS() OverlayBuilderOption {
	return func(c *overlayConfig) {
		c.showFPS = false
	}
}
