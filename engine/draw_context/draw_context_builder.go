package draw_context

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-draw/engine/logger"
	"github.com/cogentcore/webgpu/wgpu"
)

// DrawContextBuilderOption configures a draw context.
type DrawContextBuilderOption func(c *drawContextConfig)

type drawContextConfig struct {
	sampleCount   uint32
	clearColor    *wgpu.Color
	textureFormat wgpu.TextureFormat
	log           *slog.Logger
}

func defaultDrawContextConfig() drawContextConfig {
	return drawContextConfig{
		sampleCount:   4,
		clearColor:    &wgpu.Color{R: 0, G: 0.5, B: 0.5, A: 1},
		textureFormat: wgpu.TextureFormatRGBA8UnormSrgb,
		log:           logger.Nop(),
	}
}

// WithMultisampleCount sets the MSAA sample count. 1 disables multisampling.
//
// Parameters:
//   - count: the number of samples per pixel (1 or 4)
//
// Returns:
//   - DrawContextBuilderOption: a function that sets the sample count
func WithMultisampleCount(count uint32) DrawContextBuilderOption {
	return func(c *drawContextConfig) {
		c.sampleCount = max(count, 1)
	}
}

// WithClearColor sets the color the target is cleared to at the start of
// every frame. nil keeps the previous frame's contents.
//
// Parameters:
//   - color: the clear color, or nil to load instead of clearing
//
// Returns:
//   - DrawContextBuilderOption: a function that sets the clear color
func WithClearColor(color *wgpu.Color) DrawContextBuilderOption {
	return func(c *drawContextConfig) {
		c.clearColor = color
	}
}

// WithTextureFormat sets the color format of an offscreen target. It has no
// effect on surface targets, which use the surface's preferred format.
func WithTextureFormat(format wgpu.TextureFormat) DrawContextBuilderOption {
	return func(c *drawContextConfig) {
		c.textureFormat = format
	}
}

// WithLogger sets the logger the context reports creation and resizes to.
// nil keeps the context silent.
func WithLogger(l *slog.Logger) DrawContextBuilderOption {
	return func(c *drawContextConfig) {
		c.log = logger.OrNop(l)
	}
}
