package drawable

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-draw/engine/logger"
	"github.com/cogentcore/webgpu/wgpu"
)

// BuilderOption configures a Builder.
type BuilderOption func(b *builderConfig)

type builderConfig struct {
	label     string
	cullMode  wgpu.CullMode
	topology  wgpu.PrimitiveTopology
	frontFace wgpu.FrontFace
	depthTest bool
	log       *slog.Logger
}

func defaultBuilderConfig() builderConfig {
	return builderConfig{
		label:     "Drawable",
		cullMode:  wgpu.CullModeBack,
		topology:  wgpu.PrimitiveTopologyTriangleList,
		frontFace: wgpu.FrontFaceCCW,
		depthTest: true,
		log:       logger.Nop(),
	}
}

// WithLabel sets the debug label used for every resource the drawable creates.
//
// Parameters:
//   - label: the label
//
// Returns:
//   - BuilderOption: a function that sets the label
func WithLabel(label string) BuilderOption {
	return func(b *builderConfig) {
		b.label = label
	}
}

// WithCullMode overrides back-face culling.
//
// Parameters:
//   - mode: the cull mode (e.g., wgpu.CullModeNone for double-sided geometry)
//
// Returns:
//   - BuilderOption: a function that sets the cull mode
func WithCullMode(mode wgpu.CullMode) BuilderOption {
	return func(b *builderConfig) {
		b.cullMode = mode
	}
}

// WithTopology overrides the triangle-list topology.
func WithTopology(topology wgpu.PrimitiveTopology) BuilderOption {
	return func(b *builderConfig) {
		b.topology = topology
	}
}

// WithFrontFace overrides the counter-clockwise front face.
func WithFrontFace(face wgpu.FrontFace) BuilderOption {
	return func(b *builderConfig) {
		b.frontFace = face
	}
}

// WithoutDepthTest draws regardless of depth and leaves the depth buffer untouched.
func WithoutDepthTest() BuilderOption {
	return func(b *builderConfig) {
		b.depthTest = false
	}
}

// WithLogger sets the logger build results are reported to. nil keeps the
// builder silent.
func WithLogger(l *slog.Logger) BuilderOption {
	return func(b *builderConfig) {
		b.log = logger.OrNop(l)
	}
}
