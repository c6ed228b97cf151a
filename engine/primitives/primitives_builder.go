package primitives

import (
	"github.com/Carmen-Shannon/oxy-draw/engine/drawable"
	"github.com/cogentcore/webgpu/wgpu"
)

// PrimitiveOption is a functional option for the primitive constructors.
type PrimitiveOption func(c *primitiveConfig)

type primitiveConfig struct {
	alpha   bool
	builder []drawable.BuilderOption
}

// WithAlpha makes the primitive blend with the frame buffer using the
// drawable's blend constant, so that SetOpacity fades it.
//
// Returns:
//   - PrimitiveOption: option function to apply
func WithAlpha() PrimitiveOption {
	return func(c *primitiveConfig) {
		c.alpha = true
	}
}

// WithBuilderOptions forwards options to the underlying drawable builder.
func WithBuilderOptions(options ...drawable.BuilderOption) PrimitiveOption {
	return func(c *primitiveConfig) {
		c.builder = append(c.builder, options...)
	}
}

// ConstantBlend mixes the fragment color with the destination by the blend
// constant: src * c + dst * (1 - c).
func ConstantBlend() *wgpu.BlendState {
	return &wgpu.BlendState{
		Color: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorConstant,
			DstFactor: wgpu.BlendFactorOneMinusConstant,
			Operation: wgpu.BlendOperationAdd,
		},
		Alpha: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorZero,
			Operation: wgpu.BlendOperationAdd,
		},
	}
}

func applyOptions(options []PrimitiveOption) primitiveConfig {
	var c primitiveConfig
	for _, opt := range options {
		opt(&c)
	}
	return c
}

func (c primitiveConfig) apply(b *drawable.Builder) {
	if c.alpha {
		b.SetBlendOption(ConstantBlend())
	}
}
