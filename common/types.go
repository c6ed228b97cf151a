// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import "github.com/cogentcore/webgpu/wgpu"

// TextureStagingData holds RGBA pixel data for a texture binding pending GPU upload.
type TextureStagingData struct {
	// Pixels is the byte slice representing the actual pixel data for the texture. It should be in RGBA format, with 4 bytes per pixel.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
}

// SamplerStagingData holds the configuration for a sampler binding pending GPU creation.
// Zero-valued fields fall back to linear filtering with clamp-to-edge addressing.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW specify the addressing mode for texture coordinates outside the [0, 1] range.
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// LodMinClamp and LodMaxClamp specify the minimum and maximum level of detail.
	LodMinClamp, LodMaxClamp float32
}

// Descriptor expands the staging data into a sampler descriptor with defaults applied.
//
// Parameters:
//   - label: debug label for the sampler
//
// Returns:
//   - *wgpu.SamplerDescriptor: the descriptor ready for device.CreateSampler
func (s SamplerStagingData) Descriptor(label string) *wgpu.SamplerDescriptor {
	return &wgpu.SamplerDescriptor{
		Label:         label,
		AddressModeU:  Coalesce(s.AddressModeU, wgpu.AddressModeClampToEdge),
		AddressModeV:  Coalesce(s.AddressModeV, wgpu.AddressModeClampToEdge),
		AddressModeW:  Coalesce(s.AddressModeW, wgpu.AddressModeClampToEdge),
		MagFilter:     Coalesce(s.MagFilter, wgpu.FilterModeLinear),
		MinFilter:     Coalesce(s.MinFilter, wgpu.FilterModeLinear),
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMinClamp:   s.LodMinClamp,
		LodMaxClamp:   Coalesce(s.LodMaxClamp, 32),
		MaxAnisotropy: 1,
	}
}
