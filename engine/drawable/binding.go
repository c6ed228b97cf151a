package drawable

import (
	"github.com/Carmen-Shannon/oxy-draw/engine/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// visibility is the stage set every bound resource is visible to.
const visibility = wgpu.ShaderStageVertex | wgpu.ShaderStageFragment

// Bindable is a GPU resource that can occupy a bind group slot.
type Bindable interface {
	// LayoutEntry describes the resource for a bind group layout.
	LayoutEntry(binding uint32) wgpu.BindGroupLayoutEntry

	// GroupEntry binds the resource in a bind group.
	GroupEntry(binding uint32) wgpu.BindGroupEntry
}

// sharedBindable is implemented by resources backed by a shared buffer that
// drawables keep a reference to.
type sharedBindable interface {
	sharedBuffer() *gpu.SharedBuffer
}

// BindingSlot places a resource at (Group, Binding).
type BindingSlot struct {
	Group    uint32
	Binding  uint32
	Resource Bindable
}

// TextureBinding binds a sampled 2D float texture.
type TextureBinding struct {
	View *wgpu.TextureView
}

func (t TextureBinding) LayoutEntry(binding uint32) wgpu.BindGroupLayoutEntry {
	return wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: visibility,
		Texture: wgpu.TextureBindingLayout{
			SampleType:    wgpu.TextureSampleTypeFloat,
			ViewDimension: wgpu.TextureViewDimension2D,
		},
	}
}

func (t TextureBinding) GroupEntry(binding uint32) wgpu.BindGroupEntry {
	return wgpu.BindGroupEntry{Binding: binding, TextureView: t.View}
}

// SamplerBinding binds a filtering sampler.
type SamplerBinding struct {
	Sampler *wgpu.Sampler
}

func (s SamplerBinding) LayoutEntry(binding uint32) wgpu.BindGroupLayoutEntry {
	return wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: visibility,
		Sampler: wgpu.SamplerBindingLayout{
			Type: wgpu.SamplerBindingTypeFiltering,
		},
	}
}

func (s SamplerBinding) GroupEntry(binding uint32) wgpu.BindGroupEntry {
	return wgpu.BindGroupEntry{Binding: binding, Sampler: s.Sampler}
}
