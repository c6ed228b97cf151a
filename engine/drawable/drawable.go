package drawable

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/Carmen-Shannon/oxy-draw/engine/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// Drawable is a built pipeline plus everything it draws with.
type Drawable interface {
	// ID returns the unique identifier assigned at build time.
	ID() string

	// Label returns the debug label.
	Label() string

	// Render records the draw into pass: pipeline, blend constant, bind
	// groups in ascending order, vertex buffers by slot, then the draw call.
	//
	// Parameters:
	//   - pass: the open render pass
	Render(pass gpu.RenderPass)

	// SetBlendColor sets the blend constant used when the pipeline blends
	// with constant factors.
	SetBlendColor(color wgpu.Color)

	// SetBlendColorOpacity sets the blend constant to (v, v, v, 1) with v
	// clamped to [0, 1].
	SetBlendColorOpacity(v float64)

	// BlendColor returns the current blend constant.
	BlendColor() wgpu.Color

	// InstanceCount returns the number of instances drawn.
	InstanceCount() uint32

	// Release frees the drawable's GPU objects and drops its references to
	// shared buffers.
	Release()
}

type drawable struct {
	mu *sync.Mutex

	id     string
	label  string
	device gpu.Device

	pipeline         *wgpu.RenderPipeline
	pipelineLayout   *wgpu.PipelineLayout
	bindGroupLayouts []*wgpu.BindGroupLayout
	bindGroups       []*wgpu.BindGroup
	vertexBuffers    []*gpu.SharedBuffer
	indexBuffer      *gpu.SharedBuffer
	boundBuffers     []*gpu.SharedBuffer

	mode          DrawMode
	instanceCount uint32
	blendColor    wgpu.Color
	released      bool
}

var _ Drawable = &drawable{}

func (d *drawable) ID() string {
	return d.id
}

func (d *drawable) Label() string {
	return d.label
}

func (d *drawable) Render(pass gpu.RenderPass) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.released {
		return
	}

	pass.SetPipeline(d.pipeline)
	pass.SetBlendConstant(d.blendColor)
	for i, bg := range d.bindGroups {
		pass.SetBindGroup(uint32(i), bg)
	}
	for i, vb := range d.vertexBuffers {
		pass.SetVertexBuffer(uint32(i), vb.Buffer())
	}

	switch m := d.mode.(type) {
	case Direct:
		pass.Draw(m.VertexCount, d.instanceCount)
	case Indexed:
		pass.SetIndexBuffer(d.indexBuffer.Buffer(), m.Format)
		pass.DrawIndexed(m.IndexCount, d.instanceCount)
	}
}

func (d *drawable) SetBlendColor(color wgpu.Color) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.blendColor = color
}

func (d *drawable) SetBlendColorOpacity(v float64) {
	v = common.Clamp(v, 0, 1)
	d.SetBlendColor(wgpu.Color{R: v, G: v, B: v, A: 1})
}

func (d *drawable) BlendColor() wgpu.Color {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.blendColor
}

func (d *drawable) InstanceCount() uint32 {
	return d.instanceCount
}

func (d *drawable) Release() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.released {
		return
	}
	d.released = true

	if d.pipeline != nil {
		d.device.Release(d.pipeline)
	}
	if d.pipelineLayout != nil {
		d.device.Release(d.pipelineLayout)
	}
	for _, bg := range d.bindGroups {
		d.device.Release(bg)
	}
	for _, l := range d.bindGroupLayouts {
		d.device.Release(l)
	}
	for _, b := range d.vertexBuffers {
		b.Release()
	}
	if d.indexBuffer != nil {
		d.indexBuffer.Release()
	}
	for _, b := range d.boundBuffers {
		b.Release()
	}
	d.pipeline, d.pipelineLayout = nil, nil
	d.bindGroups, d.bindGroupLayouts = nil, nil
	d.vertexBuffers, d.boundBuffers, d.indexBuffer = nil, nil, nil
}
