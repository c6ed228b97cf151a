// Package gputest provides recording fakes of the gpu interfaces so that
// builders, drawables and the draw context can be tested without a GPU.
package gputest

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-draw/engine/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// WriteCall records a single Queue.WriteBuffer call.
type WriteCall struct {
	Buffer *wgpu.Buffer
	Offset uint64
	Data   []byte
}

// Queue records uploads.
type Queue struct {
	mu            sync.Mutex
	Writes        []WriteCall
	TextureWrites int
}

var _ gpu.Queue = &Queue{}

func (q *Queue) WriteBuffer(buffer *wgpu.Buffer, offset uint64, data []byte) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.Writes = append(q.Writes, WriteCall{Buffer: buffer, Offset: offset, Data: append([]byte(nil), data...)})
}

func (q *Queue) WriteTexture(_ *wgpu.ImageCopyTexture, _ []byte, _ *wgpu.TextureDataLayout, _ *wgpu.Extent3D) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.TextureWrites++
}

// WritesTo returns the writes that targeted buffer, in order.
func (q *Queue) WritesTo(buffer *wgpu.Buffer) []WriteCall {
	q.mu.Lock()
	defer q.mu.Unlock()
	var out []WriteCall
	for _, w := range q.Writes {
		if w.Buffer == buffer {
			out = append(out, w)
		}
	}
	return out
}

// Reset forgets all recorded writes.
func (q *Queue) Reset() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.Writes = nil
	q.TextureWrites = 0
}

// Device records resource creation. Every handle it returns is a distinct
// zero-valued wgpu object that must never reach the native library.
type Device struct {
	mu sync.Mutex

	queue   *Queue
	surface *Surface

	Buffers          []wgpu.BufferDescriptor
	BufferHandles    []*wgpu.Buffer
	Textures         []*gpu.Texture
	BindGroupLayouts []wgpu.BindGroupLayoutDescriptor
	BindGroups       []wgpu.BindGroupDescriptor
	PipelineLayouts  int
	Pipelines        []wgpu.RenderPipelineDescriptor
	ShaderModules    []wgpu.ShaderModuleDescriptor
	Samplers         int
	Encoders         []*Encoder
	Released         []gpu.Releasable
	Destroyed        bool

	// FailPipeline makes CreateRenderPipeline return an error.
	FailPipeline bool
	// FailTextureLabel makes CreateTexture return an error for textures with this label.
	FailTextureLabel string
}

var _ gpu.Device = &Device{}

// NewDevice returns an offscreen fake device.
func NewDevice() *Device {
	return &Device{queue: &Queue{}}
}

// NewSurfaceDevice returns a fake device with a window surface of the given format.
func NewSurfaceDevice(format wgpu.TextureFormat) *Device {
	d := NewDevice()
	d.surface = &Surface{format: format}
	return d
}

// FakeQueue returns the recording queue.
func (d *Device) FakeQueue() *Queue { return d.queue }

// FakeSurface returns the recording surface, or nil when offscreen.
func (d *Device) FakeSurface() *Surface { return d.surface }

func (d *Device) CreateBuffer(desc *wgpu.BufferDescriptor) (*wgpu.Buffer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	b := &wgpu.Buffer{}
	d.Buffers = append(d.Buffers, *desc)
	d.BufferHandles = append(d.BufferHandles, b)
	return b, nil
}

func (d *Device) CreateShaderModule(desc *wgpu.ShaderModuleDescriptor) (*wgpu.ShaderModule, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ShaderModules = append(d.ShaderModules, *desc)
	return &wgpu.ShaderModule{}, nil
}

func (d *Device) CreateBindGroupLayout(desc *wgpu.BindGroupLayoutDescriptor) (*wgpu.BindGroupLayout, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.BindGroupLayouts = append(d.BindGroupLayouts, *desc)
	return &wgpu.BindGroupLayout{}, nil
}

func (d *Device) CreateBindGroup(desc *wgpu.BindGroupDescriptor) (*wgpu.BindGroup, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.BindGroups = append(d.BindGroups, *desc)
	return &wgpu.BindGroup{}, nil
}

func (d *Device) CreatePipelineLayout(_ *wgpu.PipelineLayoutDescriptor) (*wgpu.PipelineLayout, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.PipelineLayouts++
	return &wgpu.PipelineLayout{}, nil
}

func (d *Device) CreateRenderPipeline(desc *wgpu.RenderPipelineDescriptor) (*wgpu.RenderPipeline, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.FailPipeline {
		return nil, errors.New("gputest: pipeline creation failed")
	}
	d.Pipelines = append(d.Pipelines, *desc)
	return &wgpu.RenderPipeline{}, nil
}

func (d *Device) CreateSampler(_ *wgpu.SamplerDescriptor) (*wgpu.Sampler, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Samplers++
	return &wgpu.Sampler{}, nil
}

func (d *Device) CreateTexture(desc *wgpu.TextureDescriptor) (*gpu.Texture, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.FailTextureLabel != "" && desc.Label == d.FailTextureLabel {
		return nil, fmt.Errorf("gputest: texture %q creation failed", desc.Label)
	}
	t := &gpu.Texture{
		Handle:      &wgpu.Texture{},
		View:        &wgpu.TextureView{},
		Label:       desc.Label,
		Width:       desc.Size.Width,
		Height:      desc.Size.Height,
		Format:      desc.Format,
		SampleCount: desc.SampleCount,
		Usage:       desc.Usage,
	}
	d.Textures = append(d.Textures, t)
	return t, nil
}

func (d *Device) CreateCommandEncoder(label string) (gpu.CommandEncoder, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	e := &Encoder{Label: label}
	d.Encoders = append(d.Encoders, e)
	return e, nil
}

func (d *Device) Queue() gpu.Queue { return d.queue }

func (d *Device) Surface() gpu.Surface {
	if d.surface == nil {
		return nil
	}
	return d.surface
}

func (d *Device) Release(r gpu.Releasable) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Released = append(d.Released, r)
}

func (d *Device) Destroy() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Destroyed = true
}

// TexturesLabeled returns the textures created with label, oldest first.
func (d *Device) TexturesLabeled(label string) []*gpu.Texture {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []*gpu.Texture
	for _, t := range d.Textures {
		if t.Label == label {
			out = append(out, t)
		}
	}
	return out
}

// IsReleased reports whether r was passed to Release.
func (d *Device) IsReleased(r gpu.Releasable) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, x := range d.Released {
		if x == r {
			return true
		}
	}
	return false
}

// LastEncoder returns the most recently created encoder, or nil.
func (d *Device) LastEncoder() *Encoder {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.Encoders) == 0 {
		return nil
	}
	return d.Encoders[len(d.Encoders)-1]
}

// Encoder records render passes.
type Encoder struct {
	Label       string
	Descriptors []wgpu.RenderPassDescriptor
	Passes      []*Pass
	Submitted   bool
}

var _ gpu.CommandEncoder = &Encoder{}

func (e *Encoder) BeginRenderPass(desc *wgpu.RenderPassDescriptor) gpu.RenderPass {
	e.Descriptors = append(e.Descriptors, *desc)
	p := &Pass{}
	e.Passes = append(e.Passes, p)
	return p
}

func (e *Encoder) Submit() error {
	if e.Submitted {
		return errors.New("gputest: encoder submitted twice")
	}
	e.Submitted = true
	return nil
}

// Pass records commands as readable strings, in order.
type Pass struct {
	Ops           []string
	Pipeline      *wgpu.RenderPipeline
	BlendConstant wgpu.Color
	BindGroups    map[uint32]*wgpu.BindGroup
	VertexBuffers map[uint32]*wgpu.Buffer
	Ended         bool
}

var _ gpu.RenderPass = &Pass{}

func (p *Pass) SetPipeline(pipeline *wgpu.RenderPipeline) {
	p.Pipeline = pipeline
	p.Ops = append(p.Ops, "SetPipeline")
}

func (p *Pass) SetBlendConstant(color wgpu.Color) {
	p.BlendConstant = color
	p.Ops = append(p.Ops, "SetBlendConstant")
}

func (p *Pass) SetBindGroup(group uint32, bindGroup *wgpu.BindGroup) {
	if p.BindGroups == nil {
		p.BindGroups = map[uint32]*wgpu.BindGroup{}
	}
	p.BindGroups[group] = bindGroup
	p.Ops = append(p.Ops, fmt.Sprintf("SetBindGroup(%d)", group))
}

func (p *Pass) SetVertexBuffer(slot uint32, buffer *wgpu.Buffer) {
	if p.VertexBuffers == nil {
		p.VertexBuffers = map[uint32]*wgpu.Buffer{}
	}
	p.VertexBuffers[slot] = buffer
	p.Ops = append(p.Ops, fmt.Sprintf("SetVertexBuffer(%d)", slot))
}

func (p *Pass) SetIndexBuffer(_ *wgpu.Buffer, format wgpu.IndexFormat) {
	name := "uint32"
	if format == wgpu.IndexFormatUint16 {
		name = "uint16"
	}
	p.Ops = append(p.Ops, fmt.Sprintf("SetIndexBuffer(%s)", name))
}

func (p *Pass) Draw(vertexCount, instanceCount uint32) {
	p.Ops = append(p.Ops, fmt.Sprintf("Draw(%d,%d)", vertexCount, instanceCount))
}

func (p *Pass) DrawIndexed(indexCount, instanceCount uint32) {
	p.Ops = append(p.Ops, fmt.Sprintf("DrawIndexed(%d,%d)", indexCount, instanceCount))
}

func (p *Pass) End() {
	p.Ended = true
	p.Ops = append(p.Ops, "End")
}

// Surface records swapchain activity.
type Surface struct {
	format     wgpu.TextureFormat
	Configured [][2]uint32
	Acquired   int
	Presented  int
	Discarded  int

	// AcquireErr is returned by the next AcquireView calls while set.
	AcquireErr error
}

var _ gpu.Surface = &Surface{}

func (s *Surface) Format() wgpu.TextureFormat { return s.format }

func (s *Surface) Configure(width, height uint32) {
	s.Configured = append(s.Configured, [2]uint32{width, height})
}

func (s *Surface) AcquireView() (*wgpu.TextureView, error) {
	if s.AcquireErr != nil {
		return nil, s.AcquireErr
	}
	s.Acquired++
	return &wgpu.TextureView{}, nil
}

func (s *Surface) Present() { s.Presented++ }

func (s *Surface) Discard() { s.Discarded++ }
