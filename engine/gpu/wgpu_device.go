package gpu

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-draw/engine/logger"
	"github.com/cogentcore/webgpu/wgpu"
)

type wgpuDeviceImpl struct {
	mu       *sync.Mutex
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpuQueueImpl
	surface  *wgpuSurfaceImpl
}

var _ Device = &wgpuDeviceImpl{}

// RequestDevice performs the one-time startup handshake: it creates the wgpu
// instance, the optional window surface, an adapter and a device. Failures are
// fatal for the caller and are wrapped in ErrNoAdapter or ErrNoDevice.
//
// Parameters:
//   - options: functional options to configure the handshake
//
// Returns:
//   - Device: the device wrapper
//   - error: error if no adapter or device could be acquired
func RequestDevice(options ...DeviceBuilderOption) (Device, error) {
	runtime.LockOSThread()

	cfg := &deviceConfig{
		label:         "Main Device",
		presentMode:   wgpu.PresentModeFifo,
		maxBindGroups: 4,
	}
	for _, opt := range options {
		opt(cfg)
	}

	d := &wgpuDeviceImpl{
		mu:       &sync.Mutex{},
		instance: wgpu.CreateInstance(nil),
	}

	var surface *wgpu.Surface
	if cfg.surfaceDescriptor != nil {
		surface = d.instance.CreateSurface(cfg.surfaceDescriptor)
	}

	a, err := d.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: cfg.forceFallbackAdapter,
		PowerPreference:      cfg.powerPreference,
		CompatibleSurface:    surface,
	})
	if err != nil {
		d.instance.Release()
		return nil, fmt.Errorf("%w: %v", ErrNoAdapter, err)
	}
	d.adapter = a

	limits := wgpu.DefaultLimits()
	limits.MaxBindGroups = cfg.maxBindGroups

	dev, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: cfg.label,
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: limits,
		},
	})
	if err != nil {
		a.Release()
		d.instance.Release()
		return nil, fmt.Errorf("%w: %v", ErrNoDevice, err)
	}
	d.device = dev
	d.queue = &wgpuQueueImpl{queue: dev.GetQueue()}

	if surface != nil {
		caps := surface.GetCapabilities(a)
		d.surface = &wgpuSurfaceImpl{
			surface:     surface,
			adapter:     a,
			device:      dev,
			format:      caps.Formats[0],
			presentMode: cfg.presentMode,
		}
	}

	logger.OrNop(cfg.log).Info("gpu device acquired", "label", cfg.label, "surface", surface != nil)
	return d, nil
}

func (d *wgpuDeviceImpl) CreateBuffer(desc *wgpu.BufferDescriptor) (*wgpu.Buffer, error) {
	return d.device.CreateBuffer(desc)
}

func (d *wgpuDeviceImpl) CreateShaderModule(desc *wgpu.ShaderModuleDescriptor) (*wgpu.ShaderModule, error) {
	return d.device.CreateShaderModule(desc)
}

func (d *wgpuDeviceImpl) CreateBindGroupLayout(desc *wgpu.BindGroupLayoutDescriptor) (*wgpu.BindGroupLayout, error) {
	return d.device.CreateBindGroupLayout(desc)
}

func (d *wgpuDeviceImpl) CreateBindGroup(desc *wgpu.BindGroupDescriptor) (*wgpu.BindGroup, error) {
	return d.device.CreateBindGroup(desc)
}

func (d *wgpuDeviceImpl) CreatePipelineLayout(desc *wgpu.PipelineLayoutDescriptor) (*wgpu.PipelineLayout, error) {
	return d.device.CreatePipelineLayout(desc)
}

func (d *wgpuDeviceImpl) CreateRenderPipeline(desc *wgpu.RenderPipelineDescriptor) (*wgpu.RenderPipeline, error) {
	return d.device.CreateRenderPipeline(desc)
}

func (d *wgpuDeviceImpl) CreateSampler(desc *wgpu.SamplerDescriptor) (*wgpu.Sampler, error) {
	return d.device.CreateSampler(desc)
}

func (d *wgpuDeviceImpl) CreateTexture(desc *wgpu.TextureDescriptor) (*Texture, error) {
	tex, err := d.device.CreateTexture(desc)
	if err != nil {
		return nil, err
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, err
	}
	return &Texture{
		Handle:      tex,
		View:        view,
		Label:       desc.Label,
		Width:       desc.Size.Width,
		Height:      desc.Size.Height,
		Format:      desc.Format,
		SampleCount: desc.SampleCount,
		Usage:       desc.Usage,
	}, nil
}

func (d *wgpuDeviceImpl) CreateCommandEncoder(label string) (CommandEncoder, error) {
	encoder, err := d.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return nil, err
	}
	return &wgpuEncoderImpl{encoder: encoder, queue: d.queue.queue}, nil
}

func (d *wgpuDeviceImpl) Queue() Queue {
	return d.queue
}

func (d *wgpuDeviceImpl) Surface() Surface {
	if d.surface == nil {
		return nil
	}
	return d.surface
}

func (d *wgpuDeviceImpl) Release(r Releasable) {
	if r == nil {
		return
	}
	r.Release()
}

func (d *wgpuDeviceImpl) Destroy() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.surface != nil {
		d.surface.Discard()
		d.surface.surface.Release()
		d.surface = nil
	}
	if d.queue != nil {
		d.queue.queue.Release()
		d.queue = nil
	}
	if d.device != nil {
		d.device.Release()
		d.device = nil
	}
	if d.adapter != nil {
		d.adapter.Release()
		d.adapter = nil
	}
	if d.instance != nil {
		d.instance.Release()
		d.instance = nil
	}
}

type wgpuQueueImpl struct {
	queue *wgpu.Queue
}

func (q *wgpuQueueImpl) WriteBuffer(buffer *wgpu.Buffer, offset uint64, data []byte) {
	q.queue.WriteBuffer(buffer, offset, data)
}

func (q *wgpuQueueImpl) WriteTexture(destination *wgpu.ImageCopyTexture, data []byte, layout *wgpu.TextureDataLayout, size *wgpu.Extent3D) {
	q.queue.WriteTexture(destination, data, layout, size)
}

type wgpuEncoderImpl struct {
	encoder *wgpu.CommandEncoder
	queue   *wgpu.Queue
}

func (e *wgpuEncoderImpl) BeginRenderPass(desc *wgpu.RenderPassDescriptor) RenderPass {
	return &wgpuRenderPassImpl{pass: e.encoder.BeginRenderPass(desc)}
}

func (e *wgpuEncoderImpl) Submit() error {
	defer e.encoder.Release()

	commandBuffer, err := e.encoder.Finish(nil)
	if err != nil {
		return err
	}
	e.queue.Submit(commandBuffer)
	commandBuffer.Release()
	return nil
}

type wgpuRenderPassImpl struct {
	pass *wgpu.RenderPassEncoder
}

func (p *wgpuRenderPassImpl) SetPipeline(pipeline *wgpu.RenderPipeline) {
	p.pass.SetPipeline(pipeline)
}

func (p *wgpuRenderPassImpl) SetBlendConstant(color wgpu.Color) {
	p.pass.SetBlendConstant(&color)
}

func (p *wgpuRenderPassImpl) SetBindGroup(group uint32, bindGroup *wgpu.BindGroup) {
	p.pass.SetBindGroup(group, bindGroup, nil)
}

func (p *wgpuRenderPassImpl) SetVertexBuffer(slot uint32, buffer *wgpu.Buffer) {
	p.pass.SetVertexBuffer(slot, buffer, 0, wgpu.WholeSize)
}

func (p *wgpuRenderPassImpl) SetIndexBuffer(buffer *wgpu.Buffer, format wgpu.IndexFormat) {
	p.pass.SetIndexBuffer(buffer, format, 0, wgpu.WholeSize)
}

func (p *wgpuRenderPassImpl) Draw(vertexCount, instanceCount uint32) {
	p.pass.Draw(vertexCount, instanceCount, 0, 0)
}

func (p *wgpuRenderPassImpl) DrawIndexed(indexCount, instanceCount uint32) {
	p.pass.DrawIndexed(indexCount, instanceCount, 0, 0, 0)
}

func (p *wgpuRenderPassImpl) End() {
	p.pass.End()
	p.pass.Release()
}

type wgpuSurfaceImpl struct {
	surface     *wgpu.Surface
	adapter     *wgpu.Adapter
	device      *wgpu.Device
	format      wgpu.TextureFormat
	presentMode wgpu.PresentMode

	frameTexture *wgpu.Texture
	frameView    *wgpu.TextureView
}

func (s *wgpuSurfaceImpl) Format() wgpu.TextureFormat {
	return s.format
}

func (s *wgpuSurfaceImpl) Configure(width, height uint32) {
	capabilities := s.surface.GetCapabilities(s.adapter)
	s.surface.Configure(s.adapter, s.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      s.format,
		Width:       width,
		Height:      height,
		PresentMode: s.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})
}

func (s *wgpuSurfaceImpl) AcquireView() (*wgpu.TextureView, error) {
	if s.frameTexture != nil {
		return nil, fmt.Errorf("previous frame surface not yet presented")
	}

	surfaceTexture, err := s.surface.GetCurrentTexture()
	if err != nil {
		return nil, err
	}
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return nil, err
	}
	s.frameTexture = surfaceTexture
	s.frameView = view
	return view, nil
}

func (s *wgpuSurfaceImpl) Present() {
	if s.frameTexture == nil {
		return
	}
	s.surface.Present()
	s.Discard()
}

func (s *wgpuSurfaceImpl) Discard() {
	if s.frameView != nil {
		s.frameView.Release()
		s.frameView = nil
	}
	if s.frameTexture != nil {
		s.frameTexture.Release()
		s.frameTexture = nil
	}
}
