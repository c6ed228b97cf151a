// Package gpu wraps the wgpu device, queue, surface and command recording
// behind small interfaces so the rest of the engine can record commands
// against either a real adapter or a recording fake.
package gpu

import (
	"errors"

	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrNoAdapter is returned when no compatible GPU adapter could be acquired.
	ErrNoAdapter = errors.New("gpu: no compatible adapter")
	// ErrNoDevice is returned when the adapter refused to create a device.
	ErrNoDevice = errors.New("gpu: device request failed")
)

// Releasable is any GPU handle that owns native resources.
type Releasable interface {
	Release()
}

// Texture bundles a texture handle with its default view and the descriptor
// values callers need when recreating it.
type Texture struct {
	Handle      *wgpu.Texture
	View        *wgpu.TextureView
	Label       string
	Width       uint32
	Height      uint32
	Format      wgpu.TextureFormat
	SampleCount uint32
	Usage       wgpu.TextureUsage
}

// Device creates GPU resources and owns the submission queue.
type Device interface {
	// CreateBuffer allocates a GPU buffer.
	//
	// Parameters:
	//   - desc: the buffer descriptor
	//
	// Returns:
	//   - *wgpu.Buffer: the created buffer
	//   - error: error if allocation fails
	CreateBuffer(desc *wgpu.BufferDescriptor) (*wgpu.Buffer, error)

	// CreateShaderModule compiles WGSL source into a shader module.
	//
	// Parameters:
	//   - desc: the shader module descriptor
	//
	// Returns:
	//   - *wgpu.ShaderModule: the compiled module
	//   - error: error if compilation fails
	CreateShaderModule(desc *wgpu.ShaderModuleDescriptor) (*wgpu.ShaderModule, error)

	CreateBindGroupLayout(desc *wgpu.BindGroupLayoutDescriptor) (*wgpu.BindGroupLayout, error)
	CreateBindGroup(desc *wgpu.BindGroupDescriptor) (*wgpu.BindGroup, error)
	CreatePipelineLayout(desc *wgpu.PipelineLayoutDescriptor) (*wgpu.PipelineLayout, error)
	CreateRenderPipeline(desc *wgpu.RenderPipelineDescriptor) (*wgpu.RenderPipeline, error)
	CreateSampler(desc *wgpu.SamplerDescriptor) (*wgpu.Sampler, error)

	// CreateTexture allocates a texture together with its default view.
	//
	// Parameters:
	//   - desc: the texture descriptor
	//
	// Returns:
	//   - *Texture: the texture and its view
	//   - error: error if allocation fails
	CreateTexture(desc *wgpu.TextureDescriptor) (*Texture, error)

	// CreateCommandEncoder starts recording a new command buffer.
	//
	// Parameters:
	//   - label: debug label for the encoder
	//
	// Returns:
	//   - CommandEncoder: the encoder
	//   - error: error if the encoder could not be created
	CreateCommandEncoder(label string) (CommandEncoder, error)

	// Queue returns the device submission queue.
	Queue() Queue

	// Surface returns the window surface, or nil when rendering offscreen.
	Surface() Surface

	// Release frees a handle created by this device.
	Release(r Releasable)

	// Destroy releases the device and everything created at startup.
	Destroy()
}

// Queue uploads host data to GPU resources. Writes are ordered with respect
// to later submissions on the same queue.
type Queue interface {
	WriteBuffer(buffer *wgpu.Buffer, offset uint64, data []byte)
	WriteTexture(destination *wgpu.ImageCopyTexture, data []byte, layout *wgpu.TextureDataLayout, size *wgpu.Extent3D)
}

// CommandEncoder records a single command buffer.
type CommandEncoder interface {
	// BeginRenderPass opens a render pass on this encoder.
	BeginRenderPass(desc *wgpu.RenderPassDescriptor) RenderPass

	// Submit finishes recording and submits the command buffer to the queue.
	// The encoder must not be used afterwards.
	Submit() error
}

// RenderPass records draw commands into an open render pass.
type RenderPass interface {
	SetPipeline(pipeline *wgpu.RenderPipeline)
	SetBlendConstant(color wgpu.Color)
	SetBindGroup(group uint32, bindGroup *wgpu.BindGroup)
	SetVertexBuffer(slot uint32, buffer *wgpu.Buffer)
	SetIndexBuffer(buffer *wgpu.Buffer, format wgpu.IndexFormat)
	Draw(vertexCount, instanceCount uint32)
	DrawIndexed(indexCount, instanceCount uint32)
	End()
}

// Surface is a window swapchain.
type Surface interface {
	// Format returns the preferred color format of the surface.
	Format() wgpu.TextureFormat

	// Configure (re)creates the swapchain at the given size.
	Configure(width, height uint32)

	// AcquireView returns a view of the next swapchain image.
	//
	// Returns:
	//   - *wgpu.TextureView: the view to render into
	//   - error: error if the surface is lost or outdated
	AcquireView() (*wgpu.TextureView, error)

	// Present shows the acquired image and releases it.
	Present()

	// Discard releases the acquired image without presenting it.
	Discard()
}

// ReleaseWith frees the view and the texture through device.
func (t *Texture) ReleaseWith(device Device) {
	if t == nil {
		return
	}
	if t.View != nil {
		device.Release(t.View)
	}
	if t.Handle != nil {
		device.Release(t.Handle)
	}
}
