// Package draw_context owns the render target of a frame: the window
// surface or an offscreen texture, plus the depth and multisample textures
// that go with it.
package draw_context

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-draw/engine/gpu"
	"github.com/Carmen-Shannon/oxy-draw/engine/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

const (
	// DefaultTextureSize is the edge length of an offscreen target created with a zero size.
	DefaultTextureSize = 500

	// DepthFormat is the depth attachment format of every draw context.
	DepthFormat = wgpu.TextureFormatDepth32Float

	TargetTextureLabel = "Draw Context Target"
	DepthTextureLabel  = "Draw Context Depth"
	MSAATextureLabel   = "Draw Context MSAA"
)

var (
	// ErrSurfaceUnavailable wraps a failure to acquire the next surface image.
	// The frame can be skipped and retried.
	ErrSurfaceUnavailable = errors.New("surface unavailable")
	// ErrNoSurface is returned when a surface context is requested from an offscreen device.
	ErrNoSurface = errors.New("device has no surface")
	// ErrReleased is returned by RenderScene after Release.
	ErrReleased = errors.New("draw context released")
)

// TargetKind is the kind of image a draw context renders into.
type TargetKind int

const (
	TargetSurface TargetKind = iota
	TargetTexture
)

// DrawContext is the destination of a frame.
type DrawContext interface {
	// Device returns the device all resources for this context are created on.
	Device() gpu.Device

	// SurfaceFormat returns the color format of the target.
	SurfaceFormat() wgpu.TextureFormat

	// DepthFormat returns the format of the depth attachment.
	DepthFormat() wgpu.TextureFormat

	// MultisampleCount returns the number of samples per pixel.
	MultisampleCount() uint32

	// Dimensions returns the target size in pixels.
	Dimensions() (width, height uint32)

	// SurfaceRatio returns width / height.
	SurfaceRatio() float32

	// Target returns whether this context renders to a surface or a texture.
	Target() TargetKind

	// SetClearColor changes the clear color. nil loads the previous contents.
	SetClearColor(color *wgpu.Color)

	// Resize recreates the target, depth and multisample textures. Zero
	// dimensions are ignored. If the new textures cannot be created the
	// context keeps its previous size and attachments.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	Resize(width, height uint32)

	// RenderScene records one frame. fn receives the open render pass; the
	// pass is ended, submitted and, for a surface, presented afterwards.
	//
	// Parameters:
	//   - fn: records draws into the pass
	//
	// Returns:
	//   - error: ErrSurfaceUnavailable (wrapped) if the surface image could not be acquired, or a submission error
	RenderScene(fn func(pass gpu.RenderPass)) error

	// CreateShaderModule pre-processes, validates and compiles WGSL source.
	//
	// Parameters:
	//   - label: debug label
	//   - source: WGSL source, optionally with include annotations
	//   - options: shader options
	//
	// Returns:
	//   - *shader.Module: the compiled module
	//   - error: error if the source is invalid
	CreateShaderModule(label, source string, options ...shader.ShaderBuilderOption) (*shader.Module, error)

	// Release frees the textures owned by the context.
	Release()
}

type drawContext struct {
	mu *sync.Mutex

	device  gpu.Device
	surface gpu.Surface
	kind    TargetKind

	width       uint32
	height      uint32
	format      wgpu.TextureFormat
	sampleCount uint32
	clearColor  *wgpu.Color
	log         *slog.Logger

	target *gpu.Texture
	depth  *gpu.Texture
	msaa   *gpu.Texture
}

var _ DrawContext = &drawContext{}

// NewSurfaceContext creates a draw context rendering into the device's window surface.
//
// Parameters:
//   - device: a device created with a surface
//   - width: the framebuffer width in pixels
//   - height: the framebuffer height in pixels
//   - options: draw context options
//
// Returns:
//   - DrawContext: the draw context
//   - error: ErrNoSurface if the device is offscreen, or a texture creation error
func NewSurfaceContext(device gpu.Device, width, height uint32, options ...DrawContextBuilderOption) (DrawContext, error) {
	surface := device.Surface()
	if surface == nil {
		return nil, ErrNoSurface
	}
	cfg := defaultDrawContextConfig()
	for _, opt := range options {
		opt(&cfg)
	}

	dc := &drawContext{
		mu:          &sync.Mutex{},
		device:      device,
		surface:     surface,
		kind:        TargetSurface,
		width:       max(width, 1),
		height:      max(height, 1),
		format:      surface.Format(),
		sampleCount: cfg.sampleCount,
		clearColor:  cfg.clearColor,
		log:         cfg.log,
	}
	surface.Configure(dc.width, dc.height)
	if err := dc.createTextures(); err != nil {
		return nil, err
	}
	dc.log.Info("surface draw context created", "width", dc.width, "height", dc.height, "format", dc.format, "samples", dc.sampleCount)
	return dc, nil
}

// NewTextureContext creates a draw context rendering into an offscreen texture.
//
// Parameters:
//   - device: any device
//   - width: the texture width in pixels, 0 for DefaultTextureSize
//   - height: the texture height in pixels, 0 for DefaultTextureSize
//   - options: draw context options
//
// Returns:
//   - DrawContext: the draw context
//   - error: error if a texture could not be created
func NewTextureContext(device gpu.Device, width, height uint32, options ...DrawContextBuilderOption) (DrawContext, error) {
	cfg := defaultDrawContextConfig()
	for _, opt := range options {
		opt(&cfg)
	}
	if width == 0 {
		width = DefaultTextureSize
	}
	if height == 0 {
		height = DefaultTextureSize
	}

	dc := &drawContext{
		mu:          &sync.Mutex{},
		device:      device,
		kind:        TargetTexture,
		width:       width,
		height:      height,
		format:      cfg.textureFormat,
		sampleCount: cfg.sampleCount,
		clearColor:  cfg.clearColor,
		log:         cfg.log,
	}
	if err := dc.createTextures(); err != nil {
		return nil, err
	}
	dc.log.Info("texture draw context created", "width", dc.width, "height", dc.height, "format", dc.format, "samples", dc.sampleCount)
	return dc, nil
}

func (dc *drawContext) Device() gpu.Device {
	return dc.device
}

func (dc *drawContext) SurfaceFormat() wgpu.TextureFormat {
	return dc.format
}

func (dc *drawContext) DepthFormat() wgpu.TextureFormat {
	return DepthFormat
}

func (dc *drawContext) MultisampleCount() uint32 {
	return dc.sampleCount
}

func (dc *drawContext) Dimensions() (uint32, uint32) {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	return dc.width, dc.height
}

func (dc *drawContext) SurfaceRatio() float32 {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	return float32(dc.width) / float32(dc.height)
}

func (dc *drawContext) Target() TargetKind {
	return dc.kind
}

func (dc *drawContext) SetClearColor(color *wgpu.Color) {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	if color == nil {
		dc.clearColor = nil
		return
	}
	c := *color
	dc.clearColor = &c
}

func (dc *drawContext) Resize(width, height uint32) {
	if width == 0 || height == 0 {
		return
	}
	dc.mu.Lock()
	defer dc.mu.Unlock()
	if width == dc.width && height == dc.height {
		return
	}

	next, err := dc.allocate(width, height)
	if err != nil {
		dc.log.Error("draw context resize failed", "width", width, "height", height, "error", err)
		return
	}
	dc.releaseTextures()
	dc.width, dc.height = width, height
	dc.target, dc.depth, dc.msaa = next.target, next.depth, next.msaa
	if dc.surface != nil {
		dc.surface.Configure(width, height)
	}
	dc.log.Debug("draw context resized", "width", width, "height", height)
}

func (dc *drawContext) RenderScene(fn func(pass gpu.RenderPass)) error {
	dc.mu.Lock()
	desc, err := dc.beginFrame()
	dc.mu.Unlock()
	if err != nil {
		return err
	}

	encoder, err := dc.device.CreateCommandEncoder("Draw Context Encoder")
	if err != nil {
		dc.endFrame(false)
		return fmt.Errorf("failed to create command encoder: %w", err)
	}

	pass := encoder.BeginRenderPass(desc)
	fn(pass)
	pass.End()

	if err := encoder.Submit(); err != nil {
		dc.endFrame(false)
		return fmt.Errorf("failed to submit frame: %w", err)
	}
	dc.endFrame(true)
	return nil
}

func (dc *drawContext) CreateShaderModule(label, source string, options ...shader.ShaderBuilderOption) (*shader.Module, error) {
	return shader.Load(dc.device, label, source, options...)
}

func (dc *drawContext) Release() {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	dc.releaseTextures()
}

// beginFrame acquires the target view and builds the pass descriptor. Caller holds mu.
func (dc *drawContext) beginFrame() (*wgpu.RenderPassDescriptor, error) {
	if dc.depth == nil {
		return nil, ErrReleased
	}
	var view *wgpu.TextureView
	if dc.surface != nil {
		v, err := dc.surface.AcquireView()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSurfaceUnavailable, err)
		}
		view = v
	} else {
		view = dc.target.View
	}

	color := wgpu.RenderPassColorAttachment{
		View:    view,
		LoadOp:  wgpu.LoadOpLoad,
		StoreOp: wgpu.StoreOpStore,
	}
	if dc.clearColor != nil {
		color.LoadOp = wgpu.LoadOpClear
		color.ClearValue = *dc.clearColor
	}
	if dc.msaa != nil {
		color.View = dc.msaa.View
		color.ResolveTarget = view
		if dc.clearColor != nil {
			color.StoreOp = wgpu.StoreOpDiscard
		}
	}

	return &wgpu.RenderPassDescriptor{
		Label:            "Draw Context Pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{color},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            dc.depth.View,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}, nil
}

func (dc *drawContext) endFrame(present bool) {
	if dc.surface == nil {
		return
	}
	if present {
		dc.surface.Present()
		return
	}
	dc.surface.Discard()
}

type attachments struct {
	target *gpu.Texture
	depth  *gpu.Texture
	msaa   *gpu.Texture
}

func (a attachments) release(device gpu.Device) {
	for _, t := range []*gpu.Texture{a.target, a.depth, a.msaa} {
		t.ReleaseWith(device)
	}
}

// createTextures allocates the attachments for the current size into a
// context that has none yet.
func (dc *drawContext) createTextures() error {
	a, err := dc.allocate(dc.width, dc.height)
	if err != nil {
		return err
	}
	dc.target, dc.depth, dc.msaa = a.target, a.depth, a.msaa
	return nil
}

// allocate creates a full set of attachments at width x height. On error
// nothing created so far is kept.
func (dc *drawContext) allocate(width, height uint32) (attachments, error) {
	var a attachments
	var err error
	if dc.kind == TargetTexture {
		a.target, err = dc.createTexture(TargetTextureLabel, dc.format, 1, width, height, wgpu.TextureUsageCopySrc|wgpu.TextureUsageRenderAttachment)
		if err != nil {
			return attachments{}, err
		}
	}
	a.depth, err = dc.createTexture(DepthTextureLabel, DepthFormat, dc.sampleCount, width, height, wgpu.TextureUsageRenderAttachment)
	if err != nil {
		a.release(dc.device)
		return attachments{}, err
	}
	if dc.sampleCount > 1 {
		a.msaa, err = dc.createTexture(MSAATextureLabel, dc.format, dc.sampleCount, width, height, wgpu.TextureUsageRenderAttachment)
		if err != nil {
			a.release(dc.device)
			return attachments{}, err
		}
	}
	return a, nil
}

func (dc *drawContext) createTexture(label string, format wgpu.TextureFormat, samples, width, height uint32, usage wgpu.TextureUsage) (*gpu.Texture, error) {
	t, err := dc.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: label,
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   samples,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         usage,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", label, err)
	}
	return t, nil
}

func (dc *drawContext) releaseTextures() {
	attachments{target: dc.target, depth: dc.depth, msaa: dc.msaa}.release(dc.device)
	dc.target, dc.depth, dc.msaa = nil, nil, nil
}
