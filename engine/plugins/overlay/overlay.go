// Package overlay provides a plugin that draws lines of text in a panel
// anchored to a corner of the render target.
package overlay

import (
	_ "embed"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/Carmen-Shannon/oxy-draw/engine/draw_context"
	"github.com/Carmen-Shannon/oxy-draw/engine/drawable"
	"github.com/Carmen-Shannon/oxy-draw/engine/event"
	"github.com/Carmen-Shannon/oxy-draw/engine/gpu"
	"github.com/Carmen-Shannon/oxy-draw/engine/profiler"
	"github.com/Carmen-Shannon/oxy-draw/engine/render_loop"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/google/uuid"
)

//go:embed assets/overlay.wgsl
var overlaySource string

// TextureLabel is the debug label of the panel texture.
const TextureLabel = "Overlay Text"

// Bindings of the overlay resources in group 0.
const (
	RectBinding uint32 = iota
	TextureBinding
	SamplerBinding
)

// Plugin rasterizes its lines with a fixed 7x13 font into a texture and draws
// it as a quad. The texture is only re-uploaded when the text changes.
// Mouse button events on the panel are consumed.
type Plugin struct {
	render_loop.BasePlugin

	mu     *sync.Mutex
	id     string
	device gpu.Device
	cfg    overlayConfig

	texture *gpu.Texture
	sampler *wgpu.Sampler
	rect    *drawable.Uniform[gpu.Vec4]
	quad    drawable.Drawable

	profiler *profiler.Profiler
	fps      float64
	lines    []string
	dirty    bool

	viewWidth  uint32
	viewHeight uint32
	panel      image.Rectangle
}

var _ render_loop.Plugin = &Plugin{}

// New creates the panel texture and the quad drawable for dc.
//
// Parameters:
//   - dc: the draw context the overlay renders to
//   - options: overlay options
//
// Returns:
//   - *Plugin: the plugin, ready to register
//   - error: error if a GPU resource could not be created
func New(dc draw_context.DrawContext, options ...OverlayBuilderOption) (*Plugin, error) {
	cfg := defaultOverlayConfig()
	for _, opt := range options {
		opt(&cfg)
	}
	if cfg.width <= 0 || cfg.height <= 0 {
		return nil, fmt.Errorf("overlay: invalid panel size %dx%d", cfg.width, cfg.height)
	}

	p := &Plugin{
		mu:     &sync.Mutex{},
		id:     uuid.NewString(),
		device: dc.Device(),
		cfg:    cfg,
		dirty:  true,
	}
	if err := p.build(dc); err != nil {
		p.Release()
		return nil, err
	}
	p.layout(dc.Dimensions())
	p.upload()
	return p, nil
}

func (p *Plugin) build(dc draw_context.DrawContext) error {
	var err error
	p.texture, err = p.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: TextureLabel,
		Size: wgpu.Extent3D{
			Width:              uint32(p.cfg.width),
			Height:             uint32(p.cfg.height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return err
	}
	p.sampler, err = p.device.CreateSampler(common.SamplerStagingData{
		MagFilter: wgpu.FilterModeNearest,
		MinFilter: wgpu.FilterModeNearest,
	}.Descriptor("Overlay Sampler"))
	if err != nil {
		return err
	}
	p.rect, err = drawable.NewUniform(p.device, "Overlay Rect", gpu.Vec4{})
	if err != nil {
		return err
	}

	module, err := dc.CreateShaderModule("Overlay", overlaySource)
	if err != nil {
		return err
	}
	b := drawable.NewBuilder(dc, module, module, drawable.Direct{VertexCount: 6},
		drawable.WithLabel("Overlay"),
		drawable.WithCullMode(wgpu.CullModeNone),
		drawable.WithoutDepthTest(),
	)
	err = errors.Join(
		b.AddUniform(0, RectBinding, p.rect),
		b.AddBindingSlot(drawable.BindingSlot{Group: 0, Binding: TextureBinding, Resource: drawable.TextureBinding{View: p.texture.View}}),
		b.AddBindingSlot(drawable.BindingSlot{Group: 0, Binding: SamplerBinding, Resource: drawable.SamplerBinding{Sampler: p.sampler}}),
	)
	if err != nil {
		return err
	}
	b.SetBlendOption(&wgpu.BlendState{
		Color: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorSrcAlpha,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			Operation: wgpu.BlendOperationAdd,
		},
		Alpha: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			Operation: wgpu.BlendOperationAdd,
		},
	})
	p.quad, err = b.Build()
	return err
}

// ID returns the plugin's unique registry id.
func (p *Plugin) ID() string {
	return p.id
}

// SetLines replaces the custom text lines shown under the frame rate.
//
// Parameters:
//   - lines: the lines, top to bottom
func (p *Plugin) SetLines(lines ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if slices.Equal(p.lines, lines) {
		return
	}
	p.lines = slices.Clone(lines)
	p.dirty = true
}

// Text returns every line the panel currently shows.
func (p *Plugin) Text() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.text()
}

// Panel returns the panel bounds in target pixels.
func (p *Plugin) Panel() image.Rectangle {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.panel
}

// Release drops the quad, texture and sampler.
func (p *Plugin) Release() {
	if p.quad != nil {
		p.quad.Release()
		p.quad = nil
	}
	if p.rect != nil {
		p.rect.Release()
		p.rect = nil
	}
	if p.sampler != nil {
		p.device.Release(p.sampler)
		p.sampler = nil
	}
	p.texture.ReleaseWith(p.device)
	p.texture = nil
}

func (p *Plugin) OnMouseEvent(ev event.MouseEvent) event.State {
	if ev.Kind == event.MouseButton && ev.Pressed && p.hit(ev.X, ev.Y) {
		return event.Processed
	}
	return event.Ignored
}

func (p *Plugin) OnWindowEvent(ev event.WindowEvent) event.State {
	switch ev.Kind {
	case event.Resized:
		p.layout(ev.Width, ev.Height)
	case event.MouseInput:
		// Releases pass through so a drag started elsewhere can end over the panel.
		if ev.Mouse.Pressed && p.hit(ev.Mouse.X, ev.Mouse.Y) {
			return event.Processed
		}
	}
	return event.Ignored
}

func (p *Plugin) OnUpdate(dc draw_context.DrawContext, t render_loop.TimeInfo) {
	p.layout(dc.Dimensions())

	p.mu.Lock()
	if p.cfg.showFPS {
		if p.profiler == nil {
			p.profiler = profiler.NewProfiler(t.Now, profiler.WithLogger(slog.New(slog.DiscardHandler)))
		}
		if s, ok := p.profiler.Tick(t.Now); ok && s.FPS != p.fps {
			p.fps = s.FPS
			p.dirty = true
		}
	}
	p.mu.Unlock()

	p.upload()
}

func (p *Plugin) OnRender(_ draw_context.DrawContext, _ render_loop.TimeInfo, pass gpu.RenderPass) {
	p.quad.Render(pass)
}

func (p *Plugin) text() []string {
	if !p.cfg.showFPS {
		return slices.Clone(p.lines)
	}
	return append([]string{fmt.Sprintf("FPS: %.0f", p.fps)}, p.lines...)
}

func (p *Plugin) upload() {
	p.mu.Lock()
	if !p.dirty {
		p.mu.Unlock()
		return
	}
	p.dirty = false
	data := rasterize(p.text(), p.cfg.width, p.cfg.height, p.cfg.padding, p.cfg.foreground, p.cfg.background)
	p.mu.Unlock()

	p.device.Queue().WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  p.texture.Handle,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		data.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  data.Width * 4,
			RowsPerImage: data.Height,
		},
		&wgpu.Extent3D{
			Width:              data.Width,
			Height:             data.Height,
			DepthOrArrayLayers: 1,
		},
	)
}

// layout places the panel for a width x height target and writes its clip
// space rectangle.
func (p *Plugin) layout(width, height uint32) {
	if width == 0 || height == 0 {
		return
	}
	p.mu.Lock()
	if width == p.viewWidth && height == p.viewHeight {
		p.mu.Unlock()
		return
	}
	p.viewWidth, p.viewHeight = width, height

	w, h, m := p.cfg.width, p.cfg.height, p.cfg.padding
	x, y := m, m
	switch p.cfg.corner {
	case TopRight:
		x = int(width) - w - m
	case BottomLeft:
		y = int(height) - h - m
	case BottomRight:
		x, y = int(width)-w-m, int(height)-h-m
	}
	p.panel = image.Rect(x, y, x+w, y+h)
	rect := gpu.Vec4{
		2*float32(p.panel.Min.X)/float32(width) - 1,
		1 - 2*float32(p.panel.Min.Y)/float32(height),
		2*float32(p.panel.Max.X)/float32(width) - 1,
		1 - 2*float32(p.panel.Max.Y)/float32(height),
	}
	p.mu.Unlock()

	p.rect.Write(rect)
}

func (p *Plugin) hit(x, y float32) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return image.Pt(int(x), int(y)).In(p.panel)
}
