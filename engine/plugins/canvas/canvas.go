// Package canvas provides a plugin that runs a fragment shader over the whole
// render target, fed with time, resolution, mouse and date uniforms.
package canvas

import (
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/Carmen-Shannon/oxy-draw/engine/draw_context"
	"github.com/Carmen-Shannon/oxy-draw/engine/drawable"
	"github.com/Carmen-Shannon/oxy-draw/engine/event"
	"github.com/Carmen-Shannon/oxy-draw/engine/gpu"
	"github.com/Carmen-Shannon/oxy-draw/engine/render_loop"
	"github.com/Carmen-Shannon/oxy-draw/engine/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/google/uuid"
)

//go:embed assets/canvas_vertex.wgsl
var vertexSource string

// Bindings of the canvas uniforms in group 0, matching the canvas snippet.
const (
	TimeBinding uint32 = iota
	TimeDeltaBinding
	FrameBinding
	ResolutionBinding
	MouseBinding
	DateBinding
)

// Plugin draws a full-screen triangle with a user fragment shader. The
// fragment shader includes the canvas snippet and reads the interpolated
// uv at location 0.
type Plugin struct {
	render_loop.BasePlugin

	id     string
	canvas drawable.Drawable

	time       *drawable.Uniform[gpu.Float32]
	timeDelta  *drawable.Uniform[gpu.Float32]
	frame      *drawable.Uniform[gpu.Uint32]
	resolution *drawable.Uniform[gpu.Vec3]
	mouse      *drawable.Uniform[gpu.Vec4]
	date       *drawable.Uniform[gpu.Vec4]
	owned      []gpu.Releasable
}

var _ render_loop.Plugin = &Plugin{}

// New builds the canvas drawable for dc.
//
// Parameters:
//   - dc: the draw context the canvas renders to
//   - fragment: the compiled fragment shader
//   - options: canvas options
//
// Returns:
//   - *Plugin: the plugin, ready to register
//   - error: error if a uniform, the vertex shader or the pipeline could not be
//     created, or an extra slot collides with another binding
func New(dc draw_context.DrawContext, fragment *shader.Module, options ...CanvasBuilderOption) (*Plugin, error) {
	cfg := canvasConfig{label: "Canvas"}
	for _, opt := range options {
		opt(&cfg)
	}

	p := &Plugin{id: uuid.NewString()}
	if err := p.createUniforms(dc.Device()); err != nil {
		p.releaseUniforms()
		return nil, err
	}

	vertex, err := dc.CreateShaderModule(cfg.label+" Vertex", vertexSource)
	if err != nil {
		p.releaseUniforms()
		return nil, err
	}

	b := drawable.NewBuilder(dc, vertex, fragment, drawable.Direct{VertexCount: 3},
		drawable.WithLabel(cfg.label),
		drawable.WithCullMode(wgpu.CullModeNone),
		drawable.WithoutDepthTest(),
	)
	err = errors.Join(
		b.AddUniform(0, TimeBinding, p.time),
		b.AddUniform(0, TimeDeltaBinding, p.timeDelta),
		b.AddUniform(0, FrameBinding, p.frame),
		b.AddUniform(0, ResolutionBinding, p.resolution),
		b.AddUniform(0, MouseBinding, p.mouse),
		b.AddUniform(0, DateBinding, p.date),
	)
	for _, slot := range cfg.slots {
		err = errors.Join(err, b.AddBindingSlot(slot))
	}
	if err != nil {
		p.releaseUniforms()
		return nil, fmt.Errorf("canvas: %w", err)
	}

	p.canvas, err = b.Build()
	if err != nil {
		p.releaseUniforms()
		return nil, err
	}
	w, h := dc.Dimensions()
	p.resolution.Write(gpu.Vec3{float32(w), float32(h), dc.SurfaceRatio()})
	return p, nil
}

// ID returns the plugin's unique registry id.
func (p *Plugin) ID() string {
	return p.id
}

// Frame returns the number of updates seen so far.
func (p *Plugin) Frame() uint32 {
	return uint32(p.frame.Read())
}

// Release drops the canvas drawable and uniforms.
func (p *Plugin) Release() {
	if p.canvas != nil {
		p.canvas.Release()
	}
	p.releaseUniforms()
}

func (p *Plugin) OnMouseEvent(ev event.MouseEvent) event.State {
	if ev.Kind == event.MouseMotion {
		p.mouse.Write(gpu.Vec4{ev.DX, ev.DY, 0, 0})
	}
	return event.Ignored
}

func (p *Plugin) OnUpdate(dc draw_context.DrawContext, t render_loop.TimeInfo) {
	w, h := dc.Dimensions()
	now := t.Now.UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	p.time.Write(gpu.Float32(t.Elapsed.Seconds()))
	p.timeDelta.Write(gpu.Float32(t.Delta.Seconds()))
	p.frame.Write(p.frame.Read() + 1)
	p.resolution.Write(gpu.Vec3{float32(w), float32(h), dc.SurfaceRatio()})
	p.date.Write(gpu.Vec4{
		float32(now.Year()),
		float32(now.Month()),
		float32(now.Day()),
		float32(now.Sub(midnight).Seconds()),
	})
}

func (p *Plugin) OnRender(_ draw_context.DrawContext, _ render_loop.TimeInfo, pass gpu.RenderPass) {
	p.canvas.Render(pass)
}

func (p *Plugin) createUniforms(device gpu.Device) error {
	var err error
	if p.time, err = newUniform(p, device, "Canvas Time", gpu.Float32(0)); err != nil {
		return err
	}
	if p.timeDelta, err = newUniform(p, device, "Canvas Time Delta", gpu.Float32(0)); err != nil {
		return err
	}
	if p.frame, err = newUniform(p, device, "Canvas Frame", gpu.Uint32(0)); err != nil {
		return err
	}
	if p.resolution, err = newUniform(p, device, "Canvas Resolution", gpu.Vec3{}); err != nil {
		return err
	}
	if p.mouse, err = newUniform(p, device, "Canvas Mouse", gpu.Vec4{}); err != nil {
		return err
	}
	p.date, err = newUniform(p, device, "Canvas Date", gpu.Vec4{})
	return err
}

func newUniform[T gpu.Marshaler](p *Plugin, device gpu.Device, label string, value T) (*drawable.Uniform[T], error) {
	u, err := drawable.NewUniform(device, label, value)
	if err != nil {
		return nil, err
	}
	p.owned = append(p.owned, u)
	return u, nil
}

func (p *Plugin) releaseUniforms() {
	for _, u := range p.owned {
		u.Release()
	}
	p.owned = nil
}
