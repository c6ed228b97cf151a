// Package scene3d provides a plugin that renders a scene.Scene3D through an
// interactive camera.
package scene3d

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-draw/engine/camera"
	"github.com/Carmen-Shannon/oxy-draw/engine/draw_context"
	"github.com/Carmen-Shannon/oxy-draw/engine/event"
	"github.com/Carmen-Shannon/oxy-draw/engine/gpu"
	"github.com/Carmen-Shannon/oxy-draw/engine/render_loop"
	"github.com/Carmen-Shannon/oxy-draw/engine/scene"
	"github.com/google/uuid"
)

// Plugin owns a scene and the camera it is viewed through. Keys and mouse
// motion drive the camera, and the projection follows the draw context size.
type Plugin struct {
	mu     *sync.Mutex
	id     string
	scene  *scene.Scene3D
	camera camera.InteractiveCamera
	width  uint32
	height uint32
}

var _ render_loop.Plugin = &Plugin{}

// New wraps s and cam. The camera's projection is sized on the first update.
//
// Parameters:
//   - s: the scene to render
//   - cam: the camera controlling the scene's camera uniforms
//
// Returns:
//   - *Plugin: the plugin, ready to register
func New(s *scene.Scene3D, cam camera.InteractiveCamera) *Plugin {
	return &Plugin{
		mu:     &sync.Mutex{},
		id:     uuid.NewString(),
		scene:  s,
		camera: cam,
	}
}

// ID returns the plugin's unique registry id.
func (p *Plugin) ID() string {
	return p.id
}

// Scene returns the rendered scene.
func (p *Plugin) Scene() *scene.Scene3D {
	return p.scene
}

// Camera returns the interactive camera.
func (p *Plugin) Camera() camera.InteractiveCamera {
	return p.camera
}

func (p *Plugin) OnMouseEvent(ev event.MouseEvent) event.State {
	return p.camera.OnMouseEvent(ev)
}

func (p *Plugin) OnKeyboardEvent(ev event.KeyboardEvent) {
	p.camera.OnKeyboardEvent(ev)
}

func (p *Plugin) OnWindowEvent(ev event.WindowEvent) event.State {
	if ev.Kind == event.Resized {
		p.resize(ev.Width, ev.Height)
	}
	return event.Ignored
}

func (p *Plugin) OnUpdate(dc draw_context.DrawContext, _ render_loop.TimeInfo) {
	p.resize(dc.Dimensions())
	p.camera.Update()
	p.scene.Update(p.camera.Camera())
}

func (p *Plugin) OnRender(_ draw_context.DrawContext, _ render_loop.TimeInfo, pass gpu.RenderPass) {
	p.scene.Render(pass)
}

func (p *Plugin) resize(width, height uint32) {
	if width == 0 || height == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if width == p.width && height == p.height {
		return
	}
	p.width, p.height = width, height
	p.camera.Resize(width, height)
}

// Release drops the scene's camera uniforms. Objects added to the scene are
// released by whoever created them.
func (p *Plugin) Release() {
	p.scene.Release()
}
