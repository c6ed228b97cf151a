// Package render_loop schedules per-frame update and render callbacks across
// an ordered set of plugins and a scenario handler, and propagates input and
// window events through them.
package render_loop

import (
	"github.com/Carmen-Shannon/oxy-draw/engine/draw_context"
	"github.com/Carmen-Shannon/oxy-draw/engine/event"
	"github.com/Carmen-Shannon/oxy-draw/engine/gpu"
)

// Plugin is a reusable piece of per-frame behavior, such as a 3D scene or a
// text overlay, registered in a Registry.
type Plugin interface {
	// OnMouseEvent handles a mouse event. Returning event.Processed stops
	// the event from reaching plugins registered earlier and the scenario.
	OnMouseEvent(ev event.MouseEvent) event.State

	// OnKeyboardEvent handles a key press or release. Every plugin sees every
	// key that the KeyboardInput window pass did not consume.
	OnKeyboardEvent(ev event.KeyboardEvent)

	// OnWindowEvent handles a window event, with the same propagation rule as OnMouseEvent.
	OnWindowEvent(ev event.WindowEvent) event.State

	// OnUpdate advances the plugin's state for the frame.
	OnUpdate(dc draw_context.DrawContext, t TimeInfo)

	// OnRender records the plugin's draws into the frame's render pass.
	OnRender(dc draw_context.DrawContext, t TimeInfo, pass gpu.RenderPass)
}

// BasePlugin implements every Plugin hook as a no-op. Embed it to implement
// only the hooks a plugin needs.
type BasePlugin struct{}

var _ Plugin = BasePlugin{}

func (BasePlugin) OnMouseEvent(event.MouseEvent) event.State { return event.Ignored }

func (BasePlugin) OnKeyboardEvent(event.KeyboardEvent) {}

func (BasePlugin) OnWindowEvent(event.WindowEvent) event.State { return event.Ignored }

func (BasePlugin) OnUpdate(draw_context.DrawContext, TimeInfo) {}

func (BasePlugin) OnRender(draw_context.DrawContext, TimeInfo, gpu.RenderPass) {}
