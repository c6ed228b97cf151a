package render_loop

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-draw/engine/draw_context"
	"github.com/Carmen-Shannon/oxy-draw/engine/event"
	"github.com/Carmen-Shannon/oxy-draw/engine/gpu"
)

// TimeInfo describes the frame being processed.
type TimeInfo struct {
	// Start is when the scheduler was initialized.
	Start time.Time
	// Now is the time the frame began.
	Now time.Time
	// Delta is the time since the previous frame, zero for the first frame.
	Delta time.Duration
	// Elapsed is Now - Start.
	Elapsed time.Duration
	// Frame counts frames from 0.
	Frame uint64
}

// Handler is the scenario driving the application. It receives every event
// after the plugins and runs before them each frame.
type Handler interface {
	// OnInit sets up the scenario and registers its plugins in reg.
	OnInit(reg *Registry, dc draw_context.DrawContext) error

	OnMouseEvent(reg *Registry, ev event.MouseEvent) event.State
	OnKeyboardEvent(reg *Registry, ev event.KeyboardEvent)
	OnWindowEvent(reg *Registry, ev event.WindowEvent) event.State

	// OnUpdate advances the scenario for the frame.
	OnUpdate(reg *Registry, dc draw_context.DrawContext, t TimeInfo)

	// OnRender records the scenario's own draws into the frame's render pass.
	OnRender(reg *Registry, dc draw_context.DrawContext, t TimeInfo, pass gpu.RenderPass)

	// IsFinished reports whether the application should stop.
	IsFinished() bool
}

// BaseHandler implements every Handler hook as a no-op and is never finished.
type BaseHandler struct{}

var _ Handler = BaseHandler{}

func (BaseHandler) OnInit(*Registry, draw_context.DrawContext) error { return nil }

func (BaseHandler) OnMouseEvent(*Registry, event.MouseEvent) event.State { return event.Ignored }

func (BaseHandler) OnKeyboardEvent(*Registry, event.KeyboardEvent) {}

func (BaseHandler) OnWindowEvent(*Registry, event.WindowEvent) event.State { return event.Ignored }

func (BaseHandler) OnUpdate(*Registry, draw_context.DrawContext, TimeInfo) {}

func (BaseHandler) OnRender(*Registry, draw_context.DrawContext, TimeInfo, gpu.RenderPass) {}

func (BaseHandler) IsFinished() bool { return false }

// Clock supplies frame timestamps.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FakeClock is a manually advanced clock.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock returns a clock stopped at start.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
