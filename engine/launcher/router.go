package launcher

import (
	"github.com/Carmen-Shannon/oxy-draw/engine/event"
	"github.com/Carmen-Shannon/oxy-draw/engine/render_loop"
)

// windowControl is the part of the window the router drives.
type windowControl interface {
	RequestClose()
	SetCursorVisible(visible bool)
}

// router forwards window and device events to the scheduler and applies the
// launcher's own handling to whatever the scenario leaves unprocessed.
// Rotation mode is entered by pressing the left button inside the window and
// left on release; only while it is on do device motion deltas reach the scene.
type router struct {
	sched    *render_loop.Scheduler
	win      windowControl
	rotating bool
	inside   bool
}

func newRouter(sched *render_loop.Scheduler, win windowControl) *router {
	return &router{sched: sched, win: win, inside: true}
}

func (r *router) onWindowEvent(ev event.WindowEvent) {
	if ev.Kind == event.KeyboardInput {
		r.sched.DispatchKeyboard(ev.Keyboard)
		return
	}
	if r.sched.DispatchWindow(ev) == event.Processed {
		return
	}

	switch ev.Kind {
	case event.CloseRequested:
		r.win.RequestClose()
	case event.Resized, event.Moved:
		r.setRotating(false)
	case event.CursorEntered:
		r.inside = true
	case event.CursorLeft:
		r.inside = false
	case event.MouseInput:
		if ev.Mouse.Button != event.MouseButtonLeft {
			return
		}
		r.setRotating(ev.Mouse.Pressed && r.inside)
	}
}

func (r *router) onMouseEvent(ev event.MouseEvent) {
	if ev.Kind == event.MouseMotion && !r.rotating {
		return
	}
	r.sched.DispatchMouse(ev)
}

func (r *router) setRotating(on bool) {
	if on == r.rotating {
		return
	}
	r.rotating = on
	r.win.SetCursorVisible(!on)
}
