package render_loop

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Carmen-Shannon/oxy-draw/engine/draw_context"
	"github.com/Carmen-Shannon/oxy-draw/engine/event"
	"github.com/Carmen-Shannon/oxy-draw/engine/gpu"
	"github.com/Carmen-Shannon/oxy-draw/engine/logger"
)

var (
	// ErrFinished is returned by Frame once the handler reports it is finished.
	ErrFinished = errors.New("render loop finished")
	// ErrNotInitialized is returned by Frame before Init.
	ErrNotInitialized = errors.New("render loop not initialized")
)

// loggerAware is implemented by handlers that log through the scheduler's logger.
type loggerAware interface {
	SetLogger(l *slog.Logger)
}

// Scheduler drives one handler and its registry of plugins against a draw
// context. It is not safe for concurrent use; all calls come from the
// window's event loop.
type Scheduler struct {
	dc       draw_context.DrawContext
	handler  Handler
	registry *Registry
	clock    Clock
	log      *slog.Logger

	start       time.Time
	last        time.Time
	frame       uint64
	initialized bool
}

// NewScheduler creates a scheduler for handler rendering into dc.
//
// Parameters:
//   - dc: the draw context every frame renders into
//   - handler: the scenario
//   - options: scheduler options
//
// Returns:
//   - *Scheduler: the scheduler
func NewScheduler(dc draw_context.DrawContext, handler Handler, options ...SchedulerBuilderOption) *Scheduler {
	s := &Scheduler{
		dc:      dc,
		handler: handler,
		clock:   SystemClock{},
		log:     logger.Nop(),
	}
	for _, opt := range options {
		opt(s)
	}
	if s.registry == nil {
		s.registry = NewRegistry()
	}
	return s
}

// Registry returns the live plugin registry.
func (s *Scheduler) Registry() *Registry {
	return s.registry
}

// DrawContext returns the draw context frames render into.
func (s *Scheduler) DrawContext() draw_context.DrawContext {
	return s.dc
}

// Init starts the clock and lets the handler set itself up. A handler with a
// SetLogger method receives the scheduler's logger first.
//
// Returns:
//   - error: the handler's initialization error
func (s *Scheduler) Init() error {
	s.start = s.clock.Now()
	s.last = s.start
	s.frame = 0
	if la, ok := s.handler.(loggerAware); ok {
		la.SetLogger(s.log)
	}
	if err := s.handler.OnInit(s.registry, s.dc); err != nil {
		return fmt.Errorf("scenario init failed: %w", err)
	}
	s.initialized = true
	s.log.Info("render loop initialized", "plugins", s.registry.IDs())
	return nil
}

// DispatchMouse offers ev to the plugins, most recently registered first,
// stopping at the first that processes it, then to the handler.
//
// Parameters:
//   - ev: the mouse event
//
// Returns:
//   - event.State: Processed if any plugin or the handler consumed the event
func (s *Scheduler) DispatchMouse(ev event.MouseEvent) event.State {
	for _, p := range s.registry.Backward() {
		if p.OnMouseEvent(ev) == event.Processed {
			return event.Processed
		}
	}
	return s.handler.OnMouseEvent(s.registry, ev)
}

// DispatchWindow offers ev to the plugins, most recently registered first,
// stopping at the first that processes it, then to the handler. A Resized
// event that nobody processes resizes the draw context.
//
// Parameters:
//   - ev: the window event
//
// Returns:
//   - event.State: Processed if any plugin or the handler consumed the event
func (s *Scheduler) DispatchWindow(ev event.WindowEvent) event.State {
	state := s.offerWindow(ev)
	if state == event.Ignored && ev.Kind == event.Resized {
		s.dc.Resize(ev.Width, ev.Height)
	}
	return state
}

func (s *Scheduler) offerWindow(ev event.WindowEvent) event.State {
	for _, p := range s.registry.Backward() {
		if p.OnWindowEvent(ev) == event.Processed {
			return event.Processed
		}
	}
	return s.handler.OnWindowEvent(s.registry, ev)
}

// DispatchKeyboard first runs ev through the window event pass as a
// KeyboardInput event. If nothing processes it there, every plugin in
// reverse registration order and then the handler receive the key, without
// short-circuit.
//
// Parameters:
//   - ev: the keyboard event
func (s *Scheduler) DispatchKeyboard(ev event.KeyboardEvent) {
	if s.DispatchWindow(event.WindowEvent{Kind: event.KeyboardInput, Keyboard: ev}) == event.Processed {
		return
	}
	for _, p := range s.registry.Backward() {
		p.OnKeyboardEvent(ev)
	}
	s.handler.OnKeyboardEvent(s.registry, ev)
}

// Frame runs one update and one render: the handler first, then the plugins
// in registration order.
//
// Returns:
//   - error: ErrFinished once the handler is finished, or the draw context's render error
func (s *Scheduler) Frame() error {
	if !s.initialized {
		return ErrNotInitialized
	}
	if s.handler.IsFinished() {
		return ErrFinished
	}

	now := s.clock.Now()
	t := TimeInfo{
		Start:   s.start,
		Now:     now,
		Delta:   now.Sub(s.last),
		Elapsed: now.Sub(s.start),
		Frame:   s.frame,
	}
	s.last = now
	s.frame++

	s.handler.OnUpdate(s.registry, s.dc, t)
	for _, p := range s.registry.All() {
		p.OnUpdate(s.dc, t)
	}

	return s.dc.RenderScene(func(pass gpu.RenderPass) {
		s.handler.OnRender(s.registry, s.dc, t, pass)
		for _, p := range s.registry.All() {
			p.OnRender(s.dc, t, pass)
		}
	})
}

// IsFinished reports whether the handler has finished.
func (s *Scheduler) IsFinished() bool {
	return s.handler.IsFinished()
}
