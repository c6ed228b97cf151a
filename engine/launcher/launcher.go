// Package launcher wires a scenario to a window, a GPU device and a render
// loop scheduler, or renders a single offscreen frame when HEADLESS is set.
package launcher

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Carmen-Shannon/oxy-draw/engine/draw_context"
	"github.com/Carmen-Shannon/oxy-draw/engine/gpu"
	"github.com/Carmen-Shannon/oxy-draw/engine/logger"
	"github.com/Carmen-Shannon/oxy-draw/engine/profiler"
	"github.com/Carmen-Shannon/oxy-draw/engine/render_loop"
	"github.com/Carmen-Shannon/oxy-draw/engine/window"
	"github.com/xlab/closer"
)

// HandlerFactory builds the scenario once the draw context exists.
type HandlerFactory func(dc draw_context.DrawContext) (render_loop.Handler, error)

// Launcher owns the window, device, draw context and scheduler of one run.
type Launcher struct {
	cfg launcherConfig
	log *slog.Logger

	win     window.Window
	control windowControl
	device  gpu.Device
	dc      draw_context.DrawContext
	sched   *render_loop.Scheduler
	router  *router

	pacer    pacer
	profiler *profiler.Profiler
}

// New creates a Launcher and builds its logger from the log options.
//
// Parameters:
//   - options: launcher options
//
// Returns:
//   - *Launcher: the launcher, not yet started
func New(options ...LauncherBuilderOption) *Launcher {
	cfg := defaultLauncherConfig()
	for _, opt := range options {
		opt(&cfg)
	}
	return &Launcher{
		cfg:   cfg,
		log:   logger.New(logger.Config{Level: cfg.logLevel, Format: cfg.logFormat, Output: cfg.logOutput}),
		pacer: pacer{interval: cfg.frameInterval},
	}
}

// Logger returns the launcher's logger, for scenarios that want their
// drawables and plugins to report through it.
func (l *Launcher) Logger() *slog.Logger {
	return l.log
}

// Run is the whole program for a scenario: it starts a launcher, runs it until
// the window closes or the scenario finishes, and exits through closer so that
// GPU and window resources are released on signals as well.
//
// Parameters:
//   - factory: builds the scenario
//   - options: launcher options
func Run(factory HandlerFactory, options ...LauncherBuilderOption) {
	l := New(options...)
	closer.Bind(l.Release)
	if err := l.Start(factory); err != nil {
		closer.Fatalln(err)
	}
	if err := l.Run(); err != nil {
		closer.Fatalln(err)
	}
	closer.Close()
}

// Headless reports whether the launcher renders offscreen.
func (l *Launcher) Headless() bool {
	return l.cfg.headless
}

// Scheduler returns the scheduler, or nil before Start.
func (l *Launcher) Scheduler() *render_loop.Scheduler {
	return l.sched
}

// Start acquires the device and draw context, builds the scenario and
// initializes it.
//
// Parameters:
//   - factory: builds the scenario
//
// Returns:
//   - error: window, device, draw context or scenario failure
func (l *Launcher) Start(factory HandlerFactory) error {
	width, height := uint32(l.cfg.width), uint32(l.cfg.height)
	dcOptions := append([]draw_context.DrawContextBuilderOption{draw_context.WithLogger(l.log)}, l.cfg.dcOptions...)

	var err error
	if l.cfg.headless {
		l.device, err = l.cfg.newDevice(gpu.WithDeviceLabel("Headless Device"), gpu.WithLogger(l.log))
		if err != nil {
			return err
		}
		l.dc, err = draw_context.NewTextureContext(l.device, width, height, dcOptions...)
	} else {
		l.win, err = window.NewWindow(window.WithTitle(l.cfg.title), window.WithSize(l.cfg.width, l.cfg.height))
		if err != nil {
			return err
		}
		l.control = l.win
		l.device, err = l.cfg.newDevice(gpu.WithSurfaceDescriptor(l.win.SurfaceDescriptor()), gpu.WithLogger(l.log))
		if err != nil {
			return err
		}
		l.dc, err = draw_context.NewSurfaceContext(l.device, uint32(l.win.Width()), uint32(l.win.Height()), dcOptions...)
	}
	if err != nil {
		return fmt.Errorf("draw context: %w", err)
	}

	handler, err := factory(l.dc)
	if err != nil {
		return fmt.Errorf("scenario: %w", err)
	}
	l.sched = render_loop.NewScheduler(l.dc, handler, render_loop.WithClock(l.cfg.clock), render_loop.WithLogger(l.log))
	if err := l.sched.Init(); err != nil {
		return err
	}

	if l.cfg.profiling {
		l.profiler = profiler.NewProfiler(l.cfg.clock.Now(), profiler.WithLogger(l.log))
	}
	if l.win != nil {
		l.router = newRouter(l.sched, l.control)
		l.win.SetWindowEventCallback(l.router.onWindowEvent)
		l.win.SetMouseCallback(l.router.onMouseEvent)
		l.win.SetUpdateCallback(l.tick)
	}
	return nil
}

// Run renders one frame when headless, otherwise runs the window message loop
// until the window closes.
//
// Returns:
//   - error: the headless frame error
func (l *Launcher) Run() error {
	if l.sched == nil {
		return render_loop.ErrNotInitialized
	}
	if l.cfg.headless {
		if err := l.sched.Frame(); err != nil && !errors.Is(err, render_loop.ErrFinished) {
			return err
		}
		l.log.Info("headless frame rendered", "width", l.cfg.width, "height", l.cfg.height)
		return nil
	}
	l.win.ProcessMessages()
	return nil
}

// Release frees plugins that hold GPU resources, then the draw context, the
// device and the window. Safe to call more than once.
func (l *Launcher) Release() {
	if l.sched != nil {
		for _, p := range l.sched.Registry().All() {
			if r, ok := p.(gpu.Releasable); ok {
				r.Release()
			}
		}
		l.sched = nil
	}
	if l.dc != nil {
		l.dc.Release()
		l.dc = nil
	}
	if l.device != nil {
		l.device.Destroy()
		l.device = nil
	}
	if l.win != nil {
		if err := l.win.Close(); err != nil {
			l.log.Warn("window close failed", "error", err)
		}
		l.win = nil
	}
}

// tick runs from the window loop and renders when a frame is due.
func (l *Launcher) tick() {
	now := l.cfg.clock.Now()
	if !l.pacer.ready(now) {
		time.Sleep(min(l.pacer.next.Sub(now), time.Millisecond))
		return
	}
	l.frame(now)
}

func (l *Launcher) frame(now time.Time) {
	err := l.sched.Frame()
	switch {
	case err == nil:
	case errors.Is(err, render_loop.ErrFinished):
		l.log.Info("scenario finished")
		l.control.RequestClose()
		return
	case errors.Is(err, draw_context.ErrSurfaceUnavailable):
		l.log.Warn("frame skipped", "error", err)
	default:
		l.log.Error("frame failed", "error", err)
		l.control.RequestClose()
		return
	}
	if l.profiler != nil {
		l.profiler.Tick(now)
	}
}

// pacer spaces frames interval apart. A pacer that falls behind by more than
// one interval restarts from the current time instead of bursting.
type pacer struct {
	interval time.Duration
	next     time.Time
}

func (p *pacer) ready(now time.Time) bool {
	if now.Before(p.next) {
		return false
	}
	p.next = p.next.Add(p.interval)
	if p.next.Before(now) {
		p.next = now.Add(p.interval)
	}
	return true
}
