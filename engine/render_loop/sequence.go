package render_loop

import (
	"log/slog"
	"slices"
	"time"

	"github.com/Carmen-Shannon/oxy-draw/engine/draw_context"
	"github.com/Carmen-Shannon/oxy-draw/engine/event"
	"github.com/Carmen-Shannon/oxy-draw/engine/gpu"
	"github.com/Carmen-Shannon/oxy-draw/engine/logger"
)

// SequenceEntry is one step of a Sequence: a handler, the plugins it runs
// with, and the condition that ends it.
type SequenceEntry struct {
	handler     Handler
	registry    *Registry
	duration    time.Duration
	termination bool
}

// WithDuration runs h with reg's plugins for d.
//
// Parameters:
//   - h: the step's handler
//   - d: how long the step lasts
//   - reg: the plugins installed for the step, may be nil
//
// Returns:
//   - SequenceEntry: the step
func WithDuration(h Handler, d time.Duration, reg *Registry) SequenceEntry {
	return SequenceEntry{handler: h, registry: reg, duration: d}
}

// WithTermination runs h with reg's plugins until h reports it is finished.
//
// Parameters:
//   - h: the step's handler
//   - reg: the plugins installed for the step, may be nil
//
// Returns:
//   - SequenceEntry: the step
func WithTermination(h Handler, reg *Registry) SequenceEntry {
	return SequenceEntry{handler: h, registry: reg, termination: true}
}

// Sequence is a Handler that runs other handlers one after another. Each
// step swaps its own plugins into the scheduler's registry when it starts,
// and releases the ones holding GPU resources when it ends. The last step's
// plugins stay in the registry for whoever owns it.
type Sequence struct {
	entries    []SequenceEntry
	index      int
	entryStart time.Duration
	finished   bool
	log        *slog.Logger
}

var _ Handler = &Sequence{}

// NewSequence creates a sequence over entries. An empty sequence is finished
// as soon as it is initialized.
func NewSequence(entries ...SequenceEntry) *Sequence {
	return &Sequence{entries: entries, log: logger.Nop()}
}

// SetLogger sets the logger step changes are reported to.
func (s *Sequence) SetLogger(l *slog.Logger) {
	s.log = logger.OrNop(l)
}

// Current returns the index of the running step.
func (s *Sequence) Current() int {
	return s.index
}

func (s *Sequence) OnInit(reg *Registry, dc draw_context.DrawContext) error {
	s.index = 0
	s.entryStart = 0
	s.finished = len(s.entries) == 0
	if s.finished {
		return nil
	}
	return s.install(reg, dc)
}

func (s *Sequence) OnMouseEvent(reg *Registry, ev event.MouseEvent) event.State {
	if s.finished {
		return event.Ignored
	}
	return s.entries[s.index].handler.OnMouseEvent(reg, ev)
}

func (s *Sequence) OnKeyboardEvent(reg *Registry, ev event.KeyboardEvent) {
	if s.finished {
		return
	}
	s.entries[s.index].handler.OnKeyboardEvent(reg, ev)
}

func (s *Sequence) OnWindowEvent(reg *Registry, ev event.WindowEvent) event.State {
	if s.finished {
		return event.Ignored
	}
	return s.entries[s.index].handler.OnWindowEvent(reg, ev)
}

func (s *Sequence) OnUpdate(reg *Registry, dc draw_context.DrawContext, t TimeInfo) {
	if s.finished {
		return
	}
	if s.stepDone(t) {
		s.index++
		if s.index >= len(s.entries) {
			s.finished = true
			s.log.Info("sequence finished", "elapsed", t.Elapsed)
			return
		}
		s.entryStart = t.Elapsed
		s.releaseOutgoing(reg, s.entries[s.index].registry)
		if err := s.install(reg, dc); err != nil {
			s.log.Error("sequence step init failed", "step", s.index, "error", err)
		}
	}
	s.entries[s.index].handler.OnUpdate(reg, dc, t)
}

func (s *Sequence) OnRender(reg *Registry, dc draw_context.DrawContext, t TimeInfo, pass gpu.RenderPass) {
	if s.finished {
		return
	}
	s.entries[s.index].handler.OnRender(reg, dc, t, pass)
}

func (s *Sequence) IsFinished() bool {
	return s.finished
}

func (s *Sequence) stepDone(t TimeInfo) bool {
	e := s.entries[s.index]
	if e.termination {
		return e.handler.IsFinished()
	}
	return t.Elapsed-s.entryStart >= e.duration
}

func (s *Sequence) install(reg *Registry, dc draw_context.DrawContext) error {
	e := s.entries[s.index]
	if e.registry != nil {
		reg.Replace(e.registry)
	} else {
		reg.Replace(NewRegistry())
	}
	s.log.Info("sequence step started", "step", s.index, "plugins", reg.IDs())
	return e.handler.OnInit(reg, dc)
}

// releaseOutgoing releases the plugins in reg that hold GPU resources and
// are not installed again by next.
func (s *Sequence) releaseOutgoing(reg, next *Registry) {
	var keep []Plugin
	if next != nil {
		_, keep = next.snapshot()
	}
	for id, p := range reg.All() {
		r, ok := p.(gpu.Releasable)
		if !ok || slices.ContainsFunc(keep, func(k Plugin) bool { return k == p }) {
			continue
		}
		r.Release()
		s.log.Debug("sequence plugin released", "step", s.index-1, "plugin", id)
	}
}
