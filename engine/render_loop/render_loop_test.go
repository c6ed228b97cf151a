package render_loop_test

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-draw/engine/draw_context"
	"github.com/Carmen-Shannon/oxy-draw/engine/event"
	"github.com/Carmen-Shannon/oxy-draw/engine/gpu"
	"github.com/Carmen-Shannon/oxy-draw/engine/gpu/gputest"
	"github.com/Carmen-Shannon/oxy-draw/engine/render_loop"
)

// recorder collects hook calls from plugins and handlers in order.
type recorder struct {
	calls []string
}

func (r *recorder) add(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

type recordingPlugin struct {
	render_loop.BasePlugin
	name    string
	rec     *recorder
	consume bool
}

func (p *recordingPlugin) OnMouseEvent(event.MouseEvent) event.State {
	p.rec.add("%s.mouse", p.name)
	if p.consume {
		return event.Processed
	}
	return event.Ignored
}

func (p *recordingPlugin) OnWindowEvent(ev event.WindowEvent) event.State {
	p.rec.add("%s.window(%s)", p.name, ev.Kind)
	if p.consume {
		return event.Processed
	}
	return event.Ignored
}

func (p *recordingPlugin) OnKeyboardEvent(event.KeyboardEvent) {
	p.rec.add("%s.key", p.name)
}

func (p *recordingPlugin) OnUpdate(draw_context.DrawContext, render_loop.TimeInfo) {
	p.rec.add("%s.update", p.name)
}

func (p *recordingPlugin) OnRender(_ draw_context.DrawContext, _ render_loop.TimeInfo, pass gpu.RenderPass) {
	p.rec.add("%s.render", p.name)
}

type recordingHandler struct {
	render_loop.BaseHandler
	name     string
	rec      *recorder
	inits    int
	finished bool
}

func (h *recordingHandler) OnInit(*render_loop.Registry, draw_context.DrawContext) error {
	h.inits++
	h.rec.add("%s.init", h.name)
	return nil
}

func (h *recordingHandler) OnMouseEvent(*render_loop.Registry, event.MouseEvent) event.State {
	h.rec.add("%s.mouse", h.name)
	return event.Ignored
}

func (h *recordingHandler) OnKeyboardEvent(*render_loop.Registry, event.KeyboardEvent) {
	h.rec.add("%s.key", h.name)
}

func (h *recordingHandler) OnWindowEvent(_ *render_loop.Registry, ev event.WindowEvent) event.State {
	h.rec.add("%s.window(%s)", h.name, ev.Kind)
	return event.Ignored
}

func (h *recordingHandler) OnUpdate(*render_loop.Registry, draw_context.DrawContext, render_loop.TimeInfo) {
	h.rec.add("%s.update", h.name)
}

func (h *recordingHandler) OnRender(*render_loop.Registry, draw_context.DrawContext, render_loop.TimeInfo, gpu.RenderPass) {
	h.rec.add("%s.render", h.name)
}

func (h *recordingHandler) IsFinished() bool { return h.finished }

func newDrawContext(t *testing.T) draw_context.DrawContext {
	t.Helper()
	dc, err := draw_context.NewTextureContext(gputest.NewDevice(), 64, 64)
	if err != nil {
		t.Fatalf("NewTextureContext() error = %v", err)
	}
	return dc
}

func TestRegistryOrder(t *testing.T) {
	reg := render_loop.NewRegistry()
	a, b, c := &recordingPlugin{name: "a"}, &recordingPlugin{name: "b"}, &recordingPlugin{name: "c"}
	reg.Register("a", a).Register("b", b).Register("c", c)

	replacement := &recordingPlugin{name: "b2"}
	reg.Register("b", replacement)

	if got, want := reg.IDs(), []string{"a", "b", "c"}; !slices.Equal(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}
	if p, _ := reg.Get("b"); p != replacement {
		t.Errorf("Get(b) = %v, want the replacement", p)
	}
	var backward []string
	for id := range reg.Backward() {
		backward = append(backward, id)
	}
	if want := []string{"c", "b", "a"}; !slices.Equal(backward, want) {
		t.Errorf("Backward() = %v, want %v", backward, want)
	}

	if p, ok := render_loop.Lookup[*recordingPlugin](reg, "c"); !ok || p != c {
		t.Errorf("Lookup(c) = %v, %v", p, ok)
	}
	if _, ok := render_loop.Lookup[render_loop.BasePlugin](reg, "c"); ok {
		t.Errorf("Lookup with the wrong type succeeded")
	}
	if _, ok := render_loop.Lookup[*recordingPlugin](reg, "missing"); ok {
		t.Errorf("Lookup(missing) succeeded")
	}
}

func TestDispatchMouseShortCircuit(t *testing.T) {
	tests := []struct {
		name      string
		consumeA  bool
		consumeB  bool
		wantCalls []string
		wantState event.State
	}{
		{
			name:      "last registered consumes",
			consumeB:  true,
			wantCalls: []string{"b.mouse"},
			wantState: event.Processed,
		},
		{
			name:      "first registered consumes",
			consumeA:  true,
			wantCalls: []string{"b.mouse", "a.mouse"},
			wantState: event.Processed,
		},
		{
			name:      "nobody consumes",
			wantCalls: []string{"b.mouse", "a.mouse", "scenario.mouse"},
			wantState: event.Ignored,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			reg := render_loop.NewRegistry().
				Register("a", &recordingPlugin{name: "a", rec: rec, consume: tt.consumeA}).
				Register("b", &recordingPlugin{name: "b", rec: rec, consume: tt.consumeB})
			s := render_loop.NewScheduler(newDrawContext(t), &recordingHandler{name: "scenario", rec: rec}, render_loop.WithRegistry(reg))

			if got := s.DispatchMouse(event.MouseEvent{Kind: event.MouseMotion, DX: 1}); got != tt.wantState {
				t.Errorf("DispatchMouse() = %v, want %v", got, tt.wantState)
			}
			if !slices.Equal(rec.calls, tt.wantCalls) {
				t.Errorf("calls = %v, want %v", rec.calls, tt.wantCalls)
			}
		})
	}
}

func TestDispatchKeyboard(t *testing.T) {
	tests := []struct {
		name      string
		consumeB  bool
		wantCalls []string
	}{
		{
			name:      "window pass consumes",
			consumeB:  true,
			wantCalls: []string{"b.window(KeyboardInput)"},
		},
		{
			name: "window pass ignores",
			wantCalls: []string{
				"b.window(KeyboardInput)", "a.window(KeyboardInput)", "scenario.window(KeyboardInput)",
				"b.key", "a.key", "scenario.key",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			reg := render_loop.NewRegistry().
				Register("a", &recordingPlugin{name: "a", rec: rec}).
				Register("b", &recordingPlugin{name: "b", rec: rec, consume: tt.consumeB})
			s := render_loop.NewScheduler(newDrawContext(t), &recordingHandler{name: "scenario", rec: rec}, render_loop.WithRegistry(reg))

			s.DispatchKeyboard(event.KeyboardEvent{Pressed: true})

			if !slices.Equal(rec.calls, tt.wantCalls) {
				t.Errorf("calls = %v, want %v", rec.calls, tt.wantCalls)
			}
		})
	}
}

func TestDispatchWindowResizesDrawContext(t *testing.T) {
	tests := []struct {
		name    string
		consume bool
		wantW   uint32
		wantH   uint32
	}{
		{name: "unprocessed", wantW: 128, wantH: 32},
		{name: "consumed by a plugin", consume: true, wantW: 64, wantH: 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dc := newDrawContext(t)
			reg := render_loop.NewRegistry().Register("a", &recordingPlugin{name: "a", rec: &recorder{}, consume: tt.consume})
			s := render_loop.NewScheduler(dc, render_loop.BaseHandler{}, render_loop.WithRegistry(reg))
			s.DispatchWindow(event.WindowEvent{Kind: event.Resized, Width: 128, Height: 32})
			if w, h := dc.Dimensions(); w != tt.wantW || h != tt.wantH {
				t.Errorf("Dimensions() = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestFrameOrder(t *testing.T) {
	rec := &recorder{}
	reg := render_loop.NewRegistry().
		Register("a", &recordingPlugin{name: "a", rec: rec}).
		Register("b", &recordingPlugin{name: "b", rec: rec})
	s := render_loop.NewScheduler(newDrawContext(t), &recordingHandler{name: "scenario", rec: rec}, render_loop.WithRegistry(reg))

	if err := s.Frame(); !errors.Is(err, render_loop.ErrNotInitialized) {
		t.Fatalf("Frame() before Init error = %v, want ErrNotInitialized", err)
	}
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	if err := s.Frame(); err != nil {
		t.Fatalf("Frame() error = %v", err)
	}

	want := []string{
		"scenario.init",
		"scenario.update", "a.update", "b.update",
		"scenario.render", "a.render", "b.render",
	}
	if !slices.Equal(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestFrameFinished(t *testing.T) {
	h := &recordingHandler{name: "scenario", rec: &recorder{}}
	s := render_loop.NewScheduler(newDrawContext(t), h)
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	h.finished = true
	if err := s.Frame(); !errors.Is(err, render_loop.ErrFinished) {
		t.Errorf("Frame() error = %v, want ErrFinished", err)
	}
	if !s.IsFinished() {
		t.Errorf("IsFinished() = false")
	}
}

func TestSequenceDurations(t *testing.T) {
	rec := &recorder{}
	first := &recordingHandler{name: "first", rec: rec}
	second := &recordingHandler{name: "second", rec: rec}
	firstPlugins := render_loop.NewRegistry().Register("one", &recordingPlugin{name: "one", rec: rec})
	secondPlugins := render_loop.NewRegistry().Register("two", &recordingPlugin{name: "two", rec: rec})

	seq := render_loop.NewSequence(
		render_loop.WithDuration(first, 5*time.Second, firstPlugins),
		render_loop.WithDuration(second, 5*time.Second, secondPlugins),
	)
	clock := render_loop.NewFakeClock(time.Unix(0, 0))
	s := render_loop.NewScheduler(newDrawContext(t), seq, render_loop.WithClock(clock))

	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	if got := s.Registry().IDs(); !slices.Equal(got, []string{"one"}) {
		t.Fatalf("registry after init = %v, want [one]", got)
	}

	steps := []struct {
		advance  time.Duration
		wantStep int
		wantIDs  []string
		wantErr  error
	}{
		{advance: 0, wantStep: 0, wantIDs: []string{"one"}},
		{advance: 4900 * time.Millisecond, wantStep: 0, wantIDs: []string{"one"}},
		{advance: 100 * time.Millisecond, wantStep: 1, wantIDs: []string{"two"}},
		{advance: 4 * time.Second, wantStep: 1, wantIDs: []string{"two"}},
		{advance: 1 * time.Second, wantStep: 2, wantIDs: []string{"two"}},
		{advance: time.Second, wantStep: 2, wantIDs: []string{"two"}, wantErr: render_loop.ErrFinished},
	}
	for i, st := range steps {
		clock.Advance(st.advance)
		if err := s.Frame(); !errors.Is(err, st.wantErr) {
			t.Fatalf("step %d: Frame() error = %v, want %v", i, err, st.wantErr)
		}
		if got := seq.Current(); got != st.wantStep {
			t.Errorf("step %d: Current() = %d, want %d", i, got, st.wantStep)
		}
		if got := s.Registry().IDs(); !slices.Equal(got, st.wantIDs) {
			t.Errorf("step %d: registry = %v, want %v", i, got, st.wantIDs)
		}
	}

	if !seq.IsFinished() {
		t.Errorf("sequence not finished")
	}
	if first.inits != 1 || second.inits != 1 {
		t.Errorf("inits = %d, %d, want 1, 1", first.inits, second.inits)
	}
}

func TestSequenceTermination(t *testing.T) {
	rec := &recorder{}
	first := &recordingHandler{name: "first", rec: rec}
	seq := render_loop.NewSequence(render_loop.WithTermination(first, nil))
	s := render_loop.NewScheduler(newDrawContext(t), seq, render_loop.WithClock(render_loop.NewFakeClock(time.Unix(0, 0))))
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}

	for range 3 {
		if err := s.Frame(); err != nil {
			t.Fatal(err)
		}
	}
	if seq.IsFinished() {
		t.Fatalf("sequence finished before its handler")
	}
	first.finished = true
	if err := s.Frame(); err != nil {
		t.Fatalf("Frame() error = %v", err)
	}
	if !seq.IsFinished() {
		t.Errorf("sequence not finished after its handler finished")
	}
}

func TestEmptySequence(t *testing.T) {
	s := render_loop.NewScheduler(newDrawContext(t), render_loop.NewSequence())
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	if err := s.Frame(); !errors.Is(err, render_loop.ErrFinished) {
		t.Errorf("Frame() error = %v, want ErrFinished", err)
	}
}

type releasingPlugin struct {
	render_loop.BasePlugin
	released int
}

func (p *releasingPlugin) Release() { p.released++ }

func TestSequenceReleasesOutgoingPlugins(t *testing.T) {
	shared, scene, next := &releasingPlugin{}, &releasingPlugin{}, &releasingPlugin{}
	seq := render_loop.NewSequence(
		render_loop.WithDuration(render_loop.BaseHandler{}, time.Second,
			render_loop.NewRegistry().Register("scene", scene).Register("gui", shared)),
		render_loop.WithDuration(render_loop.BaseHandler{}, time.Second,
			render_loop.NewRegistry().Register("scene2", next).Register("gui", shared)),
	)
	clock := render_loop.NewFakeClock(time.Unix(0, 0))
	s := render_loop.NewScheduler(newDrawContext(t), seq, render_loop.WithClock(clock))
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}

	clock.Advance(time.Second)
	if err := s.Frame(); err != nil {
		t.Fatalf("Frame() error = %v", err)
	}
	if scene.released != 1 {
		t.Errorf("outgoing plugin released %d times, want 1", scene.released)
	}
	if shared.released != 0 || next.released != 0 {
		t.Errorf("plugins kept by the next step released: shared %d, next %d", shared.released, next.released)
	}

	clock.Advance(time.Second)
	if err := s.Frame(); err != nil {
		t.Fatalf("Frame() error = %v", err)
	}
	if next.released != 0 || shared.released != 0 {
		t.Errorf("last step's plugins released by the sequence: shared %d, next %d", shared.released, next.released)
	}
}

func TestSchedulerLogger(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	seq := render_loop.NewSequence(
		render_loop.WithTermination(render_loop.BaseHandler{}, nil),
	)
	s := render_loop.NewScheduler(newDrawContext(t), seq, render_loop.WithLogger(log))
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"render loop initialized", "sequence step started"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q: %q", want, out)
		}
	}
}
