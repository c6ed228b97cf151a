package overlay

import (
	"image"
	"image/color"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-draw/engine/draw_context"
	"github.com/Carmen-Shannon/oxy-draw/engine/event"
	"github.com/Carmen-Shannon/oxy-draw/engine/gpu/gputest"
	"github.com/Carmen-Shannon/oxy-draw/engine/render_loop"
	"github.com/cogentcore/webgpu/wgpu"
)

func newOverlay(t *testing.T, options ...OverlayBuilderOption) (*gputest.Device, draw_context.DrawContext, *Plugin) {
	t.Helper()
	dev := gputest.NewDevice()
	dc, err := draw_context.NewTextureContext(dev, 320, 200)
	if err != nil {
		t.Fatalf("NewTextureContext() error = %v", err)
	}
	p, err := New(dc, options...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return dev, dc, p
}

func TestRasterize(t *testing.T) {
	bg := color.RGBA{A: 128}
	fg := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	data := rasterize([]string{"hello"}, 64, 20, 2, fg, bg)
	if data.Width != 64 || data.Height != 20 {
		t.Fatalf("size = %dx%d, want 64x20", data.Width, data.Height)
	}
	if len(data.Pixels) != 64*20*4 {
		t.Fatalf("len(pixels) = %d", len(data.Pixels))
	}
	lit := 0
	for i := 0; i < len(data.Pixels); i += 4 {
		if data.Pixels[i] != 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Errorf("no glyph pixels drawn")
	}

	empty := rasterize([]string{"too tall"}, 64, 8, 2, fg, bg)
	for i := 0; i < len(empty.Pixels); i += 4 {
		if empty.Pixels[i] != 0 || empty.Pixels[i+3] != 128 {
			t.Fatalf("pixel %d = %v, want background", i/4, empty.Pixels[i:i+4])
		}
	}
}

func TestNewBuildsPanel(t *testing.T) {
	dev, _, p := newOverlay(t)
	if got := len(dev.TexturesLabeled(TextureLabel)); got != 1 {
		t.Fatalf("overlay textures = %d, want 1", got)
	}
	if dev.Samplers != 1 {
		t.Errorf("samplers = %d, want 1", dev.Samplers)
	}
	if got := dev.FakeQueue().TextureWrites; got != 1 {
		t.Errorf("texture writes = %d, want 1", got)
	}
	pl := dev.Pipelines[len(dev.Pipelines)-1]
	if pl.DepthStencil.DepthCompare != wgpu.CompareFunctionAlways || pl.DepthStencil.DepthWriteEnabled {
		t.Errorf("overlay pipeline has a depth test")
	}
	if pl.Fragment.Targets[0].Blend == nil {
		t.Errorf("overlay pipeline is not blended")
	}
	if p.ID() == "" {
		t.Errorf("empty plugin id")
	}
}

func TestInvalidPanelSize(t *testing.T) {
	dc, err := draw_context.NewTextureContext(gputest.NewDevice(), 32, 32)
	if err != nil {
		t.Fatalf("NewTextureContext() error = %v", err)
	}
	if _, err := New(dc, WithPanelSize(0, 10)); err == nil {
		t.Errorf("New() with empty panel succeeded")
	}
}

func TestCornerLayout(t *testing.T) {
	tests := []struct {
		corner Corner
		want   image.Rectangle
	}{
		{TopLeft, image.Rect(6, 6, 106, 46)},
		{TopRight, image.Rect(214, 6, 314, 46)},
		{BottomLeft, image.Rect(6, 154, 106, 194)},
		{BottomRight, image.Rect(214, 154, 314, 194)},
	}
	for _, tt := range tests {
		_, _, p := newOverlay(t, WithCorner(tt.corner), WithPanelSize(100, 40))
		if got := p.Panel(); got != tt.want {
			t.Errorf("corner %d: panel = %v, want %v", tt.corner, got, tt.want)
		}
	}

	_, _, p := newOverlay(t, WithPanelSize(160, 100))
	rect := p.rect.Read()
	want := [4]float64{-1 + 2*6.0/320, 1 - 2*6.0/200, -1 + 2*166.0/320, 1 - 2*106.0/200}
	for i := range want {
		if math.Abs(float64(rect[i])-want[i]) > 1e-6 {
			t.Errorf("rect = %v, want %v", rect, want)
			break
		}
	}
}

func TestResizeMovesPanel(t *testing.T) {
	_, _, p := newOverlay(t, WithCorner(BottomRight), WithPanelSize(100, 40))
	p.OnWindowEvent(event.WindowEvent{Kind: event.Resized, Width: 640, Height: 480})
	if got, want := p.Panel(), image.Rect(534, 434, 634, 474); got != want {
		t.Errorf("panel = %v, want %v", got, want)
	}
}

func TestUploadOnlyWhenTextChanges(t *testing.T) {
	dev, dc, p := newOverlay(t, WithoutFPS())
	q := dev.FakeQueue()
	now := time.Now()

	p.SetLines("objects: 3")
	p.OnUpdate(dc, render_loop.TimeInfo{Now: now})
	p.OnUpdate(dc, render_loop.TimeInfo{Now: now})
	p.SetLines("objects: 3")
	p.OnUpdate(dc, render_loop.TimeInfo{Now: now})
	if got := q.TextureWrites; got != 2 {
		t.Errorf("texture writes = %d, want 2", got)
	}
	if got := p.Text(); len(got) != 1 || got[0] != "objects: 3" {
		t.Errorf("Text() = %q", got)
	}
}

func TestFPSLine(t *testing.T) {
	_, dc, p := newOverlay(t)
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := range 80 {
		p.OnUpdate(dc, render_loop.TimeInfo{Now: start.Add(time.Duration(i) * time.Second / 60)})
	}
	first := p.Text()[0]
	if !strings.HasPrefix(first, "FPS: ") || first == "FPS: 0" {
		t.Errorf("first line = %q", first)
	}
}

func TestMouseHits(t *testing.T) {
	_, _, p := newOverlay(t, WithPanelSize(100, 40))
	tests := []struct {
		name string
		x, y float32
		want event.State
	}{
		{"inside", 20, 20, event.Processed},
		{"outside", 200, 150, event.Ignored},
		{"edge", 106, 20, event.Ignored},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := event.WindowEvent{Kind: event.MouseInput, Mouse: event.MouseEvent{Kind: event.MouseButton, Pressed: true, X: tt.x, Y: tt.y}}
			if got := p.OnWindowEvent(ev); got != tt.want {
				t.Errorf("OnWindowEvent() = %v, want %v", got, tt.want)
			}
			if got := p.OnMouseEvent(ev.Mouse); got != tt.want {
				t.Errorf("OnMouseEvent() = %v, want %v", got, tt.want)
			}
		})
	}
	if got := p.OnMouseEvent(event.MouseEvent{Kind: event.MouseMotion, X: 20, Y: 20}); got != event.Ignored {
		t.Errorf("motion over panel = %v, want Ignored", got)
	}

	release := event.WindowEvent{Kind: event.MouseInput, Mouse: event.MouseEvent{Kind: event.MouseButton, Pressed: false, X: 20, Y: 20}}
	if got := p.OnWindowEvent(release); got != event.Ignored {
		t.Errorf("release over panel = %v, want Ignored", got)
	}
	if got := p.OnMouseEvent(release.Mouse); got != event.Ignored {
		t.Errorf("device release over panel = %v, want Ignored", got)
	}
}

func TestRenderAndRelease(t *testing.T) {
	dev, _, p := newOverlay(t)
	pass := &gputest.Pass{}
	p.OnRender(nil, render_loop.TimeInfo{}, pass)
	if got := pass.Ops[len(pass.Ops)-1]; got != "Draw(6,1)" {
		t.Errorf("last op = %q, want Draw(6,1)", got)
	}

	tex := dev.TexturesLabeled(TextureLabel)[0]
	p.Release()
	if !dev.IsReleased(tex.Handle) || !dev.IsReleased(tex.View) {
		t.Errorf("overlay texture not released")
	}
}
