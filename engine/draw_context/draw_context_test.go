package draw_context_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/Carmen-Shannon/oxy-draw/engine/draw_context"
	"github.com/Carmen-Shannon/oxy-draw/engine/gpu"
	"github.com/Carmen-Shannon/oxy-draw/engine/gpu/gputest"
	"github.com/cogentcore/webgpu/wgpu"
)

func TestResizeRecreatesAttachments(t *testing.T) {
	dev := gputest.NewSurfaceDevice(wgpu.TextureFormatBGRA8Unorm)
	dc, err := draw_context.NewSurfaceContext(dev, 800, 600)
	if err != nil {
		t.Fatalf("NewSurfaceContext() error = %v", err)
	}

	dc.Resize(400, 300)
	if w, h := dc.Dimensions(); w != 400 || h != 300 {
		t.Fatalf("Dimensions() = %dx%d, want 400x300", w, h)
	}
	if err := dc.RenderScene(func(gpu.RenderPass) {}); err != nil {
		t.Fatalf("RenderScene() error = %v", err)
	}

	for _, label := range []string{draw_context.DepthTextureLabel, draw_context.MSAATextureLabel} {
		textures := dev.TexturesLabeled(label)
		if len(textures) != 2 {
			t.Fatalf("%s created %d times, want 2", label, len(textures))
		}
		latest := textures[1]
		if latest.Width != 400 || latest.Height != 300 {
			t.Errorf("%s size = %dx%d, want 400x300", label, latest.Width, latest.Height)
		}
		if latest.SampleCount != 4 {
			t.Errorf("%s samples = %d, want 4", label, latest.SampleCount)
		}
		if !dev.IsReleased(textures[0].Handle) {
			t.Errorf("old %s not released", label)
		}
	}

	desc := dev.LastEncoder().Descriptors[0]
	if desc.DepthStencilAttachment.View != dev.TexturesLabeled(draw_context.DepthTextureLabel)[1].View {
		t.Errorf("pass does not use the resized depth texture")
	}
	if want := [][2]uint32{{800, 600}, {400, 300}}; !slices.Equal(dev.FakeSurface().Configured, want) {
		t.Errorf("surface configured = %v, want %v", dev.FakeSurface().Configured, want)
	}
}

func TestResizeIgnoresZero(t *testing.T) {
	dev := gputest.NewDevice()
	dc, err := draw_context.NewTextureContext(dev, 0, 0)
	if err != nil {
		t.Fatalf("NewTextureContext() error = %v", err)
	}
	dc.Resize(0, 100)
	if w, h := dc.Dimensions(); w != draw_context.DefaultTextureSize || h != draw_context.DefaultTextureSize {
		t.Errorf("Dimensions() = %dx%d, want default", w, h)
	}
	if got := len(dev.TexturesLabeled(draw_context.DepthTextureLabel)); got != 1 {
		t.Errorf("depth textures = %d, want 1", got)
	}
}

func TestRenderSceneSurface(t *testing.T) {
	dev := gputest.NewSurfaceDevice(wgpu.TextureFormatBGRA8Unorm)
	dc, err := draw_context.NewSurfaceContext(dev, 640, 480)
	if err != nil {
		t.Fatal(err)
	}

	called := false
	err = dc.RenderScene(func(pass gpu.RenderPass) {
		called = true
		pass.Draw(3, 1)
	})
	if err != nil {
		t.Fatalf("RenderScene() error = %v", err)
	}
	if !called {
		t.Fatal("RenderScene() did not call fn")
	}

	enc := dev.LastEncoder()
	if !enc.Submitted {
		t.Errorf("encoder not submitted")
	}
	if want := []string{"Draw(3,1)", "End"}; !slices.Equal(enc.Passes[0].Ops, want) {
		t.Errorf("pass ops = %v, want %v", enc.Passes[0].Ops, want)
	}
	color := enc.Descriptors[0].ColorAttachments[0]
	if color.LoadOp != wgpu.LoadOpClear || color.ClearValue != (wgpu.Color{R: 0, G: 0.5, B: 0.5, A: 1}) {
		t.Errorf("color attachment = %+v, want teal clear", color)
	}
	if color.ResolveTarget == nil {
		t.Errorf("MSAA pass has no resolve target")
	}
	if got := enc.Descriptors[0].DepthStencilAttachment.DepthClearValue; got != 1.0 {
		t.Errorf("depth clear = %v, want 1.0", got)
	}
	if s := dev.FakeSurface(); s.Presented != 1 || s.Discarded != 0 {
		t.Errorf("presented = %d discarded = %d, want 1 and 0", s.Presented, s.Discarded)
	}
}

func TestRenderSceneSurfaceUnavailable(t *testing.T) {
	dev := gputest.NewSurfaceDevice(wgpu.TextureFormatBGRA8Unorm)
	dc, err := draw_context.NewSurfaceContext(dev, 640, 480)
	if err != nil {
		t.Fatal(err)
	}
	dev.FakeSurface().AcquireErr = errors.New("outdated")

	err = dc.RenderScene(func(gpu.RenderPass) {
		t.Error("fn called without a surface image")
	})
	if !errors.Is(err, draw_context.ErrSurfaceUnavailable) {
		t.Errorf("RenderScene() error = %v, want ErrSurfaceUnavailable", err)
	}
	if len(dev.Encoders) != 0 {
		t.Errorf("encoders = %d, want 0", len(dev.Encoders))
	}
}

func TestTextureContextOptions(t *testing.T) {
	tests := []struct {
		name        string
		options     []draw_context.DrawContextBuilderOption
		wantLoad    wgpu.LoadOp
		wantMSAA    int
		wantResolve bool
	}{
		{
			name:        "defaults",
			wantLoad:    wgpu.LoadOpClear,
			wantMSAA:    1,
			wantResolve: true,
		},
		{
			name:     "no clear no msaa",
			options:  []draw_context.DrawContextBuilderOption{draw_context.WithClearColor(nil), draw_context.WithMultisampleCount(1)},
			wantLoad: wgpu.LoadOpLoad,
			wantMSAA: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := gputest.NewDevice()
			dc, err := draw_context.NewTextureContext(dev, 0, 0, tt.options...)
			if err != nil {
				t.Fatal(err)
			}
			if dc.Target() != draw_context.TargetTexture {
				t.Errorf("Target() = %v, want TargetTexture", dc.Target())
			}
			targets := dev.TexturesLabeled(draw_context.TargetTextureLabel)
			if len(targets) != 1 || targets[0].Format != wgpu.TextureFormatRGBA8UnormSrgb {
				t.Fatalf("target textures = %+v", targets)
			}
			if targets[0].Usage != wgpu.TextureUsageCopySrc|wgpu.TextureUsageRenderAttachment {
				t.Errorf("target usage = %v", targets[0].Usage)
			}
			if got := len(dev.TexturesLabeled(draw_context.MSAATextureLabel)); got != tt.wantMSAA {
				t.Errorf("msaa textures = %d, want %d", got, tt.wantMSAA)
			}

			if err := dc.RenderScene(func(gpu.RenderPass) {}); err != nil {
				t.Fatal(err)
			}
			color := dev.LastEncoder().Descriptors[0].ColorAttachments[0]
			if color.LoadOp != tt.wantLoad {
				t.Errorf("LoadOp = %v, want %v", color.LoadOp, tt.wantLoad)
			}
			if (color.ResolveTarget != nil) != tt.wantResolve {
				t.Errorf("resolve target set = %v, want %v", color.ResolveTarget != nil, tt.wantResolve)
			}
		})
	}
}

func TestNewSurfaceContextWithoutSurface(t *testing.T) {
	if _, err := draw_context.NewSurfaceContext(gputest.NewDevice(), 10, 10); !errors.Is(err, draw_context.ErrNoSurface) {
		t.Errorf("NewSurfaceContext() error = %v, want ErrNoSurface", err)
	}
}

func TestResizeFailureKeepsAttachments(t *testing.T) {
	dev := gputest.NewDevice()
	dc, err := draw_context.NewTextureContext(dev, 800, 600)
	if err != nil {
		t.Fatalf("NewTextureContext() error = %v", err)
	}
	oldDepth := dev.TexturesLabeled(draw_context.DepthTextureLabel)[0]

	dev.FailTextureLabel = draw_context.DepthTextureLabel
	dc.Resize(400, 300)
	if w, h := dc.Dimensions(); w != 800 || h != 600 {
		t.Errorf("Dimensions() = %dx%d, want 800x600 after a failed resize", w, h)
	}

	targets := dev.TexturesLabeled(draw_context.TargetTextureLabel)
	if len(targets) != 2 {
		t.Fatalf("target textures = %d, want 2", len(targets))
	}
	if !dev.IsReleased(targets[1].Handle) {
		t.Errorf("target created for the failed resize was not released")
	}
	if dev.IsReleased(targets[0].Handle) || dev.IsReleased(oldDepth.Handle) {
		t.Errorf("current attachments released by a failed resize")
	}

	if err := dc.RenderScene(func(gpu.RenderPass) {}); err != nil {
		t.Fatalf("RenderScene() error = %v", err)
	}
	desc := dev.LastEncoder().Descriptors[0]
	if desc.DepthStencilAttachment.View != oldDepth.View {
		t.Errorf("pass does not use the previous depth texture")
	}

	dev.FailTextureLabel = ""
	dc.Resize(400, 300)
	if w, h := dc.Dimensions(); w != 400 || h != 300 {
		t.Errorf("Dimensions() = %dx%d, want 400x300 once textures can be created", w, h)
	}
}

func TestRenderSceneAfterRelease(t *testing.T) {
	dc, err := draw_context.NewTextureContext(gputest.NewDevice(), 16, 16)
	if err != nil {
		t.Fatal(err)
	}
	dc.Release()
	if err := dc.RenderScene(func(gpu.RenderPass) {}); !errors.Is(err, draw_context.ErrReleased) {
		t.Errorf("RenderScene() error = %v, want ErrReleased", err)
	}
}
