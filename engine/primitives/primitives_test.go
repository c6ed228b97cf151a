package primitives_test

import (
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-draw/engine/camera"
	"github.com/Carmen-Shannon/oxy-draw/engine/draw_context"
	"github.com/Carmen-Shannon/oxy-draw/engine/gpu/gputest"
	"github.com/Carmen-Shannon/oxy-draw/engine/primitives"
	"github.com/Carmen-Shannon/oxy-draw/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

func setup(t *testing.T) (*gputest.Device, draw_context.DrawContext, *camera.Uniforms) {
	t.Helper()
	dev := gputest.NewDevice()
	dc, err := draw_context.NewTextureContext(dev, 64, 64)
	if err != nil {
		t.Fatalf("NewTextureContext() error = %v", err)
	}
	cam, err := camera.NewUniforms(dev)
	if err != nil {
		t.Fatalf("camera.NewUniforms() error = %v", err)
	}
	return dev, dc, cam
}

func TestGeometry(t *testing.T) {
	if got := len(primitives.CubeCompactIndices); got != 36 {
		t.Errorf("compact indices = %d, want 36", got)
	}
	for _, i := range primitives.CubeCompactIndices {
		if int(i) >= len(primitives.CubeCompactGeometry) {
			t.Fatalf("index %d out of range", i)
		}
	}
	if len(primitives.CubeGeometry) != 36 || len(primitives.CubeNormals) != 36 {
		t.Fatalf("duplicated cube: %d vertices, %d normals", len(primitives.CubeGeometry), len(primitives.CubeNormals))
	}
	// Every vertex of a face lies on the plane its normal points to.
	for i, v := range primitives.CubeGeometry {
		n := primitives.CubeNormals[i]
		if d := v.Dot(n); d != 0.5 {
			t.Errorf("vertex %d %v is not on the face with normal %v", i, v, n)
		}
	}
}

func TestLoadShader(t *testing.T) {
	kinds := []primitives.ShaderKind{
		primitives.ShaderColorCube,
		primitives.ShaderNormalCube,
		primitives.ShaderInstancedCube,
		primitives.ShaderTriangle,
	}
	dev := gputest.NewDevice()
	for _, k := range kinds {
		m, err := primitives.LoadShader(dev, k)
		if err != nil {
			t.Errorf("LoadShader(%d) error = %v", k, err)
			continue
		}
		if strings.Contains(m.Shader().Source(), "@oxy:") {
			t.Errorf("LoadShader(%d) left annotations in the source", k)
		}
	}
	if _, err := primitives.LoadShader(dev, primitives.ShaderKind(99)); err == nil {
		t.Errorf("LoadShader(99) succeeded")
	}
}

func TestColorCube(t *testing.T) {
	dev, dc, cam := setup(t)
	mod, err := primitives.LoadShader(dev, primitives.ShaderColorCube)
	if err != nil {
		t.Fatalf("LoadShader() error = %v", err)
	}

	tests := []struct {
		name    string
		options []primitives.PrimitiveOption
		blend   bool
	}{
		{name: "opaque"},
		{name: "alpha", options: []primitives.PrimitiveOption{primitives.WithAlpha()}, blend: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(dev.Pipelines)
			cube, err := primitives.NewColorCube(dc, mod, mod, cam, tt.options...)
			if err != nil {
				t.Fatalf("NewColorCube() error = %v", err)
			}
			p := dev.Pipelines[before]
			blend := p.Fragment.Targets[0].Blend
			if (blend != nil) != tt.blend {
				t.Fatalf("blend = %v, want set: %v", blend, tt.blend)
			}
			if tt.blend && blend.Color.SrcFactor != wgpu.BlendFactorConstant {
				t.Errorf("blend src factor = %v, want constant", blend.Color.SrcFactor)
			}

			pass := &gputest.Pass{}
			cube.Render(pass)
			if got := pass.Ops[len(pass.Ops)-1]; got != "DrawIndexed(36,1)" {
				t.Errorf("last op = %q, want DrawIndexed(36,1)", got)
			}
			if _, ok := pass.BindGroups[primitives.ObjectGroup]; !ok {
				t.Errorf("object group not bound")
			}
		})
	}
}

func TestNormalCubeTransform(t *testing.T) {
	dev, dc, cam := setup(t)
	mod, err := primitives.LoadShader(dev, primitives.ShaderNormalCube)
	if err != nil {
		t.Fatalf("LoadShader() error = %v", err)
	}
	cube, err := primitives.NewNormalCube(dc, mod, mod, cam)
	if err != nil {
		t.Fatalf("NewNormalCube() error = %v", err)
	}
	cube.SetTransform(mgl32.Scale3D(2, 2, 2))

	pass := &gputest.Pass{}
	cube.Render(pass)
	if got := pass.Ops[len(pass.Ops)-1]; got != "Draw(36,1)" {
		t.Errorf("last op = %q, want Draw(36,1)", got)
	}
	if got := len(dev.Pipelines[0].Vertex.Buffers); got != 2 {
		t.Errorf("vertex buffers = %d, want 2", got)
	}
}

func TestInstancedCube(t *testing.T) {
	const count = 50
	dev, dc, cam := setup(t)
	mod, err := primitives.LoadShader(dev, primitives.ShaderInstancedCube)
	if err != nil {
		t.Fatalf("LoadShader() error = %v", err)
	}
	group, err := primitives.NewInstancedCube(dc, mod, mod, cam, count)
	if err != nil {
		t.Fatalf("NewInstancedCube() error = %v", err)
	}
	if got := group.Len(); got != count {
		t.Errorf("Len() = %d, want %d", got, count)
	}
	group.UpdateInstances(func(i int, inst *scene.Instance) {
		inst.Translation = mgl32.Vec3{float32(i) * 2, 0, 0}
	})

	pass := &gputest.Pass{}
	group.Render(pass)
	if got := pass.Ops[len(pass.Ops)-1]; got != "Draw(36,50)" {
		t.Errorf("last op = %q, want Draw(36,50)", got)
	}
}

func TestTriangle(t *testing.T) {
	dev, dc, _ := setup(t)
	mod, err := primitives.LoadShader(dev, primitives.ShaderTriangle)
	if err != nil {
		t.Fatalf("LoadShader() error = %v", err)
	}
	tri, err := primitives.NewTriangle(dc, mod, mod)
	if err != nil {
		t.Fatalf("NewTriangle() error = %v", err)
	}
	pass := &gputest.Pass{}
	tri.Render(pass)
	if got := pass.Ops[len(pass.Ops)-1]; got != "Draw(3,1)" {
		t.Errorf("last op = %q, want Draw(3,1)", got)
	}
	if _, ok := pass.BindGroups[0]; !ok {
		t.Errorf("transform group not bound")
	}
}
