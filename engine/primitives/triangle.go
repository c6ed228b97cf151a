package primitives

import (
	"errors"

	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/Carmen-Shannon/oxy-draw/engine/drawable"
	"github.com/Carmen-Shannon/oxy-draw/engine/scene"
	"github.com/Carmen-Shannon/oxy-draw/engine/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// NewTriangle builds a red, green and blue equilateral triangle. It has no
// camera: its transform uniform at group 0 maps straight to clip space.
//
// Parameters:
//   - target: the render destination
//   - vertex: module with the vertex entry point, reading position at 0 and color at 1
//   - fragment: module with the fragment entry point
//   - options: primitive options
//
// Returns:
//   - *scene.Object3D: the triangle with an identity transform
//   - error: error if a buffer or the pipeline could not be created
func NewTriangle(target drawable.Target, vertex, fragment *shader.Module, options ...PrimitiveOption) (*scene.Object3D, error) {
	cfg := applyOptions(options)
	u, err := scene.NewObjectUniforms(target.Device(), false)
	if err != nil {
		return nil, err
	}

	b := drawable.NewBuilder(target, vertex, fragment, drawable.Direct{VertexCount: uint32(len(TriangleGeometry))}, append([]drawable.BuilderOption{drawable.WithLabel("Triangle")}, cfg.builder...)...)
	err = errors.Join(
		b.AddAttribute(0, wgpu.VertexStepModeVertex, common.SliceToBytes(TriangleGeometry), wgpu.VertexFormatFloat32x3),
		b.AddAttribute(1, wgpu.VertexStepModeVertex, common.SliceToBytes(TriangleColors), wgpu.VertexFormatFloat32x3),
		u.Bind(b, 0),
	)
	if err != nil {
		u.Release()
		return nil, err
	}
	cfg.apply(b)

	d, err := b.Build()
	if err != nil {
		u.Release()
		return nil, err
	}
	return scene.NewObject3D(d, u), nil
}
