// Package primitives builds ready-to-render cubes and triangles on top of the
// drawable builder and the scene types.
package primitives

import (
	"errors"

	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/Carmen-Shannon/oxy-draw/engine/camera"
	"github.com/Carmen-Shannon/oxy-draw/engine/drawable"
	"github.com/Carmen-Shannon/oxy-draw/engine/scene"
	"github.com/Carmen-Shannon/oxy-draw/engine/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// ObjectGroup is the bind group holding per-object or per-instance resources.
const ObjectGroup uint32 = 1

// NewColorCube builds an indexed cube with one color per corner.
//
// Parameters:
//   - target: the render destination
//   - vertex: module with the vertex entry point, reading position at 0 and color at 1
//   - fragment: module with the fragment entry point
//   - cam: the scene camera uniforms, bound at group 0
//   - options: primitive options
//
// Returns:
//   - *scene.Object3D: the cube with an identity transform
//   - error: error if a buffer or the pipeline could not be created
func NewColorCube(target drawable.Target, vertex, fragment *shader.Module, cam *camera.Uniforms, options ...PrimitiveOption) (*scene.Object3D, error) {
	cfg := applyOptions(options)
	u, err := scene.NewObjectUniforms(target.Device(), false)
	if err != nil {
		return nil, err
	}

	b := drawable.NewBuilder(target, vertex, fragment, drawable.IndexedU16(CubeCompactIndices), append([]drawable.BuilderOption{drawable.WithLabel("Color Cube")}, cfg.builder...)...)
	err = errors.Join(
		b.AddAttribute(0, wgpu.VertexStepModeVertex, common.SliceToBytes(CubeCompactGeometry), wgpu.VertexFormatFloat32x3),
		b.AddAttribute(1, wgpu.VertexStepModeVertex, common.SliceToBytes(CubeCompactColors), wgpu.VertexFormatFloat32x3),
		cam.Bind(b),
		u.Bind(b, ObjectGroup),
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

// NewNormalCube builds a 36 vertex cube with per-face normals and a normal
// matrix uniform, for lit shaders.
//
// Parameters:
//   - target: the render destination
//   - vertex: module with the vertex entry point, reading position at 0 and normal at 1
//   - fragment: module with the fragment entry point
//   - cam: the scene camera uniforms, bound at group 0
//   - options: primitive options
//
// Returns:
//   - *scene.Object3D: the cube with an identity transform
//   - error: error if a buffer or the pipeline could not be created
func NewNormalCube(target drawable.Target, vertex, fragment *shader.Module, cam *camera.Uniforms, options ...PrimitiveOption) (*scene.Object3D, error) {
	cfg := applyOptions(options)
	u, err := scene.NewObjectUniforms(target.Device(), true)
	if err != nil {
		return nil, err
	}

	b := drawable.NewBuilder(target, vertex, fragment, drawable.Direct{VertexCount: uint32(len(CubeGeometry))}, append([]drawable.BuilderOption{drawable.WithLabel("Normal Cube")}, cfg.builder...)...)
	err = errors.Join(
		addCubeAttributes(b),
		cam.Bind(b),
		u.Bind(b, ObjectGroup),
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

// NewInstancedCube builds count cubes drawn with one instanced draw call. The
// per-instance transforms and normal matrices are storage buffers at group 1.
//
// Parameters:
//   - target: the render destination
//   - vertex: module with the vertex entry point
//   - fragment: module with the fragment entry point
//   - cam: the scene camera uniforms, bound at group 0
//   - count: the number of instances
//   - options: primitive options
//
// Returns:
//   - *scene.InstanceGroup: the cubes, all at the origin
//   - error: error if a buffer or the pipeline could not be created
func NewInstancedCube(target drawable.Target, vertex, fragment *shader.Module, cam *camera.Uniforms, count int, options ...PrimitiveOption) (*scene.InstanceGroup, error) {
	cfg := applyOptions(options)
	buffers, err := scene.NewInstanceBuffers(target.Device(), count)
	if err != nil {
		return nil, err
	}

	b := drawable.NewBuilder(target, vertex, fragment, drawable.Direct{VertexCount: uint32(len(CubeGeometry))}, append([]drawable.BuilderOption{drawable.WithLabel("Instanced Cube")}, cfg.builder...)...)
	b.SetInstanceCount(uint32(count))
	err = errors.Join(
		addCubeAttributes(b),
		cam.Bind(b),
		buffers.Bind(b, ObjectGroup),
	)
	if err != nil {
		buffers.Release()
		return nil, err
	}
	cfg.apply(b)

	d, err := b.Build()
	if err != nil {
		buffers.Release()
		return nil, err
	}
	return scene.NewInstanceGroup(d, buffers), nil
}

func addCubeAttributes(b *drawable.Builder) error {
	return errors.Join(
		b.AddAttribute(0, wgpu.VertexStepModeVertex, common.SliceToBytes(CubeGeometry), wgpu.VertexFormatFloat32x3),
		b.AddAttribute(1, wgpu.VertexStepModeVertex, common.SliceToBytes(CubeNormals), wgpu.VertexFormatFloat32x3),
	)
}
