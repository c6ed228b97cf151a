package scene

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/Carmen-Shannon/oxy-draw/engine/drawable"
	"github.com/Carmen-Shannon/oxy-draw/engine/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

// Instance places one copy of an instanced geometry.
type Instance struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
}

// NewInstance returns an instance at the origin with no rotation.
func NewInstance() Instance {
	return Instance{Rotation: mgl32.QuatIdent()}
}

// ApplyRotation post-multiplies the rotation by r.
func (i *Instance) ApplyRotation(r mgl32.Quat) {
	i.Rotation = i.Rotation.Mul(r)
}

// ApplyTranslation adds t to the translation.
func (i *Instance) ApplyTranslation(t mgl32.Vec3) {
	i.Translation = i.Translation.Add(t)
}

// Transform returns translate * rotate.
func (i Instance) Transform() mgl32.Mat4 {
	return common.TranslationRotation(i.Translation, i.Rotation)
}

// InstanceBuffers holds the host instances and their transform and normal
// matrix storage buffers.
type InstanceBuffers struct {
	instances  []Instance
	transforms *drawable.StorageBuffer[gpu.Mat4]
	normals    *drawable.StorageBuffer[gpu.Mat3]
}

// NewInstanceBuffers allocates count instances at the origin.
//
// Parameters:
//   - device: the device that owns the buffers
//   - count: the number of instances, at least 1
//
// Returns:
//   - *InstanceBuffers: the buffers
//   - error: error if a buffer could not be created
func NewInstanceBuffers(device gpu.Device, count int) (*InstanceBuffers, error) {
	instances := make([]Instance, count)
	transforms := make([]gpu.Mat4, count)
	normals := make([]gpu.Mat3, count)
	for i := range instances {
		instances[i] = NewInstance()
		transforms[i] = gpu.Mat4(mgl32.Ident4())
		normals[i] = gpu.Mat3(mgl32.Ident3())
	}

	t, err := drawable.NewStorageBuffer(device, "Instance Transforms", transforms)
	if err != nil {
		return nil, err
	}
	n, err := drawable.NewStorageBuffer(device, "Instance Normals", normals)
	if err != nil {
		t.Release()
		return nil, err
	}
	return &InstanceBuffers{instances: instances, transforms: t, normals: n}, nil
}

// Len returns the number of instances.
func (b *InstanceBuffers) Len() int {
	return len(b.instances)
}

// Transforms returns the per-instance model matrix buffer.
func (b *InstanceBuffers) Transforms() *drawable.StorageBuffer[gpu.Mat4] {
	return b.transforms
}

// Normals returns the per-instance normal matrix buffer.
func (b *InstanceBuffers) Normals() *drawable.StorageBuffer[gpu.Mat3] {
	return b.normals
}

// Bind adds the transform and normal storage buffers to builder in group.
func (b *InstanceBuffers) Bind(builder *drawable.Builder, group uint32) error {
	if err := builder.AddStorageBuffer(group, TransformBinding, b.transforms); err != nil {
		return err
	}
	return builder.AddStorageBuffer(group, NormalBinding, b.normals)
}

// Release drops the owner's references.
func (b *InstanceBuffers) Release() {
	b.transforms.Release()
	b.normals.Release()
}

// update runs fn on every instance across the worker pool with both guards
// held, then flushes each buffer once.
func (b *InstanceBuffers) update(fn func(i int, inst *Instance)) {
	tg := b.transforms.StartWrite()
	defer tg.Release()
	ng := b.normals.StartWrite()
	defer ng.Release()

	normals := ng.Values()
	tg.Parallel(func(i int, m *gpu.Mat4) {
		inst := &b.instances[i]
		fn(i, inst)
		*m = gpu.Mat4(inst.Transform())
		normals[i] = gpu.Mat3(inst.Rotation.Normalize().Mat4().Mat3())
	})
}

// InstanceGroup draws many copies of one geometry, each placed by an Instance.
// Its opacity starts at 0.
type InstanceGroup struct {
	mu       *sync.Mutex
	drawable drawable.Drawable
	buffers  *InstanceBuffers
	opacity  float32
}

// NewInstanceGroup wraps d, whose pipeline reads buffers.
func NewInstanceGroup(d drawable.Drawable, buffers *InstanceBuffers) *InstanceGroup {
	return &InstanceGroup{
		mu:       &sync.Mutex{},
		drawable: d,
		buffers:  buffers,
	}
}

// Drawable returns the wrapped drawable.
func (g *InstanceGroup) Drawable() drawable.Drawable {
	return g.drawable
}

func (g *InstanceGroup) Render(pass gpu.RenderPass) {
	g.drawable.Render(pass)
}

// Len returns the number of instances.
func (g *InstanceGroup) Len() int {
	return g.buffers.Len()
}

// UpdateInstances calls fn once for every instance, in parallel, and
// uploads the resulting transforms and normal matrices.
//
// Parameters:
//   - fn: mutates instance i; it must only touch inst
func (g *InstanceGroup) UpdateInstances(fn func(i int, inst *Instance)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.buffers.update(fn)
}

// Instance returns a copy of instance i.
func (g *InstanceGroup) Instance(i int) Instance {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.buffers.instances[i]
}

// SetOpacity clamps v to [0, 1] and uses it as the blend constant.
func (g *InstanceGroup) SetOpacity(v float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.opacity = common.Clamp(v, 0, 1)
	g.drawable.SetBlendColorOpacity(float64(g.opacity))
}

// Opacity returns the current opacity.
func (g *InstanceGroup) Opacity() float32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.opacity
}

// Release drops the drawable and the instance buffers.
func (g *InstanceGroup) Release() {
	g.drawable.Release()
	g.buffers.Release()
}
