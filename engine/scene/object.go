package scene

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/Carmen-Shannon/oxy-draw/engine/drawable"
	"github.com/Carmen-Shannon/oxy-draw/engine/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

// Bindings of the per-object uniforms within their group.
const (
	TransformBinding uint32 = 0
	NormalBinding    uint32 = 1
)

// ObjectUniforms are the per-object model transform and, for lit geometry,
// the normal matrix.
type ObjectUniforms struct {
	Transform *drawable.Uniform[gpu.Mat4]
	Normals   *drawable.Uniform[gpu.Mat3]
}

// NewObjectUniforms allocates an identity transform and, if withNormals is
// set, an identity normal matrix.
//
// Parameters:
//   - device: the device that owns the buffers
//   - withNormals: whether to allocate the normal matrix
//
// Returns:
//   - *ObjectUniforms: the uniforms
//   - error: error if a buffer could not be created
func NewObjectUniforms(device gpu.Device, withNormals bool) (*ObjectUniforms, error) {
	t, err := drawable.NewUniform(device, "Object Transform", gpu.Mat4(mgl32.Ident4()))
	if err != nil {
		return nil, err
	}
	u := &ObjectUniforms{Transform: t}
	if withNormals {
		u.Normals, err = drawable.NewUniform(device, "Object Normals", gpu.Mat3(mgl32.Ident3()))
		if err != nil {
			t.Release()
			return nil, err
		}
	}
	return u, nil
}

// Bind adds the uniforms to b in group.
func (u *ObjectUniforms) Bind(b *drawable.Builder, group uint32) error {
	if err := b.AddUniform(group, TransformBinding, u.Transform); err != nil {
		return err
	}
	if u.Normals != nil {
		return b.AddUniform(group, NormalBinding, u.Normals)
	}
	return nil
}

// Release drops the owner's references.
func (u *ObjectUniforms) Release() {
	u.Transform.Release()
	if u.Normals != nil {
		u.Normals.Release()
	}
}

// Object3D is a single drawable with a model transform.
type Object3D struct {
	mu        *sync.Mutex
	drawable  drawable.Drawable
	uniforms  *ObjectUniforms
	transform mgl32.Mat4
	opacity   float32
}

// NewObject3D wraps d, whose pipeline reads u, with an identity transform and full opacity.
func NewObject3D(d drawable.Drawable, u *ObjectUniforms) *Object3D {
	return &Object3D{
		mu:        &sync.Mutex{},
		drawable:  d,
		uniforms:  u,
		transform: mgl32.Ident4(),
		opacity:   1,
	}
}

// Drawable returns the wrapped drawable.
func (o *Object3D) Drawable() drawable.Drawable {
	return o.drawable
}

func (o *Object3D) Render(pass gpu.RenderPass) {
	o.drawable.Render(pass)
}

// Transform returns the model transform.
func (o *Object3D) Transform() mgl32.Mat4 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.transform
}

// SetTransform replaces the model transform and uploads it.
func (o *Object3D) SetTransform(m mgl32.Mat4) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.transform = m
	o.upload()
}

// ApplyTransform pre-multiplies the model transform by m and uploads it.
func (o *Object3D) ApplyTransform(m mgl32.Mat4) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.transform = m.Mul4(o.transform)
	o.upload()
}

// SetOpacity clamps v to [0, 1] and uses it as the blend constant.
func (o *Object3D) SetOpacity(v float32) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.opacity = common.Clamp(v, 0, 1)
	o.drawable.SetBlendColorOpacity(float64(o.opacity))
}

// Opacity returns the current opacity.
func (o *Object3D) Opacity() float32 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.opacity
}

// Release drops the drawable and the object's uniforms.
func (o *Object3D) Release() {
	o.drawable.Release()
	o.uniforms.Release()
}

func (o *Object3D) upload() {
	o.uniforms.Transform.Write(gpu.Mat4(o.transform))
	if o.uniforms.Normals != nil {
		o.uniforms.Normals.Write(gpu.Mat3(common.NormalMatrix(o.transform)))
	}
}
