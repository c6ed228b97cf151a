package camera

import (
	"errors"

	"github.com/Carmen-Shannon/oxy-draw/engine/drawable"
	"github.com/Carmen-Shannon/oxy-draw/engine/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

// Bindings of the camera uniforms in shaders that include the camera snippet.
const (
	UniformGroup    uint32 = 0
	MatrixBinding   uint32 = 0
	PositionBinding uint32 = 1
)

// Uniforms holds the GPU copies of a camera's matrix and eye position.
type Uniforms struct {
	Matrix   *drawable.Uniform[gpu.Mat4]
	Position *drawable.Uniform[gpu.Vec3]
}

// NewUniforms allocates the camera uniforms, initialized to an identity matrix at the origin.
//
// Parameters:
//   - device: the device that owns the buffers
//
// Returns:
//   - *Uniforms: the uniforms
//   - error: error if a buffer could not be created
func NewUniforms(device gpu.Device) (*Uniforms, error) {
	m, err := drawable.NewUniform(device, "Camera Matrix", gpu.Mat4(mgl32.Ident4()))
	if err != nil {
		return nil, err
	}
	p, err := drawable.NewUniform(device, "Camera Position", gpu.Vec3{})
	if err != nil {
		m.Release()
		return nil, err
	}
	return &Uniforms{Matrix: m, Position: p}, nil
}

// Update writes cam's current matrix and position.
func (u *Uniforms) Update(cam Camera) {
	u.Matrix.Write(gpu.Mat4(cam.Matrix()))
	u.Position.Write(gpu.Vec3(cam.Position()))
}

// Bind adds both uniforms to b at their snippet bindings.
//
// Parameters:
//   - b: the drawable builder
//
// Returns:
//   - error: a duplicate binding error if the slots are taken
func (u *Uniforms) Bind(b *drawable.Builder) error {
	return errors.Join(
		b.AddUniform(UniformGroup, MatrixBinding, u.Matrix),
		b.AddUniform(UniformGroup, PositionBinding, u.Position),
	)
}

// Release drops the owner's references to both buffers.
func (u *Uniforms) Release() {
	u.Matrix.Release()
	u.Position.Release()
}
