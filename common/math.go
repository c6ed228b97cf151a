package common

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// ToWebGPUNDC remaps clip-space depth from [-1, 1] to the [0, 1] range WebGPU expects.
var ToWebGPUNDC = mgl32.Translate3D(0, 0, 0.5).Mul4(mgl32.Scale3D(1, 1, 0.5))

// SwitchZAxis converts between left-handed view space and the right-handed space the projections assume.
var SwitchZAxis = mgl32.Scale3D(1, 1, -1)

// LookAtLH builds a left-handed view matrix looking from eye towards center.
// The resulting matrix maps center onto the positive z axis.
//
// Parameters:
//   - eye: the camera position
//   - center: the point being looked at
//   - up: the approximate up direction
//
// Returns:
//   - mgl32.Mat4: the column-major view matrix
func LookAtLH(eye, center, up mgl32.Vec3) mgl32.Mat4 {
	f := center.Sub(eye).Normalize()
	s := up.Cross(f).Normalize()
	u := f.Cross(s)

	return mgl32.Mat4{
		s.X(), u.X(), f.X(), 0,
		s.Y(), u.Y(), f.Y(), 0,
		s.Z(), u.Z(), f.Z(), 0,
		-s.Dot(eye), -u.Dot(eye), -f.Dot(eye), 1,
	}
}

// RotateAround rotates v by angle radians around axis.
//
// Parameters:
//   - v: the vector to rotate
//   - axis: the rotation axis (normalized internally)
//   - angle: the rotation angle in radians
//
// Returns:
//   - mgl32.Vec3: the rotated vector
func RotateAround(v, axis mgl32.Vec3, angle float32) mgl32.Vec3 {
	if axis.Len() == 0 {
		return v
	}
	return mgl32.QuatRotate(angle, axis.Normalize()).Rotate(v)
}

// NormalMatrix returns the inverse-transpose of the rotation part of m.
// Scale is stripped by normalizing the upper 3x3 columns first; a singular
// rotation block yields the identity.
//
// Parameters:
//   - m: the model transform
//
// Returns:
//   - mgl32.Mat3: the matrix used to transform normals
func NormalMatrix(m mgl32.Mat4) mgl32.Mat3 {
	r := m.Mat3()
	c0, c1, c2 := r.Cols()
	if c0.Len() == 0 || c1.Len() == 0 || c2.Len() == 0 {
		return mgl32.Ident3()
	}
	rot := mgl32.Mat3FromCols(c0.Normalize(), c1.Normalize(), c2.Normalize())
	if rot.Det() == 0 {
		return mgl32.Ident3()
	}
	return rot.Inv().Transpose()
}

// TranslationRotation builds translate * rotate for an instance placement.
func TranslationRotation(translation mgl32.Vec3, rotation mgl32.Quat) mgl32.Mat4 {
	return mgl32.Translate3D(translation.X(), translation.Y(), translation.Z()).Mul4(rotation.Normalize().Mat4())
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}
