package gpu

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Marshaler is implemented by host values that know their GPU memory layout.
// MarshalTo writes exactly Size bytes of the aligned representation into dst.
type Marshaler interface {
	Size() int
	MarshalTo(dst []byte)
}

// Marshal serializes v into a freshly allocated byte slice.
//
// Parameters:
//   - v: the value to serialize
//
// Returns:
//   - []byte: the aligned bytes of v
func Marshal(v Marshaler) []byte {
	buf := make([]byte, v.Size())
	v.MarshalTo(buf)
	return buf
}

func putFloats(dst []byte, values ...float32) {
	for i, f := range values {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(f))
	}
}

// Float32 is a scalar f32 uniform.
type Float32 float32

func (f Float32) Size() int { return 4 }

func (f Float32) MarshalTo(dst []byte) { putFloats(dst, float32(f)) }

// Uint32 is a scalar u32 uniform.
type Uint32 uint32

func (u Uint32) Size() int { return 4 }

func (u Uint32) MarshalTo(dst []byte) { binary.LittleEndian.PutUint32(dst, uint32(u)) }

// Vec2 is a vec2<f32>.
type Vec2 mgl32.Vec2

func (v Vec2) Size() int { return 8 }

func (v Vec2) MarshalTo(dst []byte) { putFloats(dst, v[:]...) }

// Vec3 is a vec3<f32>. Standalone it occupies 12 bytes; inside arrays the
// 16-byte stride is handled by Vec4.
type Vec3 mgl32.Vec3

func (v Vec3) Size() int { return 12 }

func (v Vec3) MarshalTo(dst []byte) { putFloats(dst, v[:]...) }

// Vec4 is a vec4<f32>.
type Vec4 mgl32.Vec4

func (v Vec4) Size() int { return 16 }

func (v Vec4) MarshalTo(dst []byte) { putFloats(dst, v[:]...) }

// Mat3 is a mat3x3<f32>. Each column is padded to 16 bytes, so the aligned
// form is three 4-wide columns (48 bytes).
type Mat3 mgl32.Mat3

func (m Mat3) Size() int { return 48 }

func (m Mat3) MarshalTo(dst []byte) {
	for c := range 3 {
		putFloats(dst[c*16:], m[c*3], m[c*3+1], m[c*3+2], 0)
	}
}

// Mat4 is a mat4x4<f32> in column-major order.
type Mat4 mgl32.Mat4

func (m Mat4) Size() int { return 64 }

func (m Mat4) MarshalTo(dst []byte) { putFloats(dst, m[:]...) }
