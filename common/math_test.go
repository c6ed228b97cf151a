package common

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-draw/common/mathtest"
	"github.com/go-gl/mathgl/mgl32"
)

func TestLookAtLHMapsCenterOntoPositiveZ(t *testing.T) {
	eye := mgl32.Vec3{1, 2, -3}
	center := mgl32.Vec3{4, -1, 5}
	view := LookAtLH(eye, center, mgl32.Vec3{0, 1, 0})

	got := view.Mul4x1(center.Vec4(1)).Vec3()
	dist := center.Sub(eye).Len()
	if !mathtest.Vec3(got, mgl32.Vec3{0, 0, dist}) {
		t.Errorf("center in view space = %v, want (0, 0, %v)", got, dist)
	}

	origin := view.Mul4x1(eye.Vec4(1)).Vec3()
	if !mathtest.Vec3(origin, mgl32.Vec3{}) {
		t.Errorf("eye in view space = %v, want origin", origin)
	}
}

func TestRotateAround(t *testing.T) {
	tests := []struct {
		name  string
		v     mgl32.Vec3
		axis  mgl32.Vec3
		angle float32
		want  mgl32.Vec3
	}{
		{"quarter turn about y", mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}, math.Pi / 2, mgl32.Vec3{0, 0, -1}},
		{"unnormalized axis", mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 5}, math.Pi, mgl32.Vec3{0, -1, 0}},
		{"zero axis is a no-op", mgl32.Vec3{1, 2, 3}, mgl32.Vec3{}, 1, mgl32.Vec3{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RotateAround(tt.v, tt.axis, tt.angle)
			if !mathtest.Vec3(got, tt.want) {
				t.Errorf("RotateAround = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalMatrixIgnoresScaleAndTranslation(t *testing.T) {
	rot := mgl32.HomogRotate3D(0.7, mgl32.Vec3{0, 0, 1})
	m := mgl32.Translate3D(5, 6, 7).Mul4(rot).Mul4(mgl32.Scale3D(2, 3, 4))

	got := NormalMatrix(m)
	if !mathtest.Mat3(got, rot.Mat3()) {
		t.Errorf("NormalMatrix = %v, want rotation %v", got, rot.Mat3())
	}
}

func TestNormalMatrixSingular(t *testing.T) {
	got := NormalMatrix(mgl32.Scale3D(0, 1, 1))
	if got != mgl32.Ident3() {
		t.Errorf("NormalMatrix of singular transform = %v, want identity", got)
	}
}

func TestToWebGPUNDC(t *testing.T) {
	near := ToWebGPUNDC.Mul4x1(mgl32.Vec4{0, 0, -1, 1})
	far := ToWebGPUNDC.Mul4x1(mgl32.Vec4{0, 0, 1, 1})
	if math.Abs(float64(near.Z())) > mathtest.Tolerance || math.Abs(float64(far.Z()-1)) > mathtest.Tolerance {
		t.Errorf("depth mapped to [%v, %v], want [0, 1]", near.Z(), far.Z())
	}
}

func TestSliceToBytes(t *testing.T) {
	if SliceToBytes([]float32{}) != nil {
		t.Errorf("SliceToBytes(empty) should be nil")
	}
	if got := len(SliceToBytes([]float32{1, 2, 3})); got != 12 {
		t.Errorf("len = %d, want 12", got)
	}
}
