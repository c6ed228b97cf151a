package mathtest

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestWithin(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want bool
	}{
		{"noise around zero", []float32{-1.19e-7, 8.7e-8}, []float32{0, 0}, true},
		{"equal", []float32{1, 2}, []float32{1, 2}, true},
		{"too far", []float32{1}, []float32{1.001}, false},
		{"length mismatch", []float32{1}, []float32{1, 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Within(tt.a, tt.b, Tolerance); got != tt.want {
				t.Errorf("Within(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestMatricesNearZero(t *testing.T) {
	if !Vec3(mgl32.Vec3{-1.19e-7, 0, 1}, mgl32.Vec3{0, 0, 1}) {
		t.Errorf("Vec3 rejected rounding noise")
	}
	m := mgl32.Ident4()
	m[1] = 8.7e-8
	if !Mat4(m, mgl32.Ident4()) {
		t.Errorf("Mat4 rejected rounding noise")
	}
	if Mat3(mgl32.Ident3(), mgl32.Mat3{}) {
		t.Errorf("Mat3 accepted different matrices")
	}
}
