// Package mathtest compares float vectors and matrices in tests with an
// absolute tolerance, so that rounding noise around zero still compares equal.
package mathtest

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Tolerance is the default absolute per-component tolerance.
const Tolerance = 1e-5

// Within reports whether a and b have the same length and no component
// differs by more than tol.
func Within(a, b []float32, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > tol {
			return false
		}
	}
	return true
}

// Vec3 compares a and b within Tolerance.
func Vec3(a, b mgl32.Vec3) bool { return Within(a[:], b[:], Tolerance) }

// Mat3 compares a and b within Tolerance.
func Mat3(a, b mgl32.Mat3) bool { return Within(a[:], b[:], Tolerance) }

// Mat4 compares a and b within Tolerance.
func Mat4(a, b mgl32.Mat4) bool { return Within(a[:], b[:], Tolerance) }
