package camera

import (
	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/go-gl/mathgl/mgl32"
)

// View is a left-handed look-at placement.
type View struct {
	Eye    mgl32.Vec3
	Center mgl32.Vec3
	Up     mgl32.Vec3
}

// DefaultView looks from (0, 0, -10) at the origin with +y up.
func DefaultView() View {
	return View{
		Eye:    mgl32.Vec3{0, 0, -10},
		Center: mgl32.Vec3{0, 0, 0},
		Up:     mgl32.Vec3{0, 1, 0},
	}
}

// Matrix returns the view matrix.
func (v *View) Matrix() mgl32.Mat4 {
	return common.LookAtLH(v.Eye, v.Center, v.Up)
}

func (v *View) forward() mgl32.Vec3 {
	return v.Center.Sub(v.Eye).Normalize()
}

// MoveX slides the eye sideways by val. The center follows unless lockCenter is set.
func (v *View) MoveX(val float32, lockCenter bool) {
	v.translate(v.Up.Cross(v.forward()).Mul(val), lockCenter)
}

// MoveY slides the eye along the up vector by val.
func (v *View) MoveY(val float32, lockCenter bool) {
	v.translate(v.Up.Mul(val), lockCenter)
}

// MoveZ moves the eye towards the center by val.
func (v *View) MoveZ(val float32, lockCenter bool) {
	v.translate(v.forward().Mul(val), lockCenter)
}

// Roll rotates the up vector around the viewing direction.
func (v *View) Roll(val float32) {
	v.Up = common.RotateAround(v.Up, v.forward(), val)
}

// Tilt pitches the view up or down around the eye.
func (v *View) Tilt(val float32) {
	forward := v.forward()
	v.Up = common.RotateAround(v.Up, v.Up.Cross(forward), val)
	rotated := common.RotateAround(forward, v.Up.Cross(forward), val)
	v.Center = v.Eye.Add(rotated.Mul(v.Center.Sub(v.Eye).Len()))
}

// Pan turns the view left or right around the up vector.
func (v *View) Pan(val float32) {
	rotated := common.RotateAround(v.forward(), v.Up, val)
	v.Center = v.Eye.Add(rotated.Mul(v.Center.Sub(v.Eye).Len()))
}

func (v *View) translate(delta mgl32.Vec3, lockCenter bool) {
	v.Eye = v.Eye.Add(delta)
	if !lockCenter {
		v.Center = v.Center.Add(delta)
	}
}
