package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Projection maps view space to clip space.
type Projection interface {
	// Matrix returns the projection matrix.
	Matrix() mgl32.Mat4

	// Resize adapts the projection to a new framebuffer size.
	Resize(width, height uint32)
}

// Perspective is a symmetric perspective frustum.
type Perspective struct {
	Fovy   float32
	Aspect float32
	Near   float32
	Far    float32
}

// DefaultPerspective returns a 45° 16:9 frustum from 0.1 to 1000.
func DefaultPerspective() *Perspective {
	return &Perspective{
		Fovy:   math.Pi / 4,
		Aspect: 16.0 / 9.0,
		Near:   0.1,
		Far:    1000,
	}
}

func (p *Perspective) Matrix() mgl32.Mat4 {
	return mgl32.Perspective(p.Fovy, p.Aspect, p.Near, p.Far)
}

func (p *Perspective) Resize(width, height uint32) {
	if height == 0 {
		return
	}
	p.Aspect = float32(width) / float32(height)
}

// Orthogonal is a box projection centered on the view axis.
type Orthogonal struct {
	Width  float32
	Height float32
	Near   float32
	Far    float32
}

// DefaultOrthogonal returns a 4 x 2.25 box from 0 to 1000.
func DefaultOrthogonal() *Orthogonal {
	return &Orthogonal{
		Width:  16.0 / 4.0,
		Height: 9.0 / 4.0,
		Near:   0,
		Far:    1000,
	}
}

func (o *Orthogonal) Matrix() mgl32.Mat4 {
	return mgl32.Ortho(-o.Width/2, o.Width/2, -o.Height/2, o.Height/2, o.Near, o.Far)
}

// Resize sets the box to the framebuffer size in pixels.
func (o *Orthogonal) Resize(width, height uint32) {
	if width == 0 || height == 0 {
		return
	}
	o.Width = float32(width)
	o.Height = float32(height)
}
