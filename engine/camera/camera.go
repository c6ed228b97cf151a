package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	mu *sync.Mutex

	view       View
	projection Projection

	viewCache       mgl32.Mat4
	projectionCache mgl32.Mat4
}

// Camera combines a View and a Projection and caches both matrices. Every
// mutation recomputes the affected cache immediately.
type Camera interface {
	// Matrix returns the combined camera matrix in WebGPU clip space:
	// ToWebGPUNDC * projection * SwitchZAxis * view.
	//
	// Returns:
	//   - mgl32.Mat4: the camera matrix
	Matrix() mgl32.Mat4

	// Position returns the eye position.
	//
	// Returns:
	//   - mgl32.Vec3: the world-space eye position
	Position() mgl32.Vec3

	// View returns a copy of the current view.
	View() View

	// SetView replaces the view.
	SetView(v View)

	// SetProjection replaces the projection.
	SetProjection(p Projection)

	// Resize adapts the projection to a new framebuffer size.
	//
	// Parameters:
	//   - width: the framebuffer width in pixels
	//   - height: the framebuffer height in pixels
	Resize(width, height uint32)

	MoveX(val float32)
	MoveY(val float32)
	MoveZ(val float32)
	Pan(val float32)
	Tilt(val float32)
	Roll(val float32)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a camera with DefaultView and DefaultPerspective.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:         &sync.Mutex{},
		view:       DefaultView(),
		projection: DefaultPerspective(),
	}
	for _, option := range options {
		option(c)
	}
	c.viewCache = c.view.Matrix()
	c.projectionCache = c.projection.Matrix()
	return c
}

func (c *cameraImpl) Matrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.ToWebGPUNDC.Mul4(c.projectionCache).Mul4(common.SwitchZAxis).Mul4(c.viewCache)
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.Eye
}

func (c *cameraImpl) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

func (c *cameraImpl) SetView(v View) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = v
	c.viewCache = c.view.Matrix()
}

func (c *cameraImpl) SetProjection(p Projection) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projection = p
	c.projectionCache = p.Matrix()
}

func (c *cameraImpl) Resize(width, height uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projection.Resize(width, height)
	c.projectionCache = c.projection.Matrix()
}

func (c *cameraImpl) MoveX(val float32) { c.updateView(func(v *View) { v.MoveX(val, false) }) }

func (c *cameraImpl) MoveY(val float32) { c.updateView(func(v *View) { v.MoveY(val, false) }) }

func (c *cameraImpl) MoveZ(val float32) { c.updateView(func(v *View) { v.MoveZ(val, false) }) }

func (c *cameraImpl) Pan(val float32) { c.updateView(func(v *View) { v.Pan(val) }) }

func (c *cameraImpl) Tilt(val float32) { c.updateView(func(v *View) { v.Tilt(val) }) }

func (c *cameraImpl) Roll(val float32) { c.updateView(func(v *View) { v.Roll(val) }) }

func (c *cameraImpl) updateView(fn func(v *View)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.view)
	c.viewCache = c.view.Matrix()
}
