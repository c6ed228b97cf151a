package camera

import "github.com/go-gl/mathgl/mgl32"

type CameraBuilderOption func(*cameraImpl)

// WithView sets the camera's initial view.
//
// Parameters:
//   - v: the view
//
// Returns:
//   - CameraBuilderOption: a function that sets the view
func WithView(v View) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.view = v
	}
}

// WithEye sets the initial eye position, keeping the default center and up.
//
// Parameters:
//   - x, y, z: world-space eye position
//
// Returns:
//   - CameraBuilderOption: a function that sets the eye
func WithEye(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.view.Eye = mgl32.Vec3{x, y, z}
	}
}

// WithCenter sets the initial look-at point.
//
// Parameters:
//   - x, y, z: world-space center
//
// Returns:
//   - CameraBuilderOption: a function that sets the center
func WithCenter(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.view.Center = mgl32.Vec3{x, y, z}
	}
}

// WithUp sets the camera's up vector.
//
// Parameters:
//   - x, y, z: up vector components
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's up vector
func WithUp(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.view.Up = mgl32.Vec3{x, y, z}
	}
}

// WithProjection sets the camera's projection. The default is DefaultPerspective.
//
// Parameters:
//   - p: the projection, e.g. DefaultOrthogonal()
//
// Returns:
//   - CameraBuilderOption: a function that sets the projection
func WithProjection(p Projection) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.projection = p
	}
}
