package camera

// InteractiveCameraOption is a functional option for configuring an InteractiveCamera.
type InteractiveCameraOption func(*interactiveCameraImpl)

// WithKeySpeed sets the distance moved per update while a key is held.
//
// Parameters:
//   - speed: world units per update
//
// Returns:
//   - InteractiveCameraOption: functional option to set the key speed
func WithKeySpeed(speed float32) InteractiveCameraOption {
	return func(ic *interactiveCameraImpl) {
		ic.keySpeed = speed
	}
}

// WithRotationSpeed sets the pan and tilt angle per pixel of mouse motion.
//
// Parameters:
//   - speed: radians per pixel
//
// Returns:
//   - InteractiveCameraOption: functional option to set the rotation speed
func WithRotationSpeed(speed float32) InteractiveCameraOption {
	return func(ic *interactiveCameraImpl) {
		ic.rotationSpeed = speed
	}
}

// WithSpeedMultiplier sets the factor applied to the key speed while shift is held.
func WithSpeedMultiplier(m float32) InteractiveCameraOption {
	return func(ic *interactiveCameraImpl) {
		ic.speedMultiplier = m
	}
}
