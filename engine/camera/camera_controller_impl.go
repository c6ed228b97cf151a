package camera

import (
	"maps"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/Carmen-Shannon/oxy-draw/engine/event"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultKeySpeed        float32 = 0.03
	DefaultRotationSpeed   float32 = 1.0 / 500.0
	DefaultSpeedMultiplier float32 = 10.0
)

type interactiveCameraImpl struct {
	mu *sync.Mutex

	camera Camera
	held   map[common.Key]struct{}

	keySpeed        float32
	rotationSpeed   float32
	speedMultiplier float32
}

var _ InteractiveCamera = &interactiveCameraImpl{}

// NewInteractiveCamera wraps cam with keyboard and mouse controls.
//
// Parameters:
//   - cam: the camera to control
//   - options: functional options to configure the controls
//
// Returns:
//   - InteractiveCamera: the controller
func NewInteractiveCamera(cam Camera, options ...InteractiveCameraOption) InteractiveCamera {
	ic := &interactiveCameraImpl{
		mu:              &sync.Mutex{},
		camera:          cam,
		held:            make(map[common.Key]struct{}),
		keySpeed:        DefaultKeySpeed,
		rotationSpeed:   DefaultRotationSpeed,
		speedMultiplier: DefaultSpeedMultiplier,
	}
	for _, option := range options {
		option(ic)
	}
	return ic
}

func (ic *interactiveCameraImpl) Camera() Camera {
	return ic.camera
}

func (ic *interactiveCameraImpl) Matrix() mgl32.Mat4 {
	return ic.camera.Matrix()
}

func (ic *interactiveCameraImpl) Resize(width, height uint32) {
	ic.camera.Resize(width, height)
}

func (ic *interactiveCameraImpl) KeySpeed() float32 {
	return ic.keySpeed
}

func (ic *interactiveCameraImpl) RotationSpeed() float32 {
	return ic.rotationSpeed
}

func (ic *interactiveCameraImpl) OnMouseEvent(ev event.MouseEvent) event.State {
	if ev.Kind != event.MouseMotion {
		return event.Ignored
	}
	ic.camera.Pan(ev.DX * ic.rotationSpeed)
	ic.camera.Tilt(ev.DY * ic.rotationSpeed)
	return event.Processed
}

func (ic *interactiveCameraImpl) OnKeyboardEvent(ev event.KeyboardEvent) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	if ev.Pressed {
		ic.held[ev.Key] = struct{}{}
	} else {
		delete(ic.held, ev.Key)
	}
}

func (ic *interactiveCameraImpl) Update() {
	ic.mu.Lock()
	if len(ic.held) == 0 {
		ic.mu.Unlock()
		return
	}
	keys := slices.Sorted(maps.Keys(ic.held))
	ic.mu.Unlock()

	speed := ic.keySpeed
	if slices.ContainsFunc(keys, common.Key.IsShift) {
		speed *= ic.speedMultiplier
	}
	for _, k := range keys {
		switch k {
		case common.KeyUp:
			ic.camera.MoveZ(speed)
		case common.KeyDown:
			ic.camera.MoveZ(-speed)
		case common.KeyLeft:
			ic.camera.MoveX(-speed)
		case common.KeyRight:
			ic.camera.MoveX(speed)
		case common.KeyPageUp:
			ic.camera.MoveY(speed)
		case common.KeyPageDown:
			ic.camera.MoveY(-speed)
		case common.KeyHome:
			ic.camera.Roll(-speed / 2)
		case common.KeyEnd:
			ic.camera.Roll(speed / 2)
		}
	}
}
