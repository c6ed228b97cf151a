// Package scene holds the drawables of a 3D scenario: transformable single
// objects, instance groups, and the Scene3D that renders them with a camera.
package scene

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-draw/engine/camera"
	"github.com/Carmen-Shannon/oxy-draw/engine/drawable"
	"github.com/Carmen-Shannon/oxy-draw/engine/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

// Scene3D renders a list of arena handles with shared camera uniforms.
// Renderables are added during setup and never removed.
type Scene3D struct {
	mu       *sync.Mutex
	arena    *Arena
	handles  []Handle
	uniforms *camera.Uniforms
}

// NewScene3D creates an empty scene and its camera uniforms.
//
// Parameters:
//   - device: the device the camera uniforms are created on
//   - options: scene options
//
// Returns:
//   - *Scene3D: the scene
//   - error: error if the camera uniforms could not be created
func NewScene3D(device gpu.Device, options ...SceneBuilderOption) (*Scene3D, error) {
	u, err := camera.NewUniforms(device)
	if err != nil {
		return nil, err
	}
	s := &Scene3D{
		mu:       &sync.Mutex{},
		uniforms: u,
	}
	for _, opt := range options {
		opt(s)
	}
	if s.arena == nil {
		s.arena = NewArena()
	}
	return s, nil
}

// Uniforms returns the camera uniforms drawables in this scene bind at group 0.
func (s *Scene3D) Uniforms() *camera.Uniforms {
	return s.uniforms
}

// Arena returns the arena the scene's renderables live in.
func (s *Scene3D) Arena() *Arena {
	return s.arena
}

// Add stores r in the arena and appends its handle to the render list.
//
// Parameters:
//   - r: the renderable
//
// Returns:
//   - Handle: the handle of r
func (s *Scene3D) Add(r Renderable) Handle {
	h := s.arena.Add(r)
	s.AddHandle(h)
	return h
}

// AddHandle appends an existing arena handle to the render list.
func (s *Scene3D) AddHandle(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handles = append(s.handles, h)
}

// Get returns the renderable behind h.
func (s *Scene3D) Get(h Handle) (Renderable, bool) {
	return s.arena.Get(h)
}

// Handles returns the render list in insertion order.
func (s *Scene3D) Handles() []Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Handle(nil), s.handles...)
}

// Update writes cam's matrix and eye position into the camera uniforms.
func (s *Scene3D) Update(cam camera.Camera) {
	s.uniforms.Update(cam)
}

// UpdateWithCameraData writes an explicit camera matrix and position.
func (s *Scene3D) UpdateWithCameraData(matrix mgl32.Mat4, position mgl32.Vec3) {
	s.uniforms.Matrix.Write(gpu.Mat4(matrix))
	s.uniforms.Position.Write(gpu.Vec3(position))
}

// Render draws every handle in insertion order.
//
// Parameters:
//   - pass: the open render pass
func (s *Scene3D) Render(pass gpu.RenderPass) {
	for _, h := range s.Handles() {
		if r, ok := s.arena.Get(h); ok {
			r.Render(pass)
		}
	}
}

// Release drops the scene's camera uniforms. Renderables are owned by the
// arena and released by their creators.
func (s *Scene3D) Release() {
	s.uniforms.Release()
}

var (
	_ Renderable = drawable.Drawable(nil)
	_ Renderable = &Object3D{}
	_ Renderable = &InstanceGroup{}
)
