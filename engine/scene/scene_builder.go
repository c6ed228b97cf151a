package scene

// SceneBuilderOption is a functional option for configuring a Scene3D.
// Use the With* functions to create options.
type SceneBuilderOption func(s *Scene3D)

// WithArena makes the scene store its renderables in a, which may be shared
// with other scenes.
//
// Parameters:
//   - a: the arena
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithArena(a *Arena) SceneBuilderOption {
	return func(s *Scene3D) {
		s.arena = a
	}
}
