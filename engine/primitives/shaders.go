package primitives

import (
	_ "embed"
	"fmt"

	"github.com/Carmen-Shannon/oxy-draw/engine/gpu"
	"github.com/Carmen-Shannon/oxy-draw/engine/shader"
)

// ShaderKind names one of the built-in primitive shaders.
type ShaderKind int

const (
	// ShaderColorCube reads position and color at locations 0 and 1.
	ShaderColorCube ShaderKind = iota
	// ShaderNormalCube reads position and normal and shades with a directional light.
	ShaderNormalCube
	// ShaderInstancedCube reads the instance transforms from group 1 storage buffers.
	ShaderInstancedCube
	// ShaderTriangle reads position and color with a bare transform at group 0.
	ShaderTriangle
)

var (
	//go:embed assets/cube_colors.wgsl
	cubeColorsSource string

	//go:embed assets/cube_normals.wgsl
	cubeNormalsSource string

	//go:embed assets/cube_instances.wgsl
	cubeInstancesSource string

	//go:embed assets/triangle.wgsl
	triangleSource string
)

var shaderSources = map[ShaderKind]struct {
	label  string
	source string
}{
	ShaderColorCube:     {"Color Cube", cubeColorsSource},
	ShaderNormalCube:    {"Normal Cube", cubeNormalsSource},
	ShaderInstancedCube: {"Instanced Cube", cubeInstancesSource},
	ShaderTriangle:      {"Triangle", triangleSource},
}

// LoadShader compiles one of the built-in shaders. The module holds both the
// vs_main and fs_main entry points.
//
// Parameters:
//   - device: the device to compile on
//   - kind: which shader
//
// Returns:
//   - *shader.Module: the compiled module
//   - error: error if kind is unknown or compilation fails
func LoadShader(device gpu.Device, kind ShaderKind) (*shader.Module, error) {
	s, ok := shaderSources[kind]
	if !ok {
		return nil, fmt.Errorf("primitives: unknown shader kind %d", kind)
	}
	return shader.Load(device, s.label, s.source)
}
