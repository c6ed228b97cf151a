package shader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-draw/engine/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// Shader is pre-processed, validated WGSL source together with its reflected
// entry points and bindings. A single source may hold both the vertex and the
// fragment entry point.
type Shader interface {
	// Label returns the debug label of the shader.
	Label() string

	// Source returns the pre-processed WGSL source.
	Source() string

	// EntryPoint returns the first entry point for stage.
	//
	// Parameters:
	//   - stage: the pipeline stage
	//
	// Returns:
	//   - string: the entry point name
	//   - bool: false if the shader has no entry point for stage
	EntryPoint(stage Stage) (string, bool)

	// Bindings returns the resources declared by the shader, sorted by group and binding.
	Bindings() []Binding

	// Declarations returns the group annotations expanded during pre-processing.
	Declarations() []Annotation
}

type shader struct {
	label        string
	source       string
	reflection   *Reflection
	declarations []Annotation
}

var _ Shader = &shader{}

// NewShader pre-processes and validates WGSL source.
//
// Parameters:
//   - label: debug label
//   - source: raw WGSL source, possibly containing @oxy: annotations
//   - options: functional options
//
// Returns:
//   - Shader: the validated shader
//   - error: error if pre-processing or validation fails
func NewShader(label, source string, options ...ShaderBuilderOption) (Shader, error) {
	cfg := &shaderConfig{}
	for _, opt := range options {
		opt(cfg)
	}
	pp := cfg.preProcessor
	if pp == nil {
		pp = NewPreProcessor()
	}

	processed, err := pp.Process(source)
	if err != nil {
		return nil, fmt.Errorf("shader %q: %w", label, err)
	}
	r, err := reflect(processed)
	if err != nil {
		return nil, fmt.Errorf("shader %q: %w", label, err)
	}

	return &shader{
		label:        label,
		source:       processed,
		reflection:   r,
		declarations: append([]Annotation(nil), pp.Declarations()...),
	}, nil
}

func (s *shader) Label() string {
	return s.label
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) EntryPoint(stage Stage) (string, bool) {
	for _, ep := range s.reflection.EntryPoints {
		if ep.Stage == stage {
			return ep.Name, true
		}
	}
	return "", false
}

func (s *shader) Bindings() []Binding {
	return s.reflection.Bindings
}

func (s *shader) Declarations() []Annotation {
	return s.declarations
}

// Module is a shader compiled on a device.
type Module struct {
	shader Shader
	handle *wgpu.ShaderModule
}

// Compile creates a device shader module from s. Compilation failures are
// reported as errors; callers treat them as fatal.
//
// Parameters:
//   - device: the device to compile on
//   - s: the validated shader
//
// Returns:
//   - *Module: the compiled module
//   - error: error if the device rejected the source
func Compile(device gpu.Device, s Shader) (*Module, error) {
	handle, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: s.Label(),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.Source(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compile shader %q: %w", s.Label(), err)
	}
	return &Module{shader: s, handle: handle}, nil
}

// Load validates and compiles source in one step.
func Load(device gpu.Device, label, source string, options ...ShaderBuilderOption) (*Module, error) {
	s, err := NewShader(label, source, options...)
	if err != nil {
		return nil, err
	}
	return Compile(device, s)
}

// Shader returns the source shader.
func (m *Module) Shader() Shader {
	return m.shader
}

// Handle returns the device module.
func (m *Module) Handle() *wgpu.ShaderModule {
	return m.handle
}

// EntryPoint returns the entry point for stage, or an error naming the shader.
func (m *Module) EntryPoint(stage Stage) (string, error) {
	name, ok := m.shader.EntryPoint(stage)
	if !ok {
		return "", fmt.Errorf("shader %q has no %s entry point", m.shader.Label(), stage)
	}
	return name, nil
}
