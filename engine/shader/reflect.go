package shader

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
)

// ErrInvalidShader is wrapped by every parse, lowering or validation failure.
var ErrInvalidShader = errors.New("shader: invalid WGSL")

// Stage identifies a pipeline stage an entry point runs in.
type Stage int

const (
	StageVertex Stage = iota
	StageFragment
	StageCompute
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageCompute:
		return "compute"
	}
	return "unknown"
}

// Space is the address space of a bound resource.
type Space int

const (
	SpaceUniform Space = iota
	SpaceStorage
	SpaceHandle
)

// Binding is a resource declared by the shader.
type Binding struct {
	Group   uint32
	Binding uint32
	Name    string
	Space   Space
}

// EntryPoint is a shader entry function.
type EntryPoint struct {
	Name  string
	Stage Stage
}

// Reflection is what the engine needs to know about a WGSL module.
type Reflection struct {
	EntryPoints []EntryPoint
	Bindings    []Binding
}

// reflect parses, lowers and validates source with naga and extracts the
// entry points and resource bindings. Bindings are sorted by group then binding.
func reflect(source string) (*Reflection, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShader, err)
	}
	mod, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShader, err)
	}
	issues, err := naga.Validate(mod)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShader, err)
	}
	if len(issues) > 0 {
		msgs := make([]error, 0, len(issues))
		for _, v := range issues {
			msgs = append(msgs, errors.New(v.Message))
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidShader, errors.Join(msgs...))
	}

	r := &Reflection{}
	for _, ep := range mod.EntryPoints {
		stage, ok := stageOf(ep.Stage)
		if !ok {
			continue
		}
		r.EntryPoints = append(r.EntryPoints, EntryPoint{Name: ep.Name, Stage: stage})
	}
	for _, gv := range mod.GlobalVariables {
		if gv.Binding == nil {
			continue
		}
		b := Binding{Group: gv.Binding.Group, Binding: gv.Binding.Binding, Name: gv.Name}
		switch gv.Space {
		case ir.SpaceUniform:
			b.Space = SpaceUniform
		case ir.SpaceStorage:
			b.Space = SpaceStorage
		default:
			b.Space = SpaceHandle
		}
		r.Bindings = append(r.Bindings, b)
	}
	slices.SortFunc(r.Bindings, func(a, b Binding) int {
		if a.Group != b.Group {
			return int(a.Group) - int(b.Group)
		}
		return int(a.Binding) - int(b.Binding)
	})
	return r, nil
}

func stageOf(s ir.ShaderStage) (Stage, bool) {
	switch s {
	case ir.StageVertex:
		return StageVertex, true
	case ir.StageFragment:
		return StageFragment, true
	case ir.StageCompute:
		return StageCompute, true
	}
	return 0, false
}
