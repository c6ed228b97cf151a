// pre_processor.go implements the Oxy WGSL pre-processor. It scans shader
// source for @oxy: annotations, replaces includes with registered snippets and
// group annotations with generated declarations.
package shader

import (
	_ "embed"
	"fmt"
	"strings"
)

// CameraSnippet declares the per-scene camera uniforms at group 0.
//
//go:embed assets/camera.wgsl
var CameraSnippet string

// CanvasSnippet declares the canvas uniforms (time, frame, resolution, mouse, date) at group 0.
//
//go:embed assets/canvas.wgsl
var CanvasSnippet string

// LightingSnippet provides a simple directional diffuse + specular helper.
//
//go:embed assets/lighting.wgsl
var LightingSnippet string

// PreProcessor expands @oxy: annotations in WGSL source.
type PreProcessor interface {
	// Process replaces include annotations with snippet source and group
	// annotations with binding declarations. Declarations are reset per call.
	//
	// Parameters:
	//   - source: the raw WGSL source
	//
	// Returns:
	//   - string: the expanded WGSL source
	//   - error: error if an annotation is malformed or names an unknown snippet
	Process(source string) (string, error)

	// Declarations returns the group annotations seen by the last Process call, in source order.
	Declarations() []Annotation

	// Register adds or replaces a snippet available to include annotations.
	Register(name, source string)
}

type preProcessor struct {
	snippets     map[string]string
	declarations []Annotation
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor with the built-in snippets registered
// (camera, canvas, lighting).
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		snippets: map[string]string{
			"camera":   CameraSnippet,
			"canvas":   CanvasSnippet,
			"lighting": LightingSnippet,
		},
	}
}

func (p *preProcessor) Register(name, source string) {
	p.snippets[name] = source
}

func (p *preProcessor) Process(source string) (string, error) {
	p.declarations = p.declarations[:0]
	included := map[string]bool{}

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}
		if a == nil {
			out = append(out, line)
			continue
		}

		switch a.Type {
		case annotationTypeInclude:
			name := a.Args[0]
			src, ok := p.snippets[name]
			if !ok {
				return "", fmt.Errorf("line %d: unknown @oxy:include snippet %q", a.Line, name)
			}
			// a snippet is spliced once even if several includes name it
			if included[name] {
				continue
			}
			included[name] = true
			out = append(out, src)
		case AnnotationTypeBindingGroup:
			t, _ := wgslType(a.Args[2])
			out = append(out, fmt.Sprintf("@group(%d) @binding(%d) %s %s: %s;", a.Group, a.Binding, addressSpaces[a.Args[0]], a.Args[1], t))
			p.declarations = append(p.declarations, *a)
		}
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Declarations() []Annotation {
	return p.declarations
}

