// annotations.go defines the annotation types and parser for the Oxy WGSL
// pre-processor. Annotations are single-line WGSL comments prefixed with @oxy:
// that splice shared snippets into a shader or generate binding declarations.
package shader

import (
	"fmt"
	"strconv"
	"strings"
)

// annotationPrefix is the marker that identifies an Oxy annotation within a WGSL comment line.
const annotationPrefix = "@oxy:"

// AnnotationType identifies the kind of annotation parsed from a WGSL comment line.
type AnnotationType string

const (
	// annotationTypeInclude injects the source of a registered snippet at the
	// annotation site.
	//
	// Syntax: //@oxy:include <snippet>
	//
	// Example: //@oxy:include camera
	annotationTypeInclude AnnotationType = "include"

	// AnnotationTypeBindingGroup generates a @group/@binding variable declaration
	// and records it in the pre-processor's declaration list.
	//
	// Syntax: //@oxy:group <group> <binding> <address_space> <var_name> <type>
	//
	// Example: //@oxy:group 1 0 storage_read transforms array<mat4>
	AnnotationTypeBindingGroup AnnotationType = "group"
)

// Annotation represents a single parsed @oxy: annotation.
type Annotation struct {
	// Type identifies which annotation was parsed.
	Type AnnotationType

	// Args holds the annotation's arguments:
	//   - include: [0] = snippet name
	//   - group:   [0] = address space, [1] = var name, [2] = type key
	Args []string

	// Line is the 1-based source line, used for error reporting.
	Line int

	// Group and Binding are set for group annotations.
	Group   uint32
	Binding uint32
}

// Address space keys accepted by group annotations.
const (
	addressSpaceUniform = "storage_uniform"
	addressSpaceRead    = "storage_read"
)

var addressSpaces = map[string]string{
	addressSpaceUniform: "var<uniform>",
	addressSpaceRead:    "var<storage, read>",
}

// valueTypes maps the short type keys accepted by group annotations to WGSL types.
var valueTypes = map[string]string{
	"f32":  "f32",
	"u32":  "u32",
	"vec2": "vec2<f32>",
	"vec3": "vec3<f32>",
	"vec4": "vec4<f32>",
	"mat3": "mat3x3<f32>",
	"mat4": "mat4x4<f32>",
}

// wgslType resolves a type key, including array<key>, to WGSL.
func wgslType(key string) (string, bool) {
	if inner, ok := strings.CutPrefix(key, "array<"); ok {
		t, ok := valueTypes[strings.TrimSuffix(inner, ">")]
		if !ok {
			return "", false
		}
		return "array<" + t + ">", true
	}
	t, ok := valueTypes[key]
	return t, ok
}

// parseAnnotation attempts to parse a single line of WGSL source as an @oxy: annotation.
// Returns nil with no error for lines that do not contain the annotation prefix.
//
// Parameters:
//   - line: the raw WGSL source line to parse
//   - lineNum: the 1-based line number for error reporting
//
// Returns:
//   - *Annotation: the parsed annotation, or nil if the line is not an annotation
//   - error: a descriptive error if the annotation is malformed
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "//") {
		return nil, nil
	}
	_, after, ok := strings.Cut(trimmed, annotationPrefix)
	if !ok {
		return nil, nil
	}

	args := strings.Fields(after)
	if len(args) == 0 {
		return nil, fmt.Errorf("line %d: empty @oxy annotation", lineNum)
	}

	switch AnnotationType(args[0]) {
	case annotationTypeInclude:
		if len(args) != 2 {
			return nil, fmt.Errorf("line %d: @oxy include annotation requires exactly one argument", lineNum)
		}
		return &Annotation{Type: annotationTypeInclude, Args: args[1:], Line: lineNum}, nil
	case AnnotationTypeBindingGroup:
		if len(args) != 6 {
			return nil, fmt.Errorf("line %d: @oxy group annotation requires five arguments (group, binding, address space, name, type)", lineNum)
		}
		group, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid group number %q: %v", lineNum, args[1], err)
		}
		binding, err := strconv.ParseUint(args[2], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid binding number %q: %v", lineNum, args[2], err)
		}
		if _, ok := addressSpaces[args[3]]; !ok {
			return nil, fmt.Errorf("line %d: unknown address space %q", lineNum, args[3])
		}
		if _, ok := wgslType(args[5]); !ok {
			return nil, fmt.Errorf("line %d: unknown type %q", lineNum, args[5])
		}
		return &Annotation{
			Type:    AnnotationTypeBindingGroup,
			Args:    args[3:],
			Line:    lineNum,
			Group:   uint32(group),
			Binding: uint32(binding),
		}, nil
	default:
		return nil, fmt.Errorf("line %d: unknown @oxy annotation type %q", lineNum, args[0])
	}
}
