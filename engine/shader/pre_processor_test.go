package shader

import (
	"strings"
	"testing"
)

func TestProcessInclude(t *testing.T) {
	pp := NewPreProcessor()
	out, err := pp.Process("//@oxy:include camera\n//@oxy:include camera\nfn f() {}")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if n := strings.Count(out, "camera_mat"); n != 1 {
		t.Errorf("camera snippet spliced %d times, want 1", n)
	}
	if !strings.HasSuffix(out, "fn f() {}") {
		t.Errorf("non-annotation lines should pass through, got %q", out)
	}
}

func TestProcessGroupAnnotation(t *testing.T) {
	pp := NewPreProcessor()
	out, err := pp.Process("//@oxy:group 1 2 storage_read transforms array<mat4>")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	want := "@group(1) @binding(2) var<storage, read> transforms: array<mat4x4<f32>>;"
	if out != want {
		t.Errorf("Process = %q, want %q", out, want)
	}

	decls := pp.Declarations()
	if len(decls) != 1 || decls[0].Group != 1 || decls[0].Binding != 2 {
		t.Errorf("Declarations = %+v", decls)
	}
}

func TestProcessRegisteredSnippet(t *testing.T) {
	pp := NewPreProcessor()
	pp.Register("tint", "const TINT: f32 = 0.5;")
	out, err := pp.Process("//@oxy:include tint")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if out != "const TINT: f32 = 0.5;" {
		t.Errorf("Process = %q", out)
	}
}

func TestProcessErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown snippet", "//@oxy:include nope"},
		{"unknown annotation", "//@oxy:bogus 1"},
		{"empty annotation", "//@oxy:"},
		{"bad group number", "//@oxy:group x 0 storage_uniform a f32"},
		{"bad address space", "//@oxy:group 0 0 storage_write a f32"},
		{"bad type", "//@oxy:group 0 0 storage_uniform a mat5"},
		{"wrong arg count", "//@oxy:group 0 0 storage_uniform a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewPreProcessor().Process(tt.src); err == nil {
				t.Errorf("expected error for %q", tt.src)
			}
		})
	}
}

func TestNonCommentLinesAreNotAnnotations(t *testing.T) {
	a, err := parseAnnotation(`let s = "@oxy:include camera";`, 1)
	if err != nil || a != nil {
		t.Errorf("parseAnnotation = %v, %v; want nil, nil", a, err)
	}
}
