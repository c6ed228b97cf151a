package common

import "testing"

func TestCoalesce(t *testing.T) {
	if got := Coalesce(0, 0, 3, 4); got != 3 {
		t.Errorf("Coalesce = %d, want 3", got)
	}
	if got := Coalesce("", ""); got != "" {
		t.Errorf("Coalesce of zero values = %q, want empty", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, want float32
	}{
		{-0.5, 0},
		{0.25, 0.25},
		{1.5, 1},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, 0, 1); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestKeyIsShift(t *testing.T) {
	if !KeyLeftShift.IsShift() || !KeyRightShift.IsShift() {
		t.Errorf("shift keys should report IsShift")
	}
	if KeyUp.IsShift() {
		t.Errorf("KeyUp should not report IsShift")
	}
}
