package window

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/Carmen-Shannon/oxy-draw/engine/event"
)

func TestCursorTracker(t *testing.T) {
	var c cursorTracker
	if _, _, ok := c.Move(10, 10); ok {
		t.Fatalf("first move produced a delta")
	}
	dx, dy, ok := c.Move(13, 6)
	if !ok || dx != 3 || dy != -4 {
		t.Errorf("Move() = (%v, %v, %v), want (3, -4, true)", dx, dy, ok)
	}
	c.Reset()
	if _, _, ok := c.Move(500, 500); ok {
		t.Errorf("move after Reset produced a delta")
	}
}

func TestKeyEvent(t *testing.T) {
	ev := keyEvent(265, true)
	if ev.Kind != event.KeyboardInput || ev.Keyboard.Key != common.KeyUp || !ev.Keyboard.Pressed {
		t.Errorf("keyEvent(265) = %+v", ev)
	}
}

func TestButtonEvent(t *testing.T) {
	tests := []struct {
		button int
		want   event.MouseButtonID
		ok     bool
	}{
		{button: 0, want: event.MouseButtonLeft, ok: true},
		{button: 1, want: event.MouseButtonRight, ok: true},
		{button: 2, want: event.MouseButtonMiddle, ok: true},
		{button: 5, ok: false},
	}
	for _, tt := range tests {
		ev, ok := buttonEvent(tt.button, true, 4, 8)
		if ok != tt.ok {
			t.Errorf("buttonEvent(%d) ok = %v, want %v", tt.button, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		if ev.Kind != event.MouseInput || ev.Mouse.Button != tt.want || ev.Mouse.X != 4 || ev.Mouse.Y != 8 {
			t.Errorf("buttonEvent(%d) = %+v", tt.button, ev)
		}
	}
}
