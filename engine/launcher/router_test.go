package launcher

import (
	"slices"
	"testing"

	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/Carmen-Shannon/oxy-draw/engine/event"
)

func leftButton(pressed bool) event.WindowEvent {
	return event.WindowEvent{
		Kind:  event.MouseInput,
		Mouse: event.MouseEvent{Kind: event.MouseButton, Button: event.MouseButtonLeft, Pressed: pressed},
	}
}

func TestRotationMode(t *testing.T) {
	h := &countingHandler{}
	l, _, win := newWindowed(t, h)
	r := l.router
	motion := event.MouseEvent{Kind: event.MouseMotion, DX: 4, DY: 2}

	r.onMouseEvent(motion)
	if len(h.mouse) != 0 {
		t.Fatalf("motion forwarded outside rotation mode")
	}

	r.onWindowEvent(leftButton(true))
	r.onMouseEvent(motion)
	if !r.rotating || len(h.mouse) != 1 {
		t.Fatalf("rotating = %v, forwarded = %d", r.rotating, len(h.mouse))
	}

	r.onWindowEvent(leftButton(false))
	r.onMouseEvent(motion)
	if r.rotating || len(h.mouse) != 1 {
		t.Errorf("rotation still on after release")
	}
	if want := []bool{false, true}; !slices.Equal(win.cursor, want) {
		t.Errorf("cursor visibility = %v, want %v", win.cursor, want)
	}

	r.onMouseEvent(event.MouseEvent{Kind: event.MouseWheel, Wheel: 1})
	if len(h.mouse) != 2 {
		t.Errorf("wheel not forwarded")
	}
}

func TestRotationRequiresCursorInside(t *testing.T) {
	l, _, _ := newWindowed(t, &countingHandler{})
	r := l.router
	r.onWindowEvent(event.WindowEvent{Kind: event.CursorLeft})
	r.onWindowEvent(leftButton(true))
	if r.rotating {
		t.Errorf("rotation started with the cursor outside")
	}
	r.onWindowEvent(event.WindowEvent{Kind: event.CursorEntered})
	r.onWindowEvent(leftButton(true))
	if !r.rotating {
		t.Errorf("rotation did not start with the cursor inside")
	}
}

func TestWindowEvents(t *testing.T) {
	tests := []struct {
		name         string
		consume      event.WindowEventKind
		ev           event.WindowEvent
		wantClose    int
		wantRotating bool
	}{
		{name: "close", ev: event.WindowEvent{Kind: event.CloseRequested}, wantClose: 1},
		{name: "close consumed", consume: event.CloseRequested, ev: event.WindowEvent{Kind: event.CloseRequested}},
		{name: "resize stops rotation", ev: event.WindowEvent{Kind: event.Resized, Width: 640, Height: 480}},
		{name: "move stops rotation", ev: event.WindowEvent{Kind: event.Moved}},
		{name: "right button", ev: event.WindowEvent{Kind: event.MouseInput, Mouse: event.MouseEvent{Kind: event.MouseButton, Button: event.MouseButtonRight}}, wantRotating: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _, win := newWindowed(t, &countingHandler{consume: tt.consume})
			l.router.onWindowEvent(leftButton(true))
			l.router.onWindowEvent(tt.ev)
			if win.closeRequests != tt.wantClose {
				t.Errorf("close requests = %d, want %d", win.closeRequests, tt.wantClose)
			}
			if l.router.rotating != tt.wantRotating {
				t.Errorf("rotating = %v, want %v", l.router.rotating, tt.wantRotating)
			}
		})
	}
}

func TestResizeReachesDrawContext(t *testing.T) {
	l, _, _ := newWindowed(t, &countingHandler{})
	l.router.onWindowEvent(event.WindowEvent{Kind: event.Resized, Width: 640, Height: 480})
	if w, h := l.dc.Dimensions(); w != 640 || h != 480 {
		t.Errorf("dimensions = %dx%d, want 640x480", w, h)
	}
}

func TestKeyboardRouting(t *testing.T) {
	h := &countingHandler{}
	l, _, _ := newWindowed(t, h)
	l.router.onWindowEvent(event.WindowEvent{Kind: event.KeyboardInput, Keyboard: event.KeyboardEvent{Key: common.KeyW, Pressed: true}})
	if len(h.keys) != 1 || h.keys[0].Key != common.KeyW {
		t.Errorf("keys = %v", h.keys)
	}
}
