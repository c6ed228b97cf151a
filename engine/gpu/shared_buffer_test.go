package gpu_test

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-draw/engine/gpu"
	"github.com/Carmen-Shannon/oxy-draw/engine/gpu/gputest"
	"github.com/cogentcore/webgpu/wgpu"
)

func TestSharedBufferReleasesOnLastReference(t *testing.T) {
	dev := gputest.NewDevice()
	s, err := gpu.NewSharedBufferInit(dev, "instances", []byte{1, 2, 3, 4, 5}, wgpu.BufferUsageVertex)
	if err != nil {
		t.Fatalf("NewSharedBufferInit: %v", err)
	}
	if s.Size() != 8 {
		t.Errorf("Size = %d, want 8 (rounded up)", s.Size())
	}
	if n := len(dev.FakeQueue().WritesTo(s.Buffer())); n != 1 {
		t.Errorf("initial writes = %d, want 1", n)
	}

	handle := s.Buffer()
	s.Retain()
	s.Release()
	if dev.IsReleased(handle) {
		t.Fatalf("buffer released while a reference remains")
	}
	s.Release()
	if !dev.IsReleased(handle) {
		t.Errorf("buffer not released after last reference")
	}
	if s.Refs() != 0 {
		t.Errorf("Refs = %d, want 0", s.Refs())
	}
}

func TestSharedBufferOverReleasePanics(t *testing.T) {
	dev := gputest.NewDevice()
	s, err := gpu.NewSharedBuffer(dev, "b", 16, wgpu.BufferUsageStorage)
	if err != nil {
		t.Fatalf("NewSharedBuffer: %v", err)
	}
	s.Release()

	defer func() {
		if recover() == nil {
			t.Errorf("expected panic on over-release")
		}
	}()
	s.Release()
}
