package gpu

import (
	"fmt"
	"sync/atomic"

	"github.com/cogentcore/webgpu/wgpu"
)

// SharedBuffer is a reference-counted GPU buffer. The buffer is released
// through its device when the last reference is dropped.
type SharedBuffer struct {
	device Device
	buffer *wgpu.Buffer
	label  string
	size   uint64
	usage  wgpu.BufferUsage
	refs   atomic.Int32
}

// NewSharedBuffer allocates a buffer with a single reference held by the caller.
//
// Parameters:
//   - device: the device that owns the buffer
//   - label: debug label
//   - size: size in bytes
//   - usage: buffer usage flags
//
// Returns:
//   - *SharedBuffer: the shared buffer
//   - error: error if allocation fails
func NewSharedBuffer(device Device, label string, size uint64, usage wgpu.BufferUsage) (*SharedBuffer, error) {
	buf, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create buffer %q: %w", label, err)
	}
	s := &SharedBuffer{
		device: device,
		buffer: buf,
		label:  label,
		size:   size,
		usage:  usage,
	}
	s.refs.Store(1)
	return s, nil
}

// NewSharedBufferInit allocates a buffer and uploads data into it. The upload is
// zero-padded to a 4-byte multiple.
func NewSharedBufferInit(device Device, label string, data []byte, usage wgpu.BufferUsage) (*SharedBuffer, error) {
	s, err := NewSharedBuffer(device, label, alignedSize(len(data)), usage|wgpu.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	if len(data) > 0 {
		if pad := int(s.size) - len(data); pad > 0 {
			data = append(append(make([]byte, 0, s.size), data...), make([]byte, pad)...)
		}
		device.Queue().WriteBuffer(s.buffer, 0, data)
	}
	return s, nil
}

// alignedSize rounds n up to the 4-byte multiple required for buffer writes.
func alignedSize(n int) uint64 {
	if n == 0 {
		return 4
	}
	return uint64((n + 3) &^ 3)
}

// Retain adds a reference and returns the receiver.
func (s *SharedBuffer) Retain() *SharedBuffer {
	if s.refs.Add(1) <= 1 {
		panic(fmt.Sprintf("gpu: retain of released buffer %q", s.label))
	}
	return s
}

// Release drops a reference, freeing the buffer when none remain.
func (s *SharedBuffer) Release() {
	switch n := s.refs.Add(-1); {
	case n == 0:
		s.device.Release(s.buffer)
		s.buffer = nil
	case n < 0:
		panic(fmt.Sprintf("gpu: buffer %q released too many times", s.label))
	}
}

// Buffer returns the underlying handle.
func (s *SharedBuffer) Buffer() *wgpu.Buffer {
	return s.buffer
}

// Label returns the debug label.
func (s *SharedBuffer) Label() string {
	return s.label
}

// Size returns the size in bytes.
func (s *SharedBuffer) Size() uint64 {
	return s.size
}

// Refs returns the current reference count.
func (s *SharedBuffer) Refs() int {
	return int(s.refs.Load())
}
