package drawable

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-draw/engine/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// Uniform is a host value mirrored into a GPU uniform buffer. Every Write
// re-serializes the aligned form and enqueues one buffer write, so the next
// submitted pass observes the new value.
type Uniform[T gpu.Marshaler] struct {
	mu      *sync.Mutex
	queue   gpu.Queue
	buffer  *gpu.SharedBuffer
	value   T
	scratch []byte
}

var _ Bindable = &Uniform[gpu.Float32]{}

// NewUniform allocates the uniform buffer and uploads the initial value.
//
// Parameters:
//   - device: the device that owns the buffer
//   - label: debug label
//   - value: the initial value
//
// Returns:
//   - *Uniform[T]: the uniform
//   - error: error if the buffer could not be created
func NewUniform[T gpu.Marshaler](device gpu.Device, label string, value T) (*Uniform[T], error) {
	buf, err := gpu.NewSharedBuffer(device, label, uint64(value.Size()), wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	u := &Uniform[T]{
		mu:      &sync.Mutex{},
		queue:   device.Queue(),
		buffer:  buf,
		scratch: make([]byte, value.Size()),
	}
	u.Write(value)
	return u, nil
}

// Read returns the host value.
func (u *Uniform[T]) Read() T {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.value
}

// Write stores value and pushes its aligned bytes to the queue.
func (u *Uniform[T]) Write(value T) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.value = value
	value.MarshalTo(u.scratch)
	u.queue.WriteBuffer(u.buffer.Buffer(), 0, u.scratch)
}

// Buffer returns the backing GPU buffer.
func (u *Uniform[T]) Buffer() *wgpu.Buffer {
	return u.buffer.Buffer()
}

// Release drops the owner's reference to the buffer.
func (u *Uniform[T]) Release() {
	u.buffer.Release()
}

func (u *Uniform[T]) LayoutEntry(binding uint32) wgpu.BindGroupLayoutEntry {
	return wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: visibility,
		Buffer: wgpu.BufferBindingLayout{
			Type: wgpu.BufferBindingTypeUniform,
		},
	}
}

func (u *Uniform[T]) GroupEntry(binding uint32) wgpu.BindGroupEntry {
	return wgpu.BindGroupEntry{
		Binding: binding,
		Buffer:  u.buffer.Buffer(),
		Offset:  0,
		Size:    wgpu.WholeSize,
	}
}

func (u *Uniform[T]) sharedBuffer() *gpu.SharedBuffer {
	return u.buffer
}
