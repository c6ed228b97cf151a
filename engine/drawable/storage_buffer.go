package drawable

import (
	"fmt"
	"iter"
	"sync"

	"github.com/Carmen-Shannon/oxy-draw/engine/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// StorageBuffer is a fixed-length array of T mirrored into a read-only GPU
// storage buffer. The host mirror can only be mutated through a WriteGuard,
// and each guard flushes the whole mirror in a single queue write when it is
// released.
type StorageBuffer[T gpu.Marshaler] struct {
	mu      *sync.Mutex
	queue   gpu.Queue
	buffer  *gpu.SharedBuffer
	mirror  []T
	stride  int
	scratch []byte
}

var _ Bindable = &StorageBuffer[gpu.Mat4]{}

// NewStorageBuffer allocates a storage buffer holding values and uploads them.
//
// Parameters:
//   - device: the device that owns the buffer
//   - label: debug label
//   - values: the initial contents; the length is fixed from here on
//
// Returns:
//   - *StorageBuffer[T]: the storage buffer
//   - error: error if values is empty or the buffer could not be created
func NewStorageBuffer[T gpu.Marshaler](device gpu.Device, label string, values []T) (*StorageBuffer[T], error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("storage buffer %q: at least one element is required", label)
	}
	stride := values[0].Size()
	buf, err := gpu.NewSharedBuffer(device, label, uint64(stride*len(values)), wgpu.BufferUsageStorage|wgpu.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	s := &StorageBuffer[T]{
		mu:      &sync.Mutex{},
		queue:   device.Queue(),
		buffer:  buf,
		mirror:  append([]T(nil), values...),
		stride:  stride,
		scratch: make([]byte, stride*len(values)),
	}
	s.flush()
	return s, nil
}

// Len returns the number of elements.
func (s *StorageBuffer[T]) Len() int {
	return len(s.mirror)
}

// Snapshot returns a copy of the host mirror.
func (s *StorageBuffer[T]) Snapshot() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]T(nil), s.mirror...)
}

// StartWrite acquires exclusive access to the host mirror. The caller must
// call Release on the returned guard exactly once; prefer WithWrite.
//
// Returns:
//   - *WriteGuard[T]: the guard
func (s *StorageBuffer[T]) StartWrite() *WriteGuard[T] {
	s.mu.Lock()
	return &WriteGuard[T]{s: s}
}

// WithWrite runs fn with a write guard and flushes once after fn returns,
// including when fn returns an error or panics.
//
// Parameters:
//   - fn: the mutation to run
//
// Returns:
//   - error: the error returned by fn
func (s *StorageBuffer[T]) WithWrite(fn func(g *WriteGuard[T]) error) error {
	g := s.StartWrite()
	defer g.Release()
	return fn(g)
}

// UpdateParallel applies fn to every element on the worker pool and then
// flushes once. Each element is visited by exactly one worker.
func (s *StorageBuffer[T]) UpdateParallel(fn func(i int, v *T)) {
	g := s.StartWrite()
	defer g.Release()
	g.Parallel(fn)
}

// Buffer returns the backing GPU buffer.
func (s *StorageBuffer[T]) Buffer() *wgpu.Buffer {
	return s.buffer.Buffer()
}

// Release drops the owner's reference to the buffer.
func (s *StorageBuffer[T]) Release() {
	s.buffer.Release()
}

func (s *StorageBuffer[T]) LayoutEntry(binding uint32) wgpu.BindGroupLayoutEntry {
	return wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: visibility,
		Buffer: wgpu.BufferBindingLayout{
			Type: wgpu.BufferBindingTypeReadOnlyStorage,
		},
	}
}

func (s *StorageBuffer[T]) GroupEntry(binding uint32) wgpu.BindGroupEntry {
	return wgpu.BindGroupEntry{
		Binding: binding,
		Buffer:  s.buffer.Buffer(),
		Offset:  0,
		Size:    wgpu.WholeSize,
	}
}

func (s *StorageBuffer[T]) sharedBuffer() *gpu.SharedBuffer {
	return s.buffer
}

// flush serializes the whole mirror and issues one write. Caller holds mu.
func (s *StorageBuffer[T]) flush() {
	for i, v := range s.mirror {
		v.MarshalTo(s.scratch[i*s.stride:])
	}
	s.queue.WriteBuffer(s.buffer.Buffer(), 0, s.scratch)
}

// WriteGuard grants exclusive mutable access to a StorageBuffer's host mirror.
// Nothing reaches the GPU until Release.
type WriteGuard[T gpu.Marshaler] struct {
	s        *StorageBuffer[T]
	released bool
}

// Len returns the number of elements.
func (g *WriteGuard[T]) Len() int {
	return len(g.s.mirror)
}

// Set stores v at index i. Out-of-range indices panic.
func (g *WriteGuard[T]) Set(i int, v T) {
	g.s.mirror[i] = v
}

// Get returns the element at index i.
func (g *WriteGuard[T]) Get(i int) T {
	return g.s.mirror[i]
}

// Values returns the mirror itself for bulk mutation. The slice must not be
// retained after Release.
func (g *WriteGuard[T]) Values() []T {
	return g.s.mirror
}

// All yields a pointer to every element in index order.
func (g *WriteGuard[T]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := range g.s.mirror {
			if !yield(i, &g.s.mirror[i]) {
				return
			}
		}
	}
}

// Parallel applies fn to every element across the worker pool. The mirror is
// partitioned into disjoint ranges, so fn only ever sees its own element.
func (g *WriteGuard[T]) Parallel(fn func(i int, v *T)) {
	mirror := g.s.mirror
	parallelRange(len(mirror), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			fn(i, &mirror[i])
		}
	})
}

// Release flushes the mirror to the GPU in one write and unlocks the buffer.
// Calling Release more than once has no further effect.
func (g *WriteGuard[T]) Release() {
	if g.released {
		return
	}
	g.released = true
	g.s.flush()
	g.s.mu.Unlock()
}
