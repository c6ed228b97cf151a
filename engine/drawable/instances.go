package drawable

import (
	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/Carmen-Shannon/oxy-draw/engine/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// InstancesAttribute is a per-instance vertex buffer that several drawables
// may read from. Each drawable built with it holds its own reference; the
// creator holds the first one and must Release it when done.
type InstancesAttribute struct {
	buffer *gpu.SharedBuffer
	format wgpu.VertexFormat
	count  int
}

// NewInstancesAttribute uploads data into a new instance-rate vertex buffer.
//
// Parameters:
//   - device: the device that owns the buffer
//   - label: debug label
//   - data: one element per instance
//   - format: the vertex format each element is read as
//
// Returns:
//   - *InstancesAttribute: the shared attribute
//   - error: error if the buffer could not be created
func NewInstancesAttribute[T any](device gpu.Device, label string, data []T, format wgpu.VertexFormat) (*InstancesAttribute, error) {
	buf, err := gpu.NewSharedBufferInit(device, label, common.SliceToBytes(data), wgpu.BufferUsageVertex)
	if err != nil {
		return nil, err
	}
	return &InstancesAttribute{buffer: buf, format: format, count: len(data)}, nil
}

// Format returns the vertex format of one element.
func (a *InstancesAttribute) Format() wgpu.VertexFormat { return a.format }

// Len returns the number of elements uploaded.
func (a *InstancesAttribute) Len() int { return a.count }

// Refs returns the number of live references to the buffer.
func (a *InstancesAttribute) Refs() int { return a.buffer.Refs() }

// Release drops the creator's reference.
func (a *InstancesAttribute) Release() { a.buffer.Release() }

// vertexFormatSizes maps the vertex formats drawables accept to their byte size.
var vertexFormatSizes = map[wgpu.VertexFormat]uint64{
	wgpu.VertexFormatUint8x2:   2,
	wgpu.VertexFormatUint8x4:   4,
	wgpu.VertexFormatUnorm8x2:  2,
	wgpu.VertexFormatUnorm8x4:  4,
	wgpu.VertexFormatUint16x2:  4,
	wgpu.VertexFormatUint16x4:  8,
	wgpu.VertexFormatFloat16x2: 4,
	wgpu.VertexFormatFloat16x4: 8,
	wgpu.VertexFormatFloat32:   4,
	wgpu.VertexFormatFloat32x2: 8,
	wgpu.VertexFormatFloat32x3: 12,
	wgpu.VertexFormatFloat32x4: 16,
	wgpu.VertexFormatUint32:    4,
	wgpu.VertexFormatUint32x2:  8,
	wgpu.VertexFormatUint32x3:  12,
	wgpu.VertexFormatUint32x4:  16,
	wgpu.VertexFormatSint32:    4,
	wgpu.VertexFormatSint32x2:  8,
	wgpu.VertexFormatSint32x3:  12,
	wgpu.VertexFormatSint32x4:  16,
}
