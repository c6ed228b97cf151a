package drawable

import (
	"github.com/Carmen-Shannon/oxy-draw/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// DrawMode selects between a direct and an indexed draw call. It is one of
// Direct or Indexed.
type DrawMode interface {
	isDrawMode()
}

// Direct draws VertexCount vertices without an index buffer.
type Direct struct {
	VertexCount uint32
}

// Indexed draws IndexCount indices read from Data.
type Indexed struct {
	Format     wgpu.IndexFormat
	IndexCount uint32
	Data       []byte
}

func (Direct) isDrawMode()  {}
func (Indexed) isDrawMode() {}

// IndexedU16 builds an Indexed mode from 16-bit indices.
func IndexedU16(indices []uint16) Indexed {
	return Indexed{
		Format:     wgpu.IndexFormatUint16,
		IndexCount: uint32(len(indices)),
		Data:       append([]byte(nil), common.SliceToBytes(indices)...),
	}
}

// IndexedU32 builds an Indexed mode from 32-bit indices.
func IndexedU32(indices []uint32) Indexed {
	return Indexed{
		Format:     wgpu.IndexFormatUint32,
		IndexCount: uint32(len(indices)),
		Data:       append([]byte(nil), common.SliceToBytes(indices)...),
	}
}
