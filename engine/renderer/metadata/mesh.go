package metadata

import "github.com/google/uuid"

// VertexAttribute names one interleaved float attribute of a vertex.
type VertexAttribute uint8

const (
	AttributePosition VertexAttribute = iota
	AttributeTexCoord0
	AttributeTexCoord1
	AttributeNormal
)

const FloatSizeBytes int32 = 4

// Components returns the number of floats the attribute occupies.
func (a VertexAttribute) Components() int32 {
	switch a {
	case AttributeTexCoord0, AttributeTexCoord1:
		return 2
	default:
		return 3
	}
}

func (a VertexAttribute) String() string {
	switch a {
	case AttributePosition:
		return "position"
	case AttributeTexCoord0:
		return "texcoord0"
	case AttributeTexCoord1:
		return "texcoord1"
	case AttributeNormal:
		return "normal"
	default:
		return "unknown"
	}
}

// VertexLayout lists the attributes of an interleaved vertex in buffer order.
type VertexLayout struct {
	Attributes []VertexAttribute
}

var (
	// X, Y, Z, U, V
	LayoutPositionUV = VertexLayout{Attributes: []VertexAttribute{AttributePosition, AttributeTexCoord0}}
	// X, Y, Z, U0, V0, U1, V1
	LayoutLightmapped = VertexLayout{Attributes: []VertexAttribute{AttributePosition, AttributeTexCoord0, AttributeTexCoord1}}
	// X, Y, Z, U0, V0, U1, V1, NX, NY, NZ
	LayoutFull = VertexLayout{Attributes: []VertexAttribute{AttributePosition, AttributeTexCoord0, AttributeTexCoord1, AttributeNormal}}
)

// FloatsPerVertex returns the number of floats in one vertex.
func (l VertexLayout) FloatsPerVertex() int32 {
	var n int32
	for _, a := range l.Attributes {
		n += a.Components()
	}
	return n
}

// Stride returns the size of one vertex in bytes.
func (l VertexLayout) Stride() int32 {
	return l.FloatsPerVertex() * FloatSizeBytes
}

// Offset returns the byte offset of attr inside a vertex and whether the
// layout contains it at all.
func (l VertexLayout) Offset(attr VertexAttribute) (int32, bool) {
	var offset int32
	for _, a := range l.Attributes {
		if a == attr {
			return offset, true
		}
		offset += a.Components() * FloatSizeBytes
	}
	return 0, false
}

func (l VertexLayout) Has(attr VertexAttribute) bool {
	_, ok := l.Offset(attr)
	return ok
}

// Also used as params for the mesh loaders.
type MeshLoadParams struct {
	Layout VertexLayout
}

// Mesh is an indexed vertex buffer resident on the GPU. Immutable once uploaded.
type Mesh struct {
	ID   uuid.UUID
	Name string
	/** @brief The vertex layout the buffer was interleaved with. */
	Layout      VertexLayout
	VertexCount int32
	IndexCount  int32
	/** @brief Backend handle of the vertex buffer. */
	VertexBuffer uint32
	/** @brief Backend handle of the index buffer. */
	IndexBuffer uint32
	/** @brief Incremented every time the data is uploaded. */
	Generation uint8
}
