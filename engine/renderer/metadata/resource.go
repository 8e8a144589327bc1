package metadata

type ResourceType int

/** @brief Pre-defined resource types. */
const (
	/** @brief Image resource type, decoded to RGBA8. */
	ResourceTypeImage ResourceType = iota
	/** @brief ETC1 compressed image in a PKM container. */
	ResourceTypeCompressedImage
	/** @brief Mesh stored as an <name>-indices.bin / <name>-strides.bin pair. */
	ResourceTypeMesh
	/** @brief Mesh stored as glTF. */
	ResourceTypeGLTF
)

func (t ResourceType) String() string {
	switch t {
	case ResourceTypeImage:
		return "image"
	case ResourceTypeCompressedImage:
		return "compressed image"
	case ResourceTypeMesh:
		return "mesh"
	case ResourceTypeGLTF:
		return "gltf"
	default:
		return "unknown"
	}
}

/**
 * @brief A generic structure for a resource. All resource loaders
 * load data into these.
 */
type Resource struct {
	/** @brief The name of the resource. */
	Name string
	/** @brief The full file path of the resource. */
	FullPath string
	/** @brief The size of the resource data in bytes. */
	DataSize uint64
	/** @brief The resource data, *ImageResourceData or *MeshResourceData. */
	Data interface{}
}

type ImageResourceData struct {
	Format TextureFormat
	Width  uint32
	Height uint32
	/** @brief RGBA8 pixels, or raw ETC1 blocks. */
	Pixels []uint8
}

type MeshResourceData struct {
	Layout   VertexLayout
	Vertices []float32
	Indices  []uint16
}

// VertexCount returns the number of whole vertices in Vertices.
func (m *MeshResourceData) VertexCount() int32 {
	fpv := m.Layout.FloatsPerVertex()
	if fpv == 0 {
		return 0
	}
	return int32(len(m.Vertices)) / fpv
}
