package loaders

import (
	"encoding/binary"
	"math"
	"os"

	"github.com/pkg/errors"

	"github.com/spaghettifunk/buddha/engine/core"
	"github.com/spaghettifunk/buddha/engine/renderer/metadata"
)

const (
	IndicesSuffix = "-indices.bin"
	StridesSuffix = "-strides.bin"
)

// MeshLoader reads a mesh stored as two files next to each other:
// <path>-indices.bin with little-endian uint16 indices and <path>-strides.bin
// with little-endian float32 interleaved vertices.
type MeshLoader struct{}

func (ml *MeshLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	if assetType != metadata.ResourceTypeMesh {
		return nil, errors.Wrapf(core.ErrUnsupportedFormat, "mesh loader cannot load %s", assetType)
	}
	p, ok := params.(*metadata.MeshLoadParams)
	if !ok || p == nil {
		return nil, errors.Errorf("failed to cast params in mesh loader for %s", path)
	}

	rawIndices, err := os.ReadFile(path + IndicesSuffix)
	if err != nil {
		return nil, err
	}
	rawStrides, err := os.ReadFile(path + StridesSuffix)
	if err != nil {
		return nil, err
	}

	indices, err := ParseIndices(rawIndices)
	if err != nil {
		return nil, errors.Wrap(err, path+IndicesSuffix)
	}
	vertices, err := ParseStrides(rawStrides)
	if err != nil {
		return nil, errors.Wrap(err, path+StridesSuffix)
	}

	data := &metadata.MeshResourceData{
		Layout:   p.Layout,
		Vertices: vertices,
		Indices:  indices,
	}
	if err := ValidateMesh(data); err != nil {
		return nil, errors.Wrap(err, path)
	}
	return &metadata.Resource{
		Name:     path,
		FullPath: path,
		DataSize: uint64(len(rawIndices) + len(rawStrides)),
		Data:     data,
	}, nil
}

func (ml *MeshLoader) Unload(*metadata.Resource) error {
	return nil
}

func ParseIndices(b []byte) ([]uint16, error) {
	if len(b)%2 != 0 {
		return nil, errors.Wrapf(core.ErrInvalidMesh, "index data is %d bytes, not a multiple of 2", len(b))
	}
	out := make([]uint16, len(b)/2)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(b[i*2:])
	}
	return out, nil
}

func ParseStrides(b []byte) ([]float32, error) {
	if len(b)%4 != 0 {
		return nil, errors.Wrapf(core.ErrInvalidMesh, "vertex data is %d bytes, not a multiple of 4", len(b))
	}
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return out, nil
}

// ValidateMesh checks the vertex data holds whole vertices of the layout and
// that every index points at one of them.
func ValidateMesh(m *metadata.MeshResourceData) error {
	fpv := int(m.Layout.FloatsPerVertex())
	if fpv == 0 {
		return errors.Wrap(core.ErrInvalidMesh, "empty vertex layout")
	}
	if len(m.Vertices) == 0 || len(m.Indices) == 0 {
		return errors.Wrap(core.ErrInvalidMesh, "mesh has no vertices or no indices")
	}
	if len(m.Vertices)%fpv != 0 {
		return errors.Wrapf(core.ErrInvalidMesh, "%d floats is not a whole number of %d float vertices", len(m.Vertices), fpv)
	}
	count := len(m.Vertices) / fpv
	for i, idx := range m.Indices {
		if int(idx) >= count {
			return errors.Wrapf(core.ErrInvalidMesh, "index %d at %d out of range for %d vertices", idx, i, count)
		}
	}
	return nil
}
