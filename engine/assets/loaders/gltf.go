package loaders

import (
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/spaghettifunk/buddha/engine/core"
	"github.com/spaghettifunk/buddha/engine/renderer/metadata"
)

// GLTFLoader reads the first primitive of the first mesh of a .gltf or .glb
// file and interleaves it into the requested layout.
type GLTFLoader struct{}

func (gtl *GLTFLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	if assetType != metadata.ResourceTypeGLTF {
		return nil, errors.Wrapf(core.ErrUnsupportedFormat, "gltf loader cannot load %s", assetType)
	}
	p, ok := params.(*metadata.MeshLoadParams)
	if !ok || p == nil {
		return nil, errors.Errorf("failed to cast params in gltf loader for %s", path)
	}

	doc, err := gltf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	if len(doc.Meshes) == 0 || len(doc.Meshes[0].Primitives) == 0 {
		return nil, errors.Wrapf(core.ErrInvalidMesh, "%s has no mesh primitives", path)
	}
	primitive := doc.Meshes[0].Primitives[0]
	if primitive.Indices == nil {
		return nil, errors.Wrapf(core.ErrInvalidMesh, "%s primitive has no indices", path)
	}

	streams := VertexStreams{}
	if idx, ok := primitive.Attributes["POSITION"]; ok {
		if streams.Positions, err = modeler.ReadPosition(doc, doc.Accessors[idx], nil); err != nil {
			return nil, errors.Wrapf(err, "failed to read %s positions", path)
		}
	}
	if idx, ok := primitive.Attributes["TEXCOORD_0"]; ok {
		if streams.TexCoords0, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return nil, errors.Wrapf(err, "failed to read %s texture coordinates", path)
		}
	}
	if idx, ok := primitive.Attributes["TEXCOORD_1"]; ok {
		if streams.TexCoords1, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return nil, errors.Wrapf(err, "failed to read %s lightmap coordinates", path)
		}
	}
	if idx, ok := primitive.Attributes["NORMAL"]; ok {
		if streams.Normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return nil, errors.Wrapf(err, "failed to read %s normals", path)
		}
	}
	rawIndices, err := modeler.ReadIndices(doc, doc.Accessors[*primitive.Indices], nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s indices", path)
	}

	vertices, err := InterleaveVertices(p.Layout, streams)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	indices, err := NarrowIndices(rawIndices)
	if err != nil {
		return nil, errors.Wrap(err, path)
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
		DataSize: uint64(len(vertices)*4 + len(indices)*2),
		Data:     data,
	}, nil
}

func (gtl *GLTFLoader) Unload(*metadata.Resource) error {
	return nil
}

// VertexStreams holds per-attribute arrays as glTF stores them.
type VertexStreams struct {
	Positions  [][3]float32
	TexCoords0 [][2]float32
	TexCoords1 [][2]float32
	Normals    [][3]float32
}

// InterleaveVertices packs the streams a layout asks for, in layout order.
func InterleaveVertices(layout metadata.VertexLayout, s VertexStreams) ([]float32, error) {
	count := len(s.Positions)
	if count == 0 {
		return nil, errors.Wrap(core.ErrInvalidMesh, "no positions")
	}
	for _, attr := range layout.Attributes {
		n := 0
		switch attr {
		case metadata.AttributePosition:
			n = len(s.Positions)
		case metadata.AttributeTexCoord0:
			n = len(s.TexCoords0)
		case metadata.AttributeTexCoord1:
			n = len(s.TexCoords1)
		case metadata.AttributeNormal:
			n = len(s.Normals)
		}
		if n == 0 {
			return nil, errors.Wrapf(core.ErrMissingAttribute, "layout needs %s", attr)
		}
		if n != count {
			return nil, errors.Wrapf(core.ErrInvalidMesh, "%s has %d entries for %d positions", attr, n, count)
		}
	}

	out := make([]float32, 0, count*int(layout.FloatsPerVertex()))
	for i := 0; i < count; i++ {
		for _, attr := range layout.Attributes {
			switch attr {
			case metadata.AttributePosition:
				out = append(out, s.Positions[i][:]...)
			case metadata.AttributeTexCoord0:
				out = append(out, s.TexCoords0[i][:]...)
			case metadata.AttributeTexCoord1:
				out = append(out, s.TexCoords1[i][:]...)
			case metadata.AttributeNormal:
				out = append(out, s.Normals[i][:]...)
			}
		}
	}
	return out, nil
}

// NarrowIndices converts to the 16 bit indices the renderer draws with.
func NarrowIndices(in []uint32) ([]uint16, error) {
	out := make([]uint16, len(in))
	for i, v := range in {
		if v > 0xFFFF {
			return nil, errors.Wrapf(core.ErrInvalidMesh, "index %d does not fit 16 bits", v)
		}
		out[i] = uint16(v)
	}
	return out, nil
}
