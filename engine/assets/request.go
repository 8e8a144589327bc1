package assets

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/spaghettifunk/buddha/engine/renderer/metadata"
)

// LoadRequest names one asset to fetch. Path is relative to the asset
// directory; mesh pairs are given without the -indices.bin/-strides.bin suffix.
type LoadRequest struct {
	ID     uuid.UUID
	Name   string
	Path   string
	Type   metadata.ResourceType
	Params interface{}
}

func NewTextureRequest(name, path string, params metadata.TextureLoadParams) LoadRequest {
	return LoadRequest{
		ID:     uuid.New(),
		Name:   name,
		Path:   path,
		Type:   metadata.ResourceTypeImage,
		Params: &params,
	}
}

func NewCompressedTextureRequest(name, path string, params metadata.TextureLoadParams) LoadRequest {
	r := NewTextureRequest(name, path, params)
	r.Type = metadata.ResourceTypeCompressedImage
	return r
}

// NewMeshRequest picks the glTF loader for .gltf and .glb paths and the
// native index/stride pair otherwise.
func NewMeshRequest(name, path string, layout metadata.VertexLayout) LoadRequest {
	t := metadata.ResourceTypeMesh
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		t = metadata.ResourceTypeGLTF
	}
	return LoadRequest{
		ID:     uuid.New(),
		Name:   name,
		Path:   path,
		Type:   t,
		Params: &metadata.MeshLoadParams{Layout: layout},
	}
}

// LoadResult carries a decoded resource, or the reason there is none, back
// to the main thread.
type LoadResult struct {
	Request  LoadRequest
	Resource *metadata.Resource
	Err      error
}
