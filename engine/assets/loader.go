package assets

import "github.com/spaghettifunk/buddha/engine/renderer/metadata"

// Loader decodes one file into a resource. Loaders run on worker goroutines
// and must not touch the GPU.
type Loader interface {
	Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) // `interface{}` here allows loaders to take per-type params
	Unload(*metadata.Resource) error
}

// Uploader moves decoded data to the GPU. Only called from the thread owning
// the graphics context.
type Uploader interface {
	CreateMesh(mesh *metadata.Mesh, vertices []float32, indices []uint16) error
	DestroyMesh(mesh *metadata.Mesh)
	CreateTexture(texture *metadata.Texture, data []uint8) error
	DestroyTexture(texture *metadata.Texture)
}
