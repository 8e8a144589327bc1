package assets

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/spaghettifunk/buddha/engine/assets/loaders"
	"github.com/spaghettifunk/buddha/engine/core"
	"github.com/spaghettifunk/buddha/engine/renderer/metadata"
	"github.com/spaghettifunk/buddha/engine/systems"
)

// AssetManager decodes files on the job system and uploads them to the GPU
// from Poll, on the thread owning the graphics context.
type AssetManager struct {
	baseDir  string
	jobs     *systems.JobSystem
	uploader Uploader
	loaders  map[metadata.ResourceType]Loader

	mutex    sync.RWMutex
	textures map[string]*metadata.Texture
	meshes   map[string]*metadata.Mesh

	// owned by the main thread
	ctx      context.Context
	results  chan LoadResult
	pending  map[string]LoadRequest
	progress *Progress
	deadline time.Time
	now      func() time.Time
}

func NewAssetManager(baseDir string, jobs *systems.JobSystem, uploader Uploader) (*AssetManager, error) {
	if jobs == nil {
		return nil, errors.New("asset manager needs a job system")
	}
	if uploader == nil {
		return nil, errors.New("asset manager needs an uploader")
	}
	am := &AssetManager{
		baseDir:  baseDir,
		jobs:     jobs,
		uploader: uploader,
		loaders:  make(map[metadata.ResourceType]Loader),
		textures: make(map[string]*metadata.Texture),
		meshes:   make(map[string]*metadata.Mesh),
		now:      time.Now,
	}

	// Register loaders
	am.RegisterLoader(metadata.ResourceTypeImage, &loaders.TextureLoader{})
	am.RegisterLoader(metadata.ResourceTypeCompressedImage, &loaders.CompressedTextureLoader{})
	am.RegisterLoader(metadata.ResourceTypeMesh, &loaders.MeshLoader{})
	am.RegisterLoader(metadata.ResourceTypeGLTF, &loaders.GLTFLoader{})

	return am, nil
}

// RegisterLoader replaces the loader for one resource type.
func (am *AssetManager) RegisterLoader(assetType metadata.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// Load queues every request on the job system and returns without waiting.
// onReady runs once, from Poll, after the last asset reached the GPU. Loads
// not finished within timeout fail the whole set.
func (am *AssetManager) Load(ctx context.Context, requests []LoadRequest, timeout time.Duration, onReady func()) error {
	if am.progress != nil && am.progress.Err() == nil && !am.progress.Ready() {
		return errors.New("a load is already in progress")
	}

	names := make(map[string]bool, len(requests))
	for _, r := range requests {
		if _, ok := am.loaders[r.Type]; !ok {
			return errors.Wrapf(core.ErrUnsupportedFormat, "no loader registered for %s (%s)", r.Name, r.Type)
		}
		if names[r.Name] {
			return errors.Errorf("asset %s requested twice", r.Name)
		}
		names[r.Name] = true
	}

	am.ctx = ctx
	am.results = make(chan LoadResult, len(requests))
	am.pending = make(map[string]LoadRequest, len(requests))
	am.progress = NewProgress(len(requests), onReady)
	am.deadline = am.now().Add(timeout)

	if len(requests) == 0 {
		am.progress.Increment()
		return nil
	}

	for _, r := range requests {
		am.pending[r.Name] = r
	}
	for _, r := range requests {
		if err := am.submit(r); err != nil {
			am.progress.Fail(err)
			return err
		}
	}
	core.LogInfo("loading %d assets from %s", len(requests), am.baseDir)
	return nil
}

func (am *AssetManager) submit(r LoadRequest) error {
	loader := am.loaders[r.Type]
	path := filepath.Join(am.baseDir, r.Path)
	ctx := am.ctx
	results := am.results

	return am.jobs.Submit(systems.JobTask{
		Name: r.Name,
		OnStart: func() (interface{}, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return loader.Load(path, r.Type, r.Params)
		},
		OnComplete: func(result interface{}) {
			res, _ := result.(*metadata.Resource)
			results <- LoadResult{Request: r, Resource: res}
		},
		OnFailure: func(err error) {
			results <- LoadResult{Request: r, Err: err}
		},
	})
}

// Poll drains finished decodes, uploads them and advances the progress. It
// returns the load error once the set failed or timed out, nil otherwise.
func (am *AssetManager) Poll() error {
	if am.progress == nil {
		return nil
	}
	if err := am.progress.Err(); err != nil {
		return err
	}
	if am.progress.Ready() {
		return nil
	}

	if err := am.ctx.Err(); err != nil {
		am.progress.Fail(errors.Wrap(core.ErrAssetLoad, err.Error()))
		return am.progress.Err()
	}

drain:
	for {
		select {
		case res := <-am.results:
			if err := am.accept(res); err != nil {
				am.progress.Fail(err)
				return err
			}
			if am.progress.Ready() {
				return nil
			}
		default:
			break drain
		}
	}

	if am.now().After(am.deadline) {
		am.progress.Fail(errors.Wrapf(core.ErrLoadTimeout, "still waiting for %s", strings.Join(am.Pending(), ", ")))
		return am.progress.Err()
	}
	return nil
}

func (am *AssetManager) accept(res LoadResult) error {
	name := res.Request.Name
	if _, ok := am.pending[name]; !ok {
		return nil
	}
	delete(am.pending, name)

	if res.Err != nil {
		return errors.Wrapf(core.ErrAssetLoad, "%s: %s", name, res.Err)
	}
	if err := am.upload(res.Request, res.Resource); err != nil {
		return errors.Wrapf(core.ErrAssetLoad, "%s: %s", name, err)
	}

	pct := am.progress.Increment()
	core.LogInfo("loaded %s (%d%%)", name, pct)
	return nil
}

func (am *AssetManager) upload(r LoadRequest, res *metadata.Resource) error {
	if res == nil {
		return errors.Wrap(core.ErrAssetLoad, "loader returned no resource")
	}
	switch data := res.Data.(type) {
	case *metadata.ImageResourceData:
		texture := &metadata.Texture{
			ID:       r.ID,
			Name:     r.Name,
			Width:    data.Width,
			Height:   data.Height,
			Format:   data.Format,
			Sampling: metadata.DefaultSampling,
		}
		if p, ok := r.Params.(*metadata.TextureLoadParams); ok && p != nil {
			texture.Use = p.Use
			if p.Sampling != (metadata.TextureSampling{}) {
				texture.Sampling = p.Sampling
			}
		}
		if err := am.uploader.CreateTexture(texture, data.Pixels); err != nil {
			return err
		}
		am.mutex.Lock()
		am.textures[r.Name] = texture
		am.mutex.Unlock()

	case *metadata.MeshResourceData:
		mesh := &metadata.Mesh{
			ID:          r.ID,
			Name:        r.Name,
			Layout:      data.Layout,
			VertexCount: data.VertexCount(),
			IndexCount:  int32(len(data.Indices)),
		}
		if err := am.uploader.CreateMesh(mesh, data.Vertices, data.Indices); err != nil {
			return err
		}
		am.mutex.Lock()
		am.meshes[r.Name] = mesh
		am.mutex.Unlock()

	default:
		return errors.Wrapf(core.ErrUnsupportedFormat, "unexpected resource data %T", res.Data)
	}

	if loader, ok := am.loaders[r.Type]; ok {
		return loader.Unload(res)
	}
	return nil
}

// Pending lists the names still being decoded, sorted.
func (am *AssetManager) Pending() []string {
	out := make([]string, 0, len(am.pending))
	for n := range am.pending {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func (am *AssetManager) Progress() *Progress {
	return am.progress
}

// Ready reports whether every requested asset is on the GPU.
func (am *AssetManager) Ready() bool {
	return am.progress != nil && am.progress.Ready()
}

func (am *AssetManager) Texture(name string) *metadata.Texture {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return am.textures[name]
}

func (am *AssetManager) Mesh(name string) *metadata.Mesh {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return am.meshes[name]
}

// Shutdown releases every GPU resource created by Poll.
func (am *AssetManager) Shutdown() error {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	for name, t := range am.textures {
		am.uploader.DestroyTexture(t)
		delete(am.textures, name)
	}
	for name, m := range am.meshes {
		am.uploader.DestroyMesh(m)
		delete(am.meshes, name)
	}
	return nil
}
