package buddha

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/spaghettifunk/buddha/engine/core"
	"github.com/spaghettifunk/buddha/engine/renderer"
	"github.com/spaghettifunk/buddha/engine/renderer/metadata"
)

const tableDiffuseScale = 5.0

var skyTransform = renderer.Scaled(7, 7, 3.5)

// assetSource is the lookup side of the asset manager.
type assetSource interface {
	Texture(name string) *metadata.Texture
	Mesh(name string) *metadata.Mesh
}

// drawer issues the draw calls of one frame. The first missing asset is kept
// in err and fails the pass asking for it.
type drawer struct {
	r      *renderer.Renderer
	assets assetSource
	state  *sceneState
	err    error
}

// drawScene renders the whole scene. Nothing reaches the backend until every
// asset is loaded.
func drawScene(r *renderer.Renderer, assets assetSource, s *sceneState) error {
	if !s.ready {
		return nil
	}

	if err := r.BeginFrame(s.clearColor); err != nil {
		return err
	}

	s.camera.PositionCamera(0.0)
	s.camera.SetCameraFOV(1.0, s.width, s.height)

	d := &drawer{r: r, assets: assets, state: s}
	passes := []func() error{
		d.drawBuddha,
		d.drawSky,
		d.drawTable,
		d.drawShaft,
		d.drawDust,
	}
	for _, pass := range passes {
		if err := pass(); err != nil {
			return err
		}
	}

	return r.EndFrame()
}

func (d *drawer) texture(name string) *metadata.Texture {
	t := d.assets.Texture(name)
	if t == nil && d.err == nil {
		d.err = errors.Wrapf(core.ErrNotReady, "texture %s is not loaded", name)
	}
	return t
}

func (d *drawer) mesh(name string) *metadata.Mesh {
	m := d.assets.Mesh(name)
	if m == nil && d.err == nil {
		d.err = errors.Wrapf(core.ErrNotReady, "mesh %s is not loaded", name)
	}
	return m
}

func (d *drawer) mvp(t renderer.Transform) (mvp, view mgl32.Mat4) {
	cam := d.state.camera
	return renderer.MVP(cam.Projection(), cam.View(), t), cam.View()
}

func (d *drawer) drawBuddha() error {
	mesh := d.mesh(MeshBuddha)
	normal := d.texture(TextureBuddhaNormalMap)
	sphere := d.texture(TextureSphericalMap)
	ao := d.texture(TextureBuddhaLightMap)
	if d.err != nil {
		return d.err
	}
	mvp, view := d.mvp(renderer.Identity())
	return d.state.shaders.SphericalMapLM.Draw(d.r, mesh, mvp, view, normal, sphere, ao)
}

func (d *drawer) drawSky() error {
	mesh := d.mesh(MeshSky)
	sky := d.texture(TextureSky)
	if d.err != nil {
		return d.err
	}
	mvp, _ := d.mvp(skyTransform)
	return d.state.shaders.Diffuse.Draw(d.r, mesh, mvp, sky)
}

func (d *drawer) drawTable() error {
	mesh := d.mesh(MeshTable)
	diffuse := d.texture(TextureTable)
	lightmap := d.texture(TextureTableLightMap)
	if d.err != nil {
		return d.err
	}

	d.r.SetDepthWrite(false)
	d.r.SetBlendMode(renderer.BlendAlpha)
	defer d.restore()

	mvp, _ := d.mvp(renderer.Identity())
	return d.state.shaders.LightmapTable.Draw(d.r, mesh, mvp, diffuse, lightmap, tableDiffuseScale)
}

func (d *drawer) drawShaft() error {
	mesh := d.mesh(MeshShaft)
	shaft := d.texture(TextureShaft)
	if d.err != nil {
		return d.err
	}

	d.r.SetDepthWrite(false)
	d.r.SetBlendMode(renderer.BlendAlpha)
	defer d.restore()

	mvp, view := d.mvp(renderer.Identity())
	return d.state.shaders.LightShaft.Draw(d.r, mesh, mvp, view, shaft)
}

func (d *drawer) drawDust() error {
	mesh := d.mesh(MeshDustPatch)
	sprite := d.texture(TextureDust)
	if d.err != nil {
		return d.err
	}

	d.r.SetBlendMode(renderer.BlendAdditive)
	d.r.SetDepthWrite(false)
	defer d.restore()

	dust := d.state.dust
	first, second := dust.FlickerColors()
	technique := d.state.shaders.PointSpriteScaledColored
	if err := technique.Begin(d.r, mesh, sprite, dust.Thickness(), first); err != nil {
		return err
	}
	switchAt := dust.ColorSwitchIndex()
	for i := range dust.Particles() {
		mvp, _ := d.mvp(dust.Transform(i))
		technique.DrawInstance(d.r, mesh, mvp)
		if i == switchAt {
			technique.SetColor(d.r, second)
		}
	}
	technique.End(d.r)
	return nil
}

// restore puts blending and depth writes back to the opaque defaults.
func (d *drawer) restore() {
	d.r.SetBlendMode(renderer.BlendNone)
	d.r.SetDepthWrite(true)
}
