package buddha

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/buddha/engine/config"
	"github.com/spaghettifunk/buddha/engine/core"
	"github.com/spaghettifunk/buddha/engine/renderer"
	"github.com/spaghettifunk/buddha/engine/renderer/metadata"
	"github.com/spaghettifunk/buddha/engine/renderer/renderertest"
	"github.com/spaghettifunk/buddha/engine/renderer/shaders"
)

type constRand float64

func (c constRand) Float64() float64 { return float64(c) }

type fakeAssets struct {
	textures map[string]*metadata.Texture
	meshes   map[string]*metadata.Mesh
}

func (f *fakeAssets) Texture(name string) *metadata.Texture { return f.textures[name] }
func (f *fakeAssets) Mesh(name string) *metadata.Mesh       { return f.meshes[name] }

func sceneAssets() *fakeAssets {
	f := &fakeAssets{
		textures: make(map[string]*metadata.Texture),
		meshes:   make(map[string]*metadata.Mesh),
	}
	for _, r := range Manifest(false) {
		switch r.Type {
		case metadata.ResourceTypeMesh:
			layout := r.Params.(*metadata.MeshLoadParams).Layout
			f.meshes[r.Name] = &metadata.Mesh{Name: r.Name, Layout: layout, IndexCount: 6}
		default:
			f.textures[r.Name] = &metadata.Texture{Name: r.Name}
		}
	}
	return f
}

func newDrawState(t *testing.T, cfg *config.Config) (*renderer.Renderer, *renderertest.Recorder, *sceneState) {
	t.Helper()
	rec := renderertest.NewRecorder()
	r := renderer.New(rec)
	require.NoError(t, r.OnResize(1280, 720))

	st := newSceneState(cfg, core.NewClock())
	set, err := shaders.LoadAll(rec)
	require.NoError(t, err)
	st.shaders = set
	st.width, st.height = 1280, 720
	st.dust.FillParticles(constRand(0.25))
	st.dust.Resize(st.width, st.height)
	st.dust.Advance(2500)
	st.ready = true

	rec.Reset()
	return r, rec, st
}

func args(calls []renderertest.Call, i int) []interface{} {
	out := make([]interface{}, len(calls))
	for n, c := range calls {
		out[n] = c.Args[i]
	}
	return out
}

func TestDrawSceneDoesNothingBeforeReady(t *testing.T) {
	r, rec, st := newDrawState(t, config.Default())
	st.ready = false

	require.NoError(t, drawScene(r, sceneAssets(), st))
	assert.Empty(t, rec.Calls())
}

func TestDrawSceneSequence(t *testing.T) {
	r, rec, st := newDrawState(t, config.Default())
	require.NoError(t, drawScene(r, sceneAssets(), st))

	methods := rec.Methods()
	require.NotEmpty(t, methods)
	assert.Equal(t, "BeginFrame", methods[0])
	assert.Equal(t, "EndFrame", methods[len(methods)-1])

	begin := rec.Filter("BeginFrame")
	require.Len(t, begin, 1)
	assert.Equal(t, []interface{}{uint32(1280), uint32(720), mgl32.Vec4{0, 1, 0, 1}}, begin[0].Args)

	assert.Equal(t, []interface{}{
		shaders.SphericalMapLMName,
		shaders.DiffuseName,
		shaders.LightmapTableName,
		shaders.LightShaftName,
		shaders.PointSpriteScaledColoredName,
	}, args(rec.Filter("UseProgram"), 0))

	assert.Equal(t, []interface{}{
		MeshBuddha, MeshSky, MeshTable, MeshShaft, MeshDustPatch,
	}, args(rec.Filter("BindMesh"), 0))

	draws := rec.Filter("DrawIndexed")
	require.Len(t, draws, 4+8)
	for i, d := range draws {
		want := renderer.PrimitiveTriangles
		if i >= 4 {
			want = renderer.PrimitivePoints
		}
		assert.Equal(t, want, d.Args[0], "draw %d", i)
		assert.Equal(t, int32(6), d.Args[1])
	}

	assert.Equal(t, []interface{}{
		renderer.BlendAlpha, renderer.BlendNone,
		renderer.BlendAlpha, renderer.BlendNone,
		renderer.BlendAdditive, renderer.BlendNone,
	}, args(rec.Filter("SetBlendMode"), 0))
	assert.Equal(t, []interface{}{false, true, false, true, false, true}, args(rec.Filter("SetDepthWrite"), 0))

	textures := rec.Filter("BindTexture")
	require.Len(t, textures, 3+1+2+1+1)
	assert.Equal(t, []interface{}{uint32(0), uint32(1), uint32(2)}, args(textures[:3], 0))
	assert.Equal(t, []interface{}{TextureBuddhaNormalMap, TextureSphericalMap, TextureBuddhaLightMap}, args(textures[:3], 1))
	assert.Equal(t, TextureSky, textures[3].Args[1])
	assert.Equal(t, []interface{}{TextureTable, TextureTableLightMap}, args(textures[4:6], 1))
	assert.Equal(t, TextureShaft, textures[6].Args[1])
	assert.Equal(t, TextureDust, textures[7].Args[1])

	floats := rec.Filter("SetUniformFloat")
	require.Len(t, floats, 2)
	assert.Equal(t, float32(5), floats[0].Args[1])
	assert.InDelta(t, 720*0.18, floats[1].Args[1], 1e-3)
}

func TestDrawSceneStatueMatrices(t *testing.T) {
	r, rec, st := newDrawState(t, config.Default())
	require.NoError(t, drawScene(r, sceneAssets(), st))

	view := st.camera.View()
	proj := st.camera.Projection()
	mats := rec.Filter("SetUniformMat4")
	// statue: view then view_proj
	require.GreaterOrEqual(t, len(mats), 3)
	assert.Equal(t, view, mats[0].Args[1])
	assert.Equal(t, proj.Mul4(view), mats[1].Args[1])
	// sky is scaled
	assert.Equal(t, renderer.MVP(proj, view, renderer.Scaled(7, 7, 3.5)), mats[2].Args[1])
}

func TestDustColorSwitchesAfterMiddleParticle(t *testing.T) {
	r, rec, st := newDrawState(t, config.Default())
	require.NoError(t, drawScene(r, sceneAssets(), st))

	first, second := st.dust.FlickerColors()
	calls := rec.Calls()

	var points []int
	var colors []int
	for i, c := range calls {
		switch {
		case c.Method == "DrawIndexed" && c.Args[0] == renderer.PrimitivePoints:
			points = append(points, i)
		case c.Method == "SetUniformVec4":
			colors = append(colors, i)
		}
	}
	require.Len(t, points, 8)
	require.Len(t, colors, 2)

	assert.Less(t, colors[0], points[0])
	assert.Equal(t, first, calls[colors[0]].Args[1])
	// particle 4 is still drawn with the first color
	assert.Greater(t, colors[1], points[4])
	assert.Less(t, colors[1], points[5])
	assert.Equal(t, second, calls[colors[1]].Args[1])
}

func TestDustOddCountKeepsOneColor(t *testing.T) {
	cfg := config.Default()
	cfg.Dust.Count = 7
	r, rec, st := newDrawState(t, cfg)
	require.NoError(t, drawScene(r, sceneAssets(), st))

	assert.Len(t, rec.Filter("SetUniformVec4"), 1)
	assert.Len(t, rec.Filter("DrawIndexed"), 4+7)
}

func TestDustRotationGroups(t *testing.T) {
	r, rec, st := newDrawState(t, config.Default())
	require.NoError(t, drawScene(r, sceneAssets(), st))

	view := st.camera.View()
	proj := st.camera.Projection()
	var mvps []interface{}
	for _, c := range rec.Filter("SetUniformMat4") {
		mvps = append(mvps, c.Args[1])
	}
	dust := mvps[len(mvps)-8:]
	for i := range dust {
		assert.Equal(t, renderer.MVP(proj, view, st.dust.Transform(i)), dust[i], "particle %d", i)
	}
}

func TestDrawSceneMissingAsset(t *testing.T) {
	r, rec, st := newDrawState(t, config.Default())
	a := sceneAssets()
	delete(a.meshes, MeshTable)

	err := drawScene(r, a, st)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNotReady))
	assert.Contains(t, err.Error(), MeshTable)
	assert.Empty(t, rec.Filter("SetBlendMode"))
}
