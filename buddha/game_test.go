package buddha

import (
	"encoding/binary"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/buddha/engine/assets"
	"github.com/spaghettifunk/buddha/engine/assets/loaders"
	"github.com/spaghettifunk/buddha/engine/config"
	"github.com/spaghettifunk/buddha/engine/core"
	"github.com/spaghettifunk/buddha/engine/renderer"
	"github.com/spaghettifunk/buddha/engine/renderer/metadata"
	"github.com/spaghettifunk/buddha/engine/renderer/renderertest"
	"github.com/spaghettifunk/buddha/engine/systems"
)

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time { return f.t }

func (f *fakeClock) advance(ms int64) {
	f.t = f.t.Add(time.Duration(ms) * time.Millisecond)
}

func newTestDemo(t *testing.T, dir string, compressed bool) (*BuddhaDemo, *renderertest.Recorder, *fakeClock) {
	t.Helper()
	cfg := config.Default()
	cfg.Assets.Dir = dir
	cfg.Assets.Workers = 2

	clock := &fakeClock{t: time.UnixMilli(1_000_000)}
	bd, err := newBuddhaDemo(cfg, core.NewClockWithSource(clock.now), constRand(0.25))
	require.NoError(t, err)

	rec := renderertest.NewRecorder()
	rec.Compressed = compressed
	r := renderer.New(rec)
	require.NoError(t, r.Initialize("test", 1280, 720))

	sm, err := systems.NewSystemManager(r, core.NewEventBus(), 2)
	require.NoError(t, err)
	t.Cleanup(func() { sm.Shutdown() })

	am, err := assets.NewAssetManager(dir, sm.Jobs, rec)
	require.NoError(t, err)

	bd.SystemManager = sm
	bd.AssetManager = am
	return bd, rec, clock
}

func writeSceneAssets(t *testing.T, dir string, compressed bool) {
	t.Helper()
	for _, r := range Manifest(compressed) {
		path := filepath.Join(dir, r.Path)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

		switch r.Type {
		case metadata.ResourceTypeImage:
			f, err := os.Create(path)
			require.NoError(t, err)
			require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 2, 2))))
			require.NoError(t, f.Close())

		case metadata.ResourceTypeCompressedImage:
			b := make([]byte, 16+8)
			copy(b, "PKM 10")
			for i, v := range []uint16{0, 4, 4, 4, 4} {
				binary.BigEndian.PutUint16(b[6+i*2:], v)
			}
			require.NoError(t, os.WriteFile(path, b, 0o644))

		case metadata.ResourceTypeMesh:
			layout := r.Params.(*metadata.MeshLoadParams).Layout
			floats := make([]byte, 3*int(layout.FloatsPerVertex())*4)
			for i := 0; i < len(floats); i += 4 {
				binary.LittleEndian.PutUint32(floats[i:], math.Float32bits(float32(i)))
			}
			indices := []byte{0, 0, 1, 0, 2, 0}
			require.NoError(t, os.WriteFile(path+loaders.StridesSuffix, floats, 0o644))
			require.NoError(t, os.WriteFile(path+loaders.IndicesSuffix, indices, 0o644))
		}
	}
}

func updateUntilReady(t *testing.T, bd *BuddhaDemo) error {
	t.Helper()
	var err error
	require.Eventually(t, func() bool {
		err = bd.Update(0)
		return err != nil || bd.state().ready
	}, 5*time.Second, 5*time.Millisecond)
	return err
}

func TestManifest(t *testing.T) {
	for _, compressed := range []bool{false, true} {
		requests := Manifest(compressed)
		require.Len(t, requests, 13)

		textures, meshes := 0, 0
		names := map[string]bool{}
		for _, r := range requests {
			names[r.Name] = true
			if r.Type == metadata.ResourceTypeMesh {
				meshes++
			} else {
				textures++
				params, ok := r.Params.(*metadata.TextureLoadParams)
				require.True(t, ok, r.Name)
				assert.False(t, params.FlipY, r.Name)
			}
		}
		assert.Equal(t, 8, textures)
		assert.Equal(t, 5, meshes)
		assert.Len(t, names, 13, "names are unique")

		table := requests[3]
		assert.Equal(t, TextureTable, table.Name)
		if compressed {
			assert.Equal(t, metadata.ResourceTypeCompressedImage, table.Type)
			assert.Equal(t, "textures/table/marble.pkm", table.Path)
		} else {
			assert.Equal(t, metadata.ResourceTypeImage, table.Type)
			assert.Equal(t, "textures/table/marble.png", table.Path)
		}
	}
}

func TestBuddhaDemoLoadsThenDraws(t *testing.T) {
	for _, compressed := range []bool{false, true} {
		dir := t.TempDir()
		writeSceneAssets(t, dir, compressed)
		bd, rec, _ := newTestDemo(t, dir, compressed)

		readyEvents := []interface{}{}
		bd.SystemManager.Events.Register(core.EVENT_CODE_ASSETS_READY, func(ctx core.EventContext) {
			readyEvents = append(readyEvents, ctx.Data)
		})

		require.NoError(t, bd.Initialize())
		require.NoError(t, bd.OnResize(1280, 720))
		assert.Len(t, rec.Filter("CreateProgram"), 5)

		rec.Reset()
		require.NoError(t, bd.DrawScene())
		assert.Empty(t, rec.Calls())

		require.NoError(t, updateUntilReady(t, bd))
		assert.Equal(t, []interface{}{13}, readyEvents)
		assert.Len(t, rec.Filter("CreateTexture"), 8)
		assert.Len(t, rec.Filter("CreateMesh"), 5)

		for _, c := range rec.Filter("CreateTexture") {
			if c.Args[0] == TextureTable {
				want := metadata.TextureFormatRGBA8
				if compressed {
					want = metadata.TextureFormatETC1
				}
				assert.Equal(t, want, c.Args[1])
			}
		}

		rec.Reset()
		require.NoError(t, bd.DrawScene())
		assert.Len(t, rec.Filter("DrawIndexed"), 4+8)
		assert.Equal(t, "EndFrame", rec.Methods()[len(rec.Methods())-1])

		require.NoError(t, bd.Shutdown())
		assert.Len(t, rec.Filter("DestroyProgram"), 5)
	}
}

func TestBuddhaDemoCompressedRequiresDriverSupport(t *testing.T) {
	dir := t.TempDir()
	// only the PNG fallback exists on disk
	writeSceneAssets(t, dir, false)
	bd, rec, _ := newTestDemo(t, dir, false)

	require.NoError(t, bd.Initialize())
	require.NoError(t, updateUntilReady(t, bd))
	for _, c := range rec.Filter("CreateTexture") {
		assert.Equal(t, metadata.TextureFormatRGBA8, c.Args[1])
	}
}

func TestBuddhaDemoMissingAssetFails(t *testing.T) {
	dir := t.TempDir()
	bd, rec, _ := newTestDemo(t, dir, false)
	require.NoError(t, bd.Initialize())

	err := updateUntilReady(t, bd)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrAssetLoad))

	rec.Reset()
	require.NoError(t, bd.DrawScene())
	assert.Empty(t, rec.Calls())
}

func TestBuddhaDemoAnimate(t *testing.T) {
	bd, _, clock := newTestDemo(t, t.TempDir(), false)
	st := bd.state()

	bd.Animate()
	assert.Equal(t, 0.0, st.camera.Yaw())
	assert.Equal(t, 0.0, st.dust.Flicker())

	clock.advance(800)
	bd.Animate()
	assert.InDelta(t, 10.0, st.camera.Yaw(), 1e-9)
	assert.InDelta(t, 800.0/10000.0, st.dust.Flicker(), 1e-9)
	assert.InDelta(t, 1000800.0/21000000.0, st.dust.Rotation(), 1e-9)

	// 28.8 s is a full orbit
	clock.advance(28800)
	bd.Animate()
	assert.InDelta(t, 10.0, st.camera.Yaw(), 1e-9)
}

func TestBuddhaDemoResizeCanvas(t *testing.T) {
	bd, _, _ := newTestDemo(t, t.TempDir(), false)
	bd.ResizeCanvas(600, 900)

	st := bd.state()
	assert.Equal(t, uint32(600), st.width)
	assert.InDelta(t, 600*0.18, st.dust.Thickness(), 1e-3)
}

func TestBuddhaDemoConfigReload(t *testing.T) {
	bd, _, clock := newTestDemo(t, t.TempDir(), false)
	st := bd.state()
	bd.ResizeCanvas(1000, 800)

	next := config.Default()
	next.Scene.ClearColor = [4]float64{0, 0, 0, 1}
	next.Camera.YawCoeff = 40
	next.Dust.SpriteSize = 0.5
	next.Dust.Count = 3

	bd.onConfigReloaded(core.EventContext{Type: core.EVENT_CODE_CONFIG_RELOADED, Data: next})

	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, st.clearColor)
	assert.InDelta(t, 400.0, st.dust.Thickness(), 1e-3)
	assert.Equal(t, 8, st.config.Dust.Count, "particle count needs a restart")

	bd.Animate()
	clock.advance(400)
	bd.Animate()
	assert.InDelta(t, 10.0, st.camera.Yaw(), 1e-9)
}

func TestNewBuddhaDemoValidates(t *testing.T) {
	cfg := config.Default()
	cfg.Camera.Near = -1
	_, err := NewBuddhaDemo(cfg)
	assert.True(t, errors.Is(err, core.ErrInvalidConfig))

	_, err = NewBuddhaDemo(nil)
	assert.Error(t, err)
}
