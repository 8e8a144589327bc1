package buddha

import (
	"context"

	"github.com/pkg/errors"

	"github.com/spaghettifunk/buddha/engine"
	"github.com/spaghettifunk/buddha/engine/config"
	"github.com/spaghettifunk/buddha/engine/core"
	"github.com/spaghettifunk/buddha/engine/renderer/components"
	"github.com/spaghettifunk/buddha/engine/renderer/shaders"
)

// BuddhaDemo is the statue scene plugged into the engine frame lifecycle.
type BuddhaDemo struct {
	*engine.Game

	ctx    context.Context
	cancel context.CancelFunc
	random components.RandomSource
}

func NewBuddhaDemo(cfg *config.Config) (*BuddhaDemo, error) {
	return newBuddhaDemo(cfg, core.NewClock(), components.NewRandomSource(cfg.Dust.Seed))
}

func newBuddhaDemo(cfg *config.Config, clock *core.Clock, random components.RandomSource) (*BuddhaDemo, error) {
	if cfg == nil {
		return nil, errors.Wrap(core.ErrInvalidConfig, "no configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	bd := &BuddhaDemo{
		Game: &engine.Game{
			ApplicationConfig: engine.NewApplicationConfig(cfg),
			State:             newSceneState(cfg, clock),
		},
		ctx:    ctx,
		cancel: cancel,
		random: random,
	}

	bd.FnInitialize = bd.Initialize
	bd.FnUpdate = bd.Update
	bd.FnRender = bd.Render
	bd.FnOnResize = bd.OnResize
	bd.FnShutdown = bd.Shutdown

	return bd, nil
}

func (bd *BuddhaDemo) state() *sceneState {
	return bd.State.(*sceneState)
}

func (bd *BuddhaDemo) Initialize() error {
	core.LogInfo("initializing %s...", bd.ApplicationConfig.Name)
	st := bd.state()

	set, err := shaders.LoadAll(bd.SystemManager.Renderer.Backend())
	if err != nil {
		return err
	}
	st.shaders = set

	bd.SystemManager.Events.Register(core.EVENT_CODE_CONFIG_RELOADED, bd.onConfigReloaded)

	return bd.LoadData()
}

// LoadData scatters the dust and starts loading every asset in the background.
// Drawing starts once the last one is on the GPU.
func (bd *BuddhaDemo) LoadData() error {
	st := bd.state()

	compressed := false
	if st.config.Assets.CompressedTextures {
		compressed = bd.SystemManager.Renderer.Backend().SupportsCompressedTextures()
		if !compressed {
			core.LogInfo("ETC1 textures are not supported, loading PNG instead")
		}
	}

	st.dust.FillParticles(bd.random)

	requests := Manifest(compressed)
	return bd.AssetManager.Load(bd.ctx, requests, st.config.Assets.Timeout.Duration, func() {
		bd.onAssetsReady(len(requests))
	})
}

func (bd *BuddhaDemo) onAssetsReady(count int) {
	bd.state().ready = true
	core.LogInfo("Loaded all assets")
	bd.SystemManager.Events.Fire(core.EventContext{
		Type: core.EVENT_CODE_ASSETS_READY,
		Data: count,
	})
}

// Update uploads whatever finished loading and moves the camera. A failed or
// timed out load ends the game.
func (bd *BuddhaDemo) Update(deltaTime float64) error {
	if err := bd.AssetManager.Poll(); err != nil {
		return err
	}
	bd.Animate()
	return nil
}

// Animate advances the orbit and the dust timers to the current time.
func (bd *BuddhaDemo) Animate() {
	st := bd.state()
	now := st.clock.NowMillis()
	if st.camera.Animate(now) {
		st.dust.Advance(now)
	}
}

func (bd *BuddhaDemo) Render(deltaTime float64) error {
	return bd.DrawScene()
}

func (bd *BuddhaDemo) DrawScene() error {
	return drawScene(bd.SystemManager.Renderer, bd.AssetManager, bd.state())
}

func (bd *BuddhaDemo) OnResize(width uint32, height uint32) error {
	bd.ResizeCanvas(width, height)
	return nil
}

// ResizeCanvas records the framebuffer size used by the projection and the
// dust sprite size.
func (bd *BuddhaDemo) ResizeCanvas(width, height uint32) {
	st := bd.state()
	st.width, st.height = width, height
	st.dust.Resize(width, height)
}

func (bd *BuddhaDemo) Shutdown() error {
	core.LogInfo("shutting down %s", bd.ApplicationConfig.Name)
	bd.cancel()
	st := bd.state()
	if st.shaders != nil {
		st.shaders.Destroy(bd.SystemManager.Renderer.Backend())
		st.shaders = nil
	}
	return nil
}

func (bd *BuddhaDemo) onConfigReloaded(context core.EventContext) {
	cfg, ok := context.Data.(*config.Config)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return
	}
	st := bd.state()
	if st.config.RestartRequired(cfg) {
		core.LogWarn("config changes to the window, assets or dust layout apply after a restart")
	}
	if level, err := core.ParseLogLevel(cfg.Log.Level); err == nil {
		core.LogSetLevel(level)
	}
	st.apply(cfg)
	core.LogInfo("config reloaded")
}
