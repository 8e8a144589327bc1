package buddha

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/buddha/engine/config"
	"github.com/spaghettifunk/buddha/engine/core"
	"github.com/spaghettifunk/buddha/engine/renderer/components"
	"github.com/spaghettifunk/buddha/engine/renderer/shaders"
)

// sceneState is everything the scene reads and mutates from frame to frame.
// It is only touched from the main thread.
type sceneState struct {
	config  *config.Config
	clock   *core.Clock
	camera  *components.OrbitCamera
	dust    *components.DustField
	shaders *shaders.Set

	clearColor mgl32.Vec4
	width      uint32
	height     uint32

	// flips once, from AssetManager.Poll, when all assets are on the GPU
	ready bool
}

func newSceneState(cfg *config.Config, clock *core.Clock) *sceneState {
	return &sceneState{
		config:     cfg,
		clock:      clock,
		camera:     components.NewOrbitCamera(cfg.Camera),
		dust:       components.NewDustField(cfg.Dust),
		clearColor: vec4(cfg.Scene.ClearColor),
	}
}

// apply takes the values that can change while running. Startup-only
// settings keep their current value.
func (s *sceneState) apply(cfg *config.Config) {
	next := *cfg
	next.Application = s.config.Application
	next.Assets = s.config.Assets
	next.Dust.Count = s.config.Dust.Count
	next.Dust.Seed = s.config.Dust.Seed
	next.Dust.SceneSize = s.config.Dust.SceneSize
	next.Dust.OffsetZ = s.config.Dust.OffsetZ

	s.camera.Apply(next.Camera)
	s.dust.Apply(next.Dust)
	s.dust.Resize(s.width, s.height)
	s.clearColor = vec4(next.Scene.ClearColor)
	s.config = &next
}

func vec4(c [4]float64) mgl32.Vec4 {
	return mgl32.Vec4{float32(c[0]), float32(c[1]), float32(c[2]), float32(c[3])}
}
