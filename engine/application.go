package engine

import (
	"time"

	"github.com/spaghettifunk/buddha/engine/config"
	"github.com/spaghettifunk/buddha/engine/core"
)

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32
	// Window starting position y axis, if applicable.
	StartPosY uint32
	// Window starting width, if applicable.
	StartWidth uint32
	// Window starting height, if applicable.
	StartHeight uint32
	// The application name used in windowing, if applicable.
	Name     string
	LogLevel core.LogLevel
	VSync    bool
	// Frames per second cap. Zero leaves the loop unthrottled.
	FrameLimit float64
	// Directory asset paths are relative to.
	AssetsDir string
	// Number of goroutines decoding assets.
	Workers int
	// Turns on the GL debug output.
	Debug bool
}

// NewApplicationConfig takes the startup settings out of a parsed config file.
func NewApplicationConfig(cfg *config.Config) *ApplicationConfig {
	level, err := core.ParseLogLevel(cfg.Log.Level)
	if err != nil {
		level = core.InfoLevel
	}
	return &ApplicationConfig{
		StartPosX:   cfg.Application.StartPosX,
		StartPosY:   cfg.Application.StartPosY,
		StartWidth:  cfg.Application.StartWidth,
		StartHeight: cfg.Application.StartHeight,
		Name:        cfg.Application.Name,
		LogLevel:    level,
		VSync:       cfg.Application.VSync,
		FrameLimit:  cfg.Application.FrameLimit,
		AssetsDir:   cfg.Assets.Dir,
		Workers:     cfg.Assets.Workers,
		Debug:       level == core.DebugLevel,
	}
}

// targetFrameTime is zero when frames are not limited.
func (ac *ApplicationConfig) targetFrameTime() time.Duration {
	if ac.FrameLimit <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / ac.FrameLimit)
}
