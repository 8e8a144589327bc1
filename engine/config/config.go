package config

import (
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/spaghettifunk/buddha/engine/core"
)

const DefaultPath = "config/buddha.toml"

// Duration decodes TOML strings such as "30s" or "1m30s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

type ApplicationSection struct {
	Name        string  `toml:"name"`
	StartPosX   uint32  `toml:"start_pos_x"`
	StartPosY   uint32  `toml:"start_pos_y"`
	StartWidth  uint32  `toml:"start_width"`
	StartHeight uint32  `toml:"start_height"`
	VSync       bool    `toml:"vsync"`
	FrameLimit  float64 `toml:"frame_limit"`
}

type LogSection struct {
	Level string `toml:"level"`
}

type AssetsSection struct {
	Dir                string   `toml:"dir"`
	Timeout            Duration `toml:"timeout"`
	Workers            int      `toml:"workers"`
	CompressedTextures bool     `toml:"compressed_textures"`
}

type CameraSection struct {
	FOVLandscape float64 `toml:"fov_landscape"`
	FOVPortrait  float64 `toml:"fov_portrait"`
	Near         float64 `toml:"near"`
	Far          float64 `toml:"far"`
	YawCoeff     float64 `toml:"yaw_coeff"`
	OrbitRadius  float64 `toml:"orbit_radius"`
	EyeHeight    float64 `toml:"eye_height"`
	EyeBob       float64 `toml:"eye_bob"`
	TargetHeight float64 `toml:"target_height"`
	TargetSway   float64 `toml:"target_sway"`
}

type DustSection struct {
	Count            int        `toml:"count"`
	RotationPeriodMS int64      `toml:"rotation_period_ms"`
	FlickerPeriodMS  int64      `toml:"flicker_period_ms"`
	SceneSize        [3]float64 `toml:"scene_size"`
	OffsetZ          float64    `toml:"offset_z"`
	Color            [4]float64 `toml:"color"`
	SpriteSize       float64    `toml:"sprite_size"`
	Scale            float64    `toml:"scale"`
	Seed             uint64     `toml:"seed"`
}

type SceneSection struct {
	ClearColor [4]float64 `toml:"clear_color"`
}

type Config struct {
	Application ApplicationSection `toml:"application"`
	Log         LogSection         `toml:"log"`
	Assets      AssetsSection      `toml:"assets"`
	Camera      CameraSection      `toml:"camera"`
	Dust        DustSection        `toml:"dust"`
	Scene       SceneSection       `toml:"scene"`
}

// Default returns the configuration the demo was tuned with.
func Default() *Config {
	return &Config{
		Application: ApplicationSection{
			Name:        "Buddha",
			StartPosX:   100,
			StartPosY:   100,
			StartWidth:  1280,
			StartHeight: 720,
			VSync:       true,
		},
		Log: LogSection{
			Level: "info",
		},
		Assets: AssetsSection{
			Dir:                "assets",
			Timeout:            Duration{30 * time.Second},
			Workers:            4,
			CompressedTextures: true,
		},
		Camera: CameraSection{
			FOVLandscape: 25.0,
			FOVPortrait:  40.0,
			Near:         20.0,
			Far:          11000.0,
			YawCoeff:     80.0,
			OrbitRadius:  460.0 * 1.5,
			EyeHeight:    250.0,
			EyeBob:       200.0,
			TargetHeight: 75.0,
			TargetSway:   20.0,
		},
		Dust: DustSection{
			Count:            8,
			RotationPeriodMS: 350000 * 60,
			FlickerPeriodMS:  10000,
			SceneSize:        [3]float64{350, 350, 200},
			OffsetZ:          200,
			Color:            [4]float64{20.0 / 256.0, 18.0 / 256.0, 15.0 / 256.0, 1.0},
			SpriteSize:       0.18,
			Scale:            0.75,
		},
		Scene: SceneSection{
			ClearColor: [4]float64{0.0, 1.0, 0.0, 1.0},
		},
	}
}

// Load reads the TOML file at path on top of Default. A missing file is not an
// error: the defaults are returned as-is.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			core.LogInfo("config file %s not found, using defaults", path)
			return cfg, nil
		}
		return nil, errors.Wrapf(err, "failed to read config %s", path)
	}

	if err := Parse(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to load config %s", path)
	}
	return cfg, nil
}

// Parse decodes data into cfg, keeping values data does not mention, then validates.
func Parse(data []byte, cfg *Config) error {
	if err := toml.Unmarshal(data, cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

func (c *Config) Validate() error {
	switch {
	case c.Application.StartWidth == 0 || c.Application.StartHeight == 0:
		return errors.Wrap(core.ErrInvalidConfig, "application size must be positive")
	case c.Assets.Workers < 1:
		return errors.Wrap(core.ErrInvalidConfig, "assets.workers must be at least 1")
	case c.Assets.Timeout.Duration <= 0:
		return errors.Wrap(core.ErrInvalidConfig, "assets.timeout must be positive")
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return errors.Wrap(core.ErrInvalidConfig, "camera planes must satisfy 0 < near < far")
	case c.Camera.FOVLandscape <= 0 || c.Camera.FOVPortrait <= 0:
		return errors.Wrap(core.ErrInvalidConfig, "camera field of view must be positive")
	case c.Camera.YawCoeff <= 0:
		return errors.Wrap(core.ErrInvalidConfig, "camera.yaw_coeff must be positive")
	case c.Dust.Count < 0:
		return errors.Wrap(core.ErrInvalidConfig, "dust.count must not be negative")
	case c.Dust.RotationPeriodMS <= 0 || c.Dust.FlickerPeriodMS <= 0:
		return errors.Wrap(core.ErrInvalidConfig, "dust periods must be positive")
	}
	if _, err := core.ParseLogLevel(c.Log.Level); err != nil {
		return errors.Wrap(core.ErrInvalidConfig, err.Error())
	}
	return nil
}

// RestartRequired reports whether moving from c to next changes settings that
// are only read at startup.
func (c *Config) RestartRequired(next *Config) bool {
	return c.Application != next.Application ||
		c.Assets != next.Assets ||
		c.Dust.Count != next.Dust.Count ||
		c.Dust.Seed != next.Dust.Seed ||
		c.Dust.SceneSize != next.Dust.SceneSize ||
		c.Dust.OffsetZ != next.Dust.OffsetZ
}
