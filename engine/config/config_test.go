package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/buddha/engine/core"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "buddha.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 690.0, cfg.Camera.OrbitRadius)
	assert.Equal(t, int64(21_000_000), cfg.Dust.RotationPeriodMS)
	assert.Equal(t, 8, cfg.Dust.Count)
	assert.Equal(t, 30*time.Second, cfg.Assets.Timeout.Duration)
	assert.Equal(t, [4]float64{0, 1, 0, 1}, cfg.Scene.ClearColor)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesOnlyMentionedKeys(t *testing.T) {
	path := writeConfig(t, `
[assets]
timeout = "1m30s"
compressed_textures = false

[camera]
fov_landscape = 30.0

[dust]
seed = 42
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 90*time.Second, cfg.Assets.Timeout.Duration)
	assert.False(t, cfg.Assets.CompressedTextures)
	assert.Equal(t, 30.0, cfg.Camera.FOVLandscape)
	assert.Equal(t, uint64(42), cfg.Dust.Seed)

	// untouched
	assert.Equal(t, 40.0, cfg.Camera.FOVPortrait)
	assert.Equal(t, "assets", cfg.Assets.Dir)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"near after far": "[camera]\nnear = 100.0\nfar = 50.0\n",
		"no workers":     "[assets]\nworkers = 0\n",
		"bad level":      "[log]\nlevel = \"chatty\"\n",
		"zero period":    "[dust]\nflicker_period_ms = 0\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, core.ErrInvalidConfig))
		})
	}
}

func TestLoadMalformedTOML(t *testing.T) {
	_, err := Load(writeConfig(t, "[camera\nnear = "))
	require.Error(t, err)
}

func TestRestartRequired(t *testing.T) {
	base := Default()

	next := Default()
	next.Camera.FOVLandscape = 35
	next.Dust.Color = [4]float64{1, 1, 1, 1}
	next.Scene.ClearColor = [4]float64{0, 0, 0, 1}
	assert.False(t, base.RestartRequired(next))

	next = Default()
	next.Dust.Count = 16
	assert.True(t, base.RestartRequired(next))

	next = Default()
	next.Assets.Dir = "other"
	assert.True(t, base.RestartRequired(next))
}
