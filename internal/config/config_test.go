package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/slideanim/internal/effects"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "slideanim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
	assert.Equal(t, effects.Fade, Default().Transition())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
width: 1920
height: 1080
fps: 60
transition: zoom
show_stats: true
theme:
  primary: "#FF0000"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1920, cfg.Width)
	assert.Equal(t, 1080, cfg.Height)
	assert.Equal(t, 60, cfg.FPS)
	assert.Equal(t, effects.Zoom, cfg.Transition())
	assert.True(t, cfg.ShowStats)
	assert.Equal(t, "#FF0000", cfg.Theme["primary"])
	assert.Equal(t, Default().Workers, cfg.Workers, "unset keys keep defaults")
	assert.Equal(t, Default().HoldFrames, cfg.HoldFrames)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = Load(writeConfig(t, "width: [1, 2"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "width: 1281"))
	assert.Error(t, err)
}

func TestLoadOrDefaultExplicitMissing(t *testing.T) {
	_, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"odd height", func(c *Config) { c.Height = 721 }},
		{"fps", func(c *Config) { c.FPS = 0 }},
		{"workers", func(c *Config) { c.Workers = -1 }},
		{"hold frames", func(c *Config) { c.HoldFrames = -1 }},
		{"transition", func(c *Config) { c.TransitionType = "spin" }},
		{"quality", func(c *Config) { c.Quality = 101 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestFrameParams(t *testing.T) {
	p := FrameParams{FPS: 30, Frames: 60, HoldFrames: 30}
	assert.Equal(t, 90, p.Total())
	assert.Equal(t, 3.0, p.Duration())
	assert.Equal(t, 0.0, FrameParams{Frames: 10}.Duration())
}
