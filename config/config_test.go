package config

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, ModeUnlit, cfg.Render.Mode)
	assert.Equal(t, float32(45), cfg.Render.FOVDegrees)
	assert.Equal(t, float32(0.1), cfg.Render.Near)
	assert.Equal(t, float32(100), cfg.Render.Far)
	assert.Equal(t, 1024, cfg.Render.MaxObjects)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
window:
  width: 1920
  height: 1080
scene:
  path: "scenes/room.yaml"
  textures:
    brick: "textures/brick.png"
render:
  mode: wireframe
  fov_degrees: 60
  max_objects: 64
controls:
  move_speed: 0.5
logging:
  level: debug
  log_file: "viewer.log"
`
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1920, cfg.Window.Width)
	assert.Equal(t, "scenerender", cfg.Window.Title, "unset keys keep defaults")
	assert.Equal(t, "scenes/room.yaml", cfg.Scene.Path)
	assert.Equal(t, "textures/brick.png", cfg.Scene.Textures["brick"])
	assert.Equal(t, ModeWireframe, cfg.Render.Mode)
	assert.Equal(t, float32(60), cfg.Render.FOVDegrees)
	assert.Equal(t, float32(0.1), cfg.Render.Near)
	assert.Equal(t, 64, cfg.Render.MaxObjects)
	assert.Equal(t, float32(0.5), cfg.Controls.MoveSpeed)
	assert.Equal(t, float32(3), cfg.Controls.Acceleration)
	assert.Equal(t, "viewer.log", cfg.Logging.LogFile)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window: [1, 2"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"too many objects", func(c *Config) { c.Render.MaxObjects = 2048 }},
		{"no objects", func(c *Config) { c.Render.MaxObjects = 0 }},
		{"unknown mode", func(c *Config) { c.Render.Mode = "pbr" }},
		{"flat fov", func(c *Config) { c.Render.FOVDegrees = 0 }},
		{"far before near", func(c *Config) { c.Render.Far = 0.05 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window:\n  width: 800\nrender:\n  mode: unlit\n"), 0o644))

	cfg, err := FromArgs("sceneview", []string{
		"-config", path,
		"-mode", "wireframe",
		"-scene", "other.json",
		"-debug",
		"-height", "600",
	})
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, ModeWireframe, cfg.Render.Mode)
	assert.Equal(t, "other.json", cfg.Scene.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestFromArgsRejectsInvalid(t *testing.T) {
	_, err := FromArgs("sceneview", []string{"-mode", "pbr"})
	assert.ErrorIs(t, err, ErrInvalid)

	fs := flag.NewFlagSet("x", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	RegisterFlags(fs)
	assert.Error(t, fs.Parse([]string{"-nope"}))
}
