// Package config handles viewer configuration loading.
package config

import (
	"errors"
	"fmt"
)

// Config holds all viewer settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Scene    SceneConfig    `yaml:"scene"`
	Render   RenderConfig   `yaml:"render"`
	Controls ControlsConfig `yaml:"controls"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// SceneConfig points at the scene description loaded at startup.
type SceneConfig struct {
	Path string `yaml:"path"`
	// Textures maps material names to image files.
	Textures map[string]string `yaml:"textures"`
	// Meshes maps mesh names to JSON face files.
	Meshes map[string]string `yaml:"meshes"`
}

// RenderConfig holds projection and mode settings.
type RenderConfig struct {
	Mode       string  `yaml:"mode"`
	FOVDegrees float32 `yaml:"fov_degrees"`
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
	MaxObjects int     `yaml:"max_objects"`
	BlankSeed  uint64  `yaml:"blank_seed"`
}

// ControlsConfig holds first-person movement tuning.
type ControlsConfig struct {
	MoveSpeed        float32 `yaml:"move_speed"`
	Acceleration     float32 `yaml:"acceleration"`
	MouseSensitivity float32 `yaml:"mouse_sensitivity"`
}

type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

const (
	ModeUnlit     = "unlit"
	ModeWireframe = "wireframe"

	maxObjects = 1024
)

var ErrInvalid = errors.New("config: invalid value")

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "scenerender",
		},
		Scene: SceneConfig{
			Path: "data/default.scene.json",
		},
		Render: RenderConfig{
			Mode:       ModeUnlit,
			FOVDegrees: 45,
			Near:       0.1,
			Far:        100,
			MaxObjects: maxObjects,
			BlankSeed:  1,
		},
		Controls: ControlsConfig{
			MoveSpeed:        0.1,
			Acceleration:     3,
			MouseSensitivity: 0.2,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Render.MaxObjects < 1 || c.Render.MaxObjects > maxObjects:
		return fmt.Errorf("%w: render.max_objects %d not in [1, %d]", ErrInvalid, c.Render.MaxObjects, maxObjects)
	case c.Render.Mode != ModeUnlit && c.Render.Mode != ModeWireframe:
		return fmt.Errorf("%w: render.mode %q", ErrInvalid, c.Render.Mode)
	case c.Render.FOVDegrees <= 0 || c.Render.FOVDegrees >= 180:
		return fmt.Errorf("%w: render.fov_degrees %g", ErrInvalid, c.Render.FOVDegrees)
	case c.Render.Near <= 0 || c.Render.Far <= c.Render.Near:
		return fmt.Errorf("%w: render near/far %g/%g", ErrInvalid, c.Render.Near, c.Render.Far)
	}
	return nil
}
