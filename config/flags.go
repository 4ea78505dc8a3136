package config

import (
	"flag"
)

// Flags are the command-line overrides of the viewer.
type Flags struct {
	Config string
	Scene  string
	Mode   string
	Debug  bool
	Width  int
	Height int
}

// RegisterFlags binds the override flags to fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.StringVar(&f.Scene, "scene", "", "Scene description to load")
	fs.StringVar(&f.Mode, "mode", "", "Render mode (unlit or wireframe)")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.IntVar(&f.Width, "width", 0, "Window width")
	fs.IntVar(&f.Height, "height", 0, "Window height")
	return f
}

// Apply overrides cfg with every flag that was set.
func (f *Flags) Apply(cfg *Config) {
	if f.Scene != "" {
		cfg.Scene.Path = f.Scene
	}
	if f.Mode != "" {
		cfg.Render.Mode = f.Mode
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Width > 0 {
		cfg.Window.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Window.Height = f.Height
	}
}

// FromArgs loads configuration with priority defaults < file < flags and
// validates the result.
func FromArgs(name string, args []string) (*Config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	flags := RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := Load(flags.Config)
	if err != nil {
		return nil, err
	}
	flags.Apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
