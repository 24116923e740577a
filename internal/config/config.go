package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"cylinder-lab/internal/geometry"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file location, relative to the working directory.
const DefaultPath = "config/cylinder-lab.yaml"

// EnvPrefix prefixes every environment override, e.g. CYLINDER_LAB_DEBUG_SHOW_FPS.
const EnvPrefix = "CYLINDER_LAB_"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Window configures the native window. The size is read once at startup.
type Window struct {
	Title      string `yaml:"title" env:"TITLE"`
	Width      int    `yaml:"width" env:"WIDTH"`
	Height     int    `yaml:"height" env:"HEIGHT"`
	TargetFPS  int    `yaml:"target_fps" env:"TARGET_FPS"`
	Fullscreen bool   `yaml:"fullscreen" env:"FULLSCREEN"`
}

// Debug holds overlay toggles.
type Debug struct {
	ShowFPS      bool `yaml:"show_fps" env:"SHOW_FPS"`
	ShowMemAlloc bool `yaml:"show_memalloc" env:"SHOW_MEMALLOC"`
	// ShowMesh shows the cylinder's vertex and triangle counts.
	ShowMesh bool `yaml:"show_mesh" env:"SHOW_MESH"`
}

// Camera configures the perspective camera.
type Camera struct {
	Fov      float32 `yaml:"fov" env:"FOV"`
	Near     float32 `yaml:"near" env:"NEAR"`
	Far      float32 `yaml:"far" env:"FAR"`
	Distance float32 `yaml:"distance" env:"DISTANCE"`
}

// Config is everything read at startup. Persisted with Save.
type Config struct {
	Window   Window          `yaml:"window" envPrefix:"WINDOW_"`
	Debug    Debug           `yaml:"debug" envPrefix:"DEBUG_"`
	Camera   Camera          `yaml:"camera" envPrefix:"CAMERA_"`
	Geometry geometry.Params `yaml:"geometry" envPrefix:"GEOMETRY_"`
	LogPath  string          `yaml:"log_path" env:"LOG_PATH"`
	FontDir  string          `yaml:"font_dir,omitempty" env:"FONT_DIR"`
	// Stylesheet replaces the built-in UI stylesheet when set.
	Stylesheet string `yaml:"stylesheet,omitempty" env:"STYLESHEET"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: Window{
			Title:     "cylinder-lab",
			Width:     1280,
			Height:    800,
			TargetFPS: 60,
		},
		Camera:   Camera{Fov: 75, Near: 0.1, Far: 10000, Distance: 100},
		Geometry: geometry.DefaultParams(),
		LogPath:  "logs/cylinder-lab.txt",
	}
}

// Load reads path over Default and then applies environment overrides. A
// missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Default(), fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if err := ParseEnv(&cfg); err != nil {
		return Default(), fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// ParseEnv applies CYLINDER_LAB_* variables to target. Unset variables leave
// the existing values alone.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate rejects values the window or the camera cannot work with.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Window.TargetFPS < 0 {
		return fmt.Errorf("%w: target_fps %d", ErrInvalid, c.Window.TargetFPS)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("%w: camera clip planes %g..%g", ErrInvalid, c.Camera.Near, c.Camera.Far)
	}
	return nil
}

// Save writes cfg to path as YAML, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
