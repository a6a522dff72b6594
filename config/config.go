// Package config loads the application configuration from TOML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid is returned when a loaded configuration fails validation.
var ErrInvalid = errors.New("invalid config")

// Config is the top-level application configuration.
type Config struct {
	// Demo is the registry name of the demo to launch.
	Demo string `toml:"demo"`
	// Title overrides the window title. Empty uses the demo's title.
	Title string `toml:"title"`
	// Width and Height are the initial viewport size in pixels.
	Width  int `toml:"width"`
	Height int `toml:"height"`
	// Headless runs without a native window or GPU, recording draws only.
	Headless bool `toml:"headless"`
	// Frames stops the loop after this many frames. Zero runs until the window closes.
	Frames int `toml:"frames"`
	// Seed feeds every random source. Zero seeds from the clock.
	Seed uint64 `toml:"seed"`
	// VSync selects FIFO presentation.
	VSync bool `toml:"vsync"`

	Log     LogConfig     `toml:"log"`
	Camera  CameraConfig  `toml:"camera"`
	Panel   PanelConfig   `toml:"panel"`
	Workers WorkersConfig `toml:"workers"`
	Assets  AssetsConfig  `toml:"assets"`
}

// LogConfig selects the logger sinks.
type LogConfig struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
	File        string `toml:"file"`
}

// CameraConfig holds the projection and orbit controller settings.
type CameraConfig struct {
	FovDegrees float32 `toml:"fov"`
	Near       float32 `toml:"near"`
	Far        float32 `toml:"far"`
	Damping    float32 `toml:"damping"`
}

// PanelConfig configures the debug panel.
type PanelConfig struct {
	// Preset is a TOML file of parameter values applied at startup.
	Preset string `toml:"preset"`
	// Watch reapplies Preset whenever the file changes on disk.
	Watch bool `toml:"watch"`
	// Hidden starts the panel collapsed.
	Hidden bool `toml:"hidden"`
}

// WorkersConfig sizes the shared worker pool.
type WorkersConfig struct {
	// Count of pool workers. Zero uses the number of CPUs.
	Count int `toml:"count"`
}

// AssetsConfig locates textures and fonts on disk.
type AssetsConfig struct {
	Dir string `toml:"dir"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Demo:   "primitives",
		Width:  800,
		Height: 600,
		VSync:  true,
		Log:    LogConfig{Level: "info"},
		Camera: CameraConfig{FovDegrees: 75, Near: 0.1, Far: 1000, Damping: 0.05},
		Panel:  PanelConfig{Watch: true},
		Assets: AssetsConfig{Dir: "assets"},
	}
}

// Load reads a TOML file over the defaults and validates the result.
//
// Parameters:
//   - path: TOML file path. Empty returns the defaults.
//
// Returns:
//   - Config: the merged configuration
//   - error: error if the file cannot be read, parsed or validated
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := Decode(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Decode strictly decodes TOML into cfg, rejecting unknown keys.
func Decode(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

// Validate checks ranges that would otherwise surface as a blank or broken frame.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: viewport %dx%d", ErrInvalid, c.Width, c.Height)
	case c.Camera.FovDegrees <= 0 || c.Camera.FovDegrees >= 180:
		return fmt.Errorf("%w: camera fov %v", ErrInvalid, c.Camera.FovDegrees)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("%w: camera near %v far %v", ErrInvalid, c.Camera.Near, c.Camera.Far)
	case c.Camera.Damping < 0 || c.Camera.Damping > 1:
		return fmt.Errorf("%w: camera damping %v", ErrInvalid, c.Camera.Damping)
	case c.Frames < 0:
		return fmt.Errorf("%w: frames %d", ErrInvalid, c.Frames)
	case c.Workers.Count < 0:
		return fmt.Errorf("%w: workers %d", ErrInvalid, c.Workers.Count)
	}
	return nil
}

// Encode renders cfg as TOML, used to write a starter file.
func Encode(cfg Config) ([]byte, error) {
	return toml.Marshal(cfg)
}
