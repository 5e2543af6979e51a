// Package config loads wallgrid settings from defaults, an optional YAML
// file and WALLGRID_* environment variables, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/wallgrid-mcp/internal/grid"
	"github.com/ironsheep/wallgrid-mcp/internal/imaging"
)

// Environment variables read by ApplyEnv.
const (
	EnvMode     = "WALLGRID_MODE"
	EnvDedup    = "WALLGRID_DEDUP"
	EnvBackend  = "WALLGRID_BACKEND"
	EnvLogLevel = "WALLGRID_LOG_LEVEL"
	EnvConfig   = "WALLGRID_CONFIG"
)

// Config is the complete runtime configuration.
type Config struct {
	// Grid holds the inference thresholds.
	Grid grid.Config `yaml:"grid" json:"grid"`

	// CanvasWidth and CanvasHeight are the canonical size every image is
	// resized to. Defaults: 1920x1080.
	CanvasWidth  int `yaml:"canvas_width" json:"canvas_width"`
	CanvasHeight int `yaml:"canvas_height" json:"canvas_height"`

	// CannyLow and CannyHigh are the hysteresis thresholds of the edge
	// detector. Defaults: 250 and 255.
	CannyLow  int `yaml:"canny_low" json:"canny_low"`
	CannyHigh int `yaml:"canny_high" json:"canny_high"`

	// Backend names the detection backend: "pure" (default) or "opencv"
	// when built with the gocv tag.
	Backend string `yaml:"backend" json:"backend"`

	// LogLevel enables diagnostic output when set to "debug".
	LogLevel string `yaml:"log_level" json:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Grid:         grid.DefaultConfig(),
		CanvasWidth:  imaging.CanvasWidth,
		CanvasHeight: imaging.CanvasHeight,
		CannyLow:     250,
		CannyHigh:    255,
		Backend:      "pure",
	}
}

// Load returns the defaults overlaid with the YAML file at path and then the
// environment. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from WALLGRID_* environment variables that are
// set and non-empty.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvMode); v != "" {
		mode, err := grid.ParseMode(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMode, err)
		}
		c.Grid.Mode = mode
	}
	if v := os.Getenv(EnvDedup); v != "" {
		dedup, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDedup, err)
		}
		c.Grid.Dedup = dedup
	}
	if v := os.Getenv(EnvBackend); v != "" {
		c.Backend = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	return nil
}

// Validate checks the canvas and threshold settings.
func (c Config) Validate() error {
	if c.CanvasWidth <= 0 || c.CanvasHeight <= 0 {
		return fmt.Errorf("canvas size must be positive (%dx%d)", c.CanvasWidth, c.CanvasHeight)
	}
	if c.CannyLow < 0 || c.CannyHigh > 255 || c.CannyLow > c.CannyHigh {
		return fmt.Errorf("invalid canny thresholds %d/%d", c.CannyLow, c.CannyHigh)
	}
	if err := c.Grid.Validate(); err != nil {
		return fmt.Errorf("grid: %w", err)
	}
	return nil
}

// Debug reports whether diagnostic logging is enabled.
func (c Config) Debug() bool {
	return c.LogLevel == "debug"
}
