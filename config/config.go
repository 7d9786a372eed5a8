// Package config loads gridfx settings from a YAML file and watches the
// file for edits.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/plus3/gridfx/grid"
	"gopkg.in/yaml.v3"
)

// RGB is a colour written as a three element YAML sequence.
type RGB [3]uint8

// Window configures the ebiten host.
type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// Config is the decoded configuration file. Keys missing from the file keep
// their defaults.
type Config struct {
	Spacing      float64 `yaml:"spacing"`
	Threshold    float64 `yaml:"threshold"`
	LinkAlpha    float64 `yaml:"link_alpha"`
	LineWidth    float64 `yaml:"line_width"`
	Opacity      float64 `yaml:"opacity"`
	SpatialIndex bool    `yaml:"spatial_index"`
	// Seed fixes the random source; zero seeds from the clock.
	Seed uint64 `yaml:"seed"`

	Size       grid.Range `yaml:"size"`
	Alpha      grid.Range `yaml:"alpha"`
	Amplitude  grid.Range `yaml:"amplitude"`
	AngleSpeed grid.Range `yaml:"angle_speed"`

	PointColor RGB `yaml:"point_color"`
	LinkColor  RGB `yaml:"link_color"`

	Window Window `yaml:"window"`
}

// Default returns the built-in configuration.
func Default() *Config {
	p := grid.DefaultParams()
	return &Config{
		Spacing:    p.Spacing,
		Threshold:  p.Threshold,
		LinkAlpha:  p.LinkAlpha,
		LineWidth:  p.LineWidth,
		Opacity:    0.8,
		Size:       p.Size,
		Alpha:      p.Alpha,
		Amplitude:  p.Amplitude,
		AngleSpeed: p.AngleSpeed,
		PointColor: RGB{p.PointColor.R, p.PointColor.G, p.PointColor.B},
		LinkColor:  RGB{p.LinkColor.R, p.LinkColor.G, p.LinkColor.B},
		Window: Window{
			Width:  1280,
			Height: 720,
			Title:  "gridfx",
		},
	}
}

// Load reads the file at path over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Params converts the grid section to grid parameters.
func (c *Config) Params() grid.Params {
	return grid.Params{
		Spacing:      c.Spacing,
		Threshold:    c.Threshold,
		LinkAlpha:    c.LinkAlpha,
		LineWidth:    c.LineWidth,
		Size:         c.Size,
		Alpha:        c.Alpha,
		Amplitude:    c.Amplitude,
		AngleSpeed:   c.AngleSpeed,
		PointColor:   grid.RGB(c.PointColor[0], c.PointColor[1], c.PointColor[2]),
		LinkColor:    grid.RGB(c.LinkColor[0], c.LinkColor[1], c.LinkColor[2]),
		SpatialIndex: c.SpatialIndex,
	}
}

// Validate checks the grid parameters and the host settings.
func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	if c.Opacity < 0 || c.Opacity > 1 {
		return fmt.Errorf("validate: opacity must be within [0, 1], got %v", c.Opacity)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("validate: window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	return nil
}

// Source returns the random source the config asks for.
func (c *Config) Source(fallback uint64) grid.Source {
	if c.Seed != 0 {
		return grid.NewSource(c.Seed)
	}
	return grid.NewSource(fallback)
}
