// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package config defines the command-line configuration of the radial
// tool and the conversions into chart options.
//
// Values are layered by Load: built-in defaults, an optional YAML file, an
// optional .env file and RADIAL_* environment variables, each overriding
// the one before. Colors come from TOML theme files (see LoadTheme).
package config

import (
	"fmt"
	"time"

	"github.com/gogpu/radial"
	"github.com/gogpu/radial/anim"
	"github.com/gogpu/radial/compose"
	"github.com/gogpu/radial/geom"
	"github.com/gogpu/radial/shape"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr is the listen address of the serve command, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Mode selects the animation strategy: global, staggered or tiered.
	Mode string `koanf:"mode"`

	Duration  time.Duration `koanf:"duration"`
	Stagger   time.Duration `koanf:"stagger"`
	Overlap   float64       `koanf:"overlap"`
	TierDelay float64       `koanf:"tier_delay"`

	// FPS is the animation frame rate.
	FPS int `koanf:"fps"`

	DisplaySize int     `koanf:"display_size"`
	ExportScale float64 `koanf:"export_scale"`

	ShowBenchmark bool `koanf:"show_benchmark"`
	ShowAverage   bool `koanf:"show_average"`
	ShowValues    bool `koanf:"show_values"`
	ShowLabels    bool `koanf:"show_labels"`

	ValueAngleOffset float64 `koanf:"value_angle_offset"`
	ValueFontSize    float64 `koanf:"value_font_size"`
	ValueDistance    float64 `koanf:"value_distance"`
	CategoryFontSize float64 `koanf:"category_font_size"`

	CategoryNames []string `koanf:"category_names"`

	// Overlay is an optional image drawn over the chart.
	Overlay        string  `koanf:"overlay"`
	OverlayX       float64 `koanf:"overlay_x"`
	OverlayY       float64 `koanf:"overlay_y"`
	OverlayWidth   float64 `koanf:"overlay_width"`
	OverlayOpacity float64 `koanf:"overlay_opacity"`

	// Theme is an optional TOML palette file.
	Theme string `koanf:"theme"`
}

// New returns the built-in defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":8080",
		Mode:             string(anim.ModeTiered),
		Duration:         anim.DefaultDuration,
		Stagger:          anim.DefaultStagger,
		Overlap:          anim.DefaultOverlap,
		TierDelay:        anim.DefaultTierDelay,
		FPS:              60,
		DisplaySize:      geom.DefaultDisplaySize,
		ExportScale:      radial.DefaultExportScale,
		ShowBenchmark:    true,
		ShowAverage:      true,
		ShowValues:       true,
		ShowLabels:       true,
		ValueFontSize:    shape.DefaultValueFontSize,
		ValueDistance:    shape.DefaultValueDistance,
		CategoryFontSize: shape.DefaultCategoryFontSize,
		OverlayOpacity:   1,
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.DisplaySize <= 0:
		return fmt.Errorf("%w: display_size must be positive, got %d", ErrInvalidConfig, c.DisplaySize)
	case c.ExportScale <= 0:
		return fmt.Errorf("%w: export_scale must be positive, got %g", ErrInvalidConfig, c.ExportScale)
	case c.FPS < 1 || c.FPS > 240:
		return fmt.Errorf("%w: fps must be in [1, 240], got %d", ErrInvalidConfig, c.FPS)
	case c.ValueDistance <= 0:
		return fmt.Errorf("%w: value_distance must be positive, got %g", ErrInvalidConfig, c.ValueDistance)
	case c.OverlayOpacity < 0 || c.OverlayOpacity > 1:
		return fmt.Errorf("%w: overlay_opacity must be in [0, 1], got %g", ErrInvalidConfig, c.OverlayOpacity)
	}
	if _, err := anim.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.Timing().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// RenderConfig returns the per-render settings.
func (c *Config) RenderConfig() radial.RenderConfig {
	rc := radial.DefaultRenderConfig()
	rc.ShowBenchmark = c.ShowBenchmark
	rc.ShowAverage = c.ShowAverage
	rc.ShowValues = c.ShowValues
	rc.ShowLabels = c.ShowLabels
	rc.ValueAngleOffset = c.ValueAngleOffset
	rc.ValueFontSize = c.ValueFontSize
	rc.ValueDistance = c.ValueDistance
	rc.CategoryFontSize = c.CategoryFontSize
	rc.DisplaySize = c.DisplaySize
	rc.CategoryNames = append([]string(nil), c.CategoryNames...)
	return rc
}

// Timing returns the animation timing.
func (c *Config) Timing() anim.Timing {
	return anim.Timing{
		Duration:  c.Duration,
		Stagger:   c.Stagger,
		Overlap:   c.Overlap,
		TierDelay: c.TierDelay,
	}
}

// Interval returns the frame interval for FPS.
func (c *Config) Interval() time.Duration {
	if c.FPS <= 0 {
		return anim.DefaultInterval
	}
	return time.Second / time.Duration(c.FPS)
}

// ChartOptions converts the configuration into chart options, loading
// the theme file when one is set.
func (c *Config) ChartOptions() ([]radial.Option, error) {
	mode, err := anim.ParseMode(c.Mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	opts := []radial.Option{
		radial.WithMode(mode),
		radial.WithTiming(c.Timing()),
		radial.WithFrameInterval(c.Interval()),
	}
	if c.Theme != "" {
		p, err := LoadTheme(c.Theme)
		if err != nil {
			return nil, err
		}
		opts = append(opts, radial.WithPalette(p))
	}
	if c.Overlay != "" {
		opts = append(opts, radial.WithOverlay(compose.Overlay{
			Path:    c.Overlay,
			X:       c.OverlayX,
			Y:       c.OverlayY,
			Width:   c.OverlayWidth,
			Opacity: c.OverlayOpacity,
		}))
	}
	return opts, nil
}
