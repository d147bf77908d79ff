// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geom

import (
	"errors"
	"fmt"
)

// Errors returned by Config.Validate.
var (
	// ErrLayerBudget means the ring layout does not add up to TotalLayers.
	ErrLayerBudget = errors.New("geom: layer budget mismatch")

	// ErrInvalidConfig means a dimension is zero, negative or otherwise unusable.
	ErrInvalidConfig = errors.New("geom: invalid config")

	// ErrCanvasTooLarge means DisplaySize*Scale exceeds MaxCanvasPixels.
	ErrCanvasTooLarge = errors.New("geom: canvas too large")
)

// Default layout constants. The radial layer budget is
// CenterHole + Tiers*RingThickness + (Tiers-1)*GapThickness = 67.
const (
	DefaultTotalLayers       = 67
	DefaultCenterHole        = 10
	DefaultRingThickness     = 12
	DefaultGapThickness      = 3
	DefaultSliceGapThickness = 1.5
	DefaultCategories        = 6
	DefaultTiers             = 4
	DefaultDisplaySize       = 600
	DefaultProtrusion        = 6
	DefaultIndicatorExpand   = 0.2

	// MaxValue is the top of the metric scale; one tier per unit.
	MaxValue = 4.0

	// TenthsPerTier is the number of indicator bands inside one tier.
	TenthsPerTier = 10

	// MaxCanvasPixels bounds the canvas edge. Every layer surface of a
	// frame is allocated at this size.
	MaxCanvasPixels = 4096
)

// Config describes the radial layout in abstract layer units.
//
// Radii are never stored in pixels: every pixel quantity is derived from
// DisplaySize*Scale, so the same Config renders identically at any
// resolution.
type Config struct {
	// TotalLayers is the nominal radial budget from the center to MaxRadius.
	TotalLayers int

	// CenterHole is the number of empty layers around the center.
	CenterHole int

	// RingThickness is the radial size of one tier, in layers.
	RingThickness int

	// GapThickness is the empty space between adjacent tiers, in layers.
	GapThickness int

	// SliceGapThickness is the width of the radial cut between categories,
	// in layers. Fractional values are allowed.
	SliceGapThickness float64

	// Categories is the number of angular slices.
	Categories int

	// Tiers is the number of concentric rings per slice.
	Tiers int

	// DisplaySize is the interactive canvas edge length in pixels.
	DisplaySize int

	// Scale multiplies DisplaySize to get the canvas size. Export uses
	// values above 1.
	Scale float64

	// Protrusion is how far an average indicator pokes past its slice
	// boundary, in display pixels (scaled by Scale).
	Protrusion float64

	// IndicatorExpand widens the indicator band radially (0.2 = 20%).
	IndicatorExpand float64
}

// DefaultConfig returns the standard six-category, four-tier layout.
func DefaultConfig() Config {
	return Config{
		TotalLayers:       DefaultTotalLayers,
		CenterHole:        DefaultCenterHole,
		RingThickness:     DefaultRingThickness,
		GapThickness:      DefaultGapThickness,
		SliceGapThickness: DefaultSliceGapThickness,
		Categories:        DefaultCategories,
		Tiers:             DefaultTiers,
		DisplaySize:       DefaultDisplaySize,
		Scale:             1,
		Protrusion:        DefaultProtrusion,
		IndicatorExpand:   DefaultIndicatorExpand,
	}
}

// WithScale returns a copy of c rendering at the given scale.
func (c Config) WithScale(scale float64) Config {
	c.Scale = scale
	return c
}

// Validate checks the config. A layer budget that does not add up is an
// error, never silently tolerated: ring placement would drift from the
// radius the rest of the chart assumes.
func (c Config) Validate() error {
	switch {
	case c.Categories <= 0:
		return fmt.Errorf("%w: categories = %d", ErrInvalidConfig, c.Categories)
	case c.Tiers <= 0:
		return fmt.Errorf("%w: tiers = %d", ErrInvalidConfig, c.Tiers)
	case c.TotalLayers <= 0:
		return fmt.Errorf("%w: total layers = %d", ErrInvalidConfig, c.TotalLayers)
	case c.RingThickness <= 0:
		return fmt.Errorf("%w: ring thickness = %d", ErrInvalidConfig, c.RingThickness)
	case c.CenterHole < 0 || c.GapThickness < 0:
		return fmt.Errorf("%w: negative hole or gap", ErrInvalidConfig)
	case c.DisplaySize <= 0:
		return fmt.Errorf("%w: display size = %d", ErrInvalidConfig, c.DisplaySize)
	case !(c.Scale > 0):
		return fmt.Errorf("%w: scale = %v", ErrInvalidConfig, c.Scale)
	case c.SliceGapThickness < 0 || c.Protrusion < 0 || c.IndicatorExpand < 0:
		return fmt.Errorf("%w: negative gap, protrusion or expansion", ErrInvalidConfig)
	case !(c.CanvasSize() < MaxCanvasPixels+0.5):
		return fmt.Errorf("%w: %v px, max %d", ErrCanvasTooLarge, c.CanvasSize(), MaxCanvasPixels)
	}

	want := c.CenterHole + c.Tiers*c.RingThickness + (c.Tiers-1)*c.GapThickness
	if want != c.TotalLayers {
		return fmt.Errorf("%w: total layers = %d, layout needs %d", ErrLayerBudget, c.TotalLayers, want)
	}
	return nil
}

// CanvasSize returns the canvas edge length in pixels.
func (c Config) CanvasSize() float64 {
	return float64(c.DisplaySize) * c.Scale
}

// CanvasPixels returns the canvas edge length rounded to whole pixels.
func (c Config) CanvasPixels() int {
	return int(c.CanvasSize() + 0.5)
}
