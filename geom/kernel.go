// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geom

import "math"

// epsilon absorbs binary representation error before flooring to tenths,
// so 2.3*10 lands on 23 and not 22.
const epsilon = 1e-9

// maxRadiusFraction is the share of the half canvas used by the chart.
const maxRadiusFraction = 0.8

// asinGuard keeps the protrusion strictly inside the arcsin domain.
const asinGuard = 0.99

// Ring is the radial extent of one tier.
type Ring struct {
	Inner, Outer float64
}

// Thickness returns Outer - Inner.
func (r Ring) Thickness() float64 { return r.Outer - r.Inner }

// Slice is the angular extent of one category, in radians.
// Angles follow the canvas convention: 0 points right and angles grow
// clockwise on screen because Y points down.
type Slice struct {
	Start, End float64
}

// Span returns End - Start.
func (s Slice) Span() float64 { return s.End - s.Start }

// Mid returns the bisecting angle.
func (s Slice) Mid() float64 { return (s.Start + s.End) / 2 }

// Kernel maps (category, tier, value) to pixel radii and angles.
// It is immutable and safe for concurrent use.
type Kernel struct {
	cfg       Config
	cx, cy    float64
	maxRadius float64
	layer     float64
}

// NewKernel validates cfg and precomputes the pixel scale.
func NewKernel(cfg Config) (*Kernel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	size := cfg.CanvasSize()
	maxRadius := maxRadiusFraction * size / 2
	return &Kernel{
		cfg:       cfg,
		cx:        size / 2,
		cy:        size / 2,
		maxRadius: maxRadius,
		layer:     maxRadius / float64(cfg.TotalLayers),
	}, nil
}

// Config returns the layout the kernel was built from.
func (k *Kernel) Config() Config { return k.cfg }

// Center returns the chart center in canvas pixels.
func (k *Kernel) Center() (x, y float64) { return k.cx, k.cy }

// MaxRadius returns the outer radius of the layer budget in pixels.
func (k *Kernel) MaxRadius() float64 { return k.maxRadius }

// LayerThickness returns the pixel size of one abstract layer.
func (k *Kernel) LayerThickness() float64 { return k.layer }

// GapWidth returns the pixel width of the radial cut between slices.
func (k *Kernel) GapWidth() float64 { return k.cfg.SliceGapThickness * k.layer }

// RingBounds returns the pixel radii of a tier. Bounds increase with the
// tier index and adjacent tiers are separated by GapThickness layers.
func (k *Kernel) RingBounds(tier int) Ring {
	c := k.cfg
	start := float64(c.CenterHole+tier*(c.RingThickness+c.GapThickness)) * k.layer
	return Ring{
		Inner: start,
		Outer: start + float64(c.RingThickness)*k.layer,
	}
}

// SliceAngles returns the angular extent of a category. Slice 0 starts
// at the top (-π/2); slices tile the full circle without gaps.
func (k *Kernel) SliceAngles(category int) Slice {
	step := 2 * math.Pi / float64(k.cfg.Categories)
	start := float64(category)*step - math.Pi/2
	return Slice{Start: start, End: start + step}
}

// Tenths returns floor(v*10) with representation error absorbed.
func Tenths(v float64) int {
	return int(math.Floor(v*TenthsPerTier + epsilon))
}

// FillFraction returns how much of tier is filled by value v, in tenths:
// clamp(floor(v*10) - tier*10, 0, 10) / 10.
//
// v must already be clamped to [0, MaxValue]; it is not re-validated.
func FillFraction(v float64, tier int) float64 {
	n := Tenths(v) - tier*TenthsPerTier
	if n < 0 {
		n = 0
	}
	if n > TenthsPerTier {
		n = TenthsPerTier
	}
	return float64(n) / TenthsPerTier
}

// FillRadius returns the outer radius reached by value v inside tier.
// An empty tier returns its inner radius.
func (k *Kernel) FillRadius(v float64, tier int) float64 {
	r := k.RingBounds(tier)
	return r.Inner + r.Thickness()*FillFraction(v, tier)
}

// AverageLayerIndex returns floor(v*10) - 1, the tenth band the average
// indicator sits on. ok is false when v has no indicator (v <= 0 or the
// index would be negative); callers must check it before splitting the
// index into tier and band.
func AverageLayerIndex(v float64) (idx int, ok bool) {
	if !(v > 0) {
		return 0, false
	}
	idx = Tenths(v) - 1
	if idx < 0 {
		return 0, false
	}
	return idx, true
}

// SplitLayerIndex splits an indicator index into tier and tenth band.
func SplitLayerIndex(idx int) (tier, band int) {
	return idx / TenthsPerTier, idx % TenthsPerTier
}

// Indicator is the geometry of an average pill.
//
// Body is clamped to the owning slice. Extent, and the caps centered on
// its ends, may reach past the slice into the neighbouring gap.
type Indicator struct {
	Tier, Band int

	// Inner and Outer bound the expanded band; Mid is its center line.
	Inner, Outer, Mid float64

	// CapRadius is half the expanded thickness.
	CapRadius float64

	// Protrusion is the angular overshoot past each slice boundary.
	Protrusion float64

	// Extent is the slice widened by Protrusion on both sides.
	Extent Slice

	// Body is Extent clamped to the slice.
	Body Slice

	// Clamped reports that the protrusion was reduced by the arcsin
	// guard or the half-slice cap.
	Clamped bool
}

// Indicator computes the pill for indicator index idx inside slice.
//
// The protrusion angle is asin(p / mid) where p is the configured
// protrusion in pixels. Near the center hole p can exceed mid, which is
// outside the arcsin domain; p is then clamped to 0.99*mid. The angle is
// further capped at half the slice span so a pill never swallows its
// slice.
func (k *Kernel) Indicator(idx int, slice Slice) Indicator {
	tier, band := SplitLayerIndex(idx)
	ring := k.RingBounds(tier)
	step := ring.Thickness() / TenthsPerTier
	mid := ring.Inner + (float64(band)+0.5)*step
	half := step * (1 + k.cfg.IndicatorExpand) / 2

	ind := Indicator{
		Tier:      tier,
		Band:      band,
		Inner:     mid - half,
		Outer:     mid + half,
		Mid:       mid,
		CapRadius: half,
	}

	p := k.cfg.Protrusion * k.cfg.Scale
	if p > asinGuard*mid {
		p = asinGuard * mid
		ind.Clamped = true
	}
	angle := 0.0
	if mid > 0 {
		angle = math.Asin(p / mid)
	}
	if limit := slice.Span() / 2; angle > limit {
		angle = limit
		ind.Clamped = true
	}

	ind.Protrusion = angle
	ind.Extent = Slice{Start: slice.Start - angle, End: slice.End + angle}
	ind.Body = Slice{
		Start: math.Max(slice.Start, ind.Extent.Start),
		End:   math.Min(slice.End, ind.Extent.End),
	}
	return ind
}
