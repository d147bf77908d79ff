// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shape

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/radial/anim"
	"github.com/gogpu/radial/geom"
)

// Label placement defaults.
const (
	DefaultValueFontSize    = 14.0
	DefaultValueDistance    = 92.0
	DefaultCategoryFontSize = 16.0

	// categoryRadius places category names just outside the outer tier.
	categoryRadius = 1.12

	// gapOvershoot lets gap strips run past the outer tier.
	gapOvershoot = 1.05
)

// ErrSeriesLength is returned by Build when a series does not hold one
// value per category.
var ErrSeriesLength = errors.New("shape: series length does not match category count")

// Options control what Build emits.
type Options struct {
	Visibility Visibility

	// ValueAngleOffset rotates value labels off the slice bisector, in
	// degrees.
	ValueAngleOffset float64

	// ValueFontSize is in display pixels; the kernel scale is applied.
	ValueFontSize float64

	// ValueDistance is the label radius as a percentage of the maximum
	// radius.
	ValueDistance float64

	CategoryFontSize float64

	// CategoryNames label the slices. Missing names fall back to
	// "Category N".
	CategoryNames []string
}

// DefaultOptions returns every layer visible with default label placement.
func DefaultOptions() Options {
	return Options{
		Visibility:       AllVisible(),
		ValueFontSize:    DefaultValueFontSize,
		ValueDistance:    DefaultValueDistance,
		CategoryFontSize: DefaultCategoryFontSize,
	}
}

// Builder turns kernel geometry and a progress vector into a Scene.
// It is stateless apart from its kernel and easings and may be shared.
type Builder struct {
	kernel  *geom.Kernel
	easings anim.Easings
}

// NewBuilder returns a builder for k using easings e.
func NewBuilder(k *geom.Kernel, e anim.Easings) *Builder {
	return &Builder{kernel: k, easings: e}
}

// Kernel returns the geometry kernel.
func (b *Builder) Kernel() *geom.Kernel { return b.kernel }

// Build produces the scene for one frame. The value slices must hold one
// clamped value per category, otherwise Build fails with ErrSeriesLength
// and emits nothing. A zero Vector yields the static chart.
//
// Per slice, the eased sweep narrows the angular extent, the eased tier
// build grows the background ring, the eased fill scales score and
// benchmark fills and the eased indicator scales the pill thickness.
// Labels appear once their slice has fully built.
func (b *Builder) Build(scores, benchmarks, averages []float64, opts Options, v anim.Vector) (*Scene, error) {
	k := b.kernel
	cfg := k.Config()
	for _, s := range []struct {
		name   string
		values []float64
	}{{"scores", scores}, {"benchmarks", benchmarks}, {"averages", averages}} {
		if len(s.values) != cfg.Categories {
			return nil, fmt.Errorf("%w: %s has %d values, want %d", ErrSeriesLength, s.name, len(s.values), cfg.Categories)
		}
	}
	cx, cy := k.Center()
	size := cfg.CanvasPixels()

	sc := &Scene{
		Width:      size,
		Height:     size,
		CX:         cx,
		CY:         cy,
		Scale:      cfg.Scale,
		Visibility: opts.Visibility,
	}

	for i := 0; i < cfg.Categories; i++ {
		slice := k.SliceAngles(i)
		sc.Gaps = append(sc.Gaps, Gap{
			CX: cx, CY: cy,
			Angle:  slice.Start,
			Width:  k.GapWidth(),
			Length: k.MaxRadius() * gapOvershoot,
		})

		sweep := anim.Ease(b.easings.Sweep, v.SliceAt(i))
		if sweep <= 0 {
			continue
		}
		swept := geom.Slice{Start: slice.Start, End: slice.Start + slice.Span()*sweep}

		for j := 0; j < cfg.Tiers; j++ {
			b.buildTier(sc, i, j, swept, scores[i], benchmarks[i], opts, v)
		}
		if opts.Visibility.Average {
			b.buildPill(sc, i, slice, sweep, averages[i], v)
		}
		if v.SliceAt(i) >= 1 {
			b.buildLabels(sc, i, slice, scores[i], opts)
		}
	}
	return sc, nil
}

func (b *Builder) buildTier(sc *Scene, cat, tier int, swept geom.Slice, score, bench float64, opts Options, v anim.Vector) {
	k := b.kernel
	ring := k.RingBounds(tier)
	tp := v.TierAt(cat, tier)

	if build := anim.Ease(b.easings.TierBuild, tp); build > 0 {
		sc.Background = append(sc.Background, Wedge{
			CX: sc.CX, CY: sc.CY,
			Inner: ring.Inner,
			Outer: ring.Inner + ring.Thickness()*build,
			Start: swept.Start,
			End:   swept.End,
		})
	}

	fill := anim.Ease(b.easings.Fill, tp)
	if fill <= 0 {
		return
	}
	if opts.Visibility.Benchmark {
		if w, ok := b.fillWedge(sc, cat, tier, swept, bench, fill, MetricBenchmark); ok {
			sc.Benchmark = append(sc.Benchmark, w)
		}
	}
	if w, ok := b.fillWedge(sc, cat, tier, swept, score, fill, MetricScore); ok {
		sc.Score = append(sc.Score, w)
	}
}

func (b *Builder) fillWedge(sc *Scene, cat, tier int, swept geom.Slice, value, fill float64, m Metric) (Wedge, bool) {
	if geom.FillFraction(value, tier) <= 0 {
		return Wedge{}, false
	}
	ring := b.kernel.RingBounds(tier)
	outer := b.kernel.FillRadius(value, tier)
	return Wedge{
		CX: sc.CX, CY: sc.CY,
		Inner: ring.Inner,
		Outer: ring.Inner + (outer-ring.Inner)*fill,
		Start: swept.Start,
		End:   swept.End,
		Meta:  &Meta{Category: cat, Tier: tier, Value: value, Metric: m},
	}, true
}

func (b *Builder) buildPill(sc *Scene, cat int, slice geom.Slice, sweep, value float64, v anim.Vector) {
	idx, ok := geom.AverageLayerIndex(value)
	if !ok {
		return
	}
	ind := b.kernel.Indicator(idx, slice)
	grow := anim.Ease(b.easings.Indicator, v.TierAt(cat, ind.Tier))
	if grow <= 0 {
		return
	}

	half := ind.CapRadius * grow
	extent := geom.Slice{Start: ind.Extent.Start, End: ind.Extent.Start + ind.Extent.Span()*sweep}
	sc.Average = append(sc.Average, Pill{
		CX: sc.CX, CY: sc.CY,
		Inner:     ind.Mid - half,
		Outer:     ind.Mid + half,
		Mid:       ind.Mid,
		CapRadius: half,
		Extent:    extent,
		Body: geom.Slice{
			Start: math.Max(slice.Start, extent.Start),
			End:   math.Min(slice.End, extent.End),
		},
		Meta: &Meta{Category: cat, Tier: ind.Tier, Value: value, Metric: MetricAverage},
	})
}

func (b *Builder) buildLabels(sc *Scene, cat int, slice geom.Slice, score float64, opts Options) {
	k := b.kernel
	scale := k.Config().Scale

	if opts.Visibility.Values {
		a := slice.Mid() + opts.ValueAngleOffset*math.Pi/180
		r := k.MaxRadius() * opts.ValueDistance / 100
		sc.Values = append(sc.Values, Label{
			Kind:     LabelValue,
			Category: cat,
			Text:     fmt.Sprintf("%.1f", score),
			X:        sc.CX + r*math.Cos(a),
			Y:        sc.CY + r*math.Sin(a),
			Size:     opts.ValueFontSize * scale,
			AnchorX:  0.5,
			AnchorY:  0.5,
		})
	}
	if opts.Visibility.Labels {
		a := slice.Mid()
		r := k.MaxRadius() * categoryRadius
		sc.Categories = append(sc.Categories, Label{
			Kind:     LabelCategory,
			Category: cat,
			Text:     categoryName(opts.CategoryNames, cat),
			X:        sc.CX + r*math.Cos(a),
			Y:        sc.CY + r*math.Sin(a),
			Size:     opts.CategoryFontSize * scale,
			AnchorX:  0.5,
			AnchorY:  0.5,
		})
	}
}

func categoryName(names []string, i int) string {
	if i < len(names) && names[i] != "" {
		return names[i]
	}
	return fmt.Sprintf("Category %d", i+1)
}
