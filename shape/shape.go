// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shape

import (
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/radial/geom"
)

// Metric identifies the data series a shape encodes.
type Metric uint8

// Data series.
const (
	MetricScore Metric = iota
	MetricBenchmark
	MetricAverage
)

// String returns the series name.
func (m Metric) String() string {
	switch m {
	case MetricScore:
		return "score"
	case MetricBenchmark:
		return "benchmark"
	case MetricAverage:
		return "average"
	default:
		return "unknown"
	}
}

// Meta is the data a shape represents. Hit testing reports it.
type Meta struct {
	Category int
	Tier     int
	Value    float64
	Metric   Metric
}

// Wedge is a filled annular sector.
type Wedge struct {
	CX, CY       float64
	Inner, Outer float64
	Start, End   float64

	// Meta is nil for background wedges.
	Meta *Meta
}

// Empty reports whether the wedge covers no area.
func (w Wedge) Empty() bool {
	return w.Outer <= w.Inner || w.End <= w.Start
}

// Path returns the outline: outer arc forward, inner arc backward.
func (w Wedge) Path() *gg.Path {
	return annulus(w.CX, w.CY, w.Inner, w.Outer, w.Start, w.End)
}

// Contains reports whether (x, y) lies inside the wedge outline, using
// the same path the wedge is filled with.
func (w Wedge) Contains(x, y float64) bool {
	if w.Empty() || outsideDisc(x-w.CX, y-w.CY, w.Outer) {
		return false
	}
	return w.Path().Contains(gg.Pt(x, y))
}

// Gap is a straight strip running outward from the center along a slice
// boundary. It is subtracted from the layers beneath it.
type Gap struct {
	CX, CY float64

	// Angle is the direction of the strip.
	Angle float64

	// Width is the strip width; Length runs from the center outward.
	Width, Length float64
}

// Path returns the strip rectangle.
func (g Gap) Path() *gg.Path {
	cos, sin := math.Cos(g.Angle), math.Sin(g.Angle)
	hw := g.Width / 2
	// perpendicular offset
	px, py := -sin*hw, cos*hw
	ex, ey := g.CX+cos*g.Length, g.CY+sin*g.Length

	p := gg.NewPath()
	p.MoveTo(g.CX+px, g.CY+py)
	p.LineTo(ex+px, ey+py)
	p.LineTo(ex-px, ey-py)
	p.LineTo(g.CX-px, g.CY-py)
	p.Close()
	return p
}

// Contains reports whether (x, y) lies inside the strip.
func (g Gap) Contains(x, y float64) bool {
	return g.Path().Contains(gg.Pt(x, y))
}

// Pill is the average indicator: a band whose two ends are rounded by
// circular caps. The band spans Extent, which may reach past the owning
// slice; Body is the part inside the slice.
type Pill struct {
	CX, CY       float64
	Inner, Outer float64
	Mid          float64
	CapRadius    float64
	Extent, Body geom.Slice

	Meta *Meta
}

// CapCenters returns the centers of the start and end caps.
func (p Pill) CapCenters() (start, end gg.Point) {
	start = gg.Pt(p.CX+p.Mid*math.Cos(p.Extent.Start), p.CY+p.Mid*math.Sin(p.Extent.Start))
	end = gg.Pt(p.CX+p.Mid*math.Cos(p.Extent.End), p.CY+p.Mid*math.Sin(p.Extent.End))
	return start, end
}

// CapPaths returns the two cap circles.
func (p Pill) CapPaths() [2]*gg.Path {
	s, e := p.CapCenters()
	a, b := gg.NewPath(), gg.NewPath()
	a.Circle(s.X, s.Y, p.CapRadius)
	b.Circle(e.X, e.Y, p.CapRadius)
	return [2]*gg.Path{a, b}
}

// BandPath returns the connecting annular band over Extent.
func (p Pill) BandPath() *gg.Path {
	return annulus(p.CX, p.CY, p.Inner, p.Outer, p.Extent.Start, p.Extent.End)
}

// BodyPath returns the band clamped to the owning slice.
func (p Pill) BodyPath() *gg.Path {
	return annulus(p.CX, p.CY, p.Inner, p.Outer, p.Body.Start, p.Body.End)
}

// Contains reports whether (x, y) lies on the band or either cap.
func (p Pill) Contains(x, y float64) bool {
	if p.Outer <= p.Inner || outsideDisc(x-p.CX, y-p.CY, p.Outer+p.CapRadius) {
		return false
	}
	pt := gg.Pt(x, y)
	if p.Extent.End > p.Extent.Start && p.BandPath().Contains(pt) {
		return true
	}
	for _, c := range p.CapPaths() {
		if c.Contains(pt) {
			return true
		}
	}
	return false
}

// LabelKind distinguishes value numbers from category names.
type LabelKind uint8

// Label kinds.
const (
	LabelValue LabelKind = iota
	LabelCategory
)

// Label is a text item positioned by the builder. Anchor values follow
// gg's DrawStringAnchored: (0.5, 0.5) centers the text on (X, Y).
type Label struct {
	Kind     LabelKind
	Category int
	Text     string
	X, Y     float64
	Size     float64
	AnchorX  float64
	AnchorY  float64
}

// annulus returns a closed annular sector outline. The inner edge is the
// inner arc reversed, so the hole has zero winding under the non-zero
// rule. Without an inner radius the outline closes at the center.
func annulus(cx, cy, inner, outer, start, end float64) *gg.Path {
	p := gg.NewPath()
	p.MoveTo(cx+outer*math.Cos(start), cy+outer*math.Sin(start))
	p.Arc(cx, cy, outer, start, end)
	if inner <= 0 {
		p.LineTo(cx, cy)
		p.Close()
		return p
	}

	edge := gg.NewPath()
	edge.MoveTo(cx+inner*math.Cos(start), cy+inner*math.Sin(start))
	edge.Arc(cx, cy, inner, start, end)
	edge.Reversed().Iterate(func(verb gg.PathVerb, c []float64) {
		switch verb {
		case gg.MoveTo, gg.LineTo:
			p.LineTo(c[0], c[1])
		case gg.CubicTo:
			p.CubicTo(c[0], c[1], c[2], c[3], c[4], c[5])
		}
	})
	p.Close()
	return p
}

// outsideDisc reports whether offset (dx, dy) is clearly beyond radius r,
// leaving room for the cubic arc approximation. It rejects far points
// before the winding test.
func outsideDisc(dx, dy, r float64) bool {
	r = r*1.001 + 1
	return dx*dx+dy*dy > r*r
}
