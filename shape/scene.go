// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shape

import "github.com/gogpu/gg"

// Visibility gates whole layers. The background and score layers are
// always present.
type Visibility struct {
	Benchmark bool
	Average   bool
	Values    bool
	Labels    bool
}

// AllVisible returns a Visibility with every layer on.
func AllVisible() Visibility {
	return Visibility{Benchmark: true, Average: true, Values: true, Labels: true}
}

// Scene is every shape of one frame, grouped by render layer. Slices are
// listed bottom to top within a layer. A Scene is a plain value; building
// the same input at the same progress twice yields equal scenes.
type Scene struct {
	Width, Height int
	CX, CY        float64

	// Scale is the ratio of canvas pixels to display pixels.
	Scale float64

	// Visibility records which optional layers were built.
	Visibility Visibility

	Background []Wedge
	Benchmark  []Wedge
	Score      []Wedge
	Average    []Pill

	// Gaps are subtracted from every data layer.
	Gaps []Gap

	Values     []Label
	Categories []Label
}

// InGap reports whether (x, y) falls inside any gap strip.
func (s *Scene) InGap(x, y float64) bool {
	return len(s.Gaps) > 0 && s.GapPath().Contains(gg.Pt(x, y))
}

// GapPath returns all gap strips as one path. Every strip winds the same
// way, so overlaps near the center never cancel.
func (s *Scene) GapPath() *gg.Path {
	p := gg.NewPath()
	for _, g := range s.Gaps {
		p.Append(g.Path())
	}
	return p
}

// Shapes returns the number of data shapes in the scene.
func (s *Scene) Shapes() int {
	return len(s.Background) + len(s.Benchmark) + len(s.Score) + len(s.Average)
}
