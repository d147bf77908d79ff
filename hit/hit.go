// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package hit maps pointer positions to the chart data under them.
//
// It performs no geometry of its own: containment is answered by the
// shapes in a shape.Scene, queried from the top render layer down.
package hit

import (
	"fmt"
	"strings"

	"github.com/gogpu/radial/shape"
)

// TooltipOffset is the distance between the pointer and the tooltip box.
const TooltipOffset = 12.0

// Test returns the metadata of the topmost data shape containing (x, y).
// Layers are searched average, score, then benchmark; within a layer the
// last drawn shape wins. Points inside a gap strip never hit, because
// the gap pass clears every data layer there.
func Test(sc *shape.Scene, x, y float64) (shape.Meta, bool) {
	if sc == nil || sc.InGap(x, y) {
		return shape.Meta{}, false
	}
	for i := len(sc.Average) - 1; i >= 0; i-- {
		if p := sc.Average[i]; p.Meta != nil && p.Contains(x, y) {
			return *p.Meta, true
		}
	}
	if m, ok := topWedge(sc.Score, x, y); ok {
		return m, true
	}
	return topWedge(sc.Benchmark, x, y)
}

func topWedge(ws []shape.Wedge, x, y float64) (shape.Meta, bool) {
	for i := len(ws) - 1; i >= 0; i-- {
		if w := ws[i]; w.Meta != nil && w.Contains(x, y) {
			return *w.Meta, true
		}
	}
	return shape.Meta{}, false
}

// TooltipPosition places a w×h tooltip box next to the pointer. The box
// sits below and right of the pointer, flips to the other side when it
// would leave the canvas, and is finally clamped inside it.
func TooltipPosition(px, py, w, h, canvasW, canvasH float64) (x, y float64) {
	return place(px, w, canvasW), place(py, h, canvasH)
}

func place(p, size, limit float64) float64 {
	v := p + TooltipOffset
	if v+size > limit {
		v = p - TooltipOffset - size
	}
	if v+size > limit {
		v = limit - size
	}
	if v < 0 {
		v = 0
	}
	return v
}

// Describe formats m for a tooltip. names label the categories; missing
// names fall back to the category number.
func Describe(m shape.Meta, names []string) string {
	name := fmt.Sprintf("Category %d", m.Category+1)
	if m.Category < len(names) && names[m.Category] != "" {
		name = names[m.Category]
	}
	metric := m.Metric.String()
	metric = strings.ToUpper(metric[:1]) + metric[1:]
	if m.Metric == shape.MetricAverage {
		return fmt.Sprintf("%s\n%s: %.1f", name, metric, m.Value)
	}
	return fmt.Sprintf("%s\n%s: %.1f (tier %d)", name, metric, m.Value, m.Tier+1)
}
