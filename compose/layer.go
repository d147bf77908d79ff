// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compose

// Layer is a render layer. Layers composite in ascending order.
type Layer int

// Render layers, bottom to top.
const (
	LayerBackground Layer = iota
	LayerBenchmark
	LayerScore
	LayerAverage
	LayerValues
	LayerCategories
	LayerOverlay
	LayerTooltip

	layerCount
)

var layerNames = [layerCount]string{
	"background", "benchmark", "score", "average",
	"values", "categories", "overlay", "tooltip",
}

// String returns the layer name.
func (l Layer) String() string {
	if l < 0 || l >= layerCount {
		return "unknown"
	}
	return layerNames[l]
}

// Subtractive reports whether the gap cut clears this layer. Every data
// layer is cut; text and overlays are not.
func (l Layer) Subtractive() bool {
	return l <= LayerAverage && l >= LayerBackground
}

// Layers returns every layer in composite order.
func Layers() []Layer {
	out := make([]Layer, layerCount)
	for i := range out {
		out[i] = Layer(i)
	}
	return out
}
