// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compose

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/gg"
)

// surface is one layer: a drawing context plus frame bookkeeping.
type surface struct {
	dc      *gg.Context
	drawn   bool
	visible bool
}

// Target is a CPU layered render target with one gg.Context per Layer.
//
// A frame starts with Begin, which clears every layer. Layers are drawn
// through Layer in any order and composited in Layer order by Composite.
// Subtractive layers are cut with the frame's gap mask first, so each data
// layer applies the gap pass to itself before blending.
// Target is not safe for concurrent use.
type Target struct {
	width  int
	height int
	layers [layerCount]*surface
	keep   *gg.Mask
	base   *image.RGBA
}

// NewTarget creates a layered target of the given size.
func NewTarget(width, height int) *Target {
	return &Target{
		width:  width,
		height: height,
		base:   image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Width returns the target width in pixels.
func (t *Target) Width() int { return t.width }

// Height returns the target height in pixels.
func (t *Target) Height() int { return t.height }

// Resize changes the target size. Layer surfaces are reallocated lazily.
// Resizing to the current size is a no-op.
func (t *Target) Resize(width, height int) {
	if width == t.width && height == t.height {
		return
	}
	t.Close()
	t.width, t.height = width, height
	t.base = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Begin starts a new frame: every layer is cleared, made visible and
// marked undrawn, and the cut mask is dropped.
func (t *Target) Begin() {
	for _, s := range t.layers {
		if s == nil {
			continue
		}
		if s.drawn {
			s.dc.Clear()
		}
		s.drawn = false
		s.visible = true
	}
	t.keep = nil
}

// Layer returns the drawing context of l and marks it drawn this frame.
func (t *Target) Layer(l Layer) *gg.Context {
	s := t.layers[l]
	if s == nil {
		s = &surface{dc: gg.NewContext(t.width, t.height), visible: true}
		t.layers[l] = s
	}
	s.drawn = true
	return s.dc
}

// SetLayerVisible controls whether l is composited. Hidden layers keep
// their content but contribute nothing.
func (t *Target) SetLayerVisible(l Layer, visible bool) {
	if s := t.layers[l]; s != nil {
		s.visible = visible
	}
}

// Drawn reports whether l was drawn this frame and will be composited.
func (t *Target) Drawn(l Layer) bool {
	s := t.layers[l]
	return s != nil && s.drawn && s.visible
}

// Cut sets the subtractive mask for this frame. Wherever gaps has
// coverage, subtractive layers are cleared (destination-out). Cut takes
// ownership of gaps and inverts it in place, turning it into the
// destination-in mask gg applies to each layer.
func (t *Target) Cut(gaps *gg.Mask) {
	if gaps != nil {
		gaps.Invert()
	}
	t.keep = gaps
}

// Composite blends every drawn, visible layer over bg in layer order and
// returns the result. The returned image is reused by the next frame.
func (t *Target) Composite(bg color.Color) *image.RGBA {
	draw.Draw(t.base, t.base.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	for l, s := range t.layers {
		if s == nil || !s.drawn || !s.visible {
			continue
		}
		if t.keep != nil && Layer(l).Subtractive() {
			s.dc.ApplyMask(t.keep)
		}
		draw.Draw(t.base, t.base.Bounds(), snapshot(s.dc), image.Point{}, draw.Over)
	}
	return t.base
}

// Close releases the layer contexts.
func (t *Target) Close() {
	for i, s := range t.layers {
		if s != nil {
			_ = s.dc.Close()
			t.layers[i] = nil
		}
	}
	t.keep = nil
}

// snapshot returns the layer pixels as premultiplied RGBA.
func snapshot(dc *gg.Context) *image.RGBA {
	if img, ok := dc.Image().(*image.RGBA); ok {
		return img
	}
	img := dc.Image()
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}
