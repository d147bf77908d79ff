// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compose

import (
	"image/color"
	"testing"

	"github.com/gogpu/gg"
)

func TestLayerOrder(t *testing.T) {
	want := []string{"background", "benchmark", "score", "average", "values", "categories", "overlay", "tooltip"}
	got := Layers()
	if len(got) != len(want) {
		t.Fatalf("Layers() len = %d, want %d", len(got), len(want))
	}
	for i, l := range got {
		if l.String() != want[i] {
			t.Errorf("Layers()[%d] = %v, want %v", i, l, want[i])
		}
	}
	if Layer(99).String() != "unknown" {
		t.Errorf("Layer(99).String() = %q", Layer(99).String())
	}
}

func TestLayerSubtractive(t *testing.T) {
	tests := []struct {
		l    Layer
		want bool
	}{
		{LayerBackground, true},
		{LayerBenchmark, true},
		{LayerScore, true},
		{LayerAverage, true},
		{LayerValues, false},
		{LayerCategories, false},
		{LayerOverlay, false},
		{LayerTooltip, false},
	}
	for _, tt := range tests {
		if got := tt.l.Subtractive(); got != tt.want {
			t.Errorf("%v.Subtractive() = %v, want %v", tt.l, got, tt.want)
		}
	}
}

func TestTargetCut(t *testing.T) {
	tg := NewTarget(3, 1)
	defer tg.Close()
	tg.Begin()

	dc := tg.Layer(LayerScore)
	dc.SetRGBA(0, 0, 1, 1)
	dc.DrawRectangle(0, 0, 3, 1)
	if err := dc.Fill(); err != nil {
		t.Fatal(err)
	}
	gaps := gg.NewMask(3, 1)
	gaps.Set(1, 0, 255)
	gaps.Set(2, 0, 128)
	tg.Cut(gaps)

	img := tg.Composite(color.White)
	if got := img.RGBAAt(0, 0); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("uncut pixel = %v, want blue", got)
	}
	if got := img.RGBAAt(1, 0); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("cut pixel = %v, want the white canvas", got)
	}
	if got := img.RGBAAt(2, 0); got.R < 100 || got.R > 155 || got.B != 255 {
		t.Errorf("half cut pixel = %v, want blue blended halfway to white", got)
	}
}

func TestTargetComposite(t *testing.T) {
	tg := NewTarget(4, 4)
	defer tg.Close()

	tg.Begin()
	bg := tg.Layer(LayerBackground)
	bg.SetRGBA(1, 0, 0, 1)
	bg.DrawRectangle(0, 0, 4, 4)
	if err := bg.Fill(); err != nil {
		t.Fatal(err)
	}
	top := tg.Layer(LayerTooltip)
	top.SetRGBA(0, 0, 1, 1)
	top.DrawRectangle(0, 0, 2, 4)
	if err := top.Fill(); err != nil {
		t.Fatal(err)
	}

	img := tg.Composite(color.White)
	if got := img.RGBAAt(0, 1); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("top layer pixel = %v, want blue", got)
	}
	if got := img.RGBAAt(3, 1); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("bottom layer pixel = %v, want red", got)
	}

	tg.SetLayerVisible(LayerTooltip, false)
	if tg.Drawn(LayerTooltip) {
		t.Error("hidden layer reported as drawn")
	}
	if got := tg.Composite(color.White).RGBAAt(0, 1); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("hidden layer still composited: %v", got)
	}

	// A new frame starts empty.
	tg.Begin()
	if got := tg.Composite(color.White).RGBAAt(3, 1); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("Begin() left content behind: %v", got)
	}
}

func TestTargetCutSkipsTextLayers(t *testing.T) {
	tg := NewTarget(2, 1)
	defer tg.Close()
	tg.Begin()

	for _, l := range []Layer{LayerScore, LayerValues} {
		dc := tg.Layer(l)
		dc.SetRGBA(0, 1, 0, 1)
		dc.DrawRectangle(0, 0, 2, 1)
		if err := dc.Fill(); err != nil {
			t.Fatal(err)
		}
	}
	gaps := gg.NewMask(2, 1)
	gaps.Set(0, 0, 255)
	tg.Cut(gaps)

	img := tg.Composite(color.White)
	// values layer survives the cut, so the pixel stays green
	if got := img.RGBAAt(0, 0); got != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("pixel = %v, want green from the text layer", got)
	}
}

func TestTargetResize(t *testing.T) {
	tg := NewTarget(4, 4)
	tg.Layer(LayerScore)
	tg.Resize(8, 6)
	if tg.Width() != 8 || tg.Height() != 6 {
		t.Errorf("size = %dx%d, want 8x6", tg.Width(), tg.Height())
	}
	if got := tg.Layer(LayerScore).Width(); got != 8 {
		t.Errorf("layer width = %d, want 8", got)
	}
	tg.Close()
}
