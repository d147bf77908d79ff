// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geom

import (
	"errors"
	"math"
	"testing"
)

const tol = 1e-9

func newTestKernel(t *testing.T, cfg Config) *Kernel {
	t.Helper()
	k, err := NewKernel(cfg)
	if err != nil {
		t.Fatalf("NewKernel() error = %v", err)
	}
	return k
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"default", func(*Config) {}, nil},
		{"budget too large", func(c *Config) { c.TotalLayers = 70 }, ErrLayerBudget},
		{"budget too small", func(c *Config) { c.GapThickness = 4 }, ErrLayerBudget},
		{"zero categories", func(c *Config) { c.Categories = 0 }, ErrInvalidConfig},
		{"zero tiers", func(c *Config) { c.Tiers = 0 }, ErrInvalidConfig},
		{"zero scale", func(c *Config) { c.Scale = 0 }, ErrInvalidConfig},
		{"NaN scale", func(c *Config) { c.Scale = math.NaN() }, ErrInvalidConfig},
		{"negative protrusion", func(c *Config) { c.Protrusion = -1 }, ErrInvalidConfig},
		{"zero display", func(c *Config) { c.DisplaySize = 0 }, ErrInvalidConfig},
		{"largest canvas", func(c *Config) { c.DisplaySize, c.Scale = 1024, 4 }, nil},
		{"canvas too large", func(c *Config) { c.DisplaySize, c.Scale = 4096, 4 }, ErrCanvasTooLarge},
		{"infinite scale", func(c *Config) { c.Scale = math.Inf(1) }, ErrCanvasTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewKernelRejectsBadBudget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CenterHole++
	if _, err := NewKernel(cfg); !errors.Is(err, ErrLayerBudget) {
		t.Errorf("NewKernel() error = %v, want ErrLayerBudget", err)
	}
}

func TestKernelScale(t *testing.T) {
	k := newTestKernel(t, DefaultConfig())
	if got, want := k.MaxRadius(), 240.0; math.Abs(got-want) > tol {
		t.Errorf("MaxRadius() = %v, want %v", got, want)
	}
	if got, want := k.LayerThickness(), 240.0/67; math.Abs(got-want) > tol {
		t.Errorf("LayerThickness() = %v, want %v", got, want)
	}
	cx, cy := k.Center()
	if cx != 300 || cy != 300 {
		t.Errorf("Center() = (%v, %v), want (300, 300)", cx, cy)
	}
}

func TestRingBounds(t *testing.T) {
	k := newTestKernel(t, DefaultConfig())
	layer := k.LayerThickness()

	first := k.RingBounds(0)
	if math.Abs(first.Inner-10*layer) > tol || math.Abs(first.Outer-22*layer) > tol {
		t.Errorf("RingBounds(0) = %+v, want {%v %v}", first, 10*layer, 22*layer)
	}

	last := k.RingBounds(3)
	if math.Abs(last.Outer-k.MaxRadius()) > tol {
		t.Errorf("RingBounds(3).Outer = %v, want MaxRadius %v", last.Outer, k.MaxRadius())
	}

	for tier := 1; tier < 4; tier++ {
		prev, cur := k.RingBounds(tier-1), k.RingBounds(tier)
		if cur.Inner <= prev.Outer {
			t.Errorf("tier %d overlaps tier %d: %+v vs %+v", tier, tier-1, cur, prev)
		}
		if gap := cur.Inner - prev.Outer; math.Abs(gap-3*layer) > tol {
			t.Errorf("gap before tier %d = %v, want %v", tier, gap, 3*layer)
		}
	}
}

func TestSliceAngles(t *testing.T) {
	k := newTestKernel(t, DefaultConfig())
	step := 2 * math.Pi / 6

	s0 := k.SliceAngles(0)
	if math.Abs(s0.Start+math.Pi/2) > tol {
		t.Errorf("SliceAngles(0).Start = %v, want -π/2", s0.Start)
	}
	for c := 0; c < 6; c++ {
		s := k.SliceAngles(c)
		if math.Abs(s.Span()-step) > tol {
			t.Errorf("SliceAngles(%d).Span() = %v, want %v", c, s.Span(), step)
		}
		if c > 0 {
			if prev := k.SliceAngles(c - 1); math.Abs(prev.End-s.Start) > tol {
				t.Errorf("slice %d starts at %v, previous ends at %v", c, s.Start, prev.End)
			}
		}
	}
	if end := k.SliceAngles(5).End; math.Abs(end-3*math.Pi/2) > tol {
		t.Errorf("SliceAngles(5).End = %v, want 3π/2", end)
	}
}

func TestFillFraction(t *testing.T) {
	tests := []struct {
		value float64
		want  [4]float64
	}{
		{0, [4]float64{0, 0, 0, 0}},
		{0.05, [4]float64{0, 0, 0, 0}},
		{0.1, [4]float64{0.1, 0, 0, 0}},
		{1, [4]float64{1, 0, 0, 0}},
		{2.3, [4]float64{1, 1, 0.3, 0}},
		{2.39, [4]float64{1, 1, 0.3, 0}},
		{3.7, [4]float64{1, 1, 1, 0.7}},
		{4, [4]float64{1, 1, 1, 1}},
	}
	for _, tt := range tests {
		for tier := 0; tier < 4; tier++ {
			if got := FillFraction(tt.value, tier); math.Abs(got-tt.want[tier]) > tol {
				t.Errorf("FillFraction(%v, %d) = %v, want %v", tt.value, tier, got, tt.want[tier])
			}
		}
	}
}

func TestFillFractionMonotonicAndContiguous(t *testing.T) {
	k := newTestKernel(t, DefaultConfig())
	for tier := 0; tier < 4; tier++ {
		prev := -1.0
		for i := 0; i <= 400; i++ {
			v := float64(i) / 100
			got := FillFraction(v, tier)
			if got < prev {
				t.Fatalf("FillFraction(%v, %d) = %v decreased from %v", v, tier, got, prev)
			}
			prev = got
		}
	}

	for i := 0; i <= 400; i++ {
		v := float64(i) / 100
		var total float64
		partial := 0
		for tier := 0; tier < 4; tier++ {
			f := FillFraction(v, tier)
			total += f
			if f > 0 && f < 1 {
				partial++
			}
			// a tier can only start filling once the one below is full
			if tier > 0 && f > 0 && FillFraction(v, tier-1) < 1 {
				t.Errorf("v=%v: tier %d filled while tier %d is not full", v, tier, tier-1)
			}
			r := k.RingBounds(tier)
			if fr := k.FillRadius(v, tier); fr < r.Inner-tol || fr > r.Outer+tol {
				t.Errorf("FillRadius(%v, %d) = %v outside %+v", v, tier, fr, r)
			}
		}
		if want := float64(Tenths(v)) / 10; math.Abs(total-want) > tol {
			t.Errorf("v=%v: summed fill = %v, want %v", v, total, want)
		}
		if partial > 1 {
			t.Errorf("v=%v: %d partially filled tiers, want at most 1", v, partial)
		}
	}
}

func TestFillScenario(t *testing.T) {
	k := newTestKernel(t, DefaultConfig())
	scores := []float64{2.3, 0, 4, 1, 1, 1}

	r2 := k.RingBounds(2)
	if got, want := k.FillRadius(scores[0], 2), r2.Inner+0.3*r2.Thickness(); math.Abs(got-want) > tol {
		t.Errorf("FillRadius(2.3, 2) = %v, want %v", got, want)
	}
	if got := k.FillRadius(scores[0], 3); got != k.RingBounds(3).Inner {
		t.Errorf("FillRadius(2.3, 3) = %v, want empty tier", got)
	}
	for tier := 0; tier < 4; tier++ {
		if got := FillFraction(scores[1], tier); got != 0 {
			t.Errorf("FillFraction(0, %d) = %v, want 0", tier, got)
		}
		if got := FillFraction(scores[2], tier); got != 1 {
			t.Errorf("FillFraction(4, %d) = %v, want 1", tier, got)
		}
	}
}

func TestAverageLayerIndex(t *testing.T) {
	tests := []struct {
		value    float64
		wantIdx  int
		wantOK   bool
		wantTier int
		wantBand int
	}{
		{0, 0, false, 0, 0},
		{-1, 0, false, 0, 0},
		{math.NaN(), 0, false, 0, 0},
		{0.05, 0, false, 0, 0},
		{0.1, 0, true, 0, 0},
		{1.0, 9, true, 0, 9},
		{2.5, 24, true, 2, 4},
		{4.0, 39, true, 3, 9},
	}
	for _, tt := range tests {
		idx, ok := AverageLayerIndex(tt.value)
		if ok != tt.wantOK || (ok && idx != tt.wantIdx) {
			t.Errorf("AverageLayerIndex(%v) = (%d, %v), want (%d, %v)", tt.value, idx, ok, tt.wantIdx, tt.wantOK)
			continue
		}
		if !ok {
			continue
		}
		tier, band := SplitLayerIndex(idx)
		if tier != tt.wantTier || band != tt.wantBand {
			t.Errorf("SplitLayerIndex(%d) = (%d, %d), want (%d, %d)", idx, tier, band, tt.wantTier, tt.wantBand)
		}
	}
}

func TestIndicator(t *testing.T) {
	k := newTestKernel(t, DefaultConfig())
	slice := k.SliceAngles(0)
	ind := k.Indicator(24, slice)

	if ind.Tier != 2 || ind.Band != 4 {
		t.Fatalf("Indicator(24) tier/band = (%d, %d), want (2, 4)", ind.Tier, ind.Band)
	}

	ring := k.RingBounds(2)
	step := ring.Thickness() / 10
	bandInner := ring.Inner + 4*step
	if ind.Mid <= bandInner || ind.Mid >= bandInner+step {
		t.Errorf("Mid = %v outside band [%v, %v]", ind.Mid, bandInner, bandInner+step)
	}
	if got, want := ind.Outer-ind.Inner, step*1.2; math.Abs(got-want) > tol {
		t.Errorf("thickness = %v, want %v", got, want)
	}
	if math.Abs(ind.CapRadius*2-(ind.Outer-ind.Inner)) > tol {
		t.Errorf("CapRadius = %v, want half thickness", ind.CapRadius)
	}

	want := math.Asin(DefaultProtrusion / ind.Mid)
	if math.Abs(ind.Protrusion-want) > tol {
		t.Errorf("Protrusion = %v, want %v", ind.Protrusion, want)
	}
	if ind.Protrusion <= 0 {
		t.Error("Protrusion should never collapse to zero")
	}
	if ind.Extent.Start >= slice.Start || ind.Extent.End <= slice.End {
		t.Errorf("Extent %+v should reach past slice %+v", ind.Extent, slice)
	}
	if ind.Body != slice {
		t.Errorf("Body = %+v, want clamped to slice %+v", ind.Body, slice)
	}
	if ind.Clamped {
		t.Error("default protrusion should not be clamped")
	}
}

func TestIndicatorAsinGuard(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Categories = 1
	cfg.Protrusion = 10_000
	k := newTestKernel(t, cfg)

	ind := k.Indicator(0, k.SliceAngles(0))
	if math.IsNaN(ind.Protrusion) {
		t.Fatal("Protrusion is NaN, arcsin domain not guarded")
	}
	if want := math.Asin(0.99); math.Abs(ind.Protrusion-want) > tol {
		t.Errorf("Protrusion = %v, want asin(0.99) = %v", ind.Protrusion, want)
	}
	if !ind.Clamped {
		t.Error("Clamped = false, want true")
	}
}

func TestIndicatorHalfSliceCap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Protrusion = 10_000
	k := newTestKernel(t, cfg)

	slice := k.SliceAngles(3)
	ind := k.Indicator(0, slice)
	if got, want := ind.Protrusion, slice.Span()/2; math.Abs(got-want) > tol {
		t.Errorf("Protrusion = %v, want half slice %v", got, want)
	}
	if ind.Body != slice {
		t.Errorf("Body = %+v, want %+v", ind.Body, slice)
	}
}

func TestResolutionInvariance(t *testing.T) {
	base := newTestKernel(t, DefaultConfig())
	big := newTestKernel(t, DefaultConfig().WithScale(2))

	for tier := 0; tier < 4; tier++ {
		a, b := base.RingBounds(tier), big.RingBounds(tier)
		if math.Abs(b.Inner-2*a.Inner) > tol || math.Abs(b.Outer-2*a.Outer) > tol {
			t.Errorf("tier %d at scale 2 = %+v, want twice %+v", tier, b, a)
		}
	}
	a := base.Indicator(24, base.SliceAngles(1))
	b := big.Indicator(24, big.SliceAngles(1))
	if math.Abs(a.Protrusion-b.Protrusion) > tol {
		t.Errorf("protrusion angle changed with scale: %v vs %v", a.Protrusion, b.Protrusion)
	}
	if math.Abs(big.GapWidth()-2*base.GapWidth()) > tol {
		t.Errorf("GapWidth() at scale 2 = %v, want %v", big.GapWidth(), 2*base.GapWidth())
	}
}

func BenchmarkIndicator(b *testing.B) {
	k, _ := NewKernel(DefaultConfig())
	s := k.SliceAngles(2)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = k.Indicator(i%40, s)
	}
}

func BenchmarkFillRadius(b *testing.B) {
	k, _ := NewKernel(DefaultConfig())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = k.FillRadius(2.37, i%4)
	}
}
