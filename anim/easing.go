// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package anim

import "math"

// Func maps linear progress t in [0, 1] to eased progress. Functions with
// overshoot (OutBack, OutElastic) may return values above 1 before t
// reaches 1.
type Func func(t float64) float64

// Linear returns t unchanged.
func Linear(t float64) float64 { return t }

// OutCubic decelerates: 1 - (1-t)^3.
func OutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// OutQuart decelerates harder than OutCubic: 1 - (1-t)^4.
func OutQuart(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u*u
}

// OutExpo approaches 1 exponentially: 1 - 2^(-10t).
func OutExpo(t float64) float64 {
	if t >= 1 {
		return 1
	}
	return 1 - math.Pow(2, -10*t)
}

// OutBack overshoots past 1 and settles back.
func OutBack(t float64) float64 {
	const c1 = 1.70158
	const c3 = c1 + 1
	u := t - 1
	return 1 + c3*u*u*u + c1*u*u
}

// OutElastic overshoots with a decaying oscillation.
func OutElastic(t float64) float64 {
	const c4 = 2 * math.Pi / 3
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	return math.Pow(2, -10*t)*math.Sin((t*10-0.75)*c4) + 1
}

// Ease evaluates f at t, pinning both ends: t <= 0 yields exactly 0 and
// t >= 1 yields exactly 1, whatever rounding f would introduce.
func Ease(f Func, t float64) float64 {
	switch {
	case !(t > 0):
		return 0
	case t >= 1:
		return 1
	case f == nil:
		return t
	}
	return f(t)
}

// Easings assigns one curve to each animated series.
type Easings struct {
	// Sweep drives the angular growth of a slice.
	Sweep Func

	// TierBuild drives the outward growth of the background rings.
	TierBuild Func

	// Fill drives the concentric score and benchmark fills.
	Fill Func

	// Indicator drives the average pill thickness.
	Indicator Func
}

// DefaultEasings returns cubic-out sweep, quartic-out tier build,
// exponential-out fill and back-out indicator.
func DefaultEasings() Easings {
	return Easings{
		Sweep:     OutCubic,
		TierBuild: OutQuart,
		Fill:      OutExpo,
		Indicator: OutBack,
	}
}

// Easing names accepted by Lookup.
var byName = map[string]Func{
	"linear":      Linear,
	"out-cubic":   OutCubic,
	"out-quart":   OutQuart,
	"out-expo":    OutExpo,
	"out-back":    OutBack,
	"out-elastic": OutElastic,
}

// Lookup returns the easing registered under name.
func Lookup(name string) (Func, bool) {
	f, ok := byName[name]
	return f, ok
}
