// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package anim

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Default timing.
const (
	DefaultDuration  = 1200 * time.Millisecond
	DefaultStagger   = 150 * time.Millisecond
	DefaultOverlap   = 0.6
	DefaultTierDelay = 0.15
	DefaultInterval  = time.Second / 60
)

// Vector is the linear progress of one animation frame.
//
// Slice holds one value per category. Tier, when present, holds one
// value per tier for every category. The zero Vector is complete: every
// accessor returns 1, which is what a static render wants.
type Vector struct {
	Slice []float64
	Tier  [][]float64
}

// Complete returns a vector with every entry exactly 1.
func Complete(categories int) Vector {
	return Uniform(categories, 1)
}

// Uniform returns a vector with every slice at t.
func Uniform(categories int, t float64) Vector {
	s := make([]float64, categories)
	for i := range s {
		s[i] = t
	}
	return Vector{Slice: s}
}

// SliceAt returns the progress of category i.
func (v Vector) SliceAt(i int) float64 {
	if i < 0 || i >= len(v.Slice) {
		return 1
	}
	return v.Slice[i]
}

// TierAt returns the progress of tier j inside category i. Without
// per-tier data it falls back to the slice progress.
func (v Vector) TierAt(i, j int) float64 {
	if i < 0 || i >= len(v.Tier) || j < 0 || j >= len(v.Tier[i]) {
		return v.SliceAt(i)
	}
	return v.Tier[i][j]
}

// Done reports whether every entry reached 1.
func (v Vector) Done() bool {
	for _, t := range v.Slice {
		if t < 1 {
			return false
		}
	}
	for _, row := range v.Tier {
		for _, t := range row {
			if t < 1 {
				return false
			}
		}
	}
	return true
}

// Strategy derives a progress vector from elapsed time.
type Strategy interface {
	// At returns the vector after elapsed time.
	At(elapsed time.Duration) Vector

	// Total returns the time after which At is complete.
	Total() time.Duration
}

// Global animates every slice together (the simple bloom).
type Global struct {
	Categories int
	Duration   time.Duration
}

// At implements Strategy.
func (g Global) At(elapsed time.Duration) Vector {
	return Uniform(g.Categories, fraction(elapsed, g.Duration))
}

// Total implements Strategy.
func (g Global) Total() time.Duration { return g.Duration }

// Staggered starts slice i after i*Stagger; each slice then runs for
// Duration*(1 - Overlap/2), so later slices chase earlier ones.
type Staggered struct {
	Categories int
	Duration   time.Duration
	Stagger    time.Duration
	Overlap    float64
}

// Window returns the run time of a single slice.
func (s Staggered) Window() time.Duration {
	return time.Duration(float64(s.Duration) * (1 - s.Overlap*0.5))
}

// At implements Strategy.
func (s Staggered) At(elapsed time.Duration) Vector {
	out := make([]float64, s.Categories)
	w := s.Window()
	for i := range out {
		out[i] = fraction(elapsed-time.Duration(i)*s.Stagger, w)
	}
	return Vector{Slice: out}
}

// Total implements Strategy.
func (s Staggered) Total() time.Duration {
	if s.Categories == 0 {
		return 0
	}
	return time.Duration(s.Categories-1)*s.Stagger + s.Window()
}

// Tiered is Staggered with an outward radial build inside each slice:
// tier j starts once the slice is j*TierDelay through its window.
type Tiered struct {
	Staggered
	Tiers     int
	TierDelay float64
}

// At implements Strategy.
func (t Tiered) At(elapsed time.Duration) Vector {
	v := t.Staggered.At(elapsed)
	span := 1 - float64(t.Tiers-1)*t.TierDelay
	v.Tier = make([][]float64, len(v.Slice))
	for i, p := range v.Slice {
		row := make([]float64, t.Tiers)
		for j := range row {
			start := float64(j) * t.TierDelay
			switch {
			case p >= 1:
				row[j] = 1
			case span <= 0:
				row[j] = step(p, start)
			default:
				row[j] = clamp01((p - start) / span)
			}
		}
		v.Tier[i] = row
	}
	return v
}

// Total implements Strategy.
func (t Tiered) Total() time.Duration { return t.Staggered.Total() }

// fraction returns elapsed/d clamped to [0, 1]. A zero duration is
// complete immediately.
func fraction(elapsed, d time.Duration) float64 {
	if d <= 0 {
		if elapsed < 0 {
			return 0
		}
		return 1
	}
	return clamp01(float64(elapsed) / float64(d))
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

func step(p, edge float64) float64 {
	if p >= edge {
		return 1
	}
	return 0
}

// Mode names a progress strategy.
type Mode string

// Progress modes.
const (
	ModeGlobal    Mode = "global"
	ModeStaggered Mode = "staggered"
	ModeTiered    Mode = "tiered"
)

// Errors returned by ParseMode and Timing.Validate.
var (
	ErrUnknownMode   = errors.New("anim: unknown mode")
	ErrInvalidTiming = errors.New("anim: invalid timing")
)

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeGlobal, ModeStaggered, ModeTiered:
		return m, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownMode, s)
}

// Timing holds the strategy parameters. Every field is used as given:
// a zero Overlap means slices do not overlap and a zero TierDelay builds
// all tiers of a slice together. Start from DefaultTiming to change one
// field.
type Timing struct {
	Duration  time.Duration
	Stagger   time.Duration
	Overlap   float64
	TierDelay float64
}

// DefaultTiming returns the default strategy parameters.
func DefaultTiming() Timing {
	return Timing{
		Duration:  DefaultDuration,
		Stagger:   DefaultStagger,
		Overlap:   DefaultOverlap,
		TierDelay: DefaultTierDelay,
	}
}

// Validate checks that durations are not negative and that Overlap and
// TierDelay lie in [0, 1].
func (t Timing) Validate() error {
	switch {
	case t.Duration < 0 || t.Stagger < 0:
		return fmt.Errorf("%w: negative duration or stagger", ErrInvalidTiming)
	case !(t.Overlap >= 0 && t.Overlap <= 1):
		return fmt.Errorf("%w: overlap = %v, want [0, 1]", ErrInvalidTiming, t.Overlap)
	case !(t.TierDelay >= 0 && t.TierDelay <= 1):
		return fmt.Errorf("%w: tier delay = %v, want [0, 1]", ErrInvalidTiming, t.TierDelay)
	}
	return nil
}

// NewStrategy builds the strategy for mode from t, unchanged.
func NewStrategy(mode Mode, categories, tiers int, t Timing) Strategy {
	st := Staggered{Categories: categories, Duration: t.Duration, Stagger: t.Stagger, Overlap: t.Overlap}
	switch mode {
	case ModeGlobal:
		return Global{Categories: categories, Duration: t.Duration}
	case ModeStaggered:
		return st
	default:
		return Tiered{Staggered: st, Tiers: tiers, TierDelay: t.TierDelay}
	}
}
