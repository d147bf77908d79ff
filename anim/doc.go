// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package anim schedules the build-up animation of a radial chart.
//
// A [Strategy] turns elapsed time into a [Vector] of linear progress
// values: one global scalar ([Global]), one value per slice with a
// staggered start ([Staggered]), or per slice and per tier ([Tiered]).
// [Easings] map those linear values to eased ones, one curve per data
// series. A [Scheduler] ticks a strategy and hands each vector to a draw
// function until the vector completes, then draws one final frame with
// progress exactly 1.
//
//	s := anim.NewScheduler(anim.Staggered{
//	    Categories: 6,
//	    Duration:   anim.DefaultDuration,
//	    Stagger:    anim.DefaultStagger,
//	    Overlap:    anim.DefaultOverlap,
//	})
//	s.Start(ctx, func(v anim.Vector) error {
//	    return chart.Draw(v)
//	})
//	err := s.Wait()
package anim
