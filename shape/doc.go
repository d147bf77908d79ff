// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package shape builds the drawable primitives of a radial chart.
//
// Wedges, gap strips and average pills are plain geometry records. Data
// shapes carry a *Meta describing the value they encode, which the hit
// package reports back; nothing here attaches behavior to a shape.
// Every primitive emits its outline as a *gg.Path. The compositor fills
// those paths and Contains answers hit tests against the very same
// outlines through gg's winding test.
//
// Builder combines a geom.Kernel, the per-series easings and an
// anim.Vector into a Scene:
//
//	b := shape.NewBuilder(kernel, anim.DefaultEasings())
//	scene, err := b.Build(scores, benchmarks, averages, shape.DefaultOptions(), anim.Vector{})
package shape
