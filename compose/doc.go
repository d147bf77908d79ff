// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package compose rasterizes a shape.Scene with gg.
//
// Each render layer is its own gg.Context inside a Target. Data layers
// (background, benchmark, score, average) are subtractive: the gap strips
// are rasterized into a mask and every data layer clears the masked area
// from itself before it is blended. Text, overlay and tooltip layers sit
// above the cut and are never cleared.
//
// A layer whose visibility flag is off in the scene is not drawn at all,
// so it composites as fully transparent.
package compose
