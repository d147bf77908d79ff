// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package geom is the geometry kernel of the radial chart.
//
// It converts (category, tier, value) triples into pixel radii and angles.
// Everything here is a pure function of a [Config]: there is no mutable
// state, so the same input always yields the same geometry, at any scale.
//
// # Layout
//
// The chart radius is divided into TotalLayers abstract layers. From the
// center outwards there is a hole of CenterHole layers followed by Tiers
// rings of RingThickness layers, separated by GapThickness layers:
//
//	TotalLayers == CenterHole + Tiers*RingThickness + (Tiers-1)*GapThickness
//
// Each ring is one unit of the 0..4 metric scale and is split into ten
// bands for the average indicator.
package geom
