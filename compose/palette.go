// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compose

import "github.com/gogpu/gg"

// Palette holds the colors of every layer.
type Palette struct {
	Canvas    gg.RGBA
	Ring      gg.RGBA
	Benchmark gg.RGBA

	// Scores color the score fills per category, cycling when there are
	// more categories than entries.
	Scores []gg.RGBA

	Average       gg.RGBA
	AverageBody   gg.RGBA
	AverageStroke gg.RGBA

	Value    gg.RGBA
	Category gg.RGBA

	TooltipFill gg.RGBA
	TooltipText gg.RGBA
}

// DefaultPalette returns the built-in light theme.
func DefaultPalette() Palette {
	return Palette{
		Canvas:    gg.Hex("#FFFFFF"),
		Ring:      gg.Hex("#E5E7EB"),
		Benchmark: gg.Hex("#9CA3AFCC"),
		Scores: []gg.RGBA{
			gg.Hex("#2563EB"),
			gg.Hex("#059669"),
			gg.Hex("#D97706"),
			gg.Hex("#DC2626"),
			gg.Hex("#7C3AED"),
			gg.Hex("#0891B2"),
		},
		Average:       gg.Hex("#374151"),
		AverageBody:   gg.Hex("#111827"),
		AverageStroke: gg.Hex("#FFFFFF"),
		Value:         gg.Hex("#111827"),
		Category:      gg.Hex("#374151"),
		TooltipFill:   gg.Hex("#111827E6"),
		TooltipText:   gg.Hex("#F9FAFB"),
	}
}

// ScoreFor returns the score color of category i.
func (p Palette) ScoreFor(i int) gg.RGBA {
	if len(p.Scores) == 0 {
		return p.Average
	}
	return p.Scores[i%len(p.Scores)]
}
