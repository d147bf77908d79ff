// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"github.com/spf13/cobra"

	"github.com/gogpu/radial"
	"github.com/gogpu/radial/geom"
)

// inputFlags holds the three data series as comma separated lists.
type inputFlags struct {
	scores     string
	benchmarks string
	averages   string
	size       int
}

func (f *inputFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.scores, "scores", "s", "", "comma separated scores, one per category (0-4)")
	cmd.Flags().StringVarP(&f.benchmarks, "benchmarks", "b", "", "comma separated benchmarks (default all 0)")
	cmd.Flags().StringVarP(&f.averages, "averages", "a", "", "comma separated averages (default all 0)")
	cmd.Flags().IntVar(&f.size, "size", 0, "canvas edge in pixels (default from config)")
}

// input parses the series. Raw values are clamped to the metric scale;
// omitted series are zero.
func (f *inputFlags) input() radial.Input {
	return seriesInput(f.scores, f.benchmarks, f.averages)
}

func seriesInput(scores, benchmarks, averages string) radial.Input {
	in := radial.Input{
		Scores:     radial.ParseSeries(scores),
		Benchmarks: radial.ParseSeries(benchmarks),
		Averages:   radial.ParseSeries(averages),
	}
	n := len(in.Scores)
	if n == 0 {
		n = geom.DefaultCategories
		in.Scores = make([]float64, n)
	}
	if in.Benchmarks == nil {
		in.Benchmarks = make([]float64, n)
	}
	if in.Averages == nil {
		in.Averages = make([]float64, n)
	}
	return in
}

// renderConfig applies the flag overrides to base.
func (f *inputFlags) renderConfig(base radial.RenderConfig) radial.RenderConfig {
	if f.size > 0 {
		base.DisplaySize = f.size
	}
	return base
}
