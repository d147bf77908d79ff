package radial

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/radial/geom"
	"github.com/gogpu/radial/shape"
)

// RenderConfig is everything a render pass reads besides the data. It is
// a value: every call gets its own copy and nothing in the package keeps
// or mutates one between calls.
type RenderConfig struct {
	ShowBenchmark bool
	ShowAverage   bool
	ShowValues    bool
	ShowLabels    bool

	// ValueAngleOffset rotates value labels off the slice bisector, in
	// degrees.
	ValueAngleOffset float64

	// ValueFontSize is in display pixels.
	ValueFontSize float64

	// ValueDistance is the label radius in percent of the chart radius.
	ValueDistance float64

	CategoryFontSize float64

	// DisplaySize is the interactive canvas edge in pixels. Zero uses
	// the chart geometry.
	DisplaySize int

	// Scale multiplies DisplaySize. Export renders above 1.
	Scale float64

	// CategoryNames label the slices. Names keep their casing.
	CategoryNames []string
}

// DefaultRenderConfig shows every layer at display resolution.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		ShowBenchmark:    true,
		ShowAverage:      true,
		ShowValues:       true,
		ShowLabels:       true,
		ValueFontSize:    shape.DefaultValueFontSize,
		ValueDistance:    shape.DefaultValueDistance,
		CategoryFontSize: shape.DefaultCategoryFontSize,
		DisplaySize:      geom.DefaultDisplaySize,
		Scale:            1,
	}
}

// WithScale returns a copy rendering at scale.
func (c RenderConfig) WithScale(scale float64) RenderConfig {
	c.Scale = scale
	return c
}

// geometry applies the resolution fields to base.
func (c RenderConfig) geometry(base geom.Config) geom.Config {
	if c.DisplaySize > 0 {
		base.DisplaySize = c.DisplaySize
	}
	if c.Scale > 0 {
		base.Scale = c.Scale
	}
	return base
}

func (c RenderConfig) shapeOptions() shape.Options {
	opts := shape.Options{
		Visibility: shape.Visibility{
			Benchmark: c.ShowBenchmark,
			Average:   c.ShowAverage,
			Values:    c.ShowValues,
			Labels:    c.ShowLabels,
		},
		ValueAngleOffset: c.ValueAngleOffset,
		ValueFontSize:    c.ValueFontSize,
		ValueDistance:    c.ValueDistance,
		CategoryFontSize: c.CategoryFontSize,
	}
	opts.CategoryNames = c.Labels()
	return opts
}

// Labels returns the category names trimmed and in Unicode NFC, so a
// decomposed accent renders and compares as one character. Casing is
// left exactly as given.
func (c RenderConfig) Labels() []string {
	if len(c.CategoryNames) == 0 {
		return nil
	}
	out := make([]string, len(c.CategoryNames))
	for i, n := range c.CategoryNames {
		out[i] = norm.NFC.String(strings.TrimSpace(n))
	}
	return out
}
