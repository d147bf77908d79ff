package radial

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/gogpu/radial/anim"
)

// Variant is an export flavour: which optional data layers are shown.
type Variant string

// Export variants.
const (
	VariantScores          Variant = "scores"
	VariantScoresBenchmark Variant = "scores+benchmark"
	VariantScoresAverage   Variant = "scores+average"
)

// DefaultExportScale is the resolution multiplier of exports.
const DefaultExportScale = 2.0

// Variants returns every export variant.
func Variants() []Variant {
	return []Variant{VariantScores, VariantScoresBenchmark, VariantScoresAverage}
}

// ParseVariant parses a variant name.
func ParseVariant(s string) (Variant, error) {
	for _, v := range Variants() {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

// Apply returns a copy of cfg with the benchmark and average flags set
// for v. cfg itself is untouched.
func (v Variant) Apply(cfg RenderConfig) (RenderConfig, error) {
	switch v {
	case VariantScores:
		cfg.ShowBenchmark, cfg.ShowAverage = false, false
	case VariantScoresBenchmark:
		cfg.ShowBenchmark, cfg.ShowAverage = true, false
	case VariantScoresAverage:
		cfg.ShowBenchmark, cfg.ShowAverage = false, true
	default:
		return cfg, fmt.Errorf("%w: %q", ErrUnknownVariant, string(v))
	}
	return cfg, nil
}

// Filename returns "<prefix>-<variant>.png" with '+' replaced by '-'.
func (v Variant) Filename(prefix string) string {
	return fmt.Sprintf("%s-%s.png", prefix, strings.ReplaceAll(string(v), "+", "-"))
}

// Export renders variant v of the chart at scale times the display size.
// Any running animation is stopped first. cfg is not modified, so renders
// after an export are unaffected by it.
func (c *Chart) Export(in Input, cfg RenderConfig, v Variant, scale float64) (*image.RGBA, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	vc, err := v.Apply(cfg)
	if err != nil {
		return nil, err
	}
	c.scheduler.Stop()
	return c.render(ModeExport, in, vc.WithScale(scale), anim.Vector{}, nil)
}

// Exported is one rendered export variant.
type Exported struct {
	Variant Variant
	Image   *image.RGBA
}

// ExportAll renders every variant at scale.
func (c *Chart) ExportAll(in Input, cfg RenderConfig, scale float64) ([]Exported, error) {
	out := make([]Exported, 0, len(Variants()))
	for _, v := range Variants() {
		img, err := c.Export(in, cfg, v, scale)
		if err != nil {
			return nil, fmt.Errorf("radial: export %s: %w", v, err)
		}
		out = append(out, Exported{Variant: v, Image: img})
	}
	return out, nil
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
