// Package radial renders six-category, four-tier radial charts and
// animates their construction.
//
// # Overview
//
// A chart encodes three parallel series per category: a score and a
// benchmark, drawn as concentric fills over four tiers, and an average,
// drawn as a pill-shaped indicator on its tenth-of-a-tier band. Gaps cut
// the slices apart after the data layers are drawn.
//
// # Quick Start
//
//	c, err := radial.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer c.Close()
//
//	in := radial.Input{
//		Scores:     []float64{2.3, 0, 4, 1, 1, 1},
//		Benchmarks: []float64{3, 3, 3, 3, 3, 3},
//		Averages:   []float64{2.5, 1, 3.2, 1, 1, 1},
//	}
//	img, err := c.Render(in, radial.DefaultRenderConfig())
//
// # Architecture
//
// The pipeline runs leaf first:
//   - geom: pure radius and angle math over an abstract layer budget
//   - shape: wedges, gap strips and pills tagged with data metadata
//   - compose: per-layer gg surfaces, the subtractive gap pass, labels
//   - anim: progress strategies, easings and the animation scheduler
//   - hit: pointer to data lookup for tooltips
//
// A Chart wires them together. Static renders, exports and animation
// frames all run the same pipeline; only the progress vector and the
// RenderConfig differ.
//
// # Resolution
//
// Every radius derives from DisplaySize*Scale, so an export at Scale 2 is
// the display chart at twice the pixel density with no change in shape.
//
// # Logging
//
// radial is silent by default. Call SetLogger to receive animation
// lifecycle and overlay warnings through log/slog.
package radial
