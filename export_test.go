package radial

import (
	"bytes"
	"errors"
	"image/png"
	"testing"

	"github.com/gogpu/radial/geom"
)

func TestVariantApply(t *testing.T) {
	tests := []struct {
		v          Variant
		bench, avg bool
	}{
		{VariantScores, false, false},
		{VariantScoresBenchmark, true, false},
		{VariantScoresAverage, false, true},
	}
	base := DefaultRenderConfig()
	for _, tt := range tests {
		t.Run(string(tt.v), func(t *testing.T) {
			got, err := tt.v.Apply(base)
			if err != nil {
				t.Fatal(err)
			}
			if got.ShowBenchmark != tt.bench || got.ShowAverage != tt.avg {
				t.Errorf("Apply() flags = %v/%v, want %v/%v", got.ShowBenchmark, got.ShowAverage, tt.bench, tt.avg)
			}
			if !got.ShowValues || !got.ShowLabels {
				t.Error("Apply() changed label flags")
			}
		})
	}
	if !base.ShowBenchmark || !base.ShowAverage {
		t.Error("Apply() modified the original config")
	}
	if _, err := Variant("bogus").Apply(base); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("Apply(bogus) error = %v, want %v", err, ErrUnknownVariant)
	}
}

func TestParseVariant(t *testing.T) {
	for _, v := range Variants() {
		got, err := ParseVariant(string(v))
		if err != nil || got != v {
			t.Errorf("ParseVariant(%q) = %q, %v", v, got, err)
		}
	}
	if _, err := ParseVariant("scores+everything"); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("ParseVariant() error = %v, want %v", err, ErrUnknownVariant)
	}
	if got, want := VariantScoresBenchmark.Filename("chart"), "chart-scores-benchmark.png"; got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}
}

func TestExportRoundTrip(t *testing.T) {
	c := newTestChart(t)
	cfg := testConfig()

	before, err := c.Render(testInput(), cfg)
	if err != nil {
		t.Fatal(err)
	}

	exp, err := c.Export(testInput(), cfg, VariantScores, 2)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if w := exp.Bounds().Dx(); w != 400 {
		t.Errorf("Export() width = %d, want 400", w)
	}

	after, err := c.Render(testInput(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before.Pix, after.Pix) {
		t.Error("render after export differs from render before it")
	}
	if !cfg.ShowBenchmark || !cfg.ShowAverage || cfg.Scale != 1 {
		t.Errorf("Export() leaked into the caller's config: %+v", cfg)
	}
}

func TestExportCanvasLimit(t *testing.T) {
	c := newTestChart(t)
	cfg := testConfig()
	cfg.DisplaySize = 4096

	img, err := c.Export(testInput(), cfg, VariantScores, 4)
	if !errors.Is(err, geom.ErrCanvasTooLarge) {
		t.Errorf("Export() error = %v, want %v", err, geom.ErrCanvasTooLarge)
	}
	if img != nil {
		t.Error("Export() returned an image past the canvas limit")
	}
}

func TestExportVariantsDiffer(t *testing.T) {
	c := newTestChart(t)
	all, err := c.ExportAll(testInput(), testConfig(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("ExportAll() = %d images, want 3", len(all))
	}
	if bytes.Equal(all[0].Image.Pix, all[1].Image.Pix) {
		t.Error("scores and scores+benchmark exports are identical")
	}
	if bytes.Equal(all[0].Image.Pix, all[2].Image.Pix) {
		t.Error("scores and scores+average exports are identical")
	}
}

func TestEncodePNG(t *testing.T) {
	c := newTestChart(t)
	img, err := c.Export(testInput(), testConfig(), VariantScoresAverage, 1)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("decoded bounds = %v, want %v", decoded.Bounds(), img.Bounds())
	}
}
