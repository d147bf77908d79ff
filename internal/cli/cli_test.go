// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/radial"
	"github.com/gogpu/radial/internal/config"
)

const testScores = "4,2.3,0,1,3.5,2"

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	c := New(&out, &logs, LogInfo)
	root := c.RootCommand()
	root.SetArgs(append(args, "--dotenv", ""))
	root.SetOut(&out)
	root.SetErr(&logs)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func decodePNGFile(t *testing.T, path string) (w, h int) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open(%s) error = %v", path, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode(%s) error = %v", path, err)
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestRenderCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "chart.png")
	if _, err := execute(t, "render", "-s", testScores, "--size", "120", "-o", out); err != nil {
		t.Fatalf("render error = %v", err)
	}
	if w, h := decodePNGFile(t, out); w != 120 || h != 120 {
		t.Errorf("render size = %dx%d, want 120x120", w, h)
	}
}

func TestRenderCommandLengthMismatch(t *testing.T) {
	_, err := execute(t, "render", "-s", testScores, "-b", "1,2", "-o", filepath.Join(t.TempDir(), "x.png"))
	if !errors.Is(err, radial.ErrLengthMismatch) {
		t.Errorf("render error = %v, want ErrLengthMismatch", err)
	}
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	if _, err := execute(t, "export", "-s", testScores, "--size", "100", "--scale", "2", "-d", dir, "-p", "chart"); err != nil {
		t.Fatalf("export error = %v", err)
	}
	for _, v := range radial.Variants() {
		path := filepath.Join(dir, v.Filename("chart"))
		if w, _ := decodePNGFile(t, path); w != 200 {
			t.Errorf("%s width = %d, want 200", v, w)
		}
	}

	_, err := execute(t, "export", "--variant", "nope", "-d", dir)
	if !errors.Is(err, radial.ErrUnknownVariant) {
		t.Errorf("export --variant nope error = %v, want ErrUnknownVariant", err)
	}
}

func TestAnimateCommand(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "chart.gif")
	args := []string{"animate", "-s", testScores, "--size", "80", "--mode", "global", "--duration", "60ms", "--fps", "50"}

	if _, err := execute(t, append(args, "-o", out)...); err != nil {
		t.Fatalf("animate error = %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer f.Close()
	g, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("gif.DecodeAll() error = %v", err)
	}
	if len(g.Image) < 2 {
		t.Errorf("frames = %d, want at least 2", len(g.Image))
	}
	if g.Delay[0] != 2 {
		t.Errorf("delay = %d, want 2", g.Delay[0])
	}

	frames := filepath.Join(dir, "frames")
	if _, err := execute(t, append(args, "--frames", frames)...); err != nil {
		t.Fatalf("animate --frames error = %v", err)
	}
	if w, _ := decodePNGFile(t, filepath.Join(frames, "frame-0000.png")); w != 80 {
		t.Errorf("frame width = %d, want 80", w)
	}

	if _, err := execute(t, "animate", "--mode", "sideways"); err == nil {
		t.Error("animate --mode sideways should fail")
	}
}

func TestHitCommand(t *testing.T) {
	// Category 1 spans -90..-30 degrees; (109.5, 83.5) is 19px out at -60.
	out, err := execute(t, "hit", "-s", testScores, "--size", "200", "-x", "109.5", "-y", "83.5")
	if err != nil {
		t.Fatalf("hit error = %v", err)
	}
	if !strings.Contains(out, "Category 1") || !strings.Contains(out, "Score: 4.0") {
		t.Errorf("hit output = %q", out)
	}

	tip := filepath.Join(t.TempDir(), "tip.png")
	out, err = execute(t, "hit", "-s", testScores, "--size", "200", "-x", "1", "-y", "1", "-o", tip)
	if err != nil {
		t.Fatalf("hit -o error = %v", err)
	}
	if strings.TrimSpace(out) != "no data" {
		t.Errorf("hit corner output = %q, want %q", out, "no data")
	}
	if w, _ := decodePNGFile(t, tip); w != 200 {
		t.Errorf("tooltip render width = %d, want 200", w)
	}
}

func TestConfigFlag(t *testing.T) {
	_, err := execute(t, "render", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, config.ErrLoadConfig) {
		t.Errorf("render --config missing error = %v, want ErrLoadConfig", err)
	}

	path := filepath.Join(t.TempDir(), "radial.yaml")
	if err := os.WriteFile(path, []byte("display_size: 90\nlog_level: loud\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err = execute(t, "render", "--config", path)
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("render with bad log_level error = %v, want ErrInvalidConfig", err)
	}
}

func TestEncodeGIFDelay(t *testing.T) {
	var buf bytes.Buffer
	frame := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if err := encodeGIF(&buf, []*image.RGBA{frame}, 0); err != nil {
		t.Fatalf("encodeGIF() error = %v", err)
	}
	g, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("gif.DecodeAll() error = %v", err)
	}
	if g.Delay[0] != 2 || g.LoopCount != -1 {
		t.Errorf("delay = %d loop = %d, want 2 and -1", g.Delay[0], g.LoopCount)
	}
}
