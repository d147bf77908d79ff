// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compose

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"strings"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/radial/hit"
	"github.com/gogpu/radial/internal/lru"
	"github.com/gogpu/radial/shape"
)

// ErrNilScene is returned by Render when no scene is given.
var ErrNilScene = errors.New("compose: nil scene")

// Tooltip and stroke sizes in display pixels.
const (
	TooltipFontSize = 13.0
	tooltipPadding  = 6.0
	tooltipRadius   = 4.0
	pillStroke      = 1.0

	// maxFaces bounds the font face cache; sizes follow the render scale.
	maxFaces = 16
)

// Overlay is an externally supplied image composited above the labels.
// Its content is never inspected.
type Overlay struct {
	// Path is loaded with gg.LoadImage. Ignored when Image is set.
	Path  string
	Image image.Image

	// X and Y offset the top-left corner, in display pixels.
	X, Y float64

	// Width scales the overlay to this display width, keeping its
	// aspect ratio. Zero keeps the native size.
	Width float64

	// Opacity in (0, 1]; zero means opaque.
	Opacity float64
}

func (o Overlay) empty() bool { return o.Path == "" && o.Image == nil }

// Tooltip asks Render to draw a text box next to a pointer position.
type Tooltip struct {
	X, Y float64
	Text string
}

// Option configures a Compositor.
type Option func(*Compositor)

// WithPalette sets the layer colors.
func WithPalette(p Palette) Option {
	return func(c *Compositor) { c.palette = p }
}

// WithFont sets the label font. The default is Go Regular.
func WithFont(src *text.FontSource) Option {
	return func(c *Compositor) { c.font = src }
}

// WithOverlay sets the overlay image.
func WithOverlay(o Overlay) Option {
	return func(c *Compositor) { c.overlay = o }
}

// WithOverlayErrorHandler registers a callback for overlay load failures,
// which are otherwise only logged.
func WithOverlayErrorHandler(f func(error)) Option {
	return func(c *Compositor) { c.onOverlayErr = f }
}

// Compositor renders scenes into RGBA images, one layer per surface, in
// fixed order: background, benchmark, score, average, the gap cut, value
// labels, category labels, overlay, tooltip. Every Render replaces every
// layer. It is safe for concurrent use; renders are serialized.
type Compositor struct {
	palette      Palette
	font         *text.FontSource
	overlay      Overlay
	onOverlayErr func(error)

	mu          sync.Mutex
	logger      *slog.Logger
	target      *Target
	faces       *lru.Cache[float64, text.Face]
	overlayBuf  *gg.ImageBuf
	overlayDone bool
}

// NewCompositor creates a compositor. It fails only when the default
// font cannot be parsed.
func NewCompositor(opts ...Option) (*Compositor, error) {
	c := &Compositor{
		palette: DefaultPalette(),
		logger:  slog.New(nopHandler{}),
		faces:   lru.New[float64, text.Face](maxFaces, nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.font == nil {
		src, err := text.NewFontSource(goregular.TTF)
		if err != nil {
			return nil, fmt.Errorf("compose: load default font: %w", err)
		}
		c.font = src
	}
	return c, nil
}

// SetLogger sets the logger. Pass nil to silence it.
func (c *Compositor) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	c.mu.Lock()
	c.logger = l
	c.mu.Unlock()
}

// Palette returns the layer colors.
func (c *Compositor) Palette() Palette { return c.palette }

// Render draws sc and returns a new image. tip may be nil.
func (c *Compositor) Render(sc *shape.Scene, tip *Tooltip) (*image.RGBA, error) {
	if sc == nil {
		return nil, ErrNilScene
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.target == nil {
		c.target = NewTarget(sc.Width, sc.Height)
	}
	t := c.target
	t.Resize(sc.Width, sc.Height)
	t.Begin()

	scale := sc.Scale
	if scale <= 0 {
		scale = 1
	}
	pal := c.palette

	if err := fillWedges(t.Layer(LayerBackground), sc.Background, func(shape.Wedge) gg.RGBA { return pal.Ring }); err != nil {
		return nil, fmt.Errorf("compose: background: %w", err)
	}
	if sc.Visibility.Benchmark {
		if err := fillWedges(t.Layer(LayerBenchmark), sc.Benchmark, func(shape.Wedge) gg.RGBA { return pal.Benchmark }); err != nil {
			return nil, fmt.Errorf("compose: benchmark: %w", err)
		}
	}
	if err := fillWedges(t.Layer(LayerScore), sc.Score, func(w shape.Wedge) gg.RGBA { return pal.ScoreFor(w.Meta.Category) }); err != nil {
		return nil, fmt.Errorf("compose: score: %w", err)
	}
	if sc.Visibility.Average {
		if err := c.drawPills(t.Layer(LayerAverage), sc.Average, scale); err != nil {
			return nil, fmt.Errorf("compose: average: %w", err)
		}
	}

	t.Cut(gapMask(sc))

	if sc.Visibility.Values {
		c.drawLabels(t.Layer(LayerValues), sc.Values, pal.Value)
	}
	if sc.Visibility.Labels {
		c.drawLabels(t.Layer(LayerCategories), sc.Categories, pal.Category)
	}
	if !c.overlay.empty() {
		c.drawOverlay(t, scale)
	}
	if tip != nil && tip.Text != "" {
		if err := c.drawTooltip(t.Layer(LayerTooltip), tip, sc, scale); err != nil {
			return nil, fmt.Errorf("compose: tooltip: %w", err)
		}
	}

	out := t.Composite(pal.Canvas.Color())
	c.logger.Debug("frame composited", "width", sc.Width, "height", sc.Height, "shapes", sc.Shapes())

	frame := image.NewRGBA(out.Rect)
	copy(frame.Pix, out.Pix)
	return frame, nil
}

// Close releases the layer surfaces.
func (c *Compositor) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.target != nil {
		c.target.Close()
		c.target = nil
	}
	return nil
}

func fillWedges(dc *gg.Context, ws []shape.Wedge, color func(shape.Wedge) gg.RGBA) error {
	for _, w := range ws {
		if w.Empty() {
			continue
		}
		if err := fillPath(dc, w.Path(), color(w)); err != nil {
			return err
		}
	}
	return nil
}

// drawPills fills the protruding band and caps, then the slice-clamped
// body on top, then outlines the caps.
func (c *Compositor) drawPills(dc *gg.Context, pills []shape.Pill, scale float64) error {
	pal := c.palette
	for _, p := range pills {
		if p.Outer <= p.Inner {
			continue
		}
		caps := p.CapPaths()
		if err := fillPath(dc, p.BandPath(), pal.Average); err != nil {
			return err
		}
		for _, cp := range caps {
			if err := fillPath(dc, cp, pal.Average); err != nil {
				return err
			}
		}
		if p.Body.End > p.Body.Start {
			if err := fillPath(dc, p.BodyPath(), pal.AverageBody); err != nil {
				return err
			}
		}
		dc.SetLineWidth(pillStroke * scale)
		setColor(dc, pal.AverageStroke)
		for _, cp := range caps {
			if err := dc.StrokePath(cp); err != nil {
				return err
			}
		}
	}
	return nil
}

// gapMask rasterizes every gap strip into one coverage mask.
func gapMask(sc *shape.Scene) *gg.Mask {
	if len(sc.Gaps) == 0 {
		return nil
	}
	dc := gg.NewContext(sc.Width, sc.Height)
	defer func() { _ = dc.Close() }()
	dc.DrawPath(sc.GapPath())
	return dc.AsMask()
}

func (c *Compositor) face(size float64) text.Face {
	f, ok := c.faces.Get(size)
	if !ok {
		f = c.font.Face(size)
		c.faces.Add(size, f)
	}
	return f
}

func (c *Compositor) drawLabels(dc *gg.Context, labels []shape.Label, col gg.RGBA) {
	setColor(dc, col)
	for _, l := range labels {
		if l.Text == "" || l.Size <= 0 {
			continue
		}
		dc.SetFont(c.face(l.Size))
		dc.DrawStringAnchored(l.Text, l.X, l.Y, l.AnchorX, l.AnchorY)
	}
}

// drawOverlay loads the overlay once. A failed load is reported and the
// frame is rendered without it.
func (c *Compositor) drawOverlay(t *Target, scale float64) {
	if !c.overlayDone {
		c.overlayDone = true
		buf, err := c.loadOverlay()
		if err != nil {
			c.logger.Warn("overlay unavailable, rendering without it", "path", c.overlay.Path, "err", err)
			if c.onOverlayErr != nil {
				c.onOverlayErr(err)
			}
		}
		c.overlayBuf = buf
	}
	if c.overlayBuf == nil {
		return
	}

	o := c.overlay
	opts := gg.DrawImageOptions{X: o.X * scale, Y: o.Y * scale, Opacity: o.Opacity}
	if w, h := c.overlayBuf.Bounds(); o.Width > 0 && w > 0 {
		opts.DstWidth = o.Width * scale
		opts.DstHeight = opts.DstWidth * float64(h) / float64(w)
	} else {
		opts.DstWidth = float64(w) * scale
		opts.DstHeight = float64(h) * scale
	}
	t.Layer(LayerOverlay).DrawImageEx(c.overlayBuf, opts)
}

func (c *Compositor) loadOverlay() (*gg.ImageBuf, error) {
	if c.overlay.Image != nil {
		return gg.ImageBufFromImage(c.overlay.Image), nil
	}
	return gg.LoadImage(c.overlay.Path)
}

func (c *Compositor) drawTooltip(dc *gg.Context, tip *Tooltip, sc *shape.Scene, scale float64) error {
	dc.SetFont(c.face(TooltipFontSize * scale))
	lines := strings.Split(tip.Text, "\n")

	var w, lh float64
	for _, line := range lines {
		lw, h := dc.MeasureString(line)
		w = max(w, lw)
		lh = max(lh, h)
	}
	pad := tooltipPadding * scale
	bw := w + 2*pad
	bh := lh*float64(len(lines)) + 2*pad
	x, y := hit.TooltipPosition(tip.X, tip.Y, bw, bh, float64(sc.Width), float64(sc.Height))

	dc.DrawRoundedRectangle(x, y, bw, bh, tooltipRadius*scale)
	setColor(dc, c.palette.TooltipFill)
	if err := dc.Fill(); err != nil {
		return err
	}
	setColor(dc, c.palette.TooltipText)
	for i, line := range lines {
		dc.DrawStringAnchored(line, x+pad, y+pad+float64(i)*lh, 0, 1)
	}
	return nil
}

func fillPath(dc *gg.Context, p *gg.Path, col gg.RGBA) error {
	if p.NumVerbs() == 0 {
		return nil
	}
	setColor(dc, col)
	return dc.FillPath(p)
}

func setColor(dc *gg.Context, col gg.RGBA) {
	dc.SetRGBA(col.R, col.G, col.B, col.A)
}

// nopHandler drops every record.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }
