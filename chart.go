package radial

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/gogpu/radial/anim"
	"github.com/gogpu/radial/compose"
	"github.com/gogpu/radial/geom"
	"github.com/gogpu/radial/hit"
	"github.com/gogpu/radial/internal/lru"
	"github.com/gogpu/radial/shape"
)

// maxBuilders bounds the per-resolution builder cache.
const maxBuilders = 8

// Render modes reported to an Observer.
const (
	ModeStatic   = "static"
	ModeAnimated = "animated"
	ModeExport   = "export"
	ModePointer  = "pointer"
)

// Observer receives render and animation events, typically to export
// metrics.
type Observer interface {
	anim.Observer

	// Rendered is called after every composited frame.
	Rendered(mode string, d time.Duration, err error)

	// OverlayFailed is called when the overlay image cannot be loaded.
	OverlayFailed()
}

type nopObserver struct{}

func (nopObserver) Started(uuid.UUID)                     {}
func (nopObserver) Skipped()                              {}
func (nopObserver) Frame(uuid.UUID)                       {}
func (nopObserver) Finished(uuid.UUID, int, error)        {}
func (nopObserver) Rendered(string, time.Duration, error) {}
func (nopObserver) OverlayFailed()                        {}

// FrameFunc receives every animation frame. img is owned by the callee.
// It runs on the animation goroutine and must not call Render, Export,
// Replay or Stop on the same Chart.
type FrameFunc func(img *image.RGBA, v anim.Vector) error

// Chart renders and animates radial charts. One Chart runs at most one
// animation at a time. All methods are safe for concurrent use.
type Chart struct {
	geometry   geom.Config
	easings    anim.Easings
	compositor *compose.Compositor
	scheduler  *anim.Scheduler
	observer   Observer

	mu       sync.Mutex
	builders *lru.Cache[geom.Config, *shape.Builder]
	closed   atomic.Bool
}

// New creates a chart. It fails when the geometry or the timing of a
// built-in strategy is invalid.
func New(opts ...Option) (*Chart, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.geometry.Validate(); err != nil {
		return nil, fmt.Errorf("radial: geometry: %w", err)
	}

	obs := o.observer
	if obs == nil {
		obs = nopObserver{}
	}
	strategy := o.strategy
	if strategy == nil {
		if err := o.timing.Validate(); err != nil {
			return nil, fmt.Errorf("radial: timing: %w", err)
		}
		strategy = anim.NewStrategy(o.mode, o.geometry.Categories, o.geometry.Tiers, o.timing)
	}

	compOpts := append(o.compOpts, compose.WithOverlayErrorHandler(func(error) { obs.OverlayFailed() }))
	comp, err := compose.NewCompositor(compOpts...)
	if err != nil {
		return nil, fmt.Errorf("radial: %w", err)
	}
	schedOpts := append([]anim.Option{anim.WithInterval(o.interval), anim.WithObserver(obs)}, o.schedOpts...)

	c := &Chart{
		geometry:   o.geometry,
		easings:    o.easings,
		compositor: comp,
		scheduler:  anim.NewScheduler(strategy, schedOpts...),
		observer:   obs,
		builders:   lru.New[geom.Config, *shape.Builder](maxBuilders, nil),
	}
	register(c)
	return c, nil
}

// SetLogger sets the logger of this chart's scheduler and compositor.
func (c *Chart) SetLogger(l *slog.Logger) {
	propagateLogger(l, c.scheduler, c.compositor)
}

// Geometry returns the radial layout.
func (c *Chart) Geometry() geom.Config { return c.geometry }

// Categories returns the number of slices.
func (c *Chart) Categories() int { return c.geometry.Categories }

// Scene builds the shapes of one frame without rasterizing them.
func (c *Chart) Scene(in Input, cfg RenderConfig, v anim.Vector) (*shape.Scene, error) {
	if err := in.Validate(c.geometry.Categories); err != nil {
		return nil, err
	}
	b, err := c.builder(cfg)
	if err != nil {
		return nil, err
	}
	sc, err := b.Build(in.Scores, in.Benchmarks, in.Averages, cfg.shapeOptions(), v)
	if err != nil {
		return nil, fmt.Errorf("radial: %w", err)
	}
	return sc, nil
}

// Render stops any running animation and draws the static chart.
func (c *Chart) Render(in Input, cfg RenderConfig) (*image.RGBA, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	c.scheduler.Stop()
	return c.render(ModeStatic, in, cfg, anim.Vector{}, nil)
}

// HitTest returns the data under (x, y) on the static chart.
func (c *Chart) HitTest(in Input, cfg RenderConfig, x, y float64) (shape.Meta, bool, error) {
	sc, err := c.Scene(in, cfg, anim.Vector{})
	if err != nil {
		return shape.Meta{}, false, err
	}
	m, ok := hit.Test(sc, x, y)
	return m, ok, nil
}

// RenderPointer draws the static chart with a tooltip for the data under
// (x, y). Without a hit no tooltip is drawn.
func (c *Chart) RenderPointer(in Input, cfg RenderConfig, x, y float64) (*image.RGBA, shape.Meta, bool, error) {
	if c.closed.Load() {
		return nil, shape.Meta{}, false, ErrClosed
	}
	c.scheduler.Stop()

	sc, err := c.Scene(in, cfg, anim.Vector{})
	if err != nil {
		return nil, shape.Meta{}, false, err
	}
	var tip *compose.Tooltip
	m, ok := hit.Test(sc, x, y)
	if ok {
		tip = &compose.Tooltip{X: x, Y: y, Text: hit.Describe(m, cfg.Labels())}
	}
	img, err := c.composite(ModePointer, sc, tip)
	return img, m, ok, err
}

// Animate starts the build-up animation, delivering every frame to frame.
// It returns false without error when an animation is already running;
// that animation continues untouched. Input errors are reported before
// anything starts.
func (c *Chart) Animate(ctx context.Context, in Input, cfg RenderConfig, frame FrameFunc) (bool, error) {
	draw, err := c.drawFunc(in, cfg, frame)
	if err != nil {
		return false, err
	}
	return c.scheduler.Start(ctx, draw), nil
}

// Replay stops any running animation, waits for it, and starts a new one.
func (c *Chart) Replay(ctx context.Context, in Input, cfg RenderConfig, frame FrameFunc) error {
	draw, err := c.drawFunc(in, cfg, frame)
	if err != nil {
		return err
	}
	c.scheduler.Replay(ctx, draw)
	return nil
}

// Stop cancels the running animation and waits for it to exit.
func (c *Chart) Stop() { c.scheduler.Stop() }

// Wait blocks until the current animation ends and returns its error.
func (c *Chart) Wait() error { return c.scheduler.Wait() }

// Running reports whether an animation is in flight.
func (c *Chart) Running() bool { return c.scheduler.Running() }

// Close stops the animation and releases the layer surfaces.
func (c *Chart) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	c.scheduler.Stop()
	unregister(c)
	return c.compositor.Close()
}

func (c *Chart) drawFunc(in Input, cfg RenderConfig, frame FrameFunc) (anim.DrawFunc, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	if err := in.Validate(c.geometry.Categories); err != nil {
		return nil, err
	}
	if _, err := c.builder(cfg); err != nil {
		return nil, err
	}
	return func(v anim.Vector) error {
		img, err := c.render(ModeAnimated, in, cfg, v, nil)
		if err != nil {
			return err
		}
		if frame == nil {
			return nil
		}
		return frame(img, v)
	}, nil
}

func (c *Chart) render(mode string, in Input, cfg RenderConfig, v anim.Vector, tip *compose.Tooltip) (*image.RGBA, error) {
	sc, err := c.Scene(in, cfg, v)
	if err != nil {
		return nil, err
	}
	return c.composite(mode, sc, tip)
}

func (c *Chart) composite(mode string, sc *shape.Scene, tip *compose.Tooltip) (*image.RGBA, error) {
	start := time.Now()
	img, err := c.compositor.Render(sc, tip)
	c.observer.Rendered(mode, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("radial: %s render: %w", mode, err)
	}
	return img, nil
}

// builder returns the shape builder for the resolution in cfg.
func (c *Chart) builder(cfg RenderConfig) (*shape.Builder, error) {
	g := cfg.geometry(c.geometry)

	c.mu.Lock()
	defer c.mu.Unlock()
	if b, ok := c.builders.Get(g); ok {
		return b, nil
	}
	k, err := geom.NewKernel(g)
	if err != nil {
		return nil, fmt.Errorf("radial: geometry: %w", err)
	}
	b := shape.NewBuilder(k, c.easings)
	c.builders.Add(g, b)
	return b, nil
}
