package radial

import (
	"time"

	"github.com/gogpu/gg/text"

	"github.com/gogpu/radial/anim"
	"github.com/gogpu/radial/compose"
	"github.com/gogpu/radial/geom"
)

// Option configures a Chart during creation.
//
// Example:
//
//	c, err := radial.New(
//	    radial.WithMode(anim.ModeStaggered),
//	    radial.WithPalette(theme),
//	)
type Option func(*options)

type options struct {
	geometry  geom.Config
	easings   anim.Easings
	strategy  anim.Strategy
	mode      anim.Mode
	timing    anim.Timing
	interval  time.Duration
	schedOpts []anim.Option
	compOpts  []compose.Option
	observer  Observer
}

func defaultOptions() options {
	return options{
		geometry: geom.DefaultConfig(),
		easings:  anim.DefaultEasings(),
		mode:     anim.ModeTiered,
		timing:   anim.DefaultTiming(),
		interval: anim.DefaultInterval,
	}
}

// WithGeometry replaces the radial layout. It is validated by New.
func WithGeometry(cfg geom.Config) Option {
	return func(o *options) { o.geometry = cfg }
}

// WithEasings sets the per-series easing curves.
func WithEasings(e anim.Easings) Option {
	return func(o *options) { o.easings = e }
}

// WithMode selects a built-in progress strategy.
func WithMode(m anim.Mode) Option {
	return func(o *options) { o.mode = m }
}

// WithTiming sets the parameters of the built-in strategies. Fields are
// used as given; start from anim.DefaultTiming to change one of them.
func WithTiming(t anim.Timing) Option {
	return func(o *options) { o.timing = t }
}

// WithStrategy sets a custom progress strategy, overriding WithMode.
func WithStrategy(s anim.Strategy) Option {
	return func(o *options) { o.strategy = s }
}

// WithFrameInterval sets the animation tick interval.
func WithFrameInterval(d time.Duration) Option {
	return func(o *options) { o.interval = d }
}

// WithSchedulerOptions passes options to the animation scheduler, for
// example a manual clock in tests.
func WithSchedulerOptions(opts ...anim.Option) Option {
	return func(o *options) { o.schedOpts = append(o.schedOpts, opts...) }
}

// WithPalette sets the layer colors.
func WithPalette(p compose.Palette) Option {
	return func(o *options) { o.compOpts = append(o.compOpts, compose.WithPalette(p)) }
}

// WithFont sets the label font.
func WithFont(src *text.FontSource) Option {
	return func(o *options) { o.compOpts = append(o.compOpts, compose.WithFont(src)) }
}

// WithOverlay sets an image composited above the labels. A missing or
// unreadable file is logged and skipped.
func WithOverlay(ov compose.Overlay) Option {
	return func(o *options) { o.compOpts = append(o.compOpts, compose.WithOverlay(ov)) }
}

// WithObserver registers render and animation instrumentation.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}
