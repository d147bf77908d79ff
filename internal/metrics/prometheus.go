// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package metrics exports chart render and animation events to Prometheus.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values.
const (
	outcomeOK       = "ok"
	outcomeError    = "error"
	outcomeCanceled = "canceled"
)

// DefaultBuckets covers software renders from a thumbnail to a 4x export.
var DefaultBuckets = []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}

// Manager owns the chart collectors. It satisfies radial.Observer so a
// chart reports into it directly.
type Manager struct {
	namespace   string
	subsystem   string
	buckets     []float64
	constLabels map[string]string
	registry    *prometheus.Registry

	framesRendered   *prometheus.CounterVec
	renderDuration   *prometheus.HistogramVec
	animStarted      prometheus.Counter
	animSkipped      prometheus.Counter
	animFinished     *prometheus.CounterVec
	animFrames       prometheus.Counter
	animFramesPerRun prometheus.Histogram
	animRunning      prometheus.Gauge
	overlayFailures  prometheus.Counter
}

// NewManager creates the collectors and registers them. By default a
// fresh registry carrying the Go and process collectors is used.
func NewManager(opts ...Option) (*Manager, error) {
	m := &Manager{
		namespace: "radial",
		subsystem: "chart",
		buckets:   DefaultBuckets,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	m.initializeMetrics()
	if err := m.register(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manager) initializeMetrics() {
	counter := func(name, help string) prometheus.CounterOpts {
		return prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: m.constLabels,
		}
	}

	m.framesRendered = prometheus.NewCounterVec(
		counter("frames_rendered_total", "Composited frames by render mode and outcome."),
		[]string{"mode", "outcome"},
	)
	m.renderDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "render_duration_seconds",
		Help:        "Time to build and composite one frame.",
		Buckets:     m.buckets,
		ConstLabels: m.constLabels,
	}, []string{"mode"})
	m.animStarted = prometheus.NewCounter(counter("animations_started_total", "Animations started."))
	m.animSkipped = prometheus.NewCounter(counter("animations_skipped_total", "Start calls ignored because an animation was running."))
	m.animFinished = prometheus.NewCounterVec(
		counter("animations_finished_total", "Animations finished by outcome."),
		[]string{"outcome"},
	)
	m.animFrames = prometheus.NewCounter(counter("animation_frames_total", "Frames drawn by animation loops."))
	m.animFramesPerRun = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "animation_frames",
		Help:        "Frames drawn per finished animation.",
		Buckets:     prometheus.LinearBuckets(0, 15, 10),
		ConstLabels: m.constLabels,
	})
	m.animRunning = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "animations_running",
		Help:        "Animations currently in flight.",
		ConstLabels: m.constLabels,
	})
	m.overlayFailures = prometheus.NewCounter(counter("overlay_failures_total", "Overlay images that could not be loaded."))
}

func (m *Manager) register() error {
	for _, c := range []prometheus.Collector{
		m.framesRendered, m.renderDuration,
		m.animStarted, m.animSkipped, m.animFinished,
		m.animFrames, m.animFramesPerRun, m.animRunning,
		m.overlayFailures,
	} {
		if err := m.registry.Register(c); err != nil {
			return fmt.Errorf("%w: %w", ErrRegister, err)
		}
	}
	return nil
}

// Registry returns the registry the collectors live on.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Rendered records one composited frame.
func (m *Manager) Rendered(mode string, d time.Duration, err error) {
	m.framesRendered.WithLabelValues(mode, outcome(err)).Inc()
	if err == nil {
		m.renderDuration.WithLabelValues(mode).Observe(d.Seconds())
	}
}

// OverlayFailed records an overlay that could not be loaded.
func (m *Manager) OverlayFailed() { m.overlayFailures.Inc() }

// Started records the start of an animation.
func (m *Manager) Started(uuid.UUID) {
	m.animStarted.Inc()
	m.animRunning.Inc()
}

// Skipped records a Start call that found an animation running.
func (m *Manager) Skipped() { m.animSkipped.Inc() }

// Frame records one animation frame.
func (m *Manager) Frame(uuid.UUID) { m.animFrames.Inc() }

// Finished records the end of an animation.
func (m *Manager) Finished(_ uuid.UUID, frames int, err error) {
	m.animRunning.Dec()
	m.animFinished.WithLabelValues(outcome(err)).Inc()
	m.animFramesPerRun.Observe(float64(frames))
}

func outcome(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, context.Canceled):
		return outcomeCanceled
	default:
		return outcomeError
	}
}
