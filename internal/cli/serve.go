// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/gogpu/radial"
	"github.com/gogpu/radial/geom"
	"github.com/gogpu/radial/hit"
	"github.com/gogpu/radial/internal/metrics"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
	maxServeSize      = 4096
	maxExportScale    = 4
)

// serveCommand serves charts over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve charts, hit tests and metrics over HTTP",
		Long: `Serve exposes:

  GET /chart.png           static chart; with x and y the tooltip is drawn
  GET /export/{variant}.png export variant at ?scale
  GET /hit                 data under ?x&y as JSON
  GET /metrics             Prometheus metrics
  GET /healthz             liveness

Data is passed as ?scores=..&benchmarks=..&averages=.. comma lists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				c.cfg.Addr = addr
			}
			return c.runServe(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

func (c *CLI) runServe(ctx context.Context) error {
	logger := loggerFromContext(ctx)

	m, err := metrics.NewManager()
	if err != nil {
		return err
	}
	chart, err := c.newChart(radial.WithObserver(m))
	if err != nil {
		return err
	}
	defer chart.Close()

	s := &server{chart: chart, base: c.cfg.RenderConfig(), scale: c.cfg.ExportScale, metrics: m, logger: logger}
	srv := &http.Server{
		Addr:              c.cfg.Addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}

// server is the HTTP face of one chart.
type server struct {
	chart   *radial.Chart
	base    radial.RenderConfig
	scale   float64
	metrics *metrics.Manager
	logger  *log.Logger
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Get("/chart.png", s.handleChart)
	r.Get("/export/{variant}.png", s.handleExport)
	r.Get("/hit", s.handleHit)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	return r
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"took", time.Since(start).Round(time.Microsecond),
			"id", middleware.GetReqID(r.Context()),
		)
	})
}

// request parses the data and render overrides of r.
func (s *server) request(r *http.Request) (radial.Input, radial.RenderConfig, error) {
	q := r.URL.Query()
	in := seriesInput(q.Get("scores"), q.Get("benchmarks"), q.Get("averages"))
	cfg := s.base
	if v := q.Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > maxServeSize {
			return in, cfg, fmt.Errorf("size must be in [1, %d]", maxServeSize)
		}
		cfg.DisplaySize = n
	}
	return in, cfg, nil
}

func (s *server) handleChart(w http.ResponseWriter, r *http.Request) {
	in, cfg, err := s.request(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	x, y, ok, err := pointer(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var img *image.RGBA
	if ok {
		img, _, _, err = s.chart.RenderPointer(in, cfg, x, y)
	} else {
		img, err = s.chart.Render(in, cfg)
	}
	s.writePNG(w, img, err)
}

func (s *server) handleExport(w http.ResponseWriter, r *http.Request) {
	v, err := radial.ParseVariant(chi.URLParam(r, "variant"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	in, cfg, err := s.request(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	scale := s.scale
	if q := r.URL.Query().Get("scale"); q != "" {
		scale, err = strconv.ParseFloat(q, 64)
		if err != nil || scale <= 0 || scale > maxExportScale {
			http.Error(w, fmt.Sprintf("scale must be in (0, %d]", maxExportScale), http.StatusBadRequest)
			return
		}
	}
	if edge := float64(cfg.DisplaySize) * scale; edge > geom.MaxCanvasPixels {
		http.Error(w, fmt.Sprintf("size*scale = %v exceeds %d pixels", edge, geom.MaxCanvasPixels), http.StatusBadRequest)
		return
	}
	img, err := s.chart.Export(in, cfg, v, scale)
	s.writePNG(w, img, err)
}

// hitResponse is the JSON body of /hit.
type hitResponse struct {
	Hit      bool    `json:"hit"`
	Category int     `json:"category"`
	Tier     int     `json:"tier"`
	Metric   string  `json:"metric,omitempty"`
	Value    float64 `json:"value"`
	Text     string  `json:"text,omitempty"`
}

func (s *server) handleHit(w http.ResponseWriter, r *http.Request) {
	in, cfg, err := s.request(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	x, y, ok, err := pointer(r)
	if err != nil || !ok {
		http.Error(w, "x and y are required", http.StatusBadRequest)
		return
	}
	m, found, err := s.chart.HitTest(in, cfg, x, y)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	resp := hitResponse{Hit: found}
	if found {
		resp.Category = m.Category
		resp.Tier = m.Tier
		resp.Metric = m.Metric.String()
		resp.Value = m.Value
		resp.Text = hit.Describe(m, cfg.Labels())
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Warn("write hit response", "err", err)
	}
}

func (s *server) writePNG(w http.ResponseWriter, img image.Image, err error) {
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if err := radial.EncodePNG(w, img); err != nil {
		s.logger.Warn("write png", "err", err)
	}
}

// pointer parses ?x&y. ok is false when both are absent.
func pointer(r *http.Request) (x, y float64, ok bool, err error) {
	q := r.URL.Query()
	xs, ys := q.Get("x"), q.Get("y")
	if xs == "" && ys == "" {
		return 0, 0, false, nil
	}
	if x, err = strconv.ParseFloat(xs, 64); err != nil {
		return 0, 0, false, fmt.Errorf("bad x %q", xs)
	}
	if y, err = strconv.ParseFloat(ys, 64); err != nil {
		return 0, 0, false, fmt.Errorf("bad y %q", ys)
	}
	return x, y, true, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, radial.ErrLengthMismatch), errors.Is(err, radial.ErrOutOfRange),
		errors.Is(err, geom.ErrCanvasTooLarge):
		return http.StatusBadRequest
	case errors.Is(err, radial.ErrUnknownVariant):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
