// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"bytes"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/gogpu/radial"
	"github.com/gogpu/radial/internal/metrics"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	m, err := metrics.NewManager()
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	chart, err := radial.New(radial.WithObserver(m))
	if err != nil {
		t.Fatalf("radial.New() error = %v", err)
	}
	t.Cleanup(func() { _ = chart.Close() })

	base := radial.DefaultRenderConfig()
	base.DisplaySize = 200
	s := &server{
		chart:   chart,
		base:    base,
		scale:   radial.DefaultExportScale,
		metrics: m,
		logger:  newLogger(io.Discard, log.DebugLevel),
	}
	ts := httptest.NewServer(s.routes())
	t.Cleanup(ts.Close)
	return ts
}

func get(ts *httptest.Server, path string) (*http.Response, []byte) {
	resp, err := http.Get(ts.URL + path)
	So(err, ShouldBeNil)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	So(err, ShouldBeNil)
	return resp, body
}

func pngWidth(body []byte) int {
	img, err := png.Decode(bytes.NewReader(body))
	So(err, ShouldBeNil)
	return img.Bounds().Dx()
}

func TestServeRoutes(t *testing.T) {
	Convey("Given a running chart server", t, func() {
		ts := newTestServer(t)
		data := "scores=" + testScores

		Convey("When /healthz is requested", func() {
			resp, body := get(ts, "/healthz")

			Convey("Then it answers ok", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(string(body), ShouldEqual, "ok\n")
			})
		})

		Convey("When the chart is requested", func() {
			resp, body := get(ts, "/chart.png?size=120&"+data)

			Convey("Then a PNG of the requested size is returned", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(resp.Header.Get("Content-Type"), ShouldEqual, "image/png")
				So(pngWidth(body), ShouldEqual, 120)
			})
		})

		Convey("When the chart is requested with a pointer", func() {
			resp, body := get(ts, "/chart.png?x=109.5&y=83.5&"+data)

			Convey("Then the tooltip render is returned", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(pngWidth(body), ShouldEqual, 200)
			})
		})

		Convey("When the request is malformed", func() {
			badSize, _ := get(ts, "/chart.png?size=abc")
			badX, _ := get(ts, "/chart.png?x=left&y=1")
			mismatch, _ := get(ts, "/chart.png?scores=1,2&benchmarks=1,2,3")

			Convey("Then it is rejected", func() {
				So(badSize.StatusCode, ShouldEqual, http.StatusBadRequest)
				So(badX.StatusCode, ShouldEqual, http.StatusBadRequest)
				So(mismatch.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When an export variant is requested", func() {
			resp, body := get(ts, "/export/scores+benchmark.png?size=100&"+data)
			unknown, _ := get(ts, "/export/everything.png")
			badScale, _ := get(ts, "/export/scores.png?scale=9")

			Convey("Then it is rendered at the export scale", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(pngWidth(body), ShouldEqual, 200)
				So(unknown.StatusCode, ShouldEqual, http.StatusNotFound)
				So(badScale.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When an export would exceed the canvas limit", func() {
			huge, body := get(ts, "/export/scores.png?size=4096&scale=4&"+data)
			edge, _ := get(ts, "/export/scores.png?size=1025&scale=4&"+data)

			Convey("Then it is rejected before rendering", func() {
				So(huge.StatusCode, ShouldEqual, http.StatusBadRequest)
				So(string(body), ShouldContainSubstring, "exceeds 4096 pixels")
				So(edge.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When a hit test is requested over a score", func() {
			resp, body := get(ts, "/hit?x=109.5&y=83.5&"+data)
			var hr hitResponse
			So(json.Unmarshal(body, &hr), ShouldBeNil)

			Convey("Then the data under the pointer is described", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(hr.Hit, ShouldBeTrue)
				So(hr.Category, ShouldEqual, 0)
				So(hr.Tier, ShouldEqual, 0)
				So(hr.Metric, ShouldEqual, "score")
				So(hr.Value, ShouldEqual, 4.0)
				So(hr.Text, ShouldStartWith, "Category 1")
			})
		})

		Convey("When a hit test misses or lacks a pointer", func() {
			_, body := get(ts, "/hit?x=1&y=1&"+data)
			noPointer, _ := get(ts, "/hit?"+data)

			Convey("Then a miss is reported and a missing pointer rejected", func() {
				So(strings.TrimSpace(string(body)), ShouldEqual, `{"hit":false,"category":0,"tier":0,"value":0}`)
				So(noPointer.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When metrics are scraped after a render", func() {
			get(ts, "/chart.png?"+data)
			resp, body := get(ts, "/metrics")

			Convey("Then the render counters are exposed", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(string(body), ShouldContainSubstring, `radial_chart_frames_rendered_total{mode="static",outcome="ok"}`)
			})
		})
	})
}
