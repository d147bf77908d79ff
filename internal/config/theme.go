// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gogpu/gg"

	"github.com/gogpu/radial/compose"
)

// Theme is the TOML form of a palette. Colors are hex strings (#RGB,
// #RGBA, #RRGGBB or #RRGGBBAA); empty fields keep the default color.
//
//	canvas = "#0B1120"
//	ring = "#1F2937"
//	scores = ["#60A5FA", "#34D399"]
type Theme struct {
	Canvas        string   `toml:"canvas"`
	Ring          string   `toml:"ring"`
	Benchmark     string   `toml:"benchmark"`
	Scores        []string `toml:"scores"`
	Average       string   `toml:"average"`
	AverageBody   string   `toml:"average_body"`
	AverageStroke string   `toml:"average_stroke"`
	Value         string   `toml:"value"`
	Category      string   `toml:"category"`
	TooltipFill   string   `toml:"tooltip_fill"`
	TooltipText   string   `toml:"tooltip_text"`
}

// LoadTheme decodes a TOML theme file over the default palette.
func LoadTheme(path string) (compose.Palette, error) {
	var t Theme
	md, err := toml.DecodeFile(path, &t)
	if err != nil {
		return compose.Palette{}, fmt.Errorf("%w: %s: %w", ErrInvalidTheme, path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return compose.Palette{}, fmt.Errorf("%s: %w", path, err)
	}
	return t.Palette()
}

// ParseTheme decodes TOML theme text over the default palette.
func ParseTheme(data string) (compose.Palette, error) {
	var t Theme
	md, err := toml.Decode(data, &t)
	if err != nil {
		return compose.Palette{}, fmt.Errorf("%w: %w", ErrInvalidTheme, err)
	}
	if err := checkUndecoded(md); err != nil {
		return compose.Palette{}, err
	}
	return t.Palette()
}

func checkUndecoded(md toml.MetaData) error {
	if keys := md.Undecoded(); len(keys) > 0 {
		return fmt.Errorf("%w: unknown key %q", ErrInvalidTheme, keys[0].String())
	}
	return nil
}

// Palette applies t to the default palette.
func (t Theme) Palette() (compose.Palette, error) {
	p := compose.DefaultPalette()
	fields := []struct {
		name string
		hex  string
		dst  *gg.RGBA
	}{
		{"canvas", t.Canvas, &p.Canvas},
		{"ring", t.Ring, &p.Ring},
		{"benchmark", t.Benchmark, &p.Benchmark},
		{"average", t.Average, &p.Average},
		{"average_body", t.AverageBody, &p.AverageBody},
		{"average_stroke", t.AverageStroke, &p.AverageStroke},
		{"value", t.Value, &p.Value},
		{"category", t.Category, &p.Category},
		{"tooltip_fill", t.TooltipFill, &p.TooltipFill},
		{"tooltip_text", t.TooltipText, &p.TooltipText},
	}
	for _, f := range fields {
		if f.hex == "" {
			continue
		}
		c, err := parseHex(f.hex)
		if err != nil {
			return compose.Palette{}, fmt.Errorf("%w: %s: %w", ErrInvalidTheme, f.name, err)
		}
		*f.dst = c
	}
	if len(t.Scores) > 0 {
		p.Scores = make([]gg.RGBA, len(t.Scores))
		for i, h := range t.Scores {
			c, err := parseHex(h)
			if err != nil {
				return compose.Palette{}, fmt.Errorf("%w: scores[%d]: %w", ErrInvalidTheme, i, err)
			}
			p.Scores[i] = c
		}
	}
	return p, nil
}

// parseHex checks the digits before handing off to gg.Hex, which maps
// malformed input to opaque black.
func parseHex(s string) (gg.RGBA, error) {
	h := strings.TrimPrefix(s, "#")
	switch len(h) {
	case 3, 4, 6, 8:
	default:
		return gg.RGBA{}, fmt.Errorf("color %q: want 3, 4, 6 or 8 hex digits", s)
	}
	for _, r := range h {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return gg.RGBA{}, fmt.Errorf("color %q: bad digit %q", s, r)
		}
	}
	return gg.Hex(h), nil
}
