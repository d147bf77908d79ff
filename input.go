package radial

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/radial/geom"
)

// MaxValue is the top of the metric scale.
const MaxValue = geom.MaxValue

// Input is the data of one chart: one value per category for each series.
// Values must already lie in [0, MaxValue]; use ClampValue or ParseValue
// at the boundary where raw input arrives.
type Input struct {
	Scores     []float64
	Benchmarks []float64
	Averages   []float64
}

// Validate checks that every series has n values inside [0, MaxValue].
// It rejects rather than repairs: geometry is only ever built from
// validated input.
func (in Input) Validate(n int) error {
	series := []struct {
		name   string
		values []float64
	}{
		{"scores", in.Scores},
		{"benchmarks", in.Benchmarks},
		{"averages", in.Averages},
	}
	for _, s := range series {
		if len(s.values) != n {
			return fmt.Errorf("%w: %s has %d values, want %d", ErrLengthMismatch, s.name, len(s.values), n)
		}
		for i, v := range s.values {
			if !(v >= 0 && v <= MaxValue) {
				return fmt.Errorf("%w: %s[%d] = %v", ErrOutOfRange, s.name, i, v)
			}
		}
	}
	return nil
}

// Clamped returns a copy of in with every value passed through ClampValue.
func (in Input) Clamped() Input {
	return Input{
		Scores:     clampAll(in.Scores),
		Benchmarks: clampAll(in.Benchmarks),
		Averages:   clampAll(in.Averages),
	}
}

// ClampValue limits v to [0, MaxValue]. NaN becomes 0.
func ClampValue(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > MaxValue:
		return MaxValue
	}
	return v
}

// ParseValue parses a raw metric. Non-numeric input yields 0; numeric
// input is clamped.
func ParseValue(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return ClampValue(v)
}

// ParseSeries parses a comma separated list with ParseValue.
func ParseSeries(s string) []float64 {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		out[i] = ParseValue(p)
	}
	return out
}

func clampAll(values []float64) []float64 {
	if values == nil {
		return nil
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = ClampValue(v)
	}
	return out
}
