// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchstat

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Data is a sequence of paired measurements, typically iteration
// counts (x) and the total elapsed time of each batch (y).
type Data struct {
	x, y []float64
}

// NewData returns Data over copies of x and y. It fails with
// ErrInvalidInput if x and y are empty or differ in length.
func NewData(x, y []float64) (*Data, error) {
	if len(x) != len(y) {
		return nil, statErr("data", "", ErrInvalidInput, "%d x values but %d y values", len(x), len(y))
	}
	if len(x) < 1 {
		return nil, statErr("data", "", ErrInvalidInput, "no measurements")
	}
	return &Data{
		x: append([]float64(nil), x...),
		y: append([]float64(nil), y...),
	}, nil
}

// Len returns the number of pairs in d.
func (d *Data) Len() int {
	return len(d.x)
}

// X returns a copy of the x values.
func (d *Data) X() []float64 {
	return append([]float64(nil), d.x...)
}

// Y returns a copy of the y values.
func (d *Data) Y() []float64 {
	return append([]float64(nil), d.y...)
}

// Ratios returns y[i]/x[i] for every pair, such as the per-iteration
// time of each batch.
func (d *Data) Ratios() []float64 {
	out := make([]float64, len(d.x))
	for i := range d.x {
		out[i] = d.y[i] / d.x[i]
	}
	return out
}

// FitSlope fits the line y = slope * x through the origin that
// minimizes the squared error, so slope = Σ(x·y) / Σ(x²). It fails with
// ErrDegenerateInput if every x is 0.
func FitSlope(d *Data) (float64, error) {
	degenerate := true
	for _, x := range d.x {
		if x != 0 {
			degenerate = false
			break
		}
	}
	if degenerate {
		return 0, statErr("fit", Slope.String(), ErrDegenerateInput, "all x values are 0")
	}
	_, slope := stat.LinearRegression(d.x, d.y, nil, true)
	return slope, nil
}

// RSquared returns the coefficient of determination of the line
// y = slope * x over d. It accepts any slope, such as the bounds of the
// slope's confidence interval.
func (d *Data) RSquared(slope float64) float64 {
	return stat.RSquared(d.x, d.y, nil, 0, slope)
}

func slopeStat(d *Data) (Tuple, error) {
	var t Tuple
	slope, err := FitSlope(d)
	if err != nil {
		return t, err
	}
	t.Set(Slope, slope)
	return t, nil
}

// FitRegression fits the slope of d and bootstraps its distribution by
// resampling whole (x, y) pairs and refitting each resample. Every x
// must be non-zero, since a resample of only zero-x pairs has no
// slope; otherwise it fails with ErrDegenerateInput.
func FitRegression(d *Data, cfg Config) (*Distribution, Estimate, error) {
	for i, x := range d.x {
		if x == 0 {
			return nil, Estimate{}, statErr("fit", Slope.String(), ErrDegenerateInput, "x[%d] is 0", i)
		}
	}
	point, err := FitSlope(d)
	if err != nil {
		return nil, Estimate{}, err
	}
	dists, err := cfg.Bootstrap().Bivariate(d, slopeStat)
	if err != nil {
		return nil, Estimate{}, err
	}
	est, err := NewEstimate(point, dists.Slope, cfg.ConfidenceLevel)
	if err != nil {
		return nil, Estimate{}, fmt.Errorf("slope: %w", err)
	}
	return dists.Slope, est, nil
}
