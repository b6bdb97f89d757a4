// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchstat

import (
	"math"
	"slices"

	"github.com/aclements/go-moremath/stats"
)

// A Distribution is the bootstrapped sampling distribution of one
// statistic, with one value per resample.
//
// The order of values carries no meaning. A Distribution sorts its
// values the first time it needs order statistics.
type Distribution struct {
	values []float64
	sorted bool
}

// NewDistribution returns a Distribution that takes ownership of
// values.
func NewDistribution(values []float64) *Distribution {
	return &Distribution{values: values}
}

// Len returns the number of values in d.
func (d *Distribution) Len() int {
	return len(d.values)
}

// Values returns a copy of d's values.
func (d *Distribution) Values() []float64 {
	return append([]float64(nil), d.values...)
}

func (d *Distribution) sort() {
	if !d.sorted {
		slices.Sort(d.values)
		d.sorted = true
	}
}

// ConfidenceInterval returns the bounds of the percentile-method
// confidence interval at the given level: the values at ranks
// floor((1-level)/2 * N) and ceil((1 - (1-level)/2) * N) of the
// sorted distribution. The upper rank is clamped to N-1.
func (d *Distribution) ConfidenceInterval(level float64) (lo, hi float64, err error) {
	if !(level > 0 && level < 1) {
		return 0, 0, statErr("confidence interval", "", ErrInvalidInput, "confidence level %v not in (0, 1)", level)
	}
	n := len(d.values)
	if n < 2 {
		return 0, 0, statErr("confidence interval", "", ErrInsufficientResamples, "%d resamples", n)
	}
	d.sort()
	tail := (1 - level) / 2
	i := int(math.Floor(tail * float64(n)))
	j := int(math.Ceil((1 - tail) * float64(n)))
	if j > n-1 {
		j = n - 1
	}
	return d.values[i], d.values[j], nil
}

// StdErr returns the standard error of the statistic, which is the
// sample standard deviation of the distribution.
func (d *Distribution) StdErr() float64 {
	return stats.StdDev(d.values)
}

// Mean returns the mean of the distribution.
func (d *Distribution) Mean() float64 {
	return stats.Mean(d.values)
}

// Median returns the median of the distribution.
func (d *Distribution) Median() float64 {
	d.sort()
	return Percentiles{d.values}.Median()
}

// Distributions holds one Distribution per Statistic. A nil field
// means that statistic was not bootstrapped.
type Distributions struct {
	Mean         *Distribution
	Median       *Distribution
	StdDev       *Distribution
	MedianAbsDev *Distribution
	Slope        *Distribution
}

// Get returns the distribution of statistic s, or nil.
func (d *Distributions) Get(s Statistic) *Distribution {
	switch s {
	case Mean:
		return d.Mean
	case Median:
		return d.Median
	case StdDev:
		return d.StdDev
	case MedianAbsDev:
		return d.MedianAbsDev
	case Slope:
		return d.Slope
	}
	return nil
}

// Set stores dist as the distribution of statistic s.
func (d *Distributions) Set(s Statistic, dist *Distribution) {
	switch s {
	case Mean:
		d.Mean = dist
	case Median:
		d.Median = dist
	case StdDev:
		d.StdDev = dist
	case MedianAbsDev:
		d.MedianAbsDev = dist
	case Slope:
		d.Slope = dist
	}
}
