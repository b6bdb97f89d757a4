// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchstat estimates performance statistics from repeated
// benchmark measurements and detects changes between two sets of
// measurements.
//
// Point estimates are paired with bootstrapped sampling distributions
// to produce percentile confidence intervals. Two samples are compared
// with a t-test whose null distribution is bootstrapped from the
// pooled samples, together with bootstrapped estimates of the
// relative change in their means and medians.
package benchstat

import (
	"math"
	"slices"

	"github.com/aclements/go-moremath/stats"
)

// madScale makes the median absolute deviation a consistent
// estimator of the standard deviation of normally distributed data.
const madScale = 1.4826

// A Sample is an immutable sequence of measurements.
//
// Derived statistics are computed on demand and never cached.
type Sample struct {
	xs []float64
}

// NewSample returns a Sample of a copy of xs. It fails with
// ErrInvalidInput if xs is empty or contains NaN.
func NewSample(xs []float64) (Sample, error) {
	if len(xs) < 1 {
		return Sample{}, statErr("sample", "", ErrInvalidInput, "need at least 1 measurement")
	}
	for i, x := range xs {
		if math.IsNaN(x) {
			return Sample{}, statErr("sample", "", ErrInvalidInput, "measurement %d is NaN", i)
		}
	}
	return Sample{append([]float64(nil), xs...)}, nil
}

// MustSample is like NewSample but panics on error. It is intended
// for literal samples in tests and examples.
func MustSample(xs ...float64) Sample {
	s, err := NewSample(xs)
	if err != nil {
		panic(err)
	}
	return s
}

// sampleOf wraps xs without copying or checking it. The caller must
// not modify xs while the Sample is in use.
func sampleOf(xs []float64) Sample {
	return Sample{xs}
}

// Len returns the number of measurements in s.
func (s Sample) Len() int {
	return len(s.xs)
}

// At returns the i'th measurement.
func (s Sample) At(i int) float64 {
	return s.xs[i]
}

// Values returns a copy of the measurements in s.
func (s Sample) Values() []float64 {
	return append([]float64(nil), s.xs...)
}

// Mean returns the arithmetic mean of s.
func (s Sample) Mean() float64 {
	return stats.Mean(s.xs)
}

// Variance returns the sample variance of s, which is 0 if s has a
// single measurement.
func (s Sample) Variance() float64 {
	return stats.Variance(s.xs)
}

// StdDev returns the sample standard deviation of s.
func (s Sample) StdDev() float64 {
	return stats.StdDev(s.xs)
}

// Bounds returns the smallest and largest measurements in s.
func (s Sample) Bounds() (min, max float64) {
	return stats.Bounds(s.xs)
}

// Percentile returns the p'th percentile of s, for p in [0, 100].
func (s Sample) Percentile(p float64) float64 {
	return s.Percentiles().At(p)
}

// Median returns the median of s.
func (s Sample) Median() float64 {
	return s.Percentiles().Median()
}

// MedianAbsDev returns the median absolute deviation of s from
// median, scaled to estimate the standard deviation of normal data.
// If median is NaN, it uses the median of s.
func (s Sample) MedianAbsDev(median float64) float64 {
	if math.IsNaN(median) {
		median = s.Median()
	}
	devs := make([]float64, len(s.xs))
	for i, x := range s.xs {
		devs[i] = math.Abs(x - median)
	}
	slices.Sort(devs)
	return Percentiles{devs}.Median() * madScale
}

// Percentiles returns a sorted snapshot of s for repeated percentile
// queries.
func (s Sample) Percentiles() Percentiles {
	sorted := append([]float64(nil), s.xs...)
	slices.Sort(sorted)
	return Percentiles{sorted}
}

// Percentiles answers percentile queries over a sorted copy of a
// Sample.
type Percentiles struct {
	sorted []float64
}

// At returns the p'th percentile, for p in [0, 100]. It interpolates
// linearly between the two closest ranks, where the rank of p is
// p/100 * (n-1).
func (p Percentiles) At(pct float64) float64 {
	xs := p.sorted
	if pct <= 0 {
		return xs[0]
	}
	if pct >= 100 {
		return xs[len(xs)-1]
	}
	rank := pct / 100 * float64(len(xs)-1)
	lo := math.Floor(rank)
	i := int(lo)
	if i+1 >= len(xs) {
		return xs[len(xs)-1]
	}
	return xs[i] + (rank-lo)*(xs[i+1]-xs[i])
}

// Median returns the 50th percentile.
func (p Percentiles) Median() float64 {
	return p.At(50)
}

// Quartiles returns the 25th, 50th, and 75th percentiles.
func (p Percentiles) Quartiles() (q1, q2, q3 float64) {
	return p.At(25), p.At(50), p.At(75)
}

// IQR returns the interquartile range.
func (p Percentiles) IQR() float64 {
	return p.At(75) - p.At(25)
}
