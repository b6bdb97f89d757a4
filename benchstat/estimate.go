// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchstat

// A ConfidenceInterval bounds a statistic at a confidence level.
type ConfidenceInterval struct {
	ConfidenceLevel float64 `json:"confidence_level"`
	LowerBound      float64 `json:"lower_bound"`
	UpperBound      float64 `json:"upper_bound"`
}

// Contains reports whether x lies within the interval.
func (ci ConfidenceInterval) Contains(x float64) bool {
	return ci.LowerBound <= x && x <= ci.UpperBound
}

// Width returns UpperBound - LowerBound.
func (ci ConfidenceInterval) Width() float64 {
	return ci.UpperBound - ci.LowerBound
}

// An Estimate is a point estimate of a statistic together with its
// bootstrapped standard error and confidence interval.
type Estimate struct {
	ConfidenceInterval ConfidenceInterval `json:"confidence_interval"`
	PointEstimate      float64            `json:"point_estimate"`
	StandardError      float64            `json:"standard_error"`
}

// NewEstimate pairs point with the confidence interval and standard
// error of dist.
func NewEstimate(point float64, dist *Distribution, level float64) (Estimate, error) {
	lo, hi, err := dist.ConfidenceInterval(level)
	if err != nil {
		return Estimate{}, err
	}
	return Estimate{
		ConfidenceInterval: ConfidenceInterval{
			ConfidenceLevel: level,
			LowerBound:      lo,
			UpperBound:      hi,
		},
		PointEstimate: point,
		StandardError: dist.StdErr(),
	}, nil
}

// Contains reports whether x lies within e's confidence interval.
func (e Estimate) Contains(x float64) bool {
	return e.ConfidenceInterval.Contains(x)
}

// Estimates holds one Estimate per Statistic. A nil field means that
// statistic was not estimated.
type Estimates struct {
	Mean         *Estimate `json:"mean,omitempty"`
	Median       *Estimate `json:"median,omitempty"`
	StdDev       *Estimate `json:"std_dev,omitempty"`
	MedianAbsDev *Estimate `json:"median_abs_dev,omitempty"`
	Slope        *Estimate `json:"slope,omitempty"`
}

// Get returns the estimate of statistic s, or nil.
func (e *Estimates) Get(s Statistic) *Estimate {
	switch s {
	case Mean:
		return e.Mean
	case Median:
		return e.Median
	case StdDev:
		return e.StdDev
	case MedianAbsDev:
		return e.MedianAbsDev
	case Slope:
		return e.Slope
	}
	return nil
}

// Set stores est as the estimate of statistic s.
func (e *Estimates) Set(s Statistic, est *Estimate) {
	switch s {
	case Mean:
		e.Mean = est
	case Median:
		e.Median = est
	case StdDev:
		e.StdDev = est
	case MedianAbsDev:
		e.MedianAbsDev = est
	case Slope:
		e.Slope = est
	}
}

// BuildEstimates pairs every point statistic in points with its
// distribution in dists.
func BuildEstimates(points Tuple, dists *Distributions, level float64) (*Estimates, error) {
	ests := new(Estimates)
	for _, s := range points.Stats() {
		dist := dists.Get(s)
		if dist == nil {
			return nil, statErr("estimate", s.String(), ErrInvalidInput, "no distribution")
		}
		point, _ := points.Get(s)
		est, err := NewEstimate(point, dist, level)
		if err != nil {
			return nil, &StatError{Op: "estimate", Stat: s.String(), Err: err}
		}
		ests.Set(s, &est)
	}
	return ests, nil
}

// absoluteStats computes the mean, standard deviation, median, and
// median absolute deviation of s.
func absoluteStats(s Sample) (Tuple, error) {
	var t Tuple
	mean := s.Mean()
	t.Set(Mean, mean)
	t.Set(StdDev, s.StdDev())
	median := s.Median()
	t.Set(Median, median)
	t.Set(MedianAbsDev, s.MedianAbsDev(median))
	return t, nil
}

// PointEstimates estimates the mean, median, standard deviation, and
// median absolute deviation of the population s was drawn from. All
// four statistics are bootstrapped from the same resamples.
func PointEstimates(s Sample, cfg Config) (*Distributions, *Estimates, error) {
	if s.Len() < 2 {
		return nil, nil, statErr("estimate", "sample", ErrInvalidInput, "need at least 2 measurements, have %d", s.Len())
	}
	points, _ := absoluteStats(s)
	b := cfg.Bootstrap()
	dists, err := b.Univariate(s, absoluteStats)
	if err != nil {
		return nil, nil, err
	}
	ests, err := BuildEstimates(points, dists, cfg.ConfidenceLevel)
	if err != nil {
		return nil, nil, err
	}
	return dists, ests, nil
}
