// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysis

import (
	"math"

	"github.com/aclements/benchcheck/benchstat"
)

// Throughput is the work one iteration of a benchmark does.
type Throughput struct {
	// PerIter is the amount of work per iteration, in Unit.
	PerIter float64
	// Unit names the work, as in "B" for bytes or "elem".
	Unit string
}

// A ThroughputHarness is a Harness that knows the throughput of its
// benchmarks.
type ThroughputHarness interface {
	Harness

	// Throughput returns the work done per iteration of benchmark
	// id, or false if it is unknown.
	Throughput(id string) (Throughput, bool)
}

// A Rate estimates how fast a benchmark does its work.
type Rate struct {
	// Unit is the work unit per second, as in "B/s".
	Unit     string
	Estimate benchstat.Estimate
}

// Rate converts an estimate of the time per iteration in nanoseconds
// to an estimate of the work per second. The bounds swap, since the
// slowest time gives the lowest rate.
func (tp Throughput) Rate(perIter benchstat.Estimate) *Rate {
	rate := func(ns float64) float64 {
		if ns <= 0 {
			return math.Inf(1)
		}
		return tp.PerIter / (ns * 1e-9)
	}
	ci := perIter.ConfidenceInterval
	est := benchstat.Estimate{
		ConfidenceInterval: benchstat.ConfidenceInterval{
			ConfidenceLevel: ci.ConfidenceLevel,
			LowerBound:      rate(ci.UpperBound),
			UpperBound:      rate(ci.LowerBound),
		},
		PointEstimate: rate(perIter.PointEstimate),
	}
	if perIter.PointEstimate > 0 {
		// First-order propagation through 1/x.
		est.StandardError = est.PointEstimate * perIter.StandardError / perIter.PointEstimate
	}
	return &Rate{Unit: tp.Unit + "/s", Estimate: est}
}

// typical returns the estimate of the typical iteration time: the
// regression slope if there is one, and otherwise the mean.
func typical(e *benchstat.Estimates) *benchstat.Estimate {
	if e.Slope != nil {
		return e.Slope
	}
	return e.Mean
}
