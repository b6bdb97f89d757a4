// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aclements/benchcheck/benchstat"
)

func TestThroughputRate(t *testing.T) {
	perIter := benchstat.Estimate{
		ConfidenceInterval: benchstat.ConfidenceInterval{ConfidenceLevel: 0.95, LowerBound: 80, UpperBound: 125},
		PointEstimate:      100,
		StandardError:      10,
	}
	got := Throughput{PerIter: 64, Unit: "B"}.Rate(perIter)
	require.Equal(t, "B/s", got.Unit)
	e := got.Estimate
	require.Equal(t, 0.95, e.ConfidenceInterval.ConfidenceLevel)
	require.InEpsilon(t, 512e6, e.ConfidenceInterval.LowerBound, 1e-12)
	require.InEpsilon(t, 640e6, e.PointEstimate, 1e-12)
	require.InEpsilon(t, 800e6, e.ConfidenceInterval.UpperBound, 1e-12)
	require.InEpsilon(t, 64e6, e.StandardError, 1e-12)

	// A zero time bound is an unbounded rate.
	perIter.ConfidenceInterval.LowerBound = 0
	got = Throughput{PerIter: 1, Unit: "elem"}.Rate(perIter)
	require.Equal(t, "elem/s", got.Unit)
	require.True(t, math.IsInf(got.Estimate.ConfidenceInterval.UpperBound, 1))
}
