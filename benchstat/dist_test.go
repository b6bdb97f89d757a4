// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchstat

import (
	"errors"
	"math"
	"testing"
)

func TestConfidenceInterval(t *testing.T) {
	test := func(vals []float64, level, wantLo, wantHi float64) {
		t.Helper()
		lo, hi, err := NewDistribution(vals).ConfidenceInterval(level)
		if err != nil {
			t.Errorf("%v at %v: unexpected error %v", vals, level, err)
			return
		}
		if lo != wantLo || hi != wantHi {
			t.Errorf("%v at %v: got [%v, %v], want [%v, %v]", vals, level, lo, hi, wantLo, wantHi)
		}
	}

	// 100 values, shuffled: rank floor(25) and ceil(75).
	vals := make([]float64, 100)
	for i := range vals {
		vals[i] = float64((i * 37) % 100)
	}
	test(vals, 0.5, 25, 75)

	// The upper rank is clamped to N-1.
	test([]float64{2, 1}, 0.5, 1, 2)
	test([]float64{4, 3, 2, 1}, 0.5, 2, 4)
}

func TestConfidenceIntervalErrors(t *testing.T) {
	test := func(d *Distribution, level float64, want error) {
		t.Helper()
		_, _, err := d.ConfidenceInterval(level)
		if !errors.Is(err, want) {
			t.Errorf("got %v, want %v", err, want)
		}
	}
	test(NewDistribution([]float64{1}), 0.95, ErrInsufficientResamples)
	test(NewDistribution(nil), 0.95, ErrInsufficientResamples)
	test(NewDistribution([]float64{1, 2, 3}), 0, ErrInvalidInput)
	test(NewDistribution([]float64{1, 2, 3}), 1, ErrInvalidInput)
}

func TestDistributionSummary(t *testing.T) {
	d := NewDistribution([]float64{4, 1, 3, 2})
	if got := d.Mean(); math.Abs(got-2.5) > 1e-12 {
		t.Errorf("Mean: got %v, want 2.5", got)
	}
	if got := d.Median(); got != 2.5 {
		t.Errorf("Median: got %v, want 2.5", got)
	}
	if got, want := d.StdErr(), math.Sqrt(5.0/3); math.Abs(got-want) > 1e-12 {
		t.Errorf("StdErr: got %v, want %v", got, want)
	}
}

func TestPValue(t *testing.T) {
	d := NewDistribution([]float64{-3, -2, -1, 0, 1, 2, 3, 4})
	test := func(t0, want float64) {
		t.Helper()
		if got := d.PValue(t0); got != want {
			t.Errorf("PValue(%v): got %v, want %v", t0, got, want)
		}
	}
	test(0, 1)
	test(2, 5.0/8)
	test(-2, 5.0/8)
	test(4, 1.0/8)
	test(5, 0)
	test(math.Inf(1), 0)
}
