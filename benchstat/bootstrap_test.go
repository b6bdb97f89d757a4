// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchstat

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var testSample = MustSample(
	101, 98, 103, 99, 100, 97, 102, 104, 96, 100,
	99, 101, 105, 98, 100, 102, 95, 101, 99, 103,
)

func meanMedian(s Sample) (Tuple, error) {
	var t Tuple
	t.Set(Mean, s.Mean())
	t.Set(Median, s.Median())
	return t, nil
}

func TestBootstrapReproducible(t *testing.T) {
	// A fixed seed must produce identical distributions no
	// matter how the work is split.
	var want *Distributions
	for _, par := range []int{1, 2, 3, 8} {
		t.Run(fmt.Sprint(par), func(t *testing.T) {
			b := Bootstrap{Resamples: 1000, Parallelism: par, Seed: 1234}
			got, err := b.Univariate(testSample, meanMedian)
			if err != nil {
				t.Fatal(err)
			}
			if got.Mean.Len() != 1000 || got.Median.Len() != 1000 {
				t.Fatalf("got %d, %d values, want 1000", got.Mean.Len(), got.Median.Len())
			}
			if got.StdDev != nil {
				t.Errorf("StdDev distribution set but never estimated")
			}
			if want == nil {
				want = got
				return
			}
			if diff := cmp.Diff(want.Mean.Values(), got.Mean.Values()); diff != "" {
				t.Errorf("mean distribution differs from Parallelism 1 (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(want.Median.Values(), got.Median.Values()); diff != "" {
				t.Errorf("median distribution differs from Parallelism 1 (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBootstrapMixedReproducible(t *testing.T) {
	x, y := MustSample(1, 2, 3, 4, 5), MustSample(3, 4, 5, 6, 7, 8)
	run := func(par int) []float64 {
		t.Helper()
		d, err := TDistribution(x, y, Bootstrap{Resamples: 500, Parallelism: par, Seed: 99})
		if err != nil {
			t.Fatal(err)
		}
		return d.Values()
	}
	if diff := cmp.Diff(run(1), run(5)); diff != "" {
		t.Errorf("t distribution depends on Parallelism (-want +got):\n%s", diff)
	}
}

func TestBootstrapErrors(t *testing.T) {
	test := func(name string, b Bootstrap, s Sample, fn Estimator, want error) {
		t.Helper()
		_, err := b.Univariate(s, fn)
		if !errors.Is(err, want) {
			t.Errorf("%s: got %v, want %v", name, err, want)
		}
	}

	test("one resample", Bootstrap{Resamples: 1, Seed: 1}, testSample, meanMedian, ErrInsufficientResamples)
	test("no resamples", Bootstrap{Resamples: 0, Seed: 1}, testSample, meanMedian, ErrInsufficientResamples)
	test("empty sample", Bootstrap{Resamples: 10, Seed: 1}, Sample{}, meanMedian, ErrInvalidInput)

	boom := errors.New("boom")
	test("estimator error", Bootstrap{Resamples: 100, Parallelism: 4, Seed: 1}, testSample,
		func(Sample) (Tuple, error) { return Tuple{}, boom }, boom)
}

func TestBootstrapConstant(t *testing.T) {
	b := Bootstrap{Resamples: 200, Parallelism: 3, Seed: 5}
	d, err := b.Univariate(MustSample(7, 7, 7, 7), meanMedian)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range d.Mean.Values() {
		if v != 7 {
			t.Fatalf("resampled mean of a constant sample is %v, want 7", v)
		}
	}
	lo, hi, err := d.Median.ConfidenceInterval(0.95)
	if err != nil || lo != 7 || hi != 7 {
		t.Errorf("median CI: got [%v, %v], %v, want [7, 7]", lo, hi, err)
	}
}
