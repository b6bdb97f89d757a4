// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchstat

import (
	"errors"
	"math"
	"testing"
)

func TestNewSample(t *testing.T) {
	if _, err := NewSample(nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("NewSample(nil): got %v, want ErrInvalidInput", err)
	}
	if _, err := NewSample([]float64{1, math.NaN()}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("NewSample with NaN: got %v, want ErrInvalidInput", err)
	}

	xs := []float64{3, 1, 2}
	s, err := NewSample(xs)
	if err != nil {
		t.Fatal(err)
	}
	xs[0] = 100
	if s.At(0) != 3 {
		t.Errorf("Sample aliases its input: At(0) = %v", s.At(0))
	}
}

func TestDescriptive(t *testing.T) {
	check := func(name string, got, want float64) {
		t.Helper()
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("%s: got %v, want %v", name, got, want)
		}
	}

	s := MustSample(2, 4, 4, 4, 5, 5, 7, 9)
	check("mean", s.Mean(), 5)
	check("variance", s.Variance(), 32.0/7)
	check("stddev", s.StdDev(), math.Sqrt(32.0/7))
	min, max := s.Bounds()
	check("min", min, 2)
	check("max", max, 9)

	s = MustSample(100, 1, 5, 2, 4, 3)
	check("p0", s.Percentile(0), 1)
	check("p25", s.Percentile(25), 2.25)
	check("median", s.Median(), 3.5)
	check("p75", s.Percentile(75), 4.75)
	check("p100", s.Percentile(100), 100)
	// |x - 3.5| sorted is .5 .5 1.5 1.5 2.5 96.5.
	check("mad", s.MedianAbsDev(math.NaN()), 1.5*madScale)
	check("mad given median", s.MedianAbsDev(3.5), 1.5*madScale)

	check("single", MustSample(7).Median(), 7)
	check("single variance", MustSample(7).Variance(), 0)
}

func TestPercentilesQuartiles(t *testing.T) {
	p := MustSample(1, 2, 3, 4, 5).Percentiles()
	q1, q2, q3 := p.Quartiles()
	if q1 != 2 || q2 != 3 || q3 != 4 {
		t.Errorf("quartiles: got %v %v %v, want 2 3 4", q1, q2, q3)
	}
	if iqr := p.IQR(); iqr != 2 {
		t.Errorf("IQR: got %v, want 2", iqr)
	}
}
