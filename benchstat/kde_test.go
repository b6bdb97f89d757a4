// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchstat

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPDF(t *testing.T) {
	pts, err := PDF(testSample, 500, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) != 500 {
		t.Fatalf("got %d points, want 500", len(pts))
	}
	min, max := testSample.Bounds()
	if pts[0].X >= min || pts[len(pts)-1].X <= max {
		t.Errorf("sweep [%v, %v] does not cover sample [%v, %v]", pts[0].X, pts[len(pts)-1].X, min, max)
	}

	// The density integrates to about 1.
	area := 0.0
	for i := 1; i < len(pts); i++ {
		if pts[i].X <= pts[i-1].X {
			t.Fatalf("points out of order at %d", i)
		}
		area += (pts[i].X - pts[i-1].X) * (pts[i].Y + pts[i-1].Y) / 2
	}
	if math.Abs(area-1) > 0.02 {
		t.Errorf("density integrates to %v, want about 1", area)
	}

	serial, err := PDF(testSample, 500, 1)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(serial, pts); diff != "" {
		t.Errorf("PDF depends on parallelism (-serial +parallel):\n%s", diff)
	}
}

func TestPDFErrors(t *testing.T) {
	if _, err := PDF(MustSample(3, 3, 3), 100, 1); !errors.Is(err, ErrDegenerateInput) {
		t.Errorf("constant sample: got %v, want ErrDegenerateInput", err)
	}
	if _, err := PDF(testSample, 1, 1); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("one point: got %v, want ErrInvalidInput", err)
	}
	if _, err := PDF(MustSample(1), 100, 1); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("one measurement: got %v, want ErrInvalidInput", err)
	}
}
