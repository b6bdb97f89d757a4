// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchstat

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestClassifyOutliers(t *testing.T) {
	ls := ClassifyOutliers(MustSample(1, 2, 3, 4, 5, 100))

	want := Fences{FarLow: -5.25, NearLow: -1.5, NearHigh: 8.5, FarHigh: 12.25}
	if diff := cmp.Diff(want, ls.Fences, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("fences (-want +got):\n%s", diff)
	}
	wantLabels := []Label{Normal, Normal, Normal, Normal, Normal, HighSevere}
	if diff := cmp.Diff(wantLabels, ls.Labels()); diff != "" {
		t.Errorf("labels (-want +got):\n%s", diff)
	}
	if c := ls.Count(); c != (OutlierCount{HighSevere: 1}) || c.Total() != 1 {
		t.Errorf("count: got %+v", c)
	}
	if diff := cmp.Diff([]int{5}, ls.Outliers()); diff != "" {
		t.Errorf("outliers (-want +got):\n%s", diff)
	}
}

func TestFenceLabel(t *testing.T) {
	f := Fences{FarLow: -3, NearLow: -1.5, NearHigh: 1.5, FarHigh: 3}
	test := func(x float64, want Label) {
		t.Helper()
		if got := f.Label(x); got != want {
			t.Errorf("Label(%v): got %v, want %v", x, got, want)
		}
	}
	test(-3.1, LowSevere)
	test(-3, LowMild)
	test(-2, LowMild)
	test(-1.5, Normal)
	test(0, Normal)
	test(1.5, Normal)
	test(2, HighMild)
	test(3, HighMild)
	test(3.1, HighSevere)
}

func TestOutliersProperties(t *testing.T) {
	samples := []Sample{
		MustSample(1, 2, 3, 4, 5, 100),
		MustSample(-50, 10, 11, 12, 13, 14, 15, 16, 60),
		MustSample(5, 5, 5, 5),
		testSample,
	}
	for _, s := range samples {
		a, b := ClassifyOutliers(s), ClassifyOutliers(s)
		f := a.Fences
		if !(f.FarLow <= f.NearLow && f.NearLow <= f.NearHigh && f.NearHigh <= f.FarHigh) {
			t.Errorf("%v: fences out of order: %+v", s.xs, f)
		}
		if diff := cmp.Diff(a.Labels(), b.Labels()); diff != "" {
			t.Errorf("%v: classification is not repeatable (-first +second):\n%s", s.xs, diff)
		}
	}
}

func TestLabelPredicates(t *testing.T) {
	if !HighSevere.IsOutlier() || !HighSevere.IsSevere() {
		t.Errorf("HighSevere should be a severe outlier")
	}
	if Normal.IsOutlier() || LowMild.IsSevere() {
		t.Errorf("Normal and LowMild misclassified")
	}
}
