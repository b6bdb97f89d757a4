// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchstat

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStatisticText(t *testing.T) {
	b, err := json.Marshal(Statistics)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(b), `["mean","median","std_dev","median_abs_dev","slope"]`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	var back []Statistic
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Statistics, back); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}

	var s Statistic
	if err := s.UnmarshalText([]byte("mode")); err == nil {
		t.Errorf("UnmarshalText(mode) succeeded")
	}
}

func TestTuple(t *testing.T) {
	var tu Tuple
	if len(tu.Stats()) != 0 {
		t.Errorf("zero Tuple has statistics %v", tu.Stats())
	}
	tu.Set(Slope, 3)
	tu.Set(Mean, 0)
	if v, ok := tu.Get(Mean); !ok || v != 0 {
		t.Errorf("Get(Mean) = %v, %v, want 0, true", v, ok)
	}
	if _, ok := tu.Get(Median); ok {
		t.Errorf("Get(Median) reports an unset statistic")
	}
	if diff := cmp.Diff([]Statistic{Mean, Slope}, tu.Stats()); diff != "" {
		t.Errorf("Stats (-want +got):\n%s", diff)
	}
}

func TestStatError(t *testing.T) {
	err := statErr("fit", "slope", ErrDegenerateInput, "all x values are %d", 0)
	if got, want := err.Error(), "fit slope: degenerate input: all x values are 0"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if !errors.Is(err, ErrDegenerateInput) {
		t.Errorf("StatError does not unwrap to its sentinel")
	}
	err = statErr("bootstrap", "", ErrInsufficientResamples, "")
	if got, want := err.Error(), "bootstrap: insufficient resamples"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
