// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchstat

import "fmt"

// A Statistic is a summary statistic tracked by the estimator.
type Statistic int

const (
	Mean Statistic = iota
	Median
	StdDev
	MedianAbsDev
	Slope

	numStatistics
)

// Statistics lists every Statistic in display order.
var Statistics = []Statistic{Mean, Median, StdDev, MedianAbsDev, Slope}

var statNames = [numStatistics]string{
	Mean:         "mean",
	Median:       "median",
	StdDev:       "std_dev",
	MedianAbsDev: "median_abs_dev",
	Slope:        "slope",
}

func (s Statistic) String() string {
	if s < 0 || s >= numStatistics {
		return fmt.Sprintf("Statistic(%d)", int(s))
	}
	return statNames[s]
}

// MarshalText encodes s by name.
func (s Statistic) MarshalText() ([]byte, error) {
	if s < 0 || s >= numStatistics {
		return nil, fmt.Errorf("bad Statistic %d", int(s))
	}
	return []byte(statNames[s]), nil
}

// UnmarshalText decodes a Statistic name.
func (s *Statistic) UnmarshalText(text []byte) error {
	for i, name := range statNames {
		if string(text) == name {
			*s = Statistic(i)
			return nil
		}
	}
	return fmt.Errorf("unknown statistic %q", text)
}

// A Tuple is the set of statistics computed from a single sample or
// resample. Each Statistic has one optional slot, so one resample
// can feed several distributions.
//
// The zero Tuple has no statistics set.
type Tuple struct {
	vals [numStatistics]float64
	set  uint8
}

// Set stores v as the value of statistic s.
func (t *Tuple) Set(s Statistic, v float64) {
	t.vals[s] = v
	t.set |= 1 << uint(s)
}

// Has reports whether statistic s is set in t.
func (t Tuple) Has(s Statistic) bool {
	return t.set&(1<<uint(s)) != 0
}

// Get returns the value of statistic s and whether it is set.
func (t Tuple) Get(s Statistic) (float64, bool) {
	return t.vals[s], t.Has(s)
}

// Stats returns the statistics set in t, in Statistics order.
func (t Tuple) Stats() []Statistic {
	var out []Statistic
	for _, s := range Statistics {
		if t.Has(s) {
			out = append(out, s)
		}
	}
	return out
}
