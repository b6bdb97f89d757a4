// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchstat

import "fmt"

// A Label classifies a measurement relative to Tukey's fences.
type Label int

const (
	LowSevere Label = iota
	LowMild
	Normal
	HighMild
	HighSevere
)

func (l Label) String() string {
	switch l {
	case LowSevere:
		return "low severe"
	case LowMild:
		return "low mild"
	case Normal:
		return "normal"
	case HighMild:
		return "high mild"
	case HighSevere:
		return "high severe"
	}
	return fmt.Sprintf("Label(%d)", int(l))
}

// IsOutlier reports whether l is anything but Normal.
func (l Label) IsOutlier() bool {
	return l != Normal
}

// IsSevere reports whether l is LowSevere or HighSevere.
func (l Label) IsSevere() bool {
	return l == LowSevere || l == HighSevere
}

// Fences are Tukey's inner ("near") and outer ("far") fences, at 1.5
// and 3 interquartile ranges beyond the first and third quartiles.
type Fences struct {
	FarLow   float64 `json:"far_low"`
	NearLow  float64 `json:"near_low"`
	NearHigh float64 `json:"near_high"`
	FarHigh  float64 `json:"far_high"`
}

// NewFences computes the fences of s. The quartiles are computed by
// linear interpolation.
func NewFences(s Sample) Fences {
	q1, _, q3 := s.Percentiles().Quartiles()
	iqr := q3 - q1
	return Fences{
		FarLow:   q1 - 3*iqr,
		NearLow:  q1 - 1.5*iqr,
		NearHigh: q3 + 1.5*iqr,
		FarHigh:  q3 + 3*iqr,
	}
}

// Label classifies x. The near fences are inclusive on the Normal
// side and the far fences are inclusive on the mild side.
func (f Fences) Label(x float64) Label {
	switch {
	case x < f.FarLow:
		return LowSevere
	case x < f.NearLow:
		return LowMild
	case x <= f.NearHigh:
		return Normal
	case x <= f.FarHigh:
		return HighMild
	}
	return HighSevere
}

// A LabeledSample is a Sample with every measurement classified
// relative to the sample's own fences.
type LabeledSample struct {
	Sample Sample
	Fences Fences

	labels []Label
}

// ClassifyOutliers labels every measurement of s. It is a pure
// function of s.
func ClassifyOutliers(s Sample) *LabeledSample {
	f := NewFences(s)
	labels := make([]Label, s.Len())
	for i, x := range s.xs {
		labels[i] = f.Label(x)
	}
	return &LabeledSample{Sample: s, Fences: f, labels: labels}
}

// Label returns the label of the i'th measurement.
func (ls *LabeledSample) Label(i int) Label {
	return ls.labels[i]
}

// Labels returns a copy of every measurement's label.
func (ls *LabeledSample) Labels() []Label {
	return append([]Label(nil), ls.labels...)
}

// OutlierCount counts the measurements of each outlier label.
type OutlierCount struct {
	LowSevere, LowMild, HighMild, HighSevere int
}

// Total returns the number of outliers.
func (c OutlierCount) Total() int {
	return c.LowSevere + c.LowMild + c.HighMild + c.HighSevere
}

// Count tallies the outliers in ls.
func (ls *LabeledSample) Count() OutlierCount {
	var c OutlierCount
	for _, l := range ls.labels {
		switch l {
		case LowSevere:
			c.LowSevere++
		case LowMild:
			c.LowMild++
		case HighMild:
			c.HighMild++
		case HighSevere:
			c.HighSevere++
		}
	}
	return c
}

// Outliers returns the indexes of measurements that are not Normal.
func (ls *LabeledSample) Outliers() []int {
	var idx []int
	for i, l := range ls.labels {
		if l.IsOutlier() {
			idx = append(idx, i)
		}
	}
	return idx
}
