// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchstat

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
)

// TStatistic returns Welch's t statistic for the difference between
// the means of a and b. If both samples have zero variance, the
// statistic is 0 when the means are equal and ±Inf otherwise.
func TStatistic(a, b Sample) float64 {
	num := a.Mean() - b.Mean()
	den := math.Sqrt(a.Variance()/float64(a.Len()) + b.Variance()/float64(b.Len()))
	if den == 0 {
		if num == 0 {
			return 0
		}
		return math.Inf(int(math.Copysign(1, num)))
	}
	return num / den
}

// TDistribution bootstraps the distribution of the t statistic of a
// and b under the null hypothesis that both come from the same
// population.
func TDistribution(a, b Sample, boot Bootstrap) (*Distribution, error) {
	ts, err := mixed(boot, a, b, func(x, y Sample) (float64, error) {
		return TStatistic(x, y), nil
	})
	if err != nil {
		return nil, err
	}
	return NewDistribution(ts), nil
}

// PValue returns the two-tailed p-value of t against the null
// distribution d: the fraction of d whose magnitude is at least |t|.
func (d *Distribution) PValue(t float64) float64 {
	if len(d.values) == 0 {
		return math.NaN()
	}
	at := math.Abs(t)
	hits := 0
	for _, v := range d.values {
		if math.Abs(v) >= at {
			hits++
		}
	}
	return float64(hits) / float64(len(d.values))
}

// A ChangeClass classifies a relative change against a noise threshold.
type ChangeClass int

const (
	NonSignificant ChangeClass = iota
	Improved
	Regressed
)

func (c ChangeClass) String() string {
	switch c {
	case NonSignificant:
		return "no change"
	case Improved:
		return "improved"
	case Regressed:
		return "regressed"
	}
	return fmt.Sprintf("ChangeClass(%d)", int(c))
}

// Classify classifies a relative-change estimate. The change is an
// improvement if the whole confidence interval lies below -noise and
// a regression if it lies above noise.
func Classify(e Estimate, noise float64) ChangeClass {
	lo, hi := e.ConfidenceInterval.LowerBound, e.ConfidenceInterval.UpperBound
	switch {
	case lo < -noise && hi < -noise:
		return Improved
	case lo > noise && hi > noise:
		return Regressed
	}
	return NonSignificant
}

// A Change is the classified relative change of one statistic.
type Change struct {
	Stat     Statistic
	Estimate Estimate
	Class    ChangeClass
}

// relativeStats computes the relative change of the mean and median
// of cur with respect to base.
func relativeStats(cur, base Sample) (Tuple, error) {
	var t Tuple
	bm, bmed := base.Mean(), base.Median()
	if bm == 0 || bmed == 0 {
		return t, statErr("relative change", "baseline", ErrDegenerateInput, "zero baseline")
	}
	t.Set(Mean, (cur.Mean()-bm)/bm)
	t.Set(Median, (cur.Median()-bmed)/bmed)
	return t, nil
}

// A Comparison is the result of comparing a sample against a baseline.
type Comparison struct {
	// T is the t statistic of the current sample against the
	// baseline, and TDistribution is its bootstrapped null
	// distribution.
	T             float64
	TDistribution *Distribution

	// PValue is the two-tailed p-value of T.
	PValue float64

	// WelchP is the p-value of a parametric Welch t-test, or NaN
	// if that test is undefined for these samples. It is
	// informational only.
	WelchP float64

	// Relative holds the estimated relative change of the mean
	// and median, and RelativeDistributions their distributions.
	Relative              Estimates
	RelativeDistributions Distributions

	SignificanceLevel float64
	NoiseThreshold    float64
}

// Compare tests whether current differs from baseline. Both samples
// need at least 2 measurements.
func Compare(current, baseline Sample, cfg Config) (*Comparison, error) {
	if current.Len() < 2 {
		return nil, statErr("compare", "current sample", ErrInvalidInput, "need at least 2 measurements, have %d", current.Len())
	}
	if baseline.Len() < 2 {
		return nil, statErr("compare", "baseline sample", ErrInvalidInput, "need at least 2 measurements, have %d", baseline.Len())
	}

	boot := cfg.Bootstrap()
	t := TStatistic(current, baseline)
	tdist, err := TDistribution(current, baseline, boot)
	if err != nil {
		return nil, err
	}

	points, err := relativeStats(current, baseline)
	if err != nil {
		return nil, err
	}
	dists, err := boot.derive(relativeSalt).TwoSample(current, baseline, relativeStats)
	if err != nil {
		return nil, err
	}
	rel, err := BuildEstimates(points, dists, cfg.ConfidenceLevel)
	if err != nil {
		return nil, err
	}

	welchP := math.NaN()
	res, err := stats.TwoSampleWelchTTest(&stats.Sample{Xs: current.xs}, &stats.Sample{Xs: baseline.xs}, stats.LocationDiffers)
	if err == nil {
		welchP = res.P
	}

	return &Comparison{
		T:                     t,
		TDistribution:         tdist,
		PValue:                tdist.PValue(t),
		WelchP:                welchP,
		Relative:              *rel,
		RelativeDistributions: *dists,
		SignificanceLevel:     cfg.SignificanceLevel,
		NoiseThreshold:        cfg.NoiseThreshold,
	}, nil
}

// Significant reports whether the t-test rejects the null hypothesis
// that both samples have the same mean.
func (c *Comparison) Significant() bool {
	return c.PValue < c.SignificanceLevel
}

// Changes classifies every relative-change estimate in c.
func (c *Comparison) Changes() []Change {
	var out []Change
	for _, s := range Statistics {
		if e := c.Relative.Get(s); e != nil {
			out = append(out, Change{s, *e, Classify(*e, c.NoiseThreshold)})
		}
	}
	return out
}

// Regressed reports whether the comparison shows a regression. This
// requires the t-test to be significant and every relative-change
// estimate to be classified as Regressed. A single improved or
// non-significant estimate vetoes the regression.
func (c *Comparison) Regressed() bool {
	if !c.Significant() {
		return false
	}
	changes := c.Changes()
	if len(changes) == 0 {
		return false
	}
	for _, ch := range changes {
		if ch.Class != Regressed {
			return false
		}
	}
	return true
}

// Err returns a *RegressionError listing every regressed statistic if
// c shows a regression, and nil otherwise.
func (c *Comparison) Err(id string) error {
	if !c.Regressed() {
		return nil
	}
	return &RegressionError{ID: id, Changes: c.Changes()}
}
