// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysis

import (
	"fmt"
	"io"
	"strings"

	"github.com/aclements/benchcheck/benchstat"
	"github.com/aclements/benchcheck/benchunit"
)

// TextReporter writes a human-readable report of each benchmark to w.
type TextReporter struct {
	w io.Writer
}

// NewTextReporter returns a TextReporter that writes to w.
func NewTextReporter(w io.Writer) *TextReporter {
	return &TextReporter{w}
}

func (r *TextReporter) List(id string) {
	fmt.Fprintf(r.w, "%s: bench\n", id)
}

func (r *TextReporter) Start(id string) {}

func (r *TextReporter) Analysis(id string) {}

func (r *TextReporter) Terminated(id string) {
	fmt.Fprintf(r.w, "%s: success\n", id)
}

// indent is the column that follows the benchmark ID.
const indent = 24

func (r *TextReporter) Complete(id string, m *Measurement) {
	pad := strings.Repeat(" ", indent)
	name := id
	if len(name) < indent {
		name += pad[len(name):]
	} else {
		name += "\n" + pad
	}

	if e := typical(m.Estimates); e != nil {
		fmt.Fprintf(r.w, "%stime:   %s\n", name, formatTimeCI(*e))
	}
	if t := m.Throughput; t != nil {
		fmt.Fprintf(r.w, "%sthrpt:  %s\n", pad, formatRateCI(*t))
	}

	if c := m.Comparison; c != nil {
		if e := c.Relative.Mean; e != nil {
			rel := "<"
			if !c.Significant() {
				rel = ">"
			}
			fmt.Fprintf(r.w, "%schange: %s (p = %.2f %s %.2f)\n", pad, formatPercentCI(*e), c.PValue, rel, c.SignificanceLevel)
		}
		fmt.Fprintf(r.w, "%s%s\n", pad, verdict(c))
	}

	r.outliers(m.Outliers)
}

func (r *TextReporter) outliers(ls *benchstat.LabeledSample) {
	if ls == nil {
		return
	}
	n := ls.Sample.Len()
	c := ls.Count()
	total := c.Total()
	if total == 0 {
		return
	}
	pct := func(k int) float64 { return 100 * float64(k) / float64(n) }
	fmt.Fprintf(r.w, "Found %d outliers among %d measurements (%.2f%%)\n", total, n, pct(total))
	for _, l := range []struct {
		n    int
		name string
	}{
		{c.LowSevere, "low severe"},
		{c.LowMild, "low mild"},
		{c.HighMild, "high mild"},
		{c.HighSevere, "high severe"},
	} {
		if l.n > 0 {
			fmt.Fprintf(r.w, "  %d (%.2f%%) %s\n", l.n, pct(l.n), l.name)
		}
	}
}

func verdict(c *benchstat.Comparison) string {
	if !c.Significant() {
		return "No change in performance detected."
	}
	if c.Regressed() {
		return "Performance has regressed."
	}
	improved := true
	for _, ch := range c.Changes() {
		if ch.Class != benchstat.Improved {
			improved = false
		}
	}
	if improved {
		return "Performance has improved."
	}
	return "Change within noise threshold."
}

func formatTimeCI(e benchstat.Estimate) string {
	ci := e.ConfidenceInterval
	s := benchunit.FormatTimes(ci.LowerBound*1e-9, e.PointEstimate*1e-9, ci.UpperBound*1e-9)
	return "[" + strings.Join(s, " ") + "]"
}

func formatRateCI(r Rate) string {
	ci := r.Estimate.ConfidenceInterval
	vals := []float64{ci.LowerBound, r.Estimate.PointEstimate, ci.UpperBound}
	sc := benchunit.CommonScale(vals...)
	s := make([]string, len(vals))
	for i, v := range vals {
		s[i] = sc.FormatUnit(v, r.Unit)
	}
	return "[" + strings.Join(s, " ") + "]"
}

func formatPercentCI(e benchstat.Estimate) string {
	ci := e.ConfidenceInterval
	return fmt.Sprintf("[%s %s %s]",
		benchunit.FormatPercent(ci.LowerBound),
		benchunit.FormatPercent(e.PointEstimate),
		benchunit.FormatPercent(ci.UpperBound))
}
