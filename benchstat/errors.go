// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchstat

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInput indicates an empty sample, a NaN measurement,
	// or paired sequences of different lengths.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientResamples indicates too few bootstrap
	// resamples to form a confidence interval.
	ErrInsufficientResamples = errors.New("insufficient resamples")

	// ErrDegenerateInput indicates input that has no variance where
	// variance is required, or regression data whose x values are
	// all zero.
	ErrDegenerateInput = errors.New("degenerate input")
)

// A StatError records which statistic or input failed, in which
// operation, and why.
type StatError struct {
	Op   string // Operation, such as "bootstrap" or "fit"
	Stat string // Statistic or input that failed
	Err  error  // One of the Err* sentinels, possibly wrapped
}

func (e *StatError) Error() string {
	if e.Stat == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Stat + ": " + e.Err.Error()
}

func (e *StatError) Unwrap() error {
	return e.Err
}

func statErr(op, stat string, err error, format string, args ...interface{}) error {
	if format != "" {
		err = fmt.Errorf("%w: "+format, append([]interface{}{err}, args...)...)
	}
	return &StatError{Op: op, Stat: stat, Err: err}
}

// A RegressionError reports a benchmark whose performance regressed
// relative to its baseline. Changes lists every regressed statistic.
type RegressionError struct {
	ID      string
	Changes []Change
}

func (e *RegressionError) Error() string {
	var b strings.Builder
	if e.ID != "" {
		b.WriteString(e.ID)
		b.WriteString(" has regressed:")
	} else {
		b.WriteString("regressed:")
	}
	for i, c := range e.Changes {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, " %s %+.2f%%", c.Stat, 100*c.Estimate.PointEstimate)
	}
	return b.String()
}
