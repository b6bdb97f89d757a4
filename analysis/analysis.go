// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package analysis runs the statistical pipeline over each benchmark:
// it measures (or loads) a sample, classifies outliers, fits the
// per-iteration time, bootstraps estimates, compares against a saved
// baseline, and persists the results.
//
// Measuring, storage, and reporting are collaborators supplied by the
// caller through the Harness, Store, and Reporter interfaces.
package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/aclements/benchcheck/benchstat"
	"github.com/aclements/benchcheck/store"
)

// ErrBaselineMissing indicates that Config.RequireBaseline is set but
// the baseline has not been saved.
var ErrBaselineMissing = errors.New("baseline missing")

// A BaselineLoadError reports a baseline that exists but cannot be
// read.
type BaselineLoadError struct {
	ID       string
	Baseline string
	Err      error
}

func (e *BaselineLoadError) Error() string {
	return fmt.Sprintf("%s: loading baseline %q: %v", e.ID, e.Baseline, e.Err)
}

func (e *BaselineLoadError) Unwrap() error {
	return e.Err
}

// Env holds facts about the measurement environment that are
// computed once per Analyzer and passed to every Harness.Sample call.
type Env struct {
	// ClockCost is the cost of reading the clock once.
	ClockCost time.Duration
}

// A Harness runs benchmarks.
type Harness interface {
	// ClockCost measures the cost of reading the clock.
	ClockCost(ctx context.Context) (time.Duration, error)

	// Sample runs benchmark id repeatedly and returns the number
	// of iterations and the elapsed nanoseconds of each run.
	Sample(ctx context.Context, id string, env Env) (iters, times []float64, err error)

	// Test runs benchmark id once.
	Test(ctx context.Context, id string) error

	// Profile runs benchmark id for d under a profiler.
	Profile(ctx context.Context, id string, d time.Duration) error
}

// A Store persists analysis results under a benchmark ID and a
// baseline name. Save writes to the store.New baseline and Promote
// copies it to a named baseline.
type Store interface {
	Exists(id, baseline string) (bool, error)
	LoadSample(id, baseline string) (*benchstat.Data, error)
	LoadEstimates(id, baseline string) (*benchstat.Estimates, error)
	Save(rec *store.Record) error
	Promote(id, baseline string) error
}

// A Reporter is notified as each benchmark moves through analysis.
type Reporter interface {
	// List is called for each benchmark in List mode.
	List(id string)
	// Start is called before a benchmark runs.
	Start(id string)
	// Analysis is called once a sample is ready to analyze.
	Analysis(id string)
	// Complete is called with the result of a full analysis.
	Complete(id string, m *Measurement)
	// Terminated is called when a benchmark stops early, as in
	// Test mode.
	Terminated(id string)
}

// Baseline is the saved data a Measurement was compared against.
type Baseline struct {
	Name      string
	Data      *benchstat.Data
	Sample    benchstat.Sample
	Estimates *benchstat.Estimates
}

// A Measurement is the complete analysis of one benchmark.
//
// Times in Sample, Estimates, and Distributions are nanoseconds per
// iteration.
type Measurement struct {
	ID string

	// Data holds the (iterations, elapsed) pairs of each run and
	// Sample the per-iteration time of each run.
	Data   *benchstat.Data
	Sample benchstat.Sample

	Outliers      *benchstat.LabeledSample
	Estimates     *benchstat.Estimates
	Distributions *benchstat.Distributions

	// PDF samples the density of Sample. It is nil if the sample
	// has no spread or Config.PDFPoints is 0.
	PDF []benchstat.Point

	// Throughput is the rate of work at the typical iteration
	// time. It is nil unless the harness knows the work done per
	// iteration.
	Throughput *Rate

	// Comparison and Baseline are nil if no baseline was saved.
	Comparison *benchstat.Comparison
	Baseline   *Baseline
}

// Regressed reports whether m was compared against a baseline and
// found to have regressed.
func (m *Measurement) Regressed() bool {
	return m.Comparison != nil && m.Comparison.Regressed()
}

// Record returns the artifacts of m to persist.
func (m *Measurement) Record() *store.Record {
	rec := &store.Record{
		Benchmark: store.Benchmark{ID: m.ID},
		Sample:    store.Sample{Iters: m.Data.X(), Times: m.Data.Y()},
		Estimates: m.Estimates,
		Fences:    m.Outliers.Fences,
	}
	if m.Comparison != nil {
		change := m.Comparison.Relative
		rec.Change = &change
	}
	return rec
}
