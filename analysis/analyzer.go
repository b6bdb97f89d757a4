// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysis

import (
	"context"
	"regexp"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/aclements/benchcheck/benchstat"
)

// An Analyzer runs the analysis pipeline over benchmarks.
type Analyzer struct {
	cfg     Config
	harness Harness
	store   Store
	report  Reporter
	filter  *regexp.Regexp

	// Log receives progress and best-effort persistence errors.
	Log logrus.FieldLogger

	// Metrics, if non-nil, records outcomes and stage timings.
	Metrics *Metrics

	env *Env
}

// NewAnalyzer returns an Analyzer that runs benchmarks with h, keeps
// results in s, and reports to r. s and r may be nil, in which case
// nothing is persisted or compared and nothing is reported.
func NewAnalyzer(cfg Config, h Harness, s Store, r Reporter) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	needHarness := cfg.Mode == Test || cfg.Mode == Profile || (cfg.Mode == Bench && cfg.LoadBaseline == "")
	if h == nil && needHarness {
		return nil, errors.Errorf("%s mode needs a harness", cfg.Mode)
	}
	if s == nil && (cfg.LoadBaseline != "" || cfg.RequireBaseline) {
		return nil, errors.New("analysis needs a store to load or require a baseline")
	}
	a := &Analyzer{
		cfg:     cfg,
		harness: h,
		store:   s,
		report:  r,
		Log:     logrus.StandardLogger(),
	}
	if a.report == nil {
		a.report = nopReporter{}
	}
	if cfg.Filter != "" {
		a.filter = regexp.MustCompile(cfg.Filter)
	}
	return a, nil
}

// A Result is the outcome of one benchmark. Measurement is nil unless
// the benchmark was fully analyzed.
type Result struct {
	ID          string
	Measurement *Measurement
	Err         error
}

// Run analyzes every benchmark in ids that matches Config.Filter, in
// order. An error in one benchmark does not stop the others. Run
// stops early only if ctx is canceled.
func (a *Analyzer) Run(ctx context.Context, ids []string) []Result {
	var results []Result
	for _, id := range ids {
		if a.filter != nil && !a.filter.MatchString(id) {
			continue
		}
		if ctx.Err() != nil {
			results = append(results, Result{ID: id, Err: ctx.Err()})
			continue
		}
		m, err := a.Analyze(ctx, id)
		results = append(results, Result{id, m, err})
	}
	return results
}

// Analyze runs one benchmark through the pipeline selected by
// Config.Mode. In Bench mode it returns the full Measurement. If
// Config.FailOnRegression is set and the benchmark regressed, it
// returns the Measurement and a *benchstat.RegressionError.
func (a *Analyzer) Analyze(ctx context.Context, id string) (*Measurement, error) {
	log := a.Log.WithField("benchmark", id)
	m, outcome, err := a.analyze(ctx, log, id)
	if err != nil && outcome != outcomeRegressed {
		outcome = outcomeFailed
		log.WithError(err).Error("analysis failed")
	}
	a.Metrics.outcome(outcome)
	return m, err
}

func (a *Analyzer) analyze(ctx context.Context, log logrus.FieldLogger, id string) (*Measurement, string, error) {
	cfg := &a.cfg
	if cfg.Mode == List {
		a.report.List(id)
		return nil, outcomeListed, nil
	}

	a.report.Start(id)
	if cfg.Mode == Test {
		err := a.harness.Test(ctx, id)
		a.report.Terminated(id)
		return nil, outcomeTested, err
	}

	if cfg.RequireBaseline {
		ok, err := a.store.Exists(id, cfg.Baseline)
		if err != nil {
			return nil, "", &BaselineLoadError{id, cfg.Baseline, err}
		}
		if !ok {
			return nil, "", errors.Wrapf(ErrBaselineMissing, "%s: baseline %q must be saved before comparing against it", id, cfg.Baseline)
		}
	}

	if cfg.Mode == Profile {
		err := a.harness.Profile(ctx, id, cfg.ProfileTime)
		return nil, outcomeProfiled, err
	}

	var data *benchstat.Data
	err := a.stage(log, "measure", func() (err error) {
		data, err = a.measure(ctx, log, id)
		return err
	})
	if err != nil {
		return nil, "", err
	}
	a.report.Analysis(id)

	m, err := a.estimate(log, id, data)
	if err != nil {
		return nil, "", err
	}
	if th, ok := a.harness.(ThroughputHarness); ok && cfg.LoadBaseline == "" {
		if tp, ok := th.Throughput(id); ok {
			if e := typical(m.Estimates); e != nil {
				m.Throughput = tp.Rate(*e)
			}
		}
	}

	if a.store != nil {
		if err := a.stage(log, "compare", func() error { return a.compare(id, m) }); err != nil {
			return nil, "", err
		}
	}

	a.report.Complete(id, m)

	if a.store != nil && cfg.LoadBaseline == "" {
		a.stage(log, "persist", func() error {
			a.persist(log, id, m)
			return nil
		})
	}

	if m.Regressed() {
		log.WithField("p", m.Comparison.PValue).Warn("performance regressed")
		if cfg.FailOnRegression {
			return m, outcomeRegressed, m.Comparison.Err(id)
		}
		return m, outcomeRegressed, nil
	}
	return m, outcomeAnalyzed, nil
}

// measure returns the sample to analyze, either from the harness or
// from the baseline named by Config.LoadBaseline.
func (a *Analyzer) measure(ctx context.Context, log logrus.FieldLogger, id string) (*benchstat.Data, error) {
	if name := a.cfg.LoadBaseline; name != "" {
		data, err := a.store.LoadSample(id, name)
		if err != nil {
			return nil, &BaselineLoadError{id, name, err}
		}
		return data, nil
	}

	env, err := a.environment(ctx, log)
	if err != nil {
		return nil, err
	}
	iters, times, err := a.harness.Sample(ctx, id, env)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: measuring", id)
	}
	data, err := benchstat.NewData(iters, times)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: measuring", id)
	}
	return data, nil
}

// environment measures the Env once and caches it for every later
// benchmark.
func (a *Analyzer) environment(ctx context.Context, log logrus.FieldLogger) (Env, error) {
	if a.env != nil {
		return *a.env, nil
	}
	cost, err := a.harness.ClockCost(ctx)
	if err != nil {
		return Env{}, errors.Wrap(err, "measuring clock cost")
	}
	a.env = &Env{ClockCost: cost}
	log.WithField("clock_cost", cost).Debug("measured clock cost")
	return *a.env, nil
}

// estimate runs the statistics over data: outliers, the slope fit,
// the bootstrapped absolute estimates, and the density.
func (a *Analyzer) estimate(log logrus.FieldLogger, id string, data *benchstat.Data) (*Measurement, error) {
	sample, err := benchstat.NewSample(data.Ratios())
	if err != nil {
		return nil, errors.Wrapf(err, "%s: per-iteration times", id)
	}
	m := &Measurement{ID: id, Data: data, Sample: sample}

	a.stage(log, "outliers", func() error {
		m.Outliers = benchstat.ClassifyOutliers(sample)
		return nil
	})
	if n := m.Outliers.Count().Total(); n > 0 {
		log.WithField("outliers", n).Debug("found outliers")
	}

	var slopeDist *benchstat.Distribution
	var slope benchstat.Estimate
	err = a.stage(log, "regression", func() (err error) {
		slopeDist, slope, err = benchstat.FitRegression(data, a.cfg.Config)
		return err
	})
	if err != nil {
		return nil, errors.Wrapf(err, "%s", id)
	}

	err = a.stage(log, "estimates", func() (err error) {
		m.Distributions, m.Estimates, err = benchstat.PointEstimates(sample, a.cfg.Config)
		return err
	})
	if err != nil {
		return nil, errors.Wrapf(err, "%s", id)
	}
	m.Estimates.Slope = &slope
	m.Distributions.Slope = slopeDist

	if a.cfg.PDFPoints > 0 {
		pdf, err := benchstat.PDF(sample, a.cfg.PDFPoints, a.cfg.Parallelism)
		if err == nil {
			m.PDF = pdf
		} else {
			log.WithError(err).Debug("skipping density estimate")
		}
	}
	return m, nil
}

// compare compares m against Config.Baseline if it has been saved.
func (a *Analyzer) compare(id string, m *Measurement) error {
	name := a.cfg.Baseline
	ok, err := a.store.Exists(id, name)
	if err != nil {
		return &BaselineLoadError{id, name, err}
	}
	if !ok {
		return nil
	}
	data, err := a.store.LoadSample(id, name)
	if err != nil {
		return &BaselineLoadError{id, name, err}
	}
	ests, err := a.store.LoadEstimates(id, name)
	if err != nil {
		return &BaselineLoadError{id, name, err}
	}
	sample, err := benchstat.NewSample(data.Ratios())
	if err != nil {
		return &BaselineLoadError{id, name, err}
	}

	c, err := benchstat.Compare(m.Sample, sample, a.cfg.Config)
	if err != nil {
		return errors.Wrapf(err, "%s: comparing with baseline %q", id, name)
	}
	m.Comparison = c
	m.Baseline = &Baseline{Name: name, Data: data, Sample: sample, Estimates: ests}
	return nil
}

// persist saves m and promotes it to Config.SaveBaseline. Failures
// are logged and never change the result.
func (a *Analyzer) persist(log logrus.FieldLogger, id string, m *Measurement) {
	if err := a.store.Save(m.Record()); err != nil {
		log.WithError(err).Warn("saving results")
		return
	}
	if name := a.cfg.SaveBaseline; name != "" {
		if err := a.store.Promote(id, name); err != nil {
			log.WithError(err).WithField("baseline", name).Warn("saving baseline")
		}
	}
}

// stage runs f and records how long it took.
func (a *Analyzer) stage(log logrus.FieldLogger, name string, f func() error) error {
	start := time.Now()
	err := f()
	took := time.Since(start)
	a.Metrics.stage(name, took)
	log.WithFields(logrus.Fields{"stage": name, "took": took}).Debug("stage done")
	return err
}

type nopReporter struct{}

func (nopReporter) List(string)                   {}
func (nopReporter) Start(string)                  {}
func (nopReporter) Analysis(string)               {}
func (nopReporter) Complete(string, *Measurement) {}
func (nopReporter) Terminated(string)             {}
