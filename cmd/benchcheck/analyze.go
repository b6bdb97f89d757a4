// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aclements/benchcheck/analysis"
	"github.com/aclements/benchcheck/benchfmt"
)

type analyzeFlags struct {
	config      string
	baseline    string
	save        string
	load        string
	require     bool
	failOnReg   bool
	filter      string
	seed        uint64
	resamples   int
	noise       float64
	metricsFile string
	in          inputFlags
}

// inputFlags select and group the results read from the inputs.
type inputFlags struct {
	ignore []string
	query  string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.ignore, "ignore", nil, "drop `keys` (/gomaxprocs or /key) from benchmark IDs")
	cmd.Flags().StringVar(&f.query, "query", "", "only read results matching `query`, such as \"goos:linux .name:Encode\"")
}

func newAnalyzeCmd(st *storeOptions) *cobra.Command {
	var f analyzeFlags
	cmd := &cobra.Command{
		Use:   "analyze [inputs...]",
		Short: "Analyze benchmark results and compare them with a baseline",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.analysisConfig(cmd)
			if err != nil {
				return err
			}
			return runAnalysis(cmd, cfg, st, &f.in, f.metricsFile, args)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.config, "config", "", "read analysis settings from YAML `file`")
	fl.StringVar(&f.baseline, "baseline", analysis.DefaultConfig.Baseline, "compare against baseline `name`")
	fl.StringVar(&f.save, "save-baseline", analysis.DefaultConfig.SaveBaseline, "save results as baseline `name` (empty to disable)")
	fl.StringVar(&f.load, "load-baseline", "", "analyze the sample saved as baseline `name` instead of the inputs")
	fl.BoolVar(&f.require, "require-baseline", false, "fail benchmarks without a saved baseline")
	fl.BoolVar(&f.failOnReg, "fail-on-regression", false, "exit with status 1 if any benchmark regressed")
	fl.StringVar(&f.filter, "filter", "", "only analyze benchmarks matching `regexp`")
	fl.Uint64Var(&f.seed, "seed", 0, "bootstrap random `seed` (0 for a random seed)")
	fl.IntVar(&f.resamples, "resamples", analysis.DefaultConfig.Resamples, "number of bootstrap `resamples`")
	fl.Float64Var(&f.noise, "noise-threshold", analysis.DefaultConfig.NoiseThreshold, "ignore relative changes within `fraction`")
	fl.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics to `file`")
	f.in.register(cmd)
	return cmd
}

func newListCmd() *cobra.Command {
	var in inputFlags
	cmd := &cobra.Command{
		Use:   "list [inputs...]",
		Short: "List the benchmarks in the inputs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := analysis.DefaultConfig
			cfg.Mode = analysis.List
			return runAnalysis(cmd, cfg, nil, &in, "", args)
		},
	}
	in.register(cmd)
	return cmd
}

// analysisConfig builds the analysis configuration from --config and
// any flags set explicitly on the command line.
func (f *analyzeFlags) analysisConfig(cmd *cobra.Command) (analysis.Config, error) {
	cfg := analysis.DefaultConfig
	if f.config != "" {
		var err error
		if cfg, err = analysis.LoadConfig(f.config); err != nil {
			return cfg, err
		}
	}
	set := cmd.Flags().Changed
	if set("baseline") {
		cfg.Baseline = f.baseline
	}
	if set("save-baseline") {
		cfg.SaveBaseline = f.save
	}
	if set("load-baseline") {
		cfg.LoadBaseline = f.load
	}
	if set("require-baseline") {
		cfg.RequireBaseline = f.require
	}
	if set("fail-on-regression") {
		cfg.FailOnRegression = f.failOnReg
	}
	if set("filter") {
		cfg.Filter = f.filter
	}
	if set("seed") {
		cfg.Seed = f.seed
	}
	if set("resamples") {
		cfg.Resamples = f.resamples
	}
	if set("noise-threshold") {
		cfg.NoiseThreshold = f.noise
	}
	return cfg, cfg.Validate()
}

func runAnalysis(cmd *cobra.Command, cfg analysis.Config, st *storeOptions, in *inputFlags, metricsFile string, inputs []string) error {
	ids, h, err := in.read(cfg, inputs)
	if err != nil {
		return err
	}

	var s analysis.Store
	if st != nil && cfg.Mode != analysis.List {
		bs, closeStore, err := st.open()
		if err != nil {
			return err
		}
		defer closeStore()
		s = bs
	}

	var harness analysis.Harness
	if h != nil {
		harness = h
	}
	a, err := analysis.NewAnalyzer(cfg, harness, s, analysis.NewTextReporter(cmd.OutOrStdout()))
	if err != nil {
		return err
	}
	reg := prometheus.NewRegistry()
	a.Metrics = analysis.NewMetrics(reg)

	failed := 0
	for _, res := range a.Run(context.Background(), ids) {
		if res.Err != nil {
			failed++
		}
	}

	if metricsFile != "" {
		if err := prometheus.WriteToTextfile(metricsFile, reg); err != nil {
			logrus.WithError(err).Warn("writing metrics")
		}
	}
	if failed > 0 {
		logrus.Warnf("%d of %d benchmarks failed or regressed", failed, len(ids))
		return errFailed
	}
	return nil
}

// read returns the benchmark IDs to analyze and a harness that
// replays their runs. With --load-baseline, the IDs come from the
// inputs but the harness is not needed.
func (f *inputFlags) read(cfg analysis.Config, inputs []string) ([]string, *replayHarness, error) {
	idFunc := benchfmt.FullNameID
	if len(f.ignore) > 0 {
		var err error
		if idFunc, err = benchfmt.NewIDFunc(f.ignore); err != nil {
			return nil, nil, err
		}
	}
	var s benchfmt.Scanner = &benchfmt.Files{Paths: inputs, AllowStdin: true}
	if f.query != "" {
		filter, err := benchfmt.NewFilter(f.query)
		if err != nil {
			return nil, nil, errors.Wrap(err, "--query")
		}
		s = benchfmt.Filtered(s, filter)
	}
	ms, err := benchfmt.Collect(s, idFunc, func(err error) {
		logrus.WithError(err).Warn("skipping malformed result")
	})
	if err != nil {
		return nil, nil, errors.Wrap(err, "reading inputs")
	}
	if len(ms) == 0 {
		return nil, nil, errors.New("no benchmark results in inputs")
	}
	ids := make([]string, len(ms))
	for i, m := range ms {
		ids[i] = m.ID
	}
	if cfg.Mode == analysis.List || cfg.LoadBaseline != "" {
		return ids, nil, nil
	}
	return ids, newReplayHarness(ms), nil
}
