// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command benchcheck analyzes Go benchmark results and detects
// performance regressions against saved baselines.
//
// Usage:
//
//	benchcheck analyze [flags] [inputs...]
//	benchcheck list [flags] [inputs...]
//	benchcheck baselines [flags] id...
//
// analyze reads the output of "go test -bench" from the input files
// (or stdin), bootstraps estimates of each benchmark's time per
// iteration, and compares them against the benchmark's saved
// baseline. Each analysis is saved as the "new" baseline and, unless
// disabled with --save-baseline="", promoted to a named baseline.
//
// With --fail-on-regression, benchcheck exits with status 1 if any
// benchmark regressed. A benchmark regresses only if the t-test is
// significant and every relative change lies entirely above the
// noise threshold.
//
// list prints the ID of every benchmark in the inputs. baselines
// prints the baselines saved for each ID.
package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// errFailed reports that at least one benchmark failed or regressed.
// The details have already been logged.
var errFailed = errors.New("some benchmarks failed")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if err != errFailed {
			logrus.Error(err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string
	root := &cobra.Command{
		Use:           "benchcheck",
		Short:         "Detect performance regressions in Go benchmark results",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return errors.Wrap(err, "--log-level")
			}
			logrus.SetLevel(level)
			logrus.SetOutput(cmd.ErrOrStderr())
			logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warning", "log `level` (debug, info, warning, error)")

	opts := &storeOptions{}
	opts.register(root)
	root.AddCommand(
		newAnalyzeCmd(opts),
		newListCmd(),
		newBaselinesCmd(opts),
	)
	return root
}
