// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aclements/benchcheck/analysis"
	"github.com/aclements/benchcheck/store"
)

// baselineStore is implemented by every store kind.
type baselineStore interface {
	analysis.Store
	Baselines(id string) ([]string, error)
}

type storeOptions struct {
	kind string
	path string
}

func (o *storeOptions) register(cmd *cobra.Command) {
	fl := cmd.PersistentFlags()
	fl.StringVar(&o.kind, "store", "dir", "baseline store `kind` (dir or badger)")
	fl.StringVar(&o.path, "store-path", ".benchcheck", "baseline store `directory`")
}

// open opens the configured store. The caller must call the returned
// function when done with it.
func (o *storeOptions) open() (baselineStore, func(), error) {
	switch o.kind {
	case "dir":
		return &store.Dir{Root: o.path}, func() {}, nil
	case "badger":
		b, err := store.OpenBadger(o.path, logrus.StandardLogger())
		if err != nil {
			return nil, nil, err
		}
		return b, func() {
			if err := b.Close(); err != nil {
				logrus.WithError(err).Warn("closing store")
			}
		}, nil
	}
	return nil, nil, errors.Errorf("unknown --store %q (want dir or badger)", o.kind)
}

func newBaselinesCmd(st *storeOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "baselines id...",
		Short: "List the baselines saved for benchmarks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeStore, err := st.open()
			if err != nil {
				return err
			}
			defer closeStore()
			for _, id := range args {
				names, err := s.Baselines(id)
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", id, name)
				}
			}
			return nil
		},
	}
}
