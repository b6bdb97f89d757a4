// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/aclements/benchcheck/analysis"
	"github.com/aclements/benchcheck/benchfmt"
)

// replayHarness "runs" benchmarks by replaying results already
// recorded by go test.
type replayHarness struct {
	byID map[string]*benchfmt.Measurements
}

func newReplayHarness(ms []*benchfmt.Measurements) *replayHarness {
	h := &replayHarness{make(map[string]*benchfmt.Measurements)}
	for _, m := range ms {
		h.byID[m.ID] = m
	}
	return h
}

func (h *replayHarness) lookup(id string) (*benchfmt.Measurements, error) {
	m, ok := h.byID[id]
	if !ok {
		return nil, errors.Errorf("no results for benchmark %s", id)
	}
	return m, nil
}

// clockReads is the number of clock reads ClockCost averages over.
const clockReads = 10000

func (h *replayHarness) ClockCost(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	for i := 0; i < clockReads; i++ {
		_ = time.Now()
	}
	return time.Since(start) / clockReads, nil
}

func (h *replayHarness) Sample(ctx context.Context, id string, env analysis.Env) ([]float64, []float64, error) {
	m, err := h.lookup(id)
	if err != nil {
		return nil, nil, err
	}
	if m.Len() < 2 {
		return nil, nil, errors.Errorf("benchmark %s has %d run, need at least 2 (use go test -count)", id, m.Len())
	}
	return m.Iters, m.Times, nil
}

// Test succeeds for any recorded benchmark, since it already ran.
func (h *replayHarness) Test(ctx context.Context, id string) error {
	_, err := h.lookup(id)
	return err
}

func (h *replayHarness) Profile(ctx context.Context, id string, d time.Duration) error {
	return errors.New("cannot profile recorded results")
}

var _ analysis.ThroughputHarness = (*replayHarness)(nil)

// Throughput reports the bytes processed per iteration by benchmarks
// that recorded a throughput, as with b.SetBytes.
func (h *replayHarness) Throughput(id string) (analysis.Throughput, bool) {
	m, ok := h.byID[id]
	if !ok {
		return analysis.Throughput{}, false
	}
	b, ok := m.BytesPerOp()
	return analysis.Throughput{PerIter: b, Unit: "B"}, ok
}
