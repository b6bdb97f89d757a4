// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysis

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcomes of a benchmark, as counted by Metrics.
const (
	outcomeListed    = "listed"
	outcomeTested    = "tested"
	outcomeProfiled  = "profiled"
	outcomeAnalyzed  = "analyzed"
	outcomeRegressed = "regressed"
	outcomeFailed    = "failed"
)

// Metrics are Prometheus collectors for an Analyzer. A nil *Metrics
// records nothing.
type Metrics struct {
	Benchmarks  *prometheus.CounterVec
	StageTime   *prometheus.HistogramVec
	Regressions prometheus.Counter
}

// NewMetrics creates Metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Benchmarks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "benchcheck_benchmarks_total",
			Help: "Benchmarks processed, by outcome.",
		}, []string{"outcome"}),
		StageTime: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "benchcheck_stage_seconds",
			Help:    "Time spent in each analysis stage.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"stage"}),
		Regressions: f.NewCounter(prometheus.CounterOpts{
			Name: "benchcheck_regressions_total",
			Help: "Benchmarks whose comparison against the baseline regressed.",
		}),
	}
}

func (m *Metrics) outcome(o string) {
	if m == nil {
		return
	}
	m.Benchmarks.WithLabelValues(o).Inc()
	if o == outcomeRegressed {
		m.Regressions.Inc()
	}
}

func (m *Metrics) stage(name string, d time.Duration) {
	if m == nil {
		return
	}
	m.StageTime.WithLabelValues(name).Observe(d.Seconds())
}
