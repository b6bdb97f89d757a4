// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysis

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aclements/benchcheck/benchstat"
	"github.com/aclements/benchcheck/store"
)

func TestTextReporter(t *testing.T) {
	var buf bytes.Buffer
	h := &fakeHarness{perIter: 100}
	st := &store.Dir{Root: t.TempDir()}
	cfg := testConfig()
	cfg.SaveBaseline = ""
	a, _ := newTestAnalyzer(t, cfg, h, st, NewTextReporter(&buf))
	ctx := context.Background()

	require.NoError(t, st.Save(&store.Record{
		Benchmark: store.Benchmark{ID: "Fib"},
		Sample:    sampleOf(t, h),
	}))
	require.NoError(t, st.Promote("Fib", "base"))

	_, err := a.Analyze(ctx, "Fib")
	require.NoError(t, err)
	out := buf.String()
	require.True(t, strings.HasPrefix(out, "Fib"+strings.Repeat(" ", indent-3)+"time:   ["), out)
	require.Contains(t, out, " ns ")
	require.Contains(t, out, "change: [")
	require.Contains(t, out, "(p = 1.00 > 0.05)")
	require.Contains(t, out, "No change in performance detected.")

	buf.Reset()
	h.perIter = 200
	_, err = a.Analyze(ctx, "Fib")
	require.NoError(t, err)
	out = buf.String()
	require.Contains(t, out, "(p = 0.00 < 0.05)")
	require.Contains(t, out, "Performance has regressed.")
	require.Contains(t, out, "+100.")
}

func TestTextReporterThroughput(t *testing.T) {
	var buf bytes.Buffer
	h := &throughputHarness{&fakeHarness{perIter: 100}, 1000}
	a, _ := newTestAnalyzer(t, testConfig(), h, nil, NewTextReporter(&buf))

	_, err := a.Analyze(context.Background(), "Copy")
	require.NoError(t, err)
	lines := strings.Split(buf.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 2, buf.String())
	require.True(t, strings.HasPrefix(lines[0], "Copy"), lines[0])
	require.True(t, strings.HasPrefix(lines[1], strings.Repeat(" ", indent)+"thrpt:  ["), lines[1])
	require.True(t, strings.HasSuffix(lines[1], " GB/s]"), lines[1])

	r := Rate{Unit: "B/s", Estimate: benchstat.Estimate{
		ConfidenceInterval: benchstat.ConfidenceInterval{LowerBound: 9.5e6, UpperBound: 1.05e7},
		PointEstimate:      1e7,
	}}
	require.Equal(t, "[9.50 MB/s 10.00 MB/s 10.50 MB/s]", formatRateCI(r))
}

func TestTextReporterEvents(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextReporter(&buf)
	r.List("Fib/10")
	r.Start("Fib/10")
	r.Analysis("Fib/10")
	r.Terminated("Fib/10")
	require.Equal(t, "Fib/10: bench\nFib/10: success\n", buf.String())
}
