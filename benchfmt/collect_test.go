// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const collectInput = `goos: linux
BenchmarkA-8 100 10 ns/op 4 B/op
BenchmarkB/size=1-8 10 2 ms/op
BenchmarkA-8 200 12 ns/op
BenchmarkBroken 1
BenchmarkAllocs 10 3 B/op
BenchmarkA-4 50 20 ns/op
`

func TestCollect(t *testing.T) {
	var errs []string
	ms, err := Collect(NewReader(strings.NewReader(collectInput), "in"), nil, func(err error) {
		errs = append(errs, err.Error())
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []*Measurements{
		{ID: "A-8", Iters: []float64{100, 200}, Times: []float64{1000, 2400}},
		{ID: "B/size=1-8", Iters: []float64{10}, Times: []float64{10 * 2e-3 * 1e9}},
		{ID: "A-4", Iters: []float64{50}, Times: []float64{1000}},
	}
	if diff := cmp.Diff(want, ms, cmpopts.EquateApprox(1e-12, 0)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"in:5: missing measurements"}, errs); diff != "" {
		t.Errorf("errors (-want +got):\n%s", diff)
	}

	d, err := ms[0].Data()
	if err != nil {
		t.Fatal(err)
	}
	if got := d.Ratios(); got[0] != 10 || got[1] != 12 {
		t.Errorf("per-iteration times %v, want [10 12]", got)
	}
	if got := ms[0].Result(1); got.Iters != 200 || got.Values[0] != (Value{12, "ns/op"}) {
		t.Errorf("Result(1) = %+v", got)
	}
}

func TestCollectIDFunc(t *testing.T) {
	id, err := NewIDFunc([]string{"/gomaxprocs", "/size"})
	if err != nil {
		t.Fatal(err)
	}
	ms, err := Collect(NewReader(strings.NewReader(collectInput), "in"), id, nil)
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	var runs []int
	for _, m := range ms {
		ids = append(ids, m.ID)
		runs = append(runs, m.Len())
	}
	if diff := cmp.Diff([]string{"A", "B"}, ids); diff != "" {
		t.Errorf("IDs (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{3, 1}, runs); diff != "" {
		t.Errorf("runs (-want +got):\n%s", diff)
	}

	if _, err := NewIDFunc([]string{"gomaxprocs"}); err == nil {
		t.Errorf("NewIDFunc accepted a key without /")
	}
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	p1, p2 := filepath.Join(dir, "one.txt"), filepath.Join(dir, "two.txt")
	if err := os.WriteFile(p1, []byte("BenchmarkA 1 5 ns/op\n"), 0o666); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p2, []byte("BenchmarkA 2 6 ns/op\nBenchmarkB 1 1 ns/op\n"), 0o666); err != nil {
		t.Fatal(err)
	}

	f := &Files{Paths: []string{p1, p2}}
	var files []string
	for f.Scan() {
		res, err := f.Result()
		if err != nil {
			t.Fatal(err)
		}
		files = append(files, res.GetFileConfig(".file"))
	}
	if err := f.Err(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{p1, p2, p2}, files); diff != "" {
		t.Errorf(".file keys (-want +got):\n%s", diff)
	}

	f = &Files{Paths: []string{filepath.Join(dir, "missing.txt")}}
	if f.Scan() || f.Err() == nil {
		t.Errorf("missing file: want an error")
	}
}

func TestCollectThroughput(t *testing.T) {
	const input = `BenchmarkCopy-8 1000 500 ns/op 2048 MB/s
BenchmarkCopy-8 1000 400 ns/op
BenchmarkCopy-8 2000 250 ns/op 4096 MB/s
BenchmarkLate 10 100 ns/op
BenchmarkLate 10 100 ns/op 10 MB/s
BenchmarkNone 10 100 ns/op 8 B/op
`
	ms, err := Collect(NewReader(strings.NewReader(input), "in"), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	var got [][]float64
	for _, m := range ms {
		got = append(got, m.Bytes)
	}
	want := [][]float64{{1024, 0, 1024}, {0, 1}, nil}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(1e-12, 0)); diff != "" {
		t.Errorf("bytes per op (-want +got):\n%s", diff)
	}

	if b, ok := ms[0].BytesPerOp(); !ok || !cmp.Equal(b, 1024.0, cmpopts.EquateApprox(1e-12, 0)) {
		t.Errorf("BytesPerOp() = %v, %v; want 1024, true", b, ok)
	}
	if _, ok := ms[2].BytesPerOp(); ok {
		t.Errorf("BytesPerOp() of a benchmark without throughput: want false")
	}

	res := ms[0].Result(0)
	if len(res.Values) != 2 || res.Values[1].Unit != "MB/s" || !cmp.Equal(res.Values[1].Value, 2048.0, cmpopts.EquateApprox(1e-12, 0)) {
		t.Errorf("Result(0).Values = %v, want 500 ns/op and 2048 MB/s", res.Values)
	}
	if res := ms[0].Result(1); len(res.Values) != 1 {
		t.Errorf("Result(1).Values = %v, want only ns/op", res.Values)
	}
}
