// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package store persists benchmark analyses under a benchmark ID and
// a baseline name.
//
// Every saved analysis is written to the New baseline and may then be
// promoted to a named baseline, which later analyses compare against.
// A baseline consists of these artifacts:
//
//	benchmark.json  the benchmark's identity
//	sample.json     iteration counts and elapsed nanoseconds of each run
//	estimates.json  bootstrapped estimates of the per-iteration time
//	tukey.json      outlier fences of the per-iteration time
//	change.json     relative change against the compared baseline, if any
//	raw.txt         the runs in the Go benchmark format
//
// Dir lays these out as files in a directory tree and Badger stores
// them in a key-value database.
package store

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"

	"github.com/aclements/benchcheck/benchfmt"
	"github.com/aclements/benchcheck/benchstat"
)

// New is the baseline that every analysis is saved to.
const New = "new"

// Artifact names.
const (
	benchmarkFile = "benchmark.json"
	sampleFile    = "sample.json"
	estimatesFile = "estimates.json"
	tukeyFile     = "tukey.json"
	changeFile    = "change.json"
	rawFile       = "raw.txt"
)

// artifacts lists every artifact in the order they are written.
// sample.json is last so a baseline never appears to exist with
// partial contents.
var artifacts = []string{benchmarkFile, estimatesFile, tukeyFile, changeFile, rawFile, sampleFile}

// ErrNotFound is returned when loading from a baseline that has not
// been saved.
var ErrNotFound = errors.New("baseline not found")

// Benchmark identifies a saved benchmark.
type Benchmark struct {
	ID string `json:"id"`
}

// Sample holds the runs of a benchmark: run i executed Iters[i]
// iterations in Times[i] nanoseconds.
type Sample struct {
	Iters []float64 `json:"iters"`
	Times []float64 `json:"times"`
}

// A Record is everything saved for one analysis.
type Record struct {
	Benchmark Benchmark
	Sample    Sample
	Estimates *benchstat.Estimates
	Fences    benchstat.Fences

	// Change holds the relative-change estimates against the
	// baseline the analysis was compared with. It is nil if there
	// was no comparison, and then no change.json is saved.
	Change *benchstat.Estimates
}

// encode renders rec as a map from artifact name to contents. An
// artifact missing from the map must be removed from the baseline.
func encode(rec *Record) (map[string][]byte, error) {
	if rec.Benchmark.ID == "" {
		return nil, errors.New("record has no benchmark ID")
	}
	if len(rec.Sample.Iters) != len(rec.Sample.Times) {
		return nil, errors.Errorf("%s: %d iteration counts but %d times", rec.Benchmark.ID, len(rec.Sample.Iters), len(rec.Sample.Times))
	}
	out := make(map[string][]byte)
	for name, v := range map[string]any{
		benchmarkFile: rec.Benchmark,
		sampleFile:    rec.Sample,
		estimatesFile: rec.Estimates,
		tukeyFile:     rec.Fences,
		changeFile:    rec.Change,
	} {
		if name == changeFile && rec.Change == nil {
			continue
		}
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, errors.Wrapf(err, "%s: encoding %s", rec.Benchmark.ID, name)
		}
		out[name] = append(data, '\n')
	}

	var raw bytes.Buffer
	w := benchfmt.NewWriter(&raw)
	m := benchfmt.Measurements{ID: rec.Benchmark.ID, Iters: rec.Sample.Iters, Times: rec.Sample.Times}
	for i := 0; i < m.Len(); i++ {
		if err := w.Write(m.Result(i)); err != nil {
			return nil, errors.Wrapf(err, "%s: encoding %s", rec.Benchmark.ID, rawFile)
		}
	}
	out[rawFile] = raw.Bytes()
	return out, nil
}

func decodeSample(id, baseline string, data []byte) (*benchstat.Data, error) {
	var s Sample
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrapf(err, "%s/%s: decoding %s", id, baseline, sampleFile)
	}
	d, err := benchstat.NewData(s.Iters, s.Times)
	if err != nil {
		return nil, errors.Wrapf(err, "%s/%s: %s", id, baseline, sampleFile)
	}
	return d, nil
}

func decodeEstimates(id, baseline, artifact string, data []byte) (*benchstat.Estimates, error) {
	var e benchstat.Estimates
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, errors.Wrapf(err, "%s/%s: decoding %s", id, baseline, artifact)
	}
	return &e, nil
}

func checkName(id, baseline string) error {
	if id == "" {
		return errors.New("empty benchmark ID")
	}
	if baseline == "" {
		return errors.Errorf("%s: empty baseline name", id)
	}
	if strings.ContainsAny(baseline, `/\`) || strings.Trim(baseline, ".") == "" {
		return errors.Errorf("%s: bad baseline name %q", id, baseline)
	}
	return nil
}
