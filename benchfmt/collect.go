// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"github.com/aclements/benchcheck/benchstat"
	"github.com/aclements/benchcheck/benchunit"
)

// A Scanner is a stream of benchmark results, such as a Reader or
// Files.
type Scanner interface {
	Scan() bool
	Result() (*Result, error)
	Err() error
}

// Measurements are the runs of one benchmark. Run i executed Iters[i]
// iterations in Times[i] nanoseconds.
type Measurements struct {
	ID    string
	Iters []float64
	Times []float64

	// Bytes[i] is the number of bytes run i processed per
	// iteration, or 0 if the run reported no throughput. Bytes is
	// nil if no run reported one.
	Bytes []float64
}

// Len returns the number of runs.
func (m *Measurements) Len() int {
	return len(m.Iters)
}

// Data returns the runs as (iterations, elapsed) pairs for
// regression.
func (m *Measurements) Data() (*benchstat.Data, error) {
	return benchstat.NewData(m.Iters, m.Times)
}

// BytesPerOp returns the mean number of bytes processed per
// iteration over the runs that reported a throughput.
func (m *Measurements) BytesPerOp() (float64, bool) {
	var sum float64
	n := 0
	for _, b := range m.Bytes {
		if b > 0 {
			sum += b
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// Result returns run i as a benchmark result in ns/op, plus MB/s if
// the run reported a throughput.
func (m *Measurements) Result(i int) *Result {
	perOp := m.Times[i] / m.Iters[i]
	res := &Result{
		FullName: []byte(m.ID),
		Iters:    int(m.Iters[i]),
		Values:   []Value{{perOp, "ns/op"}},
	}
	if i < len(m.Bytes) && m.Bytes[i] > 0 && perOp > 0 {
		res.Values = append(res.Values, Value{m.Bytes[i] * 1e3 / perOp, "MB/s"})
	}
	return res
}

// Collect reads every result from s and groups the results with a
// time-per-op measurement by ID, in order of first appearance. A
// bytes-per-second value such as MB/s is recorded in Bytes. If id is
// nil, it uses FullNameID. Malformed results are passed to onErr (if
// non-nil) and skipped.
func Collect(s Scanner, id IDFunc, onErr func(error)) ([]*Measurements, error) {
	if id == nil {
		id = FullNameID
	}
	byID := make(map[string]*Measurements)
	var out []*Measurements
	for s.Scan() {
		res, err := s.Result()
		if err != nil {
			if onErr != nil {
				onErr(err)
			}
			continue
		}
		perOp, ok := nsPerOp(res)
		if !ok || res.Iters <= 0 {
			continue
		}
		key := id(res)
		m := byID[key]
		if m == nil {
			m = &Measurements{ID: key}
			byID[key] = m
			out = append(out, m)
		}
		iters := float64(res.Iters)
		m.Iters = append(m.Iters, iters)
		m.Times = append(m.Times, iters*perOp)
		if b, ok := bytesPerOp(res, perOp); ok {
			for len(m.Bytes) < len(m.Iters)-1 {
				m.Bytes = append(m.Bytes, 0)
			}
			m.Bytes = append(m.Bytes, b)
		} else if m.Bytes != nil {
			m.Bytes = append(m.Bytes, 0)
		}
	}
	return out, s.Err()
}

// bytesPerOp converts the first bytes-per-second value of res to
// bytes per iteration, given the iteration time in nanoseconds.
func bytesPerOp(res *Result, perOp float64) (float64, bool) {
	for _, v := range res.Values {
		if unit, f := benchunit.TidyUnit(v.Unit); unit == "B/s" {
			return v.Value * f * perOp * 1e-9, true
		}
	}
	return 0, false
}

// nsPerOp returns the first time-per-op value of res in nanoseconds.
func nsPerOp(res *Result) (float64, bool) {
	for _, v := range res.Values {
		if v.Unit == "ns/op" {
			return v.Value, true
		}
		if f, ok := benchunit.TimePerOp(v.Unit); ok {
			return v.Value * f * 1e9, true
		}
	}
	return 0, false
}
