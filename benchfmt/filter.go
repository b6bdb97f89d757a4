// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/aclements/benchcheck/internal/query"
)

// A Filter selects benchmark results with a boolean query such as
//
//	.name:Encode goos:linux -/size:(1 2)
//
// Query keys may be:
//
//	.name        the base name of the benchmark
//	.fullname    the full name, including sub-benchmark configuration
//	.unit        the unit of any measurement
//	/gomaxprocs  the GOMAXPROCS suffix of the name
//	/key         the value of a "/key=value" sub-benchmark part
//	key          a file configuration key, such as goos or .file
//
// Values are regular expressions that must match the whole value.
type Filter struct {
	q    query.Query
	exts map[string]func(*Result) []string
}

// NewFilter parses a filter query.
func NewFilter(q string) (*Filter, error) {
	parsed, err := query.Parse(q)
	if err != nil {
		return nil, err
	}
	f := &Filter{q: parsed, exts: make(map[string]func(*Result) []string)}
	for _, key := range query.Keys(parsed) {
		ext, err := extractor(key)
		if err != nil {
			return nil, err
		}
		f.exts[key] = ext
	}
	return f, nil
}

// String returns the parsed form of the query.
func (f *Filter) String() string {
	return f.q.String()
}

// Match reports whether res satisfies the query.
func (f *Filter) Match(res *Result) bool {
	return f.q.Eval(func(key string) []string {
		return f.exts[key](res)
	})
}

func extractor(key string) (func(*Result) []string, error) {
	switch {
	case key == "":
		return nil, fmt.Errorf("empty filter key")
	case key == ".name":
		return func(res *Result) []string { return []string{string(res.BaseName())} }, nil
	case key == ".fullname":
		return func(res *Result) []string { return []string{string(res.FullName)} }, nil
	case key == ".unit":
		return func(res *Result) []string {
			units := make([]string, len(res.Values))
			for i, v := range res.Values {
				units[i] = v.Unit
			}
			return units
		}, nil
	case key == "/gomaxprocs":
		return func(res *Result) []string {
			_, parts := res.NameParts()
			if n := len(parts); n > 0 && parts[n-1][0] == '-' {
				return []string{string(parts[n-1][1:])}
			}
			return nil
		}, nil
	case strings.HasPrefix(key, "/"):
		if len(key) == 1 {
			return nil, fmt.Errorf("bad filter key %q: missing sub-benchmark key", key)
		}
		prefix := []byte(key + "=")
		return func(res *Result) []string {
			_, parts := res.NameParts()
			for _, part := range parts {
				if bytes.HasPrefix(part, prefix) {
					return []string{string(part[len(prefix):])}
				}
			}
			return nil
		}, nil
	case strings.HasPrefix(key, ".") && key != ".file":
		return nil, fmt.Errorf("unknown filter key %q", key)
	}
	return func(res *Result) []string {
		if pos, ok := res.FileConfigIndex(key); ok {
			return []string{string(res.FileConfig[pos].Value)}
		}
		return nil
	}, nil
}

// Filtered returns a Scanner over the results of s that match f.
// Results that fail to parse are passed through so the consumer sees
// their errors.
func Filtered(s Scanner, f *Filter) Scanner {
	return &filtered{s, f}
}

type filtered struct {
	Scanner
	f *Filter
}

func (s *filtered) Scan() bool {
	for s.Scanner.Scan() {
		res, err := s.Scanner.Result()
		if err != nil || s.f.Match(res) {
			return true
		}
	}
	return false
}
