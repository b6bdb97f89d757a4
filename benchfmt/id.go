// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"bytes"
	"fmt"
	"strings"
)

// An IDFunc derives the benchmark ID of a result. Results with the
// same ID are runs of the same benchmark.
type IDFunc func(*Result) string

// FullNameID uses the full benchmark name as the ID.
func FullNameID(res *Result) string {
	return string(res.FullName)
}

// NewIDFunc returns an IDFunc that drops parts of the full name.
// Each element of exclude must be "/gomaxprocs", which drops the
// "-N" GOMAXPROCS suffix, or another "/key", which drops "/key=value"
// sub-benchmark parts. This lets results from runs with different
// settings share a baseline.
func NewIDFunc(exclude []string) (IDFunc, error) {
	var drop [][]byte
	dropProcs := false
	for _, k := range exclude {
		if !strings.HasPrefix(k, "/") || len(k) == 1 {
			return nil, fmt.Errorf("bad ID exclusion %q: must be /gomaxprocs or /key", k)
		}
		if k == "/gomaxprocs" {
			dropProcs = true
			continue
		}
		drop = append(drop, append([]byte(k), '='))
	}
	if len(drop) == 0 && !dropProcs {
		return FullNameID, nil
	}
	return func(res *Result) string {
		base, parts := res.NameParts()
		var id strings.Builder
		id.Grow(len(res.FullName))
		id.Write(base)
	outer:
		for _, part := range parts {
			if dropProcs && part[0] == '-' {
				continue
			}
			for _, k := range drop {
				if bytes.HasPrefix(part, k) {
					continue outer
				}
			}
			id.Write(part)
		}
		return id.String()
	}, nil
}
