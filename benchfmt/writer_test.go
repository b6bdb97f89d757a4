// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWriter(t *testing.T) {
	const input = `a: 1
b: 2

BenchmarkOne 100 1.5 ns/op 2 B/op
BenchmarkTwo 300 4 ns/op

a: 3
b:

BenchmarkThree 1 1e+09 ns/op
`
	var out strings.Builder
	w := NewWriter(&out)
	rd := NewReader(strings.NewReader(input), "input")
	for rd.Scan() {
		res, err := rd.Result()
		if err != nil {
			t.Fatal(err)
		}
		if err := w.Write(res); err != nil {
			t.Fatal(err)
		}
	}
	if diff := cmp.Diff(input, out.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	// The output parses back to the same results.
	if diff := cmp.Diff(parseAll(t, input), parseAll(t, out.String()), cmpResults...); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}
