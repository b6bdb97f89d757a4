// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchunit

import "testing"

func TestTidyUnit(t *testing.T) {
	test := func(unit, want string, wantFactor float64) {
		t.Helper()
		got, factor := TidyUnit(unit)
		if got != want || factor != wantFactor {
			t.Errorf("TidyUnit(%q): got %q, %v, want %q, %v", unit, got, factor, want, wantFactor)
		}
	}
	test("ns/op", "sec/op", 1e-9)
	test("sec/op", "sec/op", 1)
	test("us/op", "sec/op", 1e-6)
	test("ms/op", "sec/op", 1e-3)
	test("s/op", "sec/op", 1)
	test("B/op", "B/op", 1)
	test("MB/s", "B/s", 1e6)
	test("ns/ns", "sec/ns", 1e-9)
	test("gc-ns/op", "gc-sec/op", 1e-9)
	test("widgets/op", "widgets/op", 1)
}

func TestTimePerOp(t *testing.T) {
	test := func(unit string, want float64, wantOK bool) {
		t.Helper()
		got, ok := TimePerOp(unit)
		if got != want || ok != wantOK {
			t.Errorf("TimePerOp(%q): got %v, %v, want %v, %v", unit, got, ok, want, wantOK)
		}
	}
	test("ns/op", 1e-9, true)
	test("ms/op", 1e-3, true)
	test("sec/op", 1, true)
	test("B/op", 0, false)
	test("gc-ns/op", 0, false)
}
