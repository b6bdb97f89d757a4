// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchunit

import (
	"strings"
	"sync"
)

// timeTokens maps pre-scaled time units to their size in seconds.
var timeTokens = map[string]float64{
	"ns":  1e-9,
	"us":  1e-6,
	"µs":  1e-6,
	"ms":  1e-3,
	"s":   1,
	"sec": 1,
}

type tidied struct {
	unit   string
	factor float64
}

var tidyCache sync.Map // unit string -> tidied

// TidyUnit rewrites unit in base units and returns the factor that
// converts a value in unit to a value in the tidied unit. Time units
// in the numerator become "sec" and "MB" becomes "B", so "ns/op"
// tidies to "sec/op" with factor 1e-9.
func TidyUnit(unit string) (string, float64) {
	switch unit {
	case "ns/op":
		return "sec/op", 1e-9
	case "sec/op", "B/op", "allocs/op":
		return unit, 1
	}
	if t, ok := tidyCache.Load(unit); ok {
		t := t.(tidied)
		return t.unit, t.factor
	}
	t := tidy(unit)
	tidyCache.Store(unit, t)
	return t.unit, t.factor
}

func tidy(unit string) tidied {
	var b strings.Builder
	factor := 1.0
	last := 0
	l := unitLexer{rest: unit}
	for l.next() {
		if l.denom {
			continue
		}
		replace := ""
		if f, ok := timeTokens[l.tok]; ok {
			replace = "sec"
			factor *= f
		} else if l.tok == "MB" {
			replace = "B"
			factor *= 1e6
		} else {
			continue
		}
		b.WriteString(unit[last:l.pos])
		b.WriteString(replace)
		last = l.pos + len(l.tok)
	}
	b.WriteString(unit[last:])
	return tidied{b.String(), factor}
}

// TimePerOp reports whether unit measures elapsed time per
// iteration, and if so the factor that converts it to seconds.
func TimePerOp(unit string) (factor float64, ok bool) {
	tidied, factor := TidyUnit(unit)
	if tidied != "sec/op" {
		return 0, false
	}
	return factor, true
}
