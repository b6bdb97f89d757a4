// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchunit normalizes benchmark units and formats measured
// values for reports.
package benchunit

import "unicode"

// A unitLexer splits a unit like "ns/op" or "B*sec/op" into tokens,
// tracking whether each token is in the numerator or denominator.
//
// "*" returns to the numerator and "/" switches to the denominator.
// "-" and spaces separate tokens without changing sides.
type unitLexer struct {
	rest string
	off  int // bytes of the original unit consumed

	tok   string
	pos   int  // offset of tok in the original unit
	denom bool // tok is in the denominator
}

func isUnitSep(r rune) bool {
	return r == '*' || r == '/' || r == '-' || unicode.IsSpace(r)
}

func (l *unitLexer) next() bool {
	start := -1
	for i, r := range l.rest {
		switch {
		case r == '*':
			l.denom = false
		case r == '/':
			l.denom = true
		case !isUnitSep(r):
			start = i
		}
		if start >= 0 {
			break
		}
	}
	if start < 0 {
		l.off += len(l.rest)
		l.rest = ""
		return false
	}
	l.off += start
	l.rest = l.rest[start:]

	end := len(l.rest)
	for i, r := range l.rest {
		if isUnitSep(r) {
			end = i
			break
		}
	}
	l.tok, l.pos = l.rest[:end], l.off
	l.off += end
	l.rest = l.rest[end:]
	return true
}
