// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package query implements a small boolean key:value query language.
//
// Syntax:
//
//	expr    = andExpr {"OR" andExpr} .
//	andExpr = phrase {"AND" phrase} .
//	phrase  = match {match} .
//	match   = "(" expr ")"
//	        | "-" match
//	        | "*"
//	        | word ":" (word | "(" {word} ")") .
//	word    = [^ ():]* | "\"" [^"]* "\""
//
// Values are regular expressions anchored at both ends, so a literal
// value must match exactly.
package query

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// A Lookup returns the values of key in the item being queried. A
// match succeeds if any value matches.
type Lookup func(key string) []string

// A Query is a node in a parsed query tree: a *Match or an *Op.
type Query interface {
	// Eval reports whether the item described by lookup
	// satisfies the query.
	Eval(lookup Lookup) bool
	String() string
}

// A Match tests the values of one key against a regexp.
type Match struct {
	Off int // byte offset of Key in the query
	Key string

	re  *regexp.Regexp
	src string
}

func (m *Match) Eval(lookup Lookup) bool {
	for _, v := range lookup(m.Key) {
		if m.re.MatchString(v) {
			return true
		}
	}
	return false
}

func (m *Match) String() string {
	return quote(m.Key) + ":" + quote(m.src)
}

func quote(s string) string {
	if s == "" || strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '"' || r == '(' || r == ')' || r == ':'
	}) >= 0 {
		return strconv.Quote(s)
	}
	return s
}

// An OpKind is a boolean operator.
type OpKind int

const (
	And OpKind = 1 + iota
	Or
	Not
)

// An Op combines sub-queries. Not has exactly one operand. An And
// with no operands matches everything and an Or with no operands
// matches nothing.
type Op struct {
	Kind  OpKind
	Exprs []Query
}

func (o *Op) Eval(lookup Lookup) bool {
	switch o.Kind {
	case Not:
		return !o.Exprs[0].Eval(lookup)
	case And:
		for _, e := range o.Exprs {
			if !e.Eval(lookup) {
				return false
			}
		}
		return true
	case Or:
		for _, e := range o.Exprs {
			if e.Eval(lookup) {
				return true
			}
		}
		return false
	}
	panic(fmt.Sprintf("bad OpKind %d", o.Kind))
}

func (o *Op) String() string {
	if o.Kind == Not {
		return "-" + o.Exprs[0].String()
	}
	if o.Kind == And && len(o.Exprs) == 0 {
		return "*"
	}
	sep := " AND "
	if o.Kind == Or {
		sep = " OR "
	}
	var buf strings.Builder
	buf.WriteByte('(')
	for i, e := range o.Exprs {
		if i > 0 {
			buf.WriteString(sep)
		}
		buf.WriteString(e.String())
	}
	buf.WriteByte(')')
	return buf.String()
}

// Keys returns every key q matches against, in order of first use.
func Keys(q Query) []string {
	var keys []string
	seen := make(map[string]bool)
	var walk func(q Query)
	walk = func(q Query) {
		switch q := q.(type) {
		case *Match:
			if !seen[q.Key] {
				seen[q.Key] = true
				keys = append(keys, q.Key)
			}
		case *Op:
			for _, e := range q.Exprs {
				walk(e)
			}
		}
	}
	walk(q)
	return keys
}
