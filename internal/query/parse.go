// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"fmt"
	"regexp"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// A SyntaxError reports a malformed query.
type SyntaxError struct {
	Query string // the query string
	Off   int    // byte offset of the error in Query
	Msg   string
}

func (e *SyntaxError) Error() string {
	// Point at the rune, not the byte.
	col := utf8.RuneCountInString(e.Query[:e.Off])
	return fmt.Sprintf("syntax error: %s\n\t%s\n\t%*s^", e.Msg, e.Query, col, "")
}

// token kinds other than single-character operators.
const (
	tokEOF  = 0
	tokWord = 'w'
	tokAnd  = 'A'
	tokOr   = 'O'
)

type token struct {
	kind byte
	off  int
	text string // unquoted
}

func isOpChar(c byte) bool {
	return c == '(' || c == ')' || c == ':'
}

// tokenize splits q into words and single-character operators,
// followed by an EOF token. "-" and "*" are operators only at the
// start of a word, so "foo-bar" is one word.
func tokenize(q string) ([]token, error) {
	var toks []token
	for off := 0; off < len(q); {
		c := q[off]
		switch {
		case isOpChar(c) || c == '-' || c == '*':
			toks = append(toks, token{c, off, q[off : off+1]})
			off++
		case c == '"':
			end := off + 1
			for end < len(q) && q[end] != '"' {
				end++
			}
			if end == len(q) {
				return nil, &SyntaxError{q, off, "missing end quote"}
			}
			toks = append(toks, token{tokWord, off, q[off+1 : end]})
			off = end + 1
		default:
			r, size := utf8.DecodeRuneInString(q[off:])
			if unicode.IsSpace(r) {
				off += size
				continue
			}
			end := off
			for end < len(q) {
				r, size := utf8.DecodeRuneInString(q[end:])
				if unicode.IsSpace(r) || isOpChar(q[end]) {
					break
				}
				end += size
			}
			word := q[off:end]
			kind := byte(tokWord)
			switch word {
			case "AND":
				kind = tokAnd
			case "OR":
				kind = tokOr
			}
			toks = append(toks, token{kind, off, word})
			off = end
		}
	}
	return append(toks, token{tokEOF, len(q), ""}), nil
}

// Parse parses a query string.
func Parse(q string) (Query, error) {
	toks, err := tokenize(q)
	if err != nil {
		return nil, err
	}
	p := &parser{q: q, toks: toks}
	res, i := p.orExpr(0)
	if p.toks[i].kind != tokEOF {
		p.fail(i, "unexpected "+strconv.Quote(p.toks[i].text))
	}
	if p.err != nil {
		return nil, p.err
	}
	return res, nil
}

type parser struct {
	q    string
	toks []token
	err  *SyntaxError
}

// fail records the earliest error and skips to the EOF token.
func (p *parser) fail(i int, msg string) int {
	off := p.toks[i].off
	if p.err == nil || off < p.err.Off {
		p.err = &SyntaxError{p.q, off, msg}
	}
	return len(p.toks) - 1
}

func (p *parser) orExpr(i int) (Query, int) {
	return p.binary(i, tokOr, Or, p.andExpr)
}

func (p *parser) andExpr(i int) (Query, int) {
	return p.binary(i, tokAnd, And, p.phrase)
}

func (p *parser) binary(i int, tok byte, kind OpKind, sub func(int) (Query, int)) (Query, int) {
	q, i := sub(i)
	if p.toks[i].kind != tok {
		return q, i
	}
	terms := []Query{q}
	for p.toks[i].kind == tok {
		q, i = sub(i + 1)
		terms = append(terms, q)
	}
	return &Op{kind, terms}, i
}

func (p *parser) phrase(i int) (Query, int) {
	var terms []Query
	for {
		switch p.toks[i].kind {
		case '(', '-', '*', tokWord:
			var q Query
			q, i = p.match(i)
			terms = append(terms, q)
			continue
		case ')', tokAnd, tokOr, tokEOF:
		default:
			return nil, p.fail(i, "unexpected "+strconv.Quote(p.toks[i].text))
		}
		break
	}
	switch len(terms) {
	case 0:
		return nil, p.fail(i, "nothing to match")
	case 1:
		return terms[0], i
	}
	return &Op{And, terms}, i
}

func (p *parser) match(i int) (Query, int) {
	switch p.toks[i].kind {
	case '(':
		q, i := p.orExpr(i + 1)
		if p.toks[i].kind != ')' {
			return nil, p.fail(i, `missing ")"`)
		}
		return q, i + 1
	case '-':
		q, i := p.match(i + 1)
		return &Op{Not, []Query{q}}, i
	case '*':
		return &Op{And, nil}, i + 1
	case tokWord:
		key, off := p.toks[i].text, p.toks[i].off
		if p.toks[i+1].kind != ':' {
			return nil, p.fail(i, "expected key:value")
		}
		switch p.toks[i+2].kind {
		case tokWord, tokAnd, tokOr:
			return p.value(i+2, off, key)
		case '(':
			var terms []Query
			for i += 3; p.toks[i].kind == tokWord; {
				var q Query
				q, i = p.value(i, off, key)
				terms = append(terms, q)
			}
			if p.toks[i].kind != ')' {
				return nil, p.fail(i, "expected value")
			}
			if len(terms) == 0 {
				return nil, p.fail(i, "nothing to match")
			}
			return &Op{Or, terms}, i + 1
		}
		return nil, p.fail(i, "expected key:value")
	}
	return nil, p.fail(i, "expected key:value or subexpression")
}

func (p *parser) value(i, keyOff int, key string) (Query, int) {
	src := p.toks[i].text
	if _, err := regexp.Compile(src); err != nil {
		return nil, p.fail(i, err.Error())
	}
	re := regexp.MustCompile("^(?:" + src + ")$")
	return &Match{Off: keyOff, Key: key, re: re, src: src}, i + 1
}
