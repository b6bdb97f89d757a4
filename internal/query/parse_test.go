// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	check := func(query string, want string) {
		t.Helper()
		q, err := Parse(query)
		if err != nil {
			t.Errorf("%s: unexpected error %s", query, err)
		} else if got := q.String(); got != want {
			t.Errorf("%s: got %s, want %s", query, got, want)
		}
	}
	checkErr := func(query, msg string, pos int) {
		t.Helper()
		_, err := Parse(query)
		if se, _ := err.(*SyntaxError); se == nil || se.Msg != msg || se.Off != pos {
			t.Errorf("%s: want error %s at %d; got %v", query, msg, pos, err)
		}
	}
	check(`*`, `*`)
	check(`a:b`, `a:b`)
	checkErr(`a`, "expected key:value", 0)
	checkErr(`a :`, "expected key:value", 0)
	checkErr(`a:`, "expected key:value", 0)
	checkErr(``, "nothing to match", 0)
	checkErr(`()`, "nothing to match", 1)
	checkErr(`AND`, "nothing to match", 0)
	check(`"a":"b c"`, `a:"b c"`)
	checkErr(`a "b`, "missing end quote", 2)
	check(`(a:b)`, `a:b`)
	checkErr(`(a:b`, `missing ")"`, 4)
	checkErr(`(a:b))`, `unexpected ")"`, 5)
	check(`a:b c:d e:f`, `(a:b AND c:d AND e:f)`)
	check(`-a:b`, `-a:b`)
	check(`-*`, `-*`)
	check(`a:b AND c:d`, `(a:b AND c:d)`)
	check(`-a:b AND c:d`, `(-a:b AND c:d)`)
	check(`-(a:b AND c:d)`, `-(a:b AND c:d)`)
	check(`a:b AND * AND c:d`, `(a:b AND * AND c:d)`)
	check(`a:b OR c:d`, `(a:b OR c:d)`)
	check(`a:b AND c:d OR e:f AND g:h`, `((a:b AND c:d) OR (e:f AND g:h))`)
	check(`a:b AND (c:d OR e:f) AND g:h`, `(a:b AND (c:d OR e:f) AND g:h)`)
	check(`a:(b c d)`, `(a:b OR a:c OR a:d)`)
	check(`.name:foo-bar`, `.name:foo-bar`)
	checkErr(`a:(b AND c)`, "expected value", 5)
	checkErr(`a:()`, "nothing to match", 3)
	checkErr(`a:[`, "error parsing regexp: missing closing ]: `[`", 2)
}

func TestSyntaxErrorString(t *testing.T) {
	_, err := Parse(`µ:b)`)
	want := "syntax error: unexpected \")\"\n\tµ:b)\n\t   ^"
	if err == nil || err.Error() != want {
		t.Errorf("got %q, want %q", err, want)
	}
}

func TestEval(t *testing.T) {
	item := map[string][]string{
		"goos":  {"linux"},
		".name": {"Encode"},
		".unit": {"ns/op", "B/op"},
	}
	lookup := func(key string) []string { return item[key] }

	for _, test := range []struct {
		q    string
		want bool
	}{
		{`*`, true},
		{`-*`, false},
		{`goos:linux`, true},
		{`goos:lin`, false},
		{`goos:lin.*`, true},
		{`goos:(darwin linux)`, true},
		{`goos:linux .name:Decode`, false},
		{`goos:linux OR .name:Decode`, true},
		{`-goos:linux`, false},
		{`.unit:B/op`, true},
		{`missing:x`, false},
		{`-missing:x`, true},
		{`(goos:darwin OR .name:Enc.*) AND .unit:ns/op`, true},
	} {
		q, err := Parse(test.q)
		if err != nil {
			t.Errorf("%s: %v", test.q, err)
			continue
		}
		if got := q.Eval(lookup); got != test.want {
			t.Errorf("%s: got %v, want %v", test.q, got, test.want)
		}
	}
}

func TestKeys(t *testing.T) {
	q, err := Parse(`goos:linux (.name:A OR -goos:b) .unit:(x y)`)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"goos", ".name", ".unit"}
	if diff := cmp.Diff(want, Keys(q)); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	if !strings.Contains(q.String(), "goos:linux") {
		t.Errorf("String() = %s", q)
	}
}
