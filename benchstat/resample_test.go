// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchstat

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResamples(t *testing.T) {
	if _, err := NewResamples(Sample{}, 1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty source: got %v, want ErrInvalidInput", err)
	}

	src := MustSample(1, 2, 3, 4, 5, 6, 7, 8)
	in := map[float64]bool{}
	for _, x := range src.xs {
		in[x] = true
	}
	rs, err := NewResamples(src, 42)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		r := rs.Next()
		if r.Len() != src.Len() {
			t.Fatalf("resample has %d values, want %d", r.Len(), src.Len())
		}
		for _, x := range r.xs {
			if !in[x] {
				t.Fatalf("resample contains %v, which is not in the source", x)
			}
		}
	}
}

func TestResamplesSeek(t *testing.T) {
	src := MustSample(1, 2, 3, 4, 5, 6, 7, 8)
	a, _ := NewResamples(src, 7)
	b, _ := NewResamples(src, 7)

	// b draws a few unrelated resamples first.
	b.Next()
	b.Next()

	a.Seek(3)
	want := a.Next().Values()
	b.Seek(3)
	got := b.Next().Values()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("resample 3 depends on history (-want +got):\n%s", diff)
	}
}

func TestResamplesSplit(t *testing.T) {
	x, y := MustSample(1, 2, 3), MustSample(10, 20, 30, 40, 50)
	c := pool(x, y)
	if diff := cmp.Diff([]float64{1, 2, 3, 10, 20, 30, 40, 50}, c.Values()); diff != "" {
		t.Errorf("pool (-want +got):\n%s", diff)
	}
	rs, _ := NewResamples(c, 1)
	a, b := rs.NextSplit(x.Len())
	if a.Len() != 3 || b.Len() != 5 {
		t.Errorf("split lengths: got %d+%d, want 3+5", a.Len(), b.Len())
	}
}
