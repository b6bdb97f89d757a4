// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchstat

import "math/rand/v2"

// Resamples draws bootstrap resamples of a source sample.
//
// A Resamples owns its buffer, which is overwritten in place by every
// call to Next, and must not be shared between goroutines. Any number
// of Resamples may share the same read-only source.
type Resamples struct {
	src []float64
	buf []float64

	seed uint64
	pcg  *rand.PCG
	rng  *rand.Rand
}

// NewResamples returns a Resamples over s whose random stream is
// determined by seed. It fails with ErrInvalidInput if s is empty.
func NewResamples(s Sample, seed uint64) (*Resamples, error) {
	if s.Len() < 1 {
		return nil, statErr("resample", "", ErrInvalidInput, "empty sample")
	}
	pcg := rand.NewPCG(seed, 0)
	return &Resamples{
		src:  s.xs,
		buf:  make([]float64, len(s.xs)),
		seed: seed,
		pcg:  pcg,
		rng:  rand.New(pcg),
	}, nil
}

// Seek positions the random stream at the start of resample i.
// Resample i of a given seed is the same no matter which Resamples
// produces it or which resamples it produced before.
func (r *Resamples) Seek(i int) {
	r.pcg.Seed(r.seed, uint64(i))
}

// Next replaces the buffer with len(source) measurements drawn
// uniformly with replacement from the source and returns it as a
// Sample. The returned Sample is only valid until the next call to
// Next.
func (r *Resamples) Next() Sample {
	n := len(r.src)
	for i := range r.buf {
		r.buf[i] = r.src[r.rng.IntN(n)]
	}
	return sampleOf(r.buf)
}

// NextSplit is like Next, but splits the resample into a prefix of
// length n and the remaining suffix. Over a pooled source a ++ b with
// n = len(a), this resamples under the null hypothesis that a and b
// come from the same population.
func (r *Resamples) NextSplit(n int) (a, b Sample) {
	s := r.Next()
	return sampleOf(s.xs[:n]), sampleOf(s.xs[n:])
}

// pool returns a Sample of a followed by b.
func pool(a, b Sample) Sample {
	c := make([]float64, 0, a.Len()+b.Len())
	c = append(c, a.xs...)
	c = append(c, b.xs...)
	return sampleOf(c)
}

// pairResamples draws resamples of whole (x, y) pairs.
type pairResamples struct {
	x, y   []float64
	bx, by []float64

	seed uint64
	pcg  *rand.PCG
	rng  *rand.Rand
}

func newPairResamples(d *Data, seed uint64) *pairResamples {
	pcg := rand.NewPCG(seed, 0)
	return &pairResamples{
		x: d.x, y: d.y,
		bx:   make([]float64, len(d.x)),
		by:   make([]float64, len(d.y)),
		seed: seed,
		pcg:  pcg,
		rng:  rand.New(pcg),
	}
}

func (r *pairResamples) Seek(i int) {
	r.pcg.Seed(r.seed, uint64(i))
}

func (r *pairResamples) Next() *Data {
	n := len(r.x)
	for i := range r.bx {
		j := r.rng.IntN(n)
		r.bx[i], r.by[i] = r.x[j], r.y[j]
	}
	return &Data{r.bx, r.by}
}
