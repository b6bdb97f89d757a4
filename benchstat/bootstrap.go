// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchstat

import (
	"math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// A Bootstrap estimates sampling distributions by resampling with
// replacement.
//
// Resamples are split into contiguous index ranges, one per worker.
// Each worker owns its resampling buffer and returns its part of the
// distribution, and the parts are concatenated in index order once
// every worker has finished. Resample i depends only on Seed and i, so
// a fixed Seed produces identical distributions regardless of
// Parallelism.
type Bootstrap struct {
	// Resamples is the number of resamples to draw. It must be at
	// least 2.
	Resamples int

	// Parallelism is the number of workers. If <= 0, this uses
	// runtime.GOMAXPROCS(0).
	Parallelism int

	// Seed seeds the random streams. If 0, a random seed is chosen
	// for each bootstrap.
	Seed uint64
}

// An Estimator computes statistics from one sample.
type Estimator func(s Sample) (Tuple, error)

// An Estimator2 computes statistics from a pair of samples.
type Estimator2 func(a, b Sample) (Tuple, error)

// Univariate applies fn to resamples of s and returns the
// distribution of every statistic fn sets.
func (b Bootstrap) Univariate(s Sample, fn Estimator) (*Distributions, error) {
	if s.Len() < 1 {
		return nil, statErr("bootstrap", "", ErrInvalidInput, "empty sample")
	}
	tuples, err := fanOut(b, func(seed uint64) func(i int) (Tuple, error) {
		rs, _ := NewResamples(s, seed)
		return func(i int) (Tuple, error) {
			rs.Seek(i)
			return fn(rs.Next())
		}
	})
	if err != nil {
		return nil, err
	}
	return collect(tuples)
}

// Mixed applies fn to resamples drawn under the null hypothesis that
// x and y come from the same population: x and y are pooled, the pool
// is resampled, and each resample is split back into fragments of
// len(x) and len(y) measurements.
func (b Bootstrap) Mixed(x, y Sample, fn Estimator2) (*Distributions, error) {
	tuples, err := mixed(b, x, y, fn)
	if err != nil {
		return nil, err
	}
	return collect(tuples)
}

func mixed[T any](b Bootstrap, x, y Sample, fn func(x, y Sample) (T, error)) ([]T, error) {
	if x.Len() < 1 || y.Len() < 1 {
		return nil, statErr("bootstrap", "", ErrInvalidInput, "empty sample")
	}
	c := pool(x, y)
	n := x.Len()
	return fanOut(b, func(seed uint64) func(i int) (T, error) {
		rs, _ := NewResamples(c, seed)
		return func(i int) (T, error) {
			rs.Seek(i)
			return fn(rs.NextSplit(n))
		}
	})
}

// TwoSample applies fn to pairs of independent resamples of x and y.
func (b Bootstrap) TwoSample(x, y Sample, fn Estimator2) (*Distributions, error) {
	if x.Len() < 1 || y.Len() < 1 {
		return nil, statErr("bootstrap", "", ErrInvalidInput, "empty sample")
	}
	tuples, err := fanOut(b, func(seed uint64) func(i int) (Tuple, error) {
		rx, _ := NewResamples(x, seed)
		// Offset y's stream so equal-length samples don't draw
		// the same indexes.
		ry, _ := NewResamples(y, seed^twoSampleSalt)
		return func(i int) (Tuple, error) {
			rx.Seek(i)
			ry.Seek(i)
			return fn(rx.Next(), ry.Next())
		}
	})
	if err != nil {
		return nil, err
	}
	return collect(tuples)
}

// Bivariate applies fn to resamples of whole (x, y) pairs of d.
func (b Bootstrap) Bivariate(d *Data, fn func(d *Data) (Tuple, error)) (*Distributions, error) {
	if d.Len() < 1 {
		return nil, statErr("bootstrap", "", ErrInvalidInput, "empty data")
	}
	tuples, err := fanOut(b, func(seed uint64) func(i int) (Tuple, error) {
		rs := newPairResamples(d, seed)
		return func(i int) (Tuple, error) {
			rs.Seek(i)
			return fn(rs.Next())
		}
	})
	if err != nil {
		return nil, err
	}
	return collect(tuples)
}

// Salts that derive independent streams from one seed.
const (
	twoSampleSalt = 0x9e3779b97f4a7c15
	relativeSalt  = 0xbf58476d1ce4e5b9
)

// derive returns b with its seed mixed with salt. A random seed stays
// random and a fixed seed never becomes 0.
func (b Bootstrap) derive(salt uint64) Bootstrap {
	if b.Seed == 0 {
		return b
	}
	b.Seed ^= salt
	if b.Seed == 0 {
		b.Seed = ^salt
	}
	return b
}

func (b Bootstrap) workers() int {
	w := b.Parallelism
	if w <= 0 {
		w = runtime.GOMAXPROCS(0)
	}
	if w > b.Resamples {
		w = b.Resamples
	}
	return w
}

// fanOut evaluates the draw function of every resample index and
// returns the results in index order. newDraw is called once per
// worker to set up that worker's private state.
func fanOut[T any](b Bootstrap, newDraw func(seed uint64) func(i int) (T, error)) ([]T, error) {
	n := b.Resamples
	if n < 2 {
		return nil, statErr("bootstrap", "", ErrInsufficientResamples, "%d resamples", n)
	}
	seed := b.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	workers := b.workers()
	parts := make([][]T, workers)
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		lo, hi := w*n/workers, (w+1)*n/workers
		g.Go(func() error {
			draw := newDraw(seed)
			part := make([]T, 0, hi-lo)
			for i := lo; i < hi; i++ {
				v, err := draw(i)
				if err != nil {
					return err
				}
				part = append(part, v)
			}
			parts[w] = part
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]T, 0, n)
	for _, part := range parts {
		out = append(out, part...)
	}
	return out, nil
}

// collect transposes per-resample tuples into one distribution per
// statistic. Every tuple must set the same statistics.
func collect(tuples []Tuple) (*Distributions, error) {
	dists := new(Distributions)
	if len(tuples) == 0 {
		return dists, nil
	}
	for _, s := range tuples[0].Stats() {
		vals := make([]float64, len(tuples))
		for i, t := range tuples {
			v, ok := t.Get(s)
			if !ok {
				return nil, statErr("bootstrap", s.String(), ErrInvalidInput, "missing from resample %d", i)
			}
			vals[i] = v
		}
		dists.Set(s, NewDistribution(vals))
	}
	return dists, nil
}
