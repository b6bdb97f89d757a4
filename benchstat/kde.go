// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchstat

import (
	"runtime"

	"github.com/aclements/go-moremath/stats"
	"golang.org/x/sync/errgroup"
)

// A Point is a point of a sampled curve.
type Point struct {
	X, Y float64
}

// PDF samples the Gaussian kernel density estimate of s at n evenly
// spaced points spanning the sample plus three bandwidths on either
// side. The bandwidth follows Silverman's rule of thumb.
//
// The sweep is split across parallelism workers (or GOMAXPROCS if
// parallelism <= 0).
func PDF(s Sample, n, parallelism int) ([]Point, error) {
	if n < 2 {
		return nil, statErr("pdf", "", ErrInvalidInput, "need at least 2 points, have %d", n)
	}
	if s.Len() < 2 {
		return nil, statErr("pdf", "sample", ErrInvalidInput, "need at least 2 measurements, have %d", s.Len())
	}
	ss := stats.Sample{Xs: s.xs}
	bw := stats.BandwidthSilverman(&ss)
	if !(bw > 0) {
		return nil, statErr("pdf", "sample", ErrDegenerateInput, "zero bandwidth")
	}
	min, max := s.Bounds()
	lo, hi := min-3*bw, max+3*bw
	dx := (hi - lo) / float64(n-1)

	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}
	if parallelism > n {
		parallelism = n
	}
	parts := make([][]Point, parallelism)
	var g errgroup.Group
	for w := 0; w < parallelism; w++ {
		first, last := w*n/parallelism, (w+1)*n/parallelism
		g.Go(func() error {
			kde := stats.KDE{Sample: ss, Kernel: stats.GaussianKernel, Bandwidth: bw}
			part := make([]Point, 0, last-first)
			for i := first; i < last; i++ {
				x := lo + float64(i)*dx
				part = append(part, Point{x, kde.PDF(x)})
			}
			parts[w] = part
			return nil
		})
	}
	g.Wait()

	pts := make([]Point, 0, n)
	for _, part := range parts {
		pts = append(pts, part...)
	}
	return pts, nil
}
