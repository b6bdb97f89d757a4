// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchstat

// Config configures estimation and comparison.
//
// This should be initialized from DefaultConfig because it may be
// extended with other fields in the future.
type Config struct {
	// ConfidenceLevel is the confidence level of every
	// confidence interval, in the open range (0, 1).
	ConfidenceLevel float64 `yaml:"confidence_level" json:"confidence_level" validate:"gt=0,lt=1"`

	// Resamples is the number of bootstrap resamples.
	Resamples int `yaml:"resamples" json:"resamples" validate:"gte=2"`

	// SignificanceLevel is the alpha level below which the t-test
	// rejects the null hypothesis that both samples have the same
	// mean.
	SignificanceLevel float64 `yaml:"significance_level" json:"significance_level" validate:"gt=0,lt=1"`

	// NoiseThreshold is the relative change that a confidence
	// interval must clear before a change counts as an
	// improvement or a regression.
	NoiseThreshold float64 `yaml:"noise_threshold" json:"noise_threshold" validate:"gte=0"`

	// Parallelism is the number of bootstrap workers. If <= 0,
	// this uses runtime.GOMAXPROCS(0).
	Parallelism int `yaml:"parallelism" json:"parallelism"`

	// Seed seeds every bootstrap. If 0, each bootstrap picks a
	// random seed and results are not reproducible.
	Seed uint64 `yaml:"seed" json:"seed"`
}

// DefaultConfig contains a reasonable set of defaults for Config.
var DefaultConfig = Config{
	ConfidenceLevel:   0.95,
	Resamples:         100000,
	SignificanceLevel: 0.05,
	NoiseThreshold:    0.01,
}

// Bootstrap returns the bootstrap settings of c.
func (c *Config) Bootstrap() Bootstrap {
	return Bootstrap{Resamples: c.Resamples, Parallelism: c.Parallelism, Seed: c.Seed}
}
