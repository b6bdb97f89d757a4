// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysis

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/aclements/benchcheck/benchstat"
)

// Mode selects what the Analyzer does with each benchmark.
type Mode int

const (
	// Bench measures, analyzes, and compares each benchmark.
	Bench Mode = iota
	// List prints each benchmark ID without running it.
	List
	// Test runs each benchmark once to check that it works.
	Test
	// Profile runs each benchmark for Config.ProfileTime under a
	// profiler and skips analysis.
	Profile
)

var modeNames = []string{"bench", "list", "test", "profile"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// MarshalText encodes m by name.
func (m Mode) MarshalText() ([]byte, error) {
	if m < 0 || int(m) >= len(modeNames) {
		return nil, fmt.Errorf("bad Mode %d", int(m))
	}
	return []byte(modeNames[m]), nil
}

// UnmarshalText decodes a mode name.
func (m *Mode) UnmarshalText(text []byte) error {
	for i, name := range modeNames {
		if string(text) == name {
			*m = Mode(i)
			return nil
		}
	}
	return fmt.Errorf("unknown mode %q (want one of %s)", text, strings.Join(modeNames, ", "))
}

// Config configures an Analyzer.
type Config struct {
	benchstat.Config `yaml:",inline"`

	Mode Mode `yaml:"mode" validate:"gte=0,lte=3"`

	// ProfileTime is how long to run each benchmark in Profile
	// mode.
	ProfileTime time.Duration `yaml:"profile_time" validate:"gte=0"`

	// Baseline names the saved baseline to compare against.
	Baseline string `yaml:"baseline" validate:"required,excludesall=/\\"`

	// SaveBaseline, if non-empty, promotes each new result to the
	// named baseline after it is analyzed.
	SaveBaseline string `yaml:"save_baseline" validate:"excludesall=/\\"`

	// LoadBaseline, if non-empty, analyzes the sample saved in
	// the named baseline instead of measuring. Nothing is saved.
	LoadBaseline string `yaml:"load_baseline" validate:"excludesall=/\\"`

	// RequireBaseline fails a benchmark before measuring it if
	// Baseline has not been saved.
	RequireBaseline bool `yaml:"require_baseline"`

	// FailOnRegression turns a regressed comparison into a
	// *benchstat.RegressionError.
	FailOnRegression bool `yaml:"fail_on_regression"`

	// Filter, if non-empty, is a regular expression that
	// benchmark IDs must match.
	Filter string `yaml:"filter"`

	// PDFPoints is the number of points at which to sample each
	// benchmark's density estimate, or 0 to skip it.
	PDFPoints int `yaml:"pdf_points" validate:"gte=0"`
}

// DefaultConfig compares each run against the last one and then
// saves it as the new baseline.
var DefaultConfig = Config{
	Config:       benchstat.DefaultConfig,
	Baseline:     "base",
	SaveBaseline: "base",
	PDFPoints:    500,
}

var validate = validator.New()

// Validate checks that c is usable.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	if c.Mode == Profile && c.ProfileTime <= 0 {
		return errors.New("invalid config: profile mode needs a positive profile_time")
	}
	if c.Filter != "" {
		if _, err := regexp.Compile(c.Filter); err != nil {
			return errors.Wrap(err, "invalid config: filter")
		}
	}
	return nil
}

// LoadConfig reads a YAML config file on top of DefaultConfig and
// validates the result. Unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "reading config")
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(err, path)
	}
	return cfg, nil
}
