// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchfmt reads and writes the Go benchmark format and groups
// the repeated runs of each benchmark into measurements for analysis.
//
// The reader is a streaming scanner modeled on bufio.Scanner so large
// benchmark logs can be processed without holding every result.
//
// The format is documented at https://golang.org/design/14313-benchmark-format
package benchfmt

import "bytes"

// Result is a single benchmark result and all of its measurements.
type Result struct {
	// FileConfig is the set of file-level key/value pairs in
	// effect for this result, in the order they were first set.
	FileConfig []Config

	// FullName is the full name of this benchmark, without the
	// "Benchmark" prefix but including all sub-benchmark
	// configuration.
	FullName []byte

	// Iters is the number of iterations this benchmark's results
	// were averaged over.
	Iters int

	// Values is this benchmark's measurements and their units.
	Values []Value

	// configPos, if non-nil, maps from Config.Key to index in
	// FileConfig.
	configPos map[string]int

	// nameParts caches the split parts of FullName. Its length
	// is 0 if it has not been computed.
	nameParts [][]byte
}

// Config is a single key/value configuration pair.
type Config struct {
	Key   string
	Value []byte
}

// Value is a single value/unit measurement from a benchmark result.
type Value struct {
	Value float64
	Unit  string
}

// Clone makes a copy of r that shares no state with r.
func (r *Result) Clone() *Result {
	cfg := make([]Config, len(r.FileConfig))
	for i, c := range r.FileConfig {
		cfg[i] = Config{c.Key, append([]byte(nil), c.Value...)}
	}
	return &Result{
		FileConfig: cfg,
		FullName:   append([]byte(nil), r.FullName...),
		Iters:      r.Iters,
		Values:     append([]Value(nil), r.Values...),
	}
}

// FileConfigIndex returns the index in r.FileConfig of key.
func (r *Result) FileConfigIndex(key string) (pos int, ok bool) {
	if r.configPos == nil {
		r.configPos = make(map[string]int)
		for i, cfg := range r.FileConfig {
			r.configPos[cfg.Key] = i
		}
	}
	pos, ok = r.configPos[key]
	return
}

// GetFileConfig returns the value of file configuration key, or "".
func (r *Result) GetFileConfig(key string) string {
	if pos, ok := r.FileConfigIndex(key); ok {
		return string(r.FileConfig[pos].Value)
	}
	return ""
}

// ensureFileConfig returns the file configuration entry for key,
// adding an empty one if necessary.
func (r *Result) ensureFileConfig(key string) *Config {
	pos, ok := r.FileConfigIndex(key)
	if !ok {
		pos = len(r.FileConfig)
		r.FileConfig = append(r.FileConfig, Config{Key: key})
		r.configPos[key] = pos
	}
	return &r.FileConfig[pos]
}

// deleteFileConfig removes key from the file configuration.
func (r *Result) deleteFileConfig(key string) {
	pos, ok := r.FileConfigIndex(key)
	if !ok {
		return
	}
	copy(r.FileConfig[pos:], r.FileConfig[pos+1:])
	r.FileConfig = r.FileConfig[:len(r.FileConfig)-1]
	delete(r.configPos, key)
	for i := pos; i < len(r.FileConfig); i++ {
		r.configPos[r.FileConfig[i].Key] = i
	}
}

// Value returns the measurement for the given unit.
func (r *Result) Value(unit string) (float64, bool) {
	for _, v := range r.Values {
		if v.Unit == unit {
			return v.Value, true
		}
	}
	return 0, false
}

// NameParts returns the base name and sub-benchmark configuration
// parts. Each part is "/<key>=<value>", a positional "/<string>", or
// a trailing "-<gomaxprocs>". Concatenating the base name and the
// parts reconstructs the full name.
func (r *Result) NameParts() (baseName []byte, parts [][]byte) {
	if len(r.nameParts) == 0 {
		buf := r.FullName
		var procs []byte
		if i := bytes.LastIndexByte(buf, '-'); i >= 0 && i < len(buf)-1 && allDigits(buf[i+1:]) {
			procs, buf = buf[i:], buf[:i]
		}
		prev := 0
		for i, c := range buf {
			if c == '/' {
				r.nameParts = append(r.nameParts, buf[prev:i])
				prev = i
			}
		}
		r.nameParts = append(r.nameParts, buf[prev:])
		if procs != nil {
			r.nameParts = append(r.nameParts, procs)
		}
	}
	return r.nameParts[0], r.nameParts[1:]
}

// BaseName returns the name of the benchmark without sub-benchmark
// configuration or GOMAXPROCS.
func (r *Result) BaseName() []byte {
	base, _ := r.NameParts()
	return base
}

func allDigits(b []byte) bool {
	for _, c := range b {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(b) > 0
}
