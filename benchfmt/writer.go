// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"bytes"
	"io"
	"strconv"
)

// A Writer writes the Go benchmark format.
type Writer struct {
	w   io.Writer
	buf bytes.Buffer

	first  bool
	config []Config // file configuration last written
}

// NewWriter returns a writer that writes Go benchmark results to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, first: true}
}

// Write writes benchmark result res to w. If res's file configuration
// differs from the last configuration written, it first emits the
// lines that change, add, or delete keys.
func (w *Writer) Write(res *Result) error {
	if !w.sameConfig(res) {
		w.writeFileConfig(res)
	}

	w.buf.WriteString("Benchmark")
	w.buf.Write(res.FullName)
	w.buf.WriteByte(' ')
	w.buf.WriteString(strconv.Itoa(res.Iters))
	for _, val := range res.Values {
		w.buf.WriteByte(' ')
		w.buf.WriteString(strconv.FormatFloat(val.Value, 'g', -1, 64))
		w.buf.WriteByte(' ')
		w.buf.WriteString(val.Unit)
	}
	w.buf.WriteByte('\n')
	w.first = false

	// Writes to buf can't fail, so only the flush can.
	_, err := w.w.Write(w.buf.Bytes())
	w.buf.Reset()
	return err
}

func (w *Writer) sameConfig(res *Result) bool {
	if len(w.config) != len(res.FileConfig) {
		return false
	}
	for i, cfg := range res.FileConfig {
		if cfg.Key != w.config[i].Key || !bytes.Equal(cfg.Value, w.config[i].Value) {
			return false
		}
	}
	return true
}

func (w *Writer) writeFileConfig(res *Result) {
	if !w.first {
		// A configuration block after results starts with a
		// blank line.
		w.buf.WriteByte('\n')
	}

	// Walk the keys already written for changes and deletions,
	// then add new keys.
	prev := make(map[string]bool, len(w.config))
	for _, old := range w.config {
		prev[old.Key] = true
		pos, ok := res.FileConfigIndex(old.Key)
		switch {
		case !ok:
			w.buf.WriteString(old.Key)
			w.buf.WriteString(":\n")
		case !bytes.Equal(old.Value, res.FileConfig[pos].Value):
			w.writeKey(res.FileConfig[pos])
		}
	}
	for _, cfg := range res.FileConfig {
		if !prev[cfg.Key] {
			w.writeKey(cfg)
		}
	}
	w.buf.WriteByte('\n')

	w.config = w.config[:0]
	for _, cfg := range res.FileConfig {
		w.config = append(w.config, Config{cfg.Key, append([]byte(nil), cfg.Value...)})
	}
}

func (w *Writer) writeKey(cfg Config) {
	w.buf.WriteString(cfg.Key)
	w.buf.WriteString(": ")
	w.buf.Write(cfg.Value)
	w.buf.WriteByte('\n')
}
