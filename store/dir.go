// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/aclements/benchcheck/benchstat"
)

// Dir stores baselines as files under Root/<id>/<baseline>/.
type Dir struct {
	Root string
}

func (d *Dir) path(id, baseline string, artifact ...string) string {
	return filepath.Join(append([]string{d.Root, dirName(id), baseline}, artifact...)...)
}

// dirName maps a benchmark ID to a relative directory path that stays
// under the store root. Each "/"-separated part of the ID becomes one
// directory. Characters that are not portable in file names become
// "_", and parts that are empty or consist only of dots are prefixed
// with "_".
func dirName(id string) string {
	parts := strings.Split(id, "/")
	for i, part := range parts {
		part = strings.Map(func(r rune) rune {
			if r < ' ' || strings.ContainsRune(`?"\*<>:|^`, r) {
				return '_'
			}
			return r
		}, part)
		if strings.Trim(part, ".") == "" {
			part = "_" + part
		}
		parts[i] = part
	}
	return filepath.Join(parts...)
}

// Exists reports whether baseline has been saved for benchmark id.
func (d *Dir) Exists(id, baseline string) (bool, error) {
	if err := checkName(id, baseline); err != nil {
		return false, err
	}
	_, err := os.Stat(d.path(id, baseline, sampleFile))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, errors.WithStack(err)
	}
	return true, nil
}

func (d *Dir) read(id, baseline, artifact string) ([]byte, error) {
	if err := checkName(id, baseline); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(d.path(id, baseline, artifact))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrapf(ErrNotFound, "%s/%s", id, baseline)
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return data, nil
}

// LoadSample loads the runs saved in baseline.
func (d *Dir) LoadSample(id, baseline string) (*benchstat.Data, error) {
	data, err := d.read(id, baseline, sampleFile)
	if err != nil {
		return nil, err
	}
	return decodeSample(id, baseline, data)
}

// LoadEstimates loads the estimates saved in baseline.
func (d *Dir) LoadEstimates(id, baseline string) (*benchstat.Estimates, error) {
	data, err := d.read(id, baseline, estimatesFile)
	if err != nil {
		return nil, err
	}
	return decodeEstimates(id, baseline, estimatesFile, data)
}

// LoadChange loads the relative-change estimates saved in baseline.
// It returns ErrNotFound if that analysis was not compared with a
// baseline.
func (d *Dir) LoadChange(id, baseline string) (*benchstat.Estimates, error) {
	if ok, err := d.Exists(id, baseline); err != nil {
		return nil, err
	} else if !ok {
		return nil, errors.Wrapf(ErrNotFound, "%s/%s", id, baseline)
	}
	data, err := d.read(id, baseline, changeFile)
	if err != nil {
		return nil, err
	}
	return decodeEstimates(id, baseline, changeFile, data)
}

// Save writes rec to the New baseline of its benchmark.
func (d *Dir) Save(rec *Record) error {
	files, err := encode(rec)
	if err != nil {
		return err
	}
	return d.write(rec.Benchmark.ID, New, files)
}

// Promote copies the New baseline of benchmark id to baseline. It
// does nothing if New has not been saved.
func (d *Dir) Promote(id, baseline string) error {
	if err := checkName(id, baseline); err != nil {
		return err
	}
	if baseline == New {
		return nil
	}
	ok, err := d.Exists(id, New)
	if err != nil || !ok {
		return err
	}
	files := make(map[string][]byte)
	for _, name := range artifacts {
		data, err := os.ReadFile(d.path(id, New, name))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return errors.Wrapf(err, "%s: promoting to %q", id, baseline)
		}
		files[name] = data
	}
	return d.write(id, baseline, files)
}

func (d *Dir) write(id, baseline string, files map[string][]byte) error {
	dir := d.path(id, baseline)
	if err := os.MkdirAll(dir, 0o777); err != nil {
		return errors.Wrapf(err, "%s: saving %q", id, baseline)
	}
	// Remove sample.json first so a failure part way leaves the
	// baseline absent rather than inconsistent.
	if err := os.Remove(filepath.Join(dir, sampleFile)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, "%s: saving %q", id, baseline)
	}
	for _, name := range artifacts {
		data, ok := files[name]
		if !ok {
			if err := os.Remove(filepath.Join(dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return errors.Wrapf(err, "%s: saving %q", id, baseline)
			}
			continue
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o666); err != nil {
			return errors.Wrapf(err, "%s: saving %q", id, baseline)
		}
	}
	return nil
}

// Baselines returns the names of every baseline saved for benchmark
// id, in lexical order.
func (d *Dir) Baselines(id string) ([]string, error) {
	ents, err := os.ReadDir(filepath.Join(d.Root, dirName(id)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}
	var names []string
	for _, ent := range ents {
		if !ent.IsDir() {
			continue
		}
		if ok, err := d.Exists(id, ent.Name()); err != nil {
			return nil, err
		} else if ok {
			names = append(names, ent.Name())
		}
	}
	return names, nil
}
