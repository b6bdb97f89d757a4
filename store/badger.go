// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store

import (
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/aclements/benchcheck/benchstat"
)

// Badger stores baselines in a Badger database under keys of the form
// <id>/<baseline>/<artifact>.
type Badger struct {
	db *badger.DB
}

// OpenBadger opens the database in directory path, creating it if
// necessary. If path is "", the database is held in memory. Database
// messages go to log, or are discarded if log is nil.
func OpenBadger(path string, log logrus.FieldLogger) (*Badger, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(path, 0o777); err != nil {
			return nil, errors.Wrap(err, "creating store")
		}
		opts = badger.DefaultOptions(path)
	}
	if log != nil {
		opts = opts.WithLogger(log)
	} else {
		opts = opts.WithLogger(nil)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "opening store")
	}
	return &Badger{db}, nil
}

// Close closes the database.
func (b *Badger) Close() error {
	return b.db.Close()
}

func key(id, baseline, artifact string) []byte {
	return []byte(id + "/" + baseline + "/" + artifact)
}

// Exists reports whether baseline has been saved for benchmark id.
func (b *Badger) Exists(id, baseline string) (bool, error) {
	if err := checkName(id, baseline); err != nil {
		return false, err
	}
	found := false
	err := b.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key(id, baseline, sampleFile))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		found = err == nil
		return err
	})
	return found, errors.WithStack(err)
}

func (b *Badger) read(id, baseline, artifact string) ([]byte, error) {
	if err := checkName(id, baseline); err != nil {
		return nil, err
	}
	var data []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(id, baseline, artifact))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, errors.Wrapf(ErrNotFound, "%s/%s", id, baseline)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "%s/%s: reading %s", id, baseline, artifact)
	}
	return data, nil
}

// LoadSample loads the runs saved in baseline.
func (b *Badger) LoadSample(id, baseline string) (*benchstat.Data, error) {
	data, err := b.read(id, baseline, sampleFile)
	if err != nil {
		return nil, err
	}
	return decodeSample(id, baseline, data)
}

// LoadEstimates loads the estimates saved in baseline.
func (b *Badger) LoadEstimates(id, baseline string) (*benchstat.Estimates, error) {
	data, err := b.read(id, baseline, estimatesFile)
	if err != nil {
		return nil, err
	}
	return decodeEstimates(id, baseline, estimatesFile, data)
}

// LoadChange loads the relative-change estimates saved in baseline.
// It returns ErrNotFound if that analysis was not compared with a
// baseline.
func (b *Badger) LoadChange(id, baseline string) (*benchstat.Estimates, error) {
	if ok, err := b.Exists(id, baseline); err != nil {
		return nil, err
	} else if !ok {
		return nil, errors.Wrapf(ErrNotFound, "%s/%s", id, baseline)
	}
	data, err := b.read(id, baseline, changeFile)
	if err != nil {
		return nil, err
	}
	return decodeEstimates(id, baseline, changeFile, data)
}

// Save writes rec to the New baseline of its benchmark.
func (b *Badger) Save(rec *Record) error {
	files, err := encode(rec)
	if err != nil {
		return err
	}
	id := rec.Benchmark.ID
	err = b.db.Update(func(txn *badger.Txn) error {
		for _, name := range artifacts {
			data, ok := files[name]
			if !ok {
				if err := txn.Delete(key(id, New, name)); err != nil {
					return err
				}
				continue
			}
			if err := txn.Set(key(id, New, name), data); err != nil {
				return err
			}
		}
		return nil
	})
	return errors.Wrapf(err, "%s: saving %q", id, New)
}

// Promote copies the New baseline of benchmark id to baseline in one
// transaction. It does nothing if New has not been saved.
func (b *Badger) Promote(id, baseline string) error {
	if err := checkName(id, baseline); err != nil {
		return err
	}
	if baseline == New {
		return nil
	}
	err := b.db.Update(func(txn *badger.Txn) error {
		for _, name := range artifacts {
			item, err := txn.Get(key(id, New, name))
			if errors.Is(err, badger.ErrKeyNotFound) {
				if err := txn.Delete(key(id, baseline, name)); err != nil {
					return err
				}
				continue
			}
			if err != nil {
				return err
			}
			data, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if err := txn.Set(key(id, baseline, name), data); err != nil {
				return err
			}
		}
		return nil
	})
	return errors.Wrapf(err, "%s: promoting to %q", id, baseline)
}

// Baselines returns the names of every baseline saved for benchmark
// id, in key order.
func (b *Badger) Baselines(id string) ([]string, error) {
	prefix := []byte(id + "/")
	suffix := "/" + sampleFile
	var names []string
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			k := string(it.Item().Key()[len(prefix):])
			if name, ok := strings.CutSuffix(k, suffix); ok && name != "" && !strings.Contains(name, "/") {
				names = append(names, name)
			}
		}
		return nil
	})
	return names, errors.WithStack(err)
}
