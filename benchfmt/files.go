// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import "os"

// Files reads benchmark results from a sequence of input files.
//
// This reader adds a ".file" configuration key to the output Results
// containing the name of the file read in, exactly as it appears in
// the Paths list.
type Files struct {
	// Paths is the list of file names to read in.
	Paths []string

	// AllowStdin indicates that the path "-" should be treated as
	// stdin and if the file list is empty, it should be treated
	// as consisting of stdin.
	AllowStdin bool

	// pos is the index in Paths of the next file to open.
	pos int

	reader  Reader
	file    *os.File
	isStdin bool
	err     error
}

// Scan advances to the next result in the sequence of files and
// returns true if a result was read. At the end of the last file, or
// on an I/O error, it returns false and the caller should check Err.
func (f *Files) Scan() bool {
	if f.err != nil {
		return false
	}

	for {
		if f.file == nil {
			var path string
			switch {
			case f.AllowStdin && len(f.Paths) == 0 && f.pos == 0:
				path = "-"
			case f.pos < len(f.Paths):
				path = f.Paths[f.pos]
			default:
				return false
			}
			f.pos++
			if f.AllowStdin && path == "-" {
				f.isStdin, f.file = true, os.Stdin
			} else {
				file, err := os.Open(path)
				if err != nil {
					f.err = err
					return false
				}
				f.isStdin, f.file = false, file
			}
			f.reader.Reset(f.file, path, ".file", path)
		}

		if f.reader.Scan() {
			return true
		}
		if err := f.reader.Err(); err != nil {
			f.err = err
			return false
		}
		// EOF. Move on to the next file.
		if !f.isStdin {
			f.file.Close()
		}
		f.file = nil
	}
}

// Result returns the last result read, or an error if the result was
// malformed. Parse errors are non-fatal.
//
// The caller should not retain the Result object, as it will be
// overwritten by the next call to Scan.
func (f *Files) Result() (*Result, error) {
	return f.reader.Result()
}

// Err returns the first non-EOF I/O error that was encountered by the
// Files.
func (f *Files) Err() error {
	return f.err
}
