// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// A Reader reads the Go benchmark format.
//
// Its API is modeled on bufio.Scanner. A Reader retains ownership of
// the Result it returns, so a caller should Clone anything it needs
// to keep past the next call to Scan.
//
// The zero value of the Reader is a valid Reader, but the user must
// call Reset before using it.
type Reader struct {
	s        *bufio.Scanner
	fileName string
	lineNum  int
	err      error // current I/O error

	result    Result
	resultErr error

	interns map[string]string
}

// SyntaxError represents a syntax error on a particular line of a
// benchmark results file.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (s *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", s.FileName, s.Line, s.Msg)
}

var errNoResult = errors.New("Reader.Scan has not been called")

// NewReader constructs a reader to parse the Go benchmark format from
// r. fileName is used in error messages; it is purely diagnostic.
func NewReader(r io.Reader, fileName string) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName)
	return reader
}

// Reset resets the reader to begin reading from a new input. This
// also resets the file configuration to the key/value pairs in
// initConfig, which alternates keys and values. Keys that cannot
// appear in a file, such as ".file", are never overridden by it.
func (r *Reader) Reset(ior io.Reader, fileName string, initConfig ...string) {
	if len(initConfig)%2 != 0 {
		panic("initConfig must be key/value pairs")
	}
	r.s = bufio.NewScanner(ior)
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.fileName = fileName
	r.lineNum = 0
	r.err = nil
	r.resultErr = errNoResult
	if r.interns == nil {
		r.interns = make(map[string]string)
	}

	r.result.FileConfig = r.result.FileConfig[:0]
	r.result.FullName = r.result.FullName[:0]
	r.result.Iters = 0
	r.result.Values = r.result.Values[:0]
	r.result.nameParts = r.result.nameParts[:0]
	for k := range r.result.configPos {
		delete(r.result.configPos, k)
	}
	for i := 0; i < len(initConfig); i += 2 {
		cfg := r.result.ensureFileConfig(initConfig[i])
		cfg.Value = append(cfg.Value[:0], initConfig[i+1]...)
	}
}

var benchmarkPrefix = []byte("Benchmark")

// Scan advances the reader to the next result and returns true if a
// result was read. The caller should use the Result method to get the
// result. If an I/O error occurs, or this reaches the end of the
// file, it returns false and the caller should use the Err method to
// check for errors.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}

	for r.s.Scan() {
		r.lineNum++
		line := r.s.Bytes()
		if bytes.HasPrefix(line, benchmarkPrefix) {
			// A malformed benchmark line is still a result,
			// just one that reports an error.
			r.resultErr = r.parseBenchmarkLine(line)
			return true
		}
		if key, val, ok := parseKeyValueLine(line); ok {
			// Keys repeat a lot, so intern them.
			keyStr := r.intern(key)
			if len(val) == 0 {
				r.result.deleteFileConfig(keyStr)
			} else {
				cfg := r.result.ensureFileConfig(keyStr)
				cfg.Value = append(cfg.Value[:0], val...)
			}
		}
	}

	if err := r.s.Err(); err != nil {
		r.err = fmt.Errorf("%s:%d: %w", r.fileName, r.lineNum, err)
	}
	return false
}

// parseKeyValueLine attempts to parse line as a "key: value" pair.
// The key begins with a lower case letter and contains no space or
// upper case letters. An empty value deletes the key.
func parseKeyValueLine(line []byte) (key, val []byte, ok bool) {
	for i := 0; i < len(line); {
		r, n := utf8.DecodeRune(line[i:])
		if i == 0 && !unicode.IsLower(r) {
			return
		}
		if unicode.IsSpace(r) || unicode.IsUpper(r) {
			return
		}
		if i > 0 && r == ':' {
			key, val = line[:i], line[i+1:]
			break
		}
		i += n
	}
	if len(key) == 0 {
		return
	}
	if len(val) == 0 {
		return key, val, true
	}
	// One or more spaces or tabs separate "key:" from the value.
	for len(val) > 0 && (val[0] == ' ' || val[0] == '\t') {
		val = val[1:]
		ok = true
	}
	return
}

// parseBenchmarkLine parses line, which must begin with "Benchmark",
// into r.result.
func (r *Reader) parseBenchmarkLine(line []byte) error {
	var f []byte
	line = line[len(benchmarkPrefix):]

	f, line = splitField(line)
	r.result.FullName = append(r.result.FullName[:0], f...)
	r.result.nameParts = r.result.nameParts[:0]

	f, line = splitField(line)
	if len(f) == 0 {
		return r.syntaxError("missing iteration count")
	}
	iters, err := strconv.Atoi(string(f))
	if err != nil {
		return r.syntaxError("parsing iteration count: " + numErr(err))
	}
	r.result.Iters = iters

	r.result.Values = r.result.Values[:0]
	for {
		f, line = splitField(line)
		if len(f) == 0 {
			if len(r.result.Values) > 0 {
				break
			}
			return r.syntaxError("missing measurements")
		}
		val, err := atof(f)
		if err != nil {
			return r.syntaxError("parsing measurement: " + numErr(err))
		}
		f, line = splitField(line)
		if len(f) == 0 {
			return r.syntaxError("missing units")
		}
		r.result.Values = append(r.result.Values, Value{val, r.intern(f)})
	}
	return nil
}

func (r *Reader) syntaxError(msg string) error {
	return &SyntaxError{r.fileName, r.lineNum, msg}
}

// numErr strips the function and input from a strconv error.
func numErr(err error) string {
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		return ne.Err.Error()
	}
	return err.Error()
}

func (r *Reader) intern(x []byte) string {
	const maxIntern = 1024
	if s, ok := r.interns[string(x)]; ok {
		return s
	}
	if len(r.interns) >= maxIntern {
		for k := range r.interns {
			delete(r.interns, k)
			break
		}
	}
	s := string(x)
	r.interns[s] = s
	return s
}

// Result returns the last result read, or an error if the result was
// malformed.
//
// Parse errors are non-fatal, so the caller can continue to call
// Scan.
//
// The caller should not retain the Result object, as it will be
// overwritten by the next call to Scan.
func (r *Reader) Result() (*Result, error) {
	if r.resultErr != nil {
		return nil, r.resultErr
	}
	return &r.result, nil
}

// Err returns the first non-EOF I/O error that was encountered by the
// Reader.
func (r *Reader) Err() error {
	return r.err
}

// atof parses x as a float64, taking a fast path for the integers
// that make up most measurements.
func atof(x []byte) (float64, error) {
	// The largest int exactly representable in a float64.
	const largestInt = 1<<53 - 1

	var val int64
	for _, ch := range x {
		digit := ch - '0'
		if digit >= 10 {
			return strconv.ParseFloat(string(x), 64)
		}
		val = val*10 + int64(digit)
		if val > largestInt {
			return strconv.ParseFloat(string(x), 64)
		}
	}
	return float64(val), nil
}

const isSpace uint64 = 1<<'\t' | 1<<'\n' | 1<<'\v' | 1<<'\f' | 1<<'\r' | 1<<' '

func isSpaceAt(x []byte) (bool, int) {
	if x[0] < 128 {
		return (isSpace>>x[0])&1 != 0, 1
	}
	r, n := utf8.DecodeRune(x)
	return unicode.IsSpace(r), n
}

// splitField returns the leading non-space bytes of x as field and
// the rest of x after the whitespace that follows it.
func splitField(x []byte) (field, rest []byte) {
	i := 0
	for i < len(x) {
		space, n := isSpaceAt(x[i:])
		if space {
			break
		}
		i += n
	}
	field, rest = x[:i], x[i:]
	for len(rest) > 0 {
		space, n := isSpaceAt(rest)
		if !space {
			break
		}
		rest = rest[n:]
	}
	return
}
