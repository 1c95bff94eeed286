// Package source adapts delimited-text input to the inference engine's
// row-stream contract.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"csvddl/internal/infer"
)

// Options configures how the delimited input is read.
type Options struct {
	Delimiter rune // field delimiter, ',' when zero
	NoHeader  bool // treat the first row as data
}

// CSV reads rows from delimited text. It implements infer.RowSource: the
// header row, when present, is consumed at construction and the remaining
// rows stream through Next exactly once.
type CSV struct {
	reader *csv.Reader
	header []string
	file   *os.File
}

// New wraps r as a row source. With a header configured, the header row is
// read immediately; an input with no rows at all is an empty-input error.
func New(r io.Reader, opts Options) (*CSV, error) {
	cr := csv.NewReader(r)
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}

	s := &CSV{reader: cr}
	if !opts.NoHeader {
		header, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: missing header row", infer.ErrEmptyInput)
		}
		if err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		s.header = header
	}
	return s, nil
}

// Open builds a row source from a file path, or from stdin when path is
// empty or "-".
func Open(path string, opts Options) (*CSV, error) {
	if path == "" || path == "-" {
		return New(os.Stdin, opts)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	s, err := New(f, opts)
	if err != nil {
		f.Close()
		return nil, err
	}
	s.file = f
	return s, nil
}

// Header returns the consumed header row, nil in headerless mode.
func (s *CSV) Header() []string {
	return s.header
}

// Next returns the next data row, io.EOF after the last one. A row whose
// field count disagrees with the first row's is reported as a row-arity
// error.
func (s *CSV) Next() ([]string, error) {
	row, err := s.reader.Read()
	if err == nil || errors.Is(err, io.EOF) {
		return row, err
	}
	if errors.Is(err, csv.ErrFieldCount) {
		return nil, fmt.Errorf("%w: %v", infer.ErrRowArity, err)
	}
	return nil, err
}

// Close releases the backing file, if any.
func (s *CSV) Close() error {
	if s.file != nil {
		return s.file.Close()
	}
	return nil
}

// Delimiter validates a delimiter option and returns it as a rune.
func Delimiter(s string) (rune, error) {
	if s == "" {
		return ',', nil
	}
	if s == "\\t" || s == "tab" {
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) || r == utf8.RuneError {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	return r, nil
}
