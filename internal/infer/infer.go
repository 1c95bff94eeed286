package infer

import (
	"errors"
	"io"

	"csvddl/internal/schema"
)

// RowSource is a finite, single-pass producer of data rows. Header returns
// the consumed header row, or nil when the source runs headerless. Next
// returns io.EOF after the last row. Sources are not restartable; the
// engine reads each row exactly once.
type RowSource interface {
	Header() []string
	Next() ([]string, error)
}

// Config carries the already-validated options the engine needs. Header
// handling belongs to the RowSource, which consumed the header row before
// the engine sees any data.
type Config struct {
	NullAs    string   // value treated as null, default empty string
	Columns   []string // explicit column name override, nil to use header or letters
	TableName string   // explicit table name, empty to derive from Source
	Source    string   // source identifier (file path) for default table naming
	ParseDate DateParser
}

// Infer performs the single pass over src and produces the inferred table.
// Column count is established from the header when present, otherwise from
// the first data row; naming problems are reported before any further
// accumulation.
func Infer(cfg Config, src RowSource) (schema.Table, error) {
	classifier := NewClassifier(cfg.NullAs)
	if cfg.ParseDate != nil {
		classifier.ParseDate = cfg.ParseDate
	}

	header := src.Header()

	var acc *Accumulator
	var names []string
	if header != nil {
		var err error
		if names, err = ResolveNames(cfg.Columns, header, len(header)); err != nil {
			return schema.Table{}, err
		}
		acc = NewAccumulator(classifier, len(header))
	}

	for {
		row, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return schema.Table{}, err
		}
		if acc == nil {
			if names, err = ResolveNames(cfg.Columns, nil, len(row)); err != nil {
				return schema.Table{}, err
			}
			acc = NewAccumulator(classifier, len(row))
		}
		if err := acc.Observe(row); err != nil {
			return schema.Table{}, err
		}
	}

	if acc == nil {
		return schema.Table{}, ErrEmptyInput
	}
	types, constraints, err := acc.Finalize()
	if err != nil {
		return schema.Table{}, err
	}

	return schema.Assemble(TableName(cfg.TableName, cfg.Source), names, types, constraints)
}
