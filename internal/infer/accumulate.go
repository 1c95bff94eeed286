package infer

import (
	"errors"
	"fmt"

	"csvddl/internal/schema"
)

// Error kinds surfaced by the engine. All abort the run; there is no
// partial or degraded output.
var (
	ErrEmptyInput     = errors.New("input has no data rows")
	ErrColumnCount    = errors.New("column name count does not match the input's column count")
	ErrRowArity       = errors.New("row has wrong number of fields")
	ErrTooManyColumns = errors.New("too many columns for letter naming (max 26)")
)

// Accumulator folds per-field classifications into per-column running state.
// Every column starts at (Unknown, Nullable); observing a row can only widen
// a column's type and only strengthen its constraint, so the result is
// independent of row order.
type Accumulator struct {
	classifier  *Classifier
	types       []schema.ColumnType
	constraints []schema.Constraint
	rows        int
}

// NewAccumulator creates accumulation state for a fixed number of columns.
func NewAccumulator(c *Classifier, columns int) *Accumulator {
	return &Accumulator{
		classifier:  c,
		types:       make([]schema.ColumnType, columns),
		constraints: make([]schema.Constraint, columns),
	}
}

// Observe folds one data row into the running state. A row whose field
// count disagrees with the column count is a structural error in the
// source; no partial recovery is attempted.
func (a *Accumulator) Observe(row []string) error {
	if len(row) != len(a.types) {
		return fmt.Errorf("%w: row %d has %d fields, expected %d",
			ErrRowArity, a.rows+1, len(row), len(a.types))
	}
	for i, field := range row {
		a.types[i] = a.types[i].Widen(a.classifier.Type(field))
		a.constraints[i] = a.constraints[i].Strengthen(a.classifier.Constraint(field))
	}
	a.rows++
	return nil
}

// Rows reports how many data rows have been folded in.
func (a *Accumulator) Rows() int {
	return a.rows
}

// Finalize returns the accumulated per-column types and constraints. A
// column whose every value was empty never left Unknown and is declared
// text. Zero observed rows means there is nothing to infer from.
func (a *Accumulator) Finalize() ([]schema.ColumnType, []schema.Constraint, error) {
	if a.rows == 0 {
		return nil, nil, ErrEmptyInput
	}
	for i, t := range a.types {
		if t == schema.Unknown {
			a.types[i] = schema.Text
		}
	}
	return a.types, a.constraints, nil
}
