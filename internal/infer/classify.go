package infer

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"csvddl/internal/schema"
)

// DateParser turns free-form date text into a timestamp. The default accepts
// a wide range of human-written formats; tests substitute a fixed parser.
type DateParser func(string) (time.Time, error)

// Classifier assigns a type and a nullability marker to individual field
// values. It holds no per-column state and may be shared across columns.
type Classifier struct {
	NullAs    string
	ParseDate DateParser
}

// NewClassifier returns a Classifier using the given null sentinel and the
// default permissive date parser.
func NewClassifier(nullAs string) *Classifier {
	return &Classifier{
		NullAs: nullAs,
		ParseDate: func(s string) (time.Time, error) {
			return dateparse.ParseAny(s)
		},
	}
}

// Type classifies a single field value. Checks run in a fixed priority
// order and the first match wins. Numeric checks must run before date
// parsing: the permissive parser accepts bare numbers, and "42" is an
// integer, not a date. The boolean check runs before numeric so "true" is
// never coerced.
func (c *Classifier) Type(field string) schema.ColumnType {
	if field == "" {
		return schema.Unknown
	}
	if strings.EqualFold(field, "true") || strings.EqualFold(field, "false") {
		return schema.Boolean
	}
	if _, err := strconv.ParseInt(field, 10, 64); err == nil {
		return schema.Integer
	}
	if _, err := strconv.ParseFloat(field, 64); err == nil {
		return schema.Numeric
	}
	if ts, err := c.ParseDate(field); err == nil {
		// A parsed value at exactly midnight is a date. This includes text
		// with an explicit 00:00:00 time: time-of-day equality is the whole
		// test.
		if ts.Hour() == 0 && ts.Minute() == 0 && ts.Second() == 0 && ts.Nanosecond() == 0 {
			return schema.Date
		}
		return schema.Timestamp
	}
	return schema.Text
}

// Constraint classifies a single field's nullability. Only exact,
// case-sensitive equality with the configured null sentinel counts as null.
func (c *Classifier) Constraint(field string) schema.Constraint {
	if field == c.NullAs {
		return schema.Nullable
	}
	return schema.NotNull
}
