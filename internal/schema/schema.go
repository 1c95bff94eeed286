package schema

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ColumnType is an inferred column type. The numeric rank is significant:
// folding observed values into a column always keeps the maximum rank, so a
// column widens from Unknown toward Text and never narrows. Unknown is the
// pre-observation default and is coerced to Text before a Table is built.
type ColumnType int

const (
	Unknown ColumnType = iota
	Boolean
	Integer
	Numeric
	Date
	Timestamp
	Text
)

var typeNames = map[ColumnType]string{
	Unknown:   "unknown",
	Boolean:   "boolean",
	Integer:   "integer",
	Numeric:   "numeric",
	Date:      "date",
	Timestamp: "timestamp",
	Text:      "text",
}

func (t ColumnType) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return "unknown"
}

// MarshalJSON renders the type by name in API responses.
func (t ColumnType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// Widen returns the more general of the two types.
func (t ColumnType) Widen(u ColumnType) ColumnType {
	if u > t {
		return u
	}
	return t
}

// Constraint is a column nullability marker. NotNull outranks Nullable: a
// column is marked not null as soon as any non-sentinel value is seen, and
// ends up nullable only when every observed value was the null sentinel.
type Constraint int

const (
	Nullable Constraint = iota
	NotNull
)

// Keyword returns the constraint's DDL keyword, empty for Nullable.
func (c Constraint) Keyword() string {
	if c == NotNull {
		return "not null"
	}
	return ""
}

// MarshalJSON renders the constraint keyword, empty for Nullable.
func (c Constraint) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Keyword())
}

// Strengthen returns the stronger of the two constraints.
func (c Constraint) Strengthen(d Constraint) Constraint {
	if d > c {
		return d
	}
	return c
}

// Column is one resolved table column.
type Column struct {
	Name       string     `json:"name"`
	Type       ColumnType `json:"type"`
	Constraint Constraint `json:"constraint"`
}

// Table is a complete inferred table description. Columns is never empty.
type Table struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

// Assemble zips resolved names with accumulated types and constraints into a
// Table. The three slices come from the same pass over the same input, so a
// length mismatch is a bug upstream, not a user error.
func Assemble(name string, names []string, types []ColumnType, constraints []Constraint) (Table, error) {
	if len(names) != len(types) || len(types) != len(constraints) {
		return Table{}, fmt.Errorf("schema: mismatched column slices: %d names, %d types, %d constraints",
			len(names), len(types), len(constraints))
	}
	if len(names) == 0 {
		return Table{}, fmt.Errorf("schema: table %q has no columns", name)
	}
	cols := make([]Column, len(names))
	for i := range names {
		cols[i] = Column{Name: names[i], Type: types[i], Constraint: constraints[i]}
	}
	return Table{Name: name, Columns: cols}, nil
}

// Statement renders the create table statement. Each column line is indented
// four spaces; every line but the last ends with a comma; nullable columns
// carry no constraint keyword.
func (t Table) Statement() string {
	var b strings.Builder
	fmt.Fprintf(&b, "create table %s (\n", t.Name)
	for i, col := range t.Columns {
		line := strings.TrimRight(fmt.Sprintf("%s %s %s", col.Name, col.Type, col.Constraint.Keyword()), " ")
		if i < len(t.Columns)-1 {
			fmt.Fprintf(&b, "    %s,\n", line)
		} else {
			fmt.Fprintf(&b, "    %s\n", line)
		}
	}
	b.WriteString(");\n")
	return b.String()
}
