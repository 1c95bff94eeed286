package schema

import (
	"strings"
	"testing"
)

func TestColumnTypeOrdering(t *testing.T) {
	// The widening algorithm depends on these exact ranks.
	var tests = []struct {
		name   string
		lower  ColumnType
		higher ColumnType
	}{
		{"unknown below boolean", Unknown, Boolean},
		{"boolean below integer", Boolean, Integer},
		{"integer below numeric", Integer, Numeric},
		{"numeric below date", Numeric, Date},
		{"date below timestamp", Date, Timestamp},
		{"timestamp below text", Timestamp, Text},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !(tt.lower < tt.higher) {
				t.Errorf("\nexpected %v < %v", tt.lower, tt.higher)
			}
			if got := tt.lower.Widen(tt.higher); got != tt.higher {
				t.Errorf("\nWiden(%v, %v) = %v, wanted %v", tt.lower, tt.higher, got, tt.higher)
			}
			if got := tt.higher.Widen(tt.lower); got != tt.higher {
				t.Errorf("\nWiden(%v, %v) = %v, wanted %v", tt.higher, tt.lower, got, tt.higher)
			}
		})
	}
}

func TestColumnTypeString(t *testing.T) {
	var tests = []struct {
		ctype ColumnType
		want  string
	}{
		{Unknown, "unknown"},
		{Boolean, "boolean"},
		{Integer, "integer"},
		{Numeric, "numeric"},
		{Date, "date"},
		{Timestamp, "timestamp"},
		{Text, "text"},
		{ColumnType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.ctype.String(); got != tt.want {
				t.Errorf("\ngot %q, wanted %q", got, tt.want)
			}
		})
	}
}

func TestConstraint(t *testing.T) {
	if Nullable >= NotNull {
		t.Errorf("\nexpected Nullable < NotNull")
	}
	if got := Nullable.Strengthen(NotNull); got != NotNull {
		t.Errorf("\nStrengthen toward NotNull failed, got %v", got)
	}
	if got := NotNull.Strengthen(Nullable); got != NotNull {
		t.Errorf("\nNotNull must be sticky, got %v", got)
	}
	if got := NotNull.Keyword(); got != "not null" {
		t.Errorf("\ngot keyword %q, wanted \"not null\"", got)
	}
	if got := Nullable.Keyword(); got != "" {
		t.Errorf("\ngot keyword %q, wanted empty", got)
	}
}

func TestAssemble(t *testing.T) {
	var tests = []struct {
		name        string
		names       []string
		types       []ColumnType
		constraints []Constraint
		errIsNil    bool
	}{
		{"matched lengths",
			[]string{"a", "b"},
			[]ColumnType{Integer, Text},
			[]Constraint{NotNull, Nullable},
			true},
		{"mismatched lengths",
			[]string{"a", "b"},
			[]ColumnType{Integer},
			[]Constraint{NotNull, Nullable},
			false},
		{"no columns", nil, nil, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tab, err := Assemble("t", tt.names, tt.types, tt.constraints)
			if (err == nil) != tt.errIsNil {
				t.Fatalf("\ngot err %v, wanted errIsNil=%v", err, tt.errIsNil)
			}
			if err != nil {
				return
			}
			if len(tab.Columns) != len(tt.names) {
				t.Errorf("\ngot %d columns, wanted %d", len(tab.Columns), len(tt.names))
			}
			for i, col := range tab.Columns {
				if col.Name != tt.names[i] || col.Type != tt.types[i] || col.Constraint != tt.constraints[i] {
					t.Errorf("\ncolumn %d = %+v, does not match inputs", i, col)
				}
			}
		})
	}
}

func TestStatement(t *testing.T) {
	tab := Table{
		Name: "example",
		Columns: []Column{
			{Name: "city", Type: Text, Constraint: NotNull},
			{Name: "region", Type: Text, Constraint: Nullable},
			{Name: "population", Type: Integer, Constraint: NotNull},
		},
	}

	want := "create table example (\n" +
		"    city text not null,\n" +
		"    region text,\n" +
		"    population integer not null\n" +
		");\n"

	got := tab.Statement()
	if got != want {
		t.Errorf("\ngot:\n%s\nwanted:\n%s", got, want)
	}
	if strings.Contains(got, " ,") || strings.Contains(got, " \n") {
		t.Errorf("\nstatement contains an untrimmed trailing space:\n%q", got)
	}
	if again := tab.Statement(); again != got {
		t.Errorf("\nrendering is not idempotent")
	}
}

func TestStatementSingleColumn(t *testing.T) {
	tab := Table{Name: "t", Columns: []Column{{Name: "a", Type: Text, Constraint: Nullable}}}
	want := "create table t (\n    a text\n);\n"
	if got := tab.Statement(); got != want {
		t.Errorf("\ngot:\n%q\nwanted:\n%q", got, want)
	}
}
