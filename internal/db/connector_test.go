package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"csvddl/internal/schema"
)

var testdialect string = "testdialect"

type testApplier struct{}

func (testApplier) Apply(ctx context.Context, dbConn *sql.DB, table schema.Table) error {
	return errors.New("not implemented")
}

func TestRegister(t *testing.T) {
	// tests both Register and RegisteredDialects because they take the same setup

	Register(testdialect, testApplier{})

	if _, ok := dialects[testdialect]; !ok {
		t.Errorf("\ndialect %v not registered correctly in %v", testdialect, dialects)
	}

	rd := RegisteredDialects()

	if !(len(rd) == 1 && rd[0] == testdialect) {
		t.Errorf("\nRegisteredDialects returned unexpected result %v", rd)
	}
}

func TestConnectAndApply(t *testing.T) {

	table := schema.Table{
		Name:    "t",
		Columns: []schema.Column{{Name: "a", Type: schema.Text, Constraint: schema.NotNull}},
	}

	var tests = []struct {
		name          string
		dialect       string
		dsn           string
		timeout       int
		registerFirst bool
		errIsNil      bool
	}{
		{"unregistered dialect", testdialect, "", 10, false, false},
		{"sqlite with testApplier", "sqlite", ":memory:", 10, true, false},
	}

	for _, tt := range tests {
		// Use t.Run to run each case as a subtest with a descriptive name
		t.Run(tt.name, func(t *testing.T) {
			if tt.registerFirst {
				Register(tt.dialect, testApplier{})
			}

			err := ConnectAndApply(tt.dialect, tt.dsn, tt.timeout, table)

			if (err == nil) != tt.errIsNil {
				if tt.errIsNil {
					t.Errorf("\ngot unexpected error: \"%v\"", err)
				} else {
					t.Errorf("\nexpected an error, did not receive one")
				}
			}
		})
	}
}

func TestBuildStatement(t *testing.T) {
	table := schema.Table{
		Name: "cities",
		Columns: []schema.Column{
			{Name: "city", Type: schema.Text, Constraint: schema.NotNull},
			{Name: "founded", Type: schema.Date, Constraint: schema.Nullable},
		},
	}

	typeName := func(ct schema.ColumnType) string {
		if ct == schema.Date {
			return "datetime"
		}
		return ct.String()
	}

	want := "create table cities (\n" +
		"    city text not null,\n" +
		"    founded datetime\n" +
		")"
	if got := BuildStatement(table, typeName); got != want {
		t.Errorf("\ngot:\n%s\nwanted:\n%s", got, want)
	}
}
