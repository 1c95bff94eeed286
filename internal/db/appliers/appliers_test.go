package appliers

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"csvddl/internal/schema"
)

func testTable() schema.Table {
	return schema.Table{
		Name: "cities",
		Columns: []schema.Column{
			{Name: "city", Type: schema.Text, Constraint: schema.NotNull},
			{Name: "population", Type: schema.Integer, Constraint: schema.NotNull},
			{Name: "founded", Type: schema.Date, Constraint: schema.Nullable},
		},
	}
}

func TestSqliteApply(t *testing.T) {
	dbConn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("\nopen: %v", err)
	}
	defer dbConn.Close()

	ctx := context.Background()
	if err := (sqliteApplier{}).Apply(ctx, dbConn, testTable()); err != nil {
		t.Fatalf("\nApply: %v", err)
	}

	// The table must now be visible in the catalog.
	var count int
	if err := dbConn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='cities'`).Scan(&count); err != nil {
		t.Fatalf("\ncatalog query: %v", err)
	}
	if count != 1 {
		t.Errorf("\ntable not created, catalog count = %d", count)
	}

	// Applying again must refuse to clobber the existing table.
	if err := (sqliteApplier{}).Apply(ctx, dbConn, testTable()); err == nil {
		t.Errorf("\nexpected an error on duplicate apply, did not receive one")
	}
}

func TestTypeMaps(t *testing.T) {
	// Every renderable type needs a mapping in every dialect.
	renderable := []schema.ColumnType{
		schema.Boolean, schema.Integer, schema.Numeric,
		schema.Date, schema.Timestamp, schema.Text,
	}

	var tests = []struct {
		name  string
		types map[schema.ColumnType]string
	}{
		{"mysql", mysqlTypes},
		{"sqlite", sqliteTypes},
		{"sqlserver", mssqlTypes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, ct := range renderable {
				if name, ok := tt.types[ct]; !ok || name == "" {
					t.Errorf("\nno %s type name for %v", tt.name, ct)
				}
			}
		})
	}
}
