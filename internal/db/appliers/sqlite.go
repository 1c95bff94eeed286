package appliers

import (
	"context"
	"database/sql"
	"fmt"

	"csvddl/internal/db"
	"csvddl/internal/logger"
	"csvddl/internal/schema"
)

// sqliteApplier implements Applier for SQLite. Dates and timestamps are
// stored as text, SQLite's own convention.
type sqliteApplier struct{}

var sqliteTypes = map[schema.ColumnType]string{
	schema.Boolean:   "integer",
	schema.Integer:   "integer",
	schema.Numeric:   "real",
	schema.Date:      "text",
	schema.Timestamp: "text",
	schema.Text:      "text",
}

func (sqliteApplier) Apply(ctx context.Context, dbConn *sql.DB, table schema.Table) error {
	var count int
	if err := dbConn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name = ?`, table.Name).Scan(&count); err != nil {
		return fmt.Errorf("check table %s: %w", table.Name, err)
	}
	if count > 0 {
		return fmt.Errorf("table %s already exists", table.Name)
	}

	ddl := db.BuildStatement(table, func(t schema.ColumnType) string {
		if n, ok := sqliteTypes[t]; ok {
			return n
		}
		return "text"
	})
	logger.Debug("sqlite ddl: %s", ddl)

	if _, err := dbConn.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create table %s: %w", table.Name, err)
	}
	logger.Info("created table %s (%d columns)", table.Name, len(table.Columns))
	return nil
}

func init() {
	db.Register("sqlite3", sqliteApplier{})
	db.Register("sqlite", sqliteApplier{})
}
