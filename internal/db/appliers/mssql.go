package appliers

import (
	"context"
	"database/sql"
	"fmt"

	"csvddl/internal/db"
	"csvddl/internal/logger"
	"csvddl/internal/schema"
)

// mssqlApplier implements Applier for SQL Server.
type mssqlApplier struct{}

var mssqlTypes = map[schema.ColumnType]string{
	schema.Boolean:   "bit",
	schema.Integer:   "bigint",
	schema.Numeric:   "float",
	schema.Date:      "date",
	schema.Timestamp: "datetime2",
	schema.Text:      "nvarchar(max)",
}

func (mssqlApplier) Apply(ctx context.Context, dbConn *sql.DB, table schema.Table) error {
	var count int
	if err := dbConn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sys.tables WHERE name = @p1`, table.Name).Scan(&count); err != nil {
		return fmt.Errorf("check table %s: %w", table.Name, err)
	}
	if count > 0 {
		return fmt.Errorf("table %s already exists", table.Name)
	}

	ddl := db.BuildStatement(table, func(t schema.ColumnType) string {
		if n, ok := mssqlTypes[t]; ok {
			return n
		}
		return "nvarchar(max)"
	})
	logger.Debug("sqlserver ddl: %s", ddl)

	if _, err := dbConn.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create table %s: %w", table.Name, err)
	}
	logger.Info("created table %s (%d columns)", table.Name, len(table.Columns))
	return nil
}

func init() {
	db.Register("sqlserver", mssqlApplier{})
	db.Register("mssql", mssqlApplier{})
}
