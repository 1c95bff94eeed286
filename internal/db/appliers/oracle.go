//go:build oracle
// +build oracle

package appliers

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/godror/godror"

	"csvddl/internal/db"
	"csvddl/internal/logger"
	"csvddl/internal/schema"
)

// oracleApplier implements Applier for Oracle. Built behind the oracle tag
// because godror needs the Oracle client libraries at link time.
type oracleApplier struct{}

var oracleTypes = map[schema.ColumnType]string{
	schema.Boolean:   "number(1)",
	schema.Integer:   "number(19)",
	schema.Numeric:   "binary_double",
	schema.Date:      "date",
	schema.Timestamp: "timestamp",
	schema.Text:      "varchar2(4000)",
}

func (oracleApplier) Apply(ctx context.Context, dbConn *sql.DB, table schema.Table) error {
	var count int
	if err := dbConn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM user_tables WHERE table_name = :1`,
		strings.ToUpper(table.Name)).Scan(&count); err != nil {
		return fmt.Errorf("check table %s: %w", table.Name, err)
	}
	if count > 0 {
		return fmt.Errorf("table %s already exists", table.Name)
	}

	ddl := db.BuildStatement(table, func(t schema.ColumnType) string {
		if n, ok := oracleTypes[t]; ok {
			return n
		}
		return "varchar2(4000)"
	})
	logger.Debug("oracle ddl: %s", ddl)

	if _, err := dbConn.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create table %s: %w", table.Name, err)
	}
	logger.Info("created table %s (%d columns)", table.Name, len(table.Columns))
	return nil
}

func init() {
	db.Register("godror", oracleApplier{})
	db.Register("oracle", oracleApplier{})
}
