package appliers

import (
	"context"
	"database/sql"
	"fmt"

	"csvddl/internal/db"
	"csvddl/internal/logger"
	"csvddl/internal/schema"
)

// mysqlApplier implements Applier for MySQL/MariaDB.
type mysqlApplier struct{}

var mysqlTypes = map[schema.ColumnType]string{
	schema.Boolean:   "boolean",
	schema.Integer:   "bigint",
	schema.Numeric:   "double",
	schema.Date:      "date",
	schema.Timestamp: "datetime",
	schema.Text:      "text",
}

func (mysqlApplier) Apply(ctx context.Context, dbConn *sql.DB, table schema.Table) error {
	var count int
	if err := dbConn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM information_schema.tables
		 WHERE table_schema = DATABASE() AND table_name = ?`, table.Name).Scan(&count); err != nil {
		return fmt.Errorf("check table %s: %w", table.Name, err)
	}
	if count > 0 {
		return fmt.Errorf("table %s already exists", table.Name)
	}

	ddl := db.BuildStatement(table, func(t schema.ColumnType) string {
		if n, ok := mysqlTypes[t]; ok {
			return n
		}
		return "text"
	})
	logger.Debug("mysql ddl: %s", ddl)

	if _, err := dbConn.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create table %s: %w", table.Name, err)
	}
	logger.Info("created table %s (%d columns)", table.Name, len(table.Columns))
	return nil
}

func init() {
	db.Register("mysql", mysqlApplier{})
	db.Register("mariadb", mysqlApplier{})
}
