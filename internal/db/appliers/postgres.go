package appliers

import (
	"context"
	"database/sql"
	"fmt"

	"csvddl/internal/db"
	"csvddl/internal/logger"
	"csvddl/internal/schema"
)

// pgApplier implements Applier for PostgreSQL. The rendered statement is
// already Postgres-shaped, so types pass through unchanged.
type pgApplier struct{}

func (pgApplier) Apply(ctx context.Context, dbConn *sql.DB, table schema.Table) error {
	var existing sql.NullString
	if err := dbConn.QueryRowContext(ctx,
		`SELECT to_regclass($1)`, table.Name).Scan(&existing); err != nil {
		return fmt.Errorf("check table %s: %w", table.Name, err)
	}
	if existing.Valid {
		return fmt.Errorf("table %s already exists", table.Name)
	}

	ddl := db.BuildStatement(table, func(t schema.ColumnType) string {
		return t.String()
	})
	logger.Debug("postgres ddl: %s", ddl)

	if _, err := dbConn.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create table %s: %w", table.Name, err)
	}
	logger.Info("created table %s (%d columns)", table.Name, len(table.Columns))
	return nil
}

func init() {
	db.Register("postgres", pgApplier{})
}
