package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"csvddl/internal/schema"
	"csvddl/pkg/config"
)

type Applier interface {

	// Apply executes the table's create statement on the given connection.
	Apply(ctx context.Context, db *sql.DB, table schema.Table) error
}

var dialects = map[string]Applier{}

// Register makes an Applier available under name.
func Register(name string, a Applier) {
	dialects[strings.ToLower(name)] = a
}

// listRegistered returns the registered dialect keys (for diagnostics).
func listRegistered() []string {
	keys := make([]string, 0, len(dialects))
	for k := range dialects {
		keys = append(keys, k)
	}
	return keys
}

// ConnectAndApply connects to the database and creates the inferred table.
func ConnectAndApply(driver, dsn string, timeoutSec int, table schema.Table) error {
	driver = config.NormalizeDriver(driver)
	applier, ok := dialects[driver]
	if !ok {
		return fmt.Errorf("dialect not registered: %q (available: %v)", driver, listRegistered())
	}
	dbConn, err := sql.Open(driver, dsn)
	if err != nil {
		return err
	}
	defer dbConn.Close()
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSec)*time.Second)
	defer cancel()
	if err := dbConn.PingContext(ctx); err != nil {
		return err
	}
	return applier.Apply(ctx, dbConn, table)
}

// Connect opens and pings a connection, then closes it. Used to validate
// connection parameters before any apply is attempted.
func Connect(driver, dsn string, timeoutSec int) error {
	driver = config.NormalizeDriver(driver)
	if _, ok := dialects[driver]; !ok {
		return fmt.Errorf("dialect not registered: %q (available: %v)", driver, listRegistered())
	}
	dbConn, err := sql.Open(driver, dsn)
	if err != nil {
		return err
	}
	defer dbConn.Close()
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSec)*time.Second)
	defer cancel()
	return dbConn.PingContext(ctx)
}

// RegisteredDialects is a helper that allows main to print registered dialects
func RegisteredDialects() []string {
	return listRegistered()
}

// BuildStatement renders the table's create statement with a dialect's own
// type names, for appliers whose database does not accept every rendered
// type verbatim.
func BuildStatement(table schema.Table, typeName func(schema.ColumnType) string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "create table %s (\n", table.Name)
	for i, col := range table.Columns {
		line := strings.TrimRight(fmt.Sprintf("%s %s %s", col.Name, typeName(col.Type), col.Constraint.Keyword()), " ")
		if i < len(table.Columns)-1 {
			fmt.Fprintf(&b, "    %s,\n", line)
		} else {
			fmt.Fprintf(&b, "    %s\n", line)
		}
	}
	b.WriteString(")")
	return b.String()
}
