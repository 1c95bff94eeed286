package main

import (
	"cmp"
	"flag"
	"fmt"
	"strings"

	"csvddl/internal/db"
	_ "csvddl/internal/db/appliers"
	"csvddl/internal/infer"
	"csvddl/internal/logger"
	"csvddl/internal/source"
	"csvddl/pkg/config"
)

func main() {
	// flags
	cfgPath := flag.String("config", "", "path to config YAML (optional)")
	delimiter := flag.String("d", "", "field delimiter (default \",\")")
	noHeader := flag.Bool("no-header", false, "treat the first row as data")
	columns := flag.String("columns", "", "override column names, comma separated (default: csv header or letters)")
	nullAs := flag.String("null-as", "", "value treated as null (default: empty string)")
	tableName := flag.String("t", "", "table name (default: input file base name)")
	apply := flag.Bool("apply", false, "execute the statement on a database")
	driverFlag := flag.String("driver", "", "db driver for -apply (postgres,mysql,sqlite,sqlserver,oracle)")
	dsnFlag := flag.String("dsn", "", "dsn override for -apply")
	timeout := flag.Int("timeout", 10, "db connect timeout seconds")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	logger.SetVerbose(*verbose)

	// attempt to load config file (optional)
	var appCfg config.AppConfig
	if *cfgPath != "" {
		logger.Debug("config file %s", *cfgPath)
		c, err := config.LoadFile(*cfgPath)
		if err != nil {
			logger.Fatal("error reading config file: %v", err)
		}
		appCfg = c
	}

	// CLI flags override config values
	path := flag.Arg(0)
	name := cmp.Or(*tableName, appCfg.CSV.TableName)
	if path == "" && name == "" {
		logger.Fatal("reading from stdin requires -t table-name")
	}

	delim, err := source.Delimiter(cmp.Or(*delimiter, appCfg.CSV.Delimiter))
	if err != nil {
		logger.Fatal("%v", err)
	}

	override := appCfg.CSV.Columns
	if *columns != "" {
		override = strings.Split(*columns, ",")
	}

	src, err := source.Open(path, source.Options{
		Delimiter: delim,
		NoHeader:  *noHeader || appCfg.CSV.NoHeader,
	})
	if err != nil {
		logger.Fatal("%v", err)
	}
	defer src.Close()

	table, err := infer.Infer(infer.Config{
		NullAs:    cmp.Or(*nullAs, appCfg.CSV.NullAs),
		Columns:   override,
		TableName: name,
		Source:    path,
	}, src)
	if err != nil {
		logger.Fatal("%v", err)
	}

	fmt.Print(table.Statement())

	if !*apply {
		return
	}

	driver := cmp.Or(*driverFlag, appCfg.Database.Type)
	dsn := *dsnFlag
	if dsn == "" {
		var err error
		if driver, dsn, err = config.BuildDriverAndDSN(appCfg.Database); err != nil {
			logger.Fatal("error building DSN: %v", err)
		}
	}
	logger.Debug("registered dialects: %v", db.RegisteredDialects())
	if err := db.ConnectAndApply(driver, dsn, *timeout, table); err != nil {
		logger.Fatal("apply failed: %v", err)
	}
}
