package main

import (
	"cmp"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"csvddl/internal/db"
	_ "csvddl/internal/db/appliers"
	"csvddl/internal/infer"
	"csvddl/internal/logger"
	"csvddl/internal/schema"
	"csvddl/internal/source"
	"csvddl/pkg/config"
)

var (
	activeMu      sync.RWMutex
	activeDriver  string
	activeDSN     string
	activeTimeout = 10
	defaultPort   = 8080
)

// setActive sets the active database connection
func setActive(driver, dsn string, timeout int) {
	activeMu.Lock()
	defer activeMu.Unlock()
	activeDriver = driver
	activeDSN = dsn
	activeTimeout = timeout
}

// getActive returns the active database connection
func getActive() (string, string, int) {
	activeMu.RLock()
	defer activeMu.RUnlock()
	return activeDriver, activeDSN, activeTimeout
}

// inferRequest reads inference options from query parameters and the
// delimited body of r.
func inferRequest(r *http.Request) (schema.Table, error) {
	q := r.URL.Query()
	delim, err := source.Delimiter(q.Get("delimiter"))
	if err != nil {
		return schema.Table{}, err
	}
	var override []string
	if c := q.Get("columns"); c != "" {
		override = strings.Split(c, ",")
	}
	src, err := source.New(r.Body, source.Options{
		Delimiter: delim,
		NoHeader:  q.Get("no_header") == "true",
	})
	if err != nil {
		return schema.Table{}, err
	}
	return infer.Infer(infer.Config{
		NullAs:    q.Get("null_as"),
		Columns:   override,
		TableName: cmp.Or(q.Get("table"), "csvddl"),
	}, src)
}

func main() {
	// flags
	cfgPath := flag.String("config", "", "path to config YAML (optional)")
	port := flag.Int("port", 0, "http port (overrides config, default"+fmt.Sprintf(" %d)", defaultPort))
	timeout := flag.Int("timeout", 10, "db connect timeout seconds")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	logger.SetVerbose(*verbose)

	// attempt to load config file (optional)
	var appCfg config.AppConfig
	if *cfgPath != "" {
		logger.Info("config file %s", *cfgPath)
		if c, err := config.LoadFile(*cfgPath); err == nil {
			appCfg = c
		} else {
			logger.Error("error reading config file: %v", err)
		}
	}

	if appCfg.Database.Type != "" {
		drv, dsn, err := config.BuildDriverAndDSN(appCfg.Database)
		if err == nil {
			setActive(drv, dsn, *timeout)
		} else {
			logger.Error("error building DSN: %v", err)
		}
	}

	*port = cmp.Or(*port, appCfg.Server.Port, defaultPort)

	// infer endpoint: user posts delimited text, receives the statement
	http.HandleFunc("/api/infer", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		table, err := inferRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(struct {
			OK        bool         `json:"ok"`
			Table     schema.Table `json:"table"`
			Statement string       `json:"statement"`
		}{OK: true, Table: table, Statement: table.Statement()})
	})

	// connect endpoint: user posts DB params to create/test connection
	http.HandleFunc("/api/connect", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var dbReq config.DBConfig
		if err := json.NewDecoder(r.Body).Decode(&dbReq); err != nil {
			http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
			return
		}
		driver, dsn, err := config.BuildDriverAndDSN(dbReq)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := db.Connect(driver, dsn, *timeout); err != nil {
			http.Error(w, "connection failed: "+err.Error(), http.StatusInternalServerError)
			return
		}
		// persist active connection
		setActive(driver, dsn, *timeout)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(struct {
			OK     bool   `json:"ok"`
			Driver string `json:"driver"`
		}{OK: true, Driver: driver})
	})

	// apply endpoint infers from the body and creates the table on the
	// active connection
	http.HandleFunc("/api/apply", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		driver, dsn, to := getActive()
		if driver == "" || dsn == "" {
			http.Error(w, "no active connection; POST /api/connect to create one", http.StatusBadRequest)
			return
		}
		table, err := inferRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := db.ConnectAndApply(driver, dsn, to, table); err != nil {
			http.Error(w, "apply failed: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(struct {
			OK    bool   `json:"ok"`
			Table string `json:"table"`
		}{OK: true, Table: table.Name})
	})

	// HTTP server
	addr := fmt.Sprintf(":%d", *port)
	srv := &http.Server{
		Addr:         addr,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	logger.Info("listening on %s", addr)
	logger.Info("registered dialects: %v", db.RegisteredDialects())
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("%v", err)
	}
}
