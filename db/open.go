// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// DriverSQLite is the database/sql name registered by modernc.org/sqlite
const DriverSQLite = "sqlite"

// sqlitePragmas are applied to every SQLite connection unless the DSN
// already sets them. Foreign keys are per connection in SQLite.
var sqlitePragmas = []struct {
	name  string
	value string
}{
	{"busy_timeout", "5000"},
	{"journal_mode", "WAL"},
	{"foreign_keys", "1"},
}

// Open returns a database handle for the given driver and DSN.
// SQLite gets busy_timeout, WAL and foreign_keys pragmas and a single open
// connection, so concurrent writers queue in the pool instead of failing
// with SQLITE_BUSY. Other drivers are opened as is.
func Open(driver, dsn string) (*sql.DB, error) {
	if driver == DriverSQLite {
		dsn = SQLiteDSN(dsn)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	if driver == DriverSQLite {
		conn.SetMaxOpenConns(1)
	}

	return conn, nil
}

// SQLiteDSN appends the default pragmas missing from dsn
func SQLiteDSN(dsn string) string {
	var extra []string
	for _, p := range sqlitePragmas {
		if strings.Contains(dsn, p.name) {
			continue
		}
		extra = append(extra, "_pragma="+p.name+"("+p.value+")")
	}
	if len(extra) == 0 {
		return dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(extra, "&")
}
