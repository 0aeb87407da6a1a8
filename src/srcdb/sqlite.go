/*
Copyright (c) DBPorter, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package srcdb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	log "github.com/sirupsen/logrus"

	"github.com/dbporter/dbporter/src/compat"
	"github.com/dbporter/dbporter/src/utils"
)

type SQLite struct {
	source *Source

	db *sql.DB
}

func newSQLite(s *Source) *SQLite {
	return &SQLite{source: s}
}

func (sl *SQLite) Connect() error {
	db, err := sql.Open("sqlite3", sl.source.DSN)
	if err != nil {
		return err
	}
	// In-memory DSNs get a fresh database per pooled connection; a single
	// conn keeps DDL and reads on the same database.
	db.SetMaxOpenConns(1)
	sl.db = db
	return db.Ping()
}

func (sl *SQLite) Disconnect() {
	if sl.db == nil {
		return
	}
	if err := sl.db.Close(); err != nil {
		log.Errorf("close sqlite database: %v", err)
	}
}

func (sl *SQLite) GetVersion() string {
	var version string
	query := "SELECT sqlite_version()"
	err := sl.db.QueryRow(query).Scan(&version)
	if err != nil {
		utils.ErrExit("run query %q on source: %s", query, err)
	}
	return version
}

func (sl *SQLite) CreateTableWithColumn(ctx context.Context, columnType, insertLiteral string) (string, error) {
	tableName := compatTableName(sl.source)
	if err := sl.DropTableIfExists(ctx, tableName); err != nil {
		return "", err
	}
	createStmt := fmt.Sprintf("CREATE TABLE %s (%s %s)", tableName, DataColumnName, columnType)
	if _, err := sl.db.ExecContext(ctx, createStmt); err != nil {
		return "", fmt.Errorf("run %q: %w", createStmt, err)
	}
	// The literal is the SQL source text of the value; it goes into the
	// statement verbatim, NULL and quoting included.
	insertStmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", tableName, DataColumnName, insertLiteral)
	if _, err := sl.db.ExecContext(ctx, insertStmt); err != nil {
		return "", fmt.Errorf("run %q: %w", insertStmt, err)
	}
	return tableName, nil
}

func (sl *SQLite) DropTableIfExists(ctx context.Context, tableName string) error {
	dropStmt := fmt.Sprintf("DROP TABLE IF EXISTS %s", tableName)
	if _, err := sl.db.ExecContext(ctx, dropStmt); err != nil {
		return fmt.Errorf("run %q: %w", dropStmt, err)
	}
	return nil
}

func (sl *SQLite) ReadBackColumn(ctx context.Context, tableName string, rowIndex int) (*string, error) {
	query := fmt.Sprintf("SELECT %s FROM %s LIMIT 1 OFFSET %d", DataColumnName, tableName, rowIndex)
	var value sql.NullString
	err := sl.db.QueryRowContext(ctx, query).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("table %q has no row %d", tableName, rowIndex)
	}
	if err != nil {
		return nil, fmt.Errorf("run %q: %w", query, err)
	}
	if !value.Valid {
		return nil, nil
	}
	return &value.String, nil
}

func (sl *SQLite) ExportRows(ctx context.Context, tableName string) ([]*string, error) {
	query := fmt.Sprintf("SELECT %s FROM %s", DataColumnName, tableName)
	rows, err := sl.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("run %q: %w", query, err)
	}
	defer rows.Close()

	var values []*string
	for rows.Next() {
		var value sql.NullString
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("scan row of %q: %w", tableName, err)
		}
		if value.Valid {
			values = append(values, &value.String)
		} else {
			values = append(values, nil)
		}
	}
	return values, rows.Err()
}

func (sl *SQLite) CompatAdapter() compat.Adapter {
	return sqliteAdapter()
}

// sqliteAdapter characterizes SQLite's affinity-based storage as seen through
// the go-sqlite3 driver: most literals come back exactly as typed and floats
// print without a forced trailing ".0". The driver converts BOOLEAN-declared
// columns to Go bool, so both paths observe "true"/"false" (the defaults).
// Columns declared DATE or TIMESTAMP are parsed into time.Time by the driver
// and come back spelled as RFC 3339.
func sqliteAdapter() compat.Adapter {
	a := compat.DefaultAdapter()
	a.Name = SQLITE
	a.LongVarCharTypeName = "TEXT"
	a.RealDBOutput = compat.Identity
	a.FloatDBOutput = compat.Identity
	a.DoubleDBOutput = compat.Identity
	dateRFC3339 := func(s string) string { return s + "T00:00:00Z" }
	a.DateDBOutput = dateRFC3339
	a.DateFileOutput = dateRFC3339
	tsRFC3339 := func(s string) string { return strings.Replace(s, " ", "T", 1) + "Z" }
	a.TimestampDBOutput = tsRFC3339
	a.TimestampFileOutput = tsRFC3339
	return a
}
