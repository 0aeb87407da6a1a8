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

	_ "github.com/go-sql-driver/mysql"
	log "github.com/sirupsen/logrus"

	"github.com/dbporter/dbporter/src/compat"
	"github.com/dbporter/dbporter/src/utils"
)

type MySQL struct {
	source *Source

	db *sql.DB
}

func newMySQL(s *Source) *MySQL {
	return &MySQL{source: s}
}

func (ms *MySQL) Connect() error {
	db, err := sql.Open("mysql", ms.source.DSN)
	ms.db = db
	return err
}

func (ms *MySQL) Disconnect() {
	if ms.db == nil {
		return
	}
	if err := ms.db.Close(); err != nil {
		log.Errorf("close connection to source database: %v", err)
	}
}

func (ms *MySQL) GetVersion() string {
	var version string
	query := "SELECT VERSION()"
	err := ms.db.QueryRow(query).Scan(&version)
	if err != nil {
		utils.ErrExit("run query %q on source: %s", query, err)
	}
	return version
}

func (ms *MySQL) CreateTableWithColumn(ctx context.Context, columnType, insertLiteral string) (string, error) {
	tableName := compatTableName(ms.source)
	if err := ms.DropTableIfExists(ctx, tableName); err != nil {
		return "", err
	}
	createStmt := fmt.Sprintf("CREATE TABLE %s (%s %s)", tableName, DataColumnName, columnType)
	if _, err := ms.db.ExecContext(ctx, createStmt); err != nil {
		return "", fmt.Errorf("run %q: %w", createStmt, err)
	}
	insertStmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", tableName, DataColumnName, insertLiteral)
	if _, err := ms.db.ExecContext(ctx, insertStmt); err != nil {
		return "", fmt.Errorf("run %q: %w", insertStmt, err)
	}
	return tableName, nil
}

func (ms *MySQL) DropTableIfExists(ctx context.Context, tableName string) error {
	dropStmt := fmt.Sprintf("DROP TABLE IF EXISTS %s", tableName)
	if _, err := ms.db.ExecContext(ctx, dropStmt); err != nil {
		return fmt.Errorf("run %q: %w", dropStmt, err)
	}
	return nil
}

func (ms *MySQL) ReadBackColumn(ctx context.Context, tableName string, rowIndex int) (*string, error) {
	query := fmt.Sprintf("SELECT %s FROM %s LIMIT 1 OFFSET %d", DataColumnName, tableName, rowIndex)
	var value sql.NullString
	err := ms.db.QueryRowContext(ctx, query).Scan(&value)
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

func (ms *MySQL) ExportRows(ctx context.Context, tableName string) ([]*string, error) {
	query := fmt.Sprintf("SELECT %s FROM %s", DataColumnName, tableName)
	rows, err := ms.db.QueryContext(ctx, query)
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

func (ms *MySQL) CompatAdapter() compat.Adapter {
	return mysqlAdapter()
}

// mysqlAdapter characterizes the text protocol's output: BOOLEAN is
// tinyint(1) underneath so booleans come back 1/0, DATETIME stands in for
// TIMESTAMP to keep NULLs and pre-1970 values working, and NUMERIC/DECIMAL
// output carries the column's full five-digit scale.
func mysqlAdapter() compat.Adapter {
	a := compat.DefaultAdapter()
	a.Name = MYSQL
	a.LongVarCharTypeName = "MEDIUMTEXT"
	a.TimestampTypeName = "DATETIME"
	a.TrueBoolDBOutput = "1"
	a.FalseBoolDBOutput = "0"
	a.TrueBoolFileOutput = "1"
	a.FalseBoolFileOutput = "0"
	a.RealDBOutput = compat.Identity
	a.FloatDBOutput = compat.Identity
	a.DoubleDBOutput = compat.Identity
	a.TimestampDBOutput = compat.Identity
	a.TimestampFileOutput = compat.Identity
	fixedScale := func(s string) string { return compat.PadFraction(s, a.NumericFracDigits) }
	a.NumericDBOutput = fixedScale
	a.DecimalDBOutput = fixedScale
	return a
}
