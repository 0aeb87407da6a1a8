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
	"errors"
	"fmt"

	"github.com/hashicorp/go-version"
	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"

	"github.com/dbporter/dbporter/src/compat"
	"github.com/dbporter/dbporter/src/utils"
)

// Older servers were never exercised against the battery; warn, don't fail.
var minSupportedPGVersion = version.Must(version.NewVersion("9.6"))

type PostgreSQL struct {
	source *Source

	conn *pgx.Conn
}

func newPostgreSQL(s *Source) *PostgreSQL {
	return &PostgreSQL{source: s}
}

func (pg *PostgreSQL) Connect() error {
	conn, err := pgx.Connect(context.Background(), pg.source.DSN)
	pg.conn = conn
	return err
}

func (pg *PostgreSQL) Disconnect() {
	if pg.conn == nil {
		return
	}
	if err := pg.conn.Close(context.Background()); err != nil {
		log.Errorf("close connection to source database: %v", err)
	}
}

func (pg *PostgreSQL) GetVersion() string {
	var v string
	query := "SELECT setting FROM pg_settings WHERE name = 'server_version'"
	err := pg.conn.QueryRow(context.Background(), query).Scan(&v)
	if err != nil {
		utils.ErrExit("run query %q on source: %s", query, err)
	}
	pg.warnIfOldVersion(v)
	return v
}

func (pg *PostgreSQL) warnIfOldVersion(v string) {
	parsed, err := version.NewVersion(v)
	if err != nil {
		log.Warnf("parse source postgresql version %q: %v", v, err)
		return
	}
	if parsed.LessThan(minSupportedPGVersion) {
		utils.PrintAndLog("Note: source PostgreSQL version %s predates %s; type output spellings may differ from the shipped adapter.",
			v, minSupportedPGVersion)
	}
}

func (pg *PostgreSQL) CreateTableWithColumn(ctx context.Context, columnType, insertLiteral string) (string, error) {
	tableName := compatTableName(pg.source)
	if err := pg.DropTableIfExists(ctx, tableName); err != nil {
		return "", err
	}
	createStmt := fmt.Sprintf("CREATE TABLE %s (%s %s)", tableName, DataColumnName, columnType)
	if _, err := pg.conn.Exec(ctx, createStmt); err != nil {
		return "", fmt.Errorf("run %q: %w", createStmt, err)
	}
	insertStmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", tableName, DataColumnName, insertLiteral)
	if _, err := pg.conn.Exec(ctx, insertStmt); err != nil {
		return "", fmt.Errorf("run %q: %w", insertStmt, err)
	}
	return tableName, nil
}

func (pg *PostgreSQL) DropTableIfExists(ctx context.Context, tableName string) error {
	dropStmt := fmt.Sprintf("DROP TABLE IF EXISTS %s", tableName)
	if _, err := pg.conn.Exec(ctx, dropStmt); err != nil {
		return fmt.Errorf("run %q: %w", dropStmt, err)
	}
	return nil
}

// ReadBackColumn casts the column to text server-side, so the observed
// spelling is the server's output function, not the driver's scan logic.
func (pg *PostgreSQL) ReadBackColumn(ctx context.Context, tableName string, rowIndex int) (*string, error) {
	query := fmt.Sprintf("SELECT %s::text FROM %s LIMIT 1 OFFSET %d", DataColumnName, tableName, rowIndex)
	var value *string
	err := pg.conn.QueryRow(ctx, query).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("table %q has no row %d", tableName, rowIndex)
	}
	if err != nil {
		return nil, fmt.Errorf("run %q: %w", query, err)
	}
	return value, nil
}

func (pg *PostgreSQL) ExportRows(ctx context.Context, tableName string) ([]*string, error) {
	query := fmt.Sprintf("SELECT %s::text FROM %s", DataColumnName, tableName)
	rows, err := pg.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("run %q: %w", query, err)
	}
	defer rows.Close()

	var values []*string
	for rows.Next() {
		var value *string
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("scan row of %q: %w", tableName, err)
		}
		values = append(values, value)
	}
	return values, rows.Err()
}

func (pg *PostgreSQL) CompatAdapter() compat.Adapter {
	return postgresAdapter()
}

// postgresAdapter characterizes values read through a ::text cast: booleans
// spell out "true"/"false", bpchar padding is already stripped by the cast,
// floats keep the inserted digits, and NUMERIC/DECIMAL output carries the
// column's full five-digit scale.
func postgresAdapter() compat.Adapter {
	a := compat.DefaultAdapter()
	a.Name = POSTGRESQL
	a.SupportsTinyInt = false
	a.DoubleTypeName = "DOUBLE PRECISION"
	a.LongVarCharTypeName = "TEXT"
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
