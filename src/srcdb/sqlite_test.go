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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbporter/dbporter/src/compat"
	"github.com/dbporter/dbporter/src/datafile"
	"github.com/dbporter/dbporter/src/importer"
)

// Scenarios the sqlite backend is expected to pass end to end. The catalog's
// remaining scenarios document real sqlite limits: unpadded time and date
// literals are stored as typed, and wide NUMERIC values lose digits to float
// storage.
var sqlitePassingScenarios = []string{
	"varchar", "char_fixed_width", "varchar_empty", "varchar_null",
	"integer", "integer_null",
	"boolean_true", "boolean_false_zero", "boolean_false_keyword",
	"tinyint_zero", "tinyint", "smallint_negative", "smallint", "bigint",
	"real_integral", "real_fractional", "float_integral", "float_fractional",
	"double_negative", "double_fractional",
	"date_padded", "date_april",
	"time_noon", "time_morning", "time_evening",
	"timestamp", "timestamp_fractional", "timestamp_null",
	"numeric_one", "numeric_negative", "numeric_pi",
	"decimal_one", "decimal_negative", "decimal_pi",
	"longvarchar",
}

func newSQLiteEngine(t *testing.T, fileFormat string) (*compat.Engine, SourceDB) {
	t.Helper()
	sdb := NewSourceDB(&Source{DBType: SQLITE, DSN: ":memory:"})
	require.NoError(t, sdb.Connect())
	t.Cleanup(sdb.Disconnect)

	return &compat.Engine{
		Adapter:  sdb.CompatAdapter(),
		Tables:   sdb,
		Importer: importer.NewFileImporter(sdb, t.TempDir(), fileFormat),
	}, sdb
}

func TestSQLiteVersion(t *testing.T) {
	sdb := NewSourceDB(&Source{DBType: SQLITE, DSN: ":memory:"})
	require.NoError(t, sdb.Connect())
	defer sdb.Disconnect()
	assert.NotEmpty(t, sdb.GetVersion())
}

func TestSQLiteTypeCompatibility(t *testing.T) {
	for _, fileFormat := range []string{datafile.CSV, datafile.TEXT} {
		t.Run(fileFormat, func(t *testing.T) {
			engine, _ := newSQLiteEngine(t, fileFormat)
			scenarios := compat.FilterScenarios(compat.Catalog(engine.Adapter), sqlitePassingScenarios)
			require.Len(t, scenarios, len(sqlitePassingScenarios))

			outcomes := engine.Run(context.Background(), scenarios)
			for _, o := range outcomes {
				assert.Equal(t, compat.StatusPassed, o.Status,
					"scenario %q: %s", o.Scenario.Name, o.Detail())
			}
		})
	}
}

func TestSQLiteReportsUnpaddedTimeMismatch(t *testing.T) {
	// SQLite stores the TIME literal as typed, so the unpadded hour must
	// surface as a failure on both extraction paths, not get papered over.
	engine, _ := newSQLiteEngine(t, datafile.CSV)
	scenarios := compat.FilterScenarios(compat.Catalog(engine.Adapter), []string{"time_unpadded_hour"})
	require.Len(t, scenarios, 1)

	out := engine.VerifyType(context.Background(), scenarios[0])
	require.Equal(t, compat.StatusFailed, out.Status)
	require.Len(t, out.Failures, 2)
	assert.Equal(t, "06:24:00", out.Failures[0].Expected)
	assert.Equal(t, "6:24:00", out.Failures[0].Actual)
}

func TestSQLiteReportsUnpaddedDateMismatch(t *testing.T) {
	// The driver cannot parse a single-digit month into the DATE column's
	// time.Time and yields the zero time; the scenario must fail honestly.
	engine, _ := newSQLiteEngine(t, datafile.CSV)
	scenarios := compat.FilterScenarios(compat.Catalog(engine.Adapter), []string{"date_single_digit"})
	require.Len(t, scenarios, 1)

	out := engine.VerifyType(context.Background(), scenarios[0])
	require.Equal(t, compat.StatusFailed, out.Status)
	require.Len(t, out.Failures, 2)
	assert.Equal(t, "2009-01-12T00:00:00Z", out.Failures[0].Expected)
	assert.Equal(t, "0001-01-01T00:00:00Z", out.Failures[0].Actual)
}

func TestSQLiteAdapterCapabilities(t *testing.T) {
	a := sqliteAdapter()
	assert.Equal(t, "TEXT", a.LongVarCharTypeName)
	// The driver hands BOOLEAN columns back as Go bool on both paths.
	assert.Equal(t, "true", a.TrueBoolDBOutput)
	assert.Equal(t, "false", a.FalseBoolDBOutput)
	assert.Equal(t, "true", a.TrueBoolFileOutput)
	assert.Equal(t, "false", a.FalseBoolFileOutput)
	// DATE and TIMESTAMP columns come back spelled as RFC 3339.
	assert.Equal(t, "2009-01-12T00:00:00Z", a.DateDBOut("2009-01-12"))
	assert.Equal(t, "2009-04-24T18:24:00Z", a.TimestampDBOut("2009-04-24 18:24:00"))
	assert.Equal(t, "256", a.RealDBOut("256"))
}

func TestSQLiteScenarioTableIsDropped(t *testing.T) {
	engine, sdb := newSQLiteEngine(t, datafile.CSV)
	scenarios := compat.FilterScenarios(compat.Catalog(engine.Adapter), []string{"integer"})
	require.Len(t, scenarios, 1)

	out := engine.VerifyType(context.Background(), scenarios[0])
	require.Equal(t, compat.StatusPassed, out.Status)

	// The scenario table must be gone after the run.
	_, err := sdb.ExportRows(context.Background(), compatTableName(&Source{DBType: SQLITE}))
	assert.Error(t, err)
}

func TestSQLiteTablePrefix(t *testing.T) {
	sdb := NewSourceDB(&Source{DBType: SQLITE, DSN: ":memory:", TablePrefix: "porter_check_"})
	require.NoError(t, sdb.Connect())
	defer sdb.Disconnect()

	tableName, err := sdb.CreateTableWithColumn(context.Background(), "INTEGER", "7")
	require.NoError(t, err)
	assert.Equal(t, "porter_check_sqlite", tableName)
	require.NoError(t, sdb.DropTableIfExists(context.Background(), tableName))
}

func TestSQLiteNullRoundTrip(t *testing.T) {
	sdb := NewSourceDB(&Source{DBType: SQLITE, DSN: ":memory:"})
	require.NoError(t, sdb.Connect())
	defer sdb.Disconnect()
	ctx := context.Background()

	tableName, err := sdb.CreateTableWithColumn(ctx, "VARCHAR(32)", "NULL")
	require.NoError(t, err)
	defer sdb.DropTableIfExists(ctx, tableName)

	val, err := sdb.ReadBackColumn(ctx, tableName, 0)
	require.NoError(t, err)
	assert.Nil(t, val)

	rows, err := sdb.ExportRows(ctx, tableName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0])
}

func TestNewSourceDBUnknownTypePanics(t *testing.T) {
	assert.Panics(t, func() { NewSourceDB(&Source{DBType: "oracle"}) })
}
