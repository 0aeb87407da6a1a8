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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbporter/dbporter/src/compat"
	"github.com/dbporter/dbporter/src/datafile"
	"github.com/dbporter/dbporter/src/importer"
	"github.com/dbporter/dbporter/testcontainers"
)

func startMySQLSource(t *testing.T) SourceDB {
	t.Helper()
	ctx := context.Background()
	container, host, port, err := testcontainers.StartDBContainer(ctx, testcontainers.MYSQL)
	require.NoError(t, err)
	t.Cleanup(func() { container.Terminate(ctx) })

	dsn := fmt.Sprintf("root:testpassword@tcp(%s:%s)/testdb", host, port.Port())

	// The container accepts TCP before auth is up; wait for real connections.
	db, err := sql.Open("mysql", dsn)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, testcontainers.WaitForDBToBeReady(db))

	sdb := NewSourceDB(&Source{DBType: MYSQL, DSN: dsn})
	require.NoError(t, sdb.Connect())
	t.Cleanup(sdb.Disconnect)
	return sdb
}

func TestMySQLTypeCompatibility(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping mysql container test in short mode")
	}
	sdb := startMySQLSource(t)
	assert.NotEmpty(t, sdb.GetVersion())

	engine := &compat.Engine{
		Adapter:  sdb.CompatAdapter(),
		Tables:   sdb,
		Importer: importer.NewFileImporter(sdb, t.TempDir(), datafile.TEXT),
	}
	outcomes := engine.Run(context.Background(), compat.Catalog(engine.Adapter))

	// DATETIME carries no fractional seconds at the default precision, so the
	// fractional timestamp must surface as a mismatch on both paths.
	for _, o := range outcomes {
		if o.Scenario.Name == "timestamp_fractional" {
			assert.Equal(t, compat.StatusFailed, o.Status)
			assert.Len(t, o.Failures, 2)
			continue
		}
		assert.Equal(t, compat.StatusPassed, o.Status,
			"scenario %q: %s", o.Scenario.Name, o.Detail())
	}

	passed, failed, skipped := compat.Summarize(outcomes)
	assert.Equal(t, 1, failed)
	assert.Zero(t, skipped)
	assert.Equal(t, len(outcomes)-1, passed)
}

func TestMySQLAdapterCapabilities(t *testing.T) {
	a := mysqlAdapter()
	assert.True(t, a.Supports(compat.TypeTinyInt))
	assert.Equal(t, "MEDIUMTEXT", a.LongVarCharTypeName)
	assert.Equal(t, "DATETIME", a.TimestampTypeName)
	// BOOLEAN is tinyint(1) underneath.
	assert.Equal(t, "1", a.TrueBoolDBOutput)
	assert.Equal(t, "0", a.FalseBoolDBOutput)
	assert.Equal(t, "-10.00000", a.DecimalDBOut("-10"))
}
