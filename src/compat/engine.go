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
package compat

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// TableManager is the table-management collaborator: it owns the backend
// connection and the per-scenario table. CreateTableWithColumn creates a
// fresh one-column table of the given type, inserts exactly one row using
// insertLiteral verbatim as the column's SQL value, and returns the table
// name. DropTableIfExists must not fail when the table is absent.
type TableManager interface {
	CreateTableWithColumn(ctx context.Context, columnType, insertLiteral string) (string, error)
	DropTableIfExists(ctx context.Context, tableName string) error
	// ReadBackColumn reads the column value of the given row through a direct
	// database query. A nil result is a SQL NULL.
	ReadBackColumn(ctx context.Context, tableName string, rowIndex int) (*string, error)
}

// Importer is the import-pipeline collaborator, consumed as a black box: it
// moves the table's rows into the storage format and hands back the imported
// data for verification.
type Importer interface {
	RunImport(ctx context.Context, tableName string) (ImportedData, error)
}

// ImportedData reads values back out of one import run's serialized output.
type ImportedData interface {
	// ReadFirstValue returns the first serialized record's column value, or
	// nil if the serialized value is NULL.
	ReadFirstValue() (*string, error)
	Close() error
}

// Engine runs type scenarios against a live backend through the two
// collaborators and asserts both extraction paths. It is backend-agnostic;
// everything backend-specific lives in the Adapter.
type Engine struct {
	Adapter  Adapter
	Tables   TableManager
	Importer Importer
}

// VerifyType runs a single scenario to completion and returns its outcome.
// The two assertions are independent: the serialized path is checked even
// when the direct path already failed. The scenario table is dropped on every
// exit path, whatever the outcome.
func (e *Engine) VerifyType(ctx context.Context, sc TypeScenario) Outcome {
	out := Outcome{Scenario: sc}

	if !e.Adapter.Supports(sc.LogicalType) {
		out.Status = StatusSkipped
		out.SkipReason = fmt.Sprintf("backend %q has no %s type", e.Adapter.Name, sc.LogicalType)
		log.Infof("skipping scenario %q: %s", sc.Name, out.SkipReason)
		return out
	}

	tableName, err := e.Tables.CreateTableWithColumn(ctx, sc.ColumnType, sc.InsertLiteral)
	if err != nil {
		out.Status = StatusFailed
		out.Err = fmt.Errorf("create table with column %q and value %s: %w", sc.ColumnType, sc.InsertLiteral, err)
		return out
	}
	defer func() {
		if err := e.Tables.DropTableIfExists(ctx, tableName); err != nil {
			log.Warnf("drop table %q on scenario teardown: %v", tableName, err)
		}
	}()

	actual, err := e.Tables.ReadBackColumn(ctx, tableName, 0)
	if err != nil {
		out.Err = fmt.Errorf("read back %q from table %q: %w", sc.ColumnType, tableName, err)
	} else if !valuesEqual(actual, sc.DirectExpected) {
		out.Failures = append(out.Failures, Failure{
			Path:     PathDirect,
			Expected: DisplayValue(sc.DirectExpected),
			Actual:   DisplayValue(actual),
		})
	}

	data, err := e.Importer.RunImport(ctx, tableName)
	if err != nil {
		out.Err = errors.Join(out.Err, fmt.Errorf("import table %q: %w", tableName, err))
	} else {
		defer data.Close()
		got, err := data.ReadFirstValue()
		if err != nil {
			out.Err = errors.Join(out.Err, fmt.Errorf("read first serialized value of %q: %w", tableName, err))
		} else if !valuesEqual(got, sc.FileExpected) {
			out.Failures = append(out.Failures, Failure{
				Path:     PathFile,
				Expected: DisplayValue(sc.FileExpected),
				Actual:   DisplayValue(got),
			})
		}
	}

	if out.Err != nil || len(out.Failures) > 0 {
		out.Status = StatusFailed
		for _, f := range out.Failures {
			log.Errorf("scenario %q (%s path): expected %q, got %q", sc.Name, f.Path, f.Expected, f.Actual)
		}
		if out.Err != nil {
			log.Errorf("scenario %q: %v", sc.Name, out.Err)
		}
	} else {
		out.Status = StatusPassed
	}
	return out
}

// Run executes the scenarios sequentially. One scenario's failure never
// aborts the rest of the catalog.
func (e *Engine) Run(ctx context.Context, scenarios []TypeScenario) []Outcome {
	outcomes := make([]Outcome, 0, len(scenarios))
	for _, sc := range scenarios {
		log.Infof("running type scenario %q: column type %s, literal %s", sc.Name, sc.ColumnType, sc.InsertLiteral)
		outcomes = append(outcomes, e.VerifyType(ctx, sc))
	}
	return outcomes
}

func valuesEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
