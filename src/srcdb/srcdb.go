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
	"fmt"

	"github.com/dbporter/dbporter/src/compat"
)

const (
	SQLITE     = "sqlite"
	POSTGRESQL = "postgresql"
	MYSQL      = "mysql"
)

// DataColumnName is the single column every scenario table carries.
const DataColumnName = "data_col"

// SourceDB is a backend under verification. It provides the scenario-table
// surface the verification engine needs plus row export for the import
// pipeline. Implementations satisfy compat.TableManager.
type SourceDB interface {
	Connect() error
	Disconnect()
	GetVersion() string

	CreateTableWithColumn(ctx context.Context, columnType, insertLiteral string) (string, error)
	DropTableIfExists(ctx context.Context, tableName string) error
	ReadBackColumn(ctx context.Context, tableName string, rowIndex int) (*string, error)

	// ExportRows returns the scenario table's column values in row order;
	// nil entries are SQL NULLs.
	ExportRows(ctx context.Context, tableName string) ([]*string, error)

	// CompatAdapter returns the adapter characterizing this backend's
	// type support and value spellings.
	CompatAdapter() compat.Adapter
}

var _ compat.TableManager = (SourceDB)(nil)

func NewSourceDB(source *Source) SourceDB {
	switch source.DBType {
	case SQLITE:
		return newSQLite(source)
	case POSTGRESQL:
		return newPostgreSQL(source)
	case MYSQL:
		return newMySQL(source)
	default:
		panic(fmt.Sprintf("unknown source database type %q", source.DBType))
	}
}

// compatTableName returns the backend-prefixed scenario table name. The same
// table is reused and recreated across scenarios; parallel runs against one
// backend are not supported.
func compatTableName(source *Source) string {
	prefix := source.TablePrefix
	if prefix == "" {
		prefix = "compat_"
	}
	name := prefix + source.DBType
	if source.Schema != "" {
		name = source.Schema + "." + name
	}
	return name
}
