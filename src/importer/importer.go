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
package importer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/dbporter/dbporter/src/compat"
	"github.com/dbporter/dbporter/src/datafile"
)

// RowSource is the slice of the source database the importer needs: the
// scenario table's column values in row order, nil for SQL NULL.
type RowSource interface {
	ExportRows(ctx context.Context, tableName string) ([]*string, error)
}

// FileImporter lands a table's rows under the export dir as a data file plus
// descriptor, one file per table, and reads them back through the datafile
// package. It implements compat.Importer.
type FileImporter struct {
	Source     RowSource
	ExportDir  string
	FileFormat string // datafile.CSV or datafile.TEXT

	runID string
}

var _ compat.Importer = (*FileImporter)(nil)

func NewFileImporter(source RowSource, exportDir, fileFormat string) *FileImporter {
	return &FileImporter{
		Source:     source,
		ExportDir:  exportDir,
		FileFormat: fileFormat,
		runID:      uuid.New().String(),
	}
}

func (imp *FileImporter) RunImport(ctx context.Context, tableName string) (compat.ImportedData, error) {
	values, err := imp.Source.ExportRows(ctx, tableName)
	if err != nil {
		return nil, fmt.Errorf("export rows of %q: %w", tableName, err)
	}

	for _, dir := range []string{"data", "metainfo"} {
		if err := os.MkdirAll(filepath.Join(imp.ExportDir, dir), 0755); err != nil {
			return nil, fmt.Errorf("create export dir layout: %w", err)
		}
	}

	fileName := fmt.Sprintf("%s_data.%s", filepath.Base(tableName), imp.FileFormat)
	descriptor := &datafile.Descriptor{
		FileFormat: imp.FileFormat,
		Delimiter:  imp.delimiter(),
		NullString: datafile.DefaultNullString,
		RunID:      imp.runID,
		ExportDir:  imp.ExportDir,
		DataFileList: []*datafile.FileEntry{
			{FilePath: fileName, TableName: tableName, RowCount: int64(len(values))},
		},
	}

	filePath := descriptor.ResolveDataFilePath(descriptor.DataFileList[0])
	if err := imp.writeDataFile(filePath, values, descriptor); err != nil {
		return nil, err
	}
	descriptor.Save()
	log.Infof("imported %d row(s) of table %q into %q", len(values), tableName, filePath)

	return &importedTable{descriptor: descriptor, tableName: tableName}, nil
}

func (imp *FileImporter) delimiter() string {
	if imp.FileFormat == datafile.TEXT {
		return "\t"
	}
	return ","
}

func (imp *FileImporter) writeDataFile(filePath string, values []*string, descriptor *datafile.Descriptor) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("create data file %q: %w", filePath, err)
	}
	defer file.Close()

	switch descriptor.FileFormat {
	case datafile.CSV:
		for _, v := range values {
			if _, err := fmt.Fprintln(file, encodeCsvField(v, descriptor)); err != nil {
				return fmt.Errorf("write record to %q: %w", filePath, err)
			}
		}
	case datafile.TEXT:
		for _, v := range values {
			if _, err := fmt.Fprintln(file, encodeTextField(v, descriptor)); err != nil {
				return fmt.Errorf("write record to %q: %w", filePath, err)
			}
		}
	default:
		return fmt.Errorf("unknown file format %q", descriptor.FileFormat)
	}
	return file.Sync()
}

// encodeCsvField renders one column value as a csv field. NULLs become the
// descriptor's null string, written unquoted so the reader can tell it from a
// literal value of the same spelling. Empty strings are force-quoted; an
// unquoted empty field would make the whole line blank and csv readers skip
// blank lines.
func encodeCsvField(v *string, descriptor *datafile.Descriptor) string {
	if v == nil {
		return descriptor.NullString
	}
	field := *v
	if field == "" || strings.ContainsAny(field, descriptor.Delimiter+"\"\n\r") {
		return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	}
	return field
}

// encodeTextField renders one column value for the text data file.
func encodeTextField(v *string, descriptor *datafile.Descriptor) string {
	if v == nil {
		return descriptor.NullString
	}
	return datafile.EscapeText(*v, descriptor.Delimiter)
}

type importedTable struct {
	descriptor *datafile.Descriptor
	tableName  string
}

func (it *importedTable) ReadFirstValue() (*string, error) {
	fileEntry := it.descriptor.GetDataFileEntryByTableName(it.tableName)
	if fileEntry == nil {
		return nil, fmt.Errorf("no data file entry for table %q", it.tableName)
	}

	df, err := datafile.NewDataFile(it.descriptor.ResolveDataFilePath(fileEntry), it.descriptor)
	if err != nil {
		return nil, fmt.Errorf("open data file for %q: %w", it.tableName, err)
	}
	defer df.Close()

	record, err := df.NextRecord()
	if err == io.EOF {
		return nil, fmt.Errorf("data file for %q has no records", it.tableName)
	}
	if err != nil {
		return nil, fmt.Errorf("read data file for %q: %w", it.tableName, err)
	}
	if len(record) == 0 {
		return nil, fmt.Errorf("data file for %q has an empty record", it.tableName)
	}
	return it.descriptor.DecodeValue(record[0]), nil
}

func (it *importedTable) Close() error {
	return nil
}
