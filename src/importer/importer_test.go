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
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbporter/dbporter/src/datafile"
)

type stubRowSource struct {
	rows map[string][]*string
	err  error
}

func (s *stubRowSource) ExportRows(ctx context.Context, tableName string) ([]*string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rows[tableName], nil
}

func runImport(t *testing.T, source *stubRowSource, fileFormat, tableName string) (*FileImporter, *string) {
	t.Helper()
	imp := NewFileImporter(source, t.TempDir(), fileFormat)
	data, err := imp.RunImport(context.Background(), tableName)
	require.NoError(t, err)
	defer data.Close()

	got, err := data.ReadFirstValue()
	require.NoError(t, err)
	return imp, got
}

func TestRunImportCsvRoundTrip(t *testing.T) {
	source := &stubRowSource{rows: map[string][]*string{
		"compat_t": {lo.ToPtr("this is a short string")},
	}}
	_, got := runImport(t, source, datafile.CSV, "compat_t")
	require.NotNil(t, got)
	assert.Equal(t, "this is a short string", *got)
}

func TestRunImportTextRoundTrip(t *testing.T) {
	source := &stubRowSource{rows: map[string][]*string{
		"compat_t": {lo.ToPtr("2009-04-24 18:24:00")},
	}}
	_, got := runImport(t, source, datafile.TEXT, "compat_t")
	require.NotNil(t, got)
	assert.Equal(t, "2009-04-24 18:24:00", *got)
}

func TestRunImportNullValue(t *testing.T) {
	source := &stubRowSource{rows: map[string][]*string{
		"compat_t": {nil},
	}}
	for _, format := range []string{datafile.CSV, datafile.TEXT} {
		_, got := runImport(t, source, format, "compat_t")
		assert.Nil(t, got, "format %s", format)
	}
}

func TestRunImportEmptyStringIsNotNull(t *testing.T) {
	source := &stubRowSource{rows: map[string][]*string{
		"compat_t": {lo.ToPtr("")},
	}}
	for _, format := range []string{datafile.CSV, datafile.TEXT} {
		_, got := runImport(t, source, format, "compat_t")
		require.NotNil(t, got, "format %s", format)
		assert.Equal(t, "", *got, "format %s", format)
	}
}

func TestRunImportValueWithDelimiter(t *testing.T) {
	source := &stubRowSource{rows: map[string][]*string{
		"compat_t": {lo.ToPtr("a,b,c")},
	}}
	_, got := runImport(t, source, datafile.CSV, "compat_t")
	require.NotNil(t, got)
	assert.Equal(t, "a,b,c", *got)
}

func TestRunImportTextValueWithEscapes(t *testing.T) {
	// A literal backslash followed by 'n' must survive the text codec intact.
	for _, value := range []string{`back\nope`, "real\nnewline", "tab\there"} {
		source := &stubRowSource{rows: map[string][]*string{
			"compat_t": {lo.ToPtr(value)},
		}}
		_, got := runImport(t, source, datafile.TEXT, "compat_t")
		require.NotNil(t, got, "value %q", value)
		assert.Equal(t, value, *got, "value %q", value)
	}
}

func TestRunImportWritesDescriptor(t *testing.T) {
	exportDir := t.TempDir()
	source := &stubRowSource{rows: map[string][]*string{
		"compat_t": {lo.ToPtr("42"), lo.ToPtr("43")},
	}}
	imp := NewFileImporter(source, exportDir, datafile.CSV)
	data, err := imp.RunImport(context.Background(), "compat_t")
	require.NoError(t, err)
	defer data.Close()

	_, err = os.Stat(filepath.Join(exportDir, datafile.DESCRIPTOR_PATH))
	require.NoError(t, err)

	dfd := datafile.OpenDescriptor(exportDir)
	assert.Equal(t, datafile.CSV, dfd.FileFormat)
	assert.Equal(t, datafile.DefaultNullString, dfd.NullString)
	assert.NotEmpty(t, dfd.RunID)
	entry := dfd.GetDataFileEntryByTableName("compat_t")
	require.NotNil(t, entry)
	assert.Equal(t, int64(2), entry.RowCount)
}

func TestRunImportExportError(t *testing.T) {
	source := &stubRowSource{err: errors.New("connection refused")}
	imp := NewFileImporter(source, t.TempDir(), datafile.CSV)
	_, err := imp.RunImport(context.Background(), "compat_t")
	assert.ErrorContains(t, err, "connection refused")
}

func TestReadFirstValueEmptyTable(t *testing.T) {
	source := &stubRowSource{rows: map[string][]*string{}}
	imp := NewFileImporter(source, t.TempDir(), datafile.CSV)
	data, err := imp.RunImport(context.Background(), "compat_t")
	require.NoError(t, err)
	defer data.Close()

	_, err = data.ReadFirstValue()
	assert.ErrorContains(t, err, "no records")
}
