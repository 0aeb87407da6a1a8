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
package datafile

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	log "github.com/sirupsen/logrus"

	"github.com/dbporter/dbporter/src/utils"
)

const (
	DESCRIPTOR_PATH = "metainfo/dataFileDescriptor.json"

	// DefaultNullString marks SQL NULLs in data files.
	DefaultNullString = `\N`
)

type FileEntry struct {
	// FilePath is relative to the export dir's data directory.
	FilePath  string `json:"FilePath"`
	TableName string `json:"TableName"`
	RowCount  int64  `json:"RowCount"`
}

type Descriptor struct {
	FileFormat   string       `json:"FileFormat"`
	Delimiter    string       `json:"Delimiter"`
	HasHeader    bool         `json:"HasHeader"`
	NullString   string       `json:"NullString,omitempty"`
	RunID        string       `json:"RunID"`
	ExportDir    string       `json:"-"`
	DataFileList []*FileEntry `json:"FileList"`
}

func OpenDescriptor(exportDir string) *Descriptor {
	dfd := &Descriptor{
		ExportDir: exportDir,
	}

	filePath := filepath.Join(exportDir, DESCRIPTOR_PATH)
	log.Infof("loading DataFileDescriptor from %q", filePath)
	dfdJson, err := os.ReadFile(filePath)
	if err != nil {
		utils.ErrExit("load data descriptor file: %v", err)
	}

	err = json.Unmarshal(dfdJson, &dfd)
	if err != nil {
		utils.ErrExit("unmarshal dfd: %v", err)
	}
	log.Infof("Parsed DataFileDescriptor: %v", spew.Sdump(dfd))
	return dfd
}

func (dfd *Descriptor) Save() {
	filePath := filepath.Join(dfd.ExportDir, DESCRIPTOR_PATH)
	log.Infof("storing DataFileDescriptor at %q", filePath)

	bytes, err := json.MarshalIndent(dfd, "", "\t")
	if err != nil {
		utils.ErrExit("marshalling the dfd struct: %v", err)
	}

	err = os.WriteFile(filePath, bytes, 0644)
	if err != nil {
		utils.ErrExit("writing DataFileDescriptor: %v", err)
	}
}

func (dfd *Descriptor) GetDataFileEntryByTableName(tableName string) *FileEntry {
	for _, fileEntry := range dfd.DataFileList {
		if fileEntry.TableName == tableName {
			return fileEntry
		}
	}
	return nil
}

// ResolveDataFilePath returns the absolute path of a file entry's data file.
func (dfd *Descriptor) ResolveDataFilePath(fileEntry *FileEntry) string {
	return filepath.Join(dfd.ExportDir, "data", fileEntry.FilePath)
}

// DecodeValue maps a serialized field back to its value; the descriptor's
// null string decodes to nil.
func (dfd *Descriptor) DecodeValue(field string) *string {
	if field == dfd.NullString {
		return nil
	}
	return &field
}
