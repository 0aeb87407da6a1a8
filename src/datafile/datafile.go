package datafile

import (
	"fmt"
)

const (
	CSV  = "csv"
	TEXT = "text"
)

// DataFile reads records back out of one serialized data file. NextRecord
// returns io.EOF once the file is exhausted.
type DataFile interface {
	NextRecord() ([]string, error)
	Close()
}

func NewDataFile(filePath string, descriptor *Descriptor) (DataFile, error) {
	switch descriptor.FileFormat {
	case CSV:
		return openCsvDataFile(filePath, descriptor)
	case TEXT:
		return openTextDataFile(filePath, descriptor)
	default:
		panic(fmt.Sprintf("Unknown file type %q", descriptor.FileFormat))
	}
}
