package datafile

import (
	"encoding/csv"
	"os"

	log "github.com/sirupsen/logrus"
)

type CsvDataFile struct {
	file      *os.File
	reader    *csv.Reader
	Delimiter string
}

func (df *CsvDataFile) NextRecord() ([]string, error) {
	return df.reader.Read()
}

func (df *CsvDataFile) Close() {
	df.file.Close()
}

func openCsvDataFile(filePath string, descriptor *Descriptor) (*CsvDataFile, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(file)
	reader.Comma = []rune(descriptor.Delimiter)[0]
	reader.FieldsPerRecord = -1 // fields not fixed for all rows

	csvDataFile := &CsvDataFile{
		file:      file,
		reader:    reader,
		Delimiter: descriptor.Delimiter,
	}
	log.Infof("created csv data file struct for file: %s", filePath)

	return csvDataFile, nil
}
