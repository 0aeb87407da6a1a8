package datafile

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// TextDataFile reads delimiter-separated records in the COPY text style:
// one record per line, fields separated by the descriptor's delimiter,
// backslash-escaped delimiter/newline/backslash inside fields.
type TextDataFile struct {
	file      *os.File
	scanner   *bufio.Scanner
	Delimiter string
}

func (df *TextDataFile) NextRecord() ([]string, error) {
	for df.scanner.Scan() {
		line := df.scanner.Text()
		if !df.isDataLine(line) {
			continue
		}
		fields := splitFields(line, df.Delimiter)
		for i, field := range fields {
			fields[i] = UnescapeText(field, df.Delimiter)
		}
		return fields, nil
	}
	if err := df.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

func (df *TextDataFile) Close() {
	df.file.Close()
}

// An empty line is a record too: the files are single-column, so an empty
// string value serializes to nothing at all. Only the end-of-data marker is
// skipped.
func (df *TextDataFile) isDataLine(line string) bool {
	return line != `\.`
}

func openTextDataFile(filePath string, descriptor *Descriptor) (*TextDataFile, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	return &TextDataFile{
		file:      file,
		scanner:   bufio.NewScanner(file),
		Delimiter: descriptor.Delimiter,
	}, nil
}

// splitFields splits a line on unescaped delimiters. A backslash and the
// byte after it belong to one field, so an escaped delimiter never starts a
// new field.
func splitFields(line, delimiter string) []string {
	var fields []string
	var b strings.Builder
	for i := 0; i < len(line); i++ {
		if line[i] == '\\' && i < len(line)-1 {
			b.WriteByte(line[i])
			i++
			b.WriteByte(line[i])
			continue
		}
		if strings.HasPrefix(line[i:], delimiter) {
			fields = append(fields, b.String())
			b.Reset()
			i += len(delimiter) - 1
			continue
		}
		b.WriteByte(line[i])
	}
	return append(fields, b.String())
}

// EscapeText escapes a field value for the text format. The escape handling
// covers what single-column data files need; it is not a full COPY codec.
func EscapeText(field, delimiter string) string {
	field = strings.ReplaceAll(field, `\`, `\\`)
	field = strings.ReplaceAll(field, delimiter, `\`+delimiter)
	field = strings.ReplaceAll(field, "\n", `\n`)
	return field
}

// UnescapeText reverses EscapeText. It consumes one escape sequence at a
// time, left to right; chained ReplaceAll would corrupt a literal backslash
// followed by 'n' by first rewriting the tail of its escaped form into a
// real newline.
func UnescapeText(field, delimiter string) string {
	var b strings.Builder
	b.Grow(len(field))
	for i := 0; i < len(field); i++ {
		c := field[i]
		if c != '\\' || i == len(field)-1 {
			b.WriteByte(c)
			continue
		}
		i++
		switch {
		case field[i] == '\\':
			b.WriteByte('\\')
		case field[i] == 'n':
			b.WriteByte('\n')
		case strings.HasPrefix(field[i:], delimiter):
			b.WriteString(delimiter)
			i += len(delimiter) - 1
		default:
			// Not an escape sequence we emit; keep it verbatim.
			b.WriteByte('\\')
			b.WriteByte(field[i])
		}
	}
	return b.String()
}
