package table

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"
)

// Loader loads a numeric table from a path.
type Loader interface {
	Load(path string) (*Table, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(path string) (*Table, error)

// Load calls f(path).
func (f LoaderFunc) Load(path string) (*Table, error) { return f(path) }

// TextLoader reads whitespace- or comma-delimited numeric text files.
type TextLoader struct {
	// SkipRows drops this many leading lines unconditionally.
	SkipRows int
	// SkipHeader drops leading non-numeric lines after SkipRows, such as a
	// column-name row.
	SkipHeader bool
	// Columns, when positive, requires exactly this many columns.
	Columns int
}

// Load opens path and parses it.
func (l TextLoader) Load(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer file.Close()

	t, err := l.Read(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Read parses a table from r. Blank lines and lines starting with '#' are
// ignored.
func (l TextLoader) Read(r io.Reader) (*Table, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var rows [][]float64
	lineNo := 0
	inHeader := l.SkipHeader
	for scanner.Scan() {
		lineNo++
		if lineNo <= l.SkipRows {
			continue
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := splitFields(line)
		if inHeader {
			if !numeric(fields[0]) {
				continue
			}
			inHeader = false
		}
		row := make([]float64, len(fields))
		for i, field := range fields {
			value, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column %d: %w", lineNo, i+1, err)
			}
			row[i] = value
		}
		if l.Columns > 0 && len(row) != l.Columns {
			return nil, fmt.Errorf("%w: line %d has %d columns, want %d", ErrRagged, lineNo, len(row), l.Columns)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}
	return New(rows)
}

func splitFields(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

func numeric(field string) bool {
	_, err := strconv.ParseFloat(field, 64)
	return err == nil
}
