package table

import (
	"errors"
	"fmt"
)

// ErrRagged indicates rows with differing column counts.
var ErrRagged = errors.New("ragged table")

// Table is an immutable row-major numeric matrix.
type Table struct {
	data [][]float64
	cols int
}

// New builds a table from rows. All rows must have the same width.
func New(rows [][]float64) (*Table, error) {
	t := &Table{data: make([][]float64, len(rows))}
	for i, row := range rows {
		if i == 0 {
			t.cols = len(row)
		} else if len(row) != t.cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrRagged, i, len(row), t.cols)
		}
		t.data[i] = append([]float64(nil), row...)
	}
	return t, nil
}

// FromColumns builds a table from equal-length columns.
func FromColumns(cols ...[]float64) (*Table, error) {
	if len(cols) == 0 {
		return &Table{}, nil
	}
	n := len(cols[0])
	rows := make([][]float64, n)
	for c, col := range cols {
		if len(col) != n {
			return nil, fmt.Errorf("%w: column %d has %d rows, want %d", ErrRagged, c, len(col), n)
		}
	}
	for r := range rows {
		row := make([]float64, len(cols))
		for c, col := range cols {
			row[c] = col[r]
		}
		rows[r] = row
	}
	return &Table{data: rows, cols: len(cols)}, nil
}

// MustFromColumns is FromColumns for literals known to be rectangular.
func MustFromColumns(cols ...[]float64) *Table {
	t, err := FromColumns(cols...)
	if err != nil {
		panic(err)
	}
	return t
}

// Rows reports the number of rows.
func (t *Table) Rows() int {
	if t == nil {
		return 0
	}
	return len(t.data)
}

// Cols reports the number of columns.
func (t *Table) Cols() int {
	if t == nil {
		return 0
	}
	return t.cols
}

// Row returns a copy of row i.
func (t *Table) Row(i int) []float64 {
	return append([]float64(nil), t.data[i]...)
}

// Column returns a copy of column j. A table without that column yields nil.
func (t *Table) Column(j int) []float64 {
	if t == nil || j < 0 || j >= t.cols {
		return nil
	}
	out := make([]float64, len(t.data))
	for i, row := range t.data {
		out[i] = row[j]
	}
	return out
}
