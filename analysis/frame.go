package analysis

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"repoanalysis/models"
)

// Frame is a column-major numeric view of the repository table.
type Frame struct {
	names []string
	cols  map[string][]float64
	n     int
}

// NewFrame copies the given numeric columns out of records. Nil columns
// selects models.NumericColumns.
func NewFrame(records []models.RepositoryRecord, columns []string) (*Frame, error) {
	if columns == nil {
		columns = models.NumericColumns
	}

	f := &Frame{
		names: append([]string(nil), columns...),
		cols:  make(map[string][]float64, len(columns)),
		n:     len(records),
	}
	for _, col := range columns {
		if _, dup := f.cols[col]; dup {
			return nil, fmt.Errorf("%w: %s listed twice", ErrUnknownColumn, col)
		}
		vals := make([]float64, len(records))
		for i, rec := range records {
			v, ok := rec.Value(col)
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, col)
			}
			vals[i] = v
		}
		f.cols[col] = vals
	}
	return f, nil
}

// Columns returns the column names in order.
func (f *Frame) Columns() []string {
	return f.names
}

// Len is the number of rows.
func (f *Frame) Len() int {
	return f.n
}

// Column returns the values of name, or nil when the frame lacks it.
func (f *Frame) Column(name string) []float64 {
	return f.cols[name]
}

// Has reports whether the frame holds name.
func (f *Frame) Has(name string) bool {
	_, ok := f.cols[name]
	return ok
}

// Matrix returns the rows × columns matrix of the named columns.
func (f *Frame) Matrix(names []string) (*mat.Dense, error) {
	if f.n == 0 || len(names) == 0 {
		return nil, ErrEmptyTable
	}
	m := mat.NewDense(f.n, len(names), nil)
	for j, name := range names {
		col, ok := f.cols[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, name)
		}
		m.SetCol(j, col)
	}
	return m, nil
}
