package analysis

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// CorrelationMatrix is the pairwise Pearson correlation of a frame's columns.
type CorrelationMatrix struct {
	Columns []string
	Values  *mat.SymDense
}

// Correlate computes the correlation of every pair of columns of f. A
// constant column correlates as NaN with everything, itself included.
func Correlate(f *Frame) (CorrelationMatrix, error) {
	cols := f.Columns()
	x, err := f.Matrix(cols)
	if err != nil {
		return CorrelationMatrix{}, err
	}

	var corr mat.SymDense
	stat.CorrelationMatrix(&corr, x, nil)

	// stat leaves exact ones on the diagonal even for constant columns
	for i, name := range cols {
		if stat.Variance(f.Column(name), nil) == 0 {
			for j := range cols {
				corr.SetSym(i, j, math.NaN())
			}
		}
	}
	return CorrelationMatrix{Columns: cols, Values: &corr}, nil
}

// At returns the correlation of the i-th and j-th column.
func (c CorrelationMatrix) At(i, j int) float64 {
	return c.Values.At(i, j)
}

// Get returns the correlation of two named columns.
func (c CorrelationMatrix) Get(a, b string) (float64, bool) {
	i, j := c.index(a), c.index(b)
	if i < 0 || j < 0 {
		return 0, false
	}
	return c.At(i, j), true
}

// Size is the number of columns.
func (c CorrelationMatrix) Size() int {
	return len(c.Columns)
}

func (c CorrelationMatrix) index(name string) int {
	for i, col := range c.Columns {
		if col == name {
			return i
		}
	}
	return -1
}
