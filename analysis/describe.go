package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ColumnSummary holds the descriptive statistics of one column.
type ColumnSummary struct {
	Column string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Q50    float64
	Q75    float64
	Max    float64
}

// Stat returns the statistics in display order, matching StatNames.
func (s ColumnSummary) Stat() []float64 {
	return []float64{float64(s.Count), s.Mean, s.Std, s.Min, s.Q25, s.Q50, s.Q75, s.Max}
}

// StatNames labels the values of ColumnSummary.Stat.
var StatNames = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

// Description is the per-column summary of a frame, in column order.
type Description []ColumnSummary

// Describe summarises every column of f. Std is the sample standard
// deviation; quartiles interpolate linearly between closest ranks.
func Describe(f *Frame) Description {
	desc := make(Description, 0, len(f.Columns()))
	for _, col := range f.Columns() {
		desc = append(desc, summarize(col, f.Column(col)))
	}
	return desc
}

func summarize(name string, vals []float64) ColumnSummary {
	s := ColumnSummary{Column: name, Count: len(vals)}
	if len(vals) == 0 {
		nan := math.NaN()
		s.Mean, s.Std, s.Min, s.Q25, s.Q50, s.Q75, s.Max = nan, nan, nan, nan, nan, nan, nan
		return s
	}

	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)

	s.Mean = stat.Mean(vals, nil)
	s.Std = math.NaN()
	if len(vals) > 1 {
		s.Std = stat.StdDev(vals, nil)
	}
	s.Min = floats.Min(vals)
	s.Max = floats.Max(vals)
	s.Q25 = quantile(sorted, 0.25)
	s.Q50 = quantile(sorted, 0.5)
	s.Q75 = quantile(sorted, 0.75)
	return s
}

// quantile uses the (n-1)p position rule. gonum's stat.Quantile only
// offers the empirical and the (np) interpolation variants.
func quantile(sorted []float64, p float64) float64 {
	h := float64(len(sorted)-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}
