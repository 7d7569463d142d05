package chart

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot/plotter"
)

const (
	kdePoints = 100
	// kdeCut extends the curve this many bandwidths past the data.
	kdeCut = 3
)

// scottBandwidth is the Gaussian kernel width of Scott's rule for one
// dimension. Degenerate samples fall back to a unit width.
func scottBandwidth(xs []float64) float64 {
	if len(xs) < 2 {
		return 1
	}
	h := stat.StdDev(xs, nil) * math.Pow(float64(len(xs)), -0.2)
	if h == 0 || math.IsNaN(h) {
		return 1
	}
	return h
}

// kde evaluates a Gaussian kernel density estimate of xs on an evenly
// spaced grid.
func kde(xs []float64) plotter.XYs {
	if len(xs) == 0 {
		return nil
	}

	h := scottBandwidth(xs)
	lo := floats.Min(xs) - kdeCut*h
	hi := floats.Max(xs) + kdeCut*h
	step := (hi - lo) / (kdePoints - 1)

	kernels := make([]distuv.Normal, len(xs))
	for i, x := range xs {
		kernels[i] = distuv.Normal{Mu: x, Sigma: h}
	}

	pts := make(plotter.XYs, kdePoints)
	for i := range pts {
		x := lo + float64(i)*step
		var density float64
		for _, k := range kernels {
			density += k.Prob(x)
		}
		pts[i].X = x
		pts[i].Y = density / float64(len(xs))
	}
	return pts
}
