package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// InterceptName labels the constant term of a fitted model.
const InterceptName = "Intercept"

// Coefficient is one fitted parameter with its inference statistics.
type Coefficient struct {
	Name     string
	Estimate float64
	StdErr   float64
	T        float64
	P        float64
	CILower  float64
	CIUpper  float64
}

// OLSResult is an ordinary least squares fit.
type OLSResult struct {
	Formula       Formula
	NObs          int
	DFModel       int
	DFResid       int
	Coefficients  []Coefficient
	RSquared      float64
	AdjRSquared   float64
	FStatistic    float64
	FPValue       float64
	LogLikelihood float64
	AIC           float64
	BIC           float64
	CondNo        float64
}

// FitOLS regresses formula's response on its predictors plus an intercept.
// The least squares solution comes from the Moore-Penrose pseudo-inverse
// of the design, so rank-deficient designs and tables with fewer rows than
// parameters still fit. Statistics that are undefined for such a fit are
// NaN or infinite.
func FitOLS(frame *Frame, formula Formula) (*OLSResult, error) {
	if err := formula.Validate(frame); err != nil {
		return nil, err
	}

	n, k := frame.Len(), len(formula.Predictors)
	p := k + 1
	if n == 0 {
		return nil, fmt.Errorf("%w: no rows for %q", ErrInsufficientData, formula)
	}

	x := mat.NewDense(n, p, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1)
	}
	for j, name := range formula.Predictors {
		x.SetCol(j+1, frame.Column(name))
	}
	yVals := frame.Column(formula.Response)
	y := mat.NewVecDense(n, append([]float64(nil), yVals...))

	pinv, rank, condNo, err := pseudoInverse(x)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrSingularDesign, formula, err)
	}

	var beta mat.VecDense
	beta.MulVec(pinv, y)
	// (XᵀX)⁺ = X⁺ X⁺ᵀ
	var normCov mat.Dense
	normCov.Mul(pinv, pinv.T())

	var fitted mat.VecDense
	fitted.MulVec(x, &beta)
	resid := make([]float64, n)
	floats.SubTo(resid, yVals, fitted.RawVector().Data)

	ssr := floats.Dot(resid, resid)
	mean := stat.Mean(yVals, nil)
	var sst float64
	for _, v := range yVals {
		sst += (v - mean) * (v - mean)
	}

	dfModel := float64(rank - 1)
	dfResid := float64(n - rank)
	res := &OLSResult{
		Formula:  formula,
		NObs:     n,
		DFModel:  rank - 1,
		DFResid:  n - rank,
		RSquared: 1 - ssr/sst,
		CondNo:   condNo,
	}
	res.AdjRSquared = 1 - (1-res.RSquared)*float64(n-1)/dfResid
	res.FStatistic, res.FPValue = math.NaN(), math.NaN()
	if dfModel > 0 {
		ess := math.Max(sst-ssr, 0)
		res.FStatistic = (ess / dfModel) / (ssr / dfResid)
		if dfResid > 0 {
			res.FPValue = upperTail(distuv.F{D1: dfModel, D2: dfResid}, res.FStatistic)
		}
	}

	nf := float64(n)
	res.LogLikelihood = -nf / 2 * (math.Log(2*math.Pi) + math.Log(ssr/nf) + 1)
	res.AIC = -2*res.LogLikelihood + 2*float64(rank)
	res.BIC = -2*res.LogLikelihood + float64(rank)*math.Log(nf)

	sigma2 := ssr / dfResid
	var t distuv.StudentsT
	crit := math.NaN()
	if dfResid > 0 {
		t = distuv.StudentsT{Mu: 0, Sigma: 1, Nu: dfResid}
		crit = t.Quantile(0.975)
	}
	names := append([]string{InterceptName}, formula.Predictors...)
	for j, name := range names {
		est := beta.AtVec(j)
		se := math.Sqrt(sigma2 * normCov.At(j, j))
		tv := est / se
		pv := math.NaN()
		if dfResid > 0 {
			pv = 2 * upperTail(t, math.Abs(tv))
		}
		res.Coefficients = append(res.Coefficients, Coefficient{
			Name:     name,
			Estimate: est,
			StdErr:   se,
			T:        tv,
			P:        pv,
			CILower:  est - crit*se,
			CIUpper:  est + crit*se,
		})
	}

	return res, nil
}

// pseudoInverse returns X⁺ from the thin SVD of x together with the
// numerical rank of x and its 2-norm condition number. Singular values at
// or below max(n, p)·eps·σmax count as zero.
func pseudoInverse(x *mat.Dense) (*mat.Dense, int, float64, error) {
	n, p := x.Dims()

	var svd mat.SVD
	if ok := svd.Factorize(x, mat.SVDThin); !ok {
		return nil, 0, 0, errors.New("singular value decomposition failed")
	}
	sv := svd.Values(nil)
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	tol := sv[0] * float64(max(n, p)) * epsilon
	scaled := mat.NewDense(p, len(sv), nil)
	rank := 0
	for j, s := range sv {
		if s <= tol {
			continue
		}
		rank++
		for i := 0; i < p; i++ {
			scaled.Set(i, j, v.At(i, j)/s)
		}
	}

	var pinv mat.Dense
	pinv.Mul(scaled, u.T())

	condNo := math.Inf(1)
	if len(sv) == p && sv[p-1] > 0 {
		condNo = sv[0] / sv[p-1]
	}
	return &pinv, rank, condNo, nil
}

// epsilon is the float64 machine epsilon.
const epsilon = 2.220446049250313e-16

type survivor interface {
	Survival(x float64) float64
}

// upperTail is P(X > x), with NaN for an undefined statistic.
func upperTail(d survivor, x float64) float64 {
	switch {
	case math.IsNaN(x):
		return math.NaN()
	case math.IsInf(x, 1):
		return 0
	}
	return d.Survival(x)
}

// Coefficient returns the fitted parameter called name.
func (r *OLSResult) Coefficient(name string) (Coefficient, bool) {
	for _, c := range r.Coefficients {
		if c.Name == name {
			return c, true
		}
	}
	return Coefficient{}, false
}

// Save writes the result as JSON to path. Non-finite statistics, such as
// those of an exact fit, are written as null.
func (r *OLSResult) Save(path string) error {
	coefs := make([]map[string]any, 0, len(r.Coefficients))
	for _, c := range r.Coefficients {
		coefs = append(coefs, map[string]any{
			"name":     c.Name,
			"coef":     finite(c.Estimate),
			"std_err":  finite(c.StdErr),
			"t":        finite(c.T),
			"p":        finite(c.P),
			"ci_lower": finite(c.CILower),
			"ci_upper": finite(c.CIUpper),
		})
	}
	doc := map[string]any{
		"formula":        r.Formula.String(),
		"nobs":           r.NObs,
		"df_model":       r.DFModel,
		"df_resid":       r.DFResid,
		"r_squared":      finite(r.RSquared),
		"adj_r_squared":  finite(r.AdjRSquared),
		"f_statistic":    finite(r.FStatistic),
		"f_pvalue":       finite(r.FPValue),
		"log_likelihood": finite(r.LogLikelihood),
		"aic":            finite(r.AIC),
		"bic":            finite(r.BIC),
		"cond_no":        finite(r.CondNo),
		"coefficients":   coefs,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}
	return nil
}

func finite(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}
