package analysis

import (
	"fmt"
	"strings"
)

const summaryWidth = 78

// Summary renders the fit as a plain text regression table.
func (r *OLSResult) Summary() string {
	var b strings.Builder
	rule := func(ch string) {
		b.WriteString(strings.Repeat(ch, summaryWidth))
		b.WriteString("\n")
	}
	row := func(lk, lv, rk, rv string) {
		fmt.Fprintf(&b, "%-20s%19s   %-20s%16s\n", lk, lv, rk, rv)
	}

	title := "OLS Regression Results"
	fmt.Fprintf(&b, "%*s\n", (summaryWidth+len(title))/2, title)
	rule("=")
	row("Dep. Variable:", r.Formula.Response, "R-squared:", fmtStat(r.RSquared))
	row("Model:", "OLS", "Adj. R-squared:", fmtStat(r.AdjRSquared))
	row("Method:", "Least Squares", "F-statistic:", fmtStat(r.FStatistic))
	row("No. Observations:", fmt.Sprint(r.NObs), "Prob (F-statistic):", fmtStat(r.FPValue))
	row("Df Residuals:", fmt.Sprint(r.DFResid), "Log-Likelihood:", fmtStat(r.LogLikelihood))
	row("Df Model:", fmt.Sprint(r.DFModel), "AIC:", fmtStat(r.AIC))
	row("Covariance Type:", "nonrobust", "BIC:", fmtStat(r.BIC))
	rule("=")

	fmt.Fprintf(&b, "%-14s%10s%11s%11s%11s%11s%10s\n", "", "coef", "std err", "t", "P>|t|", "[0.025", "0.975]")
	rule("-")
	for _, c := range r.Coefficients {
		fmt.Fprintf(&b, "%-14s%10s%11s%11s%11s%11s%10s\n",
			truncate(c.Name, 14), fmtStat(c.Estimate), fmtStat(c.StdErr), fmtStat(c.T),
			fmtStat(c.P), fmtStat(c.CILower), fmtStat(c.CIUpper))
	}
	rule("=")
	fmt.Fprintf(&b, "%-20s%19s\n", "Cond. No.", fmtStat(r.CondNo))
	rule("=")
	return b.String()
}

// fmtStat prints four significant digits, switching to exponent form for
// very large or small magnitudes.
func fmtStat(v float64) string {
	return fmt.Sprintf("%.4g", v)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "~"
}
