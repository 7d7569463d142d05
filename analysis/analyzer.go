// Package analysis computes descriptive statistics, correlations and
// ordinary least squares fits over the repository table.
package analysis

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"repoanalysis/logger"
	"repoanalysis/models"
)

// Result is everything the analyzer derives from one table.
type Result struct {
	Frame       *Frame
	Description Description
	Correlation CorrelationMatrix
	Models      []*OLSResult
}

// Analyzer fits a fixed list of models.
type Analyzer struct {
	Formulas []Formula
}

// NewAnalyzer parses the model formulas.
func NewAnalyzer(formulas ...string) (*Analyzer, error) {
	if len(formulas) == 0 {
		return nil, ErrNoModels
	}
	a := &Analyzer{}
	for _, s := range formulas {
		f, err := ParseFormula(s)
		if err != nil {
			return nil, err
		}
		a.Formulas = append(a.Formulas, f)
	}
	return a, nil
}

// Analyze describes the numeric columns of records, correlates them and
// fits every model.
func (a *Analyzer) Analyze(ctx context.Context, records []models.RepositoryRecord) (*Result, error) {
	res, err := a.Summarize(ctx, records)
	if err != nil {
		return nil, err
	}
	if err := a.Fit(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Summarize builds the frame, its description and its correlation matrix.
// Models are left empty.
func (a *Analyzer) Summarize(ctx context.Context, records []models.RepositoryRecord) (*Result, error) {
	if len(records) == 0 {
		return nil, ErrEmptyTable
	}
	if ctx.Err() != nil {
		return nil, fmt.Errorf("analysis cancelled: %w", ctx.Err())
	}

	frame, err := NewFrame(records, nil)
	if err != nil {
		return nil, err
	}

	corr, err := Correlate(frame)
	if err != nil {
		return nil, fmt.Errorf("failed to correlate columns: %w", err)
	}

	desc := Describe(frame)
	for _, col := range desc {
		if col.Min == col.Max {
			logger.Warn("Constant column has no defined correlation", zap.String("column", col.Column))
		}
	}

	return &Result{
		Frame:       frame,
		Description: desc,
		Correlation: corr,
	}, nil
}

// Fit fits every model over res.Frame and appends the results to
// res.Models. Models fitted before a failure stay in res.
func (a *Analyzer) Fit(ctx context.Context, res *Result) error {
	for _, f := range a.Formulas {
		if ctx.Err() != nil {
			return fmt.Errorf("analysis cancelled: %w", ctx.Err())
		}

		fit, err := FitOLS(res.Frame, f)
		if err != nil {
			return fmt.Errorf("failed to fit %q: %w", f, err)
		}
		logger.Info("Fitted model",
			zap.String("formula", f.String()),
			zap.Int("observations", fit.NObs),
			zap.Float64("r_squared", fit.RSquared))
		res.Models = append(res.Models, fit)
	}
	return nil
}
