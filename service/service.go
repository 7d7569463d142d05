package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"repoanalysis/analysis"
	"repoanalysis/chart"
	"repoanalysis/config"
	"repoanalysis/extractor"
	"repoanalysis/logger"
	"repoanalysis/models"
	"repoanalysis/report"
	"repoanalysis/table"
)

// TableStore abstracts the persisted repository table
// (for testability)
type TableStore interface {
	Write(ctx context.Context, records []models.RepositoryRecord) error
	Read(ctx context.Context) ([]models.RepositoryRecord, error)
}

// Analyzer abstracts the statistics stage
// (for testability)
type Analyzer interface {
	Summarize(ctx context.Context, records []models.RepositoryRecord) (*analysis.Result, error)
	Fit(ctx context.Context, res *analysis.Result) error
}

// Renderer abstracts the chart output
// (for testability)
type Renderer interface {
	Render(ctx context.Context, res *analysis.Result) error
}

// Service errors
var (
	ErrServiceInit = errors.New("service initialization error")
	ErrExtract     = errors.New("extraction failed")
	ErrAnalyze     = errors.New("analysis failed")
)

// Service runs the extraction and analysis pipeline
type Service struct {
	config    *config.Config
	extractor extractor.RecordExtractor
	store     TableStore
	analyzer  Analyzer
	renderer  Renderer
	out       io.Writer
}

// NewService wires the concrete pipeline stages from cfg
func NewService(cfg *config.Config) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceInit, err)
	}

	an, err := analysis.NewAnalyzer(cfg.ModelA, cfg.ModelB)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceInit, err)
	}

	logger.Debug("Service initialized",
		zap.String("data_path", cfg.DataPath),
		zap.String("table_path", cfg.TablePath))

	return New(cfg,
		extractor.New(cfg.DataPath),
		table.NewStore(cfg.TablePath),
		an,
		chart.NewRenderer(cfg.HeatmapPath, cfg.PairGridPath),
		os.Stdout), nil
}

// New builds a Service from explicit stages
func New(cfg *config.Config, ext extractor.RecordExtractor, store TableStore, an Analyzer, r Renderer, out io.Writer) *Service {
	return &Service{
		config:    cfg,
		extractor: ext,
		store:     store,
		analyzer:  an,
		renderer:  r,
		out:       out,
	}
}

// Extract scrapes the saved documents and writes the table
func (s *Service) Extract(ctx context.Context) error {
	paths := s.config.SearchPaths()
	logger.Info("Starting extraction",
		zap.String("data_path", s.config.DataPath),
		zap.Int("search_documents", len(paths)))

	records, err := extractor.ExtractAndStore(ctx, s.extractor, s.store, paths)
	if err != nil {
		logger.Error("Extraction failed", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrExtract, err)
	}

	logger.Info("Extraction completed",
		zap.String("table_path", s.config.TablePath),
		zap.Int("records", len(records)))
	return nil
}

// Analyze reloads the table, prints and charts its descriptive statistics,
// then fits, prints and saves the models. The descriptive output is
// written before any model is fitted.
func (s *Service) Analyze(ctx context.Context) error {
	records, err := s.store.Read(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to load table: %w", ErrAnalyze, err)
	}

	res, err := s.analyzer.Summarize(ctx, records)
	if err != nil {
		logger.Error("Analysis failed", zap.Error(err), zap.Int("records", len(records)))
		return fmt.Errorf("%w: %w", ErrAnalyze, err)
	}

	if err := report.WriteSummary(s.out, records, res); err != nil {
		return fmt.Errorf("%w: %w", ErrAnalyze, err)
	}

	if err := s.renderer.Render(ctx, res); err != nil {
		return fmt.Errorf("%w: failed to render charts: %w", ErrAnalyze, err)
	}

	fitErr := s.analyzer.Fit(ctx, res)
	if err := report.WriteModels(s.out, res.Models); err != nil {
		return fmt.Errorf("%w: %w", ErrAnalyze, err)
	}
	if fitErr != nil {
		logger.Error("Model fit failed", zap.Error(fitErr), zap.Int("fitted", len(res.Models)))
		return fmt.Errorf("%w: %w", ErrAnalyze, fitErr)
	}

	if len(res.Models) > 0 {
		if err := res.Models[0].Save(s.config.ResultPath); err != nil {
			return fmt.Errorf("%w: %w", ErrAnalyze, err)
		}
		logger.Info("Saved model result",
			zap.String("formula", res.Models[0].Formula.String()),
			zap.String("path", s.config.ResultPath))
	}

	return nil
}

// Run extracts then analyzes
func (s *Service) Run(ctx context.Context) error {
	if err := s.Extract(ctx); err != nil {
		return err
	}
	return s.Analyze(ctx)
}
