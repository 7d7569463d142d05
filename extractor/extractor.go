package extractor

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"repoanalysis/logger"
	"repoanalysis/models"
	"repoanalysis/scraper"
)

// RecordExtractor builds the repository table from search-result documents
type RecordExtractor interface {
	Extract(ctx context.Context, searchPaths []string) ([]models.RepositoryRecord, error)
}

// TableWriter persists the extracted table
type TableWriter interface {
	Write(ctx context.Context, records []models.RepositoryRecord) error
}

// Extractor reads saved search and detail documents from DataDir.
type Extractor struct {
	DataDir    string
	SearchRule scraper.SearchRule
	parser     *scraper.DetailParser
}

// New returns an Extractor using the default search and detail rules.
func New(dataDir string) *Extractor {
	return NewWithRules(dataDir, scraper.DefaultSearchRule, scraper.DefaultRules)
}

// NewWithRules returns an Extractor using the given lookup rules.
func NewWithRules(dataDir string, search scraper.SearchRule, rules []scraper.Rule) *Extractor {
	return &Extractor{
		DataDir:    dataDir,
		SearchRule: search,
		parser:     scraper.NewDetailParser(rules),
	}
}

// Extract returns one record per repository found in the search documents,
// in discovery order. The first failure aborts the whole extraction.
func (e *Extractor) Extract(ctx context.Context, searchPaths []string) ([]models.RepositoryRecord, error) {
	doc, err := scraper.LoadSearchDocuments(searchPaths)
	if err != nil {
		return nil, fmt.Errorf("failed to load search documents: %w", err)
	}

	refs, err := scraper.EnumerateRepos(doc, e.SearchRule)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate repositories: %w", err)
	}

	log := logger.WithContext(zap.String("data_dir", e.DataDir))
	log.Info("Enumerated repositories",
		zap.Int("documents", len(searchPaths)),
		zap.Int("repositories", len(refs)))

	records := make([]models.RepositoryRecord, 0, len(refs))
	for _, ref := range refs {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("extraction cancelled: %w", ctx.Err())
		}

		rec, err := e.parser.ParseFile(ref.DetailPath(e.DataDir))
		if err != nil {
			return nil, fmt.Errorf("failed to extract %s: %w", ref, err)
		}

		log.Debug("Extracted repository",
			zap.String("repo", ref.String()),
			zap.String("language", rec.Language),
			zap.Int("stars", rec.Stars))
		records = append(records, rec)
	}

	return records, nil
}

// ExtractAndStore extracts the table and writes it in one piece.
func ExtractAndStore(ctx context.Context, ext RecordExtractor, store TableWriter, searchPaths []string) ([]models.RepositoryRecord, error) {
	records, err := ext.Extract(ctx, searchPaths)
	if err != nil {
		return nil, err
	}

	if err := store.Write(ctx, records); err != nil {
		return nil, fmt.Errorf("failed to store table: %w", err)
	}

	logger.Info("Table stored successfully", zap.Int("records", len(records)))
	return records, nil
}
