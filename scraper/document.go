package scraper

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"repoanalysis/logger"
	"repoanalysis/models"
)

func parseFile(path string) (*goquery.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return parseReader(f, path)
}

func parseReader(r io.Reader, name string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return doc, nil
}

// LoadSearchDocuments parses every search-result document and joins them
// into a single selection so entries are enumerated across pages in order.
func LoadSearchDocuments(paths []string) (*goquery.Selection, error) {
	if len(paths) == 0 {
		return nil, ErrNoDocuments
	}

	var combined *goquery.Selection
	for _, path := range paths {
		doc, err := parseFile(path)
		if err != nil {
			return nil, err
		}
		logger.Debug("Loaded search document", zap.String("path", path))

		if combined == nil {
			combined = doc.Selection
			continue
		}
		combined = combined.AddSelection(doc.Selection)
	}
	return combined, nil
}

// EnumerateRepos lists the repositories of the combined search documents in
// discovery order. A repository listed twice is kept once.
func EnumerateRepos(doc *goquery.Selection, rule SearchRule) ([]models.RepoRef, error) {
	entries := doc.Find(rule.Entry)
	if entries.Length() == 0 {
		return nil, fmt.Errorf("%w: search entry %q", ErrMissingMarker, rule.Entry)
	}

	refs := make([]models.RepoRef, 0, entries.Length())
	seen := make(map[models.RepoRef]bool, entries.Length())
	var err error
	entries.EachWithBreak(func(i int, entry *goquery.Selection) bool {
		anchor := entry.Find(rule.Anchor).First()
		if anchor.Length() == 0 {
			err = fmt.Errorf("%w: anchor %q in search entry %d", ErrMissingMarker, rule.Anchor, i)
			return false
		}

		var ref models.RepoRef
		ref, err = splitLabel(anchor.Text())
		if err != nil {
			err = fmt.Errorf("search entry %d: %w", i, err)
			return false
		}

		if seen[ref] {
			logger.Debug("Skipping repeated search entry", zap.String("repo", ref.String()))
			return true
		}
		seen[ref] = true
		refs = append(refs, ref)
		return true
	})
	if err != nil {
		return nil, err
	}

	return refs, nil
}

func splitLabel(label string) (models.RepoRef, error) {
	parts := strings.Split(label, "/")
	if len(parts) != 2 {
		return models.RepoRef{}, fmt.Errorf("%w: %q", ErrMalformedLabel, strings.TrimSpace(label))
	}

	ref := models.RepoRef{
		Owner: strings.TrimSpace(parts[0]),
		Name:  strings.TrimSpace(parts[1]),
	}
	if ref.Owner == "" || ref.Name == "" {
		return models.RepoRef{}, fmt.Errorf("%w: %q", ErrMalformedLabel, strings.TrimSpace(label))
	}
	return ref, nil
}
