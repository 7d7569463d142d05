package scraper

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"repoanalysis/models"
)

// DetailParser turns a repository detail document into a record using a
// rule table.
type DetailParser struct {
	rules []Rule
}

// NewDetailParser returns a parser for rules. Nil rules means DefaultRules.
func NewDetailParser(rules []Rule) *DetailParser {
	if rules == nil {
		rules = DefaultRules
	}
	return &DetailParser{rules: rules}
}

// Parse extracts one record from a detail document.
func (p *DetailParser) Parse(r io.Reader, name string) (models.RepositoryRecord, error) {
	doc, err := parseReader(r, name)
	if err != nil {
		return models.RepositoryRecord{}, err
	}
	return p.apply(doc.Selection, name)
}

// ParseFile extracts one record from the detail document at path.
func (p *DetailParser) ParseFile(path string) (models.RepositoryRecord, error) {
	doc, err := parseFile(path)
	if err != nil {
		return models.RepositoryRecord{}, err
	}
	return p.apply(doc.Selection, path)
}

func (p *DetailParser) apply(doc *goquery.Selection, name string) (models.RepositoryRecord, error) {
	var rec models.RepositoryRecord
	for _, rule := range p.rules {
		if err := rule.apply(doc, &rec); err != nil {
			return models.RepositoryRecord{}, fmt.Errorf("%s: %w", name, err)
		}
	}
	return rec, nil
}

func (r Rule) apply(doc *goquery.Selection, rec *models.RepositoryRecord) error {
	raw, found, err := r.lookup(doc)
	if err != nil {
		return err
	}

	switch r.Column {
	case models.ColName:
		rec.Name = r.text(raw, found)
		return nil
	case models.ColLanguage:
		rec.Language = r.text(raw, found)
		return nil
	}

	var n int
	if found && r.Extract == ExtractRuneLength {
		n = utf8.RuneCountInString(raw)
	} else {
		if !found {
			raw = r.Default
		}
		n, err = r.count(r.token(raw))
		if err != nil {
			return fmt.Errorf("%s: %w", r.Column, err)
		}
	}

	if err := rec.SetInt(r.Column, n); err != nil {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, r.Column)
	}
	return nil
}

// lookup returns the raw text or attribute value of the rule's match.
// found is false only for an optional rule whose marker is absent.
func (r Rule) lookup(doc *goquery.Selection) (raw string, found bool, err error) {
	matches := doc.Find(r.Selector)
	if matches.Length() == 0 {
		if r.Optional {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%w: %s (%q)", ErrMissingMarker, r.Column, r.Selector)
	}
	if r.Index < 0 || r.Index >= matches.Length() {
		return "", false, fmt.Errorf("%w: %s wants %q[%d], page has %d",
			ErrIndexOutOfRange, r.Column, r.Selector, r.Index, matches.Length())
	}

	match := matches.Eq(r.Index)
	if r.Attr == "" {
		return match.Text(), true, nil
	}

	val, ok := match.Attr(r.Attr)
	if !ok {
		return "", false, fmt.Errorf("%w: %s (%q[%d] %s)", ErrMissingAttribute, r.Column, r.Selector, r.Index, r.Attr)
	}
	return val, true, nil
}

func (r Rule) text(raw string, found bool) string {
	if !found {
		return r.Default
	}
	if r.Extract == ExtractLanguage {
		return LanguageLabel(raw)
	}
	return r.token(raw)
}

func (r Rule) token(raw string) string {
	if r.Extract != ExtractFirstToken {
		return strings.TrimSpace(raw)
	}
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func (r Rule) count(s string) (int, error) {
	if r.Unbounded {
		return ParseContributors(s)
	}
	return ParseCount(s)
}
