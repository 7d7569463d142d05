// Package models defines the core data structures used throughout the application.
package models

import (
	"fmt"
	"path/filepath"
)

const (
	// LanguageNone is recorded when a detail page has no language bar.
	LanguageNone = "None"
	// UnboundedGlyph is shown instead of a number for very large contributor counts.
	UnboundedGlyph = "∞"
	// UnboundedContributors replaces UnboundedGlyph in the contributors column.
	UnboundedContributors = 15600
)

// Column names, in table order.
const (
	ColName         = "name"
	ColLanguage     = "language"
	ColStars        = "stars"
	ColWatches      = "watches"
	ColForks        = "forks"
	ColCommits      = "commits"
	ColBranches     = "branches"
	ColContributors = "contributors"
	ColIssues       = "issues"
	ColReadme       = "readme"
)

// Columns is the header of the persisted table.
var Columns = []string{
	ColName, ColLanguage, ColStars, ColWatches, ColForks,
	ColCommits, ColBranches, ColContributors, ColIssues, ColReadme,
}

// NumericColumns are the integer columns of Columns, in the same order.
var NumericColumns = []string{
	ColStars, ColWatches, ColForks, ColCommits,
	ColBranches, ColContributors, ColIssues, ColReadme,
}

// RepositoryRecord is one row of the scraped table
type RepositoryRecord struct {
	Name         string `json:"name"`
	Language     string `json:"language"`
	Stars        int    `json:"stars"`
	Watches      int    `json:"watches"`
	Forks        int    `json:"forks"`
	Commits      int    `json:"commits"`
	Branches     int    `json:"branches"`
	Contributors int    `json:"contributors"`
	Issues       int    `json:"issues"`
	Readme       int    `json:"readme"`
}

// Value returns the numeric column as a float64. ok is false for
// non-numeric or unknown columns.
func (r RepositoryRecord) Value(column string) (v float64, ok bool) {
	p := r.intField(column)
	if p == nil {
		return 0, false
	}
	return float64(*p), true
}

// SetInt assigns an integer column by name.
func (r *RepositoryRecord) SetInt(column string, v int) error {
	p := r.intField(column)
	if p == nil {
		return fmt.Errorf("%q is not an integer column", column)
	}
	*p = v
	return nil
}

// Ints returns the numeric columns in NumericColumns order.
func (r RepositoryRecord) Ints() []int {
	return []int{r.Stars, r.Watches, r.Forks, r.Commits, r.Branches, r.Contributors, r.Issues, r.Readme}
}

func (r *RepositoryRecord) intField(column string) *int {
	switch column {
	case ColStars:
		return &r.Stars
	case ColWatches:
		return &r.Watches
	case ColForks:
		return &r.Forks
	case ColCommits:
		return &r.Commits
	case ColBranches:
		return &r.Branches
	case ColContributors:
		return &r.Contributors
	case ColIssues:
		return &r.Issues
	case ColReadme:
		return &r.Readme
	}
	return nil
}

// RepoRef identifies a repository listed in a search-result document
type RepoRef struct {
	Owner string
	Name  string
}

// String returns owner/name.
func (r RepoRef) String() string {
	return r.Owner + "/" + r.Name
}

// DetailPath is the location of the saved detail document under dataDir.
func (r RepoRef) DetailPath(dataDir string) string {
	return filepath.Join(dataDir, r.Owner, r.Name+".html")
}
