package scraper

import (
	"repoanalysis/models"
)

// Positions inside marker lists that hold more than one metric. The detail
// page shows watch, star and fork counters in that order, and the summary
// bar lists commits, branches, packages, releases and contributors as
// emphasized text.
const (
	SocialWatchIndex = 0
	SocialStarIndex  = 1
	SocialForkIndex  = 2

	EmphasizedBranchIndex      = 1
	EmphasizedContributorIndex = 4

	IssueCounterIndex = 0
)

// Extract selects how the raw marker text becomes a column value.
type Extract int

const (
	// ExtractFirstToken keeps the first whitespace separated token.
	ExtractFirstToken Extract = iota
	// ExtractTrimmed keeps the whole text without surrounding space.
	ExtractTrimmed
	// ExtractLanguage applies LanguageLabel.
	ExtractLanguage
	// ExtractRuneLength stores the character count of the raw text.
	ExtractRuneLength
)

// Rule maps one column of models.RepositoryRecord to a lookup in a detail
// document. Changing a marker on the site means changing one Rule.
type Rule struct {
	Column   string
	Selector string
	// Index picks the n-th match of Selector.
	Index int
	// Attr, when set, reads the value from that attribute instead of the text.
	Attr    string
	Extract Extract
	// Optional rules fall back to Default when Selector matches nothing.
	Optional bool
	Default  string
	// Unbounded maps models.UnboundedGlyph to models.UnboundedContributors.
	Unbounded bool
}

// SearchRule locates repository entries in a search-result document.
type SearchRule struct {
	Entry  string
	Anchor string
}

// DefaultSearchRule matches the saved search listing.
var DefaultSearchRule = SearchRule{
	Entry:  ".repo-list-item.hx_hit-repo.d-flex.flex-justify-start.py-4.public.source",
	Anchor: "a",
}

// DefaultRules covers every column of the table.
var DefaultRules = []Rule{
	{Column: models.ColName, Selector: ".mr-2.flex-self-stretch", Extract: ExtractTrimmed},
	{Column: models.ColLanguage, Selector: ".d-flex.repository-lang-stats-graph", Extract: ExtractLanguage,
		Optional: true, Default: models.LanguageNone},
	{Column: models.ColStars, Selector: ".social-count", Index: SocialStarIndex, Attr: "aria-label"},
	{Column: models.ColWatches, Selector: ".social-count", Index: SocialWatchIndex, Attr: "aria-label"},
	{Column: models.ColForks, Selector: ".social-count", Index: SocialForkIndex, Attr: "aria-label"},
	{Column: models.ColCommits, Selector: ".commits"},
	{Column: models.ColBranches, Selector: ".text-emphasized", Index: EmphasizedBranchIndex},
	{Column: models.ColContributors, Selector: ".text-emphasized", Index: EmphasizedContributorIndex,
		Unbounded: true},
	{Column: models.ColIssues, Selector: ".Counter", Index: IssueCounterIndex, Extract: ExtractTrimmed},
	{Column: models.ColReadme, Selector: "div.Box-body", Extract: ExtractRuneLength},
}
