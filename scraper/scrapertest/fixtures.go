// Package scrapertest builds saved search and detail pages shaped like the
// ones the scraper reads, for use in tests.
package scrapertest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Detail describes a repository detail page. Empty Language leaves out the
// language bar.
type Detail struct {
	Owner        string
	Name         string
	Language     string
	Watches      string
	Stars        string
	Forks        string
	Commits      string
	Branches     string
	Contributors string
	Issues       string
	Readme       string
}

// HTML renders the detail page.
func (d Detail) HTML() string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html><head><title>")
	b.WriteString(d.Owner + "/" + d.Name)
	b.WriteString("</title></head><body>\n")
	fmt.Fprintf(&b, "<h1><strong class=\"mr-2 flex-self-stretch\">\n  <a href=\"/%s/%s\">%s</a>\n</strong></h1>\n",
		d.Owner, d.Name, d.Name)
	b.WriteString("<ul class=\"pagehead-actions\">\n")
	fmt.Fprintf(&b, "<li><a class=\"social-count\" aria-label=\"%s users are watching this repository\">%s</a></li>\n", d.Watches, d.Watches)
	fmt.Fprintf(&b, "<li><a class=\"social-count js-social-count\" aria-label=\"%s users starred this repository\">%s</a></li>\n", d.Stars, d.Stars)
	fmt.Fprintf(&b, "<li><a class=\"social-count\" aria-label=\"%s users forked this repository\">%s</a></li>\n", d.Forks, d.Forks)
	b.WriteString("</ul>\n<nav><a href=\"/issues\">Issues <span class=\"Counter\">")
	b.WriteString(d.Issues)
	b.WriteString("</span></a></nav>\n<ul class=\"numbers-summary\">\n")
	fmt.Fprintf(&b, "<li class=\"commits\"><a href=\"/commits\"><span class=\"num text-emphasized\">\n %s\n</span>\n commits</a></li>\n", d.Commits)
	fmt.Fprintf(&b, "<li><a href=\"/branches\"><span class=\"num text-emphasized\">%s</span> branches</a></li>\n", d.Branches)
	b.WriteString("<li><a href=\"/packages\"><span class=\"num text-emphasized\">0</span> packages</a></li>\n")
	b.WriteString("<li><a href=\"/releases\"><span class=\"num text-emphasized\">3</span> releases</a></li>\n")
	fmt.Fprintf(&b, "<li><a href=\"/contributors\"><span class=\"num text-emphasized\">%s</span> contributors</a></li>\n", d.Contributors)
	b.WriteString("</ul>\n")
	if d.Language != "" {
		fmt.Fprintf(&b, "<div class=\"d-flex repository-lang-stats-graph\">\n<span>%s 97.1%%</span>\n<span>Shell 2.9%%</span>\n</div>\n", d.Language)
	}
	b.WriteString("<div id=\"readme\"><div class=\"Box-body\">")
	b.WriteString(d.Readme)
	b.WriteString("</div></div>\n<div class=\"Box-body\">footer</div>\n</body></html>\n")
	return b.String()
}

// SearchPage renders a search listing with one entry per "owner/name" label.
func SearchPage(labels ...string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html><body><ul class=\"repo-list\">\n")
	for _, label := range labels {
		b.WriteString("<li class=\"repo-list-item hx_hit-repo d-flex flex-justify-start py-4 public source\">\n")
		fmt.Fprintf(&b, "  <div class=\"mt-n1\"><a class=\"v-align-middle\" href=\"/%s\">%s</a></div>\n", label, label)
		b.WriteString("  <p class=\"mb-1\">description</p>\n</li>\n")
	}
	b.WriteString("</ul></body></html>\n")
	return b.String()
}

// WriteSearchPages writes one search page per element of pages as
// searchPage1.html, searchPage2.html, ... and returns their paths.
func WriteSearchPages(t testing.TB, dir string, pages ...[]string) []string {
	t.Helper()
	paths := make([]string, 0, len(pages))
	for i, labels := range pages {
		path := filepath.Join(dir, fmt.Sprintf("searchPage%d.html", i+1))
		require.NoError(t, os.WriteFile(path, []byte(SearchPage(labels...)), 0o644))
		paths = append(paths, path)
	}
	return paths
}

// WriteDetail writes d to dir/<owner>/<name>.html and returns the path.
func WriteDetail(t testing.TB, dir string, d Detail) string {
	t.Helper()
	ownerDir := filepath.Join(dir, d.Owner)
	require.NoError(t, os.MkdirAll(ownerDir, 0o755))
	path := filepath.Join(ownerDir, d.Name+".html")
	require.NoError(t, os.WriteFile(path, []byte(d.HTML()), 0o644))
	return path
}

// Sample returns a fully populated detail page.
func Sample(owner, name string) Detail {
	return Detail{
		Owner:        owner,
		Name:         name,
		Language:     "Go",
		Watches:      "5",
		Stars:        "10",
		Forks:        "2",
		Commits:      "8",
		Branches:     "1",
		Contributors: "3",
		Issues:       "1",
		Readme:       strings.Repeat("r", 50),
	}
}
