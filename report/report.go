// Package report renders the repository table and the analysis results as
// fixed-width text for the terminal.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"repoanalysis/analysis"
	"repoanalysis/models"
)

const (
	nameWidth     = 32
	languageWidth = 16
	numberWidth   = 12
)

// IsColorEnabled reports whether headings should be coloured: stdout is a
// terminal and NO_COLOR is unset.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func heading(title string) string {
	c := color.New(color.FgCyan, color.Bold)
	if IsColorEnabled() {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(title) + "\n"
}

func rule(width int) string {
	return strings.Repeat("─", width) + "\n"
}

// RenderRecords renders the repository table, one row per record.
func RenderRecords(records []models.RepositoryRecord) string {
	if len(records) == 0 {
		return "No repositories found.\n"
	}

	var sb strings.Builder
	sb.WriteString(heading(fmt.Sprintf("Repositories (%d)", len(records))))

	sb.WriteString(fmt.Sprintf("%-5s %-*s %-*s", "", nameWidth, models.ColName, languageWidth, models.ColLanguage))
	for _, col := range models.NumericColumns {
		sb.WriteString(fmt.Sprintf(" %*s", numberWidth, col))
	}
	sb.WriteString("\n")
	width := 5 + 1 + nameWidth + 1 + languageWidth + len(models.NumericColumns)*(numberWidth+1)
	sb.WriteString(rule(width))

	for i, rec := range records {
		sb.WriteString(fmt.Sprintf("%-5d %-*s %-*s", i, nameWidth, truncate(rec.Name, nameWidth), languageWidth, truncate(rec.Language, languageWidth)))
		for _, v := range rec.Ints() {
			sb.WriteString(fmt.Sprintf(" %*d", numberWidth, v))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderDescription renders the statistics as rows and the columns as
// columns.
func RenderDescription(desc analysis.Description) string {
	if len(desc) == 0 {
		return "No columns to describe.\n"
	}

	var sb strings.Builder
	sb.WriteString(heading("Description"))
	writeColumnHeader(&sb, columnNames(desc))

	for i, stat := range analysis.StatNames {
		sb.WriteString(fmt.Sprintf("%-*s", numberWidth, stat))
		for _, s := range desc {
			sb.WriteString(fmt.Sprintf(" %s", formatFloat(s.Stat()[i])))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderCorrelation renders the correlation matrix as a square table.
func RenderCorrelation(corr analysis.CorrelationMatrix) string {
	if corr.Size() == 0 {
		return "No correlations.\n"
	}

	var sb strings.Builder
	sb.WriteString(heading("Correlation"))
	writeColumnHeader(&sb, corr.Columns)

	for i, name := range corr.Columns {
		sb.WriteString(fmt.Sprintf("%-*s", numberWidth, truncate(name, numberWidth)))
		for j := range corr.Columns {
			sb.WriteString(fmt.Sprintf(" %s", formatFloat(corr.At(i, j))))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderModel renders the summary of one fitted model under a heading.
func RenderModel(fit *analysis.OLSResult) string {
	return heading(fmt.Sprintf("Model: %s", fit.Formula)) + fit.Summary() + "\n"
}

// Write renders the records and every part of res to w.
func Write(w io.Writer, records []models.RepositoryRecord, res *analysis.Result) error {
	if err := WriteSummary(w, records, res); err != nil {
		return err
	}
	return WriteModels(w, res.Models)
}

// WriteSummary renders the records, the description and the correlation
// matrix to w.
func WriteSummary(w io.Writer, records []models.RepositoryRecord, res *analysis.Result) error {
	return writeSections(w,
		RenderRecords(records),
		RenderDescription(res.Description),
		RenderCorrelation(res.Correlation))
}

// WriteModels renders one summary per fitted model to w.
func WriteModels(w io.Writer, fits []*analysis.OLSResult) error {
	sections := make([]string, 0, len(fits))
	for _, fit := range fits {
		sections = append(sections, RenderModel(fit))
	}
	return writeSections(w, sections...)
}

func writeSections(w io.Writer, sections ...string) error {
	for _, s := range sections {
		if _, err := fmt.Fprintln(w, s); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return nil
}

func writeColumnHeader(sb *strings.Builder, names []string) {
	sb.WriteString(fmt.Sprintf("%-*s", numberWidth, ""))
	for _, name := range names {
		sb.WriteString(fmt.Sprintf(" %*s", numberWidth, truncate(name, numberWidth)))
	}
	sb.WriteString("\n")
	sb.WriteString(rule(numberWidth + len(names)*(numberWidth+1)))
}

func columnNames(desc analysis.Description) []string {
	names := make([]string, len(desc))
	for i, s := range desc {
		names[i] = s.Column
	}
	return names
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%*.4f", numberWidth, v)
}

// truncate shortens s to at most max runes, marking the cut with "...".
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
