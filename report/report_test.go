package report

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repoanalysis/analysis"
	"repoanalysis/models"
)

func records() []models.RepositoryRecord {
	var out []models.RepositoryRecord
	for i := 1; i <= 5; i++ {
		out = append(out, models.RepositoryRecord{
			Name:         "owner/repo",
			Language:     "Go",
			Stars:        10*i + i%2,
			Watches:      i,
			Forks:        3*i + i%3,
			Commits:      20 * i,
			Branches:     i % 2,
			Contributors: i + 1,
			Issues:       i % 3,
			Readme:       40 + i*i,
		})
	}
	return out
}

func TestRenderRecords(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	out := RenderRecords(records())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3+5)
	assert.Equal(t, "Repositories (5)", lines[0])
	for _, col := range models.Columns {
		assert.Contains(t, lines[1], col)
	}
	assert.True(t, strings.HasPrefix(lines[3], "0     owner/repo"))

	assert.Equal(t, "No repositories found.\n", RenderRecords(nil))
}

func TestRenderRecordsTruncatesName(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	long := strings.Repeat("x", 40)
	out := RenderRecords([]models.RepositoryRecord{{Name: long, Language: "Go"}})
	assert.NotContains(t, out, long)
	assert.Contains(t, out, strings.Repeat("x", nameWidth-3)+"...")
}

func TestRenderDescriptionAndCorrelation(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	frame, err := analysis.NewFrame(records(), []string{models.ColStars, models.ColWatches})
	require.NoError(t, err)
	corr, err := analysis.Correlate(frame)
	require.NoError(t, err)

	desc := RenderDescription(analysis.Describe(frame))
	assert.True(t, strings.HasPrefix(desc, "Description\n"))
	for _, name := range analysis.StatNames {
		assert.Contains(t, desc, name)
	}
	assert.Contains(t, desc, "5.0000")

	c := RenderCorrelation(corr)
	assert.True(t, strings.HasPrefix(c, "Correlation\n"))
	assert.Contains(t, c, "1.0000")

	assert.Equal(t, "No columns to describe.\n", RenderDescription(nil))
	assert.Equal(t, "No correlations.\n", RenderCorrelation(analysis.CorrelationMatrix{}))
}

func TestWrite(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	a, err := analysis.NewAnalyzer("stars ~ forks + watches")
	require.NoError(t, err)
	res, err := a.Analyze(context.Background(), records())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, records(), res))

	out := buf.String()
	assert.Contains(t, out, "Repositories (5)")
	assert.Contains(t, out, "Description")
	assert.Contains(t, out, "Correlation")
	assert.Contains(t, out, "Model: stars ~ forks + watches")
	assert.Contains(t, out, "R-squared")
}

func TestIsColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, IsColorEnabled())
	assert.Equal(t, "title\n", heading("title"))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"truncated", 6, "tru..."},
		{"abc", 2, "ab"},
		{"ünïcödé", 5, "ün..."},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, truncate(tt.in, tt.max))
		})
	}
}
