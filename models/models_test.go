package models

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordValue(t *testing.T) {
	rec := RepositoryRecord{
		Name: "linux", Language: "C", Stars: 10, Watches: 5, Forks: 2, Commits: 8,
		Branches: 1, Contributors: UnboundedContributors, Issues: 1, Readme: 50,
	}

	got := make([]float64, 0, len(NumericColumns))
	for _, col := range NumericColumns {
		v, ok := rec.Value(col)
		require.True(t, ok, col)
		got = append(got, v)
	}
	assert.Equal(t, []float64{10, 5, 2, 8, 1, 15600, 1, 50}, got)

	for i, v := range rec.Ints() {
		assert.Equal(t, got[i], float64(v))
	}

	_, ok := rec.Value(ColName)
	assert.False(t, ok)
	_, ok = rec.Value("size")
	assert.False(t, ok)
}

func TestRecordSetInt(t *testing.T) {
	var rec RepositoryRecord
	require.NoError(t, rec.SetInt(ColIssues, 5000))
	assert.Equal(t, 5000, rec.Issues)
	assert.Error(t, rec.SetInt(ColLanguage, 1))
}

func TestRepoRef(t *testing.T) {
	ref := RepoRef{Owner: "torvalds", Name: "linux"}
	assert.Equal(t, "torvalds/linux", ref.String())
	assert.Equal(t, filepath.Join("data", "torvalds", "linux.html"), ref.DetailPath("data"))
}

func TestColumnsContainNumericColumnsInOrder(t *testing.T) {
	assert.Equal(t, Columns[2:], NumericColumns)
}
