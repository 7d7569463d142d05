package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repoanalysis/config"
	"repoanalysis/scraper/scrapertest"
	"repoanalysis/service"
	"repoanalysis/table"
)

func TestRootCommand(t *testing.T) {
	root := NewRootCmd()
	assert.Equal(t, "repoanalysis", root.Use)
	assert.NotEmpty(t, root.Short)
	assert.NotEmpty(t, root.Long)

	found := map[string]bool{}
	for _, cmd := range root.Commands() {
		found[cmd.Use] = true
	}
	for _, name := range []string{"extract", "analyze", "run"} {
		assert.True(t, found[name], "expected command %q to be registered", name)
	}

	for _, name := range []string{"config", "data-dir", "output", "log-level"} {
		flag := root.PersistentFlags().Lookup(name)
		if assert.NotNil(t, flag, "expected --%s flag", name) {
			assert.NotEmpty(t, flag.Usage)
		}
	}
}

func TestExtractCommand(t *testing.T) {
	work := t.TempDir()
	chdir(t, work)

	pages := filepath.Join(work, "pages")
	require.NoError(t, os.MkdirAll(pages, 0o755))
	scrapertest.WriteSearchPages(t, pages, []string{"alice/alpha"}, []string{"bob/beta"})
	scrapertest.WriteDetail(t, pages, scrapertest.Sample("alice", "alpha"))
	scrapertest.WriteDetail(t, pages, scrapertest.Sample("bob", "beta"))

	// search_last limits the run to the two pages written above
	t.Setenv(config.EnvPrefix+"_SEARCH_LAST", "2")

	out := filepath.Join(work, "repos.csv")
	root := NewRootCmd()
	root.SetArgs([]string{"extract", "--data-dir", pages, "--output", out, "--log-level", "error"})
	require.NoError(t, root.Execute())

	rows, err := table.ReadFile(out)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "alpha", rows[0].Name)
	assert.Equal(t, 10, rows[1].Stars)
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		env     map[string]string
		wantErr error
	}{
		{
			name:    "analyze without a table",
			args:    []string{"analyze", "--output", "missing.csv"},
			wantErr: service.ErrAnalyze,
		},
		{
			name:    "extract without pages",
			args:    []string{"extract", "--data-dir", "nowhere"},
			wantErr: service.ErrExtract,
		},
		{
			name:    "invalid search range",
			args:    []string{"run"},
			env:     map[string]string{config.EnvPrefix + "_SEARCH_FIRST": "0"},
			wantErr: config.ErrInvalidConfig,
		},
		{
			name: "missing config file",
			args: []string{"run", "--config", "absent.yaml"},
		},
		{
			name: "bad log level",
			args: []string{"run", "--log-level", "loud"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t, t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			root := NewRootCmd()
			root.SetArgs(tt.args)
			err := root.Execute()
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

// chdir changes the working directory for the duration of the test,
// matching testing.T.Chdir which the local toolchain lacks.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
