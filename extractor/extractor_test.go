package extractor

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"repoanalysis/models"
	"repoanalysis/scraper"
	"repoanalysis/scraper/scrapertest"
	"repoanalysis/table"
)

// MockExtractor is a mock implementation of RecordExtractor
type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(ctx context.Context, searchPaths []string) ([]models.RepositoryRecord, error) {
	args := m.Called(ctx, searchPaths)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RepositoryRecord), args.Error(1)
}

// MockWriter is a mock implementation of TableWriter
type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) Write(ctx context.Context, records []models.RepositoryRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func sampleRecord(name string) models.RepositoryRecord {
	return models.RepositoryRecord{
		Name:         name,
		Language:     "Go",
		Stars:        10,
		Watches:      5,
		Forks:        2,
		Commits:      8,
		Branches:     1,
		Contributors: 3,
		Issues:       1,
		Readme:       50,
	}
}

func TestExtractTwoPages(t *testing.T) {
	dir := t.TempDir()
	paths := scrapertest.WriteSearchPages(t, dir, []string{"alice/alpha"}, []string{"bob/beta"})
	scrapertest.WriteDetail(t, dir, scrapertest.Sample("alice", "alpha"))
	scrapertest.WriteDetail(t, dir, scrapertest.Sample("bob", "beta"))

	records, err := New(dir).Extract(context.Background(), paths)
	require.NoError(t, err)
	assert.Equal(t, []models.RepositoryRecord{sampleRecord("alpha"), sampleRecord("beta")}, records)
}

func TestExtractErrors(t *testing.T) {
	testCases := []struct {
		name          string
		setup         func(t *testing.T, dir string) []string
		ctx           func() context.Context
		expectedError error
	}{
		{
			name: "missing detail document",
			setup: func(t *testing.T, dir string) []string {
				return scrapertest.WriteSearchPages(t, dir, []string{"alice/alpha"})
			},
		},
		{
			name: "no search documents",
			setup: func(t *testing.T, dir string) []string {
				return nil
			},
			expectedError: scraper.ErrNoDocuments,
		},
		{
			name: "page without entries",
			setup: func(t *testing.T, dir string) []string {
				return scrapertest.WriteSearchPages(t, dir, []string{})
			},
			expectedError: scraper.ErrMissingMarker,
		},
		{
			name: "empty issue counter",
			setup: func(t *testing.T, dir string) []string {
				d := scrapertest.Sample("alice", "alpha")
				d.Issues = ""
				scrapertest.WriteDetail(t, dir, d)
				return scrapertest.WriteSearchPages(t, dir, []string{"alice/alpha"})
			},
			expectedError: scraper.ErrMalformedNumber,
		},
		{
			name: "cancelled context",
			setup: func(t *testing.T, dir string) []string {
				scrapertest.WriteDetail(t, dir, scrapertest.Sample("alice", "alpha"))
				return scrapertest.WriteSearchPages(t, dir, []string{"alice/alpha"})
			},
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			},
			expectedError: context.Canceled,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			paths := tc.setup(t, dir)
			ctx := context.Background()
			if tc.ctx != nil {
				ctx = tc.ctx()
			}

			records, err := New(dir).Extract(ctx, paths)
			assert.Error(t, err)
			assert.Nil(t, records)
			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
			}
		})
	}
}

func TestExtractAndStore(t *testing.T) {
	storeErr := errors.New("disk full")
	extractErr := errors.New("bad page")
	records := []models.RepositoryRecord{sampleRecord("alpha")}
	paths := []string{"searchPage1.html"}

	testCases := []struct {
		name          string
		setupMocks    func(*MockExtractor, *MockWriter)
		expectedError error
	}{
		{
			name: "successful extraction",
			setupMocks: func(e *MockExtractor, w *MockWriter) {
				e.On("Extract", mock.Anything, paths).Return(records, nil)
				w.On("Write", mock.Anything, records).Return(nil)
			},
		},
		{
			name: "extraction fails",
			setupMocks: func(e *MockExtractor, w *MockWriter) {
				e.On("Extract", mock.Anything, paths).Return(nil, extractErr)
			},
			expectedError: extractErr,
		},
		{
			name: "store fails",
			setupMocks: func(e *MockExtractor, w *MockWriter) {
				e.On("Extract", mock.Anything, paths).Return(records, nil)
				w.On("Write", mock.Anything, records).Return(storeErr)
			},
			expectedError: storeErr,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := new(MockExtractor)
			w := new(MockWriter)
			tc.setupMocks(e, w)

			got, err := ExtractAndStore(context.Background(), e, w, paths)
			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, records, got)
			}

			e.AssertExpectations(t)
			w.AssertExpectations(t)
		})
	}
}

func TestExtractAndStoreWritesTable(t *testing.T) {
	dir := t.TempDir()
	paths := scrapertest.WriteSearchPages(t, dir, []string{"alice/alpha"}, []string{"bob/beta"})
	scrapertest.WriteDetail(t, dir, scrapertest.Sample("alice", "alpha"))
	scrapertest.WriteDetail(t, dir, scrapertest.Sample("bob", "beta"))

	tablePath := filepath.Join(dir, "project_info.csv")
	_, err := ExtractAndStore(context.Background(), New(dir), table.NewStore(tablePath), paths)
	require.NoError(t, err)

	got, err := table.ReadFile(tablePath)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "alpha", got[0].Name)
	assert.Equal(t, "beta", got[1].Name)
}
