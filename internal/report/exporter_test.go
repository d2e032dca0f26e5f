package report

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miyakoshi-dev/gh-profile-stats/internal/domain"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testReport() *domain.Report {
	lang := "Go"
	return &domain.Report{
		Username: "octocat",
		ProfileInfo: domain.ProfileInfo{
			Name:        "The Octocat",
			Bio:         domain.AbsentPlaceholder,
			PublicRepos: 3,
			Followers:   100,
			Following:   9,
			CreatedAt:   time.Date(2011, 1, 25, 18, 44, 36, 0, time.UTC),
		},
		LanguageStats: []domain.LanguageCount{
			{Language: "Go", Count: 3},
			{Language: "Rust", Count: 2},
			{Language: "Python", Count: 2},
		},
		MostStarred: []domain.Repository{
			{Name: "alpha", Language: &lang, Stars: 42, Forks: 7, URL: "https://github.com/octocat/alpha"},
		},
		StarSummary: domain.StarSummary{Mean: 15.5, Median: 10, Max: 42},
		GeneratedAt: time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC),
	}
}

func TestExporter_Export(t *testing.T) {
	t.Run("writes indented JSON named by username and timestamp", func(t *testing.T) {
		dir := t.TempDir()
		exporter := NewExporter(dir, testLogger())

		path, err := exporter.Export(testReport(), "json")

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "github_report_octocat_20240601_123000.json"), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "\n  \"username\"")
	})

	t.Run("round trip reproduces the report", func(t *testing.T) {
		dir := t.TempDir()
		exporter := NewExporter(dir, testLogger())
		original := testReport()

		path, err := exporter.Export(original, "json")
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var parsed domain.Report
		require.NoError(t, json.Unmarshal(data, &parsed))

		assert.Equal(t, original.Username, parsed.Username)
		assert.Equal(t, original.ProfileInfo.Name, parsed.ProfileInfo.Name)
		assert.Equal(t, original.ProfileInfo.Bio, parsed.ProfileInfo.Bio)
		assert.Equal(t, original.ProfileInfo.PublicRepos, parsed.ProfileInfo.PublicRepos)
		assert.True(t, original.ProfileInfo.CreatedAt.Equal(parsed.ProfileInfo.CreatedAt))
		// Language entries must come back in descending-count order.
		assert.Equal(t, original.LanguageStats, parsed.LanguageStats)
		assert.Equal(t, original.MostStarred, parsed.MostStarred)
		assert.Equal(t, original.StarSummary, parsed.StarSummary)
		assert.True(t, original.GeneratedAt.Equal(parsed.GeneratedAt))
	})

	t.Run("unsupported format writes nothing", func(t *testing.T) {
		dir := t.TempDir()
		exporter := NewExporter(dir, testLogger())

		path, err := exporter.Export(testReport(), "csv")

		assert.NoError(t, err)
		assert.Empty(t, path)
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
