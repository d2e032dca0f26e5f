// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/miyakoshi-dev/gh-profile-stats/internal/domain"
	"github.com/miyakoshi-dev/gh-profile-stats/internal/gateway"
)

// ReportExporter writes a report to a file in the requested format.
type ReportExporter interface {
	Export(report *domain.Report, format string) (string, error)
}

// ChartRenderer draws the chart images for one analysis run.
type ChartRenderer interface {
	Languages(username string, dist []domain.LanguageCount) error
	Stars(username string, repos []domain.Repository) error
}

// Analyzer is the use case driving one full analysis run.
// It orchestrates fetching, aggregation, export and rendering.
type Analyzer struct {
	fetcher  gateway.Fetcher
	exporter ReportExporter
	renderer ChartRenderer
	out      io.Writer
	logger   *logrus.Entry
}

// NewAnalyzer creates a new Analyzer instance. The summary sections are
// printed to out.
func NewAnalyzer(fetcher gateway.Fetcher, exporter ReportExporter, renderer ChartRenderer, out io.Writer, logger *logrus.Logger) *Analyzer {
	return &Analyzer{
		fetcher:  fetcher,
		exporter: exporter,
		renderer: renderer,
		out:      out,
		logger:   logger.WithField("component", "analyzer"),
	}
}

// LanguageDistribution counts how many repositories report each primary
// language. The result is sorted descending by count; languages with equal
// counts keep the order in which they first appeared in repos.
func LanguageDistribution(repos []domain.Repository) []domain.LanguageCount {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, r := range repos {
		if r.Language == nil {
			continue
		}
		if _, seen := counts[*r.Language]; !seen {
			order = append(order, *r.Language)
		}
		counts[*r.Language]++
	}

	dist := make([]domain.LanguageCount, 0, len(order))
	for _, lang := range order {
		dist = append(dist, domain.LanguageCount{Language: lang, Count: counts[lang]})
	}
	sort.SliceStable(dist, func(i, j int) bool {
		return dist[i].Count > dist[j].Count
	})
	return dist
}

// TopByStars returns the n repositories with the highest star count,
// descending. Ties keep their original fetch order. If fewer than n
// repositories exist, all of them are returned.
func TopByStars(repos []domain.Repository, n int) []domain.Repository {
	sorted := make([]domain.Repository, len(repos))
	copy(sorted, repos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Stars > sorted[j].Stars
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// SummarizeStars computes mean, median and max over the star counts of all
// repositories. An empty list yields the zero summary.
func SummarizeStars(repos []domain.Repository) domain.StarSummary {
	if len(repos) == 0 {
		return domain.StarSummary{}
	}
	counts := make([]float64, 0, len(repos))
	for _, r := range repos {
		counts = append(counts, float64(r.Stars))
	}
	// The stats functions only error on empty input, which is excluded above.
	mean, _ := stats.Mean(counts)
	median, _ := stats.Median(counts)
	max, _ := stats.Max(counts)
	return domain.StarSummary{Mean: mean, Median: median, Max: max}
}

// BuildReport combines the profile with the aggregates into one report.
// It fails when either input was never fetched. A fetched-but-empty
// repository list (non-nil, zero length) is valid input.
func BuildReport(username string, profile *domain.Profile, repos []domain.Repository, topN int, now time.Time) (*domain.Report, error) {
	if profile == nil {
		return nil, errors.New("cannot build report: user profile was never fetched")
	}
	if repos == nil {
		return nil, errors.New("cannot build report: repositories were never fetched")
	}
	return &domain.Report{
		Username: username,
		ProfileInfo: domain.ProfileInfo{
			Name:        domain.StringOrNA(profile.Name),
			Bio:         domain.StringOrNA(profile.Bio),
			PublicRepos: profile.PublicRepos,
			Followers:   profile.Followers,
			Following:   profile.Following,
			CreatedAt:   profile.CreatedAt,
		},
		LanguageStats: LanguageDistribution(repos),
		MostStarred:   TopByStars(repos, topN),
		StarSummary:   SummarizeStars(repos),
		GeneratedAt:   now,
	}, nil
}

// Run executes the full pipeline for one user: fetch, aggregate, summarize,
// export and render. The first fetch or build error aborts the run; a failed
// pinned-repository fetch only degrades to a warning since it is not
// pipeline input.
func (a *Analyzer) Run(ctx context.Context, username string, topN int) error {
	fmt.Fprintf(a.out, "Analyzing GitHub profile for %s...\n", username)
	a.logger.Debug("Starting analysis pipeline...")

	profile, err := a.fetcher.FetchUser(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to fetch user data: %w", err)
	}
	repos, err := a.fetcher.FetchRepositories(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to fetch repositories: %w", err)
	}
	pinned, err := a.fetcher.FetchPinnedRepositories(ctx, username)
	if err != nil {
		a.logger.Warnf("Failed to fetch pinned repositories: %v", err)
		pinned = nil
	}

	report, err := BuildReport(username, profile, repos, topN, time.Now())
	if err != nil {
		return err
	}
	report.Pinned = pinned

	a.printSummary(report)

	if _, err := a.exporter.Export(report, "json"); err != nil {
		return fmt.Errorf("failed to export report: %w", err)
	}

	// The two charts are independent of each other.
	var eg errgroup.Group
	eg.Go(func() error {
		return a.renderer.Languages(username, report.LanguageStats)
	})
	eg.Go(func() error {
		return a.renderer.Stars(username, report.MostStarred)
	})
	if err := eg.Wait(); err != nil {
		return fmt.Errorf("failed to render charts: %w", err)
	}

	a.logger.Debug("Analysis pipeline complete.")
	return nil
}

func (a *Analyzer) printSummary(report *domain.Report) {
	fmt.Fprintln(a.out, "\n=== Profile Summary ===")
	fmt.Fprintf(a.out, "Name: %s\n", report.ProfileInfo.Name)
	fmt.Fprintf(a.out, "Bio: %s\n", report.ProfileInfo.Bio)
	fmt.Fprintf(a.out, "Public Repos: %d\n", report.ProfileInfo.PublicRepos)
	fmt.Fprintf(a.out, "Followers: %d\n", report.ProfileInfo.Followers)
	fmt.Fprintf(a.out, "Following: %d\n", report.ProfileInfo.Following)
	fmt.Fprintf(a.out, "Account Created: %s\n", report.ProfileInfo.CreatedAt.Format(time.RFC3339))

	fmt.Fprintln(a.out, "\n=== Top Languages ===")
	for _, lc := range report.LanguageStats {
		fmt.Fprintf(a.out, "%s: %d repos\n", lc.Language, lc.Count)
	}

	fmt.Fprintln(a.out, "\n=== Most Starred Repositories ===")
	for _, r := range report.MostStarred {
		fmt.Fprintf(a.out, "%s: %d stars\n", r.Name, r.Stars)
	}

	if len(report.Pinned) > 0 {
		fmt.Fprintln(a.out, "\n=== Pinned Repositories ===")
		for _, p := range report.Pinned {
			fmt.Fprintf(a.out, "%s: %d stars\n", p.Name, p.Stars)
		}
	}
}
