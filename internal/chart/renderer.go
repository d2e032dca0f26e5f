// Package chart renders the analysis charts as PNG images.
package chart

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	charts "github.com/vicanso/go-charts/v2"

	"github.com/miyakoshi-dev/gh-profile-stats/internal/domain"
)

const (
	chartWidth  = 800
	chartHeight = 600
)

// Renderer draws chart images into a configured output directory.
type Renderer struct {
	dir    string
	logger *logrus.Entry
}

// NewRenderer creates a Renderer that writes into dir.
func NewRenderer(dir string, logger *logrus.Logger) *Renderer {
	return &Renderer{
		dir:    dir,
		logger: logger.WithField("component", "renderer"),
	}
}

// Languages draws a pie chart of the language distribution, one slice per
// language with percentage labels. An empty distribution writes no file.
func (r *Renderer) Languages(username string, dist []domain.LanguageCount) error {
	if len(dist) == 0 {
		r.logger.Debug("No language data, skipping pie chart.")
		return nil
	}

	labels := make([]string, 0, len(dist))
	values := make([]float64, 0, len(dist))
	for _, lc := range dist {
		labels = append(labels, lc.Language)
		values = append(values, float64(lc.Count))
	}

	p, err := charts.PieRender(
		values,
		charts.TitleOptionFunc(charts.TitleOption{
			Text: fmt.Sprintf("Language Distribution for %s", username),
			Left: charts.PositionCenter,
		}),
		charts.PaddingOptionFunc(charts.Box{Top: 20, Right: 20, Bottom: 20, Left: 20}),
		charts.LegendOptionFunc(charts.LegendOption{
			Orient: charts.OrientVertical,
			Data:   labels,
			Left:   charts.PositionLeft,
		}),
		charts.PieSeriesShowLabel(),
		charts.WidthOptionFunc(chartWidth),
		charts.HeightOptionFunc(chartHeight),
	)
	if err != nil {
		return fmt.Errorf("failed to render language chart: %w", err)
	}

	path := filepath.Join(r.dir, fmt.Sprintf("github_languages_%s.png", username))
	if err := r.write(p, path); err != nil {
		return err
	}
	r.logger.Infof("Language visualization saved as %s", path)
	return nil
}

// Stars draws a horizontal bar chart of the top-starred repositories, with
// the highest star count at the top. An empty list writes no file.
func (r *Renderer) Stars(username string, repos []domain.Repository) error {
	if len(repos) == 0 {
		r.logger.Debug("No repository data, skipping bar chart.")
		return nil
	}

	// The y axis is drawn bottom-up, so feed the repositories in ascending
	// star order to put the highest count on top.
	names := make([]string, len(repos))
	values := make([]float64, len(repos))
	for i, repo := range repos {
		j := len(repos) - 1 - i
		names[j] = repo.Name
		values[j] = float64(repo.Stars)
	}

	p, err := charts.HorizontalBarRender(
		[][]float64{values},
		charts.TitleTextOptionFunc(fmt.Sprintf("Most Starred Repositories for %s", username)),
		charts.PaddingOptionFunc(charts.Box{Top: 20, Right: 40, Bottom: 20, Left: 20}),
		charts.YAxisDataOptionFunc(names),
		charts.WidthOptionFunc(chartWidth),
		charts.HeightOptionFunc(chartHeight),
	)
	if err != nil {
		return fmt.Errorf("failed to render star chart: %w", err)
	}

	path := filepath.Join(r.dir, fmt.Sprintf("github_stars_%s.png", username))
	if err := r.write(p, path); err != nil {
		return err
	}
	r.logger.Infof("Stars visualization saved as %s", path)
	return nil
}

func (r *Renderer) write(p *charts.Painter, path string) error {
	buf, err := p.Bytes()
	if err != nil {
		return fmt.Errorf("failed to encode chart: %w", err)
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("failed to write chart file: %w", err)
	}
	return nil
}
