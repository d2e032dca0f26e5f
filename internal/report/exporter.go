// Package report serializes analysis reports to disk.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/miyakoshi-dev/gh-profile-stats/internal/domain"
)

// Exporter writes reports into a configured output directory.
type Exporter struct {
	dir    string
	logger *logrus.Entry
}

// NewExporter creates an Exporter that writes into dir.
func NewExporter(dir string, logger *logrus.Logger) *Exporter {
	return &Exporter{
		dir:    dir,
		logger: logger.WithField("component", "exporter"),
	}
}

// Export writes the report as indented JSON and returns the path it was
// written to. Any format other than "json" logs a notice and writes nothing;
// that is not an error. The filename carries the username and the report's
// generation timestamp.
func (e *Exporter) Export(r *domain.Report, format string) (string, error) {
	if format != "json" {
		e.logger.Warn("Only JSON export is currently supported.")
		return "", nil
	}

	name := fmt.Sprintf("github_report_%s_%s.json", r.Username, r.GeneratedAt.Format("20060102_150405"))
	path := filepath.Join(e.dir, name)

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}

	e.logger.Infof("Report exported as %s", path)
	return path, nil
}
