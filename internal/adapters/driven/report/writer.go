// Package report implements the ReportWriter port as plain-text files,
// one newly created file per run, named with the run's timestamp.
package report

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/custodia-labs/auditgrep/internal/core/domain"
	"github.com/custodia-labs/auditgrep/internal/core/ports/driven"
)

// Ensure Writer implements the interface.
var _ driven.ReportWriter = (*Writer)(nil)

// Writer renders search reports into a per-run directory.
type Writer struct {
	now func() time.Time
}

// NewWriter creates a report writer.
func NewWriter() *Writer {
	return &Writer{now: time.Now}
}

// Write renders the header line and one line per record to a fresh
// timestamped file in dir and returns its path. The directory is
// created if absent; empty means the current directory.
func (w *Writer) Write(dir string, spec domain.MatchSpec, records []domain.ResultRecord) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}

	var b strings.Builder
	b.WriteString(spec.Describe())
	b.WriteString("\n")
	for _, r := range records {
		b.WriteString(r.Format())
		b.WriteString("\n")
	}

	stamp := w.now().Format("20060102_150405")
	for attempt := 0; ; attempt++ {
		name := fmt.Sprintf("search_results_%s.txt", stamp)
		if attempt > 0 {
			name = fmt.Sprintf("search_results_%s_%d.txt", stamp, attempt+1)
		}
		path := filepath.Join(dir, name)

		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
		if errors.Is(err, fs.ErrExist) {
			// Two runs inside one second; pick the next free name.
			continue
		}
		if err != nil {
			return "", fmt.Errorf("creating report file: %w", err)
		}

		if _, err := f.WriteString(b.String()); err != nil {
			f.Close()
			return "", fmt.Errorf("writing report: %w", err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("closing report: %w", err)
		}
		return path, nil
	}
}
