package services

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/auditgrep/internal/core/domain"
	"github.com/custodia-labs/auditgrep/internal/core/ports/driven"
	"github.com/custodia-labs/auditgrep/internal/core/ports/driving"
	"github.com/custodia-labs/auditgrep/internal/logger"
)

// Ensure Scanner implements the interface.
var _ driving.Scanner = (*Scanner)(nil)

// maxLineSize bounds one scanned line. Lines beyond this are a
// malformed input and skip the rest of the file.
const maxLineSize = 1024 * 1024

// Scanner walks the audit directory and matches lines against a spec.
// Sources are processed strictly sequentially in directory-listing
// order; failures below the run level are logged and skipped, never
// propagated.
type Scanner struct {
	cache    driven.SnapshotCache
	archives driven.ArchiveReader
	reports  driven.ReportWriter
	runs     driven.RunStore
}

// NewScanner creates a scanner service. runs is optional - if nil,
// run-history recording is skipped.
func NewScanner(
	cache driven.SnapshotCache,
	archives driven.ArchiveReader,
	reports driven.ReportWriter,
	runs driven.RunStore,
) *Scanner {
	return &Scanner{
		cache:    cache,
		archives: archives,
		reports:  reports,
		runs:     runs,
	}
}

// Scan runs one search over every immediate child of the audit
// directory and writes the report.
func (s *Scanner) Scan(ctx context.Context, opts driving.ScanOptions) (*driving.ScanSummary, error) {
	started := time.Now()

	if opts.Spec.Mode() != domain.ModeRegex && len(opts.Spec.Terms()) == 0 {
		return nil, domain.ErrNoCriteria
	}

	info, err := os.Stat(opts.AuditDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", domain.ErrAuditDirMissing, opts.AuditDir)
	}

	entries, err := os.ReadDir(opts.AuditDir)
	if err != nil {
		return nil, fmt.Errorf("reading audit directory: %w", err)
	}

	var records []domain.ResultRecord
	sources, skipped := 0, 0

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		path := filepath.Join(opts.AuditDir, name)

		switch {
		case strings.HasSuffix(strings.ToLower(name), ".zip"):
			sources++
			hits, err := s.scanArchive(ctx, path, opts)
			if err != nil {
				logger.Warn("Skipping archive %s: %v", name, err)
				skipped++
				continue
			}
			records = append(records, hits...)
		case opts.Extensions.Match(name):
			sources++
			hits, err := s.scanDirect(path, opts.Spec)
			if err != nil {
				logger.Warn("Skipping file %s: %v", name, err)
				skipped++
				continue
			}
			records = append(records, hits...)
		}
	}

	reportPath, err := s.reports.Write(opts.ReportDir, opts.Spec, records)
	if err != nil {
		return nil, fmt.Errorf("writing report: %w", err)
	}

	summary := &driving.ScanSummary{
		RunID:      uuid.New().String(),
		Hits:       len(records),
		Sources:    sources,
		Skipped:    skipped,
		ReportPath: reportPath,
		Duration:   time.Since(started),
	}

	s.recordRun(ctx, started, opts.Spec, summary)

	return summary, nil
}

// scanDirect matches every line of one plain file.
func (s *Scanner) scanDirect(path string, spec domain.MatchSpec) ([]domain.ResultRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	base := filepath.Base(path)
	var hits []domain.ResultRecord
	err = scanLines(f, spec, func(lineNo int, line string) {
		hits = append(hits, domain.ResultRecord{
			Source:     domain.KindFile,
			SourceName: base,
			Line:       lineNo,
			Content:    line,
		})
	})
	if err != nil {
		return nil, err
	}
	return hits, nil
}

// scanArchive matches every line of every target entry in one archive.
// With a cache root it goes through the snapshot cache; without one it
// streams entries straight out of the archive.
func (s *Scanner) scanArchive(ctx context.Context, path string, opts driving.ScanOptions) ([]domain.ResultRecord, error) {
	if opts.CacheRoot != "" {
		return s.scanArchiveCached(ctx, path, opts)
	}
	return s.scanArchiveStreamed(path, opts)
}

func (s *Scanner) scanArchiveCached(ctx context.Context, path string, opts driving.ScanOptions) ([]domain.ResultRecord, error) {
	files, err := s.cache.Resolve(ctx, path, opts.CacheRoot, opts.Extensions)
	if err != nil {
		return nil, err
	}

	archiveName := filepath.Base(path)
	var hits []domain.ResultRecord

	for _, file := range files {
		f, err := os.Open(file)
		if err != nil {
			logger.Warn("Skipping snapshot file %s: %v", file, err)
			continue
		}

		inner := filepath.Base(file)
		err = scanLines(f, opts.Spec, func(lineNo int, line string) {
			hits = append(hits, domain.ResultRecord{
				Source:     domain.KindZip,
				SourceName: archiveName,
				InnerName:  inner,
				Line:       lineNo,
				Content:    line,
			})
		})
		f.Close()
		if err != nil {
			logger.Warn("Skipping snapshot file %s: %v", file, err)
		}
	}
	return hits, nil
}

func (s *Scanner) scanArchiveStreamed(path string, opts driving.ScanOptions) ([]domain.ResultRecord, error) {
	names, err := s.archives.ListTargets(path, opts.Extensions)
	if err != nil {
		return nil, err
	}

	archiveName := filepath.Base(path)
	var hits []domain.ResultRecord

	for _, name := range names {
		rc, err := s.archives.OpenEntry(path, name)
		if err != nil {
			logger.Warn("Skipping entry %s in %s: %v", name, archiveName, err)
			continue
		}

		// No-cache provenance keeps the original in-archive entry name.
		inner := name
		err = scanLines(rc, opts.Spec, func(lineNo int, line string) {
			hits = append(hits, domain.ResultRecord{
				Source:     domain.KindZip,
				SourceName: archiveName,
				InnerName:  inner,
				Line:       lineNo,
				Content:    line,
			})
		})
		rc.Close()
		if err != nil {
			logger.Warn("Skipping entry %s in %s: %v", name, archiveName, err)
		}
	}
	return hits, nil
}

// scanLines streams 1-indexed lines through the spec, trimming each
// line once before matching, and calls emit for every hit.
func scanLines(r io.Reader, spec domain.MatchSpec, emit func(lineNo int, line string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if spec.Matches(line) {
			emit(lineNo, line)
		}
	}
	return scanner.Err()
}

// recordRun stores the run in history. Best-effort: failures are
// logged, never fatal.
func (s *Scanner) recordRun(ctx context.Context, started time.Time, spec domain.MatchSpec, summary *driving.ScanSummary) {
	if s.runs == nil {
		return
	}

	criteria := spec.Pattern()
	if spec.Mode() != domain.ModeRegex {
		criteria = strings.Join(spec.Terms(), " ")
	}

	run := domain.RunRecord{
		ID:         summary.RunID,
		StartedAt:  started,
		Mode:       spec.Mode().String(),
		Criteria:   criteria,
		Hits:       summary.Hits,
		ReportPath: summary.ReportPath,
		Duration:   summary.Duration,
	}
	if err := s.runs.Record(ctx, run); err != nil {
		logger.Warn("Recording run history: %v", err)
	}
}
