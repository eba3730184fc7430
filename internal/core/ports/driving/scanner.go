package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/auditgrep/internal/core/domain"
)

// ScanOptions configures one search run.
type ScanOptions struct {
	// AuditDir is the directory whose immediate children are scanned.
	AuditDir string

	// CacheRoot is where archive snapshots live. Empty disables the
	// cache: archive entries are decoded in-stream instead.
	CacheRoot string

	// ReportDir is where the report file is written. Empty means the
	// current directory.
	ReportDir string

	// Extensions selects which entries and direct files are scanned.
	Extensions domain.Extensions

	// Spec is the match specification, constructed once per run.
	Spec domain.MatchSpec
}

// ScanSummary describes a completed run.
type ScanSummary struct {
	// RunID is the UUID assigned to the run.
	RunID string

	// Hits is the number of matched lines.
	Hits int

	// Sources is the number of sources scanned.
	Sources int

	// Skipped is the number of sources skipped due to errors.
	Skipped int

	// ReportPath is the written report file.
	ReportPath string

	// Duration is the wall-clock time of the run.
	Duration time.Duration
}

// Scanner runs searches over the audit directory.
type Scanner interface {
	// Scan walks every immediate child of the audit directory, matches
	// its lines against the spec, writes the report, and returns the
	// summary. Individual source and entry failures are logged and
	// skipped; only invalid invocations (missing directory, no
	// criteria) fail the run.
	Scan(ctx context.Context, opts ScanOptions) (*ScanSummary, error)
}
