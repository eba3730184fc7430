package domain

import (
	"fmt"
	"time"
)

// SourceKind labels where a matched line came from.
type SourceKind string

const (
	// KindFile marks a hit in a direct file under the audit directory.
	KindFile SourceKind = "FILE"

	// KindZip marks a hit inside a zip archive entry.
	KindZip SourceKind = "ZIP"
)

// ResultRecord is one reported line hit with its provenance. Records
// are immutable once created; report order follows discovery order
// (source enumeration order, then in-file line order), never sorted.
type ResultRecord struct {
	// Source is the kind of source the hit came from.
	Source SourceKind

	// SourceName is the base name of the file or archive.
	SourceName string

	// InnerName identifies the entry inside an archive. Empty for
	// direct files. In cached mode this is the extracted file's base
	// name; in no-cache mode it is the original in-archive entry name.
	InnerName string

	// Line is the 1-indexed line number within the scanned file.
	Line int

	// Content is the trimmed line content.
	Content string
}

// Format renders the record as one report line.
func (r ResultRecord) Format() string {
	if r.Source == KindZip {
		return fmt.Sprintf("%s: %s, FILE: %s, Line: %d, Content: %s",
			r.Source, r.SourceName, r.InnerName, r.Line, r.Content)
	}
	return fmt.Sprintf("%s: %s, Line: %d, Content: %s",
		r.Source, r.SourceName, r.Line, r.Content)
}

// RunRecord summarises one completed search run for the history store.
type RunRecord struct {
	// ID is a UUID assigned when the run starts.
	ID string

	// StartedAt is when scanning began.
	StartedAt time.Time

	// Mode is the match mode that was active.
	Mode string

	// Criteria is the joined terms or the regex pattern.
	Criteria string

	// Hits is the number of matched lines.
	Hits int

	// ReportPath is where the report file was written.
	ReportPath string

	// Duration is the wall-clock time of the run.
	Duration time.Duration
}
