package driven

import "github.com/custodia-labs/auditgrep/internal/core/domain"

// ReportWriter renders one run's accumulated hits to a new report file.
type ReportWriter interface {
	// Write creates a timestamped report file in dir containing a
	// single header line describing the search mode followed by one
	// formatted line per record, in the order given. It returns the
	// path of the written file.
	Write(dir string, spec domain.MatchSpec, records []domain.ResultRecord) (string, error)
}
