package driven

import (
	"context"

	"github.com/custodia-labs/auditgrep/internal/core/domain"
)

// RunStore persists run-history records.
type RunStore interface {
	// Record stores one completed run.
	Record(ctx context.Context, run domain.RunRecord) error

	// Recent returns up to limit runs, newest first.
	Recent(ctx context.Context, limit int) ([]domain.RunRecord, error)

	// Close releases the underlying storage.
	Close() error
}
