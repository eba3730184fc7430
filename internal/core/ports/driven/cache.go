package driven

import (
	"context"

	"github.com/custodia-labs/auditgrep/internal/core/domain"
)

// SnapshotCache maps an archive to a directory of previously extracted
// target-extension entries, keyed by the archive's fingerprint.
//
// The cache root is an explicit argument on every call rather than
// adapter state, so multiple roots can coexist within one process (and
// in tests).
type SnapshotCache interface {
	// Resolve returns the paths of the snapshot files for the archive,
	// rebuilding the snapshot first if its recorded fingerprint does
	// not exactly match the live one (or the record is missing or
	// unparseable). A valid snapshot costs no I/O beyond the directory
	// listing. Returned paths are in directory-listing order, which is
	// filesystem-dependent; callers must not assume a specific order.
	//
	// A stat failure on the archive wraps domain.ErrMetadataUnavailable;
	// the caller logs and skips the source.
	Resolve(ctx context.Context, archivePath, cacheRoot string, exts domain.Extensions) ([]string, error)
}
