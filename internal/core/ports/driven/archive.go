package driven

import (
	"io"

	"github.com/custodia-labs/auditgrep/internal/core/domain"
)

// ArchiveReader reads zip archives. Implementations must release every
// handle they open on all exit paths; one bad entry must not leak
// resources across the remaining scan.
type ArchiveReader interface {
	// ListTargets returns the names of entries whose lowercased name
	// ends in one of the target extensions, in archive order.
	ListTargets(archivePath string, exts domain.Extensions) ([]string, error)

	// ExtractOne reads the whole named entry into memory and writes it
	// to destPath. Failures wrap domain.ErrExtractionFailed and are
	// recoverable: the caller logs and continues with other entries.
	ExtractOne(archivePath, entryName, destPath string) error

	// OpenEntry opens the named entry as a UTF-8 text stream without
	// materialising it as a file. Failures wrap domain.ErrDecodingFailed
	// and are recoverable by skipping the entry. The caller must close
	// the returned reader.
	OpenEntry(archivePath, entryName string) (io.ReadCloser, error)
}
