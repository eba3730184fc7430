// Package archive implements the ArchiveReader port on top of
// archive/zip. Nested archives are not descended into; an entry that is
// itself a zip is treated like any other non-target entry.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"

	"github.com/custodia-labs/auditgrep/internal/core/domain"
	"github.com/custodia-labs/auditgrep/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.ArchiveReader = (*Reader)(nil)

// Reader reads zip archives from the filesystem.
type Reader struct{}

// New creates a new zip archive reader.
func New() *Reader {
	return &Reader{}
}

// ListTargets returns the names of file entries whose lowercased name
// ends in one of the target extensions, in archive order.
func (r *Reader) ListTargets(archivePath string, exts domain.Extensions) ([]string, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	defer zr.Close()

	var names []string
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if exts.Match(f.Name) {
			names = append(names, f.Name)
		}
	}
	return names, nil
}

// ExtractOne reads the whole named entry into memory and writes it to
// destPath.
func (r *Reader) ExtractOne(archivePath, entryName, destPath string) error {
	data, err := r.readEntry(archivePath, entryName)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrExtractionFailed, entryName, err)
	}
	if err := os.WriteFile(destPath, data, 0600); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrExtractionFailed, entryName, err)
	}
	return nil
}

// OpenEntry opens the named entry as a text stream. The returned
// reader owns both the entry handle and the archive handle; closing it
// releases both.
func (r *Reader) OpenEntry(archivePath, entryName string) (io.ReadCloser, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrDecodingFailed, entryName, err)
	}

	for _, f := range zr.File {
		if f.Name != entryName {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			zr.Close()
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrDecodingFailed, entryName, err)
		}
		return &entryReader{entry: rc, archive: zr}, nil
	}

	zr.Close()
	return nil, fmt.Errorf("%w: %s: %v", domain.ErrDecodingFailed, entryName, domain.ErrNotFound)
}

// readEntry returns the full decompressed bytes of one entry.
func (r *Reader) readEntry(archivePath, entryName string) ([]byte, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != entryName {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		return data, nil
	}
	return nil, domain.ErrNotFound
}

// entryReader couples an open entry with its parent archive handle so
// both are released on every exit path.
type entryReader struct {
	entry   io.ReadCloser
	archive *zip.ReadCloser
}

func (e *entryReader) Read(p []byte) (int, error) {
	return e.entry.Read(p)
}

func (e *entryReader) Close() error {
	err := e.entry.Close()
	if cerr := e.archive.Close(); err == nil {
		err = cerr
	}
	return err
}
