// Package snapshot implements the SnapshotCache port on the local
// filesystem.
//
// Each archive gets one directory under the cache root, named after the
// archive's base name, holding the extracted target-extension entries
// plus a metadata.txt record: line 1 is the archive's byte size, line 2
// its floating-point unix modification timestamp. The snapshot is valid
// only while that record matches the live archive exactly; any
// difference, or a missing or unreadable record, triggers a wholesale
// rebuild. Rebuilds replace the whole directory, never patch it, so an
// interrupted run cannot leave a half-consistent snapshot behind the
// metadata record (the record is written last).
//
// A per-archive advisory flock serialises rebuilds across processes
// sharing a cache root. Within one process the lock is uncontended.
package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gofrs/flock"

	"github.com/custodia-labs/auditgrep/internal/core/domain"
	"github.com/custodia-labs/auditgrep/internal/core/ports/driven"
	"github.com/custodia-labs/auditgrep/internal/logger"
)

// Ensure Cache implements the interface.
var _ driven.SnapshotCache = (*Cache)(nil)

// metadataFile is the fingerprint record inside each snapshot directory.
const metadataFile = "metadata.txt"

// Cache is a filesystem snapshot cache for archive extractions. The
// cache root is passed into every call; the adapter itself is
// stateless.
type Cache struct {
	archives driven.ArchiveReader
}

// NewCache creates a snapshot cache over the given archive reader.
func NewCache(archives driven.ArchiveReader) *Cache {
	return &Cache{archives: archives}
}

// Resolve returns the snapshot file paths for the archive, rebuilding
// the snapshot first when it is missing, unreadable or stale.
func (c *Cache) Resolve(ctx context.Context, archivePath, cacheRoot string, exts domain.Extensions) ([]string, error) {
	live, err := liveFingerprint(archivePath)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cacheRoot, 0700); err != nil {
		return nil, fmt.Errorf("creating cache root: %w", err)
	}

	base := filepath.Base(archivePath)
	dir := filepath.Join(cacheRoot, base)

	// The lock file sits beside the snapshot directory so RemoveAll
	// during a rebuild cannot delete it mid-hold.
	lock := flock.New(filepath.Join(cacheRoot, base+".lock"))
	if err := lock.Lock(); err != nil {
		return nil, fmt.Errorf("locking snapshot for %s: %w", base, err)
	}
	defer lock.Unlock()

	if isValid(dir, live) {
		logger.Debug("Snapshot for %s is current", base)
	} else {
		if err := c.rebuild(ctx, dir, archivePath, exts, live); err != nil {
			return nil, err
		}
	}

	return listSnapshotFiles(dir, exts)
}

// rebuild replaces the snapshot directory with a fresh extraction and
// records the fingerprint last. Per-entry extraction failures are
// logged and skipped; they do not abort the remaining entries.
func (c *Cache) rebuild(ctx context.Context, dir, archivePath string, exts domain.Extensions, live domain.Fingerprint) error {
	base := filepath.Base(archivePath)
	logger.Info("Rebuilding snapshot for %s", base)

	names, err := c.archives.ListTargets(archivePath, exts)
	if err != nil {
		return err
	}

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("clearing snapshot for %s: %w", base, err)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating snapshot for %s: %w", base, err)
	}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		dest := filepath.Join(dir, filepath.Base(name))
		if err := c.archives.ExtractOne(archivePath, name, dest); err != nil {
			logger.Warn("Skipping entry %s in %s: %v", name, base, err)
		}
	}

	record := filepath.Join(dir, metadataFile)
	if err := os.WriteFile(record, encodeFingerprint(live), 0600); err != nil {
		return fmt.Errorf("writing fingerprint for %s: %w", base, err)
	}
	return nil
}

// isValid reports whether the recorded fingerprint matches the live one
// byte for byte. A missing or unparseable record is simply invalid.
func isValid(dir string, live domain.Fingerprint) bool {
	data, err := os.ReadFile(filepath.Join(dir, metadataFile))
	if err != nil {
		return false
	}
	return bytes.Equal(data, encodeFingerprint(live))
}

// liveFingerprint stats the archive and returns its identity snapshot.
func liveFingerprint(archivePath string) (domain.Fingerprint, error) {
	info, err := os.Stat(archivePath)
	if err != nil {
		return domain.Fingerprint{}, fmt.Errorf("%w: %s: %v", domain.ErrMetadataUnavailable, archivePath, err)
	}
	return domain.Fingerprint{Size: info.Size(), ModTime: info.ModTime()}, nil
}

// encodeFingerprint renders the two-line metadata record. Validity is a
// byte comparison against this encoding, which makes equality exact
// without round-tripping floats.
func encodeFingerprint(f domain.Fingerprint) []byte {
	seconds := float64(f.ModTime.UnixNano()) / 1e9
	return []byte(strconv.FormatInt(f.Size, 10) + "\n" +
		strconv.FormatFloat(seconds, 'f', -1, 64) + "\n")
}

// listSnapshotFiles returns the snapshot's target files in
// directory-listing order. The order is filesystem-dependent; callers
// must treat it as a set.
func listSnapshotFiles(dir string, exts domain.Extensions) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing snapshot: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || e.Name() == metadataFile {
			continue
		}
		if exts.Match(e.Name()) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}
