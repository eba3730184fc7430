package snapshot

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/auditgrep/internal/adapters/driven/archive"
	"github.com/custodia-labs/auditgrep/internal/core/domain"
	"github.com/custodia-labs/auditgrep/internal/core/ports/driven"
)

// countingReader wraps the real zip reader and counts extractions, so
// tests can observe whether a resolve re-extracted anything.
type countingReader struct {
	inner    driven.ArchiveReader
	extracts int
	failOn   string
}

func (c *countingReader) ListTargets(archivePath string, exts domain.Extensions) ([]string, error) {
	return c.inner.ListTargets(archivePath, exts)
}

func (c *countingReader) ExtractOne(archivePath, entryName, destPath string) error {
	if c.failOn != "" && entryName == c.failOn {
		return fmt.Errorf("%w: %s", domain.ErrExtractionFailed, entryName)
	}
	c.extracts++
	return c.inner.ExtractOne(archivePath, entryName, destPath)
}

func (c *countingReader) OpenEntry(archivePath, entryName string) (io.ReadCloser, error) {
	return c.inner.OpenEntry(archivePath, entryName)
}

func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

func baseNames(paths []string) []string {
	names := make([]string, 0, len(paths))
	for _, p := range paths {
		names = append(names, filepath.Base(p))
	}
	return names
}

func csvOnly() domain.Extensions {
	return domain.NormaliseExtensions([]string{"csv"})
}

func TestResolveBuildsSnapshotOnFirstUse(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "b.zip")
	writeZip(t, archivePath, map[string]string{
		"inner.csv":  "2,bar,1980\n",
		"skip.txt":   "ignored\n",
		"deep/x.csv": "3,baz,7\n",
	})

	reader := &countingReader{inner: archive.New()}
	cache := NewCache(reader)
	root := filepath.Join(dir, "cache")

	files, err := cache.Resolve(context.Background(), archivePath, root, csvOnly())
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"inner.csv", "x.csv"}, baseNames(files))
	assert.Equal(t, 2, reader.extracts)
	assert.FileExists(t, filepath.Join(root, "b.zip", "metadata.txt"))
}

func TestResolveReusesValidSnapshot(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "b.zip")
	writeZip(t, archivePath, map[string]string{"inner.csv": "2,bar,1980\n"})

	reader := &countingReader{inner: archive.New()}
	cache := NewCache(reader)
	root := filepath.Join(dir, "cache")
	ctx := context.Background()

	_, err := cache.Resolve(ctx, archivePath, root, csvOnly())
	require.NoError(t, err)
	require.Equal(t, 1, reader.extracts)

	files, err := cache.Resolve(ctx, archivePath, root, csvOnly())
	require.NoError(t, err)

	assert.Equal(t, 1, reader.extracts, "unchanged archive must not re-extract")
	assert.ElementsMatch(t, []string{"inner.csv"}, baseNames(files))
}

func TestResolveRebuildsWhenArchiveChanges(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "b.zip")
	writeZip(t, archivePath, map[string]string{"old.csv": "old\n"})

	reader := &countingReader{inner: archive.New()}
	cache := NewCache(reader)
	root := filepath.Join(dir, "cache")
	ctx := context.Background()

	_, err := cache.Resolve(ctx, archivePath, root, csvOnly())
	require.NoError(t, err)

	// Replace the archive and force a different modification time so
	// the fingerprint cannot collide even on coarse filesystems.
	writeZip(t, archivePath, map[string]string{"new.csv": "new\n"})
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(archivePath, past, past))

	files, err := cache.Resolve(ctx, archivePath, root, csvOnly())
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"new.csv"}, baseNames(files))
	assert.NoFileExists(t, filepath.Join(root, "b.zip", "old.csv"),
		"stale entries must not survive a rebuild")
}

func TestResolveRebuildsOnCorruptMetadata(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "b.zip")
	writeZip(t, archivePath, map[string]string{"inner.csv": "x\n"})

	reader := &countingReader{inner: archive.New()}
	cache := NewCache(reader)
	root := filepath.Join(dir, "cache")
	ctx := context.Background()

	_, err := cache.Resolve(ctx, archivePath, root, csvOnly())
	require.NoError(t, err)
	require.Equal(t, 1, reader.extracts)

	record := filepath.Join(root, "b.zip", "metadata.txt")
	require.NoError(t, os.WriteFile(record, []byte("garbage\n"), 0600))

	_, err = cache.Resolve(ctx, archivePath, root, csvOnly())
	require.NoError(t, err)

	assert.Equal(t, 2, reader.extracts, "corrupt record must trigger a rebuild")
}

func TestResolveMissingArchive(t *testing.T) {
	dir := t.TempDir()
	cache := NewCache(&countingReader{inner: archive.New()})

	_, err := cache.Resolve(context.Background(), filepath.Join(dir, "absent.zip"),
		filepath.Join(dir, "cache"), csvOnly())

	assert.ErrorIs(t, err, domain.ErrMetadataUnavailable)
}

func TestResolveSkipsFailedEntries(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "b.zip")
	writeZip(t, archivePath, map[string]string{
		"good.csv": "fine\n",
		"bad.csv":  "doomed\n",
	})

	reader := &countingReader{inner: archive.New(), failOn: "bad.csv"}
	cache := NewCache(reader)
	root := filepath.Join(dir, "cache")

	files, err := cache.Resolve(context.Background(), archivePath, root, csvOnly())
	require.NoError(t, err, "one failed entry must not abort the rebuild")

	assert.ElementsMatch(t, []string{"good.csv"}, baseNames(files))
	assert.FileExists(t, filepath.Join(root, "b.zip", "metadata.txt"),
		"fingerprint record is still written after partial extraction")
}

func TestInspectClassifiesSnapshots(t *testing.T) {
	dir := t.TempDir()
	auditDir := filepath.Join(dir, "audit")
	require.NoError(t, os.MkdirAll(auditDir, 0700))

	validArchive := filepath.Join(auditDir, "valid.zip")
	writeZip(t, validArchive, map[string]string{"a.csv": "x\n"})
	staleArchive := filepath.Join(auditDir, "stale.zip")
	writeZip(t, staleArchive, map[string]string{"b.csv": "y\n"})

	reader := &countingReader{inner: archive.New()}
	cache := NewCache(reader)
	root := filepath.Join(dir, "cache")
	ctx := context.Background()

	for _, p := range []string{validArchive, staleArchive} {
		_, err := cache.Resolve(ctx, p, root, csvOnly())
		require.NoError(t, err)
	}

	// Make one snapshot stale and one orphaned.
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(staleArchive, past, past))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "gone.zip"), 0700))

	infos, err := cache.Inspect(root, auditDir)
	require.NoError(t, err)

	states := map[string]string{}
	for _, info := range infos {
		states[info.Archive] = string(info.State)
	}
	assert.Equal(t, map[string]string{
		"valid.zip": "valid",
		"stale.zip": "stale",
		"gone.zip":  "orphaned",
	}, states)
}

func TestPurgeRemovesSnapshots(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "b.zip")
	writeZip(t, archivePath, map[string]string{"inner.csv": "x\n"})

	cache := NewCache(&countingReader{inner: archive.New()})
	root := filepath.Join(dir, "cache")

	_, err := cache.Resolve(context.Background(), archivePath, root, csvOnly())
	require.NoError(t, err)

	require.NoError(t, cache.Purge(root))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPurgeMissingRootIsNoop(t *testing.T) {
	cache := NewCache(&countingReader{inner: archive.New()})

	assert.NoError(t, cache.Purge(filepath.Join(t.TempDir(), "nope")))
}
