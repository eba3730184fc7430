package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/auditgrep/internal/core/ports/driving"
)

// Ensure Cache implements the maintenance interface.
var _ driving.CacheMaintainer = (*Cache)(nil)

// Inspect classifies every snapshot under the cache root against the
// archives currently in auditDir. A missing cache root is an empty
// result, not an error.
func (c *Cache) Inspect(cacheRoot, auditDir string) ([]driving.CacheInfo, error) {
	entries, err := os.ReadDir(cacheRoot)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing cache root: %w", err)
	}

	var infos []driving.CacheInfo
	for _, e := range entries {
		if !e.IsDir() {
			// Lock files and strays are not snapshots.
			continue
		}

		info := driving.CacheInfo{
			Archive: e.Name(),
			Path:    filepath.Join(cacheRoot, e.Name()),
			State:   driving.CacheStale,
		}

		live, err := liveFingerprint(filepath.Join(auditDir, e.Name()))
		switch {
		case err != nil:
			info.State = driving.CacheOrphaned
		case isValid(info.Path, live):
			info.State = driving.CacheValid
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// Purge removes every snapshot and lock file under the cache root. The
// root itself is recreated lazily by the next resolve.
func (c *Cache) Purge(cacheRoot string) error {
	entries, err := os.ReadDir(cacheRoot)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("listing cache root: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() && !strings.HasSuffix(name, ".lock") {
			continue
		}
		if err := os.RemoveAll(filepath.Join(cacheRoot, name)); err != nil {
			return fmt.Errorf("removing %s: %w", name, err)
		}
	}
	return nil
}
