package driving

// CacheState classifies a snapshot directory.
type CacheState string

const (
	// CacheValid means the recorded fingerprint matches the archive.
	CacheValid CacheState = "valid"

	// CacheStale means the archive changed or the record is unreadable.
	CacheStale CacheState = "stale"

	// CacheOrphaned means no archive of that name exists any more.
	CacheOrphaned CacheState = "orphaned"
)

// CacheInfo describes one snapshot directory.
type CacheInfo struct {
	// Archive is the base name of the source archive.
	Archive string

	// Path is the snapshot directory.
	Path string

	// State is the snapshot's validity against the audit directory.
	State CacheState
}

// CacheMaintainer exposes out-of-band snapshot maintenance to the CLI.
// Pruning the cache root is deliberately outside the resolve path; the
// cache itself has no TTL or eviction.
type CacheMaintainer interface {
	// Inspect classifies every snapshot under cacheRoot against the
	// archives currently in auditDir.
	Inspect(cacheRoot, auditDir string) ([]CacheInfo, error)

	// Purge removes every snapshot under cacheRoot.
	Purge(cacheRoot string) error
}
