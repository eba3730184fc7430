package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNoCriteria indicates a run was requested with neither keyword
	// terms nor a regex pattern. Fatal before any scanning starts.
	ErrNoCriteria = errors.New("no search criteria supplied")

	// ErrAuditDirMissing indicates the audit directory does not exist.
	// Fatal before any scanning starts.
	ErrAuditDirMissing = errors.New("audit directory does not exist")

	// ErrMetadataUnavailable indicates an archive could not be stat'd,
	// so no fingerprint can be computed. The source is skipped.
	ErrMetadataUnavailable = errors.New("archive metadata unavailable")

	// ErrExtractionFailed indicates one archive entry could not be
	// copied out during a snapshot rebuild. The entry is skipped.
	ErrExtractionFailed = errors.New("entry extraction failed")

	// ErrDecodingFailed indicates one archive entry could not be opened
	// as a text stream. The entry is skipped.
	ErrDecodingFailed = errors.New("entry decoding failed")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")
)
