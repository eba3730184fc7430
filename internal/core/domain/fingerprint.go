package domain

import "time"

// Fingerprint is the identity snapshot of an archive's content state:
// its byte size and modification time at one point in time.
//
// Two fingerprints are equal iff both fields are exactly equal; there
// is no tolerance window. A snapshot directory whose recorded
// fingerprint differs from the live fingerprint of its source archive
// in either field is stale and must be rebuilt wholesale.
type Fingerprint struct {
	// Size is the archive's size in bytes.
	Size int64

	// ModTime is the archive's modification timestamp.
	ModTime time.Time
}

// Equal reports whether both fields match exactly.
func (f Fingerprint) Equal(other Fingerprint) bool {
	return f.Size == other.Size && f.ModTime.Equal(other.ModTime)
}
