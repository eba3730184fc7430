// Package domain defines the core business entities for auditgrep.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - MatchSpec: The search criteria (keywords or regex) and its matching rules
//   - ResultRecord: One matched line with its provenance
//   - Fingerprint: The identity snapshot of an archive's content state
//   - Extensions: The set of file-name suffixes selected for scanning
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
