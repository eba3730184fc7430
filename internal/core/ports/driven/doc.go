// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ArchiveReader: Lists, extracts and streams zip archive entries
//   - SnapshotCache: Resolves an archive to its extracted snapshot files
//   - ReportWriter: Renders accumulated hits to a report file
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - RunStore: Run-history persistence. Without it, history recording
//     is skipped and the history command reports nothing.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
