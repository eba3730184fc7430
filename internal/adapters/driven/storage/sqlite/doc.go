// Package sqlite provides SQLite-backed persistence for run history.
//
// The store uses modernc.org/sqlite (pure Go, no cgo) with WAL mode
// and embedded SQL migrations applied on open.
package sqlite
